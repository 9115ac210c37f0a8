// Package handler provides the persona CLI commands. Input validation and
// user-visible messages live here; the engines accept whatever they are
// given.
package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"persona-tracker/internal/model"
)

// Boundary validation errors.
var (
	ErrEmptyName     = errors.New("name must not be empty")
	ErrEmptyContent  = errors.New("content must not be empty")
	ErrInvalidAmount = errors.New("amount must be a positive integer")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrNoEffects     = errors.New("at least one effect is required")
	ErrInvalidEffect = errors.New("effect must look like stat:+3")
	ErrInvalidToggle = errors.New("value must be on or off")
)

// Engine refusals reported as errors at the boundary.
var (
	ErrDepthLimit        = errors.New("memento not found or already at depth limit")
	ErrConvertRefused    = errors.New("memento not found or already converted")
	ErrImportFailed      = errors.New("import failed")
	ErrNegativeStatValue = errors.New("value must not be negative")
)

func requireName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyName
	}
	return s, nil
}

func requireContent(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyContent
	}
	return s, nil
}

// parseAmount accepts positive integers with optional thousands separators.
func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

func parseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

// parseEffects turns "knowledge:+3" style specs into effects.
func parseEffects(specs []string) ([]model.Effect, error) {
	if len(specs) == 0 {
		return nil, ErrNoEffects
	}
	effects := make([]model.Effect, 0, len(specs))
	for _, spec := range specs {
		statID, value, ok := strings.Cut(spec, ":")
		statID = strings.TrimSpace(statID)
		if !ok || statID == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEffect, spec)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEffect, spec)
		}
		effects = append(effects, model.Effect{StatID: statID, Value: n})
	}
	return effects, nil
}

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, ErrInvalidToggle
	}
}

// formatYen renders an amount with thousands separators, e.g. -¥1,000.
func formatYen(n int64) string {
	if n < 0 {
		return "-¥" + humanize.Comma(-n)
	}
	return "¥" + humanize.Comma(n)
}

func formatSigned(n int64) string {
	if n > 0 {
		return "+" + humanize.Comma(n)
	}
	return humanize.Comma(n)
}

// bar draws a fixed-width progress bar for percent in [0,100].
func bar(percent float64) string {
	const width = 20
	filled := int(percent / 100 * width)
	filled = max(0, min(width, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
