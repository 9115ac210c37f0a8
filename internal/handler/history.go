package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"persona-tracker/internal/model"
	"persona-tracker/internal/service"
)

// HistoryHandler handles history commands.
type HistoryHandler struct {
	history *service.HistoryService
	loc     *time.Location
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history *service.HistoryService, loc *time.Location) *HistoryHandler {
	return &HistoryHandler{history: history, loc: loc}
}

// Commands returns the history command tree.
func (h *HistoryHandler) Commands() []*cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the history grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return h.handleShow(cmd, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries, 0 for all")
	cmd.AddCommand(h.clearCmd())
	return []*cobra.Command{cmd}
}

func (h *HistoryHandler) handleShow(cmd *cobra.Command, limit int) error {
	groups, err := h.history.GroupByDisplayDate(cmd.Context())
	if err != nil {
		return err
	}

	w := out(cmd)
	if len(groups) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return nil
	}

	shown := 0
	for _, g := range groups {
		if limit > 0 && shown >= limit {
			break
		}
		fmt.Fprintf(w, "── %s ──\n", g.Label)
		for _, e := range g.Entries {
			if limit > 0 && shown >= limit {
				break
			}
			fmt.Fprintf(w, "  %s  %s\n", service.TimeLabel(e.Timestamp, h.loc), describeEntry(e))
			shown++
		}
	}
	return nil
}

func (h *HistoryHandler) clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every history entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear history without --yes")
			}
			if err := h.history.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "🗑 History cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing")
	return cmd
}

func describeEntry(e model.HistoryEntry) string {
	switch e.Kind {
	case model.KindMoney:
		return "💴 " + formatSigned(e.Money.Amount)
	case model.KindAction:
		parts := make([]string, len(e.Action.Effects))
		for i, eff := range e.Action.Effects {
			parts[i] = fmt.Sprintf("%s %s", eff.StatName, formatSigned(int64(eff.Value)))
		}
		return fmt.Sprintf("%s %s  %s", iconOrDefault(e.Action.ActionIcon), e.Action.ActionName, strings.Join(parts, ", "))
	default:
		return string(e.Kind)
	}
}
