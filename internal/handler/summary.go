package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"persona-tracker/internal/service"
)

// SummaryHandler handles the overview and settings commands.
type SummaryHandler struct {
	summary  *service.SummaryService
	settings *service.SettingsService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summary *service.SummaryService, settings *service.SettingsService) *SummaryHandler {
	return &SummaryHandler{summary: summary, settings: settings}
}

// Commands returns the summary and settings commands.
func (h *SummaryHandler) Commands() []*cobra.Command {
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show the overview card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := h.summary.Summary(cmd.Context())
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "Total Lv %d   Actions %d   %s\n", s.TotalLevel, s.ActionCount, formatYen(s.Balance))
			for _, l := range s.Levels {
				stars := max(0, min(5, l.Level))
				fmt.Fprintf(w, "  %-8s %s\n", l.Name, strings.Repeat("★", stars)+strings.Repeat("☆", 5-stars))
			}
			return nil
		},
	}

	settings := &cobra.Command{
		Use:   "settings",
		Short: "Show settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := h.settings.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "dark-mode: %s\n", onOff(st.DarkMode))
			return nil
		},
	}
	settings.AddCommand(&cobra.Command{
		Use:   "dark-mode <on|off>",
		Short: "Set dark mode",
		Args:  exactArgs(1, "on or off"),
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := parseToggle(args[0])
			if err != nil {
				return err
			}
			st, err := h.settings.SetDarkMode(cmd.Context(), on)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "dark-mode: %s\n", onOff(st.DarkMode))
			return nil
		},
	})

	return []*cobra.Command{summary, settings}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
