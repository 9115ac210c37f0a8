package handler

import (
	"fmt"

	"github.com/spf13/cobra"

	"persona-tracker/internal/service"
)

// StatHandler handles stat commands.
type StatHandler struct {
	stats *service.StatService
}

// NewStatHandler creates a new StatHandler.
func NewStatHandler(stats *service.StatService) *StatHandler {
	return &StatHandler{stats: stats}
}

// Commands returns the stats command tree.
func (h *StatHandler) Commands() []*cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the five core stats with rank and progress",
		Args:  cobra.NoArgs,
		RunE:  h.handleList,
	}
	cmd.AddCommand(h.editCmd())
	return []*cobra.Command{cmd}
}

func (h *StatHandler) handleList(cmd *cobra.Command, _ []string) error {
	stats, err := h.stats.GetStats(cmd.Context())
	if err != nil {
		return err
	}

	w := out(cmd)
	for _, st := range stats {
		p := service.Progress(st)
		fmt.Fprintf(w, "%-12s %-8s Lv%d %-12s %s", st.ID, st.Name, p.Level, service.RankName(st), bar(p.Percent))
		if p.AtMax {
			fmt.Fprintf(w, " MAX (%d)\n", st.Value)
			continue
		}
		fmt.Fprintf(w, " %d (next %s in %d)\n", st.Value, p.NextLabel, p.Remaining)
	}
	fmt.Fprintf(w, "Total level: %d\n", service.TotalLevel(stats))
	return nil
}

func (h *StatHandler) editCmd() *cobra.Command {
	var name string
	var value int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a stat's name and value",
		Args:  exactArgs(1, "stat id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := h.stats.Stat(ctx, args[0])
			if err != nil {
				return err
			}

			newName := current.Name
			if cmd.Flags().Changed("name") {
				if newName, err = requireName(name); err != nil {
					return err
				}
			}
			newValue := current.Value
			if cmd.Flags().Changed("value") {
				if value < 0 {
					return ErrNegativeStatValue
				}
				newValue = value
			}

			st, err := h.stats.Update(ctx, args[0], newName, newValue)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "✅ %s: %s = %d\n", st.ID, st.Name, st.Value)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().IntVar(&value, "value", 0, "New value")
	return cmd
}
