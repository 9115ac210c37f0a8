package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"persona-tracker/internal/catalog"
	"persona-tracker/internal/model"
	"persona-tracker/internal/service"
)

// CoopHandler handles relationship commands.
type CoopHandler struct {
	coops *service.CoopService
}

// NewCoopHandler creates a new CoopHandler.
func NewCoopHandler(coops *service.CoopService) *CoopHandler {
	return &CoopHandler{coops: coops}
}

// Commands returns the coop command tree.
func (h *CoopHandler) Commands() []*cobra.Command {
	cmd := &cobra.Command{
		Use:   "coop",
		Short: "List relationships",
		Args:  cobra.NoArgs,
		RunE:  h.handleList,
	}
	cmd.AddCommand(
		h.addCmd(),
		h.showCmd(),
		h.interactCmd(),
		h.noteCmd(),
		h.deleteCmd(),
		h.deleteAllCmd(),
		h.rankingCmd(),
	)
	return []*cobra.Command{cmd}
}

func (h *CoopHandler) handleList(cmd *cobra.Command, _ []string) error {
	coops, err := h.coops.List(cmd.Context())
	if err != nil {
		return err
	}
	w := out(cmd)
	if len(coops) == 0 {
		fmt.Fprintln(w, "No relationships yet.")
		return nil
	}
	for _, c := range coops {
		fmt.Fprintf(w, "%s  %-10s %-6s %-8s %3d pt\n",
			c.ID, c.Name, catalog.CategoryName(c.Category), service.CoopRankName(c.Points), c.Points)
	}
	return nil
}

func (h *CoopHandler) addCmd() *cobra.Command {
	var category, note string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Start tracking a relationship",
		Args:  exactArgs(1, "name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := requireName(args[0])
			if err != nil {
				return err
			}
			c, err := h.coops.Create(cmd.Context(), name, model.CoopCategory(strings.ToLower(category)), note)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "✅ %s joined (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", string(model.CoopFriend), "family|friend|work|other")
	cmd.Flags().StringVar(&note, "note", "", "Free-form note")
	return cmd
}

func (h *CoopHandler) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a relationship with its recent log",
		Args:  exactArgs(1, "coop id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := h.coops.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := out(cmd)
			p := service.CoopProgressOf(c.Points)
			fmt.Fprintf(w, "%s (%s)\n", c.Name, catalog.CategoryName(c.Category))
			fmt.Fprintf(w, "%s %s %d pt", service.CoopRankName(c.Points), bar(p.Percent), c.Points)
			if p.AtMax {
				fmt.Fprintln(w)
			} else {
				fmt.Fprintf(w, " (%s in %d)\n", p.NextRankLabel, p.Remaining)
			}
			if c.Note != "" {
				fmt.Fprintf(w, "Note: %s\n", c.Note)
			}
			for _, l := range c.Logs {
				fmt.Fprintf(w, "  %s  %s +%d\n", l.Timestamp.Format("2006-01-02 15:04"), l.ActionName, l.Points)
			}
			return nil
		},
	}
}

func (h *CoopHandler) interactCmd() *cobra.Command {
	kinds := make([]string, len(catalog.Interactions))
	for i, it := range catalog.Interactions {
		kinds[i] = string(it.Kind)
	}

	return &cobra.Command{
		Use:   "interact <id> <" + strings.Join(kinds, "|") + ">",
		Short: "Record an interaction",
		Args:  exactArgs(2, "coop id and interaction"),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := h.coops.ApplyInteraction(cmd.Context(), args[0], catalog.InteractionKind(strings.ToLower(args[1])))
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "%s with %s: +%d (%d pt)\n", res.Interaction.Name, res.Coop.Name, res.Interaction.Points, res.Coop.Points)
			if res.RankUp {
				fmt.Fprintf(w, "🎉 RANK UP! %s -> %s\n",
					catalog.CoopRankNames[res.OldRank], catalog.CoopRankNames[res.NewRank])
			}
			return nil
		},
	}
}

func (h *CoopHandler) noteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> <text>",
		Short: "Replace a relationship's note",
		Args:  exactArgs(2, "coop id and note"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := h.coops.UpdateNote(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "✅ Note saved")
			return nil
		},
	}
}

func (h *CoopHandler) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a relationship and its log",
		Args:  exactArgs(1, "coop id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.coops.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "🗑 Deleted %s\n", args[0])
			return nil
		},
	}
}

func (h *CoopHandler) deleteAllCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every relationship",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all relationships without --yes")
			}
			if err := h.coops.DeleteAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "🗑 All relationships deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func (h *CoopHandler) rankingCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show relationships ordered by points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			top, err := h.coops.Ranking(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := out(cmd)
			for i, c := range top {
				fmt.Fprintf(w, "%2d. %-10s %-8s %d pt\n", i+1, c.Name, service.CoopRankName(c.Points), c.Points)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries, 0 for all")
	return cmd
}
