package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"persona-tracker/internal/catalog"
	"persona-tracker/internal/model"
	"persona-tracker/internal/service"
)

// MementoHandler handles idea note commands.
type MementoHandler struct {
	mementos *service.MementoService
	today    func() string
}

// NewMementoHandler creates a new MementoHandler. today returns the
// default task date.
func NewMementoHandler(mementos *service.MementoService, today func() string) *MementoHandler {
	return &MementoHandler{mementos: mementos, today: today}
}

// Commands returns the memento command tree.
func (h *MementoHandler) Commands() []*cobra.Command {
	cmd := &cobra.Command{
		Use:     "memento",
		Aliases: []string{"mementos"},
		Short:   "Manage idea notes",
	}
	cmd.AddCommand(
		h.addCmd(),
		h.editCmd(),
		h.depthCmd("deepen", "Move a memento one level deeper", 1),
		h.depthCmd("surface", "Move a memento one level up", -1),
		h.convertCmd(),
		h.deleteCmd(),
		h.listCmd(),
	)
	return []*cobra.Command{cmd}
}

func (h *MementoHandler) addCmd() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a memento at depth 1",
		Args:  exactArgs(1, "content"),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := requireContent(args[0])
			if err != nil {
				return err
			}
			m, err := h.mementos.Add(cmd.Context(), content, cleanTags(tags))
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "✅ Saved %s\n", m.ID)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag, repeatable")
	return cmd
}

func (h *MementoHandler) editCmd() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "edit <id> <content>",
		Short: "Replace a memento's content and tags",
		Args:  exactArgs(2, "memento id and content"),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := requireContent(args[1])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			current, err := h.mementos.Get(ctx, args[0])
			if err != nil {
				return err
			}
			newTags := current.Tags
			if cmd.Flags().Changed("tag") {
				newTags = cleanTags(tags)
			}
			if _, err := h.mementos.Update(ctx, args[0], content, newTags); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "✅ Updated")
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Replace tags, repeatable")
	return cmd
}

func (h *MementoHandler) depthCmd(use, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  exactArgs(1, "memento id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := h.mementos.ChangeDepth(cmd.Context(), args[0], delta)
			if err != nil {
				return err
			}
			if !ok {
				return ErrDepthLimit
			}
			m, err := h.mementos.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			d, _ := catalog.GetDepth(m.Depth)
			fmt.Fprintf(out(cmd), "→ %s\n", d.Name)
			return nil
		},
	}
}

func (h *MementoHandler) convertCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "convert <id>",
		Short: "Turn a memento into a task",
		Args:  exactArgs(1, "memento id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("date") {
				date = h.today()
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			ok, err := h.mementos.ConvertToTask(cmd.Context(), args[0], d)
			if err != nil {
				return err
			}
			if !ok {
				return ErrConvertRefused
			}
			fmt.Fprintf(out(cmd), "✅ Task added for %s\n", d)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Task date (YYYY-MM-DD), default today")
	return cmd
}

func (h *MementoHandler) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a memento",
		Args:  exactArgs(1, "memento id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.mementos.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "🗑 Deleted %s\n", args[0])
			return nil
		},
	}
}

func (h *MementoHandler) listCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active mementos at a depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, ok := catalog.GetDepth(depth)
			if !ok {
				return fmt.Errorf("depth must be between %d and %d", model.MinMementoDepth, model.MaxMementoDepth)
			}
			ms, err := h.mementos.ListByDepth(cmd.Context(), depth)
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "%s: %s\n", d.Name, d.Description)
			if len(ms) == 0 {
				fmt.Fprintln(w, "  (empty)")
			}
			for _, m := range ms {
				fmt.Fprintf(w, "  %s  %s\n", m.ID, service.TaskText(m))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", model.MinMementoDepth, "Depth 1-3")
	return cmd
}

func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return cleaned
}
