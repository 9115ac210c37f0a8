package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"persona-tracker/internal/catalog"
	"persona-tracker/internal/model"
	"persona-tracker/internal/service"
)

// ActionHandler handles action template commands and action execution.
type ActionHandler struct {
	actions *service.ActionService
	stats   *service.StatService
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(actions *service.ActionService, stats *service.StatService) *ActionHandler {
	return &ActionHandler{actions: actions, stats: stats}
}

// Commands returns the actions command tree and the act command.
func (h *ActionHandler) Commands() []*cobra.Command {
	actions := &cobra.Command{
		Use:   "actions",
		Short: "List action templates",
		Args:  cobra.NoArgs,
		RunE:  h.handleList,
	}
	actions.AddCommand(h.addCmd(), h.editCmd(), h.deleteCmd())

	act := &cobra.Command{
		Use:   "act <id>",
		Short: "Perform an action and apply its effects",
		Args:  exactArgs(1, "action id"),
		RunE:  h.handleAct,
	}
	return []*cobra.Command{actions, act}
}

func (h *ActionHandler) handleList(cmd *cobra.Command, _ []string) error {
	actions, err := h.actions.List(cmd.Context())
	if err != nil {
		return err
	}
	w := out(cmd)
	for _, a := range actions {
		fmt.Fprintf(w, "%-8s %s %s  %s\n", a.ID, iconOrDefault(a.Icon), a.Name, formatEffects(a.Effects))
	}
	return nil
}

func (h *ActionHandler) handleAct(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	result, err := h.actions.Execute(ctx, args[0])
	if err != nil {
		return err
	}

	w := out(cmd)
	fmt.Fprintf(w, "%s %s\n", iconOrDefault(result.Action.Icon), result.Action.Name)
	if len(result.Applied) == 0 {
		fmt.Fprintln(w, "  (no stat changed)")
		return nil
	}
	for _, e := range result.Applied {
		st, err := h.stats.Stat(ctx, e.StatID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s %s -> %d (%s)\n", e.StatName, formatSigned(int64(e.Value)), st.Value, service.RankName(st))
	}
	return nil
}

func (h *ActionHandler) addCmd() *cobra.Command {
	var name, icon string
	var effects []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an action template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := requireName(name)
			if err != nil {
				return err
			}
			parsed, err := parseEffects(effects)
			if err != nil {
				return err
			}
			a, err := h.actions.Create(cmd.Context(), n, iconOrDefault(icon), parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "✅ Created %s (%s)\n", a.Name, a.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Action name")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon")
	cmd.Flags().StringArrayVar(&effects, "effect", nil, "Stat effect as stat:value, repeatable")
	return cmd
}

func (h *ActionHandler) editCmd() *cobra.Command {
	var name, icon string
	var effects []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an action template",
		Args:  exactArgs(1, "action id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := h.actions.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if a.Name, err = requireName(name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("icon") {
				a.Icon = iconOrDefault(icon)
			}
			if cmd.Flags().Changed("effect") {
				if a.Effects, err = parseEffects(effects); err != nil {
					return err
				}
			}
			if _, err := h.actions.Update(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "✅ Updated %s\n", a.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Action name")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon")
	cmd.Flags().StringArrayVar(&effects, "effect", nil, "Replace effects, stat:value, repeatable")
	return cmd
}

func (h *ActionHandler) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an action template",
		Args:  exactArgs(1, "action id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.actions.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "🗑 Deleted %s\n", args[0])
			return nil
		},
	}
}

func iconOrDefault(icon string) string {
	if strings.TrimSpace(icon) == "" {
		return catalog.DefaultIcon
	}
	return icon
}

func formatEffects(effects []model.Effect) string {
	parts := make([]string, len(effects))
	for i, e := range effects {
		parts[i] = fmt.Sprintf("%s %s", e.StatID, formatSigned(int64(e.Value)))
	}
	return strings.Join(parts, ", ")
}
