package handler

import (
	"fmt"

	"github.com/spf13/cobra"

	"persona-tracker/internal/service"
)

// TodoHandler handles task commands.
type TodoHandler struct {
	todos *service.TodoService
	today func() string
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todos *service.TodoService, today func() string) *TodoHandler {
	return &TodoHandler{todos: todos, today: today}
}

// Commands returns the todo command tree.
func (h *TodoHandler) Commands() []*cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage date-scoped tasks",
	}
	cmd.AddCommand(h.addCmd(), h.toggleCmd(), h.deleteCmd(), h.listCmd())
	return []*cobra.Command{cmd}
}

// dateFlag resolves the --date flag, defaulting to today.
func (h *TodoHandler) dateFlag(cmd *cobra.Command, date string) (string, error) {
	if !cmd.Flags().Changed("date") {
		return h.today(), nil
	}
	return parseDate(date)
}

func (h *TodoHandler) addCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  exactArgs(1, "text"),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := requireContent(args[0])
			if err != nil {
				return err
			}
			d, err := h.dateFlag(cmd, date)
			if err != nil {
				return err
			}
			t, err := h.todos.Add(cmd.Context(), text, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "✅ %s on %s (%s)\n", t.Text, t.Date, t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), default today")
	return cmd
}

func (h *TodoHandler) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task's completion",
		Args:  exactArgs(1, "todo id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := h.todos.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "%s %s\n", checkbox(t.Completed), t.Text)
			return nil
		},
	}
}

func (h *TodoHandler) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  exactArgs(1, "todo id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.todos.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "🗑 Deleted %s\n", args[0])
			return nil
		},
	}
}

func (h *TodoHandler) listCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := h.dateFlag(cmd, date)
			if err != nil {
				return err
			}
			todos, err := h.todos.ListByDate(cmd.Context(), d)
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintf(w, "%s\n", d)
			if len(todos) == 0 {
				fmt.Fprintln(w, "  (no tasks)")
			}
			for _, t := range todos {
				fmt.Fprintf(w, "  %s %s  %s\n", checkbox(t.Completed), t.Text, t.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), default today")
	return cmd
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
