package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
)

// TodoService owns the date-scoped tasks.
type TodoService struct {
	todos *repository.Collection[[]model.Todo]
	clock clockwork.Clock
}

// NewTodoService creates a new TodoService instance.
func NewTodoService(todos *repository.Collection[[]model.Todo], clock clockwork.Clock) *TodoService {
	return &TodoService{todos: todos, clock: clock}
}

// Add appends an open task for date.
func (s *TodoService) Add(ctx context.Context, text, date string) (model.Todo, error) {
	todo := model.Todo{
		ID:        newID(prefixTodo),
		Text:      text,
		Date:      date,
		CreatedAt: s.clock.Now(),
	}
	_, err := s.todos.Update(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		return append(todos, todo), nil
	})
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to add todo: %w", err)
	}
	return todo, nil
}

// Toggle flips the completion flag.
func (s *TodoService) Toggle(ctx context.Context, id string) (model.Todo, error) {
	var updated model.Todo
	_, err := s.todos.Update(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		i := indexTodo(todos, id)
		if i < 0 {
			return nil, ErrTodoNotFound
		}
		todos[i].Completed = !todos[i].Completed
		updated = todos[i]
		return todos, nil
	})
	if err != nil {
		return model.Todo{}, err
	}
	return updated, nil
}

// Delete removes a task.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	_, err := s.todos.Update(ctx, func(todos []model.Todo) ([]model.Todo, error) {
		i := indexTodo(todos, id)
		if i < 0 {
			return nil, ErrTodoNotFound
		}
		return append(todos[:i], todos[i+1:]...), nil
	})
	return err
}

// ListByDate returns the tasks whose date equals date, in insertion order.
func (s *TodoService) ListByDate(ctx context.Context, date string) ([]model.Todo, error) {
	todos, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Todo, 0)
	for _, t := range todos {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out, nil
}

// List returns every task.
func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.todos.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get returns one task by id.
func (s *TodoService) Get(ctx context.Context, id string) (model.Todo, error) {
	todos, err := s.List(ctx)
	if err != nil {
		return model.Todo{}, err
	}
	if i := indexTodo(todos, id); i >= 0 {
		return todos[i], nil
	}
	return model.Todo{}, ErrTodoNotFound
}

func indexTodo(todos []model.Todo, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}
