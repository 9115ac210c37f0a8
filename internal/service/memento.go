package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
)

// errNoTransition aborts a memento write without surfacing an error.
var errNoTransition = errors.New("memento transition rejected")

// MementoService owns the idea notes and their depth state machine.
type MementoService struct {
	mementos *repository.Collection[[]model.Memento]
	todos    *TodoService
	clock    clockwork.Clock
}

// NewMementoService creates a new MementoService instance.
func NewMementoService(
	mementos *repository.Collection[[]model.Memento],
	todos *TodoService,
	clock clockwork.Clock,
) *MementoService {
	return &MementoService{mementos: mementos, todos: todos, clock: clock}
}

// Add prepends an active memento at depth 1.
func (s *MementoService) Add(ctx context.Context, content string, tags []string) (model.Memento, error) {
	now := s.clock.Now()
	m := model.Memento{
		ID:        newID(prefixMemento),
		Content:   content,
		Tags:      cloneTags(tags),
		Depth:     model.MinMementoDepth,
		Status:    model.MementoActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.mementos.Update(ctx, func(ms []model.Memento) ([]model.Memento, error) {
		return append([]model.Memento{m}, ms...), nil
	})
	if err != nil {
		return model.Memento{}, fmt.Errorf("failed to add memento: %w", err)
	}
	return m, nil
}

// Update replaces a memento's content and tags.
func (s *MementoService) Update(ctx context.Context, id, content string, tags []string) (model.Memento, error) {
	var updated model.Memento
	_, err := s.mementos.Update(ctx, func(ms []model.Memento) ([]model.Memento, error) {
		i := indexMemento(ms, id)
		if i < 0 {
			return nil, ErrMementoNotFound
		}
		ms[i].Content = content
		ms[i].Tags = cloneTags(tags)
		ms[i].UpdatedAt = s.clock.Now()
		updated = ms[i]
		return ms, nil
	})
	if err != nil {
		return model.Memento{}, err
	}
	return updated, nil
}

// Delete removes a memento.
func (s *MementoService) Delete(ctx context.Context, id string) error {
	_, err := s.mementos.Update(ctx, func(ms []model.Memento) ([]model.Memento, error) {
		i := indexMemento(ms, id)
		if i < 0 {
			return nil, ErrMementoNotFound
		}
		return append(ms[:i], ms[i+1:]...), nil
	})
	return err
}

// ChangeDepth moves a memento one level deeper (+1) or shallower (-1).
// It returns false without writing when the id is unknown, delta is not
// ±1, or the result would leave [MinMementoDepth, MaxMementoDepth].
func (s *MementoService) ChangeDepth(ctx context.Context, id string, delta int) (bool, error) {
	if delta != 1 && delta != -1 {
		return false, nil
	}

	_, err := s.mementos.Update(ctx, func(ms []model.Memento) ([]model.Memento, error) {
		i := indexMemento(ms, id)
		if i < 0 {
			return nil, errNoTransition
		}
		next := ms[i].Depth + delta
		if next < model.MinMementoDepth || next > model.MaxMementoDepth {
			return nil, errNoTransition
		}
		ms[i].Depth = next
		ms[i].UpdatedAt = s.clock.Now()
		return ms, nil
	})
	if errors.Is(err, errNoTransition) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Deepen is ChangeDepth(id, +1).
func (s *MementoService) Deepen(ctx context.Context, id string) (bool, error) {
	return s.ChangeDepth(ctx, id, 1)
}

// Surface is ChangeDepth(id, -1).
func (s *MementoService) Surface(ctx context.Context, id string) (bool, error) {
	return s.ChangeDepth(ctx, id, -1)
}

// ConvertToTask creates a task for date from the memento and marks it
// converted. It returns false for unknown ids and for mementos that were
// already converted, so a memento yields at most one task.
func (s *MementoService) ConvertToTask(ctx context.Context, id, date string) (bool, error) {
	var todoID string
	_, err := s.mementos.Update(ctx, func(ms []model.Memento) ([]model.Memento, error) {
		i := indexMemento(ms, id)
		if i < 0 || ms[i].Status == model.MementoConverted {
			return nil, errNoTransition
		}

		todo, err := s.todos.Add(ctx, TaskText(ms[i]), date)
		if err != nil {
			return nil, err
		}
		todoID = todo.ID

		ms[i].Status = model.MementoConverted
		ms[i].UpdatedAt = s.clock.Now()
		return ms, nil
	})
	if errors.Is(err, errNoTransition) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to convert memento: %w", err)
	}

	log.Debug().Str("memento", id).Str("todo", todoID).Msg("Memento converted to task")
	return true, nil
}

// ListByDepth returns the active mementos at depth, newest first.
func (s *MementoService) ListByDepth(ctx context.Context, depth int) ([]model.Memento, error) {
	ms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Memento, 0)
	for _, m := range ms {
		if m.Depth == depth && m.Status == model.MementoActive {
			out = append(out, m)
		}
	}
	return out, nil
}

// List returns every memento regardless of status.
func (s *MementoService) List(ctx context.Context) ([]model.Memento, error) {
	ms, err := s.mementos.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mementos: %w", err)
	}
	return ms, nil
}

// Get returns one memento by id.
func (s *MementoService) Get(ctx context.Context, id string) (model.Memento, error) {
	ms, err := s.List(ctx)
	if err != nil {
		return model.Memento{}, err
	}
	if i := indexMemento(ms, id); i >= 0 {
		return ms[i], nil
	}
	return model.Memento{}, ErrMementoNotFound
}

// TaskText is the text of the task created from m: "[a/b] content", or
// just the content when m has no tags.
func TaskText(m model.Memento) string {
	if len(m.Tags) == 0 {
		return m.Content
	}
	return "[" + strings.Join(m.Tags, "/") + "] " + m.Content
}

func cloneTags(tags []string) []string {
	return append([]string{}, tags...)
}

func indexMemento(ms []model.Memento, id string) int {
	for i := range ms {
		if ms[i].ID == id {
			return i
		}
	}
	return -1
}
