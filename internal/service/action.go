package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
)

// ExecuteResult reports what an executed action changed.
type ExecuteResult struct {
	Action  model.Action
	Applied []model.AppliedEffect
	Entry   model.HistoryEntry
}

// ActionService owns the action templates and applies them to stats.
type ActionService struct {
	actions *repository.Collection[[]model.Action]
	stats   *StatService
	history *HistoryService
}

// NewActionService creates a new ActionService instance.
func NewActionService(
	actions *repository.Collection[[]model.Action],
	stats *StatService,
	history *HistoryService,
) *ActionService {
	return &ActionService{actions: actions, stats: stats, history: history}
}

// List returns every action template.
func (s *ActionService) List(ctx context.Context) ([]model.Action, error) {
	actions, err := s.actions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	return actions, nil
}

// Get returns one action template by id.
func (s *ActionService) Get(ctx context.Context, id string) (model.Action, error) {
	actions, err := s.List(ctx)
	if err != nil {
		return model.Action{}, err
	}
	if i := indexAction(actions, id); i >= 0 {
		return actions[i], nil
	}
	return model.Action{}, ErrActionNotFound
}

// Execute applies the action's effects to the stats and records one
// history entry listing the effects that were applied. The stat write and
// the history append are two separate writes; a failure between them
// leaves the stat change without a log entry.
func (s *ActionService) Execute(ctx context.Context, id string) (*ExecuteResult, error) {
	action, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applied, err := s.stats.applyEffects(ctx, action.Effects)
	if err != nil {
		return nil, err
	}

	entry, err := s.history.Append(ctx, model.NewActionEntry(model.ActionEntry{
		ActionID:   action.ID,
		ActionName: action.Name,
		ActionIcon: action.Icon,
		Effects:    applied,
	}))
	if err != nil {
		return nil, err
	}

	log.Debug().Str("action", action.ID).Int("effects", len(applied)).Msg("Action executed")

	return &ExecuteResult{Action: action, Applied: applied, Entry: entry}, nil
}

// Create adds a new template with a fresh id.
func (s *ActionService) Create(ctx context.Context, name, icon string, effects []model.Effect) (model.Action, error) {
	action := model.Action{
		ID:      newID(prefixAction),
		Name:    name,
		Icon:    icon,
		Effects: append([]model.Effect{}, effects...),
	}
	_, err := s.actions.Update(ctx, func(actions []model.Action) ([]model.Action, error) {
		return append(actions, action), nil
	})
	if err != nil {
		return model.Action{}, fmt.Errorf("failed to create action: %w", err)
	}
	return action, nil
}

// Update replaces the template with action.ID.
func (s *ActionService) Update(ctx context.Context, action model.Action) (model.Action, error) {
	_, err := s.actions.Update(ctx, func(actions []model.Action) ([]model.Action, error) {
		i := indexAction(actions, action.ID)
		if i < 0 {
			return nil, ErrActionNotFound
		}
		actions[i] = action
		return actions, nil
	})
	if err != nil {
		return model.Action{}, err
	}
	return action, nil
}

// Delete removes a template. History entries that reference it are kept.
func (s *ActionService) Delete(ctx context.Context, id string) error {
	_, err := s.actions.Update(ctx, func(actions []model.Action) ([]model.Action, error) {
		i := indexAction(actions, id)
		if i < 0 {
			return nil, ErrActionNotFound
		}
		return append(actions[:i], actions[i+1:]...), nil
	})
	return err
}

func indexAction(actions []model.Action, id string) int {
	for i := range actions {
		if actions[i].ID == id {
			return i
		}
	}
	return -1
}
