package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"persona-tracker/internal/catalog"
	"persona-tracker/internal/config"
	"persona-tracker/internal/model"
	"persona-tracker/internal/rank"
	"persona-tracker/internal/repository"
)

// InteractionResult reports an applied interaction.
type InteractionResult struct {
	Coop        model.Coop
	Interaction catalog.Interaction
	OldRank     int
	NewRank     int
	RankUp      bool
}

// CoopProgress is the progress of a relationship toward its next rank.
type CoopProgress struct {
	Percent       float64
	Remaining     int
	NextRankLabel string // empty at the max rank
	AtMax         bool
}

// CoopService owns the tracked relationships.
type CoopService struct {
	coops    *repository.Collection[[]model.Coop]
	clock    clockwork.Clock
	logLimit int
}

// NewCoopService creates a new CoopService instance.
func NewCoopService(coops *repository.Collection[[]model.Coop], clock clockwork.Clock, logLimit int) *CoopService {
	if logLimit < 1 {
		logLimit = config.DefaultCoopLogLimit
	}
	return &CoopService{coops: coops, clock: clock, logLimit: logLimit}
}

// List returns every relationship in creation order.
func (s *CoopService) List(ctx context.Context) ([]model.Coop, error) {
	coops, err := s.coops.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coops: %w", err)
	}
	return coops, nil
}

// Get returns one relationship by id.
func (s *CoopService) Get(ctx context.Context, id string) (model.Coop, error) {
	coops, err := s.List(ctx)
	if err != nil {
		return model.Coop{}, err
	}
	if i := indexCoop(coops, id); i >= 0 {
		return coops[i], nil
	}
	return model.Coop{}, ErrCoopNotFound
}

// Create adds a relationship with zero points.
func (s *CoopService) Create(ctx context.Context, name string, category model.CoopCategory, note string) (model.Coop, error) {
	if !category.IsValid() {
		return model.Coop{}, ErrInvalidCategory
	}

	coop := model.Coop{
		ID:        newID(prefixCoop),
		Name:      name,
		Category:  category,
		Note:      note,
		Logs:      []model.CoopLog{},
		CreatedAt: s.clock.Now(),
	}
	_, err := s.coops.Update(ctx, func(coops []model.Coop) ([]model.Coop, error) {
		return append(coops, coop), nil
	})
	if err != nil {
		return model.Coop{}, fmt.Errorf("failed to create coop: %w", err)
	}
	return coop, nil
}

// UpdateNote replaces a relationship's note.
func (s *CoopService) UpdateNote(ctx context.Context, id, note string) (model.Coop, error) {
	var updated model.Coop
	_, err := s.coops.Update(ctx, func(coops []model.Coop) ([]model.Coop, error) {
		i := indexCoop(coops, id)
		if i < 0 {
			return nil, ErrCoopNotFound
		}
		coops[i].Note = note
		updated = coops[i]
		return coops, nil
	})
	if err != nil {
		return model.Coop{}, err
	}
	return updated, nil
}

// Delete removes a relationship together with its log.
func (s *CoopService) Delete(ctx context.Context, id string) error {
	_, err := s.coops.Update(ctx, func(coops []model.Coop) ([]model.Coop, error) {
		i := indexCoop(coops, id)
		if i < 0 {
			return nil, ErrCoopNotFound
		}
		return append(coops[:i], coops[i+1:]...), nil
	})
	return err
}

// DeleteAll removes every relationship.
func (s *CoopService) DeleteAll(ctx context.Context) error {
	if err := s.coops.Remove(ctx); err != nil {
		return fmt.Errorf("failed to delete coops: %w", err)
	}
	return nil
}

// ApplyInteraction adds the interaction's points, prepends a log entry and
// trims the log to its limit.
func (s *CoopService) ApplyInteraction(ctx context.Context, coopID string, kind catalog.InteractionKind) (*InteractionResult, error) {
	interaction, ok := catalog.GetInteraction(kind)
	if !ok {
		return nil, ErrInteractionNotFound
	}

	now := s.clock.Now()
	var result InteractionResult
	_, err := s.coops.Update(ctx, func(coops []model.Coop) ([]model.Coop, error) {
		i := indexCoop(coops, coopID)
		if i < 0 {
			return nil, ErrCoopNotFound
		}
		c := &coops[i]

		oldRank := CoopRankOf(c.Points)
		c.Points += interaction.Points
		newRank := CoopRankOf(c.Points)

		logs := make([]model.CoopLog, 0, min(len(c.Logs)+1, s.logLimit))
		logs = append(logs, model.CoopLog{
			ActionID:   string(interaction.Kind),
			ActionName: interaction.Name,
			Points:     interaction.Points,
			Timestamp:  now,
		})
		for _, l := range c.Logs {
			if len(logs) >= s.logLimit {
				break
			}
			logs = append(logs, l)
		}
		c.Logs = logs

		result = InteractionResult{
			Coop:        *c,
			Interaction: interaction,
			OldRank:     oldRank,
			NewRank:     newRank,
			RankUp:      newRank > oldRank,
		}
		return coops, nil
	})
	if err != nil {
		return nil, err
	}

	if result.RankUp {
		log.Debug().
			Str("coop", coopID).
			Int("old_rank", result.OldRank).
			Int("new_rank", result.NewRank).
			Msg("Coop rank up")
	}
	return &result, nil
}

// Ranking returns up to limit relationships ordered by points, highest
// first. Ties keep creation order. A limit below 1 returns all.
func (s *CoopService) Ranking(ctx context.Context, limit int) ([]model.Coop, error) {
	coops, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(coops, func(a, b model.Coop) int {
		return cmp.Compare(b.Points, a.Points)
	})
	if limit > 0 && len(coops) > limit {
		coops = coops[:limit]
	}
	return coops, nil
}

// Catalog returns the interaction catalog.
func (s *CoopService) Catalog() []catalog.Interaction {
	return slices.Clone(catalog.Interactions)
}

// Categories returns the relationship categories.
func (s *CoopService) Categories() []catalog.Category {
	return slices.Clone(catalog.Categories)
}

// CoopRankOf returns the zero-indexed rank for points.
func CoopRankOf(points int) int {
	return rank.Level(catalog.CoopRankThresholds, points)
}

// CoopRankName returns the display name of the rank for points.
func CoopRankName(points int) string {
	return catalog.CoopRankNames[CoopRankOf(points)]
}

// CoopProgressOf computes progress toward the next coop rank.
func CoopProgressOf(points int) CoopProgress {
	p := rank.Compute(catalog.CoopRankThresholds, points)
	out := CoopProgress{Percent: p.Percent, Remaining: p.Remaining, AtMax: p.AtMax()}
	if !p.AtMax() {
		out.NextRankLabel = catalog.CoopRankNames[p.Next]
	}
	return out
}

func indexCoop(coops []model.Coop, id string) int {
	for i := range coops {
		if coops[i].ID == id {
			return i
		}
	}
	return -1
}
