package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"persona-tracker/internal/model"
	"persona-tracker/internal/rank"
	"persona-tracker/internal/repository"
)

// StatProgress is the progress bar of one stat.
type StatProgress struct {
	Percent   float64
	NextLabel string // empty at the max level
	Remaining int
	Level     int // 1-indexed
	AtMax     bool
}

// StatService owns the five core attributes.
type StatService struct {
	stats *repository.Collection[[]model.Stat]
}

// NewStatService creates a new StatService instance.
func NewStatService(stats *repository.Collection[[]model.Stat]) *StatService {
	return &StatService{stats: stats}
}

// GetStats returns the persisted stats in canonical form.
func (s *StatService) GetStats(ctx context.Context) ([]model.Stat, error) {
	stats, err := s.stats.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// Stat returns one stat by id.
func (s *StatService) Stat(ctx context.Context, id string) (model.Stat, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return model.Stat{}, err
	}
	for _, st := range stats {
		if st.ID == id {
			return st, nil
		}
	}
	return model.Stat{}, ErrStatNotFound
}

// AddDelta adds amount to the stat's value, flooring the result at 0.
func (s *StatService) AddDelta(ctx context.Context, id string, amount int) (model.Stat, error) {
	var updated model.Stat
	_, err := s.stats.Update(ctx, func(stats []model.Stat) ([]model.Stat, error) {
		i := indexStat(stats, id)
		if i < 0 {
			return nil, ErrStatNotFound
		}
		stats[i].Value = clampValue(stats[i].Value + amount)
		updated = stats[i]
		return stats, nil
	})
	if err != nil {
		return model.Stat{}, err
	}

	log.Debug().Str("stat", id).Int("delta", amount).Int("value", updated.Value).Msg("Stat changed")
	return updated, nil
}

// Update edits a stat's name and value in place.
func (s *StatService) Update(ctx context.Context, id, name string, value int) (model.Stat, error) {
	var updated model.Stat
	_, err := s.stats.Update(ctx, func(stats []model.Stat) ([]model.Stat, error) {
		i := indexStat(stats, id)
		if i < 0 {
			return nil, ErrStatNotFound
		}
		stats[i].Name = name
		stats[i].Value = clampValue(value)
		updated = stats[i]
		return stats, nil
	})
	if err != nil {
		return model.Stat{}, err
	}
	return updated, nil
}

// applyEffects applies every effect whose stat exists in one write and
// returns those that were applied. Unknown stat ids are skipped.
func (s *StatService) applyEffects(ctx context.Context, effects []model.Effect) ([]model.AppliedEffect, error) {
	var applied []model.AppliedEffect
	_, err := s.stats.Update(ctx, func(stats []model.Stat) ([]model.Stat, error) {
		applied = make([]model.AppliedEffect, 0, len(effects))
		for _, e := range effects {
			i := indexStat(stats, e.StatID)
			if i < 0 {
				log.Debug().Str("stat", e.StatID).Msg("Skipping effect on unknown stat")
				continue
			}
			stats[i].Value = clampValue(stats[i].Value + e.Value)
			applied = append(applied, model.AppliedEffect{
				StatID:   stats[i].ID,
				StatName: stats[i].Name,
				Value:    e.Value,
			})
		}
		return stats, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply effects: %w", err)
	}
	return applied, nil
}

// RankLevel returns the zero-indexed rank of st.
func RankLevel(st model.Stat) int {
	return rank.Level(st.Thresholds, st.Value)
}

// RankName returns the label of st's current rank.
func RankName(st model.Stat) string {
	level := RankLevel(st)
	if level < len(st.RankLabels) {
		return st.RankLabels[level]
	}
	return ""
}

// Progress computes st's progress toward its next rank.
func Progress(st model.Stat) StatProgress {
	p := rank.Compute(st.Thresholds, st.Value)
	out := StatProgress{
		Percent:   p.Percent,
		Remaining: p.Remaining,
		Level:     p.Level + 1,
		AtMax:     p.AtMax(),
	}
	if !p.AtMax() && p.Next < len(st.RankLabels) {
		out.NextLabel = st.RankLabels[p.Next]
	}
	return out
}

// TotalLevel sums the 1-indexed ranks of stats.
func TotalLevel(stats []model.Stat) int {
	total := 0
	for _, st := range stats {
		total += RankLevel(st) + 1
	}
	return total
}

func indexStat(stats []model.Stat, id string) int {
	for i := range stats {
		if stats[i].ID == id {
			return i
		}
	}
	return -1
}

func clampValue(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
