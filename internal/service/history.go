package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"persona-tracker/internal/config"
	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
)

// Display labels for history days.
const (
	LabelToday     = "today"
	LabelYesterday = "yesterday"
)

// DayGroup is the history of one calendar day, newest first.
type DayGroup struct {
	Label   string
	Day     time.Time // midnight in the grouping location
	Entries []model.HistoryEntry
}

// HistoryService owns the shared bounded log.
type HistoryService struct {
	history *repository.Collection[[]model.HistoryEntry]
	clock   clockwork.Clock
	limit   int
	loc     *time.Location
}

// NewHistoryService creates a new HistoryService instance.
func NewHistoryService(
	history *repository.Collection[[]model.HistoryEntry],
	clock clockwork.Clock,
	limit int,
	loc *time.Location,
) *HistoryService {
	if loc == nil {
		loc = time.Local
	}
	if limit < 1 {
		limit = config.DefaultHistoryLimit
	}
	return &HistoryService{history: history, clock: clock, limit: limit, loc: loc}
}

// Append stamps entry with a fresh id and timestamp, prepends it and evicts
// the oldest entries beyond the limit. Ids are strictly increasing.
func (s *HistoryService) Append(ctx context.Context, entry model.HistoryEntry) (model.HistoryEntry, error) {
	now := s.clock.Now()
	_, err := s.history.Update(ctx, func(entries []model.HistoryEntry) ([]model.HistoryEntry, error) {
		id := now.UnixMilli()
		if len(entries) > 0 && id <= entries[0].ID {
			id = entries[0].ID + 1
		}
		entry.ID = id
		entry.Timestamp = now

		next := make([]model.HistoryEntry, 0, min(len(entries)+1, s.limit))
		next = append(next, entry)
		for _, e := range entries {
			if len(next) >= s.limit {
				break
			}
			next = append(next, e)
		}
		return next, nil
	})
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("failed to append history: %w", err)
	}
	return entry, nil
}

// All returns the log, newest first.
func (s *HistoryService) All(ctx context.Context) ([]model.HistoryEntry, error) {
	entries, err := s.history.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return entries, nil
}

// Clear empties the log.
func (s *HistoryService) Clear(ctx context.Context) error {
	if err := s.history.Save(ctx, []model.HistoryEntry{}); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// ActionCount counts executed actions in the log.
func (s *HistoryService) ActionCount(ctx context.Context) (int, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.Kind == model.KindAction {
			n++
		}
	}
	return n, nil
}

// GroupByDisplayDate buckets the log by calendar day relative to now.
func (s *HistoryService) GroupByDisplayDate(ctx context.Context) ([]DayGroup, error) {
	entries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return GroupByDisplayDate(entries, s.clock.Now(), s.loc), nil
}

// GroupByDisplayDate buckets entries by the calendar day of their timestamp
// in loc, keeping input order within and across groups.
func GroupByDisplayDate(entries []model.HistoryEntry, now time.Time, loc *time.Location) []DayGroup {
	var groups []DayGroup
	index := make(map[time.Time]int)
	for _, e := range entries {
		day := startOfDay(e.Timestamp, loc)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Label: DateLabel(e.Timestamp, now, loc), Day: day})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// DateLabel returns "today", "yesterday" or "M/D" for t relative to now.
func DateLabel(t, now time.Time, loc *time.Location) string {
	day := startOfDay(t, loc)
	today := startOfDay(now, loc)
	switch {
	case day.Equal(today):
		return LabelToday
	case day.Equal(today.AddDate(0, 0, -1)):
		return LabelYesterday
	default:
		return fmt.Sprintf("%d/%d", int(day.Month()), day.Day())
	}
}

// TimeLabel formats t as HH:MM in loc.
func TimeLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
