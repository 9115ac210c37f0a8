package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"persona-tracker/internal/catalog"
	"persona-tracker/internal/config"
	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
)

// Snapshot is the portable export document.
type Snapshot struct {
	Stats      []model.Stat         `json:"stats"`
	Actions    []model.Action       `json:"actions"`
	History    []model.HistoryEntry `json:"history"`
	ExportedAt time.Time            `json:"exportedAt"`
}

// BackupService exports, imports, resets and seeds the store.
type BackupService struct {
	docs         *repository.Documents
	clock        clockwork.Clock
	historyLimit int
}

// NewBackupService creates a new BackupService instance.
func NewBackupService(docs *repository.Documents, clock clockwork.Clock, historyLimit int) *BackupService {
	if historyLimit < 1 {
		historyLimit = config.DefaultHistoryLimit
	}
	return &BackupService{docs: docs, clock: clock, historyLimit: historyLimit}
}

// Export collects stats, actions and history.
func (s *BackupService) Export(ctx context.Context) (*Snapshot, error) {
	stats, err := s.docs.Stats.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export stats: %w", err)
	}
	actions, err := s.docs.Actions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export actions: %w", err)
	}
	history, err := s.docs.History.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export history: %w", err)
	}

	return &Snapshot{
		Stats:      stats,
		Actions:    actions,
		History:    history,
		ExportedAt: s.clock.Now(),
	}, nil
}

// ExportJSON is Export encoded as indented JSON.
func (s *BackupService) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Import applies each of stats, actions and history that data carries.
// Absent and null fields are left untouched. Every present field is
// decoded before anything is written, so a structural error writes nothing
// and returns ErrInvalidPayload.
func (s *BackupService) Import(ctx context.Context, data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: not valid JSON", ErrInvalidPayload)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("%w: expected an object", ErrInvalidPayload)
	}

	var (
		stats   []model.Stat
		actions []model.Action
		history []model.HistoryEntry
	)
	hasStats, err := decodeField(root, "stats", &stats)
	if err != nil {
		return err
	}
	hasActions, err := decodeField(root, "actions", &actions)
	if err != nil {
		return err
	}
	hasHistory, err := decodeField(root, "history", &history)
	if err != nil {
		return err
	}

	if hasStats {
		for i := range stats {
			stats[i] = repository.NormalizeStat(stats[i])
		}
		if err := s.docs.Stats.Save(ctx, stats); err != nil {
			return err
		}
	}
	if hasActions {
		if err := s.docs.Actions.Save(ctx, actions); err != nil {
			return err
		}
	}
	if hasHistory {
		if len(history) > s.historyLimit {
			history = history[:s.historyLimit]
		}
		if err := s.docs.History.Save(ctx, history); err != nil {
			return err
		}
	}

	log.Info().
		Bool("stats", hasStats).
		Bool("actions", hasActions).
		Bool("history", hasHistory).
		Msg("Data imported")
	return nil
}

func decodeField[T any](root gjson.Result, name string, dst *[]T) (bool, error) {
	field := root.Get(name)
	if !field.Exists() || field.Type == gjson.Null {
		return false, nil
	}
	if !field.IsArray() {
		return false, fmt.Errorf("%w: %s must be an array", ErrInvalidPayload, name)
	}
	if err := json.Unmarshal([]byte(field.Raw), dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, name, err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return true, nil
}

// Reset restores the default stats and actions and empties the history.
// Coops, mementos, todos, money and settings are kept.
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.docs.Stats.Save(ctx, catalog.DefaultStats()); err != nil {
		return fmt.Errorf("failed to reset stats: %w", err)
	}
	if err := s.docs.Actions.Save(ctx, catalog.DefaultActions()); err != nil {
		return fmt.Errorf("failed to reset actions: %w", err)
	}
	if err := s.docs.History.Save(ctx, []model.HistoryEntry{}); err != nil {
		return fmt.Errorf("failed to reset history: %w", err)
	}
	log.Info().Msg("Data reset to defaults")
	return nil
}

// Initialize seeds stats, actions, history and settings where absent and
// returns the keys it wrote. Existing documents are never overwritten.
func (s *BackupService) Initialize(ctx context.Context) ([]string, error) {
	seeders := []interface {
		Seed(context.Context) (bool, error)
		Key() string
	}{s.docs.Stats, s.docs.Actions, s.docs.History, s.docs.Settings}

	var seeded []string
	for _, c := range seeders {
		wrote, err := c.Seed(ctx)
		if err != nil {
			return seeded, fmt.Errorf("failed to initialize %s: %w", c.Key(), err)
		}
		if wrote {
			seeded = append(seeded, c.Key())
		}
	}
	if len(seeded) > 0 {
		log.Info().Strs("keys", seeded).Msg("Store initialized")
	}
	return seeded, nil
}
