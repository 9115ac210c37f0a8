package repository

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"persona-tracker/internal/catalog"
	"persona-tracker/internal/model"
	"persona-tracker/internal/pkg/lock"
)

// Document names, prefixed with the configured namespace in the store.
const (
	KeyStats    = "stats"
	KeyActions  = "actions"
	KeyHistory  = "history"
	KeySettings = "settings"
	KeyCoops    = "coops"
	KeyMementos = "mementos"
	KeyTodos    = "todos"
	KeyMoney    = "money"
)

// Documents groups every persisted collection over one store.
type Documents struct {
	Stats    *Collection[[]model.Stat]
	Actions  *Collection[[]model.Action]
	History  *Collection[[]model.HistoryEntry]
	Settings *Collection[model.Settings]
	Coops    *Collection[[]model.Coop]
	Mementos *Collection[[]model.Memento]
	Todos    *Collection[[]model.Todo]
	Money    *Collection[int64]
}

// NewDocuments binds the collections to store under prefix. All
// collections share one KeyLock.
func NewDocuments(store Store, prefix string) *Documents {
	locks := lock.NewKeyLock()
	key := func(name string) string { return prefix + name }

	d := &Documents{
		Stats:    newCollection(store, locks, key(KeyStats), catalog.DefaultStats),
		Actions:  newCollection(store, locks, key(KeyActions), catalog.DefaultActions),
		History:  newCollection(store, locks, key(KeyHistory), emptySlice[model.HistoryEntry]),
		Settings: newCollection(store, locks, key(KeySettings), catalog.DefaultSettings),
		Coops:    newCollection(store, locks, key(KeyCoops), emptySlice[model.Coop]),
		Mementos: newCollection(store, locks, key(KeyMementos), emptySlice[model.Memento]),
		Todos:    newCollection(store, locks, key(KeyTodos), emptySlice[model.Todo]),
		Money:    newCollection(store, locks, key(KeyMoney), func() int64 { return 0 }),
	}
	d.Stats.decode = decodeStats
	d.History.decode = decodeHistory
	return d
}

func emptySlice[T any]() []T {
	return []T{}
}

// decodeStats normalizes every record once at load.
func decodeStats(data []byte) ([]model.Stat, error) {
	var raw []model.Stat
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]model.Stat, len(raw))
	for i, s := range raw {
		out[i] = NormalizeStat(s)
	}
	return out, nil
}

// decodeHistory drops individual entries that cannot be decoded instead of
// discarding the whole log.
func decodeHistory(data []byte) ([]model.HistoryEntry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]model.HistoryEntry, 0, len(raw))
	for i, r := range raw {
		var e model.HistoryEntry
		if err := json.Unmarshal(r, &e); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Dropping undecodable history entry")
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// NormalizeStat turns a stored stat record into its canonical form. Rank
// labels and thresholds missing from older records are filled from the
// default table for the stat's id, or from the generic fallback. The
// value is floored at 0.
func NormalizeStat(raw model.Stat) model.Stat {
	s := raw
	def, known := catalog.DefaultStat(s.ID)

	if len(s.RankLabels) == 0 {
		if known {
			s.RankLabels = def.RankLabels
		} else {
			s.RankLabels = append([]string(nil), catalog.FallbackRankLabels...)
		}
	}
	if len(s.Thresholds) == 0 {
		if known {
			s.Thresholds = def.Thresholds
		} else {
			s.Thresholds = append([]int(nil), catalog.FallbackThresholds...)
		}
	}
	if s.Name == "" && known {
		s.Name = def.Name
	}
	if s.Value < 0 {
		s.Value = 0
	}
	return s
}
