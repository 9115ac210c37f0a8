package service

import (
	"context"
)

// StatLevel is one point of the stat star chart.
type StatLevel struct {
	ID    string
	Name  string
	Level int // 1..5
}

// Summary is the overview card.
type Summary struct {
	TotalLevel  int
	Levels      []StatLevel
	ActionCount int
	Balance     int64
}

// SummaryService derives the overview from the other engines.
type SummaryService struct {
	stats   *StatService
	history *HistoryService
	ledger  *LedgerService
}

// NewSummaryService creates a new SummaryService instance.
func NewSummaryService(stats *StatService, history *HistoryService, ledger *LedgerService) *SummaryService {
	return &SummaryService{stats: stats, history: history, ledger: ledger}
}

// Summary computes the overview.
func (s *SummaryService) Summary(ctx context.Context) (*Summary, error) {
	stats, err := s.stats.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.history.ActionCount(ctx)
	if err != nil {
		return nil, err
	}
	balance, err := s.ledger.Balance(ctx)
	if err != nil {
		return nil, err
	}

	levels := make([]StatLevel, len(stats))
	for i, st := range stats {
		levels[i] = StatLevel{ID: st.ID, Name: st.Name, Level: RankLevel(st) + 1}
	}

	return &Summary{
		TotalLevel:  TotalLevel(stats),
		Levels:      levels,
		ActionCount: count,
		Balance:     balance,
	}, nil
}
