package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
)

// Totals aggregates the money entries still present in the history log.
type Totals struct {
	Income  int64
	Expense int64 // positive magnitude
	Net     int64
}

// LedgerService owns the running balance.
type LedgerService struct {
	money   *repository.Collection[int64]
	history *HistoryService
}

// NewLedgerService creates a new LedgerService instance.
func NewLedgerService(money *repository.Collection[int64], history *HistoryService) *LedgerService {
	return &LedgerService{money: money, history: history}
}

// Balance returns the current balance. It may be negative.
func (s *LedgerService) Balance(ctx context.Context) (int64, error) {
	balance, err := s.money.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// ApplyDelta adds amount to the balance and records a money entry. Any
// amount is accepted; rejecting zero is left to the caller.
func (s *LedgerService) ApplyDelta(ctx context.Context, amount int64) (int64, error) {
	balance, err := s.money.Update(ctx, func(b int64) (int64, error) {
		return b + amount, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if _, err := s.history.Append(ctx, model.NewMoneyEntry(amount)); err != nil {
		return balance, err
	}

	log.Debug().Int64("amount", amount).Int64("balance", balance).Msg("Balance changed")
	return balance, nil
}

// Totals sums income and expense over the money entries in the log.
func (s *LedgerService) Totals(ctx context.Context) (Totals, error) {
	entries, err := s.history.All(ctx)
	if err != nil {
		return Totals{}, err
	}
	return SumMoney(entries), nil
}

// SumMoney aggregates the money entries of entries.
func SumMoney(entries []model.HistoryEntry) Totals {
	var t Totals
	for _, e := range entries {
		if e.Kind != model.KindMoney || e.Money == nil {
			continue
		}
		if e.Money.Amount >= 0 {
			t.Income += e.Money.Amount
		} else {
			t.Expense -= e.Money.Amount
		}
	}
	t.Net = t.Income - t.Expense
	return t
}
