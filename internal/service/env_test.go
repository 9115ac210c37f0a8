package service

import (
	"time"

	"github.com/jonboulle/clockwork"

	"persona-tracker/internal/repository"
)

type testEnv struct {
	clock    *clockwork.FakeClock
	docs     *repository.Documents
	stats    *StatService
	history  *HistoryService
	actions  *ActionService
	coops    *CoopService
	todos    *TodoService
	mementos *MementoService
	ledger   *LedgerService
	backup   *BackupService
	settings *SettingsService
	summary  *SummaryService
}

var testStart = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	return newTestEnvWithLimits(500, 100)
}

func newTestEnvWithLimits(historyLimit, coopLogLimit int) *testEnv {
	clock := clockwork.NewFakeClockAt(testStart)
	docs := repository.NewDocuments(repository.NewMemoryStore(), "persona_")

	stats := NewStatService(docs.Stats)
	history := NewHistoryService(docs.History, clock, historyLimit, time.UTC)
	todos := NewTodoService(docs.Todos, clock)
	ledger := NewLedgerService(docs.Money, history)

	return &testEnv{
		clock:    clock,
		docs:     docs,
		stats:    stats,
		history:  history,
		actions:  NewActionService(docs.Actions, stats, history),
		coops:    NewCoopService(docs.Coops, clock, coopLogLimit),
		todos:    todos,
		mementos: NewMementoService(docs.Mementos, todos, clock),
		ledger:   ledger,
		backup:   NewBackupService(docs, clock, historyLimit),
		settings: NewSettingsService(docs.Settings),
		summary:  NewSummaryService(stats, history, ledger),
	}
}
