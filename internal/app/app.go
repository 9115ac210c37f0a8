// Package app wires the engines into the persona command tree.
package app

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"persona-tracker/internal/config"
	"persona-tracker/internal/handler"
	"persona-tracker/internal/model"
	"persona-tracker/internal/repository"
	"persona-tracker/internal/service"
)

// Services groups every engine built over one set of documents.
type Services struct {
	Stats    *service.StatService
	Actions  *service.ActionService
	History  *service.HistoryService
	Coops    *service.CoopService
	Todos    *service.TodoService
	Mementos *service.MementoService
	Ledger   *service.LedgerService
	Settings *service.SettingsService
	Summary  *service.SummaryService
	Backup   *service.BackupService
}

// NewServices builds the engines over docs.
func NewServices(docs *repository.Documents, clock clockwork.Clock, cfg *config.Config) *Services {
	loc := cfg.Location()

	stats := service.NewStatService(docs.Stats)
	history := service.NewHistoryService(docs.History, clock, cfg.History.Limit, loc)
	ledger := service.NewLedgerService(docs.Money, history)
	todos := service.NewTodoService(docs.Todos, clock)

	return &Services{
		Stats:    stats,
		Actions:  service.NewActionService(docs.Actions, stats, history),
		History:  history,
		Coops:    service.NewCoopService(docs.Coops, clock, cfg.Coop.LogLimit),
		Todos:    todos,
		Mementos: service.NewMementoService(docs.Mementos, todos, clock),
		Ledger:   ledger,
		Settings: service.NewSettingsService(docs.Settings),
		Summary:  service.NewSummaryService(stats, history, ledger),
		Backup:   service.NewBackupService(docs, clock, cfg.History.Limit),
	}
}

// Dependencies holds everything the command tree needs.
type Dependencies struct {
	Config   *config.Config
	Clock    clockwork.Clock
	Services *Services
}

// App is the root persona command with every handler registered.
type App struct {
	root  *cobra.Command
	clock clockwork.Clock
	loc   *time.Location
}

// New creates the command tree.
func New(deps *Dependencies) *App {
	a := &App{
		clock: deps.Clock,
		loc:   deps.Config.Location(),
	}

	a.root = &cobra.Command{
		Use:           "persona",
		Short:         "Track stats, relationships, tasks and money",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	svc := deps.Services
	handlers := []interface{ Commands() []*cobra.Command }{
		handler.NewStatHandler(svc.Stats),
		handler.NewActionHandler(svc.Actions, svc.Stats),
		handler.NewHistoryHandler(svc.History, a.loc),
		handler.NewCoopHandler(svc.Coops),
		handler.NewTodoHandler(svc.Todos, a.today),
		handler.NewMementoHandler(svc.Mementos, a.today),
		handler.NewMoneyHandler(svc.Ledger),
		handler.NewSummaryHandler(svc.Summary, svc.Settings),
		handler.NewBackupHandler(svc.Backup),
	}
	for _, h := range handlers {
		a.root.AddCommand(h.Commands()...)
	}

	a.registerMiddleware()
	return a
}

// registerMiddleware installs logging on the root and panic recovery on
// every runnable command.
func (a *App) registerMiddleware() {
	a.root.PersistentPreRun = LoggingMiddleware()
	walk(a.root, RecoveryMiddleware)
}

// today returns the current calendar day in the configured zone.
func (a *App) today() string {
	return a.clock.Now().In(a.loc).Format(model.DateLayout)
}

// Root returns the root command.
func (a *App) Root() *cobra.Command {
	return a.root
}

// Execute runs the command line in args.
func (a *App) Execute(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.root.ExecuteContext(ctx)
}

func walk(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, c := range cmd.Commands() {
		walk(c, fn)
	}
}
