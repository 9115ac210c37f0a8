package handler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"persona-tracker/internal/repository"
	"persona-tracker/internal/service"
)

type testCLI struct {
	clock    *clockwork.FakeClock
	docs     *repository.Documents
	stats    *service.StatService
	actions  *service.ActionService
	history  *service.HistoryService
	coops    *service.CoopService
	todos    *service.TodoService
	mementos *service.MementoService
	ledger   *service.LedgerService
	settings *service.SettingsService
	summary  *service.SummaryService
	backup   *service.BackupService
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC))
	docs := repository.NewDocuments(repository.NewMemoryStore(), "persona_")

	stats := service.NewStatService(docs.Stats)
	history := service.NewHistoryService(docs.History, clock, 500, time.UTC)
	ledger := service.NewLedgerService(docs.Money, history)
	todos := service.NewTodoService(docs.Todos, clock)

	c := &testCLI{
		clock:    clock,
		docs:     docs,
		stats:    stats,
		actions:  service.NewActionService(docs.Actions, stats, history),
		history:  history,
		coops:    service.NewCoopService(docs.Coops, clock, 100),
		todos:    todos,
		mementos: service.NewMementoService(docs.Mementos, todos, clock),
		ledger:   ledger,
		settings: service.NewSettingsService(docs.Settings),
		summary:  service.NewSummaryService(stats, history, ledger),
		backup:   service.NewBackupService(docs, clock, 500),
	}
	_, err := c.backup.Initialize(context.Background())
	require.NoError(t, err)
	return c
}

func (c *testCLI) today() string {
	return c.clock.Now().UTC().Format("2006-01-02")
}

// root builds a fresh command tree so flag state never leaks between runs.
func (c *testCLI) root() *cobra.Command {
	root := &cobra.Command{Use: "persona", SilenceUsage: true, SilenceErrors: true}
	for _, h := range []interface{ Commands() []*cobra.Command }{
		NewStatHandler(c.stats),
		NewActionHandler(c.actions, c.stats),
		NewHistoryHandler(c.history, time.UTC),
		NewCoopHandler(c.coops),
		NewTodoHandler(c.todos, c.today),
		NewMementoHandler(c.mementos, c.today),
		NewMoneyHandler(c.ledger),
		NewSummaryHandler(c.summary, c.settings),
		NewBackupHandler(c.backup),
	} {
		root.AddCommand(h.Commands()...)
	}
	return root
}

func (c *testCLI) run(args ...string) (string, error) {
	root := c.root()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func (c *testCLI) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func TestStats_ListAndEdit(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun(t, "stats")
	assert.Contains(t, out, "knowledge")
	assert.Contains(t, out, "Total level: 5")

	out = c.mustRun(t, "stats", "edit", "knowledge", "--value", "40")
	assert.Contains(t, out, "knowledge: 知識 = 40")

	st, err := c.stats.Stat(context.Background(), "knowledge")
	require.NoError(t, err)
	assert.Equal(t, 40, st.Value)
}

func TestStats_EditRejectsBadInput(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run("stats", "edit", "knowledge", "--value", "-1")
	assert.ErrorIs(t, err, ErrNegativeStatValue)

	_, err = c.run("stats", "edit", "knowledge", "--name", "   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = c.run("stats", "edit", "luck", "--value", "3")
	assert.ErrorIs(t, err, service.ErrStatNotFound)
}

func TestAct_AppliesEffectsAndLogs(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun(t, "act", "a1")
	assert.Contains(t, out, "読書")
	assert.Contains(t, out, "知識 +3 -> 3")

	out = c.mustRun(t, "history")
	assert.Contains(t, out, "today")
	assert.Contains(t, out, "09:30")
	assert.Contains(t, out, "読書")
}

func TestActions_AddValidatesEffects(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run("actions", "add", "--name", "Run")
	assert.ErrorIs(t, err, ErrNoEffects)

	_, err = c.run("actions", "add", "--name", "Run", "--effect", "guts")
	assert.ErrorIs(t, err, ErrInvalidEffect)

	_, err = c.run("actions", "add", "--name", "", "--effect", "guts:+2")
	assert.ErrorIs(t, err, ErrEmptyName)

	out := c.mustRun(t, "actions", "add", "--name", "Run", "--effect", "guts:+2", "--effect", "charm:1")
	assert.Contains(t, out, "Created Run")

	out = c.mustRun(t, "actions")
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "guts +2, charm +1")
}

func TestActions_DeleteUnknown(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run("actions", "delete", "nope")
	assert.ErrorIs(t, err, service.ErrActionNotFound)
}

func TestCoop_InteractRankUp(t *testing.T) {
	c := newTestCLI(t)
	ctx := context.Background()

	c.mustRun(t, "coop", "add", "Ryuji", "--category", "friend")
	coops, err := c.coops.List(ctx)
	require.NoError(t, err)
	require.Len(t, coops, 1)
	id := coops[0].ID

	c.mustRun(t, "coop", "interact", id, "meet")
	c.mustRun(t, "coop", "interact", id, "meet")
	out := c.mustRun(t, "coop", "interact", id, "contact")
	assert.Contains(t, out, "RANK UP!")

	out = c.mustRun(t, "coop", "ranking")
	assert.Contains(t, out, "Ryuji")
	assert.Contains(t, out, "5 pt")
}

func TestCoop_Validation(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run("coop", "add", "Ann", "--category", "rival")
	assert.ErrorIs(t, err, service.ErrInvalidCategory)

	_, err = c.run("coop", "add", " ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = c.run("coop", "delete-all")
	assert.Error(t, err)
}

func TestTodo_AddToggleList(t *testing.T) {
	c := newTestCLI(t)
	ctx := context.Background()

	c.mustRun(t, "todo", "add", "Buy milk")
	c.mustRun(t, "todo", "add", "Dentist", "--date", "2024-05-11")

	todos, err := c.todos.ListByDate(ctx, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, todos, 1)

	out := c.mustRun(t, "todo", "toggle", todos[0].ID)
	assert.Contains(t, out, "[x] Buy milk")

	out = c.mustRun(t, "todo", "list", "--date", "2024-05-11")
	assert.Contains(t, out, "[ ] Dentist")
	assert.NotContains(t, out, "Buy milk")

	_, err = c.run("todo", "add", "x", "--date", "05/11/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = c.run("todo", "add", "  ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestMemento_DepthAndConvert(t *testing.T) {
	c := newTestCLI(t)
	ctx := context.Background()

	c.mustRun(t, "memento", "add", "Learn Go", "--tag", "study", "--tag", " ")
	ms, err := c.mementos.List(ctx)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	id := ms[0].ID
	assert.Equal(t, []string{"study"}, ms[0].Tags)

	_, err = c.run("memento", "surface", id)
	assert.ErrorIs(t, err, ErrDepthLimit)

	c.mustRun(t, "memento", "deepen", id)
	c.mustRun(t, "memento", "deepen", id)
	_, err = c.run("memento", "deepen", id)
	assert.ErrorIs(t, err, ErrDepthLimit)

	c.mustRun(t, "memento", "convert", id)
	_, err = c.run("memento", "convert", id)
	assert.ErrorIs(t, err, ErrConvertRefused)

	todos, err := c.todos.ListByDate(ctx, "2024-05-10")
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "[study] Learn Go", todos[0].Text)
}

func TestMoney_IncomeAndExpense(t *testing.T) {
	c := newTestCLI(t)

	out := c.mustRun(t, "money", "income", "12,000")
	assert.Contains(t, out, "¥12,000")

	out = c.mustRun(t, "money", "expense", "13000")
	assert.Contains(t, out, "-¥1,000")

	out = c.mustRun(t, "money")
	assert.Contains(t, out, "Balance: -¥1,000")
	assert.Contains(t, out, "Income:  ¥12,000")

	for _, bad := range []string{"0", "1.5", "abc"} {
		_, err := c.run("money", "income", bad)
		assert.ErrorIs(t, err, ErrInvalidAmount, bad)
	}
}

func TestSummaryAndSettings(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "act", "a1")
	c.mustRun(t, "money", "income", "500")

	out := c.mustRun(t, "summary")
	assert.Contains(t, out, "Total Lv 5")
	assert.Contains(t, out, "Actions 1")
	assert.Contains(t, out, "¥500")

	out = c.mustRun(t, "settings", "dark-mode", "on")
	assert.Contains(t, out, "dark-mode: on")
	out = c.mustRun(t, "settings")
	assert.Contains(t, out, "dark-mode: on")

	_, err := c.run("settings", "dark-mode", "maybe")
	assert.ErrorIs(t, err, ErrInvalidToggle)
}

func TestExportImportRoundTrip(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "act", "a3")

	path := filepath.Join(t.TempDir(), "backup.json")
	c.mustRun(t, "export", "--output", path)

	c.mustRun(t, "reset", "--yes")
	st, err := c.stats.Stat(context.Background(), "knowledge")
	require.NoError(t, err)
	assert.Equal(t, 0, st.Value)

	c.mustRun(t, "import", path)
	st, err = c.stats.Stat(context.Background(), "knowledge")
	require.NoError(t, err)
	assert.Equal(t, 5, st.Value)
}

func TestImport_RejectsMalformedFile(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stats": 3}`), 0o600))

	_, err := c.run("import", path)
	assert.ErrorIs(t, err, ErrImportFailed)

	_, err = c.run("reset")
	assert.Error(t, err)
}

func TestHistoryClear(t *testing.T) {
	c := newTestCLI(t)
	c.mustRun(t, "act", "a1")
	c.mustRun(t, "history", "clear", "--yes")

	out := c.mustRun(t, "history")
	assert.Contains(t, out, "No history yet.")
}

func TestMissingArguments(t *testing.T) {
	c := newTestCLI(t)
	_, err := c.run("act")
	require.Error(t, err)
	assert.Equal(t, "action id is required", err.Error())
}
