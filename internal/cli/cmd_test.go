package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/punchcard/internal/repository"
	"github.com/alexanderramin/punchcard/internal/service"
	"github.com/alexanderramin/punchcard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-03 is a Wednesday.
var cliNow = time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	app       *App
	kv        *repository.MemoryKVStore
	exportDir string
}

// newTestEnv wires an App over an in-memory store with a fixed clock and a
// temporary export directory. Stdin is treated as non-interactive.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := repository.NewMemoryKVStore()
	clock := testutil.FixedClock(cliNow)
	items := service.NewItemService(kv, clock)
	dir := t.TempDir()

	exportTo := func(d string) service.ExportService {
		return service.NewExportService(items, service.NewDirSaver(d), clock, time.Sunday)
	}
	return &testEnv{
		app: &App{
			Items:       items,
			Export:      exportTo(dir),
			ExportTo:    exportTo,
			Interactive: func() bool { return false },
			Now:         clock,
		},
		kv:        kv,
		exportDir: dir,
	}
}

// executeCmd runs a command tree and captures stdout and stderr separately.
func executeCmd(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, errOut, err := executeCmd(t, app, args...)
	require.NoError(t, err)
	require.Empty(t, errOut)
	return out
}

// --- add / list ---

func TestAddCmd_AddsItem(t *testing.T) {
	env := newTestEnv(t)

	out := mustRun(t, env.app, "add", "  Read  ")
	assert.Contains(t, out, "Added Read")

	items, err := env.app.Items.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Read", items[0].Name)
}

func TestAddCmd_BlankNameWarns(t *testing.T) {
	env := newTestEnv(t)

	out, errOut, err := executeCmd(t, env.app, "add", "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Please enter an item name.")
	assert.Zero(t, env.kv.Writes())
}

func TestAddCmd_DuplicateWarns(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	_, errOut, err := executeCmd(t, env.app, "add", "Read")
	require.NoError(t, err)
	assert.Contains(t, errOut, "item name already exists")
}

func TestListCmd_ShowsSelectionAndCounts(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedItems(t, env.kv, service.ItemsKey,
		testutil.NewTestItem("Read", testutil.WithPunches("2024-01-03", "08:00:00", "08:30:00")),
		testutil.NewTestItem("Run"),
	)
	mustRun(t, env.app, "select", "Read")

	out := stripANSI(mustRun(t, env.app, "list"))
	assert.Contains(t, out, "●  Read")
	assert.Contains(t, out, "Run")
	assert.Contains(t, out, "30 minutes ago")
}

func TestListCmd_Empty(t *testing.T) {
	env := newTestEnv(t)
	out := stripANSI(mustRun(t, env.app, "list"))
	assert.Contains(t, out, "No items yet")
}

// --- select / punch / cancel ---

func TestSelectCmd_UnknownItemWarns(t *testing.T) {
	env := newTestEnv(t)

	_, errOut, err := executeCmd(t, env.app, "select", "Ghost")
	require.NoError(t, err)
	assert.Contains(t, errOut, "item not found")
}

func TestPunchCmd_RequiresSelection(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	_, errOut, err := executeCmd(t, env.app, "punch")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Please select an item first")
}

func TestPunchCmd_UsesSelectionAndToday(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")
	mustRun(t, env.app, "select", "Read")

	out := stripANSI(mustRun(t, env.app, "punch"))
	assert.Contains(t, out, "Punched Read on 2024-01-03 (1 punch that day)")

	out = stripANSI(mustRun(t, env.app, "punch"))
	assert.Contains(t, out, "(2 punches that day)")

	item, err := env.app.Items.Get(context.Background(), "Read")
	require.NoError(t, err)
	require.Len(t, item.Records["2024-01-03"], 2)
	assert.True(t, cliNow.Equal(item.Records["2024-01-03"][1]))
}

func TestPunchCmd_ItemAndDateFlags(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	out := stripANSI(mustRun(t, env.app, "punch", "--item", "Read", "--date", "2023-12-31"))
	assert.Contains(t, out, "Punched Read on 2023-12-31")
}

func TestPunchCmd_InvalidDateWarns(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	_, errOut, err := executeCmd(t, env.app, "punch", "--item", "Read", "--date", "03/01/2024")
	require.NoError(t, err)
	assert.Contains(t, errOut, "invalid date")
}

func TestCancelCmd_RemovesLastPunch(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedItems(t, env.kv, service.ItemsKey,
		testutil.NewTestItem("Read", testutil.WithPunches("2024-01-03", "08:00:00", "10:00:00")),
	)
	mustRun(t, env.app, "select", "Read")

	out := stripANSI(mustRun(t, env.app, "cancel"))
	assert.Contains(t, out, "Cancelled the last punch of Read on 2024-01-03")

	item, err := env.app.Items.Get(context.Background(), "Read")
	require.NoError(t, err)
	require.Len(t, item.Records["2024-01-03"], 1)
	assert.Equal(t, 8, item.Records["2024-01-03"][0].Hour())
}

func TestCancelCmd_NothingToCancel(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	out := stripANSI(mustRun(t, env.app, "cancel", "--item", "Read"))
	assert.Contains(t, out, "No punch to cancel for Read on 2024-01-03")
}

// --- remove ---

func TestRemoveCmd_RefusesWithoutTerminalOrYes(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	_, errOut, err := executeCmd(t, env.app, "remove", "Read")
	require.NoError(t, err)
	assert.Contains(t, errOut, "pass --yes")

	_, err = env.app.Items.Get(context.Background(), "Read")
	assert.NoError(t, err)
}

func TestRemoveCmd_YesDeletesAndClearsSelection(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")
	mustRun(t, env.app, "select", "Read")

	out := stripANSI(mustRun(t, env.app, "remove", "Read", "--yes"))
	assert.Contains(t, out, "Deleted Read")

	selected, err := env.app.Items.Selected(context.Background())
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestRemoveCmd_InteractiveDecline(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	var asked string
	env.app.Interactive = func() bool { return true }
	env.app.Confirm = service.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		asked = prompt
		return false, nil
	})

	out := stripANSI(mustRun(t, env.app, "remove", "Read"))
	assert.Contains(t, out, "Kept Read")
	assert.Equal(t, `Delete item "Read" and all of its punches?`, asked)
}

func TestRemoveCmd_UnknownItemWarns(t *testing.T) {
	env := newTestEnv(t)

	_, errOut, err := executeCmd(t, env.app, "remove", "Ghost", "--yes")
	require.NoError(t, err)
	assert.Contains(t, errOut, "item not found")
}

// --- show ---

func TestShowCmd_DefaultsToSelection(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedItems(t, env.kv, service.ItemsKey,
		testutil.NewTestItem("Read",
			testutil.WithPunches("2024-01-03", "09:00:00"),
			testutil.WithPunches("2024-01-01", "07:15:00"),
		),
	)
	mustRun(t, env.app, "select", "Read")

	out := stripANSI(mustRun(t, env.app, "show"))
	assert.Contains(t, out, "READ")
	assert.Contains(t, out, "1. 07:15:00")
	assert.Contains(t, out, "2 punches across 2 days")
}

// --- export ---

func TestExportCmd_WritesReport(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedItems(t, env.kv, service.ItemsKey,
		testutil.NewTestItem("Read",
			testutil.WithPunches("2024-01-03", "09:00:00"),
			testutil.WithPunches("2023-12-20", "09:00:00"),
		),
	)

	out := stripANSI(mustRun(t, env.app, "export", "Read", "--interval", "monthly"))
	assert.Contains(t, out, "Exported Read (monthly)")
	assert.Contains(t, out, "1 punch on 1 of 31 days")

	path := filepath.Join(env.exportDir, "Read-打卡记录-2024-01-03-monthly.txt")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "项目名称: Read\n打卡记录 (monthly):\n2024-01-03:\n    1. 09:00:00\n", string(content))
}

func TestExportCmd_DirFlag(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")
	other := t.TempDir()

	mustRun(t, env.app, "export", "Read", "-i", "yearly", "--dir", other)

	_, err := os.Stat(filepath.Join(other, "Read-打卡记录-2024-01-03-yearly.txt"))
	assert.NoError(t, err)
}

func TestExportCmd_RejectsUnknownInterval(t *testing.T) {
	env := newTestEnv(t)
	mustRun(t, env.app, "add", "Read")

	_, _, err := executeCmd(t, env.app, "export", "Read", "--interval", "daily")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid interval kind")
}

func TestExportCmd_UnknownItemWarns(t *testing.T) {
	env := newTestEnv(t)

	_, errOut, err := executeCmd(t, env.app, "export", "Ghost")
	require.NoError(t, err)
	assert.Contains(t, errOut, "item not found")

	entries, err := os.ReadDir(env.exportDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// --- root ---

func TestRootCmd_PrintsHelpWhenNotInteractive(t *testing.T) {
	env := newTestEnv(t)
	out := mustRun(t, env.app)
	assert.Contains(t, out, "Punch-card habit tracker")
	assert.Contains(t, out, "export")
}
