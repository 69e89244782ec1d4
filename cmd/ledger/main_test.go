package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/daily-ledger/internal/aggregate"
	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/testutil"
	"github.com/Veraticus/daily-ledger/internal/verification"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

// setupTestDB points the commands at a fresh database file.
func setupTestDB(t *testing.T) string {
	t.Helper()

	viper.Reset()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledger.db")
	viper.Set("database.path", dbPath)
	viper.Set("backup.dir", dir)

	ledgerOptions = []ledger.Option{
		ledger.WithClock(func() time.Time { return testNow }),
		ledger.WithIDGenerator(testutil.SequentialIDs("id")),
	}

	t.Cleanup(func() {
		viper.Reset()
		ledgerOptions = nil
	})
	return dbPath
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, cmd, strings.NewReader(stdin), args...)
}

func executeWithInput(t *testing.T, cmd *cobra.Command, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(stdin)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"add", "list", "delete", "day", "calendar", "summary", "categories",
		"settings", "backup", "snapshot", "import-ofx", "reset", "browse", "version",
	} {
		assert.True(t, names[want], "missing command %s", want)
	}

	for _, flag := range []string{"config", "db", "log-level", "log-format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, versionCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "ledger version dev")
}

func TestAddListDelete(t *testing.T) {
	setupTestDB(t)

	out, err := execute(t, addCmd(), "", "expense", "12,50", "--category", "food", "--date", "2025-10-01", "--note", "lunch")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "R$ 12,50")
	assert.Contains(t, out, "id-1")

	_, err = execute(t, addCmd(), "", "income", "100", "--category", "salary", "--date", "2025-11-02")
	require.NoError(t, err)

	out, err = execute(t, listCmd(), "", "--month", "2025-10")
	require.NoError(t, err)
	assert.Contains(t, out, "lunch")
	assert.NotContains(t, out, "id-2")

	out, err = execute(t, listCmd(), "", "--type", "income")
	require.NoError(t, err)
	assert.Contains(t, out, "id-2")
	assert.NotContains(t, out, "lunch")

	out, err = execute(t, deleteCmd(), "n\n", "id-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted.")

	out, err = execute(t, deleteCmd(), "y\n", "id-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted id-1")

	_, err = execute(t, deleteCmd(), "", "id-1", "--force")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAddValidation(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		wantErr error
		name    string
		args    []string
	}{
		{name: "zero amount", args: []string{"expense", "0", "--category", "food"}, wantErr: model.ErrMissingAmount},
		{name: "bad amount", args: []string{"expense", "abc", "--category", "food"}, wantErr: model.ErrInvalidAmount},
		{name: "no category", args: []string{"income", "10"}, wantErr: common.ErrMissingCategory},
		{name: "expense category for income", args: []string{"income", "10", "--category", "food"}, wantErr: common.ErrWrongCategory},
		{name: "bad type", args: []string{"transfer", "10", "--category", "food"}, wantErr: model.ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, addCmd(), "", tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotEmpty(t, common.UserMessage(err))
		})
	}

	_, err := execute(t, addCmd(), "", "expense", "1", "--category", "food", "--date", "15/10/2025")
	assert.Contains(t, common.UserMessage(err), "expected YYYY-MM-DD")
}

func TestCalendarAndSummary(t *testing.T) {
	setupTestDB(t)

	for _, args := range [][]string{
		{"income", "100", "--category", "salary", "--date", "2025-09-05"},
		{"income", "200", "--category", "salary", "--date", "2025-10-01"},
		{"expense", "50", "--category", "food", "--date", "2025-10-02"},
	} {
		_, err := execute(t, addCmd(), "", args...)
		require.NoError(t, err)
	}

	out, err := execute(t, calendarCmd(), "", "--month", "2025-10")
	require.NoError(t, err)
	assert.Contains(t, out, "October 2025")
	assert.Contains(t, out, "1+")
	assert.Contains(t, out, "2-")

	_, err = execute(t, calendarCmd(), "", "--month", "2025")
	assert.ErrorIs(t, err, aggregate.ErrInvalidPeriod)

	out, err = execute(t, summaryCmd(), "", "--month", "2025-10")
	require.NoError(t, err)
	assert.Contains(t, out, "PREVIOUS (2025-09)")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "Expenses by category")
	assert.Contains(t, out, "Income by category")

	out, err = execute(t, summaryCmd(), "", "--year", "2025", "--type", "expense")
	require.NoError(t, err)
	assert.Contains(t, out, "2025")
	assert.Contains(t, out, "Expenses by category")
	assert.Contains(t, out, "nothing recorded", "income breakdown is hidden")

	out, err = execute(t, dayCmd(), "", "2025-10-02")
	require.NoError(t, err)
	assert.Contains(t, out, "-R$ 50,00")
}

func TestCategoriesCommands(t *testing.T) {
	setupTestDB(t)

	out, err := execute(t, categoriesCmd(), "", "add", "Pets", "--icon", "🐶")
	require.NoError(t, err)
	assert.Contains(t, out, "Created category 🐶 Pets (id-1)")

	out, err = execute(t, categoriesCmd(), "", "rename", "id-1", "Cats")
	require.NoError(t, err)
	assert.Contains(t, out, "Cats")

	out, err = execute(t, categoriesCmd(), "", "list", "--type", "expense")
	require.NoError(t, err)
	assert.Contains(t, out, "Cats")

	out, err = execute(t, categoriesCmd(), "", "list", "--type", "income")
	require.NoError(t, err)
	assert.NotContains(t, out, "Cats")
	assert.Contains(t, out, "salary")

	_, err = execute(t, categoriesCmd(), "", "add", "  ", "--icon", "🐶")
	assert.ErrorIs(t, err, common.ErrMissingName)

	out, err = execute(t, categoriesCmd(), "", "delete", "id-1", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted category")

	_, err = execute(t, categoriesCmd(), "", "delete", "id-1", "--force")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSettingsCommands(t *testing.T) {
	setupTestDB(t)

	out, err := execute(t, settingsCmd(), "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "BRL (R$, Real Brasileiro)")
	assert.Contains(t, out, "(not set)")

	out, err = execute(t, settingsCmd(), "", "set", "theme", "Dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved")
	assert.Contains(t, out, "dark")

	out, err = execute(t, settingsCmd(), "", "set", "currency", "usd")
	require.NoError(t, err)
	assert.Contains(t, out, "USD")

	_, err = execute(t, settingsCmd(), "", "set", "currency", "XXX")
	assert.ErrorIs(t, err, model.ErrInvalidCurrency)

	_, err = execute(t, settingsCmd(), "", "set", "font", "mono")
	assert.ErrorIs(t, err, errUnknownSetting)

	_, err = execute(t, settingsCmd(), "", "set", "biometric", "maybe")
	assert.Error(t, err)

	out, err = execute(t, settingsCmd(), "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "USD")
	assert.Contains(t, out, "dark")
}

// lineReader produces a single line computed at read time.
type lineReader struct {
	line func() string
	done bool
}

func (r *lineReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	r.done = true
	return copy(p, r.line()+"\n"), nil
}

func TestEmailVerification(t *testing.T) {
	setupTestDB(t)

	var sent string
	original := newVerifier
	newVerifier = func(io.Writer) *verification.Verifier {
		return verification.NewVerifier(verification.SenderFunc(func(_, code string) error {
			sent = code
			return nil
		}))
	}
	t.Cleanup(func() { newVerifier = original })

	_, err := executeWithInput(t, settingsCmd(), strings.NewReader("not-a-code\n"), "email", "me@example.com")
	require.Error(t, err)
	assert.Contains(t, common.UserMessage(err), "Invalid or expired code")

	out, err := executeWithInput(t, settingsCmd(), &lineReader{line: func() string { return sent }}, "email", "Me@Example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Backup email set to me@example.com")

	_, err = execute(t, settingsCmd(), "", "email", "not an email")
	assert.ErrorIs(t, err, common.ErrInvalidEmail)
}

func TestBackupResetRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	backupPath := filepath.Join(filepath.Dir(dbPath), "out.json")

	_, err := execute(t, addCmd(), "", "expense", "9.99", "--category", "entertainment", "--date", "2025-10-03", "--note", "cinema")
	require.NoError(t, err)

	out, err := execute(t, backupCmd(), "", "export", "--output", backupPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 transactions")

	raw, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"exportDate"`)
	assert.Contains(t, string(raw), `"cinema"`)

	out, err = execute(t, resetCmd(), "n\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset canceled.")

	out, err = execute(t, resetCmd(), "", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot saved: auto-reset-")
	assert.Contains(t, out, "All data removed.")

	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions.")

	out, err = execute(t, backupCmd(), "", "import", backupPath, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored 1 transactions")

	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "cinema")

	out, err = execute(t, snapshotCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "auto-reset-")
	assert.Contains(t, out, "auto-import-")
}

func TestBackupExportDefaultName(t *testing.T) {
	dbPath := setupTestDB(t)

	_, err := execute(t, backupCmd(), "", "export")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(filepath.Dir(dbPath), "ledger-backup-2025-10-15.json"))
	assert.NoError(t, err)

	out, err := execute(t, backupCmd(), "", "export", "--output", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"transactions": []`)
}

func TestBackupImportRejectsBadFile(t *testing.T) {
	dbPath := setupTestDB(t)

	_, err := execute(t, addCmd(), "", "income", "5", "--category", "gift")
	require.NoError(t, err)

	bad := filepath.Join(filepath.Dir(dbPath), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"transactions": "oops"}`), 0600))

	_, err = execute(t, backupCmd(), "", "import", bad, "--force")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidBackup)
	assert.Contains(t, common.UserMessage(err), "Could not restore backup")

	out, err := execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "id-1", "state is untouched")
}

func TestSnapshotCommands(t *testing.T) {
	setupTestDB(t)

	_, err := execute(t, addCmd(), "", "income", "5", "--category", "gift")
	require.NoError(t, err)

	out, err := execute(t, snapshotCmd(), "", "create", "before-cleanup", "-m", "manual")
	require.NoError(t, err)
	assert.Contains(t, out, "Created snapshot before-cleanup")

	_, err = execute(t, deleteCmd(), "", "id-1", "--force")
	require.NoError(t, err)

	out, err = execute(t, snapshotCmd(), "", "restore", "before-cleanup", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored snapshot before-cleanup")

	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "id-1")

	out, err = execute(t, snapshotCmd(), "", "delete", "before-cleanup")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted snapshot")

	out, err = execute(t, snapshotCmd(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots.")
}

func TestImportOFX(t *testing.T) {
	setupTestDB(t)
	statement := filepath.Join("testdata", "statement.ofx")

	out, err := execute(t, importOFXCmd(), "", statement, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 3 transactions found in 1 files")
	assert.Contains(t, out, "ACME PAYROLL")

	out, err = execute(t, listCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions.")

	out, err = execute(t, importOFXCmd(), "", statement)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 new transactions (0 already present)")

	out, err = execute(t, importOFXCmd(), "", filepath.Join("testdata", "*.ofx"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 new transactions (3 already present)")

	out, err = execute(t, listCmd(), "", "--month", "2024-01", "--type", "income")
	require.NoError(t, err)
	assert.Contains(t, out, "Salário")

	_, err = execute(t, importOFXCmd(), "", filepath.Join("testdata", "missing-*.qfx"))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseDate("2025-10-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-01", d.Format(model.DayLayout))

	d, err = parseDate("today")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(model.DayLayout), d.Format(model.DayLayout))
}
