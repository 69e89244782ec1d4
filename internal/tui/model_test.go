package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/testutil"
	"github.com/Veraticus/daily-ledger/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

func keyPress(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestModel(t *testing.T) (Model, *ledger.Ledger) {
	t.Helper()
	ctx := context.Background()
	l := ledger.New(testutil.SetupTestStore(t),
		ledger.WithClock(func() time.Time { return testNow }),
		ledger.WithIDGenerator(testutil.SequentialIDs("id")),
	)

	for _, in := range []ledger.NewTransaction{
		{Date: time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), Type: model.TypeExpense, Amount: "40", CategoryID: model.CategoryFood, Note: "market"},
		{Date: time.Date(2025, 10, 15, 18, 0, 0, 0, time.UTC), Type: model.TypeIncome, Amount: "100", CategoryID: model.CategorySalary},
		{Date: time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC), Type: model.TypeExpense, Amount: "7", CategoryID: model.CategoryTransport},
	} {
		_, err := l.AddTransaction(ctx, in)
		require.NoError(t, err)
	}

	m := New(ctx, l, WithClock(func() time.Time { return testNow }), WithSize(120, 40))
	return run(t, m, m.Init()), l
}

// run feeds the result of cmd back into the model, as the program loop would.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestInitLoadsCurrentMonth(t *testing.T) {
	m, _ := newTestModel(t)

	assert.True(t, m.ready)
	assert.Equal(t, "2025-10", m.view.Period.Key())
	assert.Equal(t, "2025-10-15", m.Selected().Format(model.DayLayout))

	out := m.View()
	assert.Contains(t, out, "October 2025")
	assert.Contains(t, out, "15•")
	assert.Contains(t, out, "market")
	assert.Contains(t, out, "= R$ 60,00")
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(t, m, keyPress("l"))
	assert.Nil(t, cmd, "moving within the month needs no reload")
	assert.Equal(t, 16, m.Selected().Day())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 9, m.Selected().Day())

	m, cmd = press(t, m, keyPress("]"))
	require.NotNil(t, cmd)
	m = run(t, m, cmd)
	assert.Equal(t, "2025-11-09", m.Selected().Format(model.DayLayout))
	assert.Equal(t, "2025-11", m.view.Period.Key())
	assert.Contains(t, m.View(), "November 2025")

	m, cmd = press(t, m, keyPress("t"))
	m = run(t, m, cmd)
	assert.Equal(t, "2025-10-15", m.Selected().Format(model.DayLayout))
	assert.Equal(t, "2025-10", m.view.Period.Key())
}

func TestShiftMonthClampsDay(t *testing.T) {
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-28", shiftMonth(jan31, 1).Format(model.DayLayout))
	assert.Equal(t, "2024-12-31", shiftMonth(jan31, -1).Format(model.DayLayout))
}

func TestDeleteFromDayPane(t *testing.T) {
	m, l := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, FocusDay, m.focus)

	m, _ = press(t, m, keyPress("j"))
	assert.Equal(t, 1, m.cursor)
	m, _ = press(t, m, keyPress("j"))
	assert.Equal(t, 1, m.cursor, "cursor stops at the last transaction")

	m, cmd := press(t, m, keyPress("d"))
	require.NotNil(t, cmd)
	m = run(t, m, cmd)
	assert.Contains(t, m.status, "Deleted")

	// The delete message triggers a reload.
	m = run(t, m, m.loadMonth())
	assert.Len(t, m.selectedDay().Transactions, 1)
	assert.Equal(t, 0, m.cursor)

	txns, err := l.Transactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusCalendar, m.focus)
}

func TestEnterOnEmptyDayStaysOnCalendar(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, keyPress("h"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, FocusCalendar, m.focus)
	assert.Contains(t, m.View(), "No transactions")
}

func TestThemeFollowsSettings(t *testing.T) {
	m, l := newTestModel(t)
	_, err := l.UpdateSettings(context.Background(), func(s *model.AppSettings) error {
		s.Theme = model.ThemeDark
		s.Currency = "USD"
		return nil
	})
	require.NoError(t, err)

	m = run(t, m, m.loadMonth())
	assert.Equal(t, themes.Dark.Primary, m.theme.Primary)
	assert.Contains(t, m.View(), "$ 60,00")

	fixed := New(context.Background(), l, WithTheme(themes.Light), WithClock(func() time.Time { return testNow }))
	fixed = run(t, fixed, fixed.Init())
	assert.Equal(t, themes.Light.Primary, fixed.theme.Primary)
}

type failingLedger struct{ Ledger }

func (failingLedger) Settings(context.Context) (model.AppSettings, error) {
	return model.AppSettings{}, errors.New("disk on fire")
}

func TestLoadErrorIsShown(t *testing.T) {
	m := New(context.Background(), failingLedger{}, WithClock(func() time.Time { return testNow }))
	m = run(t, m, m.Init())
	assert.False(t, m.ready)
	assert.Contains(t, m.View(), "disk on fire")
}

func TestQuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, keyPress("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "previous month")

	m, cmd := press(t, m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestRunRequiresLedger(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil))
}
