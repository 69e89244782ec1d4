// Package tui is the interactive month calendar for browsing the ledger.
package tui

import (
	"context"
	"time"

	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Focus is the pane receiving navigation keys.
type Focus int

const (
	FocusCalendar Focus = iota
	FocusDay
)

// Model holds the main TUI state.
type Model struct {
	selected    time.Time
	today       time.Time
	ctx         context.Context
	ledger      Ledger
	lastError   error
	fixedTheme  *themes.Theme
	status      string
	settings    model.AppSettings
	view        ledger.MonthView
	theme       themes.Theme
	help        help.Model
	keymap      KeyMap
	width       int
	height      int
	cursor      int
	focus       Focus
	loading     bool
	ready       bool
	quitting    bool
}

// New creates the browser positioned on today.
func New(ctx context.Context, l Ledger, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	now := cfg.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	theme := themes.Light
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}

	return Model{
		ctx:        ctx,
		ledger:     l,
		today:      today,
		selected:   today,
		settings:   model.DefaultSettings(),
		theme:      theme,
		fixedTheme: cfg.Theme,
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		width:      cfg.Width,
		height:     cfg.Height,
		focus:      FocusCalendar,
	}
}

// Init loads the current month.
func (m Model) Init() tea.Cmd {
	return m.loadMonth()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case monthLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.view = msg.view
		m.settings = msg.settings
		if m.fixedTheme == nil {
			m.theme = themes.For(msg.settings.Theme)
		}
		m.ready = true
		m.clampCursor()
		return m, nil

	case transactionDeletedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.status = "Deleted " + msg.transaction.Category.Label() + " " +
			model.FormatCurrency(msg.transaction.Amount, m.settings.Currency)
		return m, m.loadMonth()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadMonth()
	}

	if m.focus == FocusDay {
		return m.handleDayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Left):
		return m.moveTo(m.selected.AddDate(0, 0, -1))
	case key.Matches(msg, m.keymap.Right):
		return m.moveTo(m.selected.AddDate(0, 0, 1))
	case key.Matches(msg, m.keymap.Up):
		return m.moveTo(m.selected.AddDate(0, 0, -7))
	case key.Matches(msg, m.keymap.Down):
		return m.moveTo(m.selected.AddDate(0, 0, 7))
	case key.Matches(msg, m.keymap.PrevMonth):
		return m.moveTo(shiftMonth(m.selected, -1))
	case key.Matches(msg, m.keymap.NextMonth):
		return m.moveTo(shiftMonth(m.selected, 1))
	case key.Matches(msg, m.keymap.Today):
		return m.moveTo(m.today)
	case key.Matches(msg, m.keymap.Select):
		if len(m.selectedDay().Transactions) > 0 {
			m.focus = FocusDay
			m.cursor = 0
		}
	}
	return m, nil
}

func (m Model) handleDayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	txns := m.selectedDay().Transactions
	switch {
	case key.Matches(msg, m.keymap.Back), key.Matches(msg, m.keymap.Select):
		m.focus = FocusCalendar
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(txns)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Delete):
		if m.cursor < len(txns) {
			return m, m.deleteTransaction(txns[m.cursor].ID)
		}
	}
	return m, nil
}

// moveTo selects date, reloading when it falls in another month.
func (m Model) moveTo(date time.Time) (tea.Model, tea.Cmd) {
	sameMonth := date.Year() == m.selected.Year() && date.Month() == m.selected.Month()
	m.selected = date
	m.status = ""
	if sameMonth && m.ready {
		return m, nil
	}
	m.loading = true
	return m, m.loadMonth()
}

// shiftMonth moves by whole months, clamping the day to the target month's length.
func shiftMonth(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

func (m Model) selectedDay() model.DayData {
	return m.view.Days[m.selected.Format(model.DayLayout)]
}

func (m *Model) clampCursor() {
	n := len(m.selectedDay().Transactions)
	if n == 0 {
		m.focus = FocusCalendar
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m Model) loadMonth() tea.Cmd {
	ctx, l := m.ctx, m.ledger
	year, monthIndex := m.selected.Year(), int(m.selected.Month())-1
	return func() tea.Msg {
		settings, err := l.Settings(ctx)
		if err != nil {
			return monthLoadedMsg{err: err}
		}
		view, err := l.Month(ctx, year, monthIndex)
		return monthLoadedMsg{view: view, settings: settings, err: err}
	}
}

func (m Model) deleteTransaction(id string) tea.Cmd {
	ctx, l := m.ctx, m.ledger
	return func() tea.Msg {
		txn, err := l.DeleteTransaction(ctx, id)
		return transactionDeletedMsg{transaction: txn, err: err}
	}
}

// Selected returns the highlighted day.
func (m Model) Selected() time.Time {
	return m.selected
}
