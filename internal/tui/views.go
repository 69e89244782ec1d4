package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/daily-ledger/internal/calendar"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		if m.lastError != nil {
			return m.theme.StatusError.Render("Failed to load ledger: " + m.lastError.Error())
		}
		return m.theme.Muted.Render("Loading ledger...")
	}

	calendarPane := m.renderCalendar()
	dayPane := m.renderDay()

	var body string
	if m.width >= 90 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, calendarPane, " ", dayPane)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, calendarPane, dayPane)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.renderStatus(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderCalendar() string {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", m.selected.Month(), m.selected.Year())
	if m.loading {
		title += m.theme.Muted.Render("  loading…")
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n")

	for _, label := range calendar.WeekdayLabels {
		b.WriteString(m.theme.Weekday.Render(label))
	}
	b.WriteString("\n")

	selectedKey := m.selected.Format(model.DayLayout)
	todayKey := m.today.Format(model.DayLayout)
	for _, week := range calendar.Weeks(calendar.GridFor(m.selected)) {
		for _, cell := range week {
			b.WriteString(m.renderCell(cell, selectedKey, todayKey))
		}
		b.WriteString("\n")
	}

	totals := m.view.Totals
	b.WriteString("\n")
	b.WriteString(m.theme.Income.Render("↑ " + m.money(totals.Income)))
	b.WriteString("  ")
	b.WriteString(m.theme.Expense.Render("↓ " + m.money(totals.Expenses)))
	b.WriteString("  ")
	b.WriteString(m.balance(totals.Balance))

	return m.theme.RoundedBox.Render(b.String())
}

func (m Model) renderCell(cell calendar.Cell, selectedKey, todayKey string) string {
	key := cell.Key()
	label := fmt.Sprintf("%d", cell.Date.Day())
	if day, ok := m.view.Days[key]; ok && len(day.Transactions) > 0 {
		label += "•"
	} else {
		label += " "
	}

	switch {
	case key == selectedKey:
		return m.theme.Selected.Render(label)
	case !cell.InMonth:
		return m.theme.OtherMonth.Render(label)
	case key == todayKey:
		return m.theme.Today.Render(label)
	}
	return m.theme.Day.Render(label)
}

func (m Model) renderDay() string {
	day := m.selectedDay()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.selected.Format("Monday, 02 January 2006")))
	b.WriteString("\n")

	if len(day.Transactions) == 0 {
		b.WriteString(m.theme.Muted.Render("No transactions"))
		return m.theme.RoundedBox.Render(b.String())
	}

	b.WriteString(m.balance(day.Balance))
	b.WriteString("\n\n")

	for i, t := range day.Transactions {
		amount := m.money(t.Amount)
		style := m.theme.Expense
		sign := "-"
		if t.Type == model.TypeIncome {
			style = m.theme.Income
			sign = "+"
		}

		line := fmt.Sprintf("%-24s %s", t.Category.Label(), style.Render(sign+amount))
		if t.Note != "" {
			line += " " + m.theme.Muted.Render(t.Note)
		}
		if m.focus == FocusDay && i == m.cursor {
			line = m.theme.Highlighted.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return m.theme.RoundedBox.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStatus() string {
	switch {
	case m.lastError != nil:
		return m.theme.StatusError.Render("Error: " + m.lastError.Error())
	case m.status != "":
		return m.theme.StatusInfo.Render(m.status)
	}
	return ""
}

func (m Model) money(amount decimal.Decimal) string {
	return model.FormatCurrency(amount, m.settings.Currency)
}

func (m Model) balance(balance decimal.Decimal) string {
	if balance.IsNegative() {
		return m.theme.Expense.Render("= -" + m.money(balance.Abs()))
	}
	return m.theme.Income.Render("= " + m.money(balance))
}
