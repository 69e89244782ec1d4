// Package themes holds the calendar browser's light and dark styles.
package themes

import (
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Muted       lipgloss.Style
	Weekday     lipgloss.Style
	Day         lipgloss.Style
	OtherMonth  lipgloss.Style
	Today       lipgloss.Style
	Selected    lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	Highlighted lipgloss.Style
	RoundedBox  lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Primary     lipgloss.Color
	Border      lipgloss.Color
}

func build(primary, fg, muted, border, income, expense, today, selectedFg, errColor, info lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Border:  border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Weekday: lipgloss.NewStyle().
			Bold(true).
			Foreground(muted).
			Width(6).
			Align(lipgloss.Right),
		Day: lipgloss.NewStyle().
			Foreground(fg).
			Width(6).
			Align(lipgloss.Right),
		OtherMonth: lipgloss.NewStyle().
			Foreground(border).
			Width(6).
			Align(lipgloss.Right),
		Today: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Width(6).
			Align(lipgloss.Right),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Background(primary).
			Foreground(selectedFg).
			Width(6).
			Align(lipgloss.Right),
		Income: lipgloss.NewStyle().
			Foreground(income),
		Expense: lipgloss.NewStyle().
			Foreground(expense),
		Highlighted: lipgloss.NewStyle().
			Background(today).
			Foreground(fg),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
	}
}

// Light is the default theme.
var Light = build(
	lipgloss.Color("#FF7A00"),
	lipgloss.Color("#1F1F1F"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#D4D4D4"),
	lipgloss.Color("#1E8E3E"),
	lipgloss.Color("#D93025"),
	lipgloss.Color("#FFE0B2"),
	lipgloss.Color("#FFFFFF"),
	lipgloss.Color("#D93025"),
	lipgloss.Color("#1A73E8"),
)

// Dark is the theme used when settings ask for it.
var Dark = build(
	lipgloss.Color("#FF9F43"),
	lipgloss.Color("#FAFAFA"),
	lipgloss.Color("#A3A3A3"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#10B981"),
	lipgloss.Color("#EF4444"),
	lipgloss.Color("#4A3A2A"),
	lipgloss.Color("#1A1A1A"),
	lipgloss.Color("#EF4444"),
	lipgloss.Color("#3B82F6"),
)

// For returns the theme matching the user's setting.
func For(theme model.Theme) Theme {
	if theme == model.ThemeDark {
		return Dark
	}
	return Light
}
