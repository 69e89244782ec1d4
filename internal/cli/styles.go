// Package cli renders ledger data for the terminal using lipgloss.
package cli

import (
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors for one theme.
type Palette struct {
	Primary lipgloss.Color
	Income  lipgloss.Color
	Expense lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
	Subtle  lipgloss.Color
	Border  lipgloss.Color
	Today   lipgloss.Color
}

// Palettes for the two supported themes.
var (
	LightPalette = Palette{
		Primary: lipgloss.Color("#FF7A00"),
		Income:  lipgloss.Color("#1E8E3E"),
		Expense: lipgloss.Color("#D93025"),
		Warning: lipgloss.Color("#B06000"),
		Info:    lipgloss.Color("#1A73E8"),
		Subtle:  lipgloss.Color("#808080"),
		Border:  lipgloss.Color("#BDBDBD"),
		Today:   lipgloss.Color("#FFE0B2"),
	}
	DarkPalette = Palette{
		Primary: lipgloss.Color("#FF9F43"),
		Income:  lipgloss.Color("#4ECDC4"),
		Expense: lipgloss.Color("#FF6B6B"),
		Warning: lipgloss.Color("#FFE66D"),
		Info:    lipgloss.Color("#95E1D3"),
		Subtle:  lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#333333"),
		Today:   lipgloss.Color("#4A3A2A"),
	}
)

var (
	// TitleStyle is used for section titles.
	TitleStyle lipgloss.Style
	// SubtitleStyle is used for secondary headings.
	SubtitleStyle lipgloss.Style
	// IncomeStyle colors money coming in.
	IncomeStyle lipgloss.Style
	// ExpenseStyle colors money going out.
	ExpenseStyle lipgloss.Style
	// SuccessStyle formats success messages.
	SuccessStyle lipgloss.Style
	// WarningStyle formats warning messages.
	WarningStyle lipgloss.Style
	// ErrorStyle formats error messages.
	ErrorStyle lipgloss.Style
	// InfoStyle formats informational messages.
	InfoStyle lipgloss.Style
	// SubtleStyle formats less prominent text.
	SubtleStyle lipgloss.Style
	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)
	// BoxStyle is used for bordered content boxes.
	BoxStyle lipgloss.Style
	// TableHeaderStyle is used for table headers.
	TableHeaderStyle lipgloss.Style
	// TodayStyle highlights the current day in the calendar.
	TodayStyle lipgloss.Style
	// PromptStyle is used for user prompts.
	PromptStyle lipgloss.Style
)

func init() {
	ApplyTheme(model.ThemeLight)
}

// ApplyTheme rebuilds the package styles for the given theme.
func ApplyTheme(theme model.Theme) {
	p := LightPalette
	if theme == model.ThemeDark {
		p = DarkPalette
	}

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(p.Subtle).MarginBottom(1)
	IncomeStyle = lipgloss.NewStyle().Foreground(p.Income)
	ExpenseStyle = lipgloss.NewStyle().Foreground(p.Expense)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Income)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Expense)
	InfoStyle = lipgloss.NewStyle().Foreground(p.Info)
	SubtleStyle = lipgloss.NewStyle().Foreground(p.Subtle)
	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(1, 2)
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	TodayStyle = lipgloss.NewStyle().Bold(true).Background(p.Today)
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
}

// Icons.
const (
	SuccessIcon  = "✓"
	ErrorIcon    = "✗"
	WarningIcon  = "⚠️"
	InfoIcon     = "ℹ️"
	LedgerIcon   = "💸"
	CalendarIcon = "📅"
	ChartIcon    = "📊"
	UpIcon       = "▲"
	DownIcon     = "▼"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the ledger icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(LedgerIcon + " " + title)
}

// FormatPrompt formats a prompt message.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	))
}
