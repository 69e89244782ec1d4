package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/daily-ledger/internal/calendar"
	"github.com/Veraticus/daily-ledger/internal/ledger"
	"github.com/Veraticus/daily-ledger/internal/model"
	"github.com/Veraticus/daily-ledger/internal/storage"
	"github.com/shopspring/decimal"
)

const cellWidth = 6

// FormatMoney renders an amount with a leading sign taken from the transaction type.
func FormatMoney(amount decimal.Decimal, typ model.TransactionType, currency string) string {
	s := model.FormatCurrency(amount, currency)
	if typ == model.TypeIncome {
		return IncomeStyle.Render("+" + s)
	}
	return ExpenseStyle.Render("-" + s)
}

// FormatBalance renders a signed balance, green when not negative.
func FormatBalance(balance decimal.Decimal, currency string) string {
	if balance.IsNegative() {
		return ExpenseStyle.Render("-" + model.FormatCurrency(balance.Abs(), currency))
	}
	return IncomeStyle.Render(model.FormatCurrency(balance, currency))
}

// FormatChange renders a period-over-period percentage with an arrow.
// For expenses a rise is bad, so invert flips the colors.
func FormatChange(pct float64, invert bool) string {
	text := fmt.Sprintf("%.1f%%", math.Abs(pct))
	switch {
	case pct > 0:
		style := IncomeStyle
		if invert {
			style = ExpenseStyle
		}
		return style.Render(UpIcon + " " + text)
	case pct < 0:
		style := ExpenseStyle
		if invert {
			style = IncomeStyle
		}
		return style.Render(DownIcon + " " + text)
	}
	return SubtleStyle.Render("= " + text)
}

// RenderCalendar draws the month grid. Days with activity carry a marker:
// "+" for a positive balance, "-" for a negative one and "=" when they cancel out.
func RenderCalendar(w io.Writer, view ledger.MonthView, today time.Time, currency string) error {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(CalendarIcon + " " + view.Period.Label()))
	b.WriteString("\n")

	for _, label := range calendar.WeekdayLabels {
		b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%*s", cellWidth, label)))
	}
	b.WriteString("\n")

	todayKey := today.Format(model.DayLayout)
	for _, week := range calendar.Weeks(view.Cells) {
		for _, cell := range week {
			b.WriteString(renderCell(cell, view.Days, todayKey))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Income:   %s\n", FormatMoney(view.Totals.Income, model.TypeIncome, currency))
	fmt.Fprintf(&b, "Expenses: %s\n", FormatMoney(view.Totals.Expenses, model.TypeExpense, currency))
	fmt.Fprintf(&b, "Balance:  %s\n", FormatBalance(view.Totals.Balance, currency))

	_, err := io.WriteString(w, b.String())
	return err
}

func renderCell(cell calendar.Cell, days map[string]model.DayData, todayKey string) string {
	if !cell.InMonth {
		return strings.Repeat(" ", cellWidth)
	}

	key := cell.Key()
	marker := " "
	style := SubtleStyle
	if day, ok := days[key]; ok && len(day.Transactions) > 0 {
		switch {
		case day.Balance.IsPositive():
			marker, style = "+", IncomeStyle
		case day.Balance.IsNegative():
			marker, style = "-", ExpenseStyle
		default:
			marker, style = "=", InfoStyle
		}
	}

	text := fmt.Sprintf("%*d%s", cellWidth-1, cell.Date.Day(), marker)
	if key == todayKey {
		return TodayStyle.Render(text)
	}
	if marker == " " {
		return text
	}
	return style.Render(text)
}

// RenderDay prints the totals and transactions of one day.
func RenderDay(w io.Writer, day model.DayData, currency string) error {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(CalendarIcon + " " + day.Date))
	b.WriteString("\n")

	if len(day.Transactions) == 0 {
		b.WriteString(SubtleStyle.Render("No transactions on this day."))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "Income: %s  Expenses: %s  Balance: %s\n\n",
		FormatMoney(day.Income, model.TypeIncome, currency),
		FormatMoney(day.Expenses, model.TypeExpense, currency),
		FormatBalance(day.Balance, currency))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return RenderTransactions(w, day.Transactions, currency)
}

// RenderTransactions prints a transaction table.
func RenderTransactions(w io.Writer, txns []model.Transaction, currency string) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No transactions."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tNOTE")
	fmt.Fprintln(tw, "──\t────\t────\t────────\t──────\t────")
	for _, t := range txns {
		sign := "-"
		if t.Type == model.TypeIncome {
			sign = "+"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%s\t%s\n",
			t.ID,
			t.DayKey(),
			t.Type,
			t.Category.Label(),
			sign,
			model.FormatCurrency(t.Amount, currency),
			t.Note)
	}
	return tw.Flush()
}

// RenderCategories prints a category table.
func RenderCategories(w io.Writer, categories []model.Category) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tKIND")
	fmt.Fprintln(tw, "──\t────\t─────\t────")
	for _, c := range categories {
		kind := "expense"
		switch {
		case model.IsIncomeOnly(c.ID):
			kind = "income"
		case model.IsIncomeCategory(c.ID):
			kind = "both"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Label(), c.Color, kind)
	}
	return tw.Flush()
}

// RenderSummary prints the period report with comparison and breakdowns.
func RenderSummary(w io.Writer, s ledger.Summary, currency string) error {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(ChartIcon + " " + s.Period.Label()))
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\tCURRENT\tPREVIOUS (%s)\tCHANGE\n", s.Previous.Period)
	fmt.Fprintf(tw, "Income\t%s\t%s\t%s\n",
		model.FormatCurrency(s.Current.Income, currency),
		model.FormatCurrency(s.Previous.Income, currency),
		FormatChange(s.Changes.Income, false))
	fmt.Fprintf(tw, "Expenses\t%s\t%s\t%s\n",
		model.FormatCurrency(s.Current.Expenses, currency),
		model.FormatCurrency(s.Previous.Expenses, currency),
		FormatChange(s.Changes.Expenses, true))
	fmt.Fprintf(tw, "Balance\t%s\t%s\t%s\n",
		FormatBalance(s.Current.Balance, currency),
		FormatBalance(s.Previous.Balance, currency),
		FormatChange(s.Changes.Balance, false))
	if err := tw.Flush(); err != nil {
		return err
	}

	writeBreakdown(&b, "Expenses by category", s.Expenses, currency)
	writeBreakdown(&b, "Income by category", s.Income, currency)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBreakdown(b *strings.Builder, title string, rows []model.CategorySummary, currency string) {
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render(title))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(SubtleStyle.Render("  nothing recorded"))
		b.WriteString("\n")
		return
	}

	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t%5.1f%%\t%s\n",
			row.Category.Label(),
			model.FormatCurrency(row.Amount, currency),
			row.Percentage,
			percentBar(row.Percentage))
	}
	_ = tw.Flush()
}

// percentBar draws a 20-character bar for a percentage.
func percentBar(pct float64) string {
	const width = 20
	filled := int(math.Round(pct / 100 * width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + SubtleStyle.Render(strings.Repeat("░", width-filled))
}

// RenderSnapshots prints the snapshot list.
func RenderSnapshots(w io.Writer, snapshots []storage.SnapshotInfo) error {
	if len(snapshots) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No snapshots."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSIZE\tDESCRIPTION")
	fmt.Fprintln(tw, "──\t───────\t────\t───────────")
	for _, s := range snapshots {
		desc := s.Description
		if s.IsAuto {
			desc = "(auto) " + desc
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			formatBytes(s.FileSize),
			desc)
	}
	return tw.Flush()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
