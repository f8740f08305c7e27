// render/row.go
package render

import (
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/shopspring/decimal"
)

// EmptyMessage is shown instead of a table when the journal has no trades.
const EmptyMessage = "No trades logged yet. Start by adding your first trade!"

// Row is a TradeRecord formatted for display.
type Row struct {
	ID          int64
	Date        string
	Pair        string
	Type        string
	TypeClass   string
	Risk        string
	Result      string
	ResultClass string
	Notes       string
}

// Rows formats trades in the order given.
func Rows(trades []journal.TradeRecord) []Row {
	rows := make([]Row, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, NewRow(t))
	}
	return rows
}

func NewRow(t journal.TradeRecord) Row {
	typeClass := "trade-sell"
	if t.Type == journal.Buy {
		typeClass = "trade-buy"
	}
	resultClass := "result-negative"
	if t.Result >= 0 {
		resultClass = "result-positive"
	}
	notes := t.Notes
	if notes == "" {
		notes = "-"
	}

	return Row{
		ID:          t.ID,
		Date:        FormatDate(t.Date),
		Pair:        t.Pair,
		Type:        string(t.Type),
		TypeClass:   typeClass,
		Risk:        FormatRisk(t.Risk),
		Result:      FormatResult(t.Result),
		ResultClass: resultClass,
		Notes:       notes,
	}
}

// FormatDate renders a YYYY-MM-DD date as "Jan 5, 2024". Anything else is
// returned unchanged.
func FormatDate(date string) string {
	d, err := time.Parse(journal.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2, 2006")
}

// FormatRisk renders 2 as "2%" and 0.25 as "0.25%".
func FormatRisk(risk float64) string {
	return decimal.NewFromFloat(risk).String() + "%"
}

// FormatResult renders a P/L as "+$150.50" or "-$20.00". Zero counts as a
// win, as it did in the browser table.
func FormatResult(result float64) string {
	d := decimal.NewFromFloat(result)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}
