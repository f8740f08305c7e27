package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/fxjournal/journal"
)

// FormatTradeOrg renders a trade as an Org-mode block with the structured
// facts in a PROPERTIES drawer and empty Thesis/Review headings to write
// into.
func FormatTradeOrg(t journal.TradeRecord) string {
	r := NewRow(t)

	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s (%s)\n", t.Pair, t.Type, r.Date)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %d\n", t.ID)
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date)
	fmt.Fprintf(&b, ":PAIR: %s\n", t.Pair)
	fmt.Fprintf(&b, ":TYPE: %s\n", t.Type)
	fmt.Fprintf(&b, ":RISK: %s\n", r.Risk)
	fmt.Fprintf(&b, ":RESULT: %s\n", r.Result)
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Notes\n")
	if t.Notes != "" {
		fmt.Fprintf(&b, "%s\n", t.Notes)
	} else {
		b.WriteString("- \n")
	}
	b.WriteString("\n*** Review\n- \n")

	return b.String()
}

// Org renders every trade, separated by blank lines.
func Org(w io.Writer, trades []journal.TradeRecord) error {
	if len(trades) == 0 {
		_, err := fmt.Fprintf(w, "# %s\n", EmptyMessage)
		return err
	}

	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
