package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rustyeddy/fxjournal/journal"
)

// Renderer writes a view of the journal.
type Renderer interface {
	Render(w io.Writer, trades []journal.TradeRecord) error
}

type RendererFunc func(w io.Writer, trades []journal.TradeRecord) error

func (f RendererFunc) Render(w io.Writer, trades []journal.TradeRecord) error {
	return f(w, trades)
}

const (
	FormatTable = "table"
	FormatOrg   = "org"
	FormatCSV   = "csv"
	FormatHTML  = "html"
	FormatJSON  = "json"
)

// Formats lists the names ByName accepts.
var Formats = []string{FormatTable, FormatOrg, FormatCSV, FormatHTML, FormatJSON}

func ByName(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FormatTable, "":
		return RendererFunc(Table), nil
	case FormatOrg:
		return RendererFunc(Org), nil
	case FormatCSV:
		return RendererFunc(CSV), nil
	case FormatHTML:
		return RendererFunc(HTML), nil
	case FormatJSON:
		return RendererFunc(JSON), nil
	default:
		return nil, fmt.Errorf("unknown format %q (supported: %s)", name, strings.Join(Formats, ", "))
	}
}

// Table writes an aligned text table, or EmptyMessage.
func Table(w io.Writer, trades []journal.TradeRecord) error {
	if len(trades) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tPAIR\tTYPE\tRISK\tRESULT\tNOTES")
	for _, r := range Rows(trades) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date, r.Pair, r.Type, r.Risk, r.Result, r.Notes)
	}
	return tw.Flush()
}

var csvHeader = []string{"id", "date", "pair", "type", "risk", "result", "notes"}

// CSV writes raw (unformatted) values so the file can be re-read by a
// spreadsheet.
func CSV(w io.Writer, trades []journal.TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Date,
			t.Pair,
			string(t.Type),
			f(t.Risk),
			f(t.Result),
			t.Notes,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// JSON writes the collection in its stored shape, indented.
func JSON(w io.Writer, trades []journal.TradeRecord) error {
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trades)
}
