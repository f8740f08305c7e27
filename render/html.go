package render

import (
	"html/template"
	"io"

	"github.com/rustyeddy/fxjournal/journal"
)

// htmlTemplate produces the journal table body the web page used, including
// the CSS classes its stylesheet keys on.
var htmlTemplate = template.Must(template.New("journal").Parse(`{{if .}}<tbody id="journalTableBody">
{{- range .}}
<tr>
<td>{{.Date}}</td>
<td><strong>{{.Pair}}</strong></td>
<td><span class="{{.TypeClass}}">{{.Type}}</span></td>
<td>{{.Risk}}</td>
<td><span class="{{.ResultClass}}">{{.Result}}</span></td>
<td>{{.Notes}}</td>
<td><button class="btn btn-delete" data-id="{{.ID}}" onclick="deleteTrade({{.ID}})">Delete</button></td>
</tr>
{{- end}}
</tbody>
{{else}}<div id="emptyMessage" class="empty-message show">` + EmptyMessage + `</div>
{{end}}`))

// HTML writes table rows, or the empty-state element when there are no
// trades. Values are escaped.
func HTML(w io.Writer, trades []journal.TradeRecord) error {
	return htmlTemplate.Execute(w, Rows(trades))
}
