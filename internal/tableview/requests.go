package tableview

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/Masterminds/sprig/v3"
)

// RequestRow is one domain request as the listing endpoint serves it.
type RequestRow struct {
	ID              string  `json:"id"`
	RequestedDomain *string `json:"requested_domain"`
	SubmissionDate  *string `json:"submission_date"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	IsDeletable     bool    `json:"is_deletable"`
	ActionURL       string  `json:"action_url"`
	ActionLabel     string  `json:"action_label"`
	SVGIcon         string  `json:"svg_icon"`
}

func (r RequestRow) RowID() string   { return r.ID }
func (r RequestRow) Deletable() bool { return r.IsDeletable }

// DisplayName labels the row. Blank drafts show a placeholder, which is also
// what the server matches searches against for them.
func (r RequestRow) DisplayName() string {
	if r.RequestedDomain == nil || *r.RequestedDomain == "" {
		return "New domain request"
	}
	return *r.RequestedDomain
}

var requestRowTemplate = template.Must(
	template.New("request-row").Funcs(sprig.HtmlFuncMap()).Parse(`<tr id="request-{{ .ID }}">
  <th scope="row" data-label="Domain name">{{ .DisplayName }}</th>
  <td data-label="Date submitted">{{ .SubmissionDate | default "Not submitted" }}</td>
  <td data-label="Status">{{ .Status }}</td>
  <td>
    <a href="{{ .ActionURL }}"><svg aria-hidden="true"><use href="/public/img/sprite.svg#{{ .SVGIcon }}"></use></svg>{{ .ActionLabel }}</a>
  </td>
  <td>{{ if .IsDeletable }}<button type="button" data-delete-id="{{ .ID }}">Delete {{ .DisplayName }}</button>{{ end }}</td>
</tr>
`))

// RequestsTable binds the loader to the domain requests listing.
type RequestsTable struct{}

// Compile-time check: RequestsTable implements Table.
var _ Table = RequestsTable{}

func (RequestsTable) Endpoint() string { return "/get-domain-requests-json/" }

func (RequestsTable) ExtractRows(env *Envelope) ([]Row, error) {
	raw, ok := env.Field("domain_requests")
	if !ok {
		return nil, fmt.Errorf("listing response has no %q key", "domain_requests")
	}

	var items []RequestRow
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding domain request rows: %w", err)
	}

	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = item
	}
	return rows, nil
}

func (RequestsTable) RenderRow(w io.Writer, row Row) error {
	r, ok := row.(RequestRow)
	if !ok {
		return fmt.Errorf("rendering %T: not a domain request row", row)
	}
	return requestRowTemplate.Execute(w, r)
}

// RequestDeleteURL maps a request id to its delete endpoint.
func RequestDeleteURL(id string) string {
	return "/domain-request/" + id + "/delete"
}
