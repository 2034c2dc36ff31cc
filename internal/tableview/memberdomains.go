package tableview

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/Masterminds/sprig/v3"
)

// DomainRow is one registered domain as the listing endpoint serves it.
type DomainRow struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	State          string  `json:"state"`
	StateDisplay   string  `json:"state_display"`
	ExpirationDate *string `json:"expiration_date"`
	IsExpired      bool    `json:"is_expired"`
	ActionURL      string  `json:"action_url"`
	ActionLabel    string  `json:"action_label"`
	SVGIcon        string  `json:"svg_icon"`
}

func (r DomainRow) RowID() string { return r.ID }

// Deletable is always false: registered domains leave through the registry
// lifecycle, never through the listing.
func (r DomainRow) Deletable() bool { return false }

var domainRowTemplate = template.Must(
	template.New("domain-row").Funcs(sprig.HtmlFuncMap()).Parse(`<tr id="domain-{{ .ID }}">
  <th scope="row" data-label="Domain name">{{ .Name }}</th>
  <td data-label="Expires">{{ .ExpirationDate | default "" }}{{ if .IsExpired }} (expired){{ end }}</td>
  <td data-label="Status">{{ .StateDisplay }}</td>
  <td>
    <a href="{{ .ActionURL }}"><svg aria-hidden="true"><use href="/public/img/sprite.svg#{{ .SVGIcon }}"></use></svg>{{ .ActionLabel }} {{ .Name }}</a>
  </td>
</tr>
`))

// MemberDomainsTable binds the loader to the domains listing, scoped to the
// domains one member manages via the loader's member scope option.
type MemberDomainsTable struct{}

// Compile-time check: MemberDomainsTable implements Table.
var _ Table = MemberDomainsTable{}

func (MemberDomainsTable) Endpoint() string { return "/get-domains-json/" }

func (MemberDomainsTable) ExtractRows(env *Envelope) ([]Row, error) {
	raw, ok := env.Field("domains")
	if !ok {
		return nil, fmt.Errorf("listing response has no %q key", "domains")
	}

	var items []DomainRow
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding domain rows: %w", err)
	}

	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = item
	}
	return rows, nil
}

func (MemberDomainsTable) RenderRow(w io.Writer, row Row) error {
	r, ok := row.(DomainRow)
	if !ok {
		return fmt.Errorf("rendering %T: not a domain row", row)
	}
	return domainRowTemplate.Execute(w, r)
}
