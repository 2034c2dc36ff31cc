package tableview_test

import (
	"strings"
	"testing"

	"github.com/dotgov/registrar/internal/tableview"
)

func TestDecodeEnvelope(t *testing.T) {
	env, err := tableview.DecodeEnvelope([]byte(`{
		"domain_requests": [{"id": "r-1"}],
		"page": 2, "num_pages": 3,
		"has_previous": true, "has_next": true,
		"total": 25, "unfiltered_total": 30
	}`))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}

	if env.Page != 2 || env.NumPages != 3 || env.Total != 25 || env.UnfilteredTotal != 30 {
		t.Errorf("envelope = %+v, want page 2/3, total 25/30", env)
	}
	if !env.HasPrevious || !env.HasNext {
		t.Error("both pagination flags should be set")
	}
	if _, ok := env.Field("domain_requests"); !ok {
		t.Error("entity key should be reachable through Field")
	}
	if _, ok := env.Field("members"); ok {
		t.Error("absent keys should not be reported present")
	}
}

func TestDecodeEnvelope_Malformed(t *testing.T) {
	if _, err := tableview.DecodeEnvelope([]byte(`<html>not json</html>`)); err == nil {
		t.Error("expected an error for a non-JSON body")
	}
}

func TestRequestRow_DisplayName(t *testing.T) {
	name := "city.gov"
	if got := (tableview.RequestRow{RequestedDomain: &name}).DisplayName(); got != "city.gov" {
		t.Errorf("DisplayName = %q, want %q", got, "city.gov")
	}
	if got := (tableview.RequestRow{}).DisplayName(); got != "New domain request" {
		t.Errorf("DisplayName = %q, want the blank draft label", got)
	}
}

func TestRequestsTable_RenderRow(t *testing.T) {
	name := "city.gov"
	row := tableview.RequestRow{
		ID:              "r-1",
		RequestedDomain: &name,
		Status:          "Started",
		IsDeletable:     true,
		ActionURL:       "/domain-request/r-1/edit",
		ActionLabel:     "Edit",
		SVGIcon:         "edit",
	}

	var sb strings.Builder
	if err := (tableview.RequestsTable{}).RenderRow(&sb, row); err != nil {
		t.Fatalf("RenderRow: %v", err)
	}
	html := sb.String()

	for _, want := range []string{"city.gov", "Not submitted", "Started", "/domain-request/r-1/edit", "#edit", "Delete city.gov"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered row missing %q:\n%s", want, html)
		}
	}
}

func TestRequestsTable_RenderRow_BlankDraft(t *testing.T) {
	row := tableview.RequestRow{ID: "r-2", Status: "Started", ActionLabel: "Edit", SVGIcon: "edit"}

	var sb strings.Builder
	if err := (tableview.RequestsTable{}).RenderRow(&sb, row); err != nil {
		t.Fatalf("RenderRow: %v", err)
	}

	if !strings.Contains(sb.String(), "New domain request") {
		t.Errorf("blank draft should render the placeholder label:\n%s", sb.String())
	}
}

func TestRequestsTable_RenderRow_WrongType(t *testing.T) {
	var sb strings.Builder
	if err := (tableview.RequestsTable{}).RenderRow(&sb, tableview.DomainRow{ID: "d-1"}); err == nil {
		t.Error("expected an error rendering a foreign row type")
	}
}

func TestMemberDomainsTable_ExtractRows(t *testing.T) {
	env, err := tableview.DecodeEnvelope([]byte(`{
		"domains": [
			{"id": "d-1", "name": "city.gov", "state": "ready", "state_display": "Ready",
			 "expiration_date": "2027-01-01", "is_expired": false,
			 "action_url": "/domain/d-1", "action_label": "Manage", "svg_icon": "settings"}
		],
		"page": 1, "num_pages": 1, "total": 1, "unfiltered_total": 1
	}`))
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}

	rows, err := (tableview.MemberDomainsTable{}).ExtractRows(env)
	if err != nil {
		t.Fatalf("ExtractRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].RowID() != "d-1" {
		t.Errorf("RowID = %q, want %q", rows[0].RowID(), "d-1")
	}
	if rows[0].Deletable() {
		t.Error("registered domains are never deletable from the listing")
	}

	var sb strings.Builder
	if err := (tableview.MemberDomainsTable{}).RenderRow(&sb, rows[0]); err != nil {
		t.Fatalf("RenderRow: %v", err)
	}
	for _, want := range []string{"city.gov", "Ready", "2027-01-01", "Manage"} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("rendered row missing %q:\n%s", want, sb.String())
		}
	}
}
