package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dotgov/registrar/internal/app"
	"github.com/dotgov/registrar/internal/domain"
)

const (
	timeFormat = "2006-01-02T15:04:05Z"
	dateFormat = "2006-01-02"
)

// RequestRow is the listing representation of a domain request. The field
// names match what the table loader client parses, so they are frozen.
type RequestRow struct {
	ID              string  `json:"id" doc:"Unique identifier"`
	RequestedDomain *string `json:"requested_domain" doc:"Requested domain name, null while the request is still blank"`
	SubmissionDate  *string `json:"submission_date" doc:"Date of first submission, null until submitted"`
	Status          string  `json:"status" doc:"Human-readable status label"`
	CreatedAt       string  `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	IsDeletable     bool    `json:"is_deletable" doc:"Whether the creator may delete this request"`
	ActionURL       string  `json:"action_url" doc:"Target of the row action link"`
	ActionLabel     string  `json:"action_label" doc:"Label of the row action link"`
	SVGIcon         string  `json:"svg_icon" doc:"Icon shown next to the action link"`
}

func toRequestRow(r domain.Request) RequestRow {
	row := RequestRow{
		ID:          r.ID,
		Status:      r.Status.Display(),
		CreatedAt:   r.CreatedAt.Format(timeFormat),
		IsDeletable: r.IsDeletable(),
		ActionURL:   r.ActionURL(),
		ActionLabel: r.ActionLabel(),
		SVGIcon:     r.SVGIcon(),
	}
	if r.RequestedDomain != "" {
		row.RequestedDomain = &r.RequestedDomain
	}
	if !r.SubmissionDate.IsZero() {
		s := r.SubmissionDate.Format(dateFormat)
		row.SubmissionDate = &s
	}
	return row
}

// DomainRow is the listing representation of a registered domain.
type DomainRow struct {
	ID             string  `json:"id" doc:"Unique identifier"`
	Name           string  `json:"name" doc:"Domain name"`
	State          string  `json:"state" doc:"Raw registry state"`
	StateDisplay   string  `json:"state_display" doc:"Human-readable state label"`
	ExpirationDate *string `json:"expiration_date" doc:"Registration expiry date, null when unknown"`
	IsExpired      bool    `json:"is_expired" doc:"Whether the registration period has lapsed"`
	ActionURL      string  `json:"action_url" doc:"Target of the row action link"`
	ActionLabel    string  `json:"action_label" doc:"Label of the row action link"`
	SVGIcon        string  `json:"svg_icon" doc:"Icon shown next to the action link"`
}

func toDomainRow(d domain.Domain) DomainRow {
	row := DomainRow{
		ID:           d.ID,
		Name:         d.Name,
		State:        string(d.State),
		StateDisplay: d.State.Display(),
		IsExpired:    d.IsExpired(),
		ActionURL:    "/domain/" + d.ID,
		ActionLabel:  "Manage",
		SVGIcon:      "settings",
	}
	if !d.ExpirationDate.IsZero() {
		s := d.ExpirationDate.Format(dateFormat)
		row.ExpirationDate = &s
	}
	return row
}

// MemberRow is the listing representation of a portfolio member.
type MemberRow struct {
	ID          string  `json:"id" doc:"Unique identifier"`
	Email       string  `json:"email" doc:"Member email address"`
	DisplayName string  `json:"display_name" doc:"Member display name"`
	IsAdmin     bool    `json:"is_admin" doc:"Whether the member administers the portfolio"`
	LastActive  *string `json:"last_active" doc:"Last sign-in timestamp, null when the member never signed in"`
	ActionURL   string  `json:"action_url" doc:"Target of the row action link"`
	ActionLabel string  `json:"action_label" doc:"Label of the row action link"`
	SVGIcon     string  `json:"svg_icon" doc:"Icon shown next to the action link"`
}

func toMemberRow(m domain.Member) MemberRow {
	row := MemberRow{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		IsAdmin:     m.IsAdmin,
		ActionURL:   "/member/" + m.ID,
		ActionLabel: "Manage",
		SVGIcon:     "settings",
	}
	if !m.LastActive.IsZero() {
		s := m.LastActive.Format(timeFormat)
		row.LastActive = &s
	}
	return row
}

// --- Listing endpoints ---

// ListingInput holds the query parameters shared by all listing endpoints.
// The parameter names match what the table loader client sends.
type ListingInput struct {
	Page       int    `query:"page" required:"false" default:"1" doc:"Page number (1-based, clamped to the last page)"`
	SortBy     string `query:"sort_by" required:"false" doc:"Sort column (whitelisted per listing)"`
	Order      string `query:"order" required:"false" default:"asc" doc:"Sort direction, asc unless exactly desc"`
	SearchTerm string `query:"search_term" required:"false" doc:"Case-insensitive substring search"`
	Status     string `query:"status" required:"false" doc:"Status filter"`
	Portfolio  string `query:"portfolio" required:"false" doc:"Portfolio scope filter"`
	Member     string `query:"member" required:"false" doc:"Member scope filter"`
}

func (in *ListingInput) toQuery() domain.ListQuery {
	return domain.ListQuery{
		Page:        in.Page,
		SortBy:      in.SortBy,
		Order:       domain.ParseOrder(in.Order),
		SearchTerm:  in.SearchTerm,
		Status:      in.Status,
		PortfolioID: in.Portfolio,
		MemberID:    in.Member,
	}
}

// RequestsEnvelope is the JSON body of the domain requests listing. The key
// names are the contract the table loader client decodes against.
type RequestsEnvelope struct {
	DomainRequests  []RequestRow `json:"domain_requests"`
	Page            int          `json:"page"`
	NumPages        int          `json:"num_pages"`
	HasPrevious     bool         `json:"has_previous"`
	HasNext         bool         `json:"has_next"`
	Total           int          `json:"total"`
	UnfilteredTotal int          `json:"unfiltered_total"`
	Error           string       `json:"error,omitempty"`
}

type ListRequestsOutput struct {
	Status int
	Body   RequestsEnvelope
}

// DomainsEnvelope is the JSON body of the domains listing.
type DomainsEnvelope struct {
	Domains         []DomainRow `json:"domains"`
	Page            int         `json:"page"`
	NumPages        int         `json:"num_pages"`
	HasPrevious     bool        `json:"has_previous"`
	HasNext         bool        `json:"has_next"`
	Total           int         `json:"total"`
	UnfilteredTotal int         `json:"unfiltered_total"`
	Error           string      `json:"error,omitempty"`
}

type ListDomainsOutput struct {
	Status int
	Body   DomainsEnvelope
}

// MembersEnvelope is the JSON body of the members listing.
type MembersEnvelope struct {
	Members         []MemberRow `json:"members"`
	Page            int         `json:"page"`
	NumPages        int         `json:"num_pages"`
	HasPrevious     bool        `json:"has_previous"`
	HasNext         bool        `json:"has_next"`
	Total           int         `json:"total"`
	UnfilteredTotal int         `json:"unfiltered_total"`
	Error           string      `json:"error,omitempty"`
}

type ListMembersOutput struct {
	Status int
	Body   MembersEnvelope
}

// --- Create request ---

type CreateRequestInput struct {
	Body struct {
		RequestedDomain string `json:"requested_domain,omitempty" maxLength:"255" doc:"Requested domain name, may be left blank while drafting"`
		Portfolio       string `json:"portfolio" minLength:"1" doc:"Owning portfolio ID"`
		CreatorEmail    string `json:"creator_email" format:"email" doc:"Email of the requester"`
	}
}

type CreateRequestOutput struct {
	Body RequestRow
}

// --- Get request ---

type GetRequestInput struct {
	ID string `path:"id" doc:"Domain request ID"`
}

type GetRequestOutput struct {
	Body RequestRow
}

// --- Transition ---

type TransitionInput struct {
	ID   string `path:"id" doc:"Domain request ID"`
	Body struct {
		Event string `json:"event" doc:"Lifecycle event to trigger" enum:"submit,in_review,action_needed,approve,withdraw,reject,reject_with_prejudice"`
	}
}

type TransitionOutput struct {
	Body RequestRow
}

// Services bundles the application services the HTTP layer exposes.
type Services struct {
	Requests *app.RequestService
	Domains  *app.DomainService
	Members  *app.MemberService
}

// Register adds all registrar API routes to the Huma API.
func Register(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "list-domain-requests",
		Method:      http.MethodGet,
		Path:        "/get-domain-requests-json/",
		Summary:     "List domain requests as a table page",
		Tags:        []string{"Listings"},
	}, func(ctx context.Context, input *ListingInput) (*ListRequestsOutput, error) {
		page, err := svc.Requests.List(ctx, input.toQuery())
		if err != nil {
			return &ListRequestsOutput{
				Status: http.StatusInternalServerError,
				Body:   RequestsEnvelope{Error: "listing domain requests failed"},
			}, nil
		}

		rows := make([]RequestRow, len(page.Items))
		for i, r := range page.Items {
			rows[i] = toRequestRow(r)
		}
		return &ListRequestsOutput{
			Status: http.StatusOK,
			Body: RequestsEnvelope{
				DomainRequests:  rows,
				Page:            page.Page,
				NumPages:        page.TotalPages,
				HasPrevious:     page.HasPrevious,
				HasNext:         page.HasNext,
				Total:           page.Total,
				UnfilteredTotal: page.UnfilteredTotal,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-domains",
		Method:      http.MethodGet,
		Path:        "/get-domains-json/",
		Summary:     "List registered domains as a table page",
		Tags:        []string{"Listings"},
	}, func(ctx context.Context, input *ListingInput) (*ListDomainsOutput, error) {
		page, err := svc.Domains.List(ctx, input.toQuery())
		if err != nil {
			return &ListDomainsOutput{
				Status: http.StatusInternalServerError,
				Body:   DomainsEnvelope{Error: "listing domains failed"},
			}, nil
		}

		rows := make([]DomainRow, len(page.Items))
		for i, d := range page.Items {
			rows[i] = toDomainRow(d)
		}
		return &ListDomainsOutput{
			Status: http.StatusOK,
			Body: DomainsEnvelope{
				Domains:         rows,
				Page:            page.Page,
				NumPages:        page.TotalPages,
				HasPrevious:     page.HasPrevious,
				HasNext:         page.HasNext,
				Total:           page.Total,
				UnfilteredTotal: page.UnfilteredTotal,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-members",
		Method:      http.MethodGet,
		Path:        "/get-members-json/",
		Summary:     "List portfolio members as a table page",
		Tags:        []string{"Listings"},
	}, func(ctx context.Context, input *ListingInput) (*ListMembersOutput, error) {
		page, err := svc.Members.List(ctx, input.toQuery())
		if err != nil {
			return &ListMembersOutput{
				Status: http.StatusInternalServerError,
				Body:   MembersEnvelope{Error: "listing members failed"},
			}, nil
		}

		rows := make([]MemberRow, len(page.Items))
		for i, m := range page.Items {
			rows[i] = toMemberRow(m)
		}
		return &ListMembersOutput{
			Status: http.StatusOK,
			Body: MembersEnvelope{
				Members:         rows,
				Page:            page.Page,
				NumPages:        page.TotalPages,
				HasPrevious:     page.HasPrevious,
				HasNext:         page.HasNext,
				Total:           page.Total,
				UnfilteredTotal: page.UnfilteredTotal,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-domain-request",
		Method:      http.MethodPost,
		Path:        "/api/v1/domain-requests",
		Summary:     "Create a new domain request",
		Tags:        []string{"Domain requests"},
	}, func(ctx context.Context, input *CreateRequestInput) (*CreateRequestOutput, error) {
		req, err := svc.Requests.Create(ctx, input.Body.RequestedDomain, input.Body.Portfolio, input.Body.CreatorEmail)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateRequestOutput{Body: toRequestRow(req)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-domain-request",
		Method:      http.MethodGet,
		Path:        "/api/v1/domain-requests/{id}",
		Summary:     "Get a domain request by ID",
		Tags:        []string{"Domain requests"},
	}, func(ctx context.Context, input *GetRequestInput) (*GetRequestOutput, error) {
		req, err := svc.Requests.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetRequestOutput{Body: toRequestRow(req)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-domain-request",
		Method:      http.MethodPost,
		Path:        "/api/v1/domain-requests/{id}/events",
		Summary:     "Trigger a lifecycle event",
		Tags:        []string{"Domain requests"},
	}, func(ctx context.Context, input *TransitionInput) (*TransitionOutput, error) {
		req, err := svc.Requests.Transition(ctx, input.ID, domain.Event(input.Body.Event))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &TransitionOutput{Body: toRequestRow(req)}, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrRequestNotFound) {
		return huma.Error404NotFound("domain request not found")
	}
	if errors.Is(err, domain.ErrDomainNotFound) {
		return huma.Error404NotFound("domain not found")
	}
	if errors.Is(err, domain.ErrMemberNotFound) {
		return huma.Error404NotFound("member not found")
	}

	var delErr *domain.NotDeletableError
	if errors.As(err, &delErr) {
		return huma.Error403Forbidden(delErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
