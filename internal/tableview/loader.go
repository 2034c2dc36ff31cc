package tableview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// QueryState holds the user-controlled listing parameters. The loader owns
// one and carries it across fetches: options passed to LoadTable default to
// the stored state, and the state is only replaced once a fetch succeeds.
type QueryState struct {
	Page       int
	SortBy     string
	Order      string
	SearchTerm string
	Status     string
	Portfolio  string
	Member     string
}

// Loader drives one paginated table: it fetches listing pages, renders rows
// through the table's hooks, keeps the pagination summary current, and arms
// per-row delete confirmations.
type Loader struct {
	table     Table
	view      View
	client    *http.Client
	baseURL   string
	logger    *slog.Logger
	deleteURL func(id string) string
	csrfToken func(ctx context.Context) (string, error)

	mu      sync.Mutex
	state   QueryState
	loaded  bool
	seq     uint64
	dialogs map[string]*ConfirmDialog
}

// Option configures a loader at Init time.
type Option func(*Loader)

// WithHTTPClient overrides the HTTP client used for fetches and deletes.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger overrides the loader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithDeleteURL enables row deletion, mapping a row id to its delete path.
func WithDeleteURL(f func(id string) string) Option {
	return func(l *Loader) { l.deleteURL = f }
}

// WithCSRFTokenSource overrides how the loader obtains anti-forgery tokens.
// The default fetches one from the server's token endpoint per delete.
func WithCSRFTokenSource(f func(ctx context.Context) (string, error)) Option {
	return func(l *Loader) { l.csrfToken = f }
}

// WithPortfolioScope pins every fetch to one portfolio.
func WithPortfolioScope(id string) Option {
	return func(l *Loader) { l.state.Portfolio = id }
}

// WithMemberScope pins every fetch to one member.
func WithMemberScope(id string) Option {
	return func(l *Loader) { l.state.Member = id }
}

// WithInitialSort sets the sort the first fetch uses.
func WithInitialSort(sortBy, order string) Option {
	return func(l *Loader) {
		l.state.SortBy = sortBy
		l.state.Order = order
	}
}

// Init builds a loader for a bound table. When the table, the view, or the
// table's endpoint is missing there is nothing to drive: Init declines and
// returns nil. All loader methods are nil-receiver-safe no-ops, so callers
// may hold and use the result unconditionally.
func Init(table Table, view View, baseURL string, opts ...Option) *Loader {
	if table == nil || view == nil || baseURL == "" || table.Endpoint() == "" {
		return nil
	}

	l := &Loader{
		table:   table,
		view:    view,
		client:  http.DefaultClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  slog.Default(),
		state:   QueryState{Page: 1, Order: "asc"},
		dialogs: make(map[string]*ConfirmDialog),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.csrfToken == nil {
		l.csrfToken = l.fetchCSRFToken
	}
	return l
}

// loadRequest is one fetch's parameters: the stored state with any
// per-call overrides applied.
type loadRequest struct {
	state  QueryState
	scroll bool
}

// LoadOption overrides one listing parameter for a single LoadTable call.
type LoadOption func(*loadRequest)

// WithPage requests a specific page.
func WithPage(n int) LoadOption {
	return func(r *loadRequest) {
		if n >= 1 {
			r.state.Page = n
		}
	}
}

// WithSortBy changes the sort column.
func WithSortBy(col string) LoadOption {
	return func(r *loadRequest) { r.state.SortBy = col }
}

// WithOrder changes the sort direction.
func WithOrder(order string) LoadOption {
	return func(r *loadRequest) { r.state.Order = order }
}

// WithSearch changes the search term. An empty term clears the search.
func WithSearch(term string) LoadOption {
	return func(r *loadRequest) { r.state.SearchTerm = term }
}

// WithStatusFilter changes the status filter.
func WithStatusFilter(status string) LoadOption {
	return func(r *loadRequest) { r.state.Status = status }
}

// WithScroll scrolls the table into view once the page is rendered. The
// very first load never scrolls regardless.
func WithScroll() LoadOption {
	return func(r *loadRequest) { r.scroll = true }
}

// LoadTable fetches one listing page and renders it. On any failure it logs
// and returns without touching the view, leaving the last rendered state in
// place; there is no retry. A LoadTable issued while another is in flight
// supersedes it: the superseded response is discarded.
func (l *Loader) LoadTable(ctx context.Context, opts ...LoadOption) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	req := loadRequest{state: l.state}
	for _, opt := range opts {
		opt(&req)
	}
	l.seq++
	seq := l.seq
	firstLoad := !l.loaded
	l.mu.Unlock()

	return l.load(ctx, seq, firstLoad, req)
}

func (l *Loader) load(ctx context.Context, seq uint64, firstLoad bool, req loadRequest) error {
	endpoint := l.table.Endpoint()

	env, err := l.fetch(ctx, req.state)
	if err != nil {
		l.logger.Error("loading table failed", "endpoint", endpoint, "error", err)
		return err
	}
	if env.Error != "" {
		err := fmt.Errorf("server reported: %s", env.Error)
		l.logger.Error("loading table failed", "endpoint", endpoint, "error", err)
		return err
	}

	rows, err := l.table.ExtractRows(env)
	if err != nil {
		l.logger.Error("extracting rows failed", "endpoint", endpoint, "error", err)
		return err
	}

	rendered := make([]RenderedRow, len(rows))
	for i, row := range rows {
		var buf bytes.Buffer
		if err := l.table.RenderRow(&buf, row); err != nil {
			l.logger.Error("rendering row failed", "endpoint", endpoint, "row", row.RowID(), "error", err)
			return err
		}
		rendered[i] = RenderedRow{ID: row.RowID(), HTML: buf.String(), Deletable: row.Deletable()}
	}

	l.mu.Lock()
	if seq != l.seq {
		// A newer load was issued while this one was in flight. Its
		// response owns the view; this one is discarded unseen.
		l.mu.Unlock()
		return nil
	}

	if env.Total == 0 && env.UnfilteredTotal > 0 && req.state.Page > 1 {
		// The page emptied out underneath us, typically after deleting
		// the last row of a trailing page. Show the previous page
		// instead of an empty table.
		req.state.Page--
		l.seq++
		seq = l.seq
		l.mu.Unlock()
		return l.load(ctx, seq, firstLoad, req)
	}

	for _, d := range l.dialogs {
		d.close()
	}
	l.dialogs = make(map[string]*ConfirmDialog, len(rows))
	for _, row := range rows {
		if !row.Deletable() {
			continue
		}
		after := env.Page
		if len(rows) == 1 && env.Page > 1 {
			// Deleting the only row of a trailing page lands on the
			// page before it.
			after--
		}
		l.dialogs[row.RowID()] = &ConfirmDialog{
			rowID:              row.RowID(),
			pageToDisplayAfter: after,
			loader:             l,
		}
	}

	l.view.ReplaceRows(rendered)
	l.view.SetSummary(Summary{
		Page:            env.Page,
		NumPages:        env.NumPages,
		HasPrevious:     env.HasPrevious,
		HasNext:         env.HasNext,
		Total:           env.Total,
		UnfilteredTotal: env.UnfilteredTotal,
	})

	switch {
	case env.Total > 0:
		l.view.SetDisplayState(ShowRows)
	case req.state.SearchTerm != "":
		l.view.SetDisplayState(ShowNoSearchResults)
	default:
		l.view.SetDisplayState(ShowNoRecords)
	}

	// The server clamps out-of-range pages; store what it actually served.
	req.state.Page = env.Page
	l.state = req.state
	l.loaded = true
	scroll := req.scroll && !firstLoad
	l.mu.Unlock()

	if scroll {
		l.view.ScrollIntoView()
	}
	return nil
}

func (l *Loader) fetch(ctx context.Context, state QueryState) (*Envelope, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(state.Page))
	if state.SortBy != "" {
		q.Set("sort_by", state.SortBy)
	}
	if state.Order != "" {
		q.Set("order", state.Order)
	}
	if state.SearchTerm != "" {
		q.Set("search_term", state.SearchTerm)
	}
	if state.Status != "" {
		q.Set("status", state.Status)
	}
	if state.Portfolio != "" {
		q.Set("portfolio", state.Portfolio)
	}
	if state.Member != "" {
		q.Set("member", state.Member)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+l.table.Endpoint()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building listing request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading listing response: %w", err)
	}

	env, decErr := DecodeEnvelope(body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decErr == nil && env.Error != "" {
			// The server wrapped its failure in the envelope; surface
			// that message rather than the bare status.
			return env, nil
		}
		return nil, fmt.Errorf("listing returned status %d", resp.StatusCode)
	}
	if decErr != nil {
		return nil, decErr
	}
	return env, nil
}

// DeleteRow deletes one row and reloads the table on the given page. The
// delete is form-encoded and double-carries the anti-forgery token, as a
// form field and as a header. On failure the view is left untouched; the
// row only disappears through the reload that follows a confirmed 2xx.
func (l *Loader) DeleteRow(ctx context.Context, id string, pageToDisplayAfter int) error {
	if l == nil {
		return nil
	}
	if l.deleteURL == nil {
		err := fmt.Errorf("table has no delete endpoint")
		l.logger.Error("deleting row failed", "row", id, "error", err)
		return err
	}

	token, err := l.csrfToken(ctx)
	if err != nil {
		l.logger.Error("deleting row failed", "row", id, "error", err)
		return err
	}

	form := url.Values{"csrfmiddlewaretoken": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+l.deleteURL(id), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRFToken", token)

	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Error("deleting row failed", "row", id, "error", err)
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("delete returned status %d", resp.StatusCode)
		l.logger.Error("deleting row failed", "row", id, "error", err)
		return err
	}

	return l.LoadTable(ctx, WithPage(pageToDisplayAfter))
}

// Dialog returns the delete confirmation armed for a row in the current
// render, if the row is deletable.
func (l *Loader) Dialog(rowID string) (*ConfirmDialog, bool) {
	if l == nil {
		return nil, false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	d, ok := l.dialogs[rowID]
	return d, ok
}

// State returns a copy of the stored query state.
func (l *Loader) State() QueryState {
	if l == nil {
		return QueryState{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// fetchCSRFToken is the default token source: one fresh token per delete.
func (l *Loader) fetchCSRFToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/csrf-token/", nil)
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching csrf token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"csrf_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding csrf token: %w", err)
	}
	if body.Token == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}
	return body.Token, nil
}
