package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dotgov/registrar/internal/domain"
)

// Compile-time check: RequestRepository implements domain.RequestRepository.
var _ domain.RequestRepository = (*RequestRepository)(nil)

// RequestRepository implements domain.RequestRepository using SQLite.
type RequestRepository struct {
	db *sql.DB
}

// requestSortColumns whitelists sortable columns. Unknown sort keys fall
// back to the default so user input never reaches the ORDER BY clause.
var requestSortColumns = map[string]string{
	"id":               "id",
	"requested_domain": "requested_domain",
	"submission_date":  "submission_date",
	"status":           "status",
	"created_at":       "created_at",
}

const requestColumns = `id, requested_domain, portfolio_id, creator_email, status, submission_date, created_at, updated_at`

func (r *RequestRepository) Create(ctx context.Context, req domain.Request) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO domain_requests (`+requestColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.RequestedDomain, req.PortfolioID, req.CreatorEmail,
		string(req.Status), formatDate(req.SubmissionDate),
		formatTime(req.CreatedAt), formatTime(req.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting request: %w", err)
	}
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id string) (domain.Request, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM domain_requests WHERE id = ?`, id)

	req, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Request{}, domain.ErrRequestNotFound
	}
	if err != nil {
		return domain.Request{}, fmt.Errorf("scanning request: %w", err)
	}
	return req, nil
}

// List returns one page of requests. The filtered set always excludes
// approved requests; the unfiltered total counts every request in scope,
// approved included, because the home page banner reports it that way.
func (r *RequestRepository) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Request], error) {
	var zero domain.Page[domain.Request]

	scopeCond, scopeArgs := requestScope(query)

	var unfilteredTotal int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM domain_requests`+scopeCond, scopeArgs...,
	).Scan(&unfilteredTotal)
	if err != nil {
		return zero, fmt.Errorf("counting requests: %w", err)
	}

	conds := []string{"status != ?"}
	args := append([]any{}, scopeArgs...)
	args = append(args, string(domain.StatusApproved))

	if query.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, query.Status)
	}
	if query.SearchTerm != "" {
		// A blank requested domain is displayed as "New domain request",
		// so searching must be able to match that label too.
		blankMatches := strings.Contains("new domain request", strings.ToLower(query.SearchTerm))
		conds = append(conds, "(requested_domain LIKE ? OR (requested_domain = '' AND ?))")
		args = append(args, "%"+query.SearchTerm+"%", blankMatches)
	}

	where := scopeCond
	if where == "" {
		where = " WHERE " + strings.Join(conds, " AND ")
	} else {
		where += " AND " + strings.Join(conds, " AND ")
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM domain_requests`+where, args...,
	).Scan(&total)
	if err != nil {
		return zero, fmt.Errorf("counting filtered requests: %w", err)
	}

	totalPages := domain.TotalPages(total)
	page := domain.ClampPage(query.Page, totalPages)

	orderBy := sortClause(requestSortColumns, query.SortBy, "created_at", query.Order)
	args = append(args, domain.PageSize, (page-1)*domain.PageSize)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM domain_requests`+where+orderBy+` LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return zero, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var items []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return zero, fmt.Errorf("scanning request row: %w", err)
		}
		items = append(items, req)
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("iterating requests: %w", err)
	}

	return domain.NewPage(items, page, total, unfilteredTotal), nil
}

func (r *RequestRepository) Update(ctx context.Context, req domain.Request) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE domain_requests
		 SET requested_domain = ?, portfolio_id = ?, creator_email = ?,
		     status = ?, submission_date = ?, updated_at = ?
		 WHERE id = ?`,
		req.RequestedDomain, req.PortfolioID, req.CreatorEmail,
		string(req.Status), formatDate(req.SubmissionDate),
		time.Now().UTC().Format(timeFormat), req.ID,
	)
	if err != nil {
		return fmt.Errorf("updating request: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM domain_requests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting request: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// requestScope builds the WHERE clause for filters that define the dataset
// itself (as opposed to user-applied search and status filters).
func requestScope(query domain.ListQuery) (string, []any) {
	if query.PortfolioID == "" {
		return "", nil
	}
	return " WHERE portfolio_id = ?", []any{query.PortfolioID}
}

func scanRequest(scan func(...any) error) (domain.Request, error) {
	var req domain.Request
	var status, submissionDate, createdAt, updatedAt string

	err := scan(&req.ID, &req.RequestedDomain, &req.PortfolioID, &req.CreatorEmail,
		&status, &submissionDate, &createdAt, &updatedAt)
	if err != nil {
		return domain.Request{}, err
	}

	req.Status = domain.RequestStatus(status)
	req.SubmissionDate = parseDate(submissionDate)
	req.CreatedAt = parseTime(createdAt)
	req.UpdatedAt = parseTime(updatedAt)

	return req, nil
}

// sortClause builds an ORDER BY over a whitelisted column, with id as a
// tiebreaker so pagination is stable.
func sortClause(whitelist map[string]string, sortBy, fallback string, order domain.Order) string {
	col, ok := whitelist[sortBy]
	if !ok {
		col = fallback
	}
	dir := "ASC"
	if order == domain.OrderDesc {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir + ", id ASC"
}
