package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dotgov/registrar/internal/domain"
)

// Compile-time check: DomainRepository implements domain.DomainRepository.
var _ domain.DomainRepository = (*DomainRepository)(nil)

// DomainRepository implements domain.DomainRepository using SQLite.
type DomainRepository struct {
	db *sql.DB
}

var domainSortColumns = map[string]string{
	"id":              "id",
	"name":            "name",
	"state":           "state",
	"expiration_date": "expiration_date",
	"created_at":      "created_at",
}

const domainColumns = `id, name, portfolio_id, member_id, state, expiration_date, created_at, updated_at`

func (r *DomainRepository) Create(ctx context.Context, d domain.Domain) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO domains (`+domainColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.PortfolioID, d.MemberID, string(d.State),
		formatDate(d.ExpirationDate), formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting domain: %w", err)
	}
	return nil
}

func (r *DomainRepository) GetByID(ctx context.Context, id string) (domain.Domain, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE id = ?`, id)

	d, err := scanDomain(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Domain{}, domain.ErrDomainNotFound
	}
	if err != nil {
		return domain.Domain{}, fmt.Errorf("scanning domain: %w", err)
	}
	return d, nil
}

// List returns one page of domains. Portfolio and member filters define the
// scope; search and state filter within it.
func (r *DomainRepository) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Domain], error) {
	var zero domain.Page[domain.Domain]

	scopeConds := []string{}
	scopeArgs := []any{}
	if query.PortfolioID != "" {
		scopeConds = append(scopeConds, "portfolio_id = ?")
		scopeArgs = append(scopeArgs, query.PortfolioID)
	}
	if query.MemberID != "" {
		scopeConds = append(scopeConds, "member_id = ?")
		scopeArgs = append(scopeArgs, query.MemberID)
	}

	scopeWhere := ""
	if len(scopeConds) > 0 {
		scopeWhere = " WHERE " + strings.Join(scopeConds, " AND ")
	}

	var unfilteredTotal int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM domains`+scopeWhere, scopeArgs...,
	).Scan(&unfilteredTotal)
	if err != nil {
		return zero, fmt.Errorf("counting domains: %w", err)
	}

	conds := append([]string{}, scopeConds...)
	args := append([]any{}, scopeArgs...)
	if query.Status != "" {
		conds = append(conds, "state = ?")
		args = append(args, query.Status)
	}
	if query.SearchTerm != "" {
		conds = append(conds, "name LIKE ?")
		args = append(args, "%"+query.SearchTerm+"%")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM domains`+where, args...,
	).Scan(&total)
	if err != nil {
		return zero, fmt.Errorf("counting filtered domains: %w", err)
	}

	totalPages := domain.TotalPages(total)
	page := domain.ClampPage(query.Page, totalPages)

	orderBy := sortClause(domainSortColumns, query.SortBy, "name", query.Order)
	args = append(args, domain.PageSize, (page-1)*domain.PageSize)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+domainColumns+` FROM domains`+where+orderBy+` LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return zero, fmt.Errorf("listing domains: %w", err)
	}
	defer rows.Close()

	var items []domain.Domain
	for rows.Next() {
		d, err := scanDomain(rows.Scan)
		if err != nil {
			return zero, fmt.Errorf("scanning domain row: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("iterating domains: %w", err)
	}

	return domain.NewPage(items, page, total, unfilteredTotal), nil
}

func scanDomain(scan func(...any) error) (domain.Domain, error) {
	var d domain.Domain
	var state, expiration, createdAt, updatedAt string

	err := scan(&d.ID, &d.Name, &d.PortfolioID, &d.MemberID,
		&state, &expiration, &createdAt, &updatedAt)
	if err != nil {
		return domain.Domain{}, err
	}

	d.State = domain.DomainState(state)
	d.ExpirationDate = parseDate(expiration)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)

	return d, nil
}
