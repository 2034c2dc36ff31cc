package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dotgov/registrar/internal/domain"
)

// Compile-time check: MemberRepository implements domain.MemberRepository.
var _ domain.MemberRepository = (*MemberRepository)(nil)

// MemberRepository implements domain.MemberRepository using SQLite.
type MemberRepository struct {
	db *sql.DB
}

var memberSortColumns = map[string]string{
	"id":           "id",
	"email":        "email",
	"display_name": "display_name",
	"last_active":  "last_active",
	"created_at":   "created_at",
}

const memberColumns = `id, email, display_name, portfolio_id, is_admin, last_active, created_at`

func (r *MemberRepository) Create(ctx context.Context, m domain.Member) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO members (`+memberColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Email, m.DisplayName, m.PortfolioID, m.IsAdmin,
		formatTime(m.LastActive), formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (domain.Member, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = ?`, id)

	m, err := scanMember(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Member{}, domain.ErrMemberNotFound
	}
	if err != nil {
		return domain.Member{}, fmt.Errorf("scanning member: %w", err)
	}
	return m, nil
}

// List returns one page of members. Search matches the email address or
// the display name.
func (r *MemberRepository) List(ctx context.Context, query domain.ListQuery) (domain.Page[domain.Member], error) {
	var zero domain.Page[domain.Member]

	scopeWhere := ""
	scopeArgs := []any{}
	if query.PortfolioID != "" {
		scopeWhere = " WHERE portfolio_id = ?"
		scopeArgs = append(scopeArgs, query.PortfolioID)
	}

	var unfilteredTotal int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members`+scopeWhere, scopeArgs...,
	).Scan(&unfilteredTotal)
	if err != nil {
		return zero, fmt.Errorf("counting members: %w", err)
	}

	conds := []string{}
	args := []any{}
	if query.PortfolioID != "" {
		conds = append(conds, "portfolio_id = ?")
		args = append(args, query.PortfolioID)
	}
	if query.SearchTerm != "" {
		conds = append(conds, "(email LIKE ? OR display_name LIKE ?)")
		like := "%" + query.SearchTerm + "%"
		args = append(args, like, like)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM members`+where, args...,
	).Scan(&total)
	if err != nil {
		return zero, fmt.Errorf("counting filtered members: %w", err)
	}

	totalPages := domain.TotalPages(total)
	page := domain.ClampPage(query.Page, totalPages)

	orderBy := sortClause(memberSortColumns, query.SortBy, "email", query.Order)
	args = append(args, domain.PageSize, (page-1)*domain.PageSize)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+memberColumns+` FROM members`+where+orderBy+` LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return zero, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var items []domain.Member
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return zero, fmt.Errorf("scanning member row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return zero, fmt.Errorf("iterating members: %w", err)
	}

	return domain.NewPage(items, page, total, unfilteredTotal), nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func scanMember(scan func(...any) error) (domain.Member, error) {
	var m domain.Member
	var lastActive, createdAt string

	err := scan(&m.ID, &m.Email, &m.DisplayName, &m.PortfolioID, &m.IsAdmin,
		&lastActive, &createdAt)
	if err != nil {
		return domain.Member{}, err
	}

	m.LastActive = parseTime(lastActive)
	m.CreatedAt = parseTime(createdAt)

	return m, nil
}
