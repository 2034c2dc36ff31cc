package domain

import "time"

// Member is a user who belongs to a portfolio and can manage its domains.
type Member struct {
	ID          string
	Email       string
	DisplayName string
	PortfolioID string
	IsAdmin     bool
	LastActive  time.Time // zero when the member never signed in
	CreatedAt   time.Time
}

// NewMember creates a portfolio member.
func NewMember(id, email, displayName, portfolioID string, isAdmin bool) Member {
	return Member{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		PortfolioID: portfolioID,
		IsAdmin:     isAdmin,
		CreatedAt:   time.Now().UTC(),
	}
}
