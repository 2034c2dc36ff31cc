package domain

import "time"

// DomainState represents the registry state of a registered domain.
type DomainState string

const (
	DomainUnknown   DomainState = "unknown"
	DomainDNSNeeded DomainState = "dns needed"
	DomainReady     DomainState = "ready"
	DomainOnHold    DomainState = "on hold"
	DomainDeleted   DomainState = "deleted"
)

// Display returns the human-readable state label shown in listings.
func (s DomainState) Display() string {
	switch s {
	case DomainUnknown:
		return "Unknown"
	case DomainDNSNeeded:
		return "DNS needed"
	case DomainReady:
		return "Ready"
	case DomainOnHold:
		return "On hold"
	case DomainDeleted:
		return "Deleted"
	default:
		return string(s)
	}
}

// Domain is a registered domain managed through the registrar.
type Domain struct {
	ID             string
	Name           string
	PortfolioID    string
	MemberID       string // member who manages the domain, blank when unassigned
	State          DomainState
	ExpirationDate time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewDomain creates a domain in the "unknown" state, as registered domains
// start before their nameservers are configured.
func NewDomain(id, name, portfolioID, memberID string, expiration time.Time) Domain {
	now := time.Now().UTC()
	return Domain{
		ID:             id,
		Name:           name,
		PortfolioID:    portfolioID,
		MemberID:       memberID,
		State:          DomainUnknown,
		ExpirationDate: expiration,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsExpired reports whether the domain's registration period has lapsed.
func (d Domain) IsExpired() bool {
	if d.ExpirationDate.IsZero() {
		return false
	}
	return d.ExpirationDate.Before(time.Now().UTC())
}
