package domain

import "time"

// RequestStatus represents the lifecycle state of a domain request.
type RequestStatus string

const (
	StatusStarted      RequestStatus = "started"
	StatusSubmitted    RequestStatus = "submitted"
	StatusInReview     RequestStatus = "in review"
	StatusActionNeeded RequestStatus = "action needed"
	StatusApproved     RequestStatus = "approved"
	StatusWithdrawn    RequestStatus = "withdrawn"
	StatusRejected     RequestStatus = "rejected"
	StatusIneligible   RequestStatus = "ineligible"
)

// Display returns the human-readable status label shown in listings.
func (s RequestStatus) Display() string {
	switch s {
	case StatusStarted:
		return "Started"
	case StatusSubmitted:
		return "Submitted"
	case StatusInReview:
		return "In review"
	case StatusActionNeeded:
		return "Action needed"
	case StatusApproved:
		return "Approved"
	case StatusWithdrawn:
		return "Withdrawn"
	case StatusRejected:
		return "Rejected"
	case StatusIneligible:
		return "Ineligible"
	default:
		return string(s)
	}
}

// Event represents an action that triggers a state transition.
type Event string

const (
	EventSubmit              Event = "submit"
	EventInReview            Event = "in_review"
	EventActionNeeded        Event = "action_needed"
	EventApprove             Event = "approve"
	EventWithdraw            Event = "withdraw"
	EventReject              Event = "reject"
	EventRejectWithPrejudice Event = "reject_with_prejudice"
)

// Transition defines a valid state change: an event moves a request from Src to Dst.
type Transition struct {
	Event Event
	Src   RequestStatus
	Dst   RequestStatus
}

// Transitions defines all valid state changes in the domain request lifecycle.
// This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventSubmit, Src: StatusStarted, Dst: StatusSubmitted},
	{Event: EventSubmit, Src: StatusInReview, Dst: StatusSubmitted},
	{Event: EventSubmit, Src: StatusActionNeeded, Dst: StatusSubmitted},
	{Event: EventSubmit, Src: StatusWithdrawn, Dst: StatusSubmitted},
	{Event: EventInReview, Src: StatusSubmitted, Dst: StatusInReview},
	{Event: EventInReview, Src: StatusActionNeeded, Dst: StatusInReview},
	{Event: EventInReview, Src: StatusApproved, Dst: StatusInReview},
	{Event: EventInReview, Src: StatusRejected, Dst: StatusInReview},
	{Event: EventInReview, Src: StatusIneligible, Dst: StatusInReview},
	{Event: EventActionNeeded, Src: StatusInReview, Dst: StatusActionNeeded},
	{Event: EventActionNeeded, Src: StatusApproved, Dst: StatusActionNeeded},
	{Event: EventActionNeeded, Src: StatusRejected, Dst: StatusActionNeeded},
	{Event: EventActionNeeded, Src: StatusIneligible, Dst: StatusActionNeeded},
	{Event: EventApprove, Src: StatusSubmitted, Dst: StatusApproved},
	{Event: EventApprove, Src: StatusInReview, Dst: StatusApproved},
	{Event: EventApprove, Src: StatusActionNeeded, Dst: StatusApproved},
	{Event: EventApprove, Src: StatusRejected, Dst: StatusApproved},
	{Event: EventWithdraw, Src: StatusSubmitted, Dst: StatusWithdrawn},
	{Event: EventWithdraw, Src: StatusInReview, Dst: StatusWithdrawn},
	{Event: EventWithdraw, Src: StatusActionNeeded, Dst: StatusWithdrawn},
	{Event: EventReject, Src: StatusInReview, Dst: StatusRejected},
	{Event: EventReject, Src: StatusActionNeeded, Dst: StatusRejected},
	{Event: EventReject, Src: StatusApproved, Dst: StatusRejected},
	{Event: EventRejectWithPrejudice, Src: StatusInReview, Dst: StatusIneligible},
	{Event: EventRejectWithPrejudice, Src: StatusActionNeeded, Dst: StatusIneligible},
	{Event: EventRejectWithPrejudice, Src: StatusApproved, Dst: StatusIneligible},
	{Event: EventRejectWithPrejudice, Src: StatusRejected, Dst: StatusIneligible},
}

// Request is a domain request: an application for a new registered domain.
type Request struct {
	ID              string
	RequestedDomain string // blank until the requester picks a name
	PortfolioID     string
	CreatorEmail    string
	Status          RequestStatus
	SubmissionDate  time.Time // zero until first submitted
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewRequest creates a request in the initial "started" state.
func NewRequest(id, requestedDomain, portfolioID, creatorEmail string) Request {
	now := time.Now().UTC()
	return Request{
		ID:              id,
		RequestedDomain: requestedDomain,
		PortfolioID:     portfolioID,
		CreatorEmail:    creatorEmail,
		Status:          StatusStarted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsDeletable reports whether the creator may delete the request.
// Only requests that were never reviewed qualify.
func (r Request) IsDeletable() bool {
	return r.Status == StatusStarted || r.Status == StatusWithdrawn
}

// editable statuses route the requester back into the request form.
func (r Request) editable() bool {
	switch r.Status {
	case StatusStarted, StatusActionNeeded, StatusWithdrawn:
		return true
	default:
		return false
	}
}

// ActionLabel is the label of the row-level action link in listings.
func (r Request) ActionLabel() string {
	if r.editable() {
		return "Edit"
	}
	return "Manage"
}

// ActionURL is the target of the row-level action link.
func (r Request) ActionURL() string {
	if r.editable() {
		return "/domain-request/" + r.ID + "/edit"
	}
	return "/domain-request/" + r.ID
}

// SVGIcon names the design-system icon shown next to the action link.
func (r Request) SVGIcon() string {
	if r.editable() {
		return "edit"
	}
	return "settings"
}
