package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrRequestNotFound = errors.New("domain request not found")
	ErrDomainNotFound  = errors.New("domain not found")
	ErrMemberNotFound  = errors.New("member not found")
)

// NotDeletableError is returned when a delete targets a request whose
// status no longer allows deletion.
type NotDeletableError struct {
	ID     string
	Status RequestStatus
}

func (e *NotDeletableError) Error() string {
	return fmt.Sprintf("request %s cannot be deleted in status %q", e.ID, e.Status)
}

// TransitionError is returned when a lifecycle transition is not allowed.
type TransitionError struct {
	Event   Event
	Current RequestStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from status %q", e.Event, e.Current)
}
