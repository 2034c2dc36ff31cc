package river_test

import (
	"strings"
	"testing"

	riveradapter "github.com/dotgov/registrar/internal/adapter/river"
)

func TestComposeNotification_Approve(t *testing.T) {
	subject, body, ok := riveradapter.ComposeNotification(riveradapter.LifecycleJobArgs{
		Event:           "approve",
		RequestID:       "r-1",
		RequestedDomain: "city.gov",
		CreatorEmail:    "mayor@city.gov",
		Status:          "approved",
	})

	if !ok {
		t.Fatal("approve should produce a notification")
	}
	if !strings.Contains(subject, "approved") {
		t.Errorf("subject = %q, want mention of approval", subject)
	}
	if !strings.Contains(body, "city.gov") {
		t.Errorf("body = %q, want the requested domain", body)
	}
}

func TestComposeNotification_BlankDomainFallsBack(t *testing.T) {
	_, body, ok := riveradapter.ComposeNotification(riveradapter.LifecycleJobArgs{
		Event:     "submit",
		RequestID: "r-1",
	})

	if !ok {
		t.Fatal("submit should produce a notification")
	}
	if !strings.Contains(body, "your organization") {
		t.Errorf("body = %q, want the blank-domain fallback", body)
	}
	if strings.Contains(body, "{{") {
		t.Errorf("body contains unrendered template syntax: %q", body)
	}
}

func TestComposeNotification_AdministrativeEventsAreSilent(t *testing.T) {
	for _, event := range []string{"in_review", "reject_with_prejudice"} {
		if _, _, ok := riveradapter.ComposeNotification(riveradapter.LifecycleJobArgs{Event: event}); ok {
			t.Errorf("event %q should not notify the requester", event)
		}
	}
}
