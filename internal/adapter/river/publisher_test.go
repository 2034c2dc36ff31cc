package river_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	goriver "github.com/riverqueue/river"

	_ "modernc.org/sqlite"

	riveradapter "github.com/dotgov/registrar/internal/adapter/river"
	"github.com/dotgov/registrar/internal/domain"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := t.TempDir() + "/river_test.db"
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		t.Fatalf("setting WAL: %v", err)
	}

	return db
}

func setupClient(t *testing.T, db *sql.DB, sender riveradapter.EmailSender) *riveradapter.Client {
	t.Helper()

	client, err := riveradapter.Setup(context.Background(), db, sender, 2)
	if err != nil {
		t.Fatalf("river setup: %v", err)
	}

	return client
}

func startClient(t *testing.T, client *riveradapter.Client) {
	t.Helper()

	if err := client.Start(context.Background()); err != nil {
		t.Fatalf("river start: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Stop(stopCtx); err != nil {
			t.Errorf("river stop: %v", err)
		}
	})
}

type captureSender struct {
	to      []string
	subject []string
}

func (s *captureSender) Send(_ context.Context, to, subject, _ string) error {
	s.to = append(s.to, to)
	s.subject = append(s.subject, subject)
	return nil
}

func TestPublisher_Publish_EnqueuesJob(t *testing.T) {
	db := setupTestDB(t)
	client := setupClient(t, db, nil)
	ctx := context.Background()

	// Subscribe to job completions before starting so we don't miss events.
	subscribeChan, subscribeCancel := client.Subscribe(goriver.EventKindJobCompleted)
	defer subscribeCancel()

	startClient(t, client)

	pub := riveradapter.NewPublisher(client)
	request := domain.NewRequest("r-1", "city.gov", "p-1", "mayor@city.gov")

	if err := pub.Publish(ctx, domain.EventSubmit, request); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	// Wait for the worker to process the job.
	select {
	case event := <-subscribeChan:
		if event.Job.Kind != "request.lifecycle" {
			t.Errorf("job kind = %q, want %q", event.Job.Kind, "request.lifecycle")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job completion")
	}
}

func TestPublisher_Publish_PreservesEventData(t *testing.T) {
	db := setupTestDB(t)
	client := setupClient(t, db, nil)
	ctx := context.Background()

	subscribeChan, subscribeCancel := client.Subscribe(goriver.EventKindJobCompleted)
	defer subscribeCancel()

	startClient(t, client)

	pub := riveradapter.NewPublisher(client)
	request := domain.NewRequest("r-42", "township.gov", "p-9", "clerk@township.gov")

	if err := pub.Publish(ctx, domain.EventWithdraw, request); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case event := <-subscribeChan:
		// Verify the job carried the right args by checking the encoded JSON.
		args := event.Job.EncodedArgs
		if args == nil {
			t.Fatal("expected encoded args, got nil")
		}
		argsStr := string(args)
		for _, want := range []string{`"event":"withdraw"`, `"request_id":"r-42"`, `"requested_domain":"township.gov"`, `"creator_email":"clerk@township.gov"`} {
			if !strings.Contains(argsStr, want) {
				t.Errorf("encoded args missing %s, got: %s", want, argsStr)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job completion")
	}
}

func TestNotificationWorker_SendsToRequester(t *testing.T) {
	db := setupTestDB(t)
	sender := &captureSender{}
	client := setupClient(t, db, sender)
	ctx := context.Background()

	subscribeChan, subscribeCancel := client.Subscribe(goriver.EventKindJobCompleted)
	defer subscribeCancel()

	startClient(t, client)

	pub := riveradapter.NewPublisher(client)
	request := domain.NewRequest("r-7", "county.gov", "p-2", "admin@county.gov")
	request.Status = domain.StatusSubmitted

	if err := pub.Publish(ctx, domain.EventApprove, request); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	select {
	case <-subscribeChan:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for job completion")
	}

	if len(sender.to) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.to))
	}
	if sender.to[0] != "admin@county.gov" {
		t.Errorf("sent to %q, want the request creator", sender.to[0])
	}
	if !strings.Contains(sender.subject[0], "approved") {
		t.Errorf("subject = %q, want approval notice", sender.subject[0])
	}
}
