package river

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/riverqueue/river"
)

// EmailSender delivers one rendered notification. The production registrar
// hands these to a transactional mail service; the default implementation
// just logs.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender is an EmailSender that writes the message to the log.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, _ string) error {
	slog.InfoContext(ctx, "email notification", "to", to, "subject", subject)
	return nil
}

// notificationTemplates renders the per-event message bodies. Events with
// no template (administrative moves like in_review) notify nobody.
var notificationTemplates = template.Must(
	template.New("notifications").Funcs(sprig.TxtFuncMap()).Parse(`
{{- define "submit" -}}
We received your .gov domain request for {{ .RequestedDomain | default "your organization" }}.
Our team will review it and reply within the published service levels.
{{- end -}}

{{- define "approve" -}}
Congratulations! Your .gov domain request for {{ .RequestedDomain | default "your organization" }} has been approved.
You can begin setting up your domain from your registrar dashboard.
{{- end -}}

{{- define "reject" -}}
Your .gov domain request for {{ .RequestedDomain | default "your organization" }} was not approved.
Reply to this message if you believe this decision was made in error.
{{- end -}}

{{- define "action_needed" -}}
Your .gov domain request for {{ .RequestedDomain | default "your organization" }} needs an update from you before review can continue.
{{- end -}}

{{- define "withdraw" -}}
Your .gov domain request for {{ .RequestedDomain | default "your organization" }} has been withdrawn.
You can resubmit it at any time.
{{- end -}}
`))

var notificationSubjects = map[string]string{
	"submit":        "We received your .gov domain request",
	"approve":       "Your .gov domain request has been approved",
	"reject":        "An update on your .gov domain request",
	"action_needed": "Your .gov domain request needs updates",
	"withdraw":      "Your .gov domain request has been withdrawn",
}

// ComposeNotification renders the subject and body for a lifecycle event.
// The second return value is false when the event carries no notification.
func ComposeNotification(args LifecycleJobArgs) (subject, body string, ok bool) {
	subject, ok = notificationSubjects[args.Event]
	if !ok {
		return "", "", false
	}

	var buf strings.Builder
	if err := notificationTemplates.ExecuteTemplate(&buf, args.Event, args); err != nil {
		// Templates are compiled at init; execution over a plain struct
		// cannot realistically fail, but never drop a job silently.
		return "", "", false
	}
	return subject, buf.String(), true
}

// NotificationWorker processes lifecycle jobs from the River queue and
// emails the requester about the change.
type NotificationWorker struct {
	river.WorkerDefaults[LifecycleJobArgs]

	sender EmailSender
}

// NewNotificationWorker creates a worker that delivers through the given sender.
func NewNotificationWorker(sender EmailSender) *NotificationWorker {
	return &NotificationWorker{sender: sender}
}

// Work processes a single lifecycle job.
func (w *NotificationWorker) Work(ctx context.Context, job *river.Job[LifecycleJobArgs]) error {
	slog.InfoContext(ctx, "processing lifecycle event",
		"event", job.Args.Event,
		"request_id", job.Args.RequestID,
		"status", job.Args.Status,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)

	subject, body, ok := ComposeNotification(job.Args)
	if !ok {
		return nil
	}
	if job.Args.CreatorEmail == "" {
		slog.WarnContext(ctx, "request has no creator email, skipping notification",
			"request_id", job.Args.RequestID)
		return nil
	}

	if err := w.sender.Send(ctx, job.Args.CreatorEmail, subject, body); err != nil {
		return fmt.Errorf("sending %s notification for request %s: %w", job.Args.Event, job.Args.RequestID, err)
	}
	return nil
}
