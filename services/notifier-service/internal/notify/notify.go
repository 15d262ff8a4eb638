package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/md-rashed-zaman/advobook/libs/kafkax"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/email"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/sms"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/storage"
)

// appointmentRequested mirrors the payload the directory service emits.
type appointmentRequested struct {
	AppointmentID   int64  `json:"appointment_id"`
	AdvocateID      int64  `json:"advocate_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	AppointmentTime string `json:"appointment_time"`
	Notes           string `json:"notes"`
}

// NotificationRecorder persists one delivery attempt for the audit trail.
type NotificationRecorder interface {
	Record(ctx context.Context, n storage.Notification) error
}

// Notifier turns appointment-requested events into an email (always) and
// an SMS (when the visitor left a phone number), recording each attempt.
type Notifier struct {
	email         email.Sender
	sms           sms.Sender
	notifications NotificationRecorder
	logger        *slog.Logger
}

func New(emailSender email.Sender, smsSender sms.Sender, notifications NotificationRecorder, logger *slog.Logger) *Notifier {
	return &Notifier{email: emailSender, sms: smsSender, notifications: notifications, logger: logger}
}

// HandleAppointmentRequested is the consumer handler for the
// appointment-requested topic. Delivery failures are recorded but do not
// fail the event: a broken relay must not wedge the consumer group.
func (n *Notifier) HandleAppointmentRequested(ctx context.Context, meta kafkax.EventMeta, payload []byte) error {
	var evt appointmentRequested
	if err := json.Unmarshal(payload, &evt); err != nil {
		// malformed payloads never become valid on retry
		n.logger.Error("unparsable event payload dropped", "event_id", meta.EventID, "err", err)
		return nil
	}

	when := evt.AppointmentTime
	if t, err := time.Parse(time.RFC3339, evt.AppointmentTime); err == nil {
		when = t.Format("Monday, 2 Jan 2006 at 15:04")
	}

	subject := "Your appointment request was received"
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received your appointment request for %s. You will hear from us once it is confirmed.\n\nThe AdvoBook team",
		evt.FirstName, when,
	)
	n.deliver(ctx, meta, evt, "email", evt.Email, func() error {
		return n.email.Send(ctx, evt.Email, subject, body)
	})

	if evt.Phone != "" {
		text := fmt.Sprintf("AdvoBook: appointment request for %s received. We'll text you once it's confirmed.", when)
		n.deliver(ctx, meta, evt, "sms", evt.Phone, func() error {
			return n.sms.Send(ctx, evt.Phone, text)
		})
	}
	return nil
}

func (n *Notifier) deliver(ctx context.Context, meta kafkax.EventMeta, evt appointmentRequested, channel, recipient string, send func() error) {
	record := storage.Notification{
		EventID:       meta.EventID,
		AppointmentID: evt.AppointmentID,
		Channel:       channel,
		Recipient:     recipient,
		Status:        storage.StatusSent,
	}
	if err := send(); err != nil {
		n.logger.Error("notification delivery failed", "channel", channel, "event_id", meta.EventID, "err", err)
		record.Status = storage.StatusFailed
		record.Detail = err.Error()
	}
	if err := n.notifications.Record(ctx, record); err != nil {
		n.logger.Error("notification audit write failed", "channel", channel, "event_id", meta.EventID, "err", err)
	}
}
