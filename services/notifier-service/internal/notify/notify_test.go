package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/md-rashed-zaman/advobook/libs/kafkax"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/storage"
)

type fakeEmail struct {
	sent []string
	err  error
}

func (f *fakeEmail) Send(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (f *fakeSMS) Send(_ context.Context, phone, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	return nil
}

type fakeRecorder struct {
	records []storage.Notification
}

func (f *fakeRecorder) Record(_ context.Context, n storage.Notification) error {
	f.records = append(f.records, n)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var meta = kafkax.EventMeta{EventID: "evt-1", EventType: "directory.appointment.requested.v1"}

const fullPayload = `{
	"appointment_id": 42,
	"advocate_id": 7,
	"first_name": "Ada",
	"last_name": "Lovelace",
	"phone": "5551234567",
	"email": "ada@example.com",
	"appointment_time": "2026-01-06T09:30:00Z",
	"notes": ""
}`

func TestHandleSendsEmailAndSMS(t *testing.T) {
	em, sm, rec := &fakeEmail{}, &fakeSMS{}, &fakeRecorder{}
	n := New(em, sm, rec, testLogger())

	if err := n.HandleAppointmentRequested(context.Background(), meta, []byte(fullPayload)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(em.sent) != 1 || em.sent[0] != "ada@example.com" {
		t.Fatalf("unexpected email sends: %v", em.sent)
	}
	if len(sm.sent) != 1 || sm.sent[0] != "5551234567" {
		t.Fatalf("unexpected sms sends: %v", sm.sent)
	}
	if len(rec.records) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(rec.records))
	}
	for _, r := range rec.records {
		if r.Status != storage.StatusSent || r.AppointmentID != 42 || r.EventID != "evt-1" {
			t.Fatalf("unexpected audit row: %+v", r)
		}
	}
}

func TestHandleSkipsSMSWithoutPhone(t *testing.T) {
	em, sm, rec := &fakeEmail{}, &fakeSMS{}, &fakeRecorder{}
	n := New(em, sm, rec, testLogger())

	payload := `{"appointment_id":42,"first_name":"Ada","email":"ada@example.com","appointment_time":"2026-01-06T09:30:00Z"}`
	if err := n.HandleAppointmentRequested(context.Background(), meta, []byte(payload)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(sm.sent) != 0 {
		t.Fatalf("sms should not be sent without a phone, got %v", sm.sent)
	}
	if len(rec.records) != 1 || rec.records[0].Channel != "email" {
		t.Fatalf("expected a single email audit row, got %+v", rec.records)
	}
}

func TestHandleRecordsFailureWithoutError(t *testing.T) {
	// a broken relay is recorded, not retried forever
	em := &fakeEmail{err: errors.New("relay down")}
	sm, rec := &fakeSMS{}, &fakeRecorder{}
	n := New(em, sm, rec, testLogger())

	if err := n.HandleAppointmentRequested(context.Background(), meta, []byte(fullPayload)); err != nil {
		t.Fatalf("delivery failure must not fail the event: %v", err)
	}

	var emailRow *storage.Notification
	for i := range rec.records {
		if rec.records[i].Channel == "email" {
			emailRow = &rec.records[i]
		}
	}
	if emailRow == nil {
		t.Fatal("missing email audit row")
	}
	if emailRow.Status != storage.StatusFailed || emailRow.Detail == "" {
		t.Fatalf("expected failed row with detail, got %+v", *emailRow)
	}
}

func TestHandleDropsMalformedPayload(t *testing.T) {
	em, sm, rec := &fakeEmail{}, &fakeSMS{}, &fakeRecorder{}
	n := New(em, sm, rec, testLogger())

	if err := n.HandleAppointmentRequested(context.Background(), meta, []byte("{broken")); err != nil {
		t.Fatalf("malformed payloads are dropped, not retried: %v", err)
	}
	if len(em.sent) != 0 || len(sm.sent) != 0 || len(rec.records) != 0 {
		t.Fatal("nothing should happen for a malformed payload")
	}
}
