package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func doCreateAppointment(t *testing.T, h *DirectoryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, req)
	return rec
}

func validCreateBody() string {
	return `{
		"advocateId": 7,
		"firstName": "Ada",
		"lastName": "Lovelace",
		"phone": "5551234567",
		"email": "ada@example.com",
		"selectedAppointment": "2026-01-06T09:30:00Z",
		"notes": "first visit"
	}`
}

func TestCreateAppointmentSuccess(t *testing.T) {
	store := &fakeAppointmentStore{}
	h := newTestHandler(&fakeAdvocateStore{}, store, time.Time{})

	rec := doCreateAppointment(t, h, validCreateBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success     bool           `json:"success"`
		Appointment appointmentDTO `json:"appointment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response decode failed: %v", err)
	}
	if !body.Success {
		t.Fatalf("expected success=true: %s", rec.Body.String())
	}
	appt := body.Appointment
	if appt.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if appt.SchedulingStatus != "requested" {
		t.Fatalf("new appointments must be requested, got %q", appt.SchedulingStatus)
	}
	if appt.AppointmentTime != "2026-01-06T09:30:00Z" {
		t.Fatalf("unexpected appointment time %q", appt.AppointmentTime)
	}
	if appt.FirstName != "Ada" || appt.Email != "ada@example.com" {
		t.Fatalf("request fields lost: %+v", appt)
	}
}

func TestCreateAppointmentIgnoresClientStatus(t *testing.T) {
	store := &fakeAppointmentStore{}
	h := newTestHandler(&fakeAdvocateStore{}, store, time.Time{})

	body := strings.Replace(validCreateBody(), `"notes": "first visit"`,
		`"notes": "first visit", "schedulingStatus": "confirmed"`, 1)
	rec := doCreateAppointment(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := store.appointments[0].SchedulingStatus; got != "requested" {
		t.Fatalf("client-supplied status must be ignored, got %q", got)
	}
}

func TestCreateAppointmentInvalidJSON(t *testing.T) {
	store := &fakeAppointmentStore{}
	h := newTestHandler(&fakeAdvocateStore{}, store, time.Time{})

	rec := doCreateAppointment(t, h, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if store.calls != 0 {
		t.Fatal("store must not be touched on a bad body")
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing advocateId", `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","selectedAppointment":"2026-01-06T09:30:00Z"}`, "advocateId"},
		{"blank firstName", `{"advocateId":7,"firstName":"   ","lastName":"Lovelace","email":"ada@example.com","selectedAppointment":"2026-01-06T09:30:00Z"}`, "firstName"},
		{"missing lastName", `{"advocateId":7,"firstName":"Ada","email":"ada@example.com","selectedAppointment":"2026-01-06T09:30:00Z"}`, "lastName"},
		{"missing email", `{"advocateId":7,"firstName":"Ada","lastName":"Lovelace","selectedAppointment":"2026-01-06T09:30:00Z"}`, "email"},
		{"malformed email", `{"advocateId":7,"firstName":"Ada","lastName":"Lovelace","email":"not-an-email","selectedAppointment":"2026-01-06T09:30:00Z"}`, "email"},
		{"missing selectedAppointment", `{"advocateId":7,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`, "selectedAppointment"},
		{"bad timestamp", `{"advocateId":7,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","selectedAppointment":"tomorrow at nine"}`, "selectedAppointment"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeAppointmentStore{}
			h := newTestHandler(&fakeAdvocateStore{}, store, time.Time{})

			rec := doCreateAppointment(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if store.calls != 0 {
				t.Fatal("store must not be touched on validation failure")
			}

			var body struct {
				Success bool              `json:"success"`
				Errors  map[string]string `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body decode failed: %v", err)
			}
			if body.Success {
				t.Fatal("expected success=false")
			}
			if _, ok := body.Errors[tc.field]; !ok {
				t.Fatalf("expected field error for %q, got %v", tc.field, body.Errors)
			}
		})
	}
}

func TestCreateAppointmentStoreError(t *testing.T) {
	store := &fakeAppointmentStore{createErr: errStore}
	h := newTestHandler(&fakeAdvocateStore{}, store, time.Time{})

	rec := doCreateAppointment(t, h, validCreateBody())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCreateAppointmentAllowsDoubleBooking(t *testing.T) {
	// Two requests for the same advocate and slot both go through. Slot
	// contention is resolved by staff at confirmation time, not here.
	store := &fakeAppointmentStore{}
	h := newTestHandler(&fakeAdvocateStore{}, store, time.Time{})

	first := doCreateAppointment(t, h, validCreateBody())
	second := doCreateAppointment(t, h, validCreateBody())
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected both to succeed, got %d and %d", first.Code, second.Code)
	}
	if len(store.appointments) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(store.appointments))
	}
	if store.appointments[0].ID == store.appointments[1].ID {
		t.Fatal("duplicate bookings must get distinct ids")
	}
}

func TestCreateAppointmentRejectsGet(t *testing.T) {
	h := newTestHandler(&fakeAdvocateStore{}, &fakeAppointmentStore{}, time.Time{})
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
