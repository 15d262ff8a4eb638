package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/availability"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/model"
)

// AdvocateStore is the slice of storage the directory endpoints need.
type AdvocateStore interface {
	Search(ctx context.Context, page, pageSize int, query string) ([]model.Advocate, int, error)
}

// AppointmentStore covers booking writes and the booked-slot reads the
// availability endpoint subtracts from the candidate window.
type AppointmentStore interface {
	Create(ctx context.Context, appt model.Appointment) (model.Appointment, error)
	ListBookedTimes(ctx context.Context, advocateID int64, from, to time.Time) ([]time.Time, error)
}

type DirectoryHandler struct {
	advocates    AdvocateStore
	appointments AppointmentStore
	slots        availability.Provider
	logger       *slog.Logger
	now          func() time.Time
}

func NewDirectoryHandler(advocates AdvocateStore, appointments AppointmentStore, slots availability.Provider, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		advocates:    advocates,
		appointments: appointments,
		slots:        slots,
		logger:       logger,
		now:          time.Now,
	}
}

func (h *DirectoryHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/advocates", h.ListAdvocates)
	mux.HandleFunc("/availability", h.GetAvailability)
	mux.HandleFunc("/appointments", h.CreateAppointment)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
