package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/model"
)

type createAppointmentRequest struct {
	AdvocateID          int64  `json:"advocateId"`
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	SelectedAppointment string `json:"selectedAppointment"`
	Notes               string `json:"notes"`
}

func (req createAppointmentRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.AdvocateID, validation.Required),
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.SelectedAppointment, validation.Required, validation.By(validRFC3339)),
	)
}

func validRFC3339(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required already covers the empty case
	}
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return errors.New("must be an RFC 3339 timestamp")
	}
	return nil
}

type appointmentDTO struct {
	ID               int64  `json:"id"`
	AdvocateID       int64  `json:"advocateId"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	AppointmentTime  string `json:"appointmentTime"`
	Notes            string `json:"notes"`
	SchedulingStatus string `json:"schedulingStatus"`
	CreatedAt        string `json:"createdAt"`
}

// CreateAppointment serves POST /appointments. There is deliberately no
// duplicate-slot check here: two visitors racing for the same slot both
// get a row, and staff sort it out during confirmation.
func (h *DirectoryHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.SelectedAppointment = strings.TrimSpace(req.SelectedAppointment)
	req.Notes = strings.TrimSpace(req.Notes)

	if err := req.Validate(); err != nil {
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "errors": fieldErrs})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	when, err := time.Parse(time.RFC3339, req.SelectedAppointment)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid selectedAppointment")
		return
	}

	appt, err := h.appointments.Create(r.Context(), model.Appointment{
		AdvocateID:       req.AdvocateID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Email:            req.Email,
		AppointmentTime:  when,
		Notes:            req.Notes,
		SchedulingStatus: model.StatusRequested,
	})
	if err != nil {
		h.logger.Error("appointment create failed", "err", err, "advocate_id", req.AdvocateID)
		writeError(w, http.StatusInternalServerError, "failed to create appointment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"appointment": appointmentDTO{
			ID:               appt.ID,
			AdvocateID:       appt.AdvocateID,
			FirstName:        appt.FirstName,
			LastName:         appt.LastName,
			Phone:            appt.Phone,
			Email:            appt.Email,
			AppointmentTime:  appt.AppointmentTime.Format(time.RFC3339),
			Notes:            appt.Notes,
			SchedulingStatus: appt.SchedulingStatus,
			CreatedAt:        appt.CreatedAt.Format(time.RFC3339),
		},
	})
}
