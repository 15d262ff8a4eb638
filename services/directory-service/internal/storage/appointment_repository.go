package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/md-rashed-zaman/advobook/libs/db"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/model"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/outbox"
)

type AppointmentRepository struct {
	pool   *db.Pool
	outbox *outbox.Repository
}

func NewAppointmentRepository(pool *db.Pool, ob *outbox.Repository) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, outbox: ob}
}

// Create inserts the appointment and the matching outbox event in one
// transaction. Two concurrent requests for the same advocate and slot
// both succeed; the slot shows as taken only on the next availability
// read.
func (r *AppointmentRepository) Create(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Appointment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (advocate_id, first_name, last_name, phone, email, appointment_time, notes, scheduling_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, appt.AdvocateID, appt.FirstName, appt.LastName, appt.Phone, appt.Email, appt.AppointmentTime, appt.Notes, appt.SchedulingStatus).
		Scan(&appt.ID, &appt.CreatedAt)
	if err != nil {
		return model.Appointment{}, err
	}

	payload, err := json.Marshal(map[string]any{
		"appointment_id":   appt.ID,
		"advocate_id":      appt.AdvocateID,
		"first_name":       appt.FirstName,
		"last_name":        appt.LastName,
		"phone":            appt.Phone,
		"email":            appt.Email,
		"appointment_time": appt.AppointmentTime.Format(time.RFC3339),
		"notes":            appt.Notes,
	})
	if err != nil {
		return model.Appointment{}, err
	}
	err = r.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   strconv.FormatInt(appt.ID, 10),
		EventType:     outbox.EventTypeAppointmentRequested,
		Payload:       payload,
	})
	if err != nil {
		return model.Appointment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Appointment{}, err
	}
	return appt, nil
}

// ListBookedTimes returns the start instants already requested for the
// advocate inside [from, to). Every status counts as booked, including
// plain requests that were never approved.
func (r *AppointmentRepository) ListBookedTimes(ctx context.Context, advocateID int64, from, to time.Time) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT appointment_time
		FROM appointments
		WHERE advocate_id = $1
		  AND appointment_time >= $2
		  AND appointment_time < $3
	`, advocateID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var booked []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		booked = append(booked, t)
	}
	return booked, rows.Err()
}
