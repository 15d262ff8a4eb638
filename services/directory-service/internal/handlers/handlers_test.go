package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/availability"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/model"
)

func availabilityScheduleForTest() availability.WeekdaySchedule {
	return availability.DefaultSchedule()
}

type fakeAdvocateStore struct {
	advocates []model.Advocate
	total     int
	err       error

	gotPage     int
	gotPageSize int
	gotQuery    string
	calls       int
}

func (f *fakeAdvocateStore) Search(_ context.Context, page, pageSize int, query string) ([]model.Advocate, int, error) {
	f.calls++
	f.gotPage, f.gotPageSize, f.gotQuery = page, pageSize, query
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.advocates, f.total, nil
}

// fakeAppointmentStore keeps appointments in memory and answers
// ListBookedTimes with the same half-open window the real repository
// queries with.
type fakeAppointmentStore struct {
	appointments []model.Appointment
	createErr    error
	listErr      error
	nextID       int64

	gotFrom time.Time
	gotTo   time.Time
	calls   int
}

func (f *fakeAppointmentStore) Create(_ context.Context, appt model.Appointment) (model.Appointment, error) {
	f.calls++
	if f.createErr != nil {
		return model.Appointment{}, f.createErr
	}
	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	f.appointments = append(f.appointments, appt)
	return appt, nil
}

func (f *fakeAppointmentStore) ListBookedTimes(_ context.Context, advocateID int64, from, to time.Time) ([]time.Time, error) {
	f.calls++
	f.gotFrom, f.gotTo = from, to
	if f.listErr != nil {
		return nil, f.listErr
	}
	var booked []time.Time
	for _, appt := range f.appointments {
		if appt.AdvocateID != advocateID {
			continue
		}
		t := appt.AppointmentTime
		if !t.Before(from) && t.Before(to) {
			booked = append(booked, t)
		}
	}
	return booked, nil
}

var errStore = errors.New("store exploded")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(advocates *fakeAdvocateStore, appointments *fakeAppointmentStore, now time.Time) *DirectoryHandler {
	h := NewDirectoryHandler(advocates, appointments, availabilityScheduleForTest(), testLogger())
	if !now.IsZero() {
		h.now = func() time.Time { return now }
	}
	return h
}
