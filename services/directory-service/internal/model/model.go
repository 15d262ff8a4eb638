package model

import "time"

// Advocate is a directory record for a bookable service professional.
// Rows are seeded administratively; this service never mutates them.
type Advocate struct {
	ID                int64
	FirstName         string
	LastName          string
	City              string
	Degree            string
	Specialties       []string
	YearsOfExperience int
	PhoneNumber       int64
	CreatedAt         time.Time
}

// Scheduling statuses an appointment can carry. New appointments always
// start as StatusRequested; the later states are driven by back-office
// tooling outside this service.
const (
	StatusRequested = "requested"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusConfirmed = "confirmed"
)

// Appointment is a visitor's booking request against an advocate. The
// instant marks the slot start; the 30-minute duration is convention and
// never stored.
type Appointment struct {
	ID               int64
	AdvocateID       int64
	FirstName        string
	LastName         string
	Phone            string
	Email            string
	AppointmentTime  time.Time
	Notes            string
	SchedulingStatus string
	CreatedAt        time.Time
}
