package storage

import (
	"context"

	"github.com/md-rashed-zaman/advobook/libs/db"
)

// Notification statuses recorded in the audit table.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Notification is one delivery attempt for one channel.
type Notification struct {
	EventID       string
	AppointmentID int64
	Channel       string // "email" or "sms"
	Recipient     string
	Status        string
	Detail        string // failure reason, empty on success
}

type NotificationsRepository struct {
	pool *db.Pool
}

func NewNotificationsRepository(pool *db.Pool) *NotificationsRepository {
	return &NotificationsRepository{pool: pool}
}

func (r *NotificationsRepository) Record(ctx context.Context, n Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (event_id, appointment_id, channel, recipient, status, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.EventID, n.AppointmentID, n.Channel, n.Recipient, n.Status, n.Detail)
	return err
}
