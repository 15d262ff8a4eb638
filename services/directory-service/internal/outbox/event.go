package outbox

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType (one topic per event type).
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// EventTypeAppointmentRequested is emitted once per created appointment,
// in the same transaction as the insert.
const EventTypeAppointmentRequested = "directory.appointment.requested.v1"
