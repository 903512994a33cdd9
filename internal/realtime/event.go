package realtime

import (
	"dispatch/internal/core/domain/model/kernel"
)

// EventType names a realtime channel event. The values are the wire names
// clients subscribe to.
type EventType string

const (
	// EventJobCreated carries the full new job record with driver name.
	EventJobCreated EventType = "job_created"

	// EventJobUpdated carries the full resulting job record with driver name.
	EventJobUpdated EventType = "job_updated"

	// EventJobDeleted carries only the deleted job's identity.
	EventJobDeleted EventType = "job_deleted"

	// EventNoteAdded carries the new note joined with its author's name.
	EventNoteAdded EventType = "note_added"

	// EventLocationUpdate carries a driver's latest position.
	EventLocationUpdate EventType = "location_update"
)

// Event is a typed domain event published on the bus. Payload is the wire
// payload delivered verbatim to eligible sessions.
//
// DriverID is a visibility input for the policy, never serialized: for job
// and note events it names the job's assigned driver at publish time (nil
// when unassigned), for location events the reporting driver. Carrying it
// out-of-band lets job_deleted keep its minimal {id} wire payload while the
// policy still knows who the event concerns.
type Event struct {
	Type     EventType
	Payload  any
	DriverID *kernel.UUID
}

// NewEvent creates an event without a driver scope. Only admin and
// dispatcher sessions will receive it.
func NewEvent(eventType EventType, payload any) Event {
	return Event{Type: eventType, Payload: payload}
}

// NewDriverScopedEvent creates an event additionally visible to the single
// named driver.
func NewDriverScopedEvent(eventType EventType, payload any, driverID kernel.UUID) Event {
	return Event{Type: eventType, Payload: payload, DriverID: &driverID}
}

// Envelope is the frame written to the realtime channel: the event name
// plus its payload.
type Envelope struct {
	Event EventType `json:"event"`
	Data  any       `json:"data"`
}
