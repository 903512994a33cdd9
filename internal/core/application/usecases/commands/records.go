package commands

import (
	"time"

	"github.com/oapi-codegen/runtime/types"

	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

// JobRecord is the read model a job mutation produces: the full job joined
// with the assigned driver's display name. It is both the HTTP response body
// and the job_created / job_updated event payload.
type JobRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	DueDate     types.Date `json:"due_date"`
	DueTime     *string    `json:"due_time"`
	DriverID    *string    `json:"driver_id"`
	DriverName  *string    `json:"driver_name"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewJobRecord builds the record from the aggregate plus the driver's
// display name resolved by the caller (nil when unassigned).
func NewJobRecord(aggregate *job.Job, driverName *string) JobRecord {
	record := JobRecord{
		ID:          aggregate.ID().String(),
		Title:       aggregate.Title(),
		Description: aggregate.Description(),
		Address:     aggregate.Address(),
		DueDate:     types.Date{Time: aggregate.DueDate()},
		DueTime:     aggregate.DueTime(),
		DriverName:  driverName,
		Status:      aggregate.Status().String(),
		CreatedBy:   aggregate.CreatedBy().String(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}

	if driverID := aggregate.Driver(); driverID != nil {
		s := driverID.String()
		record.DriverID = &s
	}
	return record
}

// JobRef identifies a job that no longer exists. It is the job_deleted wire
// payload: clients need nothing more than the id to drop the row.
type JobRef struct {
	ID string `json:"id"`
}

// NoteRecord is the note joined with its author's display name. It is both
// the HTTP response body and the note_added event payload.
type NoteRecord struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNoteRecord builds the record from the note plus the author's display
// name resolved by the caller.
func NewNoteRecord(note *job.Note, authorName string) NoteRecord {
	return NoteRecord{
		ID:         note.ID().String(),
		JobID:      note.JobID().String(),
		AuthorID:   note.AuthorID().String(),
		AuthorName: authorName,
		Body:       note.Body(),
		CreatedAt:  note.CreatedAt(),
	}
}

// LocationRecord is the location_update event payload and the location
// report response body.
type LocationRecord struct {
	DriverID  string    `json:"driver_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLocationRecord builds the record from a driver's reported position.
func NewLocationRecord(driverID kernel.UUID, position geo.Coordinates, timestamp time.Time) LocationRecord {
	return LocationRecord{
		DriverID:  driverID.String(),
		Latitude:  position.Latitude(),
		Longitude: position.Longitude(),
		Timestamp: timestamp,
	}
}

// UserRecord is the user read model returned by user mutations. It never
// carries the password hash.
type UserRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserRecord builds the record from the aggregate.
func NewUserRecord(aggregate *user.User) UserRecord {
	return UserRecord{
		ID:        aggregate.ID().String(),
		Username:  aggregate.Username(),
		Name:      aggregate.Name(),
		Role:      aggregate.Role().String(),
		Active:    aggregate.IsActive(),
		CreatedAt: aggregate.CreatedAt(),
	}
}
