// Package jobrepo provides data transfer objects and mapping functions for
// job persistence. It implements the repository pattern for the job domain
// aggregate, handling conversion between domain entities and database rows.
package jobrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobDTO represents the database structure for persisting job aggregates.
// Indexed by driver assignment and status, the two axes the job list
// filters on.
type JobDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	Address     string    `gorm:"not null"`
	DueDate     time.Time `gorm:"type:date;not null"`
	DueTime     *string
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid"`
	Status      string     `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for job entities.
func (JobDTO) TableName() string {
	return "jobs"
}

// NoteDTO represents the database structure for job notes. Rows are
// append-only and removed only by cascading job deletion.
type NoteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID     uuid.UUID `gorm:"type:uuid;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid"`
	Body      string    `gorm:"not null"`
	CreatedAt time.Time
}

// TableName specifies the database table name for note entities.
func (NoteDTO) TableName() string {
	return "notes"
}

func fromDomain(aggregate *job.Job) JobDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return JobDTO{
		ID:          aggregate.ID().Bytes(),
		Title:       aggregate.Title(),
		Description: aggregate.Description(),
		Address:     aggregate.Address(),
		DueDate:     aggregate.DueDate(),
		DueTime:     aggregate.DueTime(),
		DriverID:    driverID,
		CreatedBy:   aggregate.CreatedBy().Bytes(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}

		driverID = &dID
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	status, err := job.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		id,
		dto.Title, dto.Description, dto.Address,
		dto.DueDate, dto.DueTime,
		driverID,
		createdBy,
		status,
		dto.CreatedAt, dto.UpdatedAt,
	)
}

func noteFromDomain(note *job.Note) NoteDTO {
	return NoteDTO{
		ID:        note.ID().Bytes(),
		JobID:     note.JobID().Bytes(),
		AuthorID:  note.AuthorID().Bytes(),
		Body:      note.Body(),
		CreatedAt: note.CreatedAt(),
	}
}
