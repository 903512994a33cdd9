// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the external
// authenticator, and the event publisher. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates and
// their notes. Notes live inside the job aggregate boundary: they are
// append-only and removed only by cascading job deletion.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate. The write
	// replaces the whole row; last-write-wins for concurrent edits.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// Delete removes a job and cascades deletion of its notes.
	Delete(ctx context.Context, id kernel.UUID) error

	// AddNote appends an immutable note to a job.
	AddNote(ctx context.Context, note *job.Note) error
}
