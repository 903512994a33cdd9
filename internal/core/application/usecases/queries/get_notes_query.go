package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetNotesQueryIsNotConstructed = errors.New(
	"GetNotesQuery must be created via NewGetNotesQuery constructor",
)

// GetNotesQuery retrieves a job's notes oldest first, each joined with its
// author's display name. A driver may read notes only on jobs assigned to
// them.
type GetNotesQuery struct { //nolint:recvcheck //using for validation
	actor ports.Claims
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetNotesQuery creates a query for the given job's notes on behalf of
// the acting user.
func NewGetNotesQuery(actor ports.Claims, jobID kernel.UUID) (GetNotesQuery, error) {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate(), jobID.Validate()); err != nil {
		return GetNotesQuery{}, err
	}

	return GetNotesQuery{
		actor: actor,
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNotesQuery) Validate() error {
	return q.guard.Validate(ErrGetNotesQueryIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (q GetNotesQuery) Actor() ports.Claims {
	return q.actor
}

// JobID returns the identifier of the job whose notes are requested.
func (q GetNotesQuery) JobID() kernel.UUID {
	return q.jobID
}

// NoteResponse represents a note row in the read model.
type NoteResponse struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
