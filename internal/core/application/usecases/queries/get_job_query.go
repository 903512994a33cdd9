package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrGetJobQueryIsNotConstructed = errors.New(
	"GetJobQuery must be created via NewGetJobQuery constructor",
)

// GetJobQuery retrieves one job by id. A driver may fetch only jobs
// assigned to them.
type GetJobQuery struct { //nolint:recvcheck //using for validation
	actor ports.Claims
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetJobQuery creates a query for the given job on behalf of the acting
// user.
func NewGetJobQuery(actor ports.Claims, jobID kernel.UUID) (GetJobQuery, error) {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate(), jobID.Validate()); err != nil {
		return GetJobQuery{}, err
	}

	return GetJobQuery{
		actor: actor,
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (q GetJobQuery) Actor() ports.Claims {
	return q.actor
}

// JobID returns the identifier of the job to fetch.
func (q GetJobQuery) JobID() kernel.UUID {
	return q.jobID
}
