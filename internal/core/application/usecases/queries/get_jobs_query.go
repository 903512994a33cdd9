// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS
// architecture. Handlers read through raw SQL for lean read models; role
// scoping is applied inside the query so a driver can never widen its view
// with filter parameters.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"

	"github.com/oapi-codegen/runtime/types"
)

var ErrGetJobsQueryIsNotConstructed = errors.New(
	"GetJobsQuery must be created via NewGetJobsQuery constructor",
)

// JobFilter narrows the job list. Nil members are inactive. For a driver
// actor the driver filter is overridden with the actor's own id regardless
// of what was asked for.
type JobFilter struct {
	Status   *job.Status
	DriverID *kernel.UUID
	DueDate  *time.Time
}

// GetJobsQuery retrieves the job list visible to the acting user, newest
// first, each row joined with the assigned driver's display name.
type GetJobsQuery struct { //nolint:recvcheck //using for validation
	actor  ports.Claims
	filter JobFilter

	guard guard.ConstructorGuard
}

// NewGetJobsQuery creates a query for the acting user with optional filters.
func NewGetJobsQuery(actor ports.Claims, filter JobFilter) (GetJobsQuery, error) {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return GetJobsQuery{}, err
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return GetJobsQuery{}, err
		}
	}
	if filter.DriverID != nil {
		if err := filter.DriverID.Validate(); err != nil {
			return GetJobsQuery{}, err
		}
	}

	return GetJobsQuery{
		actor:  actor,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetJobsQueryIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (q GetJobsQuery) Actor() ports.Claims {
	return q.actor
}

// Filter returns the requested narrowing.
func (q GetJobsQuery) Filter() JobFilter {
	return q.filter
}

// JobResponse represents a job row in the read model, joined with the
// assigned driver's display name.
type JobResponse struct {
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
