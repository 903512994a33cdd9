package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateJobCommandIsNotConstructed = errors.New(
	"UpdateJobCommand must be created via NewUpdateJobCommand constructor",
)

// JobPatch carries the fields an update request wants to change. A nil
// pointer means "leave unchanged"; the Clear flags express setting an
// optional field back to empty. There is no dynamic field list: every
// patchable field is a typed member.
type JobPatch struct {
	Title        *string
	Description  *string
	Address      *string
	DueDate      *time.Time
	DueTime      *string
	ClearDueTime bool
	DriverID     *kernel.UUID
	ClearDriver  bool
	Status       *job.Status
}

// IsEmpty reports whether the patch changes nothing.
func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Address == nil &&
		p.DueDate == nil && p.DueTime == nil && !p.ClearDueTime &&
		p.DriverID == nil && !p.ClearDriver && p.Status == nil
}

// UpdateJobCommand represents a request to patch an existing job. Admins and
// dispatchers patch any field; a driver patches only the status of a job
// assigned to them, and any other fields in a driver's patch are ignored.
type UpdateJobCommand struct { //nolint:recvcheck //using for validation
	actor ports.Claims
	jobID kernel.UUID
	patch JobPatch

	guard guard.ConstructorGuard
}

// NewUpdateJobCommand creates a command to patch the given job on behalf of
// the acting user.
func NewUpdateJobCommand(actor ports.Claims, jobID kernel.UUID, patch JobPatch) (UpdateJobCommand, error) {
	cmd := UpdateJobCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setJobID(jobID),
		cmd.setPatch(patch),
	); err != nil {
		return UpdateJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateJobCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobCommandIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (c UpdateJobCommand) Actor() ports.Claims {
	return c.actor
}

// JobID returns the identifier of the job to patch.
func (c UpdateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// Patch returns the requested field changes.
func (c UpdateJobCommand) Patch() JobPatch {
	return c.patch
}

func (c *UpdateJobCommand) setActor(actor ports.Claims) error {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpdateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *UpdateJobCommand) setPatch(patch JobPatch) error {
	if patch.DueTime != nil && patch.ClearDueTime {
		return errs.NewValidationError("dueTime set and cleared at once")
	}
	if patch.DriverID != nil && patch.ClearDriver {
		return errs.NewValidationError("driverID set and cleared at once")
	}
	if patch.Status != nil {
		if err := patch.Status.Validate(); err != nil {
			return err
		}
	}
	if patch.DriverID != nil {
		if err := patch.DriverID.Validate(); err != nil {
			return err
		}
	}

	return nil
}
