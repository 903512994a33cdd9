package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteJobCommandIsNotConstructed = errors.New(
	"DeleteJobCommand must be created via NewDeleteJobCommand constructor",
)

// DeleteJobCommand represents a request to delete a job and, by cascade,
// all of its notes.
type DeleteJobCommand struct { //nolint:recvcheck //using for validation
	actor ports.Claims
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteJobCommand creates a command to delete the given job on behalf
// of the acting user.
func NewDeleteJobCommand(actor ports.Claims, jobID kernel.UUID) (DeleteJobCommand, error) {
	cmd := DeleteJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setJobID(jobID),
	); err != nil {
		return DeleteJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteJobCommand) Validate() error {
	return c.guard.Validate(ErrDeleteJobCommandIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (c DeleteJobCommand) Actor() ports.Claims {
	return c.actor
}

// JobID returns the identifier of the job to delete.
func (c DeleteJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c *DeleteJobCommand) setActor(actor ports.Claims) error {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *DeleteJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}
