package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand represents a request to create a new dispatch job.
// Title, address, and due date are mandatory; description, due time, and an
// initial driver assignment are optional. Whatever the request asks for,
// the created job starts in pending status.
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	actor       ports.Claims
	jobID       kernel.UUID
	title       string
	description string
	address     string
	dueDate     time.Time
	dueTime     *string
	driverID    *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a command to register a new job on behalf of
// the acting user. Field validation happens here; role authorization happens
// in the handler.
func NewCreateJobCommand(
	actor ports.Claims,
	jobID kernel.UUID,
	title, description, address string,
	dueDate time.Time,
	dueTime *string,
	driverID *kernel.UUID,
) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		description: description,
		dueTime:     dueTime,
		driverID:    driverID,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setJobID(jobID),
		cmd.setTitle(title),
		cmd.setAddress(address),
		cmd.setDueDate(dueDate),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (c CreateJobCommand) Actor() ports.Claims {
	return c.actor
}

// JobID returns the identifier the new job will carry.
func (c CreateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// Title returns the short name of the work.
func (c CreateJobCommand) Title() string {
	return c.title
}

// Description returns the free-text description, possibly empty.
func (c CreateJobCommand) Description() string {
	return c.description
}

// Address returns the site address.
func (c CreateJobCommand) Address() string {
	return c.address
}

// DueDate returns the day the work is due.
func (c CreateJobCommand) DueDate() time.Time {
	return c.dueDate
}

// DueTime returns the optional "HH:MM" time on the due date.
func (c CreateJobCommand) DueTime() *string {
	return c.dueTime
}

// DriverID returns the optional initial driver assignment.
func (c CreateJobCommand) DriverID() *kernel.UUID {
	return c.driverID
}

func (c *CreateJobCommand) setActor(actor ports.Claims) error {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateJobCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *CreateJobCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}

	c.title = title
	return nil
}

func (c *CreateJobCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.address = address
	return nil
}

func (c *CreateJobCommand) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("dueDate")
	}

	c.dueDate = dueDate
	return nil
}
