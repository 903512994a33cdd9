package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAddNoteCommandIsNotConstructed = errors.New(
	"AddNoteCommand must be created via NewAddNoteCommand constructor",
)

// AddNoteCommand represents a request to append an immutable note to a job.
// Any authenticated role may add notes to jobs it can see: admins and
// dispatchers to any job, drivers only to jobs assigned to them.
type AddNoteCommand struct { //nolint:recvcheck //using for validation
	actor  ports.Claims
	noteID kernel.UUID
	jobID  kernel.UUID
	body   string

	guard guard.ConstructorGuard
}

// NewAddNoteCommand creates a command to append a note on behalf of the
// acting user, who becomes the note's author.
func NewAddNoteCommand(actor ports.Claims, noteID, jobID kernel.UUID, body string) (AddNoteCommand, error) {
	cmd := AddNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setNoteID(noteID),
		cmd.setJobID(jobID),
		cmd.setBody(body),
	); err != nil {
		return AddNoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddNoteCommandIsNotConstructed)
}

// Actor returns the identity claims of the requesting user.
func (c AddNoteCommand) Actor() ports.Claims {
	return c.actor
}

// NoteID returns the identifier the new note will carry.
func (c AddNoteCommand) NoteID() kernel.UUID {
	return c.noteID
}

// JobID returns the identifier of the job being annotated.
func (c AddNoteCommand) JobID() kernel.UUID {
	return c.jobID
}

// Body returns the note text.
func (c AddNoteCommand) Body() string {
	return c.body
}

func (c *AddNoteCommand) setActor(actor ports.Claims) error {
	if err := errors.Join(actor.UserID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *AddNoteCommand) setNoteID(noteID kernel.UUID) error {
	if err := noteID.Validate(); err != nil {
		return err
	}

	c.noteID = noteID
	return nil
}

func (c *AddNoteCommand) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	c.jobID = jobID
	return nil
}

func (c *AddNoteCommand) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("body")
	}

	c.body = body
	return nil
}
