package job

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrNoteIsNotConstructed is returned when a Note instance was not created
// through NewNote or RestoreNote.
var ErrNoteIsNotConstructed = errors.New("Note must be created via NewNote or RestoreNote constructor")

// Note is an immutable, append-only remark on a job. Notes carry no update
// or delete operation; deleting the owning job cascades to its notes.
// Notes are ordered by creation time ascending.
type Note struct {
	id        kernel.UUID
	jobID     kernel.UUID
	authorID  kernel.UUID
	body      string
	createdAt time.Time

	isConstructed bool
}

// NewNote creates a note on the given job. The body must not be empty.
func NewNote(id, jobID, authorID kernel.UUID, body string) (*Note, error) {
	n := &Note{
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(id),
		n.setJobID(jobID),
		n.setAuthorID(authorID),
		n.setBody(body),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNote reconstructs a note from persistence with its original
// creation time. Used by repositories only.
func RestoreNote(id, jobID, authorID kernel.UUID, body string, createdAt time.Time) (*Note, error) {
	n, err := NewNote(id, jobID, authorID, body)
	if err != nil {
		return nil, err
	}

	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the Note was created through a constructor.
func (n *Note) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNoteIsNotConstructed
	}

	return nil
}

// ID returns the note's unique identifier.
func (n *Note) ID() kernel.UUID {
	return n.id
}

// JobID returns the owning job's identifier.
func (n *Note) JobID() kernel.UUID {
	return n.jobID
}

// AuthorID returns the authoring user's identifier.
func (n *Note) AuthorID() kernel.UUID {
	return n.authorID
}

// Body returns the free-text body of the note.
func (n *Note) Body() string {
	return n.body
}

// CreatedAt returns the creation time.
func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Note) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Note) setJobID(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}
	n.jobID = jobID
	return nil
}

func (n *Note) setAuthorID(authorID kernel.UUID) error {
	if err := authorID.Validate(); err != nil {
		return err
	}
	n.authorID = authorID
	return nil
}

func (n *Note) setBody(body string) error {
	if body == "" {
		return errs.NewValueIsRequiredError("note")
	}
	n.body = body
	return nil
}
