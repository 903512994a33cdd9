package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

// AddNoteCommandHandler handles note creation. The note_added event carries
// the note joined with the author's display name and is scoped like job
// events, via the job's assigned driver.
type AddNoteCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewAddNoteCommandHandler creates a handler for note operations.
func NewAddNoteCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) AddNoteCommandHandler {
	return AddNoteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the note command and returns the resulting read model.
// The event is published strictly after commit.
func (h *AddNoteCommandHandler) Handle(ctx context.Context, cmd AddNoteCommand) (NoteRecord, error) {
	if err := cmd.Validate(); err != nil {
		return NoteRecord{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return NoteRecord{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		// Missing and foreign jobs look the same to a driver.
		if cmd.Actor().Role.IsDriver() && errors.Is(err, errs.ErrObjectNotFound) {
			return NoteRecord{}, errs.NewAuthorizationError("add note")
		}
		return NoteRecord{}, err
	}

	if cmd.Actor().Role.IsDriver() && !aggregate.IsAssignedTo(cmd.Actor().UserID) {
		return NoteRecord{}, errs.NewAuthorizationError("add note")
	}

	note, err := job.NewNote(cmd.NoteID(), cmd.JobID(), cmd.Actor().UserID, cmd.Body())
	if err != nil {
		return NoteRecord{}, err
	}

	if err = uow.JobRepository().AddNote(ctx, note); err != nil {
		return NoteRecord{}, err
	}

	author, err := uow.UserRepository().Get(ctx, cmd.Actor().UserID)
	if err != nil {
		return NoteRecord{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return NoteRecord{}, err
	}

	record := NewNoteRecord(note, author.Name())
	h.publisher.Broadcast(jobEvent(realtime.EventNoteAdded, record, aggregate.Driver()))
	return record, nil
}
