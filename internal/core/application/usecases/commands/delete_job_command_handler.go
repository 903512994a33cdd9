package commands

import (
	"context"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

// DeleteJobCommandHandler handles job deletion. Admins and dispatchers
// only. Deleting a job cascades to its notes in the same transaction. The
// job_deleted event carries only the id on the wire; the driver assigned at
// deletion time is attached out of band so their sessions still receive it.
type DeleteJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewDeleteJobCommandHandler creates a handler for job deletion operations.
func NewDeleteJobCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) DeleteJobCommandHandler {
	return DeleteJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the deletion command. The event is published strictly
// after commit.
func (h *DeleteJobCommandHandler) Handle(ctx context.Context, cmd DeleteJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().Role.CanManageJobs() {
		return errs.NewAuthorizationError("delete job")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}
	assignedDriver := aggregate.Driver()

	if err = uow.JobRepository().Delete(ctx, cmd.JobID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Broadcast(jobEvent(realtime.EventJobDeleted, JobRef{ID: cmd.JobID().String()}, assignedDriver))
	return nil
}
