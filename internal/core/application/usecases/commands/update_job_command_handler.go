package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

// UpdateJobCommandHandler handles job patches. Authorization is role and
// ownership based: admins and dispatchers patch any field of any job, a
// driver patches only the status of a job assigned to them. A driver's
// patch on a foreign job fails with an AuthorizationError and leaves the
// job untouched; extra fields in a driver's patch are silently ignored.
//
// Concurrent patches to the same job serialize on the row transaction;
// last write wins, there is no merge.
type UpdateJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewUpdateJobCommandHandler creates a handler for job patch operations.
func NewUpdateJobCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) UpdateJobCommandHandler {
	return UpdateJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the patch command and returns the resulting read model.
// The job_updated event is published strictly after commit.
func (h *UpdateJobCommandHandler) Handle(ctx context.Context, cmd UpdateJobCommand) (JobRecord, error) {
	if err := cmd.Validate(); err != nil {
		return JobRecord{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return JobRecord{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		// A driver gets the same answer for a missing job as for someone
		// else's job, so probing ids reveals nothing.
		if cmd.Actor().Role.IsDriver() && errors.Is(err, errs.ErrObjectNotFound) {
			return JobRecord{}, errs.NewAuthorizationError("update job")
		}
		return JobRecord{}, err
	}

	if cmd.Actor().Role.IsDriver() {
		if !aggregate.IsAssignedTo(cmd.Actor().UserID) {
			return JobRecord{}, errs.NewAuthorizationError("update job")
		}
		err = applyStatusOnly(aggregate, cmd.Patch())
	} else {
		err = applyPatch(aggregate, cmd.Patch())
	}
	if err != nil {
		return JobRecord{}, err
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return JobRecord{}, err
	}

	driverName, err := resolveDriverName(ctx, uow, aggregate.Driver())
	if err != nil {
		return JobRecord{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return JobRecord{}, err
	}

	record := NewJobRecord(aggregate, driverName)
	h.publisher.Broadcast(jobEvent(realtime.EventJobUpdated, record, aggregate.Driver()))
	return record, nil
}

// applyStatusOnly is the driver path: only the status field takes effect.
func applyStatusOnly(aggregate *job.Job, patch JobPatch) error {
	if patch.Status == nil {
		return nil
	}
	return aggregate.ChangeStatus(*patch.Status)
}

func applyPatch(aggregate *job.Job, patch JobPatch) error {
	if patch.Title != nil {
		if err := aggregate.Retitle(*patch.Title); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		aggregate.ChangeDescription(*patch.Description)
	}
	if patch.Address != nil {
		if err := aggregate.ChangeAddress(*patch.Address); err != nil {
			return err
		}
	}

	if patch.DueDate != nil || patch.DueTime != nil || patch.ClearDueTime {
		dueDate := aggregate.DueDate()
		if patch.DueDate != nil {
			dueDate = *patch.DueDate
		}
		dueTime := aggregate.DueTime()
		if patch.DueTime != nil {
			dueTime = patch.DueTime
		}
		if patch.ClearDueTime {
			dueTime = nil
		}
		if err := aggregate.Reschedule(dueDate, dueTime); err != nil {
			return err
		}
	}

	if patch.DriverID != nil {
		if err := aggregate.AssignDriver(*patch.DriverID); err != nil {
			return err
		}
	}
	if patch.ClearDriver {
		aggregate.UnassignDriver()
	}

	if patch.Status != nil {
		if err := aggregate.ChangeStatus(*patch.Status); err != nil {
			return err
		}
	}

	return nil
}
