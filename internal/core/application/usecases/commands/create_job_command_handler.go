package commands

import (
	"context"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

// CreateJobCommandHandler handles the business logic for job creation.
// Only admins and dispatchers create jobs; the created job always starts in
// pending status. On durable success a job_created event goes out carrying
// the full job joined with the driver's display name.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	publisher  EventPublisher
}

// NewCreateJobCommandHandler creates a handler for job creation operations.
func NewCreateJobCommandHandler(uowFactory JobUoWFactory, publisher EventPublisher) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the job creation command and returns the resulting read
// model. The event is published strictly after commit.
func (h *CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (JobRecord, error) {
	if err := cmd.Validate(); err != nil {
		return JobRecord{}, err
	}

	if !cmd.Actor().Role.CanManageJobs() {
		return JobRecord{}, errs.NewAuthorizationError("create job")
	}

	aggregate, err := job.NewJob(
		cmd.JobID(),
		cmd.Title(), cmd.Description(), cmd.Address(),
		cmd.DueDate(), cmd.DueTime(),
		cmd.DriverID(),
		cmd.Actor().UserID,
	)
	if err != nil {
		return JobRecord{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return JobRecord{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
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
	h.publisher.Broadcast(jobEvent(realtime.EventJobCreated, record, aggregate.Driver()))
	return record, nil
}

// resolveDriverName looks up the display name for the assigned driver, nil
// when the job is unassigned.
func resolveDriverName(ctx context.Context, users UserRepoFactory, driverID *kernel.UUID) (*string, error) {
	if driverID == nil {
		return nil, nil
	}

	driver, err := users.UserRepository().Get(ctx, *driverID)
	if err != nil {
		return nil, err
	}

	name := driver.Name()
	return &name, nil
}

// jobEvent builds a job event scoped to the assigned driver when there is
// one, so the visibility policy can admit that driver's sessions.
func jobEvent(eventType realtime.EventType, payload any, driverID *kernel.UUID) realtime.Event {
	if driverID != nil {
		return realtime.NewDriverScopedEvent(eventType, payload, *driverID)
	}
	return realtime.NewEvent(eventType, payload)
}
