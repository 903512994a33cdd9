package commands

import (
	"context"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

// ReportLocationCommandHandler handles driver position reports. The upsert
// keeps exactly one row per driver; concurrent reports for the same driver
// serialize on that row and the last write wins. On durable success a
// location_update event goes out, scoped so other drivers never see it.
type ReportLocationCommandHandler struct {
	uowFactory LocationUoWFactory
	publisher  EventPublisher
}

// NewReportLocationCommandHandler creates a handler for location reports.
func NewReportLocationCommandHandler(uowFactory LocationUoWFactory, publisher EventPublisher) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the report and returns the recorded sample. The event is
// published strictly after commit.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) (LocationRecord, error) {
	if err := cmd.Validate(); err != nil {
		return LocationRecord{}, err
	}

	if !cmd.Actor().Role.IsDriver() {
		return LocationRecord{}, errs.NewAuthorizationError("report location")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return LocationRecord{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverID := cmd.Actor().UserID
	if err := uow.LocationRepository().Upsert(ctx, driverID, cmd.Position()); err != nil {
		return LocationRecord{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return LocationRecord{}, err
	}

	record := NewLocationRecord(driverID, cmd.Position(), time.Now().UTC())
	h.publisher.Broadcast(realtime.NewDriverScopedEvent(realtime.EventLocationUpdate, record, driverID))
	return record, nil
}
