package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

func Test_ReportLocationCommand_Validation(t *testing.T) {
	actor := driverClaims()

	t.Run("out of range latitude is rejected", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand(actor, 91.0, 2.35)
		assert.Error(t, err)
	})

	t.Run("out of range longitude is rejected", func(t *testing.T) {
		_, err := commands.NewReportLocationCommand(actor, 48.85, -181.0)
		assert.Error(t, err)
	})

	t.Run("valid coordinates construct", func(t *testing.T) {
		cmd, err := commands.NewReportLocationCommand(actor, 48.8566, 2.3522)
		require.NoError(t, err)
		assert.InDelta(t, 48.8566, cmd.Position().Latitude(), 1e-9)
		assert.InDelta(t, 2.3522, cmd.Position().Longitude(), 1e-9)
	})
}

func Test_ReportLocationCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("driver report upserts and broadcasts a scoped location_update", func(t *testing.T) {
		actor := driverClaims()

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Locations.On("Upsert", mock.Anything, actor.UserID, mock.Anything).Return(nil)

		publisher := &CapturingPublisher{}
		handler := commands.NewReportLocationCommandHandler(locationUoWFactory{uow}, publisher)

		cmd, err := commands.NewReportLocationCommand(actor, 48.8566, 2.3522)
		require.NoError(t, err)

		record, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, actor.UserID.String(), record.DriverID)
		assert.InDelta(t, 48.8566, record.Latitude, 1e-9)
		assert.False(t, record.Timestamp.IsZero())
		require.Len(t, publisher.Events, 1)
		event := publisher.Events[0]
		assert.Equal(t, realtime.EventLocationUpdate, event.Type)
		require.NotNil(t, event.DriverID)
		assert.True(t, event.DriverID.IsEqual(actor.UserID))
		uow.Locations.AssertExpectations(t)
	})

	t.Run("only drivers report locations", func(t *testing.T) {
		uow := NewMockUoW()
		publisher := &CapturingPublisher{}
		handler := commands.NewReportLocationCommandHandler(locationUoWFactory{uow}, publisher)

		cmd, err := commands.NewReportLocationCommand(dispatcherClaims(), 48.8566, 2.3522)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrAuthorization)
		assert.Empty(t, publisher.Events)
	})

	t.Run("failed upsert publishes nothing", func(t *testing.T) {
		actor := driverClaims()

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Locations.On("Upsert", mock.Anything, actor.UserID, mock.Anything).
			Return(errs.NewTransientStoreError("upsert location", assert.AnError))

		publisher := &CapturingPublisher{}
		handler := commands.NewReportLocationCommandHandler(locationUoWFactory{uow}, publisher)

		cmd, err := commands.NewReportLocationCommand(actor, 48.8566, 2.3522)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrTransientStore)
		assert.Empty(t, publisher.Events)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
