package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

func Test_DeleteJobCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("admin deletes a job and job_deleted carries only the id", func(t *testing.T) {
		driverID := kernel.NewUUID()
		aggregate := newTestJob(t, &driverID)

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Jobs.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.Jobs.On("Delete", mock.Anything, aggregate.ID()).Return(nil)

		publisher := &CapturingPublisher{}
		handler := commands.NewDeleteJobCommandHandler(jobUoWFactory{uow}, publisher)

		cmd, err := commands.NewDeleteJobCommand(adminClaims(), aggregate.ID())
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		require.Len(t, publisher.Events, 1)
		event := publisher.Events[0]
		assert.Equal(t, realtime.EventJobDeleted, event.Type)
		assert.Equal(t, commands.JobRef{ID: aggregate.ID().String()}, event.Payload)
		require.NotNil(t, event.DriverID)
		assert.True(t, event.DriverID.IsEqual(driverID))
		uow.AssertExpectations(t)
	})

	t.Run("driver cannot delete jobs", func(t *testing.T) {
		uow := NewMockUoW()
		publisher := &CapturingPublisher{}
		handler := commands.NewDeleteJobCommandHandler(jobUoWFactory{uow}, publisher)

		cmd, err := commands.NewDeleteJobCommand(driverClaims(), kernel.NewUUID())
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrAuthorization)
		assert.Empty(t, publisher.Events)
		uow.Jobs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleting an unknown job surfaces the not found error", func(t *testing.T) {
		jobID := kernel.NewUUID()

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Jobs.On("Get", mock.Anything, jobID).
			Return(nil, errs.NewObjectNotFoundError("jobID", jobID))

		publisher := &CapturingPublisher{}
		handler := commands.NewDeleteJobCommandHandler(jobUoWFactory{uow}, publisher)

		cmd, err := commands.NewDeleteJobCommand(dispatcherClaims(), jobID)
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Empty(t, publisher.Events)
	})
}
