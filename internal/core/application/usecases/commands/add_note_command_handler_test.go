package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/realtime"
)

func Test_AddNoteCommand_Validation(t *testing.T) {
	t.Run("empty body is rejected", func(t *testing.T) {
		_, err := commands.NewAddNoteCommand(adminClaims(), kernel.NewUUID(), kernel.NewUUID(), "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func Test_AddNoteCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("driver adds a note to an own job", func(t *testing.T) {
		actor := driverClaims()
		aggregate := newTestJob(t, &actor.UserID)
		author := newTestDriver(t, actor.UserID, "Mike Rivera")

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Jobs.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.Jobs.On("AddNote", mock.Anything, mock.Anything).Return(nil)
		uow.Users.On("Get", mock.Anything, actor.UserID).Return(author, nil)

		publisher := &CapturingPublisher{}
		handler := commands.NewAddNoteCommandHandler(jobUoWFactory{uow}, publisher)

		cmd, err := commands.NewAddNoteCommand(actor, kernel.NewUUID(), aggregate.ID(), "rebar delivered")
		require.NoError(t, err)

		record, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "rebar delivered", record.Body)
		assert.Equal(t, "Mike Rivera", record.AuthorName)
		assert.Equal(t, aggregate.ID().String(), record.JobID)
		require.Len(t, publisher.Events, 1)
		assert.Equal(t, realtime.EventNoteAdded, publisher.Events[0].Type)
		require.NotNil(t, publisher.Events[0].DriverID)
		assert.True(t, publisher.Events[0].DriverID.IsEqual(actor.UserID))
	})

	t.Run("driver cannot annotate a foreign job", func(t *testing.T) {
		otherDriver := kernel.NewUUID()
		aggregate := newTestJob(t, &otherDriver)

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Jobs.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)

		publisher := &CapturingPublisher{}
		handler := commands.NewAddNoteCommandHandler(jobUoWFactory{uow}, publisher)

		cmd, err := commands.NewAddNoteCommand(driverClaims(), kernel.NewUUID(), aggregate.ID(), "note")
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrAuthorization)
		assert.Empty(t, publisher.Events)
		uow.Jobs.AssertNotCalled(t, "AddNote", mock.Anything, mock.Anything)
	})

	t.Run("driver gets the same denial for an unknown job", func(t *testing.T) {
		jobID := kernel.NewUUID()

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Jobs.On("Get", mock.Anything, jobID).
			Return(nil, errs.NewObjectNotFoundError("jobID", jobID))

		publisher := &CapturingPublisher{}
		handler := commands.NewAddNoteCommandHandler(jobUoWFactory{uow}, publisher)

		cmd, err := commands.NewAddNoteCommand(driverClaims(), kernel.NewUUID(), jobID, "note")
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)

		assert.ErrorIs(t, err, errs.ErrAuthorization)
		assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Empty(t, publisher.Events)
	})

	t.Run("dispatcher annotates an unassigned job without driver scope", func(t *testing.T) {
		actor := dispatcherClaims()
		aggregate := newTestJob(t, nil)
		author, err := user.NewUser(actor.UserID, "sam", "hash", "Sam Ortiz", user.RoleDispatcher)
		require.NoError(t, err)

		uow := NewMockUoW()
		uow.On("Begin", mock.Anything).Return(nil)
		uow.On("Commit", mock.Anything).Return(nil)
		uow.On("Rollback", mock.Anything).Return(nil)
		uow.Jobs.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
		uow.Jobs.On("AddNote", mock.Anything, mock.Anything).Return(nil)
		uow.Users.On("Get", mock.Anything, actor.UserID).Return(author, nil)

		publisher := &CapturingPublisher{}
		handler := commands.NewAddNoteCommandHandler(jobUoWFactory{uow}, publisher)

		cmd, err := commands.NewAddNoteCommand(actor, kernel.NewUUID(), aggregate.ID(), "call the client")
		require.NoError(t, err)

		record, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Sam Ortiz", record.AuthorName)
		require.Len(t, publisher.Events, 1)
		assert.Nil(t, publisher.Events[0].DriverID)
	})
}
