package user_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		for _, s := range []string{"admin", "dispatcher", "driver"} {
			role, err := user.RoleFromString(s)
			require.NoError(t, err)
			assert.Equal(t, s, role.String())
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := user.RoleFromString("superuser")
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("empty role", func(t *testing.T) {
		_, err := user.RoleFromString("")
		require.Error(t, err)
	})
}

func TestRole_Predicates(t *testing.T) {
	assert.True(t, user.RoleAdmin.CanManageJobs())
	assert.True(t, user.RoleDispatcher.CanManageJobs())
	assert.False(t, user.RoleDriver.CanManageJobs())

	assert.True(t, user.RoleAdmin.CanSeeAllLocations())
	assert.True(t, user.RoleDispatcher.CanSeeAllLocations())
	assert.False(t, user.RoleDriver.CanSeeAllLocations())

	assert.True(t, user.RoleDriver.IsDriver())
	assert.True(t, user.RoleAdmin.IsAdmin())
	assert.False(t, user.RoleDispatcher.IsAdmin())
}

func TestNewUser(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid user", func(t *testing.T) {
		u, err := user.NewUser(id, "driver1", "$2a$10$hash", "Mike Driver", user.RoleDriver)

		require.NoError(t, err)
		assert.True(t, u.ID().IsEqual(id))
		assert.Equal(t, "driver1", u.Username())
		assert.Equal(t, "Mike Driver", u.Name())
		assert.Equal(t, user.RoleDriver, u.Role())
		assert.True(t, u.IsActive())
		assert.False(t, u.CreatedAt().IsZero())
		assert.NoError(t, u.Validate())
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := user.NewUser(id, "", "hash", "Name", user.RoleAdmin)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("missing password hash", func(t *testing.T) {
		_, err := user.NewUser(id, "admin", "", "Name", user.RoleAdmin)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := user.NewUser(id, "admin", "hash", "", user.RoleAdmin)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := user.NewUser(id, "admin", "hash", "Name", user.Role("root"))
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := user.NewUser(kernel.UUID{}, "admin", "hash", "Name", user.RoleAdmin)
		require.Error(t, err)
	})
}

func TestRestoreUser(t *testing.T) {
	id := kernel.NewUUID()
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	u, err := user.RestoreUser(id, "dispatcher1", "hash", "John Dispatcher", user.RoleDispatcher, false, createdAt)

	require.NoError(t, err)
	assert.False(t, u.IsActive())
	assert.Equal(t, createdAt, u.CreatedAt())
}

func TestUser_Mutations(t *testing.T) {
	u, err := user.NewUser(kernel.NewUUID(), "driver1", "hash", "Mike", user.RoleDriver)
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, u.Rename("Michael"))
		assert.Equal(t, "Michael", u.Name())

		require.Error(t, u.Rename(""))
		assert.Equal(t, "Michael", u.Name())
	})

	t.Run("change role", func(t *testing.T) {
		require.NoError(t, u.ChangeRole(user.RoleDispatcher))
		assert.Equal(t, user.RoleDispatcher, u.Role())

		require.Error(t, u.ChangeRole(user.Role("none")))
		assert.Equal(t, user.RoleDispatcher, u.Role())
	})

	t.Run("deactivate", func(t *testing.T) {
		u.SetActive(false)
		assert.False(t, u.IsActive())
	})

	t.Run("change password hash", func(t *testing.T) {
		require.NoError(t, u.ChangePasswordHash("newhash"))
		assert.Equal(t, "newhash", u.PasswordHash())

		require.Error(t, u.ChangePasswordHash(""))
	})
}

func TestUser_Validate_ZeroValue(t *testing.T) {
	var u user.User
	require.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
}
