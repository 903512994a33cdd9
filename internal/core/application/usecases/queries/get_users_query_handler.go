package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/pkg/errs"
)

// GetUsersQueryHandler retrieves all user accounts ordered by username.
type GetUsersQueryHandler struct {
	db *gorm.DB
}

// NewGetUsersQueryHandler creates a handler for user list queries.
func NewGetUsersQueryHandler(db *gorm.DB) GetUsersQueryHandler {
	return GetUsersQueryHandler{db: db}
}

// Handle executes the query. Only admins list accounts.
func (h GetUsersQueryHandler) Handle(ctx context.Context, query GetUsersQuery) ([]UserResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if !query.Actor().Role.IsAdmin() {
		return nil, errs.NewAuthorizationError("get users")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			username,
			name,
			role,
			active,
			created_at
		FROM users
		ORDER BY username
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]UserResponse, 0)
	for rows.Next() {
		var (
			response UserResponse
			id       uuid.UUID
		)

		err = rows.Scan(
			&id,
			&response.Username,
			&response.Name,
			&response.Role,
			&response.Active,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		response.ID = id.String()
		users = append(users, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
