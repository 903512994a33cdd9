package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/pkg/errs"
)

// GetJobQueryHandler retrieves a single job row with the driver name join.
type GetJobQueryHandler struct {
	db *gorm.DB
}

// NewGetJobQueryHandler creates a handler for single-job queries.
func NewGetJobQueryHandler(db *gorm.DB) GetJobQueryHandler {
	return GetJobQueryHandler{db: db}
}

// Handle executes the query. A driver asking for a job not assigned to them
// is denied.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (JobResponse, error) {
	if err := query.Validate(); err != nil {
		return JobResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			j.id,
			j.title,
			j.description,
			j.address,
			j.due_date,
			j.due_time,
			j.driver_id,
			u.name,
			j.status,
			j.created_by,
			j.created_at,
			j.updated_at
		FROM jobs j
		LEFT JOIN users u ON u.id = j.driver_id
		WHERE j.id = ?
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return JobResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return JobResponse{}, err
		}
		// A driver gets the same denial for a missing job as for someone
		// else's job, so probing ids reveals nothing.
		if query.Actor().Role.IsDriver() {
			return JobResponse{}, errs.NewAuthorizationError("get job")
		}
		return JobResponse{}, errs.NewObjectNotFoundError("job", query.JobID().String())
	}

	response, err := scanJobRow(rows)
	if err != nil {
		return JobResponse{}, err
	}

	if query.Actor().Role.IsDriver() {
		if response.DriverID == nil || *response.DriverID != query.Actor().UserID.String() {
			return JobResponse{}, errs.NewAuthorizationError("get job")
		}
	}

	return response, nil
}
