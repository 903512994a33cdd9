package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
	"gorm.io/gorm"
)

// GetJobsQueryHandler retrieves job rows with the driver name join. Drivers
// see only their own jobs; the scoping happens in SQL, not in the caller.
type GetJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetJobsQueryHandler creates a handler for job list queries.
func NewGetJobsQueryHandler(db *gorm.DB) GetJobsQueryHandler {
	return GetJobsQueryHandler{db: db}
}

// Handle executes the query and returns the visible jobs, newest first.
func (h GetJobsQueryHandler) Handle(ctx context.Context, query GetJobsQuery) ([]JobResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
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
		WHERE 1=1
	`
	args := make([]any, 0, 3)

	filter := query.Filter()
	if query.Actor().Role.IsDriver() {
		sqlText += " AND j.driver_id = ?"
		args = append(args, query.Actor().UserID.Bytes())
	} else if filter.DriverID != nil {
		sqlText += " AND j.driver_id = ?"
		args = append(args, filter.DriverID.Bytes())
	}
	if filter.Status != nil {
		sqlText += " AND j.status = ?"
		args = append(args, filter.Status.String())
	}
	if filter.DueDate != nil {
		sqlText += " AND j.due_date = ?"
		args = append(args, filter.DueDate.Format("2006-01-02"))
	}
	// Soonest due first; newest first among jobs due the same day.
	sqlText += " ORDER BY j.due_date ASC, j.created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]JobResponse, 0)
	for rows.Next() {
		response, scanErr := scanJobRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		jobs = append(jobs, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

func scanJobRow(rows *sql.Rows) (JobResponse, error) {
	var (
		response   JobResponse
		id         uuid.UUID
		createdBy  uuid.UUID
		dueDate    time.Time
		dueTime    sql.NullString
		driverID   uuid.NullUUID
		driverName sql.NullString
	)

	err := rows.Scan(
		&id,
		&response.Title,
		&response.Description,
		&response.Address,
		&dueDate,
		&dueTime,
		&driverID,
		&driverName,
		&response.Status,
		&createdBy,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		return JobResponse{}, err
	}

	response.ID = id.String()
	response.CreatedBy = createdBy.String()
	response.DueDate = types.Date{Time: dueDate}
	if dueTime.Valid {
		response.DueTime = &dueTime.String
	}
	if driverID.Valid {
		s := driverID.UUID.String()
		response.DriverID = &s
	}
	if driverName.Valid {
		response.DriverName = &driverName.String
	}

	return response, nil
}
