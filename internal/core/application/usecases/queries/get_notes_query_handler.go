package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/pkg/errs"
)

// GetNotesQueryHandler retrieves a job's notes with the author name join.
type GetNotesQueryHandler struct {
	db *gorm.DB
}

// NewGetNotesQueryHandler creates a handler for note list queries.
func NewGetNotesQueryHandler(db *gorm.DB) GetNotesQueryHandler {
	return GetNotesQueryHandler{db: db}
}

// Handle executes the query and returns the notes oldest first.
func (h GetNotesQueryHandler) Handle(ctx context.Context, query GetNotesQuery) ([]NoteResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var jobDriver uuid.NullUUID
	err := h.db.WithContext(ctx).
		Raw("SELECT driver_id FROM jobs WHERE id = ?", query.JobID().Bytes()).
		Row().Scan(&jobDriver)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Missing and foreign jobs look the same to a driver.
			if query.Actor().Role.IsDriver() {
				return nil, errs.NewAuthorizationError("get notes")
			}
			return nil, errs.NewObjectNotFoundError("job", query.JobID().String())
		}
		return nil, err
	}

	if query.Actor().Role.IsDriver() {
		if !jobDriver.Valid || jobDriver.UUID != query.Actor().UserID.Bytes() {
			return nil, errs.NewAuthorizationError("get notes")
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			n.id,
			n.job_id,
			n.author_id,
			u.name,
			n.body,
			n.created_at
		FROM notes n
		LEFT JOIN users u ON u.id = n.author_id
		WHERE n.job_id = ?
		ORDER BY n.created_at ASC
	`, query.JobID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]NoteResponse, 0)
	for rows.Next() {
		var (
			response   NoteResponse
			id         uuid.UUID
			jobID      uuid.UUID
			authorID   uuid.UUID
			authorName sql.NullString
		)

		err = rows.Scan(&id, &jobID, &authorID, &authorName, &response.Body, &response.CreatedAt)
		if err != nil {
			return nil, err
		}

		response.ID = id.String()
		response.JobID = jobID.String()
		response.AuthorID = authorID.String()
		if authorName.Valid {
			response.AuthorName = authorName.String
		}
		notes = append(notes, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}
