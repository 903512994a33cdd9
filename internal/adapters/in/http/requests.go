package http

import (
	"encoding/json"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/oapi-codegen/runtime/types"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createJobRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	DueDate     types.Date `json:"due_date"`
	DueTime     *string    `json:"due_time"`
	DriverID    *string    `json:"driver_id"`
}

type updateJobRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Address     *string     `json:"address"`
	DueDate     *types.Date `json:"due_date"`
	DueTime     *string     `json:"due_time"`
	DriverID    *string     `json:"driver_id"`
	Status      *string     `json:"status"`
}

// patch converts the wire request into a typed patch. The raw body is needed
// alongside the decoded struct: a field sent as explicit null means "clear",
// which pointer fields alone cannot distinguish from an absent field.
func (r updateJobRequest) patch(raw map[string]json.RawMessage) (commands.JobPatch, error) {
	patch := commands.JobPatch{
		Title:       r.Title,
		Description: r.Description,
		Address:     r.Address,
		DueTime:     r.DueTime,
	}

	if r.DueDate != nil {
		patch.DueDate = &r.DueDate.Time
	}
	if r.DueTime == nil && isExplicitNull(raw, "due_time") {
		patch.ClearDueTime = true
	}

	switch {
	case r.DriverID != nil:
		driverID, err := kernel.UUIDFromString(*r.DriverID)
		if err != nil {
			return commands.JobPatch{}, errs.NewValidationErrorWithCause("driver_id", err)
		}
		patch.DriverID = &driverID
	case isExplicitNull(raw, "driver_id"):
		patch.ClearDriver = true
	}

	if r.Status != nil {
		status, err := job.StatusFromString(*r.Status)
		if err != nil {
			return commands.JobPatch{}, err
		}
		patch.Status = &status
	}

	return patch, nil
}

func isExplicitNull(raw map[string]json.RawMessage, field string) bool {
	v, ok := raw[field]
	return ok && string(v) == "null"
}

type noteRequest struct {
	Body string `json:"body"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

func (r updateUserRequest) patch() (commands.UserPatch, error) {
	patch := commands.UserPatch{
		Name:     r.Name,
		Password: r.Password,
		Active:   r.Active,
	}

	if r.Role != nil {
		role, err := user.RoleFromString(*r.Role)
		if err != nil {
			return commands.UserPatch{}, err
		}
		patch.Role = &role
	}

	return patch, nil
}
