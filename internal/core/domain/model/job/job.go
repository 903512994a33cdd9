package job

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrJobIsNotConstructed is returned when a Job instance was not created
// through the NewJob or RestoreJob factory methods. This ensures all jobs
// are properly validated.
var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")

// dueTimeLayout is the accepted format for the optional due time.
const dueTimeLayout = "15:04"

// Job represents a construction job in the system. It is the aggregate root
// that manages the job lifecycle from creation through assignment to
// completion or cancellation.
//
// Job follows these invariants:
//   - Must have a valid unique identifier and creator reference
//   - Title, address, and due date are mandatory once created
//   - Status is always one of the five legal values and transitions follow
//     the state machine in Status
//   - Can only be created through NewJob or RestoreJob
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Concurrent edits to the same job are
// resolved last-write-wins by the store.
type Job struct {
	id          kernel.UUID
	title       string
	description string
	address     string
	dueDate     time.Time
	dueTime     *string
	driverID    *kernel.UUID
	createdBy   kernel.UUID
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewJob creates a new Job with validation. The initial status is always
// Pending regardless of input; an optional driver may be attached at
// creation time without changing that.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - title: short name of the work (required)
//   - description: free text, may be empty
//   - address: site address (required)
//   - dueDate: the day the work is due (required, time-of-day ignored)
//   - dueTime: optional "HH:MM" time on the due date
//   - driverID: optional initial driver assignment
//   - createdBy: the creating admin or dispatcher
func NewJob(
	id kernel.UUID,
	title, description, address string,
	dueDate time.Time,
	dueTime *string,
	driverID *kernel.UUID,
	createdBy kernel.UUID,
) (*Job, error) {
	now := time.Now().UTC()
	j := &Job{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	j.description = description

	if err := errors.Join(
		j.setID(id),
		j.setTitle(title),
		j.setAddress(address),
		j.setDueDate(dueDate),
		j.setDueTime(dueTime),
		j.setDriverID(driverID),
		j.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob reconstructs a Job from persistence with its full state,
// including status and timestamps. Used by repositories only; the status is
// validated but no transition check runs, since whatever was persisted was
// already validated on the way in.
func RestoreJob(
	id kernel.UUID,
	title, description, address string,
	dueDate time.Time,
	dueTime *string,
	driverID *kernel.UUID,
	createdBy kernel.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) (*Job, error) {
	j, err := NewJob(id, title, description, address, dueDate, dueTime, driverID, createdBy)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	j.status = status
	j.createdAt = createdAt
	j.updatedAt = updatedAt
	return j, nil
}

// Validate ensures the Job was created through a constructor.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}

	return nil
}

// IsEqual compares two jobs by their unique identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// Title returns the job title.
func (j *Job) Title() string {
	return j.title
}

// Description returns the free-text description, possibly empty.
func (j *Job) Description() string {
	return j.description
}

// Address returns the site address.
func (j *Job) Address() string {
	return j.address
}

// DueDate returns the day the work is due.
func (j *Job) DueDate() time.Time {
	return j.dueDate
}

// DueTime returns the optional "HH:MM" due time, or nil.
func (j *Job) DueTime() *string {
	return j.dueTime
}

// Driver returns the assigned driver's ID, or nil when unassigned.
func (j *Job) Driver() *kernel.UUID {
	return j.driverID
}

// CreatedBy returns the creating user's ID.
func (j *Job) CreatedBy() kernel.UUID {
	return j.createdBy
}

// Status returns the current status of the job.
func (j *Job) Status() Status {
	return j.status
}

// CreatedAt returns the creation time.
func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (j *Job) UpdatedAt() time.Time {
	return j.updatedAt
}

// IsAssignedTo reports whether the job is currently assigned to the given
// driver. Used by the driver-ownership authorization checks.
func (j *Job) IsAssignedTo(driverID kernel.UUID) bool {
	return j.driverID != nil && j.driverID.IsEqual(driverID)
}

// Retitle changes the job title. The title must not be empty.
func (j *Job) Retitle(title string) error {
	if err := j.setTitle(title); err != nil {
		return err
	}
	j.touch()
	return nil
}

// ChangeDescription replaces the free-text description. Empty is allowed.
func (j *Job) ChangeDescription(description string) {
	j.description = description
	j.touch()
}

// ChangeAddress changes the site address. The address must not be empty.
func (j *Job) ChangeAddress(address string) error {
	if err := j.setAddress(address); err != nil {
		return err
	}
	j.touch()
	return nil
}

// Reschedule moves the due date and optional due time.
func (j *Job) Reschedule(dueDate time.Time, dueTime *string) error {
	if err := errors.Join(j.setDueDate(dueDate), j.setDueTime(dueTime)); err != nil {
		return err
	}
	j.touch()
	return nil
}

// AssignDriver attaches a driver to the job. Assignment is a field change
// only; moving the status to Assigned is a separate, state-machine-checked
// transition.
func (j *Job) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	j.driverID = &driverID
	j.touch()
	return nil
}

// UnassignDriver detaches the current driver, if any.
func (j *Job) UnassignDriver() {
	j.driverID = nil
	j.touch()
}

// ChangeStatus transitions the job to the given status, enforcing the state
// machine. A self-transition that the machine does not allow (for example
// pending → pending) is rejected like any other illegal move.
func (j *Job) ChangeStatus(next Status) error {
	newStatus, err := j.status.TransitionTo(next)
	if err != nil {
		return err
	}

	j.status = newStatus
	j.touch()
	return nil
}

func (j *Job) touch() {
	j.updatedAt = time.Now().UTC()
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	j.title = title
	return nil
}

func (j *Job) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	j.address = address
	return nil
}

func (j *Job) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return errs.NewValueIsRequiredError("due_date")
	}
	j.dueDate = dueDate
	return nil
}

func (j *Job) setDueTime(dueTime *string) error {
	if dueTime == nil {
		j.dueTime = nil
		return nil
	}

	if _, err := time.Parse(dueTimeLayout, *dueTime); err != nil {
		return errs.NewValidationErrorWithCause("due_time", err)
	}

	v := *dueTime
	j.dueTime = &v
	return nil
}

func (j *Job) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		j.driverID = nil
		return nil
	}

	if err := driverID.Validate(); err != nil {
		return err
	}

	id := *driverID
	j.driverID = &id
	return nil
}

func (j *Job) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}
	j.createdBy = createdBy
	return nil
}
