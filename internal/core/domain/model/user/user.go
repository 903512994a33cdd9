package user

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser, ensuring all users are properly validated.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

// User represents an account that can authenticate and hold a role.
//
// User follows these invariants:
//   - Must have a valid unique identifier
//   - Username, display name, and password hash are mandatory
//   - Role is one of admin, dispatcher, driver
//   - Can only be created through its constructors
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type User struct {
	id           kernel.UUID
	username     string
	passwordHash string
	name         string
	role         Role
	active       bool
	createdAt    time.Time

	isConstructed bool
}

// NewUser creates a new active User with validation. The password hash must
// already be computed by the caller; the domain never sees plaintext
// passwords.
func NewUser(id kernel.UUID, username, passwordHash, name string, role Role) (*User, error) {
	u := &User{
		active:        true,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setPasswordHash(passwordHash),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser reconstructs a User from persistence, including its active
// flag and creation time. Used by repositories only.
func RestoreUser(
	id kernel.UUID,
	username, passwordHash, name string,
	role Role,
	active bool,
	createdAt time.Time,
) (*User, error) {
	u, err := NewUser(id, username, passwordHash, name, role)
	if err != nil {
		return nil, err
	}

	u.active = active
	u.createdAt = createdAt
	return u, nil
}

// Validate ensures the User was created through a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}

	return nil
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Username returns the unique login name.
func (u *User) Username() string {
	return u.username
}

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Name returns the display name shown alongside jobs, notes, and locations.
func (u *User) Name() string {
	return u.name
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.active
}

// CreatedAt returns the account creation time.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Rename changes the display name. The new name must not be empty.
func (u *User) Rename(name string) error {
	return u.setName(name)
}

// ChangeRole moves the user to a different role.
func (u *User) ChangeRole(role Role) error {
	return u.setRole(role)
}

// SetActive enables or disables the account. Disabling does not tear down
// live sessions; it only blocks future authentication.
func (u *User) SetActive(active bool) {
	u.active = active
}

// ChangePasswordHash replaces the stored hash. The hash must not be empty.
func (u *User) ChangePasswordHash(passwordHash string) error {
	return u.setPasswordHash(passwordHash)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	u.username = username
	return nil
}

func (u *User) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = passwordHash
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
