package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/geo"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/realtime"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepository) AddNote(ctx context.Context, note *job.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Upsert(ctx context.Context, driverID kernel.UUID, position geo.Coordinates) error {
	args := m.Called(ctx, driverID, position)
	return args.Error(0)
}

// MockUoW implements every repo factory plus the transaction lifecycle.
type MockUoW struct {
	mock.Mock
	Jobs      *MockJobRepository
	Users     *MockUserRepository
	Locations *MockLocationRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		Jobs:      &MockJobRepository{},
		Users:     &MockUserRepository{},
		Locations: &MockLocationRepository{},
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository { return m.Jobs }

func (m *MockUoW) UserRepository() ports.UserRepository { return m.Users }

func (m *MockUoW) LocationRepository() ports.LocationRepository { return m.Locations }

type jobUoWFactory struct{ uow *MockUoW }

func (f jobUoWFactory) Create() commands.JobUoW { return f.uow }

type userUoWFactory struct{ uow *MockUoW }

func (f userUoWFactory) Create() commands.UserUoW { return f.uow }

type locationUoWFactory struct{ uow *MockUoW }

func (f locationUoWFactory) Create() commands.LocationUoW { return f.uow }

// CapturingPublisher records broadcast events in order.
type CapturingPublisher struct {
	Events []realtime.Event
}

func (p *CapturingPublisher) Broadcast(event realtime.Event) {
	p.Events = append(p.Events, event)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) IssueCredential(ctx context.Context, claims ports.Claims) (string, error) {
	args := m.Called(ctx, claims)
	return args.String(0), args.Error(1)
}

func newTestDriver(t *testing.T, id kernel.UUID, name string) *user.User {
	t.Helper()
	driver, err := user.NewUser(id, "driver-"+id.String(), "hash", name, user.RoleDriver)
	require.NoError(t, err)
	return driver
}

func adminClaims() ports.Claims {
	return ports.Claims{UserID: kernel.NewUUID(), Role: user.RoleAdmin}
}

func dispatcherClaims() ports.Claims {
	return ports.Claims{UserID: kernel.NewUUID(), Role: user.RoleDispatcher}
}

func driverClaims() ports.Claims {
	return ports.Claims{UserID: kernel.NewUUID(), Role: user.RoleDriver}
}
