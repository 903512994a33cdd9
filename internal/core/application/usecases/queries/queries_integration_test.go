package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres/jobrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type QueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&jobrepo.JobDTO{},
		&jobrepo.NoteDTO{},
		&userrepo.UserDTO{},
		&locationrepo.LocationDTO{},
	)
	suite.Require().NoError(err)
}

func (suite *QueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesTestSuite) SetupTest() {
	for _, table := range []string{"notes", "jobs", "driver_locations", "users"} {
		err := suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		suite.Require().NoError(err)
	}
}

func (suite *QueriesTestSuite) claims(role user.Role) ports.Claims {
	return ports.Claims{UserID: kernel.NewUUID(), Role: role}
}

func (suite *QueriesTestSuite) createUser(name string, role user.Role) *user.User {
	id := kernel.NewUUID()
	account, err := user.NewUser(id, "user-"+id.String(), "hash", name, role)
	suite.Require().NoError(err)

	repo := userrepo.NewGormUserRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), account))
	return account
}

func (suite *QueriesTestSuite) createJob(title string, driverID *kernel.UUID, status job.Status) *job.Job {
	aggregate, err := job.NewJob(
		kernel.NewUUID(),
		title, "", "12 Main St",
		time.Now().UTC().AddDate(0, 0, 1), nil,
		driverID,
		kernel.NewUUID(),
	)
	suite.Require().NoError(err)
	if status != job.Pending {
		suite.Require().NoError(aggregate.ChangeStatus(status))
	}

	repo := jobrepo.NewGormJobRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *QueriesTestSuite) createJobDueOn(title string, dueDate time.Time) *job.Job {
	aggregate, err := job.NewJob(
		kernel.NewUUID(),
		title, "", "12 Main St",
		dueDate, nil,
		nil,
		kernel.NewUUID(),
	)
	suite.Require().NoError(err)

	repo := jobrepo.NewGormJobRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *QueriesTestSuite) insertLocation(driverID kernel.UUID, age time.Duration) {
	dto := locationrepo.LocationDTO{
		DriverID:  driverID.Bytes(),
		Latitude:  48.8566,
		Longitude: 2.3522,
		UpdatedAt: time.Now().UTC().Add(-age),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

func (suite *QueriesTestSuite) TestGetJobs_DriverSeesOnlyOwnJobs() {
	driver := suite.createUser("Mike Rivera", user.RoleDriver)
	driverID := driver.ID()
	suite.createJob("own job", &driverID, job.Assigned)
	suite.createJob("foreign job", nil, job.Pending)

	handler := queries.NewGetJobsQueryHandler(suite.db)
	actor := ports.Claims{UserID: driverID, Role: user.RoleDriver}

	query, err := queries.NewGetJobsQuery(actor, queries.JobFilter{})
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("own job", result[0].Title)
	suite.Require().NotNil(result[0].DriverName)
	suite.Equal("Mike Rivera", *result[0].DriverName)
}

func (suite *QueriesTestSuite) TestGetJobs_OrderedByDueDateThenNewest() {
	dayAfter := time.Now().UTC().AddDate(0, 0, 2)
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)

	suite.createJobDueOn("due later", dayAfter)
	suite.createJobDueOn("due soon, older", tomorrow)
	time.Sleep(5 * time.Millisecond)
	suite.createJobDueOn("due soon, newer", tomorrow)

	handler := queries.NewGetJobsQueryHandler(suite.db)

	query, err := queries.NewGetJobsQuery(suite.claims(user.RoleDispatcher), queries.JobFilter{})
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("due soon, newer", result[0].Title)
	suite.Equal("due soon, older", result[1].Title)
	suite.Equal("due later", result[2].Title)
}

func (suite *QueriesTestSuite) TestGetJobs_StatusFilter() {
	suite.createJob("pending job", nil, job.Pending)
	driver := suite.createUser("Mike Rivera", user.RoleDriver)
	driverID := driver.ID()
	suite.createJob("assigned job", &driverID, job.Assigned)

	handler := queries.NewGetJobsQueryHandler(suite.db)
	status := job.Assigned

	query, err := queries.NewGetJobsQuery(suite.claims(user.RoleDispatcher), queries.JobFilter{Status: &status})
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("assigned job", result[0].Title)
	suite.Equal("assigned", result[0].Status)
}

func (suite *QueriesTestSuite) TestGetJob_DriverDeniedOnForeignJob() {
	aggregate := suite.createJob("foreign job", nil, job.Pending)

	handler := queries.NewGetJobQueryHandler(suite.db)

	query, err := queries.NewGetJobQuery(suite.claims(user.RoleDriver), aggregate.ID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrAuthorization)
}

func (suite *QueriesTestSuite) TestGetJob_DriverDeniedOnUnknownJob() {
	handler := queries.NewGetJobQueryHandler(suite.db)

	query, err := queries.NewGetJobQuery(suite.claims(user.RoleDriver), kernel.NewUUID())
	suite.Require().NoError(err)

	// Unknown ids look like foreign jobs to a driver.
	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrAuthorization)
	suite.NotErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetJob_NotFound() {
	handler := queries.NewGetJobQueryHandler(suite.db)

	query, err := queries.NewGetJobQuery(suite.claims(user.RoleAdmin), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetNotes_OrderedOldestFirst() {
	author := suite.createUser("Sam Ortiz", user.RoleDispatcher)
	aggregate := suite.createJob("job with notes", nil, job.Pending)

	repo := jobrepo.NewGormJobRepository(suite.db, noopTracker{})
	first, err := job.NewNote(kernel.NewUUID(), aggregate.ID(), author.ID(), "first note")
	suite.Require().NoError(err)
	suite.Require().NoError(repo.AddNote(context.Background(), first))

	second, err := job.RestoreNote(
		kernel.NewUUID(), aggregate.ID(), author.ID(),
		"second note", first.CreatedAt().Add(time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(repo.AddNote(context.Background(), second))

	handler := queries.NewGetNotesQueryHandler(suite.db)

	query, err := queries.NewGetNotesQuery(suite.claims(user.RoleAdmin), aggregate.ID())
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("first note", result[0].Body)
	suite.Equal("second note", result[1].Body)
	suite.Equal("Sam Ortiz", result[0].AuthorName)
}

func (suite *QueriesTestSuite) TestGetNotes_DriverDeniedOnForeignJob() {
	aggregate := suite.createJob("foreign job", nil, job.Pending)

	handler := queries.NewGetNotesQueryHandler(suite.db)

	query, err := queries.NewGetNotesQuery(suite.claims(user.RoleDriver), aggregate.ID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrAuthorization)
}

func (suite *QueriesTestSuite) TestGetNotes_DriverDeniedOnUnknownJob() {
	handler := queries.NewGetNotesQueryHandler(suite.db)

	query, err := queries.NewGetNotesQuery(suite.claims(user.RoleDriver), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrAuthorization)
	suite.NotErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestGetActiveLocations_FreshnessWindow() {
	fresh := suite.createUser("Fresh Driver", user.RoleDriver)
	stale := suite.createUser("Stale Driver", user.RoleDriver)
	suite.insertLocation(fresh.ID(), 59*time.Minute)
	suite.insertLocation(stale.ID(), 61*time.Minute)

	handler := queries.NewGetActiveLocationsQueryHandler(suite.db)

	query, err := queries.NewGetActiveLocationsQuery(suite.claims(user.RoleDispatcher), 0)
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("Fresh Driver", result[0].DriverName)
	suite.Equal(fresh.ID().String(), result[0].DriverID)
}

func (suite *QueriesTestSuite) TestGetActiveLocations_DriverDenied() {
	handler := queries.NewGetActiveLocationsQueryHandler(suite.db)

	query, err := queries.NewGetActiveLocationsQuery(suite.claims(user.RoleDriver), 0)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrAuthorization)
}

func (suite *QueriesTestSuite) TestGetUsers_AdminOnly() {
	suite.createUser("Mike Rivera", user.RoleDriver)
	suite.createUser("Sam Ortiz", user.RoleDispatcher)

	handler := queries.NewGetUsersQueryHandler(suite.db)

	query, err := queries.NewGetUsersQuery(suite.claims(user.RoleAdmin))
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 2)

	query, err = queries.NewGetUsersQuery(suite.claims(user.RoleDispatcher))
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrAuthorization)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
