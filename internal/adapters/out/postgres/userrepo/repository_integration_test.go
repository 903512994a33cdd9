package userrepo_test

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

	"dispatch/internal/adapters/out/postgres/userrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *userrepo.GormUserRepository
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&userrepo.UserDTO{})
	suite.Require().NoError(err)

	suite.repo = userrepo.NewGormUserRepository(db, noopTracker{})
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users CASCADE").Error)
}

func (suite *UserRepositoryIntegrationTestSuite) newUser(username string) *user.User {
	account, err := user.NewUser(kernel.NewUUID(), username, "bcrypt-hash", "Mike Rivera", user.RoleDriver)
	suite.Require().NoError(err)
	return account
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddAndGetByUsername() {
	ctx := context.Background()
	account := suite.newUser("mike")
	suite.Require().NoError(suite.repo.Add(ctx, account))

	loaded, err := suite.repo.GetByUsername(ctx, "mike")

	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(account.ID()))
	suite.Equal("Mike Rivera", loaded.Name())
	suite.Equal(user.RoleDriver, loaded.Role())
	suite.True(loaded.IsActive())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_DuplicateUsernameConflicts() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newUser("mike")))

	err := suite.repo.Add(ctx, suite.newUser("mike"))

	suite.ErrorIs(err, errs.ErrConflict)
}

func (suite *UserRepositoryIntegrationTestSuite) TestGetByUsername_Unknown() {
	_, err := suite.repo.GetByUsername(context.Background(), "ghost")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_PersistsDeactivation() {
	ctx := context.Background()
	account := suite.newUser("mike")
	suite.Require().NoError(suite.repo.Add(ctx, account))

	account.SetActive(false)
	suite.Require().NoError(account.ChangeRole(user.RoleDispatcher))
	suite.Require().NoError(suite.repo.Update(ctx, account))

	loaded, err := suite.repo.Get(ctx, account.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
	suite.Equal(user.RoleDispatcher, loaded.Role())
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
