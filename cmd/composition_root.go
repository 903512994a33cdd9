package cmd

import (
	"log/slog"
	"os"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/jwtauth"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"
	"dispatch/internal/realtime"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	logger        *slog.Logger
	authenticator *jwtauth.Authenticator
	registry      *realtime.Registry
	bus           *realtime.Bus
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	authenticator, err := jwtauth.NewAuthenticator(configs.JWTSecret, configs.TokenTTL)
	if err != nil {
		return CompositionRoot{}, err
	}

	realtimeMetrics, err := metrics.NewRealtime(nil)
	if err != nil {
		return CompositionRoot{}, err
	}

	registry, err := realtime.NewRegistry(authenticator, configs.WSBufferSize, logger)
	if err != nil {
		return CompositionRoot{}, err
	}
	registry.SetRecorder(realtimeMetrics)

	bus, err := realtime.NewBus(registry, realtimeMetrics, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:        logger,
		authenticator: authenticator,
		registry:      registry,
		bus:           bus,
	}, nil
}

func (c *CompositionRoot) Authenticator() *jwtauth.Authenticator {
	return c.authenticator
}

func (c *CompositionRoot) CreateWebsocketGateway() *ws.Gateway {
	return ws.NewGateway(c.registry, c.logger)
}

func (c *CompositionRoot) CreateJobManager(sessionMaxIdle time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(c.registry, sessionMaxIdle, c.logger)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLoginCommandHandler(f, c.authenticator)
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateUpdateJobCommandHandler() commands.UpdateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateJobCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateDeleteJobCommandHandler() commands.DeleteJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteJobCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateAddNoteCommandHandler() commands.AddNoteCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddNoteCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f, c.bus)
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateUserCommandHandler() commands.UpdateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateUserCommandHandler(f)
}

func (c *CompositionRoot) CreateGetJobsQueryHandler() queries.GetJobsQueryHandler {
	return queries.NewGetJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetNotesQueryHandler() queries.GetNotesQueryHandler {
	return queries.NewGetNotesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveLocationsQueryHandler() queries.GetActiveLocationsQueryHandler {
	return queries.NewGetActiveLocationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUsersQueryHandler() queries.GetUsersQueryHandler {
	return queries.NewGetUsersQueryHandler(c.gormDB)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}
