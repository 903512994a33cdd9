package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime/types"
)

// Server carries every command and query handler the REST surface needs.
// Handlers stay thin: decode the request, build a command or query, hand it
// to the application layer, translate the result.
type Server struct {
	// Command handlers
	loginHandler          commands.LoginCommandHandler
	createJobHandler      commands.CreateJobCommandHandler
	updateJobHandler      commands.UpdateJobCommandHandler
	deleteJobHandler      commands.DeleteJobCommandHandler
	addNoteHandler        commands.AddNoteCommandHandler
	reportLocationHandler commands.ReportLocationCommandHandler
	createUserHandler     commands.CreateUserCommandHandler
	updateUserHandler     commands.UpdateUserCommandHandler

	// Query handlers
	getJobsHandler            queries.GetJobsQueryHandler
	getJobHandler             queries.GetJobQueryHandler
	getNotesHandler           queries.GetNotesQueryHandler
	getActiveLocationsHandler queries.GetActiveLocationsQueryHandler
	getUsersHandler           queries.GetUsersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	loginHandler commands.LoginCommandHandler,
	createJobHandler commands.CreateJobCommandHandler,
	updateJobHandler commands.UpdateJobCommandHandler,
	deleteJobHandler commands.DeleteJobCommandHandler,
	addNoteHandler commands.AddNoteCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	createUserHandler commands.CreateUserCommandHandler,
	updateUserHandler commands.UpdateUserCommandHandler,
	getJobsHandler queries.GetJobsQueryHandler,
	getJobHandler queries.GetJobQueryHandler,
	getNotesHandler queries.GetNotesQueryHandler,
	getActiveLocationsHandler queries.GetActiveLocationsQueryHandler,
	getUsersHandler queries.GetUsersQueryHandler,
) *Server {
	return &Server{
		loginHandler:              loginHandler,
		createJobHandler:          createJobHandler,
		updateJobHandler:          updateJobHandler,
		deleteJobHandler:          deleteJobHandler,
		addNoteHandler:            addNoteHandler,
		reportLocationHandler:     reportLocationHandler,
		createUserHandler:         createUserHandler,
		updateUserHandler:         updateUserHandler,
		getJobsHandler:            getJobsHandler,
		getJobHandler:             getJobHandler,
		getNotesHandler:           getNotesHandler,
		getActiveLocationsHandler: getActiveLocationsHandler,
		getUsersHandler:           getUsersHandler,
	}
}

// RegisterRoutes mounts the REST surface on the echo instance. Everything
// under /api requires a valid credential except login and the health probe.
func (s *Server) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	e.GET("/api/health", s.Health)
	e.POST("/api/login", s.Login)

	api := e.Group("/api", authMiddleware)
	api.GET("/jobs", s.GetJobs)
	api.POST("/jobs", s.CreateJob)
	api.GET("/jobs/:id", s.GetJob)
	api.PUT("/jobs/:id", s.UpdateJob)
	api.DELETE("/jobs/:id", s.DeleteJob)
	api.GET("/jobs/:id/notes", s.GetNotes)
	api.POST("/jobs/:id/notes", s.AddNote)
	api.POST("/location", s.ReportLocation)
	api.GET("/locations", s.GetActiveLocations)
	api.GET("/users", s.GetUsers)
	api.POST("/users", s.CreateUser)
	api.PUT("/users/:id", s.UpdateUser)
}

// Health handles GET /api/health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Login handles POST /api/login - exchanges credentials for a bearer token.
func (s *Server) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewLoginCommand(req.Username, req.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.loginHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetJobs handles GET /api/jobs - lists jobs, optionally filtered by status,
// driver, and due date. Drivers only ever see their own jobs.
func (s *Server) GetJobs(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	var filter queries.JobFilter
	if v := ctx.QueryParam("status"); v != "" {
		status, err := job.StatusFromString(v)
		if err != nil {
			return respondError(ctx, err)
		}
		filter.Status = &status
	}
	if v := ctx.QueryParam("driver_id"); v != "" {
		driverID, err := kernel.UUIDFromString(v)
		if err != nil {
			return respondError(ctx, err)
		}
		filter.DriverID = &driverID
	}
	if v := ctx.QueryParam("due_date"); v != "" {
		var date types.Date
		if err := date.UnmarshalJSON([]byte(strconv.Quote(v))); err != nil {
			return respondBadRequest(ctx, "Invalid due_date, expected YYYY-MM-DD")
		}
		filter.DueDate = &date.Time
	}

	query, err := queries.NewGetJobsQuery(actor, filter)
	if err != nil {
		return respondError(ctx, err)
	}

	jobs, err := s.getJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, jobs)
}

// CreateJob handles POST /api/jobs.
func (s *Server) CreateJob(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	var req createJobRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	var driverID *kernel.UUID
	if req.DriverID != nil {
		id, err := kernel.UUIDFromString(*req.DriverID)
		if err != nil {
			return respondBadRequest(ctx, "Invalid driver_id")
		}
		driverID = &id
	}

	cmd, err := commands.NewCreateJobCommand(
		actor,
		kernel.NewUUID(),
		req.Title,
		req.Description,
		req.Address,
		req.DueDate.Time,
		req.DueTime,
		driverID,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.createJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, record)
}

// GetJob handles GET /api/jobs/:id.
func (s *Server) GetJob(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid job id")
	}

	query, err := queries.NewGetJobQuery(actor, jobID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getJobHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateJob handles PUT /api/jobs/:id - applies a partial update. A field
// sent as explicit null clears it; an absent field is left untouched.
func (s *Server) UpdateJob(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid job id")
	}

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	var req updateJobRequest
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	patch, err := req.patch(raw)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateJobCommand(actor, jobID, patch)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.updateJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// DeleteJob handles DELETE /api/jobs/:id.
func (s *Server) DeleteJob(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid job id")
	}

	cmd, err := commands.NewDeleteJobCommand(actor, jobID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.deleteJobHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetNotes handles GET /api/jobs/:id/notes.
func (s *Server) GetNotes(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid job id")
	}

	query, err := queries.NewGetNotesQuery(actor, jobID)
	if err != nil {
		return respondError(ctx, err)
	}

	notes, err := s.getNotesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, notes)
}

// AddNote handles POST /api/jobs/:id/notes.
func (s *Server) AddNote(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid job id")
	}

	var req noteRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddNoteCommand(actor, kernel.NewUUID(), jobID, req.Body)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.addNoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, record)
}

// ReportLocation handles POST /api/location - drivers push their current
// position here.
func (s *Server) ReportLocation(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	var req locationRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return respondBadRequest(ctx, "latitude and longitude are required")
	}

	cmd, err := commands.NewReportLocationCommand(actor, *req.Latitude, *req.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.reportLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// GetActiveLocations handles GET /api/locations - lists driver positions
// updated within the freshness window.
func (s *Server) GetActiveLocations(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	sinceMinutes := 0
	if v := ctx.QueryParam("since_minutes"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return respondBadRequest(ctx, "Invalid since_minutes")
		}
		sinceMinutes = parsed
	}

	query, err := queries.NewGetActiveLocationsQuery(actor, sinceMinutes)
	if err != nil {
		return respondError(ctx, err)
	}

	locations, err := s.getActiveLocationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, locations)
}

// GetUsers handles GET /api/users.
func (s *Server) GetUsers(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	query, err := queries.NewGetUsersQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	users, err := s.getUsersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, users)
}

// CreateUser handles POST /api/users.
func (s *Server) CreateUser(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	var req createUserRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	role, err := user.RoleFromString(req.Role)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCreateUserCommand(
		actor,
		kernel.NewUUID(),
		req.Username,
		req.Password,
		req.Name,
		role,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.createUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, record)
}

// UpdateUser handles PUT /api/users/:id.
func (s *Server) UpdateUser(ctx echo.Context) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return respondError(ctx, errMissingActor)
	}

	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid user id")
	}

	var req updateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	patch, err := req.patch()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateUserCommand(actor, userID, patch)
	if err != nil {
		return respondError(ctx, err)
	}

	record, err := s.updateUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, record)
}
