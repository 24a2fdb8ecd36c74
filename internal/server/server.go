package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"projecthub/internal/auth"
	"projecthub/internal/progress"
	"projecthub/internal/storage/sqlite"
)

// Server provides the HTTP handlers for the project management backend.
type Server struct {
	engine    *gin.Engine
	store     *sqlite.Store
	logger    *slog.Logger
	tokens    *auth.TokenIssuer
	progress  *progress.Service
	staticDir string
	uploadDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *sqlite.Store, tokens *auth.TokenIssuer, logger *slog.Logger, staticDir, uploadDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine:    router,
		store:     store,
		logger:    logger,
		tokens:    tokens,
		progress:  progress.NewService(store, store, store),
		staticDir: staticDir,
		uploadDir: uploadDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	s.engine.Use(corsMiddleware())

	api := s.engine.Group("/api")
	api.Use(rateLimitMiddleware())
	{
		api.GET("/healthz", s.handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", s.handleSignup)
			authGroup.POST("/signin", s.handleSignin)
			authGroup.GET("/users", s.handleListUsers)
			authGroup.POST("/create-user", s.handleCreateUser)
		}

		secured := api.Group("")
		secured.Use(s.authMiddleware())

		projects := secured.Group("/projects")
		{
			projects.POST("", s.handleCreateProject)
			projects.GET("", s.handleListProjects)
			projects.GET("/templates", s.handleProjectTemplates)
			projects.GET("/search", s.handleSearchProjects)
			projects.GET("/statistics", s.handleProjectStatistics)
			projects.GET("/status/:status", s.handleProjectsByStatus)
			projects.GET("/priority/:priority", s.handleProjectsByPriority)
			projects.GET("/:id", s.handleGetProject)
			projects.PUT("/:id", s.handleUpdateProject)
			projects.DELETE("/:id", s.handleDeleteProject)
		}

		tasks := secured.Group("/tasks")
		{
			tasks.POST("", s.handleCreateTask)
			tasks.GET("", s.handleListTasks)
			tasks.GET("/statistics", s.handleTaskStatistics)
			tasks.GET("/project/:id", s.handleTasksByProject)
			tasks.GET("/:id", s.handleGetTask)
			tasks.PUT("/:id", s.handleUpdateTask)
			tasks.DELETE("/:id", s.handleDeleteTask)
			tasks.POST("/:id/comments", s.handleAddComment)
			tasks.GET("/:id/comments", s.handleListComments)
			tasks.POST("/:id/attachments", s.handleUploadAttachment)
			tasks.GET("/:id/attachments", s.handleListAttachments)
			tasks.DELETE("/attachments/:id", s.handleDeleteAttachment)
		}

		tracking := secured.Group("/time-tracking")
		{
			tracking.POST("/entries", s.handleCreateTimeEntry)
			tracking.GET("/entries", s.handleUserTimeEntries)
			tracking.GET("/entries/range", s.handleUserTimeEntriesRange)
			tracking.GET("/entries/status/:status", s.handleTimeEntriesByStatus)
			tracking.GET("/entries/status/:status/user", s.handleUserTimeEntriesByStatus)
			tracking.PUT("/entries/:id/status", s.handleUpdateTimeEntryStatus)
			tracking.POST("/entries/submit", s.handleSubmitTimeEntries)
			tracking.DELETE("/entries/:id", s.handleDeleteTimeEntry)
			tracking.GET("/projects/:id/entries", s.handleProjectTimeEntries)
			tracking.GET("/projects/:id/entries/range", s.handleProjectTimeEntriesRange)
			tracking.GET("/projects/:id/summary", s.handleProjectTimeSummary)
			tracking.GET("/summary", s.handleUserTimeSummary)
		}

		team := secured.Group("/team")
		{
			team.POST("/project/:id/add-member", s.handleAddMember)
			team.GET("/project/:id/members", s.handleListMembers)
			team.DELETE("/project/:id/remove-member/:userId", s.handleRemoveMember)
			team.GET("/project/:id/activity", s.handleProjectActivity)
			team.GET("/project/:id/activity/recent", s.handleRecentActivity)
			team.POST("/project/:id/note", s.handleUpsertNote)
			team.GET("/project/:id/note", s.handleGetNote)
			team.POST("/tasks/:id/comment", s.handleAddComment)
		}

		prog := secured.Group("/progress")
		{
			prog.GET("/projects", s.handleAllProjectsProgress)
			prog.GET("/project/:id", s.handleProjectProgress)
			prog.GET("/project/:id/leaderboard", s.handleTeamLeaderboard)
			prog.GET("/project/:id/export", s.handleExportProgress)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
