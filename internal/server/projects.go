package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"projecthub/internal/models"
)

type projectRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Priority    string  `json:"priority"`
	Template    string  `json:"template"`
	Status      string  `json:"status"`
}

func (r projectRequest) toModel(ownerID int64) (models.Project, error) {
	p := models.Project{
		Name:        r.Name,
		Description: r.Description,
		OwnerID:     ownerID,
	}

	var err error
	if p.StartDate, err = optionalDate(r.StartDate); err != nil {
		return models.Project{}, err
	}
	if p.EndDate, err = optionalDate(r.EndDate); err != nil {
		return models.Project{}, err
	}
	if r.Priority != "" {
		if p.Priority, err = models.ParsePriority(r.Priority); err != nil {
			return models.Project{}, err
		}
	}
	if r.Template != "" {
		if p.Template, err = models.ParseProjectTemplate(r.Template); err != nil {
			return models.Project{}, err
		}
	}
	if r.Status != "" {
		if p.Status, err = models.ParseProjectStatus(r.Status); err != nil {
			return models.Project{}, err
		}
	}
	return p, nil
}

func optionalDate(s *string) (*models.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		return nil, bindError(err)
	}
	return &d, nil
}

// handleCreateProject creates a project and enrolls the creator as OWNER.
func (s *Server) handleCreateProject(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	draft, err := req.toModel(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), draft)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if _, err := s.store.AddProjectMember(c.Request.Context(), models.ProjectMember{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      models.RoleOwner,
	}); err != nil {
		s.respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleListProjects returns projects the user owns or belongs to, newest first.
func (s *Server) handleListProjects(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	owned, err := s.store.ListProjectsByOwner(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	member, err := s.store.MemberProjects(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	projects := append(owned, member...)
	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].CreatedAt.Equal(projects[j].CreatedAt) {
			return projects[i].CreatedAt.After(projects[j].CreatedAt)
		}
		return projects[i].ID > projects[j].ID
	})

	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleGetProject returns one project; owners and members may read it.
func (s *Server) handleGetProject(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := s.store.GetProject(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if project.OwnerID != user.ID {
		members, err := s.store.ListProjectMembers(c.Request.Context(), id)
		if err != nil {
			s.respondError(c, err)
			return
		}
		isMember := false
		for _, m := range members {
			if m.UserID == user.ID {
				isMember = true
				break
			}
		}
		if !isMember {
			s.respondError(c, models.ErrAccessDenied)
			return
		}
	}

	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleProjectTemplates lists the template catalog.
func (s *Server) handleProjectTemplates(c *gin.Context) {
	type template struct {
		Key         string `json:"key"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	respondSuccess(c, http.StatusOK, gin.H{"templates": []template{
		{Key: "none", Name: "No Template", Description: "Start from scratch"},
		{Key: "web-dev", Name: "Web Development", Description: "Full-stack web application"},
		{Key: "mobile-app", Name: "Mobile App", Description: "Cross-platform mobile application"},
		{Key: "marketing", Name: "Marketing Campaign", Description: "Digital marketing project"},
		{Key: "research", Name: "Research Project", Description: "Academic or business research"},
	}})
}

// handleSearchProjects matches the user's projects by keyword.
func (s *Server) handleSearchProjects(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	projects, err := s.store.SearchProjects(c.Request.Context(), user.ID, c.Query("keyword"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleProjectsByStatus filters the user's projects by lifecycle state.
func (s *Server) handleProjectsByStatus(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	status, err := models.ParseProjectStatus(c.Param("status"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	projects, err := s.store.ListProjectsByOwnerAndStatus(c.Request.Context(), user.ID, status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleProjectsByPriority filters the user's projects by priority.
func (s *Server) handleProjectsByPriority(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	priority, err := models.ParsePriority(c.Param("priority"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	projects, err := s.store.ListProjectsByOwnerAndPriority(c.Request.Context(), user.ID, priority)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleProjectStatistics summarizes the user's project and task counts.
func (s *Server) handleProjectStatistics(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	total, active, completed, urgent, err := s.store.CountProjectsByOwner(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	taskStats, err := s.store.TaskStatisticsByCreator(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{
		"total_projects":     total,
		"active_projects":    active,
		"completed_projects": completed,
		"urgent_projects":    urgent,
		"pending_tasks":      taskStats.Pending,
	})
}

// handleUpdateProject replaces the project's mutable fields; owner only.
func (s *Server) handleUpdateProject(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := s.ownedProject(c, id, user.ID); err != nil {
		s.respondError(c, err)
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	draft, err := req.toModel(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	draft.ID = id

	project, err := s.store.UpdateProject(c.Request.Context(), draft)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject removes a project and all dependent rows; owner only.
func (s *Server) handleDeleteProject(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := s.ownedProject(c, id, user.ID); err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.store.DeleteProject(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// ownedProject fetches a project and verifies the caller owns it.
func (s *Server) ownedProject(c *gin.Context, projectID, userID int64) (models.Project, error) {
	project, err := s.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.OwnerID != userID {
		return models.Project{}, models.ErrAccessDenied
	}
	return project, nil
}
