package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"projecthub/internal/models"
)

type addMemberRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

// handleAddMember adds a user to the project team. Only the owner may do so.
func (s *Server) handleAddMember(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	role := models.RoleMember
	if req.Role != "" {
		parsed, err := models.ParseMemberRole(req.Role)
		if err != nil {
			s.respondError(c, err)
			return
		}
		role = parsed
	}

	project, err := s.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if project.OwnerID != user.ID {
		s.respondError(c, models.ErrAccessDenied)
		return
	}
	if _, err := s.store.GetUser(c.Request.Context(), req.UserID); err != nil {
		s.respondError(c, err)
		return
	}

	member, err := s.store.AddProjectMember(c.Request.Context(), models.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logActivity(c, projectID, user, models.ActivityMemberAdded,
		user.FullName()+" added user "+strconv.FormatInt(req.UserID, 10)+" to the team",
		"MEMBER", &req.UserID)
	respondSuccess(c, http.StatusCreated, gin.H{"member": member})
}

// handleListMembers lists the project team.
func (s *Server) handleListMembers(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	members, err := s.store.ListProjectMembers(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"members": members})
}

// handleRemoveMember removes a user from the project team. Owner only.
func (s *Server) handleRemoveMember(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	project, err := s.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if project.OwnerID != user.ID {
		s.respondError(c, models.ErrAccessDenied)
		return
	}

	if err := s.store.RemoveProjectMember(c.Request.Context(), projectID, memberID); err != nil {
		s.respondError(c, err)
		return
	}

	s.logActivity(c, projectID, user, models.ActivityMemberRemoved,
		user.FullName()+" removed user "+strconv.FormatInt(memberID, 10)+" from the team",
		"MEMBER", &memberID)
	respondSuccess(c, http.StatusOK, gin.H{"status": "removed"})
}

// handleProjectActivity returns the full activity log for a project.
func (s *Server) handleProjectActivity(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	activity, err := s.store.ListProjectActivity(c.Request.Context(), projectID, 0)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"activity": activity})
}

// handleRecentActivity returns the latest activity entries, default 10.
func (s *Server) handleRecentActivity(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.respondError(c, bindError(errInvalidLimit))
			return
		}
		limit = parsed
	}

	activity, err := s.store.ListProjectActivity(c.Request.Context(), projectID, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"activity": activity})
}

// handleUpsertNote creates or replaces the shared project note.
func (s *Server) handleUpsertNote(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	if _, err := s.store.GetProject(c.Request.Context(), projectID); err != nil {
		s.respondError(c, err)
		return
	}

	note, err := s.store.UpsertProjectNote(c.Request.Context(), projectID, req.Content, user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logActivity(c, projectID, user, models.ActivityNoteUpdated,
		user.FullName()+" updated the project note", "NOTE", nil)
	respondSuccess(c, http.StatusOK, gin.H{"note": note})
}

// handleGetNote returns the shared project note, or an empty note when none
// has been written yet.
func (s *Server) handleGetNote(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	note, err := s.store.GetProjectNote(c.Request.Context(), projectID)
	if err != nil {
		if isNotFound(err) {
			respondSuccess(c, http.StatusOK, gin.H{"note": models.ProjectNote{ProjectID: projectID}})
			return
		}
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"note": note})
}
