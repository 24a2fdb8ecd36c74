package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"projecthub/internal/models"
	"projecthub/internal/storage/sqlite"
)

type taskCreateRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	ProjectID   *int64  `json:"project_id"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	AssigneeID  *int64  `json:"assignee_id"`
}

type taskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	AssigneeID  *int64  `json:"assignee_id"`
}

// handleCreateTask inserts a new task, optionally inside a project.
func (s *Server) handleCreateTask(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	draft := models.Task{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		CreatorID:   user.ID,
	}

	var err error
	if req.Status != "" {
		if draft.Status, err = models.ParseTaskStatus(req.Status); err != nil {
			s.respondError(c, err)
			return
		}
	}
	if req.Priority != "" {
		if draft.Priority, err = models.ParsePriority(req.Priority); err != nil {
			s.respondError(c, err)
			return
		}
	}
	if draft.DueDate, err = optionalDate(req.DueDate); err != nil {
		s.respondError(c, err)
		return
	}

	if req.ProjectID != nil {
		if _, err := s.store.GetProject(c.Request.Context(), *req.ProjectID); err != nil {
			s.respondError(c, err)
			return
		}
	}

	task, err := s.store.CreateTask(c.Request.Context(), draft)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if task.ProjectID != nil {
		s.logActivity(c, *task.ProjectID, user, models.ActivityTaskCreated,
			fmt.Sprintf("%s created task: %s", user.FullName(), task.Title), "TASK", &task.ID)
	}

	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleGetTask fetches one task. Only the creator or the current assignee
// may read it.
func (s *Server) handleGetTask(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !canAccessTask(task, user.ID) {
		s.respondError(c, models.ErrAccessDenied)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleListTasks returns tasks created by the caller.
func (s *Server) handleListTasks(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	tasks, err := s.store.ListTasksByCreator(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleTasksByProject fetches tasks for a project the caller owns.
func (s *Server) handleTasksByProject(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	projectID, ok := parseID(c, "id")
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

	tasks, err := s.store.ListTasksByProject(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleUpdateTask updates task fields such as status or assignee.
func (s *Server) handleUpdateTask(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	existing, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if existing.CreatorID != user.ID {
		s.respondError(c, models.ErrAccessDenied)
		return
	}

	upd := sqlite.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
	}
	if req.Status != nil {
		status, err := models.ParseTaskStatus(*req.Status)
		if err != nil {
			s.respondError(c, err)
			return
		}
		upd.Status = &status
	}
	if req.Priority != nil {
		priority, err := models.ParsePriority(*req.Priority)
		if err != nil {
			s.respondError(c, err)
			return
		}
		upd.Priority = &priority
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			upd.ClearDue = true
		} else {
			due, err := optionalDate(req.DueDate)
			if err != nil {
				s.respondError(c, err)
				return
			}
			upd.DueDate = due
		}
	}

	task, err := s.store.UpdateTask(c.Request.Context(), id, upd)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if task.ProjectID != nil {
		activity := models.ActivityTaskUpdated
		message := fmt.Sprintf("%s updated task: %s", user.FullName(), task.Title)
		if upd.Status != nil && *upd.Status == models.StatusDone {
			activity = models.ActivityTaskCompleted
			message = fmt.Sprintf("%s completed task: %s", user.FullName(), task.Title)
		}
		s.logActivity(c, *task.ProjectID, user, activity, message, "TASK", &task.ID)
	}

	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task completely. Only its creator may do so.
func (s *Server) handleDeleteTask(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if task.CreatorID != user.ID {
		s.respondError(c, models.ErrAccessDenied)
		return
	}

	if err := s.store.DeleteTask(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// handleTaskStatistics counts the caller's tasks per status.
func (s *Server) handleTaskStatistics(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	stats, err := s.store.TaskStatisticsByCreator(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"statistics": stats})
}

// handleAddComment appends a comment to a task.
func (s *Server) handleAddComment(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	comment, err := s.store.AddTaskComment(c.Request.Context(), models.TaskComment{
		TaskID:   taskID,
		AuthorID: user.ID,
		Content:  req.Content,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	if task.ProjectID != nil {
		s.logActivity(c, *task.ProjectID, user, models.ActivityCommentAdded,
			fmt.Sprintf("%s commented on task: %s", user.FullName(), task.Title), "TASK", &task.ID)
	}

	respondSuccess(c, http.StatusCreated, gin.H{"comment": comment})
}

// handleListComments fetches a task's comments for its creator or assignee.
func (s *Server) handleListComments(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !canAccessTask(task, user.ID) {
		s.respondError(c, models.ErrAccessDenied)
		return
	}

	comments, err := s.store.ListTaskComments(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"comments": comments})
}

// handleUploadAttachment stores an uploaded file under a randomized name and
// records its metadata against the task.
func (s *Server) handleUploadAttachment(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := s.store.GetTask(c.Request.Context(), taskID); err != nil {
		s.respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, bindError(err))
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.respondError(c, fmt.Errorf("create upload dir: %w", err))
		return
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(s.uploadDir, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		s.respondError(c, fmt.Errorf("save upload: %w", err))
		return
	}

	attachment, err := s.store.AddTaskAttachment(c.Request.Context(), models.TaskAttachment{
		TaskID:       taskID,
		FileName:     storedName,
		OriginalName: filepath.Base(file.Filename),
		ContentType:  file.Header.Get("Content-Type"),
		Size:         file.Size,
		Path:         storedPath,
		UploadedByID: user.ID,
	})
	if err != nil {
		_ = os.Remove(storedPath)
		s.respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"attachment": attachment})
}

// handleListAttachments fetches a task's attachment metadata for its creator
// or assignee.
func (s *Server) handleListAttachments(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	taskID, ok := parseID(c, "id")
	if !ok {
		return
	}

	task, err := s.store.GetTask(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if !canAccessTask(task, user.ID) {
		s.respondError(c, models.ErrAccessDenied)
		return
	}

	attachments, err := s.store.ListTaskAttachments(c.Request.Context(), taskID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"attachments": attachments})
}

// handleDeleteAttachment removes an attachment record and its stored file.
// Only the uploader may delete it.
func (s *Server) handleDeleteAttachment(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	attachment, err := s.store.GetTaskAttachment(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if attachment.UploadedByID != user.ID {
		s.respondError(c, models.ErrAccessDenied)
		return
	}

	if _, err := s.store.DeleteTaskAttachment(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	if err := os.Remove(attachment.Path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove attachment file", "path", attachment.Path, "error", err)
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// canAccessTask reports whether the user may read the task: they created it
// or are its current assignee.
func canAccessTask(task models.Task, userID int64) bool {
	if task.CreatorID == userID {
		return true
	}
	return task.AssigneeID != nil && *task.AssigneeID == userID
}

// logActivity records a feed entry, logging rather than failing the request
// when the write does not succeed.
func (s *Server) logActivity(c *gin.Context, projectID int64, user models.User, typ models.ActivityType, description, entityType string, entityID *int64) {
	err := s.store.LogActivity(c.Request.Context(), models.ActivityLog{
		ProjectID:   projectID,
		UserID:      user.ID,
		Type:        typ,
		Description: description,
		EntityType:  entityType,
		EntityID:    entityID,
	})
	if err != nil {
		s.logger.Warn("failed to log activity", "project_id", projectID, "error", err)
	}
}
