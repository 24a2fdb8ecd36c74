package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/models"
)

type timeEntryRequest struct {
	TaskID          int64  `json:"task_id" binding:"required"`
	EntryDate       string `json:"entry_date" binding:"required"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Description     string `json:"description"`
	Billable        bool   `json:"billable"`
}

type timeSummary struct {
	ProjectID          *int64             `json:"project_id,omitempty"`
	Label              string             `json:"label"`
	TotalMinutes       int                `json:"total_minutes"`
	BillableMinutes    int                `json:"billable_minutes"`
	NonBillableMinutes int                `json:"non_billable_minutes"`
	Entries            []models.TimeEntry `json:"entries"`
}

func summarizeEntries(entries []models.TimeEntry) (total, billable int) {
	for _, e := range entries {
		total += e.DurationMinutes
		if e.Billable {
			billable += e.DurationMinutes
		}
	}
	return total, billable
}

// handleCreateTimeEntry records time against a task as a DRAFT entry.
func (s *Server) handleCreateTimeEntry(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	var req timeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	entryDate, err := models.ParseDate(req.EntryDate)
	if err != nil {
		s.respondError(c, bindError(err))
		return
	}

	if _, err := s.store.GetTask(c.Request.Context(), req.TaskID); err != nil {
		s.respondError(c, err)
		return
	}

	entry, err := s.store.CreateTimeEntry(c.Request.Context(), models.TimeEntry{
		TaskID:          req.TaskID,
		UserID:          user.ID,
		EntryDate:       entryDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		Billable:        req.Billable,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"entry": entry})
}

// handleUserTimeEntries lists the caller's entries.
func (s *Server) handleUserTimeEntries(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	entries, err := s.store.ListTimeEntriesByUser(c.Request.Context(), user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// handleUserTimeEntriesRange lists the caller's entries within a date range.
func (s *Server) handleUserTimeEntriesRange(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	from, to, ok := s.dateRange(c)
	if !ok {
		return
	}

	entries, err := s.store.ListTimeEntriesByUserRange(c.Request.Context(), user.ID, from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// handleProjectTimeEntries lists entries for all tasks of a project.
func (s *Server) handleProjectTimeEntries(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	entries, err := s.store.ListTimeEntriesByProject(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// handleProjectTimeEntriesRange narrows project entries to a date range.
func (s *Server) handleProjectTimeEntriesRange(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	from, to, ok := s.dateRange(c)
	if !ok {
		return
	}

	entries, err := s.store.ListTimeEntriesByProjectRange(c.Request.Context(), projectID, from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// handleProjectTimeSummary totals project time within a date range.
func (s *Server) handleProjectTimeSummary(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}
	from, to, ok := s.dateRange(c)
	if !ok {
		return
	}

	project, err := s.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	entries, err := s.store.ListTimeEntriesByProjectRange(c.Request.Context(), projectID, from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}

	total, billable := summarizeEntries(entries)
	respondSuccess(c, http.StatusOK, gin.H{"summary": timeSummary{
		ProjectID:          &project.ID,
		Label:              project.Name,
		TotalMinutes:       total,
		BillableMinutes:    billable,
		NonBillableMinutes: total - billable,
		Entries:            entries,
	}})
}

// handleUserTimeSummary totals the caller's time within a date range.
func (s *Server) handleUserTimeSummary(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	from, to, ok := s.dateRange(c)
	if !ok {
		return
	}

	entries, err := s.store.ListTimeEntriesByUserRange(c.Request.Context(), user.ID, from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}

	total, billable := summarizeEntries(entries)
	respondSuccess(c, http.StatusOK, gin.H{"summary": timeSummary{
		Label:              user.Username,
		TotalMinutes:       total,
		BillableMinutes:    billable,
		NonBillableMinutes: total - billable,
		Entries:            entries,
	}})
}

// handleTimeEntriesByStatus lists all entries in a given approval state.
func (s *Server) handleTimeEntriesByStatus(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}

	status, err := models.ParseTimeEntryStatus(c.Param("status"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	entries, err := s.store.ListTimeEntriesByStatus(c.Request.Context(), status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// handleUserTimeEntriesByStatus narrows a status listing to the caller.
func (s *Server) handleUserTimeEntriesByStatus(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	status, err := models.ParseTimeEntryStatus(c.Param("status"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	entries, err := s.store.ListTimeEntriesByUserAndStatus(c.Request.Context(), user.ID, status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// handleUpdateTimeEntryStatus moves an entry through the approval flow.
func (s *Server) handleUpdateTimeEntryStatus(c *gin.Context) {
	if _, ok := s.requireUser(c); !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	status, err := models.ParseTimeEntryStatus(c.Query("status"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	entry, err := s.store.UpdateTimeEntryStatus(c.Request.Context(), id, status)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entry": entry})
}

// handleSubmitTimeEntries submits a batch of the caller's entries for approval.
func (s *Server) handleSubmitTimeEntries(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}

	var req struct {
		EntryIDs []int64 `json:"entry_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, bindError(err))
		return
	}

	entries, err := s.store.SubmitTimeEntries(c.Request.Context(), user.ID, req.EntryIDs)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"entries": entries})
}

// handleDeleteTimeEntry removes one of the caller's entries.
func (s *Server) handleDeleteTimeEntry(c *gin.Context) {
	user, ok := s.requireUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteTimeEntry(c.Request.Context(), id, user.ID); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

// dateRange reads the start_date and end_date query parameters.
func (s *Server) dateRange(c *gin.Context) (models.Date, models.Date, bool) {
	from, err := models.ParseDate(c.Query("start_date"))
	if err != nil {
		s.respondError(c, bindError(fmt.Errorf("start_date: %v", err)))
		return models.Date{}, models.Date{}, false
	}
	to, err := models.ParseDate(c.Query("end_date"))
	if err != nil {
		s.respondError(c, bindError(fmt.Errorf("end_date: %v", err)))
		return models.Date{}, models.Date{}, false
	}
	return from, to, true
}
