package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/progress"
	"projecthub/internal/report"
)

// handleProjectProgress builds the full progress report for one project.
// The optional mode query parameter selects the burndown strategy.
func (s *Server) handleProjectProgress(c *gin.Context) {
	username := currentUsername(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	mode, err := progress.ParseBurndownMode(c.Query("mode"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	rep, err := s.progress.ProjectProgress(c.Request.Context(), projectID, username, mode)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"progress": rep})
}

// handleAllProjectsProgress summarizes health across the caller's projects.
func (s *Server) handleAllProjectsProgress(c *gin.Context) {
	username := currentUsername(c)

	summaries, err := s.progress.AllProjectsProgress(c.Request.Context(), username)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": summaries})
}

// handleTeamLeaderboard ranks project members by completion rate.
func (s *Server) handleTeamLeaderboard(c *gin.Context) {
	username := currentUsername(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	board, err := s.progress.TeamLeaderboard(c.Request.Context(), projectID, username)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"leaderboard": board})
}

// handleExportProgress downloads a progress report as a spreadsheet.
// format=xlsx (default) or format=csv.
func (s *Server) handleExportProgress(c *gin.Context) {
	username := currentUsername(c)
	projectID, ok := parseID(c, "id")
	if !ok {
		return
	}

	mode, err := progress.ParseBurndownMode(c.Query("mode"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	rep, err := s.progress.ProjectProgress(c.Request.Context(), projectID, username, mode)
	if err != nil {
		s.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	var contentType, filename string
	switch format := c.DefaultQuery("format", "xlsx"); format {
	case "xlsx":
		if err := report.NewExcelExporter().Write(&buf, rep); err != nil {
			s.respondError(c, err)
			return
		}
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("progress-%d.xlsx", projectID)
	case "csv":
		if err := report.NewCSVExporter().Write(&buf, rep); err != nil {
			s.respondError(c, err)
			return
		}
		contentType = "text/csv"
		filename = fmt.Sprintf("burndown-%d.csv", projectID)
	default:
		s.respondError(c, bindError(fmt.Errorf("unknown export format %q", format)))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
