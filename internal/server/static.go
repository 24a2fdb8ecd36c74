package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the compiled SPA and the attachment upload directory.
// Missing directories degrade to API-only mode instead of failing startup.
func (s *Server) mountStatic() {
	if s.uploadDir != "" {
		if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
			s.logger.Warn("upload directory unavailable", "path", s.uploadDir, "error", err)
		} else {
			s.engine.StaticFS("/uploads", gin.Dir(s.uploadDir, false))
		}
	}

	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; serving API only")
		return
	}

	info, err := os.Stat(s.staticDir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing", "path", s.staticDir, "error", err)
		return
	}

	index := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		s.logger.Warn("index.html not found", "path", index, "error", err)
	} else {
		s.engine.GET("/", func(c *gin.Context) {
			c.File(index)
		})
		// Client-side routes fall back to the SPA entry point.
		s.engine.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
				return
			}
			c.File(index)
		})
	}

	assets := filepath.Join(s.staticDir, "assets")
	if _, err := os.Stat(assets); err == nil {
		s.engine.StaticFS("/assets", gin.Dir(assets, true))
	}

	favicon := filepath.Join(s.staticDir, "favicon.ico")
	if _, err := os.Stat(favicon); err == nil {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
}
