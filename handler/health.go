package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// Liveness answers the root probe.
func Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"up": true})
}

// Healthz is the richer liveness endpoint.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

// StaticFallback serves files from ./public for unmatched GET paths and
// answers everything else with a 404 envelope.
func StaticFallback(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		path := filepath.Join("public", filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
	}
	respondError(c, http.StatusNotFound, "route not found")
}
