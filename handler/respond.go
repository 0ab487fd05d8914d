package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"coopsave/repository"
)

const apiVersion = "1.0.0"

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"version": apiVersion, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"version": apiVersion, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"version": apiVersion, "error": message})
}

func respondPage[T any](c *gin.Context, page *repository.Page[T]) {
	c.JSON(http.StatusOK, gin.H{
		"version": apiVersion,
		"data":    page.Items,
		"meta": gin.H{
			"total":      page.Total,
			"page":       page.Page,
			"limit":      page.Limit,
			"totalPages": page.TotalPages,
		},
	})
}

// respondRepoError translates repository sentinels into the HTTP taxonomy.
// Anything unrecognized is logged server-side and surfaced as a generic 500.
func respondRepoError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, resource+" not found")
	case errors.Is(err, repository.ErrConflict):
		respondError(c, http.StatusConflict, resource+" already exists")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("persistence error")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
