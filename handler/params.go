package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"coopsave/repository"
)

// listQuery is the pagination and visibility surface shared by every listing
// endpoint. Resource-specific filters embed it.
type listQuery struct {
	Page            int  `form:"page,default=1" binding:"min=1"`
	Limit           int  `form:"limit,default=10" binding:"min=1,max=100"`
	IncludeArchived bool `form:"includeArchived"`
	IncludeDeleted  bool `form:"includeDeleted"`
}

func (q listQuery) options(filters map[string]any, preloads ...string) repository.ListOptions {
	return repository.ListOptions{
		Filters:         filters,
		Page:            q.Page,
		Limit:           q.Limit,
		IncludeArchived: q.IncludeArchived,
		IncludeDeleted:  q.IncludeDeleted,
		Preloads:        preloads,
	}
}

// parseID validates the {id} path segment as a UUID or aborts with 400.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// validAmount enforces positive amounts with at most two decimal places.
func validAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(2))
}
