package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coopsave/entity"
	"coopsave/repository"
)

type CooperativeHandler struct {
	db            *gorm.DB
	cooperatives  *repository.Repository[entity.Cooperative]
	contributions *repository.Repository[entity.Contribution]
	loans         *repository.Repository[entity.Loan]
}

func NewCooperativeHandler(db *gorm.DB) *CooperativeHandler {
	return &CooperativeHandler{
		db:            db,
		cooperatives:  repository.New[entity.Cooperative](db),
		contributions: repository.New[entity.Contribution](db),
		loans:         repository.New[entity.Loan](db),
	}
}

type createCooperativePayload struct {
	Name          string        `json:"name" binding:"required"`
	ContactPerson string        `json:"contactPerson" binding:"required"`
	Status        entity.Status `json:"status"`
	Verified      bool          `json:"verified"`
	Description   string        `json:"description"`
	IsPublic      bool          `json:"isPublic"`
	Creator       string        `json:"creator" binding:"required"`
}

func (h *CooperativeHandler) Create(c *gin.Context) {
	var p createCooperativePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if p.Status == "" {
		p.Status = entity.StatusPending
	} else if !p.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}

	coop := entity.Cooperative{
		Model:         entity.Model{Status: p.Status},
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Verified:      p.Verified,
		Description:   p.Description,
		IsPublic:      p.IsPublic,
		Creator:       p.Creator,
	}
	if err := h.cooperatives.Create(c.Request.Context(), &coop); err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	respondData(c, http.StatusCreated, coop)
}

type listCooperativesQuery struct {
	listQuery
	IsPublic *bool         `form:"isPublic"`
	Verified *bool         `form:"verified"`
	Status   entity.Status `form:"status"`
}

func (h *CooperativeHandler) List(c *gin.Context) {
	var q listCooperativesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.Status != "" && !q.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	filters := map[string]any{}
	if q.IsPublic != nil {
		filters["is_public"] = *q.IsPublic
	}
	if q.Verified != nil {
		filters["verified"] = *q.Verified
	}
	if q.Status != "" {
		filters["status"] = q.Status
	}
	page, err := h.cooperatives.List(c.Request.Context(), q.options(filters))
	if err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	respondPage(c, page)
}

func (h *CooperativeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	coop, err := h.cooperatives.FindByID(c.Request.Context(), id, false, false,
		"Contributions", "Loans", "ProfitShares")
	if err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	respondData(c, http.StatusOK, coop)
}

type updateCooperativePayload struct {
	Name          *string        `json:"name"`
	ContactPerson *string        `json:"contactPerson"`
	Status        *entity.Status `json:"status"`
	Verified      *bool          `json:"verified"`
	Description   *string        `json:"description"`
	IsPublic      *bool          `json:"isPublic"`
	Creator       *string        `json:"creator"`
	Archived      *bool          `json:"archived"`
	Deleted       *bool          `json:"deleted"`
}

func (h *CooperativeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updateCooperativePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.ContactPerson != nil {
		fields["contact_person"] = *p.ContactPerson
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid status value")
			return
		}
		fields["status"] = *p.Status
	}
	if p.Verified != nil {
		fields["verified"] = *p.Verified
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.IsPublic != nil {
		fields["is_public"] = *p.IsPublic
	}
	if p.Creator != nil {
		fields["creator"] = *p.Creator
	}
	if p.Archived != nil {
		fields["archived"] = *p.Archived
	}
	if p.Deleted != nil {
		fields["deleted"] = *p.Deleted
	}

	coop, err := h.cooperatives.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	respondData(c, http.StatusOK, coop)
}

func (h *CooperativeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.cooperatives.SoftDelete(c.Request.Context(), id, false); err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	respondMessage(c, http.StatusOK, "Cooperative deleted successfully")
}

// Members lists users whose memberOf references this cooperative.
func (h *CooperativeHandler) Members(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.cooperatives.FindByID(c.Request.Context(), id, false, false); err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	page, err := repository.CooperativeMembers(c.Request.Context(), h.db, id, q.options(nil))
	if err != nil {
		respondRepoError(c, err, "cooperative member")
		return
	}
	respondPage(c, page)
}

// Contributions lists contributions scoped to this cooperative.
func (h *CooperativeHandler) Contributions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.cooperatives.FindByID(c.Request.Context(), id, false, false); err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	page, err := h.contributions.List(c.Request.Context(), q.options(map[string]any{"cooperative_id": id}, "User"))
	if err != nil {
		respondRepoError(c, err, "contribution")
		return
	}
	respondPage(c, page)
}

// Loans lists loans scoped to this cooperative.
func (h *CooperativeHandler) Loans(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.cooperatives.FindByID(c.Request.Context(), id, false, false); err != nil {
		respondRepoError(c, err, "cooperative")
		return
	}
	page, err := h.loans.List(c.Request.Context(), q.options(map[string]any{"cooperative_id": id}, "Beneficiary"))
	if err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	respondPage(c, page)
}
