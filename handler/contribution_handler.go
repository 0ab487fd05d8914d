package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coopsave/entity"
	"coopsave/repository"
)

type ContributionHandler struct {
	contributions *repository.Repository[entity.Contribution]
}

func NewContributionHandler(db *gorm.DB) *ContributionHandler {
	return &ContributionHandler{contributions: repository.New[entity.Contribution](db)}
}

type createContributionPayload struct {
	UserID        uuid.UUID       `json:"userId" binding:"required"`
	CooperativeID uuid.UUID       `json:"cooperativeId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	IsActive      *bool           `json:"isActive"`
	Frequency     string          `json:"frequency" binding:"required"`
	PaymentID     *uuid.UUID      `json:"paymentId"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        entity.Status   `json:"status"`
}

func (h *ContributionHandler) Create(c *gin.Context) {
	var p createContributionPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validAmount(p.Amount) {
		respondError(c, http.StatusBadRequest, "amount must be positive with at most two decimal places")
		return
	}
	if p.Status == "" {
		p.Status = entity.StatusPending
	} else if !p.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	isActive := true
	if p.IsActive != nil {
		isActive = *p.IsActive
	}

	contribution := entity.Contribution{
		Model:         entity.Model{Status: p.Status},
		UserID:        p.UserID,
		CooperativeID: p.CooperativeID,
		Amount:        p.Amount,
		IsActive:      isActive,
		Frequency:     p.Frequency,
		PaymentID:     p.PaymentID,
		PaymentMethod: p.PaymentMethod,
	}
	if err := h.contributions.Create(c.Request.Context(), &contribution); err != nil {
		respondRepoError(c, err, "contribution")
		return
	}
	respondData(c, http.StatusCreated, contribution)
}

type listContributionsQuery struct {
	listQuery
	UserID        *uuid.UUID    `form:"userId"`
	CooperativeID *uuid.UUID    `form:"cooperativeId"`
	Status        entity.Status `form:"status"`
	IsActive      *bool         `form:"isActive"`
}

func (h *ContributionHandler) List(c *gin.Context) {
	var q listContributionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.Status != "" && !q.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	filters := map[string]any{}
	if q.UserID != nil {
		filters["user_id"] = *q.UserID
	}
	if q.CooperativeID != nil {
		filters["cooperative_id"] = *q.CooperativeID
	}
	if q.Status != "" {
		filters["status"] = q.Status
	}
	if q.IsActive != nil {
		filters["is_active"] = *q.IsActive
	}
	page, err := h.contributions.List(c.Request.Context(), q.options(filters, "User", "Cooperative"))
	if err != nil {
		respondRepoError(c, err, "contribution")
		return
	}
	respondPage(c, page)
}

func (h *ContributionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contribution, err := h.contributions.FindByID(c.Request.Context(), id, false, false, "User", "Cooperative")
	if err != nil {
		respondRepoError(c, err, "contribution")
		return
	}
	respondData(c, http.StatusOK, contribution)
}

type updateContributionPayload struct {
	Amount        *decimal.Decimal `json:"amount"`
	IsActive      *bool            `json:"isActive"`
	Frequency     *string          `json:"frequency"`
	PaymentID     *uuid.UUID       `json:"paymentId"`
	PaymentMethod *string          `json:"paymentMethod"`
	Status        *entity.Status   `json:"status"`
	Archived      *bool            `json:"archived"`
	Deleted       *bool            `json:"deleted"`
}

func (h *ContributionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updateContributionPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	if p.Amount != nil {
		if !validAmount(*p.Amount) {
			respondError(c, http.StatusBadRequest, "amount must be positive with at most two decimal places")
			return
		}
		fields["amount"] = *p.Amount
	}
	if p.IsActive != nil {
		fields["is_active"] = *p.IsActive
	}
	if p.Frequency != nil {
		fields["frequency"] = *p.Frequency
	}
	if p.PaymentID != nil {
		fields["payment_id"] = *p.PaymentID
	}
	if p.PaymentMethod != nil {
		fields["payment_method"] = *p.PaymentMethod
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid status value")
			return
		}
		fields["status"] = *p.Status
	}
	if p.Archived != nil {
		fields["archived"] = *p.Archived
	}
	if p.Deleted != nil {
		fields["deleted"] = *p.Deleted
	}

	contribution, err := h.contributions.Update(c.Request.Context(), id, fields, "User", "Cooperative")
	if err != nil {
		respondRepoError(c, err, "contribution")
		return
	}
	respondData(c, http.StatusOK, contribution)
}

func (h *ContributionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contributions.SoftDelete(c.Request.Context(), id, true); err != nil {
		respondRepoError(c, err, "contribution")
		return
	}
	respondMessage(c, http.StatusOK, "Contribution deleted successfully")
}
