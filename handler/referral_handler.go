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

type ReferralHandler struct {
	referrals *repository.Repository[entity.Referral]
	users     *repository.Repository[entity.User]
}

func NewReferralHandler(db *gorm.DB) *ReferralHandler {
	return &ReferralHandler{
		referrals: repository.New[entity.Referral](db),
		users:     repository.New[entity.User](db),
	}
}

type createReferralPayload struct {
	UserID      uuid.UUID       `json:"userId" binding:"required"`
	RefreeEmail string          `json:"refreeEmail" binding:"required,email"`
	BonusAmount decimal.Decimal `json:"bonusAmount" binding:"required"`
	Status      entity.Status   `json:"status"`
}

func (h *ReferralHandler) Create(c *gin.Context) {
	var p createReferralPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validAmount(p.BonusAmount) {
		respondError(c, http.StatusBadRequest, "bonusAmount must be positive with at most two decimal places")
		return
	}
	if p.Status == "" {
		p.Status = entity.StatusPending
	} else if !p.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}

	referral := entity.Referral{
		Model:       entity.Model{Status: p.Status},
		UserID:      p.UserID,
		RefreeEmail: p.RefreeEmail,
		BonusAmount: p.BonusAmount,
	}
	if err := h.referrals.Create(c.Request.Context(), &referral); err != nil {
		respondRepoError(c, err, "referral")
		return
	}
	respondData(c, http.StatusCreated, referral)
}

type listReferralsQuery struct {
	listQuery
	UserID *uuid.UUID    `form:"userId"`
	Status entity.Status `form:"status"`
}

func (h *ReferralHandler) List(c *gin.Context) {
	var q listReferralsQuery
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
	if q.Status != "" {
		filters["status"] = q.Status
	}
	page, err := h.referrals.List(c.Request.Context(), q.options(filters, "User"))
	if err != nil {
		respondRepoError(c, err, "referral")
		return
	}
	respondPage(c, page)
}

func (h *ReferralHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	referral, err := h.referrals.FindByID(c.Request.Context(), id, false, false, "User")
	if err != nil {
		respondRepoError(c, err, "referral")
		return
	}
	respondData(c, http.StatusOK, referral)
}

type updateReferralPayload struct {
	RefreeEmail *string          `json:"refreeEmail" binding:"omitempty,email"`
	BonusAmount *decimal.Decimal `json:"bonusAmount"`
	Status      *entity.Status   `json:"status"`
	Archived    *bool            `json:"archived"`
	Deleted     *bool            `json:"deleted"`
}

func (h *ReferralHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updateReferralPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	if p.RefreeEmail != nil {
		fields["refree_email"] = *p.RefreeEmail
	}
	if p.BonusAmount != nil {
		if !validAmount(*p.BonusAmount) {
			respondError(c, http.StatusBadRequest, "bonusAmount must be positive with at most two decimal places")
			return
		}
		fields["bonus_amount"] = *p.BonusAmount
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

	referral, err := h.referrals.Update(c.Request.Context(), id, fields, "User")
	if err != nil {
		respondRepoError(c, err, "referral")
		return
	}
	respondData(c, http.StatusOK, referral)
}

func (h *ReferralHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.referrals.SoftDelete(c.Request.Context(), id, false); err != nil {
		respondRepoError(c, err, "referral")
		return
	}
	respondMessage(c, http.StatusOK, "Referral deleted successfully")
}

// ForUser lists referrals created by one user.
func (h *ReferralHandler) ForUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.users.FindByID(c.Request.Context(), id, false, false); err != nil {
		respondRepoError(c, err, "user")
		return
	}
	page, err := h.referrals.List(c.Request.Context(), q.options(map[string]any{"user_id": id}))
	if err != nil {
		respondRepoError(c, err, "referral")
		return
	}
	respondPage(c, page)
}
