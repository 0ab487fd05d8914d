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

type PaymentHandler struct {
	payments *repository.Repository[entity.Payment]
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{payments: repository.New[entity.Payment](db)}
}

type createPaymentPayload struct {
	PayeeID uuid.UUID       `json:"payeeId" binding:"required"`
	PayerID uuid.UUID       `json:"payerId" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Comment string          `json:"comment" binding:"omitempty,max=500"`
	Status  entity.Status   `json:"status"`
	UserID  *uuid.UUID      `json:"userId"`
}

func (h *PaymentHandler) Create(c *gin.Context) {
	var p createPaymentPayload
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

	payment := entity.Payment{
		Model:   entity.Model{Status: p.Status},
		PayeeID: p.PayeeID,
		PayerID: p.PayerID,
		Amount:  p.Amount,
		Comment: p.Comment,
		UserID:  p.UserID,
	}
	if err := h.payments.Create(c.Request.Context(), &payment); err != nil {
		respondRepoError(c, err, "payment")
		return
	}
	respondData(c, http.StatusCreated, payment)
}

type listPaymentsQuery struct {
	listQuery
	PayeeID *uuid.UUID    `form:"payeeId"`
	PayerID *uuid.UUID    `form:"payerId"`
	Status  entity.Status `form:"status"`
}

func (h *PaymentHandler) List(c *gin.Context) {
	var q listPaymentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.Status != "" && !q.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	filters := map[string]any{}
	if q.PayeeID != nil {
		filters["payee_id"] = *q.PayeeID
	}
	if q.PayerID != nil {
		filters["payer_id"] = *q.PayerID
	}
	if q.Status != "" {
		filters["status"] = q.Status
	}
	page, err := h.payments.List(c.Request.Context(), q.options(filters))
	if err != nil {
		respondRepoError(c, err, "payment")
		return
	}
	respondPage(c, page)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payment, err := h.payments.FindByID(c.Request.Context(), id, false, false, "User")
	if err != nil {
		respondRepoError(c, err, "payment")
		return
	}
	respondData(c, http.StatusOK, payment)
}

type updatePaymentPayload struct {
	Amount   *decimal.Decimal `json:"amount"`
	Comment  *string          `json:"comment" binding:"omitempty,max=500"`
	Status   *entity.Status   `json:"status"`
	UserID   *uuid.UUID       `json:"userId"`
	Archived *bool            `json:"archived"`
	Deleted  *bool            `json:"deleted"`
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updatePaymentPayload
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
	if p.Comment != nil {
		fields["comment"] = *p.Comment
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid status value")
			return
		}
		fields["status"] = *p.Status
	}
	if p.UserID != nil {
		fields["user_id"] = *p.UserID
	}
	if p.Archived != nil {
		fields["archived"] = *p.Archived
	}
	if p.Deleted != nil {
		fields["deleted"] = *p.Deleted
	}

	payment, err := h.payments.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, err, "payment")
		return
	}
	respondData(c, http.StatusOK, payment)
}

// Delete marks the payment deleted and archived, matching the ledger
// convention that settled payment rows leave default listings entirely.
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.payments.SoftDelete(c.Request.Context(), id, true); err != nil {
		respondRepoError(c, err, "payment")
		return
	}
	respondMessage(c, http.StatusOK, "Payment marked as deleted successfully")
}
