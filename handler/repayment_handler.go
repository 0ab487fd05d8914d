package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"coopsave/entity"
	"coopsave/repository"
)

type RepaymentHandler struct {
	repayments *repository.Repository[entity.Repayment]
}

func NewRepaymentHandler(db *gorm.DB) *RepaymentHandler {
	return &RepaymentHandler{repayments: repository.New[entity.Repayment](db)}
}

type createRepaymentPayload struct {
	PayeeID  uuid.UUID       `json:"payeeId" binding:"required"`
	PayerID  uuid.UUID       `json:"payerId" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	DueDate  time.Time       `json:"dueDate" binding:"required"`
	LoanID   *uuid.UUID      `json:"loanId"`
	Status   entity.Status   `json:"status"`
	Payments string          `json:"payments" binding:"omitempty,max=1000"`
	UserID   *uuid.UUID      `json:"userId"`
}

func (h *RepaymentHandler) Create(c *gin.Context) {
	var p createRepaymentPayload
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

	repayment := entity.Repayment{
		Model:    entity.Model{Status: p.Status},
		PayeeID:  p.PayeeID,
		PayerID:  p.PayerID,
		Amount:   p.Amount,
		DueDate:  p.DueDate,
		LoanID:   p.LoanID,
		Payments: p.Payments,
		UserID:   p.UserID,
	}
	if err := h.repayments.Create(c.Request.Context(), &repayment); err != nil {
		respondRepoError(c, err, "repayment")
		return
	}
	respondData(c, http.StatusCreated, repayment)
}

type listRepaymentsQuery struct {
	listQuery
	LoanID  *uuid.UUID    `form:"loanId"`
	PayeeID *uuid.UUID    `form:"payeeId"`
	PayerID *uuid.UUID    `form:"payerId"`
	Status  entity.Status `form:"status"`
}

func (h *RepaymentHandler) List(c *gin.Context) {
	var q listRepaymentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.Status != "" && !q.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	filters := map[string]any{}
	if q.LoanID != nil {
		filters["loan_id"] = *q.LoanID
	}
	if q.PayeeID != nil {
		filters["payee_id"] = *q.PayeeID
	}
	if q.PayerID != nil {
		filters["payer_id"] = *q.PayerID
	}
	if q.Status != "" {
		filters["status"] = q.Status
	}
	page, err := h.repayments.List(c.Request.Context(), q.options(filters, "Loan"))
	if err != nil {
		respondRepoError(c, err, "repayment")
		return
	}
	respondPage(c, page)
}

func (h *RepaymentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	repayment, err := h.repayments.FindByID(c.Request.Context(), id, false, false, "Loan", "User")
	if err != nil {
		respondRepoError(c, err, "repayment")
		return
	}
	respondData(c, http.StatusOK, repayment)
}

type updateRepaymentPayload struct {
	Amount   *decimal.Decimal `json:"amount"`
	DueDate  *time.Time       `json:"dueDate"`
	LoanID   *uuid.UUID       `json:"loanId"`
	Status   *entity.Status   `json:"status"`
	Payments *string          `json:"payments" binding:"omitempty,max=1000"`
	UserID   *uuid.UUID       `json:"userId"`
	Archived *bool            `json:"archived"`
	Deleted  *bool            `json:"deleted"`
}

func (h *RepaymentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updateRepaymentPayload
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
	if p.DueDate != nil {
		fields["due_date"] = *p.DueDate
	}
	if p.LoanID != nil {
		fields["loan_id"] = *p.LoanID
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid status value")
			return
		}
		fields["status"] = *p.Status
	}
	if p.Payments != nil {
		fields["payments"] = *p.Payments
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

	repayment, err := h.repayments.Update(c.Request.Context(), id, fields, "Loan")
	if err != nil {
		respondRepoError(c, err, "repayment")
		return
	}
	respondData(c, http.StatusOK, repayment)
}

func (h *RepaymentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.repayments.SoftDelete(c.Request.Context(), id, false); err != nil {
		respondRepoError(c, err, "repayment")
		return
	}
	respondMessage(c, http.StatusOK, "Repayment deleted successfully")
}
