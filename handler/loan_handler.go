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

var (
	loanAmountMin   = decimal.NewFromInt(100)
	loanAmountMax   = decimal.NewFromInt(1_000_000)
	loanInterestMin = decimal.NewFromInt(1)
	loanInterestMax = decimal.NewFromInt(30)
)

type LoanHandler struct {
	loans      *repository.Repository[entity.Loan]
	repayments *repository.Repository[entity.Repayment]
}

func NewLoanHandler(db *gorm.DB) *LoanHandler {
	return &LoanHandler{
		loans:      repository.New[entity.Loan](db),
		repayments: repository.New[entity.Repayment](db),
	}
}

func validLoanAmount(d decimal.Decimal) bool {
	return validAmount(d) && d.GreaterThanOrEqual(loanAmountMin) && d.LessThanOrEqual(loanAmountMax)
}

func validInterestRate(d decimal.Decimal) bool {
	return validAmount(d) && d.GreaterThanOrEqual(loanInterestMin) && d.LessThanOrEqual(loanInterestMax)
}

type createLoanPayload struct {
	BeneficiaryID   uuid.UUID              `json:"beneficiaryId" binding:"required"`
	CooperativeID   uuid.UUID              `json:"cooperativeId" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Comment         string                 `json:"comment" binding:"omitempty,max=500"`
	Purpose         string                 `json:"purpose" binding:"omitempty,max=200"`
	Status          entity.Status          `json:"status"`
	RepaymentPeriod entity.RepaymentPeriod `json:"repaymentPeriod"`
	Term            string                 `json:"term" binding:"omitempty,max=100"`
	InterestRate    *decimal.Decimal       `json:"interestRate"`
	Guaranteed      bool                   `json:"guaranteed"`
	DueDate         time.Time              `json:"dueDate" binding:"required"`
	Payments        string                 `json:"payments" binding:"omitempty,max=1000"`
	PaymentID       *uuid.UUID             `json:"paymentId"`
}

func (h *LoanHandler) Create(c *gin.Context) {
	var p createLoanPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validLoanAmount(p.Amount) {
		respondError(c, http.StatusBadRequest, "amount must be between 100 and 1000000 with at most two decimal places")
		return
	}
	if p.Status == "" {
		p.Status = entity.StatusPending
	} else if !p.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	if p.RepaymentPeriod != "" && !p.RepaymentPeriod.Valid() {
		respondError(c, http.StatusBadRequest, "invalid repaymentPeriod value")
		return
	}
	if p.InterestRate != nil && !validInterestRate(*p.InterestRate) {
		respondError(c, http.StatusBadRequest, "interestRate must be between 1 and 30")
		return
	}
	if !p.DueDate.After(time.Now()) {
		respondError(c, http.StatusBadRequest, "dueDate must be in the future")
		return
	}

	loan := entity.Loan{
		Model:           entity.Model{Status: p.Status},
		BeneficiaryID:   p.BeneficiaryID,
		CooperativeID:   p.CooperativeID,
		Amount:          p.Amount,
		Comment:         p.Comment,
		Purpose:         p.Purpose,
		RepaymentPeriod: p.RepaymentPeriod,
		Term:            p.Term,
		InterestRate:    p.InterestRate,
		Guaranteed:      p.Guaranteed,
		DueDate:         p.DueDate,
		Payments:        p.Payments,
		PaymentID:       p.PaymentID,
	}
	if err := h.loans.Create(c.Request.Context(), &loan); err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	respondData(c, http.StatusCreated, loan)
}

type listLoansQuery struct {
	listQuery
	BeneficiaryID *uuid.UUID    `form:"beneficiaryId"`
	CooperativeID *uuid.UUID    `form:"cooperativeId"`
	Status        entity.Status `form:"status"`
}

func (h *LoanHandler) List(c *gin.Context) {
	var q listLoansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.Status != "" && !q.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	filters := map[string]any{}
	if q.BeneficiaryID != nil {
		filters["beneficiary_id"] = *q.BeneficiaryID
	}
	if q.CooperativeID != nil {
		filters["cooperative_id"] = *q.CooperativeID
	}
	if q.Status != "" {
		filters["status"] = q.Status
	}
	page, err := h.loans.List(c.Request.Context(), q.options(filters, "Beneficiary", "Cooperative", "Repayments"))
	if err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	respondPage(c, page)
}

func (h *LoanHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	loan, err := h.loans.FindByID(c.Request.Context(), id, false, false, "Beneficiary", "Cooperative", "Repayments")
	if err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	respondData(c, http.StatusOK, loan)
}

type updateLoanPayload struct {
	Amount          *decimal.Decimal        `json:"amount"`
	Comment         *string                 `json:"comment" binding:"omitempty,max=500"`
	Purpose         *string                 `json:"purpose" binding:"omitempty,max=200"`
	Status          *entity.Status          `json:"status"`
	RepaymentPeriod *entity.RepaymentPeriod `json:"repaymentPeriod"`
	Term            *string                 `json:"term" binding:"omitempty,max=100"`
	InterestRate    *decimal.Decimal        `json:"interestRate"`
	Guaranteed      *bool                   `json:"guaranteed"`
	DueDate         *time.Time              `json:"dueDate"`
	Payments        *string                 `json:"payments" binding:"omitempty,max=1000"`
	PaymentID       *uuid.UUID              `json:"paymentId"`
	Archived        *bool                   `json:"archived"`
	Deleted         *bool                   `json:"deleted"`
}

func (h *LoanHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updateLoanPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	if p.Amount != nil {
		if !validLoanAmount(*p.Amount) {
			respondError(c, http.StatusBadRequest, "amount must be between 100 and 1000000 with at most two decimal places")
			return
		}
		fields["amount"] = *p.Amount
	}
	if p.Comment != nil {
		fields["comment"] = *p.Comment
	}
	if p.Purpose != nil {
		fields["purpose"] = *p.Purpose
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid status value")
			return
		}
		fields["status"] = *p.Status
	}
	if p.RepaymentPeriod != nil {
		if !p.RepaymentPeriod.Valid() {
			respondError(c, http.StatusBadRequest, "invalid repaymentPeriod value")
			return
		}
		fields["repayment_period"] = *p.RepaymentPeriod
	}
	if p.Term != nil {
		fields["term"] = *p.Term
	}
	if p.InterestRate != nil {
		if !validInterestRate(*p.InterestRate) {
			respondError(c, http.StatusBadRequest, "interestRate must be between 1 and 30")
			return
		}
		fields["interest_rate"] = *p.InterestRate
	}
	if p.Guaranteed != nil {
		fields["guaranteed"] = *p.Guaranteed
	}
	if p.DueDate != nil {
		if !p.DueDate.After(time.Now()) {
			respondError(c, http.StatusBadRequest, "dueDate must be in the future")
			return
		}
		fields["due_date"] = *p.DueDate
	}
	if p.Payments != nil {
		fields["payments"] = *p.Payments
	}
	if p.PaymentID != nil {
		fields["payment_id"] = *p.PaymentID
	}
	if p.Archived != nil {
		fields["archived"] = *p.Archived
	}
	if p.Deleted != nil {
		fields["deleted"] = *p.Deleted
	}

	loan, err := h.loans.Update(c.Request.Context(), id, fields, "Beneficiary", "Cooperative")
	if err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	respondData(c, http.StatusOK, loan)
}

// Delete soft-deletes a loan. A loan with dependent repayments cannot be
// deleted; the row is left untouched and the caller gets a 400.
func (h *LoanHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.loans.FindByID(c.Request.Context(), id, true, false); err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	dependents, err := h.repayments.Count(c.Request.Context(), map[string]any{"loan_id": id})
	if err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	if dependents > 0 {
		respondError(c, http.StatusBadRequest, "Cannot delete loan with existing repayments")
		return
	}
	if err := h.loans.SoftDelete(c.Request.Context(), id, false); err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	respondMessage(c, http.StatusOK, "Loan deleted successfully")
}

// Repayments lists repayments scoped to this loan.
func (h *LoanHandler) Repayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.loans.FindByID(c.Request.Context(), id, false, false); err != nil {
		respondRepoError(c, err, "loan")
		return
	}
	page, err := h.repayments.List(c.Request.Context(), q.options(map[string]any{"loan_id": id}, "User"))
	if err != nil {
		respondRepoError(c, err, "repayment")
		return
	}
	respondPage(c, page)
}
