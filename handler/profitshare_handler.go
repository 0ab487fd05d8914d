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

type ProfitShareHandler struct {
	db           *gorm.DB
	profitShares *repository.Repository[entity.ProfitShare]
	cooperatives *repository.Repository[entity.Cooperative]
}

func NewProfitShareHandler(db *gorm.DB) *ProfitShareHandler {
	return &ProfitShareHandler{
		db:           db,
		profitShares: repository.New[entity.ProfitShare](db),
		cooperatives: repository.New[entity.Cooperative](db),
	}
}

type createProfitSharePayload struct {
	Period        time.Time       `json:"period" binding:"required"`
	UserID        uuid.UUID       `json:"userId" binding:"required"`
	CooperativeID uuid.UUID       `json:"cooperativeId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Comment       string          `json:"comment" binding:"omitempty,max=500"`
	Status        entity.Status   `json:"status"`
}

// Create persists a profit share. The write and the relational includes of the
// response come from a single transaction so the returned record cannot be
// inconsistent with what was written.
func (h *ProfitShareHandler) Create(c *gin.Context) {
	var p createProfitSharePayload
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

	share := entity.ProfitShare{
		Model:         entity.Model{Status: p.Status},
		Period:        p.Period,
		UserID:        p.UserID,
		CooperativeID: p.CooperativeID,
		Amount:        p.Amount,
		Comment:       p.Comment,
	}
	var created *entity.ProfitShare
	err := h.db.Transaction(func(tx *gorm.DB) error {
		repo := h.profitShares.WithTx(tx)
		if err := repo.Create(c.Request.Context(), &share); err != nil {
			return err
		}
		loaded, err := repo.FindByID(c.Request.Context(), share.ID, true, true, "User", "Cooperative")
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		respondRepoError(c, err, "profit share")
		return
	}
	respondData(c, http.StatusCreated, created)
}

type listProfitSharesQuery struct {
	listQuery
	UserID        *uuid.UUID    `form:"userId"`
	CooperativeID *uuid.UUID    `form:"cooperativeId"`
	Status        entity.Status `form:"status"`
}

func (h *ProfitShareHandler) List(c *gin.Context) {
	var q listProfitSharesQuery
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
	page, err := h.profitShares.List(c.Request.Context(), q.options(filters, "User", "Cooperative"))
	if err != nil {
		respondRepoError(c, err, "profit share")
		return
	}
	respondPage(c, page)
}

func (h *ProfitShareHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	share, err := h.profitShares.FindByID(c.Request.Context(), id, false, false, "User", "Cooperative")
	if err != nil {
		respondRepoError(c, err, "profit share")
		return
	}
	respondData(c, http.StatusOK, share)
}

type updateProfitSharePayload struct {
	Period   *time.Time       `json:"period"`
	Amount   *decimal.Decimal `json:"amount"`
	Comment  *string          `json:"comment" binding:"omitempty,max=500"`
	Status   *entity.Status   `json:"status"`
	Archived *bool            `json:"archived"`
	Deleted  *bool            `json:"deleted"`
}

func (h *ProfitShareHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updateProfitSharePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	if p.Period != nil {
		fields["period"] = *p.Period
	}
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
	if p.Archived != nil {
		fields["archived"] = *p.Archived
	}
	if p.Deleted != nil {
		fields["deleted"] = *p.Deleted
	}

	var updated *entity.ProfitShare
	err := h.db.Transaction(func(tx *gorm.DB) error {
		share, err := h.profitShares.WithTx(tx).Update(c.Request.Context(), id, fields, "User", "Cooperative")
		if err != nil {
			return err
		}
		updated = share
		return nil
	})
	if err != nil {
		respondRepoError(c, err, "profit share")
		return
	}
	respondData(c, http.StatusOK, updated)
}

func (h *ProfitShareHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.profitShares.SoftDelete(c.Request.Context(), id, false); err != nil {
		respondRepoError(c, err, "profit share")
		return
	}
	respondMessage(c, http.StatusOK, "Profit share deleted successfully")
}

// ForCooperative lists profit shares scoped to one cooperative.
func (h *ProfitShareHandler) ForCooperative(c *gin.Context) {
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
	page, err := h.profitShares.List(c.Request.Context(), q.options(map[string]any{"cooperative_id": id}, "User"))
	if err != nil {
		respondRepoError(c, err, "profit share")
		return
	}
	respondPage(c, page)
}
