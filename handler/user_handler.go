package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coopsave/auth"
	"coopsave/entity"
	"coopsave/repository"
)

type UserHandler struct {
	users *repository.Repository[entity.User]
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{users: repository.New[entity.User](db)}
}

type createUserPayload struct {
	FirstName       string              `json:"firstName" binding:"required"`
	LastName        string              `json:"lastName" binding:"required"`
	Password        string              `json:"password" binding:"required,min=6"`
	Address         entity.Address      `json:"address"`
	Email           string              `json:"email" binding:"required,email"`
	Phone           string              `json:"phone" binding:"required"`
	ProfileImg      string              `json:"profileImg"`
	MemberOf        []entity.Membership `json:"memberOf"`
	Status          entity.Status       `json:"status"`
	Verified        bool                `json:"verified"`
	TermAccepted    *bool               `json:"termAccepted" binding:"required"`
	AuthenticatorID string              `json:"authenticatorId"`
	BankInfo        entity.BankInfo     `json:"bankInfo"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var p createUserPayload
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
	for _, m := range p.MemberOf {
		if !m.Role.Valid() {
			respondError(c, http.StatusBadRequest, "invalid membership role: "+string(m.Role))
			return
		}
	}
	hashed, err := auth.HashPassword(p.Password)
	if err != nil {
		respondRepoError(c, err, "user")
		return
	}

	user := entity.User{
		Model:           entity.Model{Status: p.Status},
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Password:        hashed,
		Email:           p.Email,
		Phone:           p.Phone,
		ProfileImg:      p.ProfileImg,
		Verified:        p.Verified,
		TermAccepted:    *p.TermAccepted,
		AuthenticatorID: p.AuthenticatorID,
		Address:         p.Address,
		BankInfo:        p.BankInfo,
		MemberOf:        p.MemberOf,
	}
	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		respondRepoError(c, err, "user")
		return
	}
	respondData(c, http.StatusCreated, user)
}

type listUsersQuery struct {
	listQuery
	Status   entity.Status `form:"status"`
	Verified *bool         `form:"verified"`
	Email    string        `form:"email"`
}

func (h *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if q.Status != "" && !q.Status.Valid() {
		respondError(c, http.StatusBadRequest, "invalid status value")
		return
	}
	filters := map[string]any{}
	if q.Status != "" {
		filters["status"] = q.Status
	}
	if q.Verified != nil {
		filters["verified"] = *q.Verified
	}
	if q.Email != "" {
		filters["email"] = q.Email
	}
	page, err := h.users.List(c.Request.Context(), q.options(filters))
	if err != nil {
		respondRepoError(c, err, "user")
		return
	}
	respondPage(c, page)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.FindByID(c.Request.Context(), id, false, false,
		"Contributions", "Loans", "Payments", "Repayments", "Referrals", "ProfitShares")
	if err != nil {
		respondRepoError(c, err, "user")
		return
	}
	respondData(c, http.StatusOK, user)
}

type updateUserPayload struct {
	FirstName       *string              `json:"firstName"`
	LastName        *string              `json:"lastName"`
	Password        *string              `json:"password" binding:"omitempty,min=6"`
	Address         *entity.Address      `json:"address"`
	Email           *string              `json:"email" binding:"omitempty,email"`
	Phone           *string              `json:"phone"`
	ProfileImg      *string              `json:"profileImg"`
	MemberOf        *[]entity.Membership `json:"memberOf"`
	Status          *entity.Status       `json:"status"`
	Verified        *bool                `json:"verified"`
	TermAccepted    *bool                `json:"termAccepted"`
	AuthenticatorID *string              `json:"authenticatorId"`
	BankInfo        *entity.BankInfo     `json:"bankInfo"`
	Archived        *bool                `json:"archived"`
	Deleted         *bool                `json:"deleted"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p updateUserPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]any{}
	if p.FirstName != nil {
		fields["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = *p.LastName
	}
	if p.Password != nil {
		hashed, err := auth.HashPassword(*p.Password)
		if err != nil {
			respondRepoError(c, err, "user")
			return
		}
		fields["password"] = hashed
	}
	if p.Address != nil {
		fields["address"] = *p.Address
	}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	if p.ProfileImg != nil {
		fields["profile_img"] = *p.ProfileImg
	}
	if p.MemberOf != nil {
		for _, m := range *p.MemberOf {
			if !m.Role.Valid() {
				respondError(c, http.StatusBadRequest, "invalid membership role: "+string(m.Role))
				return
			}
		}
		fields["member_of"] = *p.MemberOf
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
	if p.TermAccepted != nil {
		fields["term_accepted"] = *p.TermAccepted
	}
	if p.AuthenticatorID != nil {
		fields["authenticator_id"] = *p.AuthenticatorID
	}
	if p.BankInfo != nil {
		fields["bank_info"] = *p.BankInfo
	}
	if p.Archived != nil {
		fields["archived"] = *p.Archived
	}
	if p.Deleted != nil {
		fields["deleted"] = *p.Deleted
	}

	user, err := h.users.Update(c.Request.Context(), id, fields)
	if err != nil {
		respondRepoError(c, err, "user")
		return
	}
	respondData(c, http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.users.SoftDelete(c.Request.Context(), id, false); err != nil {
		respondRepoError(c, err, "user")
		return
	}
	respondMessage(c, http.StatusOK, "User deleted successfully")
}
