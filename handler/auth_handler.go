package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coopsave/auth"
	"coopsave/entity"
	"coopsave/repository"
)

type AuthHandler struct {
	users *repository.Repository[entity.User]
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{users: repository.New[entity.User](db)}
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and mints a bearer token carrying the user id
// and scope claims. Credential failures are indistinguishable on the wire.
func (h *AuthHandler) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.users.FindOne(c.Request.Context(), map[string]any{"email": p.Email})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondRepoError(c, err, "user")
		return
	}
	if !auth.CheckPassword(user.Password, p.Password) {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := auth.SignToken(user.ID, user.Scope())
	if err != nil {
		respondRepoError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"version": apiVersion, "data": gin.H{"token": token, "userId": user.ID}})
}
