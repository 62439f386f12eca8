// Package auth implements the single credential-check boundary. Every other
// route is deliberately unauthenticated; role gates only UI routing.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentflow-backend/internal/store"
	"talentflow-backend/internal/utilities"
)

// LoginHandler holds the store reference for handler methods.
type LoginHandler struct {
	Store *store.Store
}

// NewLoginHandler creates a new instance of LoginHandler.
func NewLoginHandler(st *store.Store) *LoginHandler {
	return &LoginHandler{Store: st}
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login matches a user by exact (email, password) and returns the record
// including its role. Credentials are plaintext against this simulated
// boundary only. Login takes the injector latency but never its fault: there
// is no state side effect to roll back.
func (lh *LoginHandler) Login(c *gin.Context) {
	var info loginInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email and password must be provided",
		})
		return
	}

	user, ok := lh.Store.UserByCredentials(info.Email, info.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
}
