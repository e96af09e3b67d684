package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kmuchiri/jikoni-orders/services"
	"github.com/kmuchiri/jikoni-orders/utils"
)

type AdminController struct {
	Gate *services.AuthGate
}

func NewAdminController(gate *services.AuthGate) *AdminController {
	return &AdminController{Gate: gate}
}

// Login exchanges the shared admin secret for a session token.
func (ac *AdminController) Login(c *gin.Context) {
	var body struct {
		Secret string `json:"secret"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !ac.Gate.Verify(body.Secret) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("incorrect admin password"))
		return
	}

	token, err := utils.GenerateAdminToken()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

// Logout revokes the current session token.
func (ac *AdminController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token != "" {
		utils.BlacklistToken(token)
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}
