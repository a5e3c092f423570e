package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/utils"
)

type AuthController struct {
	Svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Email and password are required.", nil)
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Logged in successfully.", gin.H{
		"token":      token,
		"token_type": "Bearer",
	})
}
