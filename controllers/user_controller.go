package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/food-catalog/services"
)

type UserController struct {
	Svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Svc: svc}
}

// Me returns the admin the bearer token belongs to. A token for a deleted
// account is treated as unauthenticated.
func (h *UserController) Me(c *gin.Context) {
	userID, ok := userIDFromCtx(c)
	if !ok {
		respondError(c, &services.UnauthorizedError{Reason: "no user on context"})
		return
	}
	user, err := h.Svc.FindByID(c.Request.Context(), userID)
	if err != nil {
		var nf *services.NotFoundError
		if errors.As(err, &nf) {
			err = &services.UnauthorizedError{Reason: "account no longer exists"}
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
