package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/appdotbuilder/food-catalog/services"
	"github.com/appdotbuilder/food-catalog/utils"
)

// respondError maps service error kinds onto HTTP statuses. Anything it does
// not recognise is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var (
		verr     *services.ValidationError
		notFound *services.NotFoundError
		conflict *services.DependencyConflictError
		unauth   *services.UnauthorizedError
	)
	switch {
	case errors.As(err, &verr):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "The given data was invalid.", verr.Fields)
	case errors.As(err, &notFound):
		utils.ErrorResponse(c, http.StatusNotFound, fmt.Sprintf("The requested %s was not found.", notFound.Resource), nil)
	case errors.As(err, &conflict):
		utils.ErrorResponse(c, http.StatusConflict,
			fmt.Sprintf("Cannot delete %s that has %d food item(s). Move or delete them first.", conflict.Resource, conflict.Dependents),
			map[string]string{"food_items_count": strconv.FormatInt(conflict.Dependents, 10)})
	case errors.As(err, &unauth):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthenticated.", nil)
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Something went wrong.", nil)
	}
}

// readFields decodes a JSON object body keeping numbers as json.Number so the
// validation layer sees the exact digits the client sent.
func readFields(c *gin.Context) (map[string]any, bool) {
	raw := map[string]any{}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return raw, true
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Request body must be a JSON object.", nil)
		return nil, false
	}
	return raw, true
}

// pathID parses :id; anything that is not a positive integer cannot exist.
func pathID(c *gin.Context, resource string) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondError(c, &services.NotFoundError{Resource: resource, Key: raw})
		return 0, false
	}
	return uint(id), true
}
