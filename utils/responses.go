package utils

import "github.com/gin-gonic/gin"

type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}
