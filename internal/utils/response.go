package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResponseData is the standard API response wrapper.
type ResponseData struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a 200 response with the given data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Status: "success",
		Data:   data,
	})
}

// Created sends a 201 response with the given data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Status: "success",
		Data:   data,
	})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response with an error message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ResponseData{
		Status:  "error",
		Message: message,
	})
}

// Unauthorized sends a 401 response with an error message.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ResponseData{
		Status:  "error",
		Message: message,
	})
}

// Forbidden sends a 403 response with an error message.
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, ResponseData{
		Status:  "error",
		Message: message,
	})
}

// NotFound sends a 404 response with an error message.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ResponseData{
		Status:  "error",
		Message: message,
	})
}

// InternalServerError sends a 500 response with an error message.
func InternalServerError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ResponseData{
		Status:  "error",
		Message: message,
	})
}
