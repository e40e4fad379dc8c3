package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
)

// Every response carries the {success, message, ...payload} envelope.

func RespondOK(c *gin.Context, message string, payload gin.H) {
	Respond(c, http.StatusOK, message, payload)
}

func Respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func RespondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"success": false, "message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// RespondServiceError maps the service error classes onto the three
// wire classes: not-found, invalid input, everything else.
func RespondServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, message, err)
	case errors.Is(err, services.ErrAlreadySaved):
		RespondError(c, http.StatusConflict, message, err)
	case errors.Is(err, services.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, message, err)
	default:
		RespondError(c, http.StatusInternalServerError, message, err)
	}
}
