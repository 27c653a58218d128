// Package httpx writes the {success, data|error} envelope shared by every route.
package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calendario-app/calendario-backend/internal/apperr"
	"github.com/calendario-app/calendario-backend/internal/logging"
)

// OK writes a successful envelope.
func OK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// Fail translates err into an error envelope. Unexpected errors are logged
// with full detail and answered with a generic message.
func Fail(c *gin.Context, operation string, err error) {
	logger := logging.FromContext(c.Request.Context())
	switch apperr.KindOf(err) {
	case apperr.KindUnexpected:
		logger.LogError(operation, err)
	case apperr.KindUnauthenticated:
		logger.LogWarnf(operation, "unauthenticated: %v", err)
	}
	c.JSON(apperr.Status(err), gin.H{"success": false, "error": apperr.PublicMessage(err)})
}

// Abort is Fail for middleware: it also stops the handler chain.
func Abort(c *gin.Context, operation string, err error) {
	Fail(c, operation, err)
	c.Abort()
}

// BindJSON decodes the request body, mapping decode failures to a validation error.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return &apperr.Error{Kind: apperr.KindValidation, Message: "Cuerpo de la solicitud inválido", Err: err}
	}
	return nil
}

// Created is OK with 201.
func Created(c *gin.Context, data any) {
	OK(c, http.StatusCreated, data)
}

// Log records err for operation without writing a response.
func Log(c *gin.Context, operation string, err error) {
	logging.FromContext(c.Request.Context()).LogError(operation, err)
}
