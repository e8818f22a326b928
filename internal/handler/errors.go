package handler

import (
	"errors"
	"net/http"

	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/ajaymaurya90/ecompointer-backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errorStatuses = []struct {
	kind   error
	status int
	title  string
}{
	{service.ErrConflict, http.StatusConflict, "Conflict"},
	{service.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{service.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{service.ErrNotFound, http.StatusNotFound, "Not found"},
	{service.ErrBadRequest, http.StatusBadRequest, "Bad request"},
}

// errorResponse maps err onto a status and a body that is safe to return
func errorResponse(err error) (int, dto.ErrorResponse) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.kind) {
			return e.status, dto.ErrorResponse{
				Error:   e.title,
				Message: service.Message(err, e.title),
			}
		}
	}

	return http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Internal server error",
		Message: "Something went wrong, please try again later",
	}
}

func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(status, body)
}

func abortValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}
