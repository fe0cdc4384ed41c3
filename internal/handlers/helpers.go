package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/logger"
	"emitrack/internal/uuid"
)

// ErrorResponse documents the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseLoanID validates the loan UUID path parameter.
func parseLoanID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid loan ID")
	}
	return id, nil
}

// parseSequence parses the installment sequence number path parameter.
func parseSequence(c *gin.Context) (int, error) {
	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil || seq < 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid sequence number")
	}
	return seq, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
