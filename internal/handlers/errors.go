package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps a service error to an HTTP status. Unknown errors map to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrNotAMember):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrAlreadyMember),
		errors.Is(err, apperrors.ErrAlreadyVoted),
		errors.Is(err, apperrors.ErrClaimFinalized),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrSettlementFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= http.StatusBadRequest && appErr.Code < 600 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondWithError writes the error body for err. Server side failures are logged with
// the full error and answered with fallback, client errors echo the error text.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
