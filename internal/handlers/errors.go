package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/middleware"
	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is sent with 503 responses for a busy invoice.
const retryAfterSeconds = "1"

// respondWithError maps a service error onto the HTTP response. Caller errors
// carry the service's message; internal errors carry fallbackMsg only.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var illegal *apperrors.IllegalTransitionError
	switch {
	case errors.As(err, &illegal):
		logger.Warn("Illegal transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"code":    "illegal_transition",
			"from":    illegal.From,
			"role":    illegal.Role,
			"command": illegal.Command,
		})
	case errors.Is(err, apperrors.ErrIllegalTransition):
		logger.Warn("Illegal transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "illegal_transition"})
	case errors.Is(err, apperrors.ErrAmountExceedsBalance):
		logger.Warn("Amount exceeds balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "amount_exceeds_balance"})
	case errors.Is(err, apperrors.ErrMissingRejectionReason):
		logger.Warn("Rejection without reason")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "missing_rejection_reason"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": "not_found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": "forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "duplicate"})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting update", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "conflict"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "validation"})
	case errors.Is(err, apperrors.ErrBusy):
		logger.Warn("Invoice busy", slog.String("error", err.Error()))
		c.Header("Retry-After", retryAfterSeconds)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Invoice is being updated, retry shortly", "code": "busy"})
	case errors.Is(err, apperrors.ErrInvariantViolation):
		logger.Error("Ledger invariant violated", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg, "code": "invariant_violation"})
	case errors.Is(err, apperrors.ErrPersistence):
		logger.Error("Persistence failure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg, "code": "persistence"})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// requireActor fetches the authenticated actor or writes a 401.
func requireActor(c *gin.Context) (actor domain.Actor, ok bool) {
	actor, ok = middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return actor, ok
}
