package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/SscSPs/vendor_invoicing/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a caller-correctable failure
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// RequireRole checks that the actor holds one of the allowed roles
func (s *BaseService) RequireRole(ctx context.Context, actor domain.Actor, allowed ...domain.Role) error {
	for _, r := range allowed {
		if actor.Role == r {
			return nil
		}
	}
	err := fmt.Errorf("%w: role %q may not perform this action", apperrors.ErrForbidden, actor.Role)
	s.LogWarn(ctx, err, "Role check failed", slog.String("user_id", actor.UserID), slog.String("role", string(actor.Role)))
	return err
}

// canView reports whether actor may read inv. Vendors only see their own invoices.
func canView(actor domain.Actor, inv *domain.Invoice) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleAccountant:
		return true
	case domain.RoleVendor:
		return inv.VendorID == actor.UserID
	default:
		return false
	}
}
