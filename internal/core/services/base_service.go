package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schoolfees/school_fees_app/internal/apperrors"
	"github.com/schoolfees/school_fees_app/internal/core/domain"
	"github.com/schoolfees/school_fees_app/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning message with consistent formatting.
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireAdmin rejects non-administrator actors with ErrForbidden.
func (s *BaseService) RequireAdmin(ctx context.Context, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	s.LogWarn(ctx, "Admin-only operation attempted by non-admin",
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)))
	return fmt.Errorf("%w: administrator role required", apperrors.ErrForbidden)
}
