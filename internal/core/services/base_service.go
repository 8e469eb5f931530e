package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/middleware"
	"github.com/SscSPs/family_treasury/internal/platform/metrics"
	"github.com/SscSPs/family_treasury/internal/utils"
)

var errNoAuthorizer = fmt.Errorf("%w: no pool authorizer configured", apperrors.ErrNotAMember)

// BaseService provides common functionality for all services
type BaseService struct {
	PoolAuthorizer portssvc.PoolAuthorizerSvc
	Metrics        *metrics.Metrics
	Analytics      *utils.PosthogClientWrapper
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeMember checks that memberID belongs to poolID.
func (s *BaseService) AuthorizeMember(ctx context.Context, memberID, poolID string) error {
	if s.PoolAuthorizer == nil {
		s.LogWarn(ctx, "No pool authorizer configured, denying access",
			slog.String("member_id", memberID),
			slog.String("pool_id", poolID))
		return errNoAuthorizer
	}
	return s.PoolAuthorizer.AuthorizeMember(ctx, memberID, poolID)
}

// Track sends a product event when analytics is configured.
func (s *BaseService) Track(memberID, event string, props map[string]any) {
	s.Analytics.Enqueue(memberID, event, props)
}
