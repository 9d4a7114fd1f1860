package services

import (
	"context"
	"log/slog"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	RoleAuthorizer portssvc.RoleAuthorizerSvc
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

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user holds at least requiredRole
func (s *BaseService) AuthorizeUser(ctx context.Context, userID string, requiredRole domain.UserRole) error {
	if s.RoleAuthorizer != nil {
		return s.RoleAuthorizer.AuthorizeUserAction(ctx, userID, requiredRole)
	}
	s.LogDebug(ctx, "No role authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("required_role", string(requiredRole)))
	return nil
}
