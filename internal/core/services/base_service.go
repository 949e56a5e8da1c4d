package services

import (
	"context"
	"log/slog"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
)

// BaseService provides common functionality for all services.
type BaseService struct{}

// GetLogger gets the request-scoped logger from context.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message.
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message.
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// scopeFor derives the ledger visibility scope from the acting user:
// family-wide when they belong to a family, otherwise their own rows only.
func scopeFor(actor *domain.User) portsrepo.Scope {
	scope := portsrepo.Scope{UserID: actor.UserID}
	if actor.InFamily() {
		scope.FamilyID = actor.FamilyID
	}
	return scope
}

// requireAyah gates the business ledger to the father role.
func requireAyah(actor *domain.User) error {
	if actor.Role != domain.RoleAyah {
		return apperrors.ErrForbidden
	}
	return nil
}
