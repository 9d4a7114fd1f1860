package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
)

// DefaultRole is granted to authenticated users with no stored assignment.
const DefaultRole = domain.RoleViewer

// RoleService resolves and assigns finance roles.
type RoleService struct {
	BaseService
	roleRepo portsrepo.UserRoleRepositoryFacade
	now      func() time.Time
}

// NewRoleService creates a new RoleService. The service authorizes role assignment
// against itself.
func NewRoleService(roleRepo portsrepo.UserRoleRepositoryFacade) *RoleService {
	svc := &RoleService{roleRepo: roleRepo, now: time.Now}
	svc.RoleAuthorizer = svc
	return svc
}

// Ensure RoleService implements the RoleSvcFacade interface
var _ portssvc.RoleSvcFacade = (*RoleService)(nil)

// GetUserRole returns the stored role of userID, or DefaultRole when none is stored.
func (s *RoleService) GetUserRole(ctx context.Context, userID string) (domain.UserRole, error) {
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	assignment, err := s.roleRepo.FindUserRole(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return DefaultRole, nil
		}
		s.LogError(ctx, err, "Failed to look up user role", slog.String("user_id", userID))
		return "", fmt.Errorf("failed to look up role for user %s: %w", userID, err)
	}
	if !assignment.Role.IsValid() {
		s.LogInfo(ctx, "Stored role is not recognised, falling back to default",
			slog.String("user_id", userID),
			slog.String("stored_role", string(assignment.Role)))
		return DefaultRole, nil
	}
	return assignment.Role, nil
}

// AuthorizeUserAction checks that userID holds requiredRole or a role above it.
// Returns apperrors.ErrUnauthorized without a user and apperrors.ErrForbidden when the
// role is too low.
func (s *RoleService) AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.UserRole) error {
	role, err := s.GetUserRole(ctx, userID)
	if err != nil {
		return err
	}
	if !role.Satisfies(requiredRole) {
		s.GetLogger(ctx).Warn("Authorization failed: insufficient role",
			slog.String("user_id", userID),
			slog.String("role", string(role)),
			slog.String("required_role", string(requiredRole)))
		return fmt.Errorf("role %s cannot perform an action requiring %s: %w", role, requiredRole, apperrors.ErrForbidden)
	}
	return nil
}

// AssignRole sets the role of targetUserID. The acting user must be an admin.
func (s *RoleService) AssignRole(ctx context.Context, actingUserID, targetUserID string, role domain.UserRole) (*domain.UserRoleAssignment, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if targetUserID == "" {
		return nil, fmt.Errorf("target user id is required: %w", apperrors.ErrValidation)
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, apperrors.ErrValidation)
	}

	assignment := domain.UserRoleAssignment{
		UserID:     targetUserID,
		Role:       role,
		AssignedBy: actingUserID,
		AssignedAt: s.now(),
	}
	if err := s.roleRepo.SaveUserRole(ctx, assignment); err != nil {
		s.LogError(ctx, err, "Failed to save role assignment",
			slog.String("target_user_id", targetUserID),
			slog.String("role", string(role)))
		return nil, fmt.Errorf("failed to assign role to user %s: %w", targetUserID, err)
	}

	s.LogInfo(ctx, "Role assigned",
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)),
		slog.String("assigned_by", actingUserID))
	return &assignment, nil
}
