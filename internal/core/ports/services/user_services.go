package services

import (
	"context"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
)

// RoleAuthorizerSvc defines operations for role based authorization
type RoleAuthorizerSvc interface {
	// AuthorizeUserAction checks that the user's role satisfies requiredRole.
	AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.UserRole) error
}

// RoleManagerSvc defines operations for reading and assigning roles
type RoleManagerSvc interface {
	// GetUserRole returns the user's role, VIEWER when none was assigned.
	GetUserRole(ctx context.Context, userID string) (domain.UserRole, error)

	// AssignRole sets the role of targetUserID. Only admins may assign roles.
	AssignRole(ctx context.Context, actingUserID, targetUserID string, role domain.UserRole) (*domain.UserRoleAssignment, error)
}

// RoleSvcFacade combines all role service interfaces
type RoleSvcFacade interface {
	RoleAuthorizerSvc
	RoleManagerSvc
}
