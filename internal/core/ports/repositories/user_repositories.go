package repositories

import (
	"context"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
)

// UserRoleReader defines read operations for role assignments
type UserRoleReader interface {
	// FindUserRole retrieves the role assigned to a user. It returns apperrors.ErrNotFound
	// when the user has no assignment.
	FindUserRole(ctx context.Context, userID string) (*domain.UserRoleAssignment, error)
}

// UserRoleWriter defines write operations for role assignments
type UserRoleWriter interface {
	// SaveUserRole creates or replaces the role assigned to a user.
	SaveUserRole(ctx context.Context, assignment domain.UserRoleAssignment) error
}

// UserRoleRepositoryFacade combines all role repository interfaces
type UserRoleRepositoryFacade interface {
	UserRoleReader
	UserRoleWriter
}
