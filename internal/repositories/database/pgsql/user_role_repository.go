package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	"github.com/ganpathioverseas/erp_finance/internal/models"
	"github.com/ganpathioverseas/erp_finance/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRoleRepository struct {
	BaseRepository
}

// newPgxUserRoleRepository creates a new repository for finance role assignments.
func newPgxUserRoleRepository(pool *pgxpool.Pool) portsrepo.UserRoleRepositoryFacade {
	return &PgxUserRoleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRoleRepositoryFacade = (*PgxUserRoleRepository)(nil)

// FindUserRole retrieves the role assigned to a user.
func (r *PgxUserRoleRepository) FindUserRole(ctx context.Context, userID string) (*domain.UserRoleAssignment, error) {
	query := `SELECT user_id, role, assigned_by, assigned_at FROM user_roles WHERE user_id = $1;`

	var m models.UserRole
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.Role, &m.AssignedBy, &m.AssignedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role for user %s: %w", userID, err)
	}
	assignment := mapping.ToDomainUserRole(m)
	return &assignment, nil
}

// SaveUserRole creates or replaces the role assigned to a user.
func (r *PgxUserRoleRepository) SaveUserRole(ctx context.Context, assignment domain.UserRoleAssignment) error {
	query := `
		INSERT INTO user_roles (user_id, role, assigned_by, assigned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET role = EXCLUDED.role, assigned_by = EXCLUDED.assigned_by, assigned_at = EXCLUDED.assigned_at;
	`
	_, err := r.Pool.Exec(ctx, query, assignment.UserID, string(assignment.Role), assignment.AssignedBy, assignment.AssignedAt)
	if err != nil {
		return fmt.Errorf("failed to save role for user %s: %w", assignment.UserID, err)
	}
	return nil
}
