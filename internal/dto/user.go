package dto

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
)

// AssignRoleRequest sets the finance role of a user.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN ACCOUNTANT VIEWER"`
}

// UserRoleResponse defines the data returned for a role assignment.
type UserRoleResponse struct {
	UserID     string    `json:"userID"`
	Role       string    `json:"role"`
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}

// ToUserRoleResponse converts a domain.UserRoleAssignment to its DTO.
func ToUserRoleResponse(a *domain.UserRoleAssignment) UserRoleResponse {
	return UserRoleResponse{
		UserID:     a.UserID,
		Role:       string(a.Role),
		AssignedBy: a.AssignedBy,
		AssignedAt: a.AssignedAt,
	}
}
