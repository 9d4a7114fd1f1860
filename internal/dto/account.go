package dto

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code             string  `json:"code" binding:"required,max=20"`
	Name             string  `json:"name" binding:"required,max=255"`
	Category         string  `json:"category" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE COST_OF_GOODS_SOLD"`
	Subcategory      string  `json:"subcategory" binding:"omitempty,oneof=CASH CURRENT_ASSET FIXED_ASSET OTHER_ASSET CURRENT_LIABILITY LONG_TERM_LIABILITY OTHER_INCOME OTHER_EXPENSE"`
	ParentAccountID  *string `json:"parentAccountID"`
	CashFlowActivity *string `json:"cashFlowActivity" binding:"omitempty,oneof=OPERATING INVESTING FINANCING"`
	Description      string  `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=255"`
	Category         *string `json:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE COST_OF_GOODS_SOLD"`
	Subcategory      *string `json:"subcategory" binding:"omitempty,oneof=CASH CURRENT_ASSET FIXED_ASSET OTHER_ASSET CURRENT_LIABILITY LONG_TERM_LIABILITY OTHER_INCOME OTHER_EXPENSE"`
	ParentAccountID  *string `json:"parentAccountID"`
	CashFlowActivity *string `json:"cashFlowActivity" binding:"omitempty,oneof=OPERATING INVESTING FINANCING"`
	Description      *string `json:"description"`
	IsActive         *bool   `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string                   `json:"accountID"`
	Code             string                   `json:"code"`
	Name             string                   `json:"name"`
	Category         domain.AccountCategory   `json:"category"`
	Subcategory      string                   `json:"subcategory"`
	ParentAccountID  *string                  `json:"parentAccountID"`
	CashFlowActivity *domain.CashFlowActivity `json:"cashFlowActivity"`
	Description      string                   `json:"description"`
	IsActive         bool                     `json:"isActive"`
	CreatedAt        time.Time                `json:"createdAt"`
	CreatedBy        string                   `json:"createdBy"`
	LastUpdatedAt    time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy    string                   `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Code:             acc.Code,
		Name:             acc.Name,
		Category:         acc.Category,
		Subcategory:      string(acc.Subcategory),
		ParentAccountID:  acc.ParentAccountID,
		CashFlowActivity: acc.CashFlowActivity,
		Description:      acc.Description,
		IsActive:         acc.IsActive,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Category   string `form:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE COST_OF_GOODS_SOLD"`
	ActiveOnly bool   `form:"active_only"`
	Limit      int    `form:"limit,default=100" binding:"min=1,max=500"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
