package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	portsrepo "github.com/ganpathioverseas/erp_finance/internal/core/ports/repositories"
	portssvc "github.com/ganpathioverseas/erp_finance/internal/core/ports/services"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	cache       portsrepo.ReportCache
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer adds the role authorizer dependency
func WithAccountAuthorizer(authorizer portssvc.RoleAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.RoleAuthorizer = authorizer
	}
}

// WithAccountCache invalidates cached statements whenever the chart of accounts changes
func WithAccountCache(cache portsrepo.ReportCache) AccountServiceOption {
	return func(s *accountService) {
		s.cache = cache
	}
}

// WithAccountClock overrides the clock used for audit timestamps
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleAccountant); err != nil {
		s.LogError(ctx, err, "User not authorized to create account", slog.String("user_id", userID))
		return nil, err
	}

	category := domain.ParseAccountCategory(req.Category)
	if category == domain.CategoryUnclassified {
		return nil, fmt.Errorf("unknown account category %q: %w", req.Category, apperrors.ErrValidation)
	}
	subcategory := domain.AccountSubcategory(strings.ToUpper(req.Subcategory))
	if !subcategory.ValidFor(category) {
		return nil, fmt.Errorf("subcategory %s cannot be used on a %s account: %w", subcategory, category, apperrors.ErrValidation)
	}
	activity, err := parseActivityTag(req.CashFlowActivity)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("account code %s is already in use: %w", code, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("code", code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", *req.ParentAccountID))
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("parent account %s does not exist: %w", *req.ParentAccountID, apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
	}

	now := s.now()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		Code:             code,
		Name:             req.Name,
		Category:         category,
		Subcategory:      subcategory,
		ParentAccountID:  emptyToNil(req.ParentAccountID),
		CashFlowActivity: activity,
		Description:      req.Description,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.invalidate(ctx)
	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter, userID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", filter.Limit),
			slog.Int("offset", filter.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for update", slog.String("account_id", accountID))
		}
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.Category != nil {
		category := domain.ParseAccountCategory(*req.Category)
		if category == domain.CategoryUnclassified {
			return nil, fmt.Errorf("unknown account category %q: %w", *req.Category, apperrors.ErrValidation)
		}
		if category != account.Category {
			count, err := s.accountRepo.CountEntriesForAccount(ctx, accountID)
			if err != nil {
				s.LogError(ctx, err, "Failed to count entries for account", slog.String("account_id", accountID))
				return nil, fmt.Errorf("failed to check account usage: %w", err)
			}
			if count > 0 {
				return nil, fmt.Errorf("account %s has %d ledger entries, its category cannot change: %w", account.Code, count, apperrors.ErrConflict)
			}
			account.Category = category
			updated = true
		}
	}
	if req.Subcategory != nil {
		account.Subcategory = domain.AccountSubcategory(strings.ToUpper(*req.Subcategory))
		updated = true
	}
	if !account.Subcategory.ValidFor(account.Category) {
		return nil, fmt.Errorf("subcategory %s cannot be used on a %s account: %w", account.Subcategory, account.Category, apperrors.ErrValidation)
	}
	if req.CashFlowActivity != nil {
		activity, err := parseActivityTag(req.CashFlowActivity)
		if err != nil {
			return nil, err
		}
		account.CashFlowActivity = activity
		updated = true
	}
	if req.ParentAccountID != nil {
		parentID := *req.ParentAccountID
		if parentID == account.AccountID {
			return nil, fmt.Errorf("an account cannot be its own parent: %w", apperrors.ErrValidation)
		}
		if parentID != "" {
			if _, err := s.accountRepo.FindAccountByID(ctx, parentID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("parent account %s does not exist: %w", parentID, apperrors.ErrValidation)
				}
				return nil, fmt.Errorf("invalid parent account: %w", err)
			}
		}
		account.ParentAccountID = emptyToNil(req.ParentAccountID)
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.invalidate(ctx)
	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.LogError(ctx, err, "Failed to invalidate report cache")
	}
}

// parseActivityTag validates an optional cash flow activity tag. An empty string clears it.
func parseActivityTag(raw *string) (*domain.CashFlowActivity, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	activity, ok := domain.ParseCashFlowActivity(*raw)
	if !ok {
		return nil, fmt.Errorf("unknown cash flow activity %q: %w", *raw, apperrors.ErrValidation)
	}
	return &activity, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
