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
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/ganpathioverseas/erp_finance/internal/utils/accounting"
	"github.com/google/uuid"
)

// ledgerService records ledger entries and moves them through approval.
type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
	cache       portsrepo.ReportCache
	now         func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerAuthorizer adds the role authorizer dependency
func WithLedgerAuthorizer(authorizer portssvc.RoleAuthorizerSvc) LedgerServiceOption {
	return func(s *ledgerService) {
		s.RoleAuthorizer = authorizer
	}
}

// WithLedgerCache invalidates cached statements when entries change status
func WithLedgerCache(cache portsrepo.ReportCache) LedgerServiceOption {
	return func(s *ledgerService) {
		s.cache = cache
	}
}

// WithLedgerClock overrides the clock used for audit timestamps
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new ledger entry service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleAccountant); err != nil {
		s.LogError(ctx, err, "User not authorized to record ledger entries", slog.String("user_id", userID))
		return nil, err
	}

	entryDate, err := time.Parse(dto.DateLayout, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("entry date %q is not a YYYY-MM-DD date: %w", req.EntryDate, apperrors.ErrValidation)
	}
	refType := domain.ReferenceType(req.ReferenceType)
	if !refType.IsValid() {
		return nil, fmt.Errorf("unknown reference type %q: %w", req.ReferenceType, apperrors.ErrValidation)
	}

	now := s.now()
	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		EntryDate:     entryDate,
		ReferenceType: refType,
		ReferenceID:   emptyToNil(req.ReferenceID),
		AccountID:     emptyToNil(req.AccountID),
		DebitAmount:   req.DebitAmount,
		CreditAmount:  req.CreditAmount,
		TaxAmount:     req.TaxAmount,
		TDSAmount:     req.TDSAmount,
		Description:   req.Description,
		Status:        domain.EntryPending,
		PartyID:       emptyToNil(req.PartyID),
		JobID:         emptyToNil(req.JobID),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := accounting.ValidateEntryAmounts(entry); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	if entry.AccountID != nil {
		account, err := s.accountRepo.FindAccountByID(ctx, *entry.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("account %s does not exist: %w", *entry.AccountID, apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to find account for ledger entry", slog.String("account_id", *entry.AccountID))
			return nil, fmt.Errorf("failed to check account: %w", err)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("account %s is inactive: %w", account.Code, apperrors.ErrValidation)
		}
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save ledger entry", slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}

	// New entries are PENDING and therefore invisible to statements, so the cache stays valid.
	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("reference_type", string(entry.ReferenceType)),
		slog.String("amount", entry.Amount().String()))
	return &entry, nil
}

func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, err
	}
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, params dto.ListLedgerEntriesParams, userID string) ([]domain.LedgerEntry, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleViewer); err != nil {
		return nil, nil, err
	}

	filter, err := entryFilterFromParams(params)
	if err != nil {
		return nil, nil, err
	}
	entries, next, err := s.ledgerRepo.ListEntries(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.Int("limit", params.Limit))
		return nil, nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}
	return entries, next, nil
}

func (s *ledgerService) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string) (*domain.LedgerEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, domain.RoleAccountant); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown entry status %q: %w", status, apperrors.ErrValidation)
	}

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger entry for status change", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if !entry.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("entry %s cannot move from %s to %s: %w", entryID, entry.Status, status, apperrors.ErrConflict)
	}

	approvedBy := entry.ApprovedBy
	if status == domain.EntryApproved {
		approvedBy = &userID
	}
	now := s.now()
	if err := s.ledgerRepo.UpdateEntryStatus(ctx, entryID, status, approvedBy, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry status",
			slog.String("entry_id", entryID),
			slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to update ledger entry status: %w", err)
	}

	entry.Status = status
	entry.ApprovedBy = approvedBy
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.LogError(ctx, err, "Failed to invalidate report cache")
		}
	}
	s.LogInfo(ctx, "Ledger entry status updated",
		slog.String("entry_id", entryID),
		slog.String("status", string(status)))
	return entry, nil
}

func entryFilterFromParams(params dto.ListLedgerEntriesParams) (domain.LedgerEntryFilter, error) {
	var filter domain.LedgerEntryFilter
	if params.From != "" {
		from, err := time.Parse(dto.DateLayout, params.From)
		if err != nil {
			return filter, fmt.Errorf("from %q is not a YYYY-MM-DD date: %w", params.From, apperrors.ErrValidation)
		}
		filter.From = &from
	}
	if params.To != "" {
		to, err := time.Parse(dto.DateLayout, params.To)
		if err != nil {
			return filter, fmt.Errorf("to %q is not a YYYY-MM-DD date: %w", params.To, apperrors.ErrValidation)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, fmt.Errorf("to must not be before from: %w", apperrors.ErrValidation)
	}
	if params.Status != "" {
		filter.Statuses = []domain.EntryStatus{domain.EntryStatus(params.Status)}
	}
	if params.ReferenceType != "" {
		filter.ReferenceTypes = []domain.ReferenceType{domain.ReferenceType(params.ReferenceType)}
	}
	if params.PartyID != "" {
		party := params.PartyID
		filter.PartyID = &party
	}
	if params.AccountID != "" {
		account := params.AccountID
		filter.AccountID = &account
	}
	return filter, nil
}
