package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ganpathioverseas/erp_finance/internal/apperrors"
	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerTestSuite struct {
	HandlerTestSuite
}

func (suite *AccountHandlerTestSuite) account(code string, category domain.AccountCategory) *domain.Account {
	acc := &domain.Account{
		AccountID: uuid.NewString(),
		Code:      code,
		Name:      "Cash in Hand",
		Category:  category,
		IsActive:  true,
	}
	acc.CreatedAt = fixedNow
	acc.CreatedBy = suite.userID
	acc.LastUpdatedAt = fixedNow
	acc.LastUpdatedBy = suite.userID
	return acc
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	created := suite.account("1001", domain.AccountCategory("ASSET"))
	suite.mockAccount.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Code == "1001" && req.Subcategory == "CASH"
	}), suite.userID).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code":        "1001",
		"name":        "Cash in Hand",
		"category":    "ASSET",
		"subcategory": "CASH",
	})

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var body dto.AccountResponse
	suite.decode(w, &body)
	suite.Equal(created.AccountID, body.AccountID)
	suite.Equal("1001", body.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidCategory() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code":     "9001",
		"name":     "Suspense",
		"category": "SUSPENSE",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCode() {
	suite.mockAccount.On("CreateAccount", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("account code 1001: %w", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code":     "1001",
		"name":     "Cash in Hand",
		"category": "ASSET",
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccount.On("GetAccountByID", mock.Anything, "acc-404", suite.userID).
		Return(nil, fmt.Errorf("account acc-404: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/acc-404", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Filter() {
	expense := domain.AccountCategory("EXPENSE")
	accounts := []domain.Account{*suite.account("5001", expense), *suite.account("5002", expense)}
	suite.mockAccount.On("ListAccounts", mock.Anything, domain.AccountFilter{
		Category:   &expense,
		ActiveOnly: true,
		Limit:      100,
		Offset:     0,
	}, suite.userID).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?category=EXPENSE&active_only=true", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var body dto.ListAccountsResponse
	suite.decode(w, &body)
	suite.Len(body.Accounts, 2)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_CategoryLocked() {
	suite.mockAccount.On("UpdateAccount", mock.Anything, "acc-1", mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
		return req.Category != nil && *req.Category == "EXPENSE"
	}), suite.userID).Return(nil, fmt.Errorf("account has 12 entries: %w", apperrors.ErrConflict)).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/acc-1", map[string]string{"category": "EXPENSE"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_Success() {
	updated := suite.account("1001", domain.AccountCategory("ASSET"))
	updated.Name = "Petty Cash"
	suite.mockAccount.On("UpdateAccount", mock.Anything, updated.AccountID, mock.Anything, suite.userID).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts/"+updated.AccountID, map[string]string{"name": "Petty Cash"})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AccountResponse
	suite.decode(w, &body)
	suite.Equal("Petty Cash", body.Name)
}

func (suite *AccountHandlerTestSuite) TestInvalidToken() {
	suite.jwtSecret = "a-different-secret-than-the-router-uses"
	w := suite.do(http.MethodGet, "/api/v1/accounts", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
