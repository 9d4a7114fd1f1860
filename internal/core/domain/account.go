package domain

import "strings"

// AccountCategory defines the fundamental accounting category of an account.
// The set is closed; anything the store hands back that is not one of the known
// values becomes CategoryUnclassified so aggregation can report it instead of
// dropping it.
type AccountCategory string

const (
	CategoryAsset           AccountCategory = "ASSET"
	CategoryLiability       AccountCategory = "LIABILITY"
	CategoryEquity          AccountCategory = "EQUITY"
	CategoryRevenue         AccountCategory = "REVENUE"
	CategoryExpense         AccountCategory = "EXPENSE"
	CategoryCostOfGoodsSold AccountCategory = "COST_OF_GOODS_SOLD"
	CategoryUnclassified    AccountCategory = "UNCLASSIFIED"
)

// KnownCategories lists every classified category in presentation order.
var KnownCategories = []AccountCategory{
	CategoryAsset,
	CategoryLiability,
	CategoryEquity,
	CategoryRevenue,
	CategoryCostOfGoodsSold,
	CategoryExpense,
}

// ParseAccountCategory maps a raw value onto the closed category set.
func ParseAccountCategory(raw string) AccountCategory {
	switch c := AccountCategory(strings.ToUpper(strings.TrimSpace(raw))); c {
	case CategoryAsset, CategoryLiability, CategoryEquity, CategoryRevenue, CategoryExpense, CategoryCostOfGoodsSold:
		return c
	default:
		return CategoryUnclassified
	}
}

// IsClassified reports whether c is one of the known categories.
func (c AccountCategory) IsClassified() bool {
	return ParseAccountCategory(string(c)) != CategoryUnclassified
}

// AccountSubcategory refines how balance sheet and P&L builders group an account.
type AccountSubcategory string

const (
	SubcategoryNone              AccountSubcategory = ""
	SubcategoryCash              AccountSubcategory = "CASH"
	SubcategoryCurrentAsset      AccountSubcategory = "CURRENT_ASSET"
	SubcategoryFixedAsset        AccountSubcategory = "FIXED_ASSET"
	SubcategoryOtherAsset        AccountSubcategory = "OTHER_ASSET"
	SubcategoryCurrentLiability  AccountSubcategory = "CURRENT_LIABILITY"
	SubcategoryLongTermLiability AccountSubcategory = "LONG_TERM_LIABILITY"
	SubcategoryOtherIncome       AccountSubcategory = "OTHER_INCOME"
	SubcategoryOtherExpense      AccountSubcategory = "OTHER_EXPENSE"
)

// subcategoryOwners records which category each subcategory may be attached to.
var subcategoryOwners = map[AccountSubcategory]AccountCategory{
	SubcategoryCash:              CategoryAsset,
	SubcategoryCurrentAsset:      CategoryAsset,
	SubcategoryFixedAsset:        CategoryAsset,
	SubcategoryOtherAsset:        CategoryAsset,
	SubcategoryCurrentLiability:  CategoryLiability,
	SubcategoryLongTermLiability: CategoryLiability,
	SubcategoryOtherIncome:       CategoryRevenue,
	SubcategoryOtherExpense:      CategoryExpense,
}

// ValidFor reports whether the subcategory can be used on an account of the given category.
func (s AccountSubcategory) ValidFor(category AccountCategory) bool {
	if s == SubcategoryNone {
		return true
	}
	owner, ok := subcategoryOwners[s]
	return ok && owner == category
}

// CashFlowActivity is the cash flow statement section an amount belongs to.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "OPERATING"
	ActivityInvesting CashFlowActivity = "INVESTING"
	ActivityFinancing CashFlowActivity = "FINANCING"
)

// ParseCashFlowActivity returns the activity and whether raw named one.
func ParseCashFlowActivity(raw string) (CashFlowActivity, bool) {
	switch a := CashFlowActivity(strings.ToUpper(strings.TrimSpace(raw))); a {
	case ActivityOperating, ActivityInvesting, ActivityFinancing:
		return a, true
	default:
		return "", false
	}
}

// Account represents a ledger account within the core domain.
type Account struct {
	AccountID        string             `json:"accountID"`
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	Category         AccountCategory    `json:"category"`
	Subcategory      AccountSubcategory `json:"subcategory,omitempty"`
	ParentAccountID  *string            `json:"parentAccountID,omitempty"` // self reference forming the chart tree
	CashFlowActivity *CashFlowActivity  `json:"cashFlowActivity,omitempty"`
	Description      string             `json:"description"`
	IsActive         bool               `json:"isActive"`
	AuditFields
}

// IsCash reports whether the account is one of the designated cash accounts.
func (a Account) IsCash() bool {
	return a.Category == CategoryAsset && a.Subcategory == SubcategoryCash
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	Category   *AccountCategory
	ActiveOnly bool
	Limit      int
	Offset     int
}
