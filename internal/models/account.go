package models

// Account is a row of the accounts table, the chart of accounts.
// ParentAccountID and CashFlowActivity are nullable.
type Account struct {
	AccountID        string  `db:"account_id"`
	Code             string  `db:"code"`
	Name             string  `db:"name"`
	Category         string  `db:"category"`
	Subcategory      string  `db:"subcategory"`
	ParentAccountID  *string `db:"parent_account_id"`
	CashFlowActivity *string `db:"cash_flow_activity"`
	Description      string  `db:"description"`
	IsActive         bool    `db:"is_active"`
	AuditFields
}
