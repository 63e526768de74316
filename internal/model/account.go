package model

import "strings"

// AccountType classifies an account by what it holds.
type AccountType string

// Account type constants matching the bank feed's taxonomy.
const (
	AccountTypeDepository AccountType = "depository"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeLoan       AccountType = "loan"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeOther      AccountType = "other"
)

// ParseAccountType normalizes a feed-supplied account type string.
func ParseAccountType(s string) AccountType {
	switch AccountType(strings.ToLower(strings.TrimSpace(s))) {
	case AccountTypeDepository:
		return AccountTypeDepository
	case AccountTypeCredit:
		return AccountTypeCredit
	case AccountTypeLoan:
		return AccountTypeLoan
	case AccountTypeInvestment:
		return AccountTypeInvestment
	default:
		return AccountTypeOther
	}
}

// Account represents a bank account with its balances. APR is a fraction
// (0.18 for 18%), not a percentage.
type Account struct {
	ID               string
	ItemID           string
	Name             string
	Subtype          string
	Type             AccountType
	AvailableBalance *float64
	CreditLimit      *float64
	APR              *float64
	MinimumPayment   *float64
	CurrentBalance   float64
}

// IsDebt reports whether the account's balance counts toward total debt.
func (a Account) IsDebt() bool {
	return a.Type == AccountTypeCredit || a.Type == AccountTypeLoan
}

// IsInvestment reports whether the account counts toward invested balances.
func (a Account) IsInvestment() bool {
	return a.Type == AccountTypeInvestment
}

// IsDepository reports whether the account counts toward cash.
func (a Account) IsDepository() bool {
	return a.Type == AccountTypeDepository
}

// CashBalance returns the available balance, falling back to the current
// balance when the feed did not supply one.
func (a Account) CashBalance() float64 {
	if a.AvailableBalance != nil {
		return *a.AvailableBalance
	}
	return a.CurrentBalance
}
