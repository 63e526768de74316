// Package storage provides the data persistence layer for the application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pocketplan/pocketplan/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidAccount     = errors.New("invalid account")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTransaction)
	}
	if txn.AccountID == "" {
		return fmt.Errorf("%w: missing account ID", ErrInvalidTransaction)
	}
	return nil
}

// validateAccounts validates a slice of accounts.
func validateAccounts(accounts []model.Account) error {
	if accounts == nil {
		return fmt.Errorf("%w: accounts", ErrNilParameter)
	}
	if len(accounts) == 0 {
		return fmt.Errorf("%w: accounts", ErrEmptySlice)
	}

	for i, account := range accounts {
		if account.ID == "" {
			return fmt.Errorf("account at index %d: %w: missing ID", i, ErrInvalidAccount)
		}
		if account.Name == "" {
			return fmt.Errorf("account at index %d: %w: missing name", i, ErrInvalidAccount)
		}
	}
	return nil
}
