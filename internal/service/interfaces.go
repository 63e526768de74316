// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/pocketplan/pocketplan/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	AccountID string
	Limit     int
	Offset    int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	SetBucketOverride(ctx context.Context, transactionID string, bucket *model.BucketCategory) error
	TransactionCount(ctx context.Context) (int, error)

	// Account operations
	SaveAccounts(ctx context.Context, accounts []model.Account) error
	GetAccounts(ctx context.Context) ([]model.Account, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// TransactionFetcher retrieves transactions from an external aggregator.
type TransactionFetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
}

// AccountFetcher retrieves account balances from an external aggregator.
type AccountFetcher interface {
	GetAccounts(ctx context.Context) ([]model.Account, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
