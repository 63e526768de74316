package plaid

import (
	"context"
	"time"

	"github.com/pocketplan/pocketplan/internal/model"
)

// MockClient is a mock implementation of Fetcher for testing.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	GetTransactionsFn func(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
	GetAccountsFn     func(ctx context.Context) ([]model.Account, error)

	// Call tracking
	GetTransactionsCalls []GetTransactionsCall
	GetAccountsCalls     int
}

// GetTransactionsCall records the parameters of a GetTransactions call.
type GetTransactionsCall struct {
	StartDate time.Time
	EndDate   time.Time
}

// NewMockClient creates a new mock Plaid client.
func NewMockClient() *MockClient {
	return &MockClient{
		GetTransactionsCalls: []GetTransactionsCall{},
	}
}

// GetTransactions implements Fetcher.GetTransactions.
func (m *MockClient) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	m.GetTransactionsCalls = append(m.GetTransactionsCalls, GetTransactionsCall{
		StartDate: startDate,
		EndDate:   endDate,
	})

	if m.GetTransactionsFn != nil {
		return m.GetTransactionsFn(ctx, startDate, endDate)
	}

	return []model.Transaction{}, nil
}

// GetAccounts implements Fetcher.GetAccounts.
func (m *MockClient) GetAccounts(ctx context.Context) ([]model.Account, error) {
	m.GetAccountsCalls++

	if m.GetAccountsFn != nil {
		return m.GetAccountsFn(ctx)
	}

	return []model.Account{}, nil
}

// Reset clears all call tracking.
func (m *MockClient) Reset() {
	m.GetTransactionsCalls = []GetTransactionsCall{}
	m.GetAccountsCalls = 0
}

// Ensure MockClient implements the Fetcher interface.
var _ Fetcher = (*MockClient)(nil)
