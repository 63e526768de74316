package plaid

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		config  Config
		name    string
		errMsg  string
		wantErr bool
	}{
		{
			name: "valid sandbox config",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: false,
		},
		{
			name: "valid production config",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "production",
				AccessToken: "test-token",
			},
			wantErr: false,
		},
		{
			name: "missing client ID",
			config: Config{
				Secret:      "test-secret",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid client ID is required",
		},
		{
			name: "missing secret",
			config: Config{
				ClientID:    "test-client-id",
				Environment: "sandbox",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid secret is required",
		},
		{
			name: "missing access token",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "sandbox",
			},
			wantErr: true,
			errMsg:  "plaid access token is required",
		},
		{
			name: "missing environment",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "plaid environment is required",
		},
		{
			name: "invalid environment",
			config: Config{
				ClientID:    "test-client-id",
				Secret:      "test-secret",
				Environment: "development",
				AccessToken: "test-token",
			},
			wantErr: true,
			errMsg:  "invalid Plaid environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "test-client-id",
		Secret:      "test-secret",
		Environment: "sandbox",
		AccessToken: "test-token",
	})
	require.NoError(t, err)
	assert.NotNil(t, client.client)
	assert.Equal(t, "test-token", client.accessToken)
	assert.NotNil(t, client.logger)
	assert.NotNil(t, client.retryOpts)

	_, err = NewClient(Config{ClientID: "only-id"})
	require.Error(t, err)
}

func TestClient_GetTransactions_Validation(t *testing.T) {
	client := &Client{
		accessToken: "test-token",
		logger:      slog.Default().With("component", "plaid-test"),
	}

	//nolint:staticcheck // nil context is exactly what we're validating
	_, err := client.GetTransactions(nil, time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cannot be nil")

	_, err = client.GetTransactions(context.Background(), time.Now(), time.Now().AddDate(0, -1, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start date must be before end date")

	// Successful fetches would hit the real API; only input validation is
	// testable here.
}

func TestCleanMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic name",
			input:    "Starbucks",
			expected: "Starbucks",
		},
		{
			name:     "lowercase to title case",
			input:    "starbucks coffee",
			expected: "Starbucks Coffee",
		},
		{
			name:     "remove LLC suffix",
			input:    "Amazon LLC",
			expected: "Amazon",
		},
		{
			name:     "remove Inc suffix",
			input:    "Apple Inc",
			expected: "Apple",
		},
		{
			name:     "remove transaction ID",
			input:    "PAYPAL 123456789",
			expected: "Paypal",
		},
		{
			name:     "preserve short numbers",
			input:    "7-ELEVEN 2345",
			expected: "7-Eleven 2345",
		},
		{
			name:     "multiple cleanups",
			input:    "amazon.com llc 987654321",
			expected: "Amazon.Com",
		},
		{
			name:     "extra spaces",
			input:    "  Google   Cloud   ",
			expected: "Google Cloud",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanMerchantName(tt.input))
		})
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123456", true},
		{"000000", true},
		{"12a456", false},
		{"", true}, // edge case: empty string
		{"ABC123", false},
		{"12.34", false},
		{"12 34", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAllDigits(tt.input))
		})
	}
}

func TestMockClient(t *testing.T) {
	mock := NewMockClient()

	startDate := time.Now().AddDate(0, -1, 0)
	endDate := time.Now()

	expectedTxs := []model.Transaction{
		{
			ID:     "tx1",
			Name:   "Test Transaction",
			Amount: 10.50,
		},
	}
	mock.GetTransactionsFn = func(_ context.Context, _, _ time.Time) ([]model.Transaction, error) {
		return expectedTxs, nil
	}

	txs, err := mock.GetTransactions(context.Background(), startDate, endDate)
	require.NoError(t, err)
	assert.Equal(t, expectedTxs, txs)

	assert.Len(t, mock.GetTransactionsCalls, 1)
	assert.Equal(t, startDate, mock.GetTransactionsCalls[0].StartDate)
	assert.Equal(t, endDate, mock.GetTransactionsCalls[0].EndDate)

	expectedAccounts := []model.Account{
		{ID: "acc1", Name: "Checking", Type: model.AccountTypeDepository},
	}
	mock.GetAccountsFn = func(_ context.Context) ([]model.Account, error) {
		return expectedAccounts, nil
	}

	accounts, err := mock.GetAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedAccounts, accounts)
	assert.Equal(t, 1, mock.GetAccountsCalls)

	mock.Reset()
	assert.Len(t, mock.GetTransactionsCalls, 0)
	assert.Equal(t, 0, mock.GetAccountsCalls)
}
