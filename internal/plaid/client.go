// Package plaid provides a client for interacting with the Plaid API.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/pocketplan/pocketplan/internal/common"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/service"
)

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("plaid client ID is required")
	}
	if c.Secret == "" {
		return fmt.Errorf("plaid secret is required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("plaid access token is required")
	}
	if c.Environment == "" {
		return fmt.Errorf("plaid environment is required")
	}

	validEnvs := map[string]bool{
		"sandbox":    true,
		"production": true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid Plaid environment: must be sandbox or production")
	}

	return nil
}

// Client fetches transactions and account balances from Plaid.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	retryOpts   *service.RetryOptions
	accessToken string
	environment string
}

// NewClient creates a new Plaid client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	client := plaid.NewAPIClient(configuration)

	return &Client{
		client:      client,
		accessToken: cfg.AccessToken,
		environment: cfg.Environment,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts: &service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// GetTransactions fetches transactions from Plaid within the specified date range.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var allTransactions []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		var plaidTransactions []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				c.accessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			options := plaid.TransactionsGetRequestOptions{
				Count:                          plaid.PtrInt32(pageSize),
				Offset:                         plaid.PtrInt32(offset),
				IncludePersonalFinanceCategory: plaid.PtrBool(true),
			}
			request.SetOptions(options)

			resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				if plaidError := extractPlaidError(err); plaidError != nil {
					if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
						c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
						return &common.RetryableError{Err: err, Retryable: true}
					}
					return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
				}
				return fmt.Errorf("%w: %v", common.ErrPlaidConnection, err)
			}

			plaidTransactions = resp.GetTransactions()

			c.logger.Debug("Fetched transaction batch",
				"count", len(plaidTransactions),
				"offset", offset,
				"total", resp.GetTotalTransactions())

			return nil
		}, *c.retryOpts)

		if retryErr != nil {
			return nil, retryErr
		}

		allTransactions = append(allTransactions, plaidTransactions...)

		if len(plaidTransactions) < int(pageSize) {
			break
		}

		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(allTransactions))

	transactions := make([]model.Transaction, 0, len(allTransactions))
	for _, pt := range allTransactions {
		transactions = append(transactions, c.mapPlaidTransaction(pt))
	}

	return transactions, nil
}

// GetAccounts fetches accounts with balances from Plaid and enriches debt
// accounts with liability details where available.
func (c *Client) GetAccounts(ctx context.Context) ([]model.Account, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}

	c.logger.Info("Fetching accounts from Plaid")

	var plaidAccounts []plaid.AccountBase
	retryErr := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(c.accessToken)
		resp, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			if plaidError := extractPlaidError(err); plaidError != nil {
				if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
					c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
					return &common.RetryableError{Err: err, Retryable: true}
				}
				return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
			}
			return fmt.Errorf("%w: %v", common.ErrPlaidConnection, err)
		}

		plaidAccounts = resp.GetAccounts()
		return nil
	}, *c.retryOpts)

	if retryErr != nil {
		return nil, retryErr
	}

	c.logger.Info("Fetched accounts", "count", len(plaidAccounts))

	accounts := make([]model.Account, 0, len(plaidAccounts))
	for _, pa := range plaidAccounts {
		accounts = append(accounts, mapPlaidAccount(pa))
	}

	// Liability details are best effort: not every item has the product.
	if err := c.enrichLiabilities(ctx, accounts); err != nil {
		c.logger.Warn("Could not fetch liability details", "error", err)
	}

	return accounts, nil
}

// enrichLiabilities fills APR and minimum payment on debt accounts from the
// liabilities endpoint. Plaid reports rates as percentages; we store fractions.
func (c *Client) enrichLiabilities(ctx context.Context, accounts []model.Account) error {
	request := plaid.NewLiabilitiesGetRequest(c.accessToken)
	resp, _, err := c.client.PlaidApi.LiabilitiesGet(ctx).LiabilitiesGetRequest(*request).Execute()
	if err != nil {
		if plaidError := extractPlaidError(err); plaidError != nil {
			return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
		}
		return fmt.Errorf("failed to fetch liabilities: %w", err)
	}

	byID := make(map[string]*model.Account, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &accounts[i]
	}

	liabilities := resp.GetLiabilities()
	for _, credit := range liabilities.GetCredit() {
		account, ok := byID[credit.GetAccountId()]
		if !ok {
			continue
		}
		for _, apr := range credit.GetAprs() {
			if apr.GetAprType() == "purchase_apr" {
				rate := apr.GetAprPercentage() / 100
				account.APR = &rate
				break
			}
		}
		if minimum, ok := credit.GetMinimumPaymentAmountOk(); ok && minimum != nil {
			account.MinimumPayment = minimum
		}
	}
	for _, student := range liabilities.GetStudent() {
		account, ok := byID[student.GetAccountId()]
		if !ok {
			continue
		}
		rate := student.GetInterestRatePercentage() / 100
		account.APR = &rate
		if minimum, ok := student.GetMinimumPaymentAmountOk(); ok && minimum != nil {
			account.MinimumPayment = minimum
		}
	}

	return nil
}

// mapPlaidTransaction converts a Plaid transaction to our internal model.
// Plaid's sign convention matches ours: positive is money out.
func (c *Client) mapPlaidTransaction(pt plaid.Transaction) model.Transaction {
	date, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		c.logger.Error("Failed to parse transaction date", "date", pt.GetDate(), "error", err)
		date = time.Now()
	}

	merchantName := pt.GetMerchantName()
	if merchantName == "" {
		merchantName = pt.GetName()
	}
	merchantName = cleanMerchantName(merchantName)

	var categories []string
	if plaidCategories := pt.GetCategory(); len(plaidCategories) > 0 {
		categories = plaidCategories
	}

	tx := model.Transaction{
		Date:         date,
		ID:           pt.GetTransactionId(),
		Name:         pt.GetName(),
		MerchantName: merchantName,
		AccountID:    pt.GetAccountId(),
		Amount:       pt.GetAmount(),
		Category:     categories,
		Pending:      pt.GetPending(),
	}

	if pfc, ok := pt.GetPersonalFinanceCategoryOk(); ok && pfc != nil {
		tx.PrimaryCategory = pfc.GetPrimary()
		tx.DetailedCategory = pfc.GetDetailed()
		tx.Confidence = model.ParseConfidenceLevel(pfc.GetConfidenceLevel())
	}

	tx.Hash = tx.GenerateHash()

	return tx
}

// mapPlaidAccount converts a Plaid account to our internal model.
func mapPlaidAccount(pa plaid.AccountBase) model.Account {
	account := model.Account{
		ID:      pa.GetAccountId(),
		Name:    pa.GetName(),
		Type:    model.ParseAccountType(string(pa.GetType())),
		Subtype: string(pa.GetSubtype()),
	}

	balances := pa.GetBalances()
	if current, ok := balances.GetCurrentOk(); ok && current != nil {
		account.CurrentBalance = *current
	}
	if available, ok := balances.GetAvailableOk(); ok && available != nil {
		account.AvailableBalance = available
	}
	if limit, ok := balances.GetLimitOk(); ok && limit != nil {
		account.CreditLimit = limit
	}

	return account
}

// cleanMerchantName standardizes merchant names by removing common suffixes and normalizing format.
func cleanMerchantName(name string) string {
	// Convert to title case manually to avoid deprecated strings.Title
	words := strings.Fields(strings.ToLower(name))
	for i, word := range words {
		if word != "" {
			runes := []rune(word)
			for j := 0; j < len(runes); j++ {
				if j == 0 || (j > 0 && !isLetter(runes[j-1])) {
					runes[j] = toUpper(runes[j])
				}
			}
			words[i] = string(runes)
		}
	}
	name = strings.Join(words, " ")

	// Handle common patterns like "MERCHANT 123456789" first
	parts := strings.Fields(name)
	if len(parts) > 1 {
		lastPart := parts[len(parts)-1]
		// If the last part is all digits and longer than 5 chars, it's probably a transaction ID
		if len(lastPart) > 5 && isAllDigits(lastPart) {
			parts = parts[:len(parts)-1]
		}
	}

	name = strings.Join(parts, " ")

	// Remove common payment processor suffixes
	suffixes := []string{
		" Llc",
		" Inc",
		" Corp",
		" Corporation",
		" Company",
		" Co",
		" Ltd",
		" Limited",
	}

	// Keep removing suffixes until none are found (handles multiple suffixes)
	changed := true
	for changed {
		changed = false
		for _, suffix := range suffixes {
			if strings.HasSuffix(name, suffix) {
				name = strings.TrimSuffix(name, suffix)
				changed = true
			}
		}
	}

	return strings.TrimSpace(name)
}

// isAllDigits checks if a string contains only digits.
func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isLetter checks if a rune is a letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// toUpper converts a rune to uppercase.
func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 32
	}
	return r
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}

// Ensure Client implements the fetcher interfaces.
var (
	_ service.TransactionFetcher = (*Client)(nil)
	_ service.AccountFetcher     = (*Client)(nil)
)
