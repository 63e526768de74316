package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/pocketplan/pocketplan/internal/common"
	"github.com/pocketplan/pocketplan/internal/model"
	"github.com/pocketplan/pocketplan/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

// Helper function to create test transactions.
func createTestTransactions(count int) []model.Transaction {
	txns := make([]model.Transaction, count)
	baseTime := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		txns[i] = model.Transaction{
			ID:               fmt.Sprintf("txn-%03d", i+1),
			Date:             baseTime.Add(time.Duration(i) * 24 * time.Hour),
			Name:             fmt.Sprintf("Transaction #%d", i+1),
			MerchantName:     fmt.Sprintf("Merchant #%d", (i%3)+1),
			Amount:           float64(i+1) * 10.50,
			AccountID:        "acc1",
			PrimaryCategory:  "FOOD_AND_DRINK",
			DetailedCategory: "FOOD_AND_DRINK_RESTAURANT",
			Category:         []string{"Food", "Restaurants"},
			Confidence:       model.ConfidenceHigh,
		}
		txns[i].Hash = txns[i].GenerateHash()
	}
	return txns
}

func TestSQLiteStorage_SaveAndGetTransactions(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	saved := createTestTransactions(3)
	if err := store.SaveTransactions(ctx, saved); err != nil {
		t.Fatalf("SaveTransactions failed: %v", err)
	}

	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(got))
	}

	// Newest first.
	if got[0].ID != "txn-003" {
		t.Errorf("Expected txn-003 first, got %s", got[0].ID)
	}
	if got[0].PrimaryCategory != "FOOD_AND_DRINK" {
		t.Errorf("Primary category not round-tripped: %q", got[0].PrimaryCategory)
	}
	if got[0].Confidence != model.ConfidenceHigh {
		t.Errorf("Confidence not round-tripped: %v", got[0].Confidence)
	}
	if len(got[0].Category) != 2 {
		t.Errorf("Categories not round-tripped: %v", got[0].Category)
	}
}

func TestSQLiteStorage_DuplicatesIgnored(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txns := createTestTransactions(2)
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	count, err := store.TransactionCount(ctx)
	if err != nil {
		t.Fatalf("TransactionCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 transactions after duplicate save, got %d", count)
	}
}

func TestSQLiteStorage_TransactionFilter(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txns := createTestTransactions(5)
	txns[4].AccountID = "acc2"
	txns[4].Hash = txns[4].GenerateHash()
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions failed: %v", err)
	}

	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)
	got, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 transactions in date range, got %d", len(got))
	}

	got, err = store.GetTransactions(ctx, service.TransactionFilter{AccountID: "acc2"})
	if err != nil {
		t.Fatalf("GetTransactions by account failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 transaction for acc2, got %d", len(got))
	}

	got, err = store.GetTransactions(ctx, service.TransactionFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("GetTransactions with limit failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 transactions with limit, got %d", len(got))
	}
}

func TestSQLiteStorage_BucketOverride(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	txns := createTestTransactions(1)
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions failed: %v", err)
	}

	bucket := model.BucketInvested
	if err := store.SetBucketOverride(ctx, "txn-001", &bucket); err != nil {
		t.Fatalf("SetBucketOverride failed: %v", err)
	}

	got, err := store.GetTransactionByID(ctx, "txn-001")
	if err != nil {
		t.Fatalf("GetTransactionByID failed: %v", err)
	}
	if got.BucketOverride == nil || *got.BucketOverride != model.BucketInvested {
		t.Errorf("Expected invested override, got %v", got.BucketOverride)
	}

	// Clearing works too.
	if err := store.SetBucketOverride(ctx, "txn-001", nil); err != nil {
		t.Fatalf("Clearing override failed: %v", err)
	}
	got, err = store.GetTransactionByID(ctx, "txn-001")
	if err != nil {
		t.Fatalf("GetTransactionByID failed: %v", err)
	}
	if got.BucketOverride != nil {
		t.Errorf("Expected cleared override, got %v", *got.BucketOverride)
	}

	err = store.SetBucketOverride(ctx, "missing", &bucket)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing transaction, got %v", err)
	}
}

func TestSQLiteStorage_GetTransactionByID_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetTransactionByID(context.Background(), "nope")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorage_SaveAndGetAccounts(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	apr := 0.2199
	available := 1850.25
	accounts := []model.Account{
		{
			ID:             "acc-credit",
			ItemID:         "item-1",
			Name:           "Rewards Card",
			Type:           model.AccountTypeCredit,
			Subtype:        "credit card",
			CurrentBalance: 2400,
			APR:            &apr,
		},
		{
			ID:               "acc-check",
			ItemID:           "item-1",
			Name:             "Checking",
			Type:             model.AccountTypeDepository,
			Subtype:          "checking",
			CurrentBalance:   2000,
			AvailableBalance: &available,
		},
	}
	if err := store.SaveAccounts(ctx, accounts); err != nil {
		t.Fatalf("SaveAccounts failed: %v", err)
	}

	got, err := store.GetAccounts(ctx)
	if err != nil {
		t.Fatalf("GetAccounts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(got))
	}

	// Ordered by name: Checking before Rewards Card.
	if got[0].ID != "acc-check" {
		t.Errorf("Expected acc-check first, got %s", got[0].ID)
	}
	if got[0].AvailableBalance == nil || *got[0].AvailableBalance != available {
		t.Errorf("Available balance not round-tripped: %v", got[0].AvailableBalance)
	}
	if got[1].APR == nil || *got[1].APR != apr {
		t.Errorf("APR not round-tripped: %v", got[1].APR)
	}

	// Upsert replaces balances.
	accounts[0].CurrentBalance = 1800
	if err := store.SaveAccounts(ctx, accounts[:1]); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	got, err = store.GetAccounts(ctx)
	if err != nil {
		t.Fatalf("GetAccounts failed: %v", err)
	}
	if got[1].CurrentBalance != 1800 {
		t.Errorf("Expected updated balance 1800, got %v", got[1].CurrentBalance)
	}
}

func TestSQLiteStorage_ValidationErrors(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if err := store.SaveTransactions(ctx, nil); err == nil {
		t.Error("Expected error for nil transactions")
	}
	if err := store.SaveTransactions(ctx, []model.Transaction{}); err == nil {
		t.Error("Expected error for empty transactions")
	}
	if err := store.SaveTransactions(ctx, []model.Transaction{{ID: "x"}}); err == nil {
		t.Error("Expected error for transaction missing fields")
	}
	if err := store.SaveAccounts(ctx, []model.Account{{ID: "x"}}); err == nil {
		t.Error("Expected error for account missing name")
	}
}

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
}
