// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction from any source.
// Amounts follow the bank-feed sign convention: positive is money out,
// negative is money in.
type Transaction struct {
	Date             time.Time
	ID               string
	Name             string // Raw transaction description
	MerchantName     string // Cleaned merchant name
	AccountID        string
	Hash             string
	PrimaryCategory  string   // Coarse source classification (e.g., FOOD_AND_DRINK)
	DetailedCategory string   // Fine-grained source classification code
	Category         []string // Category hints from source (e.g., Plaid categories)
	BucketOverride   *BucketCategory
	Amount           float64
	Confidence       ConfidenceLevel
	Pending          bool
}

// GenerateHash creates a unique hash for duplicate detection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.MerchantName,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
