package model

import "fmt"

// BucketCategory is the coarse semantic bucket a transaction lands in.
type BucketCategory string

// Bucket constants. Every non-pending transaction maps to exactly one.
const (
	BucketIncome     BucketCategory = "income"
	BucketExpenses   BucketCategory = "expenses"
	BucketDebt       BucketCategory = "debt"
	BucketInvested   BucketCategory = "invested"
	BucketCash       BucketCategory = "cash"
	BucketDisposable BucketCategory = "disposable"
)

// ParseBucketCategory converts user input into a BucketCategory.
func ParseBucketCategory(s string) (BucketCategory, error) {
	switch BucketCategory(s) {
	case BucketIncome, BucketExpenses, BucketDebt, BucketInvested, BucketCash, BucketDisposable:
		return BucketCategory(s), nil
	default:
		return "", fmt.Errorf("unknown bucket category: %q", s)
	}
}
