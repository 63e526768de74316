// Package classify maps raw transactions onto semantic buckets and detailed
// expense categories.
package classify

import (
	"regexp"
	"strings"

	"github.com/pocketplan/pocketplan/internal/model"
)

var (
	debtPattern = regexp.MustCompile(
		`(?i)\b(credit\s*card|card\s*payment|loan\s*(payments?|pmt)|mortgage|student\s*loan|auto\s*loan)`)
	investPattern = regexp.MustCompile(
		`(?i)\b(investment|brokerage|retirement|401k|ira|roth)\b`)
)

// Bucket assigns a transaction to exactly one bucket. A user override always
// wins; otherwise the decision is a pure function of the amount sign and the
// source category text. Unmatched transactions land in expenses.
func Bucket(txn model.Transaction) model.BucketCategory {
	if txn.BucketOverride != nil {
		return *txn.BucketOverride
	}
	if txn.Amount < 0 {
		return model.BucketIncome
	}
	text := categoryText(txn)
	if debtPattern.MatchString(text) {
		return model.BucketDebt
	}
	if investPattern.MatchString(text) {
		return model.BucketInvested
	}
	return model.BucketExpenses
}

// categoryText flattens the source classification fields into one searchable
// string. Underscore-joined codes are split so word boundaries match.
func categoryText(txn model.Transaction) string {
	parts := make([]string, 0, len(txn.Category)+2)
	parts = append(parts, txn.PrimaryCategory, txn.DetailedCategory)
	parts = append(parts, txn.Category...)
	text := strings.ToLower(strings.Join(parts, " "))
	return strings.ReplaceAll(text, "_", " ")
}
