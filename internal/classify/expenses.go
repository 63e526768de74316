package classify

import (
	"strings"

	"github.com/pocketplan/pocketplan/internal/model"
)

// Detailed-category code classes that never contribute to the expense
// breakdown, even when a transaction is a positive outflow.
var excludedCodeClasses = []string{
	"TRANSFER_IN",
	"TRANSFER_OUT",
	"LOAN_PAYMENTS",
	"INCOME",
}

// expenseCategory maps a fine-grained source category code onto one of the
// eight expense categories. The second return is false when the code belongs
// to an excluded class (transfers, loan payments, income).
func expenseCategory(code string) (model.ExpenseCategory, bool) {
	for _, class := range excludedCodeClasses {
		if strings.HasPrefix(code, class) {
			return "", false
		}
	}

	switch {
	case strings.HasPrefix(code, "RENT_AND_UTILITIES"):
		if strings.Contains(strings.TrimPrefix(code, "RENT_AND_UTILITIES"), "RENT") {
			return model.ExpenseHousing, true
		}
		return model.ExpenseUtilities, true
	case strings.HasPrefix(code, "FOOD_AND_DRINK"):
		return model.ExpenseFood, true
	case strings.HasPrefix(code, "TRANSPORTATION"), strings.HasPrefix(code, "TRAVEL"):
		return model.ExpenseTransportation, true
	case strings.HasPrefix(code, "ENTERTAINMENT"):
		if strings.Contains(code, "STREAMING") || strings.Contains(code, "SUBSCRIPTION") {
			return model.ExpenseSubscriptions, true
		}
		return model.ExpenseOther, true
	case strings.HasPrefix(code, "GENERAL_SERVICES"):
		switch {
		case strings.Contains(code, "MEMBERSHIP"), strings.Contains(code, "SUBSCRIPTION"):
			return model.ExpenseSubscriptions, true
		case strings.Contains(code, "INSURANCE"):
			return model.ExpenseInsurance, true
		default:
			return model.ExpenseOther, true
		}
	case strings.HasPrefix(code, "INSURANCE"):
		return model.ExpenseInsurance, true
	case strings.HasPrefix(code, "MEDICAL"):
		return model.ExpenseHealthcare, true
	default:
		return model.ExpenseOther, true
	}
}

// Expenses builds the monthly-average expense breakdown over the given
// number of months. Only non-pending transactions bucketed as expenses
// contribute; excluded code classes are dropped entirely. The confidence
// score is the share of contributing transactions the source classified
// with high or very-high confidence, and 0 when nothing contributed.
//
// months must be at least 1; smaller values are clamped.
func Expenses(transactions []model.Transaction, months int) model.ExpenseBreakdown {
	if months < 1 {
		months = 1
	}

	var b model.ExpenseBreakdown
	var counted, confident int
	for _, txn := range transactions {
		if txn.Pending || Bucket(txn) != model.BucketExpenses {
			continue
		}
		category, ok := expenseCategory(strings.ToUpper(txn.DetailedCategory))
		if !ok {
			continue
		}
		b.Add(category, txn.Amount)
		counted++
		if txn.Confidence >= model.ConfidenceHigh {
			confident++
		}
	}

	m := float64(months)
	b.Housing /= m
	b.Food /= m
	b.Transportation /= m
	b.Utilities /= m
	b.Insurance /= m
	b.Subscriptions /= m
	b.Healthcare /= m
	b.Other /= m

	if counted > 0 {
		b.Confidence = float64(confident) / float64(counted)
	}
	return b
}
