package model

// ExpenseCategory names one of the eight detailed expense categories.
type ExpenseCategory string

// Detailed expense categories.
const (
	ExpenseHousing        ExpenseCategory = "housing"
	ExpenseFood           ExpenseCategory = "food"
	ExpenseTransportation ExpenseCategory = "transportation"
	ExpenseUtilities      ExpenseCategory = "utilities"
	ExpenseInsurance      ExpenseCategory = "insurance"
	ExpenseSubscriptions  ExpenseCategory = "subscriptions"
	ExpenseHealthcare     ExpenseCategory = "healthcare"
	ExpenseOther          ExpenseCategory = "other"
)

// ExpenseBreakdown holds monthly-average spend per category plus a
// confidence score in [0,1] derived from the source classifications.
type ExpenseBreakdown struct {
	Housing        float64
	Food           float64
	Transportation float64
	Utilities      float64
	Insurance      float64
	Subscriptions  float64
	Healthcare     float64
	Other          float64
	Confidence     float64
}

// Add accumulates an amount into the named category.
func (b *ExpenseBreakdown) Add(category ExpenseCategory, amount float64) {
	switch category {
	case ExpenseHousing:
		b.Housing += amount
	case ExpenseFood:
		b.Food += amount
	case ExpenseTransportation:
		b.Transportation += amount
	case ExpenseUtilities:
		b.Utilities += amount
	case ExpenseInsurance:
		b.Insurance += amount
	case ExpenseSubscriptions:
		b.Subscriptions += amount
	case ExpenseHealthcare:
		b.Healthcare += amount
	default:
		b.Other += amount
	}
}

// Total returns the sum of all eight category fields.
func (b ExpenseBreakdown) Total() float64 {
	return b.Housing + b.Food + b.Transportation + b.Utilities +
		b.Insurance + b.Subscriptions + b.Healthcare + b.Other
}

// Essential returns spend in the categories treated as non-negotiable:
// housing, food, transportation, utilities, insurance, and healthcare.
func (b ExpenseBreakdown) Essential() float64 {
	return b.Housing + b.Food + b.Transportation + b.Utilities +
		b.Insurance + b.Healthcare
}

// Discretionary returns spend outside the essential categories.
func (b ExpenseBreakdown) Discretionary() float64 {
	return b.Subscriptions + b.Other
}
