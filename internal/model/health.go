package model

import (
	"fmt"
	"strings"
)

// IncomeStability classifies how predictable a user's income is. It drives
// the emergency-fund target size.
type IncomeStability string

// Income stability classes.
const (
	StabilityStable       IncomeStability = "stable"
	StabilityVariable     IncomeStability = "variable"
	StabilityInconsistent IncomeStability = "inconsistent"
)

// ParseIncomeStability converts user input into an IncomeStability class.
func ParseIncomeStability(s string) (IncomeStability, error) {
	switch IncomeStability(strings.ToLower(strings.TrimSpace(s))) {
	case StabilityStable:
		return StabilityStable, nil
	case StabilityVariable:
		return StabilityVariable, nil
	case StabilityInconsistent:
		return StabilityInconsistent, nil
	default:
		return "", fmt.Errorf("unknown income stability: %q (want stable, variable, or inconsistent)", s)
	}
}

// HealthMetrics is a self-reported financial-health snapshot. It is a
// read-only input to the allocation engine; nothing here is computed by
// this application.
type HealthMetrics struct {
	Score               float64 // 0-100
	SavingsRate         float64
	EmergencyFundMonths float64
	DebtToIncome        float64 // total debt over monthly income
	Stability           IncomeStability
}
