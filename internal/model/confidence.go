package model

import "strings"

// ConfidenceLevel orders how certain the source was about a transaction's
// classification: low < medium < high < veryHigh.
type ConfidenceLevel int

// Confidence level constants, lowest to highest.
const (
	ConfidenceLow ConfidenceLevel = iota
	ConfidenceMedium
	ConfidenceHigh
	ConfidenceVeryHigh
)

func (c ConfidenceLevel) String() string {
	switch c {
	case ConfidenceVeryHigh:
		return "VERY_HIGH"
	case ConfidenceHigh:
		return "HIGH"
	case ConfidenceMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// ParseConfidenceLevel maps a source-supplied confidence string onto a level.
// Unknown values are treated as low.
func ParseConfidenceLevel(s string) ConfidenceLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VERY_HIGH":
		return ConfidenceVeryHigh
	case "HIGH":
		return ConfidenceHigh
	case "MEDIUM":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
