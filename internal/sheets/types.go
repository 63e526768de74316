package sheets

import (
	"context"
	"time"

	"github.com/pocketplan/pocketplan/internal/model"
)

// Report bundles everything the spreadsheet export renders.
type Report struct {
	GeneratedAt time.Time
	Plan        *model.AllocationPlan
	Summary     model.FinancialSummary
	Breakdown   model.ExpenseBreakdown
}

// Exporter writes a report to an external spreadsheet.
type Exporter interface {
	Write(ctx context.Context, report *Report) error
}
