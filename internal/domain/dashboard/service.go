package dashboard

import (
	"context"
	"time"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetSummary returns counts and totals for the month containing now
	GetSummary(ctx context.Context, now time.Time) (*SummaryResponse, error)

	// GetMonthlyEvaluation returns payroll, income, yearly spend, attendance performance and overtime for a month
	GetMonthlyEvaluation(ctx context.Context, month string) (*EvaluationResponse, error)
}
