package income

import "context"

// IncomeService keeps the monthly income ledger
type IncomeService interface {
	SetIncome(ctx context.Context, req SetIncomeRequest) (IncomeResponse, error)
	// GetIncome returns 0 for a month without an entry
	GetIncome(ctx context.Context, month string) (IncomeResponse, error)
}
