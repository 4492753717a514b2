package income

import "github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"

type SetIncomeRequest struct {
	Month  string `json:"-"`
	Amount int64  `json:"amount"`
}

func (r *SetIncomeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	if r.Amount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IncomeResponse struct {
	Month           string `json:"month"`
	Amount          int64  `json:"amount"`
	AmountFormatted string `json:"amount_formatted"`
}
