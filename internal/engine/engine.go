package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inheritance-engine/internal/inheritance"
	"inheritance-engine/internal/model"
	"inheritance-engine/internal/rational"
	"inheritance-engine/internal/validator"
)

// Process runs one validation pass and one distribution pass over the same
// heir list. Validation problems are reported alongside the shares; only an
// arithmetic or consistency failure of the distribution fails the outcome.
func Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	var allMessages []model.CalculationMessage
	outcome := model.OutcomeSuccess

	calc := model.Calculation{
		Results: []model.CalculationResult{},
	}

	// Validate
	calc.ValidationErrors = validator.Validate(req.Decedent, req.Heirs)
	if n := len(calc.ValidationErrors); n > 0 {
		allMessages = append(allMessages, model.CalculationMessage{
			ID:      len(allMessages),
			Level:   model.LevelWarning,
			Code:    "VALIDATION_ERRORS",
			Message: fmt.Sprintf("Heir list has %d validation error(s)", n),
		})
	}

	// Distribute
	report, err := inheritance.Calculate(req.Heirs)
	if err != nil {
		allMessages = append(allMessages, model.CalculationMessage{
			ID:      len(allMessages),
			Level:   model.LevelCritical,
			Code:    failureCode(err),
			Message: err.Error(),
		})
		outcome = model.OutcomeFailure
	} else {
		if req.Decedent.EstateValue != nil {
			addAmounts(report.Results, *req.Decedent.EstateValue)
		}
		calc.Results = report.Results
		calc.Summary = &report.Summary
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}
	calc.Messages = allMessages

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		Calculation: calc,
	}
}

// Validate runs only the validation pass.
func Validate(req *model.CalculationRequest) *model.ValidationResponse {
	errs := validator.Validate(req.Decedent, req.Heirs)
	return &model.ValidationResponse{
		Valid:            len(errs) == 0,
		ValidationErrors: errs,
	}
}

func failureCode(err error) string {
	switch {
	case errors.Is(err, rational.ErrOverflow):
		return "SHARE_OVERFLOW"
	case errors.Is(err, inheritance.ErrShareSumMismatch):
		return "SHARE_SUM_MISMATCH"
	}
	return "CALCULATION_FAILED"
}

// addAmounts sets the monetary value of each share. Amounts are exact up to
// decimal's division precision and are not rounded to a currency unit.
func addAmounts(results []model.CalculationResult, estate decimal.Decimal) {
	for i := range results {
		r := &results[i]
		amount := amountOf(estate, r.StatutoryShare)
		reserved := amountOf(estate, r.ReservedShare)
		r.Amount = &amount
		r.ReservedAmount = &reserved
	}
}

func amountOf(estate decimal.Decimal, share rational.Fraction) decimal.Decimal {
	return estate.Mul(decimal.NewFromInt(share.Num())).Div(decimal.NewFromInt(share.Den()))
}
