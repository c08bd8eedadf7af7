package model

import (
	"github.com/shopspring/decimal"

	"inheritance-engine/internal/rational"
)

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	Calculation         Calculation         `json:"calculation"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type Calculation struct {
	Messages         []CalculationMessage `json:"messages"`
	Summary          *Summary             `json:"summary,omitempty"`
	Results          []CalculationResult  `json:"results"`
	ValidationErrors []ValidationError    `json:"validation_errors"`
}

// CalculationResult is the computed share of one heir. There is exactly one
// per input heir, in input order.
type CalculationResult struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Relation       Relation          `json:"relation"`
	StatutoryShare rational.Fraction `json:"statutory_share"`
	ReservedShare  rational.Fraction `json:"reserved_share"`
	Amount         *decimal.Decimal  `json:"amount,omitempty"`
	ReservedAmount *decimal.Decimal  `json:"reserved_amount,omitempty"`
}

// Summary describes how the estate was split.
type Summary struct {
	ActiveTier   int               `json:"active_tier"`
	SpouseID     string            `json:"spouse_id,omitempty"`
	SpouseShare  rational.Fraction `json:"spouse_share"`
	SlotCount    int               `json:"slot_count"`
	PerSlotShare rational.Fraction `json:"per_slot_share"`
}

type ValidationResponse struct {
	Valid            bool              `json:"valid"`
	ValidationErrors []ValidationError `json:"validation_errors"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
