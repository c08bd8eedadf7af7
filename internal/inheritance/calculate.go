package inheritance

import (
	"fmt"

	"inheritance-engine/internal/model"
)

// Report is the outcome of one calculation pass.
type Report struct {
	Results []model.CalculationResult
	Summary model.Summary
}

// Calculate distributes the estate over heirs and derives every reserved
// share. It returns one result per heir, in input order. Any error is a
// fatal arithmetic or consistency failure; incomplete heir data never is.
func Calculate(heirs []model.Person) (*Report, error) {
	d, err := Distribute(heirs)
	if err != nil {
		return nil, err
	}

	results := make([]model.CalculationResult, len(heirs))
	for i := range heirs {
		p := &heirs[i]
		reserved, err := ReservedShare(p.Relation, d.Shares[i])
		if err != nil {
			return nil, fmt.Errorf("reserved share of %s: %w", p.ID, err)
		}
		results[i] = model.CalculationResult{
			ID:             p.ID,
			Name:           p.Name,
			Relation:       p.Relation,
			StatutoryShare: d.Shares[i],
			ReservedShare:  reserved,
		}
	}

	summary := model.Summary{
		ActiveTier:   int(d.Tier),
		SpouseShare:  d.SpouseShare,
		SlotCount:    d.SlotCount(),
		PerSlotShare: d.PerSlotShare,
	}
	if d.Spouse >= 0 {
		summary.SpouseID = heirs[d.Spouse].ID
	}

	return &Report{Results: results, Summary: summary}, nil
}
