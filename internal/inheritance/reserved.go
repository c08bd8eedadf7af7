package inheritance

import (
	"inheritance-engine/internal/model"
	"inheritance-engine/internal/rational"
)

var third = rational.MustNew(1, 3)

// ReservedRatio is the fraction of the statutory share that is reserved for
// an heir of relation r.
func ReservedRatio(r model.Relation) rational.Fraction {
	switch r {
	case model.RelationChild, model.RelationFather, model.RelationMother,
		model.RelationSpouse, model.RelationChildSpouse:
		return half
	case model.RelationSibling,
		model.RelationPaternalGrandfather, model.RelationPaternalGrandmother,
		model.RelationMaternalGrandfather, model.RelationMaternalGrandmother:
		return third
	}
	return rational.Zero
}

// ReservedShare returns statutory * ReservedRatio(r).
func ReservedShare(r model.Relation, statutory rational.Fraction) (rational.Fraction, error) {
	return statutory.Mul(ReservedRatio(r))
}
