// Package inheritance computes statutory and reserved shares of an estate
// across four priority tiers of blood relatives plus the spouse, including
// representation and re-transfer chains.
//
// The heir list is treated as an arena keyed by heir ID. Back-references
// (RepresentedID) are looked up by ID and are never assumed to be acyclic:
// every downward walk carries a visited set.
package inheritance

import "inheritance-engine/internal/model"

// Tier is a priority order of blood relatives. Lower values win.
type Tier int

const (
	TierNone Tier = iota
	TierChildren
	TierParents
	TierSiblings
	TierGrandparents
)

func (t Tier) String() string {
	switch t {
	case TierChildren:
		return "children"
	case TierParents:
		return "parents"
	case TierSiblings:
		return "siblings"
	case TierGrandparents:
		return "grandparents"
	}
	return "none"
}

// Classify maps a relation onto its tier. Spouses and children's spouses
// belong to no tier.
func Classify(r model.Relation) Tier {
	switch r {
	case model.RelationChild:
		return TierChildren
	case model.RelationFather, model.RelationMother:
		return TierParents
	case model.RelationSibling:
		return TierSiblings
	case model.RelationPaternalGrandfather, model.RelationPaternalGrandmother,
		model.RelationMaternalGrandfather, model.RelationMaternalGrandmother:
		return TierGrandparents
	case model.RelationSpouse, model.RelationChildSpouse:
		return TierNone
	}
	// Only an unset or unknown relation gets here.
	return TierNone
}
