package inheritance

import "inheritance-engine/internal/model"

// ActiveTier returns the highest-priority tier that has at least one
// inheritable direct claimant, or TierNone.
func ActiveTier(heirs []model.Person) Tier {
	return newArena(heirs).activeTier()
}

func (a *arena) activeTier() Tier {
	for t := TierChildren; t <= TierGrandparents; t++ {
		for _, i := range a.roots(t) {
			if a.inheritable(i) {
				return t
			}
		}
	}
	return TierNone
}

// slotHolders returns the inheritable direct claimants of tier t.
func (a *arena) slotHolders(t Tier) []int {
	var out []int
	for _, i := range a.roots(t) {
		if a.inheritable(i) {
			out = append(out, i)
		}
	}
	return out
}

// inheritable decides whether a direct claimant occupies a slot:
//   - renounced never does;
//   - normal always does;
//   - a dead claimant does only with a living representation line;
//   - a re-transfer origin does only if some re-transfer heir references it.
func (a *arena) inheritable(i int) bool {
	p := &a.heirs[i]
	switch {
	case p.Status == model.StatusRenounced:
		return false
	case p.Status == model.StatusNormal:
		return true
	case p.Status.IsDead():
		return len(a.successors(i, map[string]bool{p.ID: true})) > 0
	case p.Status == model.StatusReTransfer && p.IsRoot():
		return len(a.successorCandidates(i)) > 0
	}
	return false
}

// currentSpouse returns the index of the first root-level spouse who is
// alive and not divorced, or -1. A spouse with a back-reference belongs to
// that heir's line, not to the decedent.
func (a *arena) currentSpouse() int {
	for i := range a.heirs {
		p := &a.heirs[i]
		if p.IsRoot() && p.Relation == model.RelationSpouse && p.Status == model.StatusNormal && p.DivorceDate == "" {
			return i
		}
	}
	return -1
}
