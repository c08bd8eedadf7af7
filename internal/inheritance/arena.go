package inheritance

import "inheritance-engine/internal/model"

// arena indexes an immutable heir list by back-reference.
type arena struct {
	heirs    []model.Person
	children map[string][]int
}

func newArena(heirs []model.Person) *arena {
	a := &arena{
		heirs:    heirs,
		children: make(map[string][]int),
	}
	for i := range heirs {
		p := &heirs[i]
		if !p.IsRoot() {
			a.children[p.RepresentedID] = append(a.children[p.RepresentedID], i)
		}
	}
	return a
}

// roots returns the direct claimants of tier t in input order.
func (a *arena) roots(t Tier) []int {
	var out []int
	for i := range a.heirs {
		p := &a.heirs[i]
		if p.IsRoot() && Classify(p.Relation) == t {
			out = append(out, i)
		}
	}
	return out
}

// successorCandidates returns the heirs that may step into i's slot: the
// representation line for a dead heir, the re-transfer line for a
// re-transfer heir.
func (a *arena) successorCandidates(i int) []int {
	p := &a.heirs[i]
	var out []int
	for _, c := range a.children[p.ID] {
		s := a.heirs[c].Status
		switch {
		case p.Status.IsDead() && (s == model.StatusRepresentation || s.IsDead()):
			out = append(out, c)
		case p.Status == model.StatusReTransfer && s == model.StatusReTransfer:
			out = append(out, c)
		}
	}
	return out
}

// successors returns the candidates that can actually receive a share.
// visited holds the IDs already on the current walk.
func (a *arena) successors(i int, visited map[string]bool) []int {
	var out []int
	for _, c := range a.successorCandidates(i) {
		if a.receives(c, visited) {
			out = append(out, c)
		}
	}
	return out
}

// receives reports whether descendant c ends up holding a share, either
// itself or through its own successors.
func (a *arena) receives(c int, visited map[string]bool) bool {
	p := &a.heirs[c]
	if visited[p.ID] {
		return false
	}
	switch {
	case p.Status == model.StatusRepresentation, p.Status == model.StatusReTransfer:
		return true
	case p.Status.IsDead():
		visited[p.ID] = true
		defer delete(visited, p.ID)
		return len(a.successors(c, visited)) > 0
	}
	return false
}
