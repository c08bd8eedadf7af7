package inheritance

import (
	"errors"
	"fmt"

	"inheritance-engine/internal/model"
	"inheritance-engine/internal/rational"
)

// ErrShareSumMismatch means the computed shares do not add up to the whole
// estate (or to zero when nobody inherits). It indicates a defect, not bad
// input.
var ErrShareSumMismatch = errors.New("inheritance: statutory shares do not sum to one")

var (
	half      = rational.MustNew(1, 2)
	twoThirds = rational.MustNew(2, 3)
)

// Distribution is the statutory split of one heir list. Shares is indexed
// like the input list.
type Distribution struct {
	Tier         Tier
	Spouse       int
	SpouseShare  rational.Fraction
	SlotHolders  []int
	PerSlotShare rational.Fraction
	Shares       []rational.Fraction
}

// SlotCount is the number of slots the estate was divided into, counting the
// spouse.
func (d *Distribution) SlotCount() int {
	n := len(d.SlotHolders)
	if d.Spouse >= 0 {
		n++
	}
	return n
}

// Distribute computes every heir's statutory share. Heirs that take no part
// (renounced, outside the active tier, dangling references) get zero.
func Distribute(heirs []model.Person) (*Distribution, error) {
	a := newArena(heirs)
	d := &Distribution{
		Tier:         a.activeTier(),
		Spouse:       a.currentSpouse(),
		SpouseShare:  rational.Zero,
		PerSlotShare: rational.Zero,
		Shares:       make([]rational.Fraction, len(heirs)),
	}
	for i := range d.Shares {
		d.Shares[i] = rational.Zero
	}
	if d.Tier != TierNone {
		d.SlotHolders = a.slotHolders(d.Tier)
	}

	if err := d.splitSlots(); err != nil {
		return nil, err
	}
	if d.Spouse >= 0 {
		d.Shares[d.Spouse] = d.SpouseShare
	}

	w := &walker{arena: a, shares: d.Shares, visited: make(map[string]bool)}
	for _, i := range d.SlotHolders {
		if err := w.assign(i, d.PerSlotShare); err != nil {
			return nil, err
		}
	}

	if err := checkSum(d.Shares); err != nil {
		return nil, err
	}
	return d, nil
}

// splitSlots applies the spouse rule of the active tier and sets the share
// of one slot holder.
func (d *Distribution) splitSlots() error {
	holders := int64(len(d.SlotHolders))
	hasSpouse := d.Spouse >= 0

	var err error
	switch {
	case d.Tier == TierNone:
		if hasSpouse {
			d.SpouseShare = rational.One
		}
		return nil
	case !hasSpouse:
		d.PerSlotShare, err = rational.One.DivInt(holders)
	case d.Tier == TierChildren:
		d.PerSlotShare, err = rational.One.DivInt(holders + 1)
		d.SpouseShare = d.PerSlotShare
	case d.Tier == TierParents, d.Tier == TierSiblings:
		d.SpouseShare = half
		d.PerSlotShare, err = remainderPerSlot(half, holders)
	case d.Tier == TierGrandparents:
		d.SpouseShare = twoThirds
		d.PerSlotShare, err = remainderPerSlot(twoThirds, holders)
	}
	if err != nil {
		return fmt.Errorf("split %s tier: %w", d.Tier, err)
	}
	return nil
}

func remainderPerSlot(spouse rational.Fraction, holders int64) (rational.Fraction, error) {
	rest, err := rational.One.Sub(spouse)
	if err != nil {
		return rational.Fraction{}, err
	}
	return rest.DivInt(holders)
}

// walker hands a slot share down representation and re-transfer lines.
type walker struct {
	*arena
	shares  []rational.Fraction
	visited map[string]bool
}

func (w *walker) assign(i int, share rational.Fraction) error {
	p := &w.heirs[i]
	if w.visited[p.ID] {
		w.shares[i] = rational.Zero
		return nil
	}
	w.visited[p.ID] = true

	passes := p.Status.IsDead() || p.Status == model.StatusReTransfer
	if !passes {
		w.shares[i] = share
		return nil
	}

	next := w.successors(i, map[string]bool{p.ID: true})
	if len(next) == 0 {
		// A re-transfer heir at the end of its line keeps the share; a
		// dead heir without successors leaves it unassigned.
		if p.Status == model.StatusReTransfer && !p.IsRoot() {
			w.shares[i] = share
		}
		return nil
	}

	w.shares[i] = rational.Zero
	part, err := share.DivInt(int64(len(next)))
	if err != nil {
		return fmt.Errorf("split share of %s: %w", p.ID, err)
	}
	for _, c := range next {
		if err := w.assign(c, part); err != nil {
			return err
		}
	}
	return nil
}

func checkSum(shares []rational.Fraction) error {
	positive := false
	for _, s := range shares {
		if s.IsPositive() {
			positive = true
			break
		}
	}
	sum, err := rational.Sum(shares...)
	if err != nil {
		return fmt.Errorf("sum shares: %w", err)
	}

	want := rational.Zero
	if positive {
		want = rational.One
	}
	if !sum.Equal(want) {
		return fmt.Errorf("%w: got %s, want %s", ErrShareSumMismatch, sum, want)
	}
	return nil
}
