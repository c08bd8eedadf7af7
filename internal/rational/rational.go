// Package rational implements exact fractions whose reduced components stay
// inside the range of integers a JSON consumer can represent without loss.
//
// Every constructor and arithmetic operation reduces its result and fails
// with ErrOverflow instead of wrapping when a reduced component would leave
// that range. Intermediates are computed in arbitrary precision so that only
// the final, reduced value is range-checked.
package rational

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	json "github.com/goccy/go-json"
)

// MaxSafeInteger is the largest integer a float64 (and therefore a JSON
// number in most consumers) represents exactly: 2^53 - 1.
const MaxSafeInteger = 1<<53 - 1

var (
	ErrZeroDenominator = errors.New("rational: zero denominator")
	ErrDivisionByZero  = errors.New("rational: division by zero")
	ErrOverflow        = errors.New("rational: component exceeds safe integer range")
)

var (
	maxSafe = big.NewInt(MaxSafeInteger)
	minSafe = big.NewInt(-MaxSafeInteger)
)

var (
	Zero = Fraction{num: 0, den: 1}
	One  = Fraction{num: 1, den: 1}
)

// Fraction is an immutable, always-reduced rational number with a strictly
// positive denominator. The zero value is 0/1.
type Fraction struct {
	num int64
	den int64
}

// New builds num/den reduced by their greatest common divisor with the sign
// carried on the numerator.
func New(num, den int64) (Fraction, error) {
	return fromBig(big.NewInt(num), big.NewInt(den))
}

// MustNew is New for constants and tests; it panics on error.
func MustNew(num, den int64) Fraction {
	f, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return f
}

// Int returns n/1.
func Int(n int64) (Fraction, error) {
	return New(n, 1)
}

func fromBig(n, d *big.Int) (Fraction, error) {
	if d.Sign() == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	n = new(big.Int).Set(n)
	d = new(big.Int).Set(d)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return Zero, nil
	}

	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	n.Quo(n, g)
	d.Quo(d, g)

	if !inSafeRange(n) || !inSafeRange(d) {
		return Fraction{}, fmt.Errorf("%w: %s/%s", ErrOverflow, n, d)
	}
	return Fraction{num: n.Int64(), den: d.Int64()}, nil
}

func inSafeRange(v *big.Int) bool {
	return v.Cmp(maxSafe) <= 0 && v.Cmp(minSafe) >= 0
}

// norm maps the zero value onto 0/1 so that every method can rely on a
// positive denominator.
func (f Fraction) norm() Fraction {
	if f.den == 0 {
		return Zero
	}
	return f
}

// reduced re-applies gcd reduction. Fractions built by this package are
// already reduced; this keeps Equal independent of that guarantee.
func (f Fraction) reduced() Fraction {
	f = f.norm()
	if f.num == 0 {
		return Zero
	}
	g := gcd(abs(f.num), f.den)
	return Fraction{num: f.num / g, den: f.den / g}
}

func (f Fraction) Num() int64 { return f.norm().num }

func (f Fraction) Den() int64 { return f.norm().den }

func (f Fraction) Sign() int {
	switch {
	case f.num > 0:
		return 1
	case f.num < 0:
		return -1
	}
	return 0
}

func (f Fraction) IsZero() bool { return f.num == 0 }

func (f Fraction) IsPositive() bool { return f.num > 0 }

func (f Fraction) Neg() Fraction {
	f = f.norm()
	return Fraction{num: -f.num, den: f.den}
}

// Add returns f + o. Both operands are scaled to the least common
// denominator derived from gcd(f.den, o.den) rather than f.den*o.den.
func (f Fraction) Add(o Fraction) (Fraction, error) {
	a, b := f.norm(), o.norm()
	g := gcd(a.den, b.den)

	n := new(big.Int).Mul(big.NewInt(a.num), big.NewInt(b.den/g))
	n.Add(n, new(big.Int).Mul(big.NewInt(b.num), big.NewInt(a.den/g)))
	d := new(big.Int).Mul(big.NewInt(a.den), big.NewInt(b.den/g))

	return fromBig(n, d)
}

// Sub returns f - o.
func (f Fraction) Sub(o Fraction) (Fraction, error) {
	return f.Add(o.Neg())
}

// Mul returns f * o, cross-reducing each numerator against the opposite
// denominator before multiplying.
func (f Fraction) Mul(o Fraction) (Fraction, error) {
	a, b := f.norm(), o.norm()
	if a.num == 0 || b.num == 0 {
		return Zero, nil
	}
	g1 := gcd(abs(a.num), b.den)
	g2 := gcd(abs(b.num), a.den)

	n := new(big.Int).Mul(big.NewInt(a.num/g1), big.NewInt(b.num/g2))
	d := new(big.Int).Mul(big.NewInt(a.den/g2), big.NewInt(b.den/g1))

	return fromBig(n, d)
}

// Div returns f / o. Dividing by a zero-valued fraction is an error.
func (f Fraction) Div(o Fraction) (Fraction, error) {
	b := o.norm()
	if b.num == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	inv := Fraction{num: b.den, den: b.num}
	if inv.den < 0 {
		inv.num, inv.den = -inv.num, -inv.den
	}
	return f.Mul(inv)
}

// DivInt returns f / n.
func (f Fraction) DivInt(n int64) (Fraction, error) {
	if n == 0 {
		return Fraction{}, ErrDivisionByZero
	}
	d, err := Int(n)
	if err != nil {
		return Fraction{}, err
	}
	return f.Div(d)
}

// Equal reduces each side independently and compares components. It never
// cross-multiplies the operands.
func (f Fraction) Equal(o Fraction) bool {
	a, b := f.reduced(), o.reduced()
	return a.num == b.num && a.den == b.den
}

// Cmp returns -1, 0 or +1 depending on whether f is less than, equal to or
// greater than o.
func (f Fraction) Cmp(o Fraction) int {
	if f.Equal(o) {
		return 0
	}
	a, b := f.norm(), o.norm()
	l := new(big.Int).Mul(big.NewInt(a.num), big.NewInt(b.den))
	r := new(big.Int).Mul(big.NewInt(b.num), big.NewInt(a.den))
	return l.Cmp(r)
}

// Sum adds fs left to right.
func Sum(fs ...Fraction) (Fraction, error) {
	total := Zero
	for _, f := range fs {
		var err error
		if total, err = total.Add(f); err != nil {
			return Fraction{}, err
		}
	}
	return total, nil
}

// String renders "n/d", "n" for integer values and "0" for zero.
func (f Fraction) String() string {
	f = f.norm()
	switch {
	case f.num == 0:
		return "0"
	case f.den == 1:
		return strconv.FormatInt(f.num, 10)
	}
	return strconv.FormatInt(f.num, 10) + "/" + strconv.FormatInt(f.den, 10)
}

// Percent renders f*100 with at most one decimal place, rounding half away
// from zero and dropping a trailing ".0": 1/3 -> "33.3%", 1/2 -> "50%".
func (f Fraction) Percent() string {
	f = f.norm()
	tenths := new(big.Int).Mul(big.NewInt(abs(f.num)), big.NewInt(1000))
	den := big.NewInt(f.den)
	q, r := new(big.Int).QuoRem(tenths, den, new(big.Int))
	if new(big.Int).Mul(r, big.NewInt(2)).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	whole, frac := new(big.Int).QuoRem(q, big.NewInt(10), new(big.Int))
	s := whole.String()
	if frac.Sign() != 0 {
		s += "." + frac.String()
	}
	if f.num < 0 && q.Sign() != 0 {
		s = "-" + s
	}
	return s + "%"
}

type wireFraction struct {
	Numerator   int64  `json:"numerator"`
	Denominator int64  `json:"denominator"`
	Text        string `json:"text,omitempty"`
	Percent     string `json:"percent,omitempty"`
}

func (f Fraction) MarshalJSON() ([]byte, error) {
	f = f.norm()
	return json.Marshal(wireFraction{
		Numerator:   f.num,
		Denominator: f.den,
		Text:        f.String(),
		Percent:     f.Percent(),
	})
}

// UnmarshalJSON reads numerator and denominator and re-reduces them; text
// and percent are ignored.
func (f *Fraction) UnmarshalJSON(data []byte) error {
	var w wireFraction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	v, err := New(w.Numerator, w.Denominator)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
