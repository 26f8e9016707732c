// Package sim provides the event-driven simulator that drives a built
// hwgraph module hierarchy: virtual time, continuous-assign propagation,
// Combinational re-evaluation, and clock-edge sequential commit.
package sim

import "math/big"

// VTime is a non-negative integer-or-rational virtual time value. It is
// immutable: every method returns a new VTime rather than mutating the
// receiver.
type VTime struct {
	r *big.Rat
}

// ZeroTime is t = 0.
func ZeroTime() VTime { return VTime{r: big.NewRat(0, 1)} }

// AtTick returns the virtual time n (an integer number of ticks).
func AtTick(n int64) VTime { return VTime{r: big.NewRat(n, 1)} }

// AtRational returns the virtual time num/den.
func AtRational(num, den int64) VTime { return VTime{r: big.NewRat(num, den)} }

// Add returns t + d.
func (t VTime) Add(d VTime) VTime { return VTime{r: new(big.Rat).Add(t.r, d.r)} }

// Compare returns -1, 0, or 1 as t is less than, equal to, or greater than o.
func (t VTime) Compare(o VTime) int { return t.r.Cmp(o.r) }

// String renders t as a rational number, e.g. "3" or "5/2".
func (t VTime) String() string { return t.r.RatString() }
