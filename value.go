package hwgraph

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// BitState is one of the four states a single bit of a Value can hold.
//
type BitState uint8

const (
	Zero BitState = iota
	One
	X
	Z
)

func (b BitState) rune() rune {
	switch b {
	case Zero:
		return '0'
	case One:
		return '1'
	case Z:
		return 'z'
	default:
		return 'x'
	}
}

// combine implements the wire-OR resolution of two bit states driving the
// same node: equal states pass through, an undefined operand dominates,
// and a high-impedance operand yields to a defined one. This is the same
// four-state combine rule used to model multiple drivers settling on a
// single net.
func combine(a, b BitState) BitState {
	switch {
	case a == b:
		return a
	case a == X || b == X:
		return X
	case a == Z:
		return b
	case b == Z:
		return a
	default:
		return X
	}
}

// Value is an immutable four-state bit-vector of a fixed declared width.
// Widths up to 64 bits are stored in three uint64 bit-planes; wider values
// fall back to big.Int planes, mirroring how a real four-state simulator
// represents values with no native hardware counterpart.
//
type Value struct {
	width uint
	bits  uint64
	hiz   uint64
	undef uint64

	wbits  *big.Int
	whiz   *big.Int
	wundef *big.Int
}

const smallWidth = 64

func (v Value) wide() bool { return v.width > smallWidth }

// NewValue returns a width-w value initialized from the low w bits of bits.
// Bits beyond w are ignored.
//
func NewValue(w uint, bits uint64) Value {
	if w == 0 {
		panic("hwgraph: zero-width value")
	}
	if w <= smallWidth {
		return Value{width: w, bits: bits & mask64(w)}
	}
	v := Value{width: w, wbits: new(big.Int), whiz: new(big.Int), wundef: new(big.Int)}
	v.wbits.SetUint64(bits)
	return v
}

// UndefinedValue returns a width-w value with every bit set to X.
//
func UndefinedValue(w uint) Value {
	if w == 0 {
		panic("hwgraph: zero-width value")
	}
	if w <= smallWidth {
		return Value{width: w, undef: mask64(w)}
	}
	v := Value{width: w, wbits: new(big.Int), whiz: new(big.Int), wundef: new(big.Int)}
	v.wundef.Sub(new(big.Int).Lsh(big.NewInt(1), w), big.NewInt(1))
	return v
}

// ValueFromBits parses a most-significant-bit-first literal of '0','1','x'/'X','z'/'Z'
// characters into a Value whose width is len(literal).
//
func ValueFromBits(literal string) (Value, error) {
	w := uint(len(literal))
	if w == 0 {
		return Value{}, errors.New("hwgraph: empty bit literal")
	}
	v := UndefinedValue(w)
	for i, r := range literal {
		bit := w - 1 - uint(i)
		var s BitState
		switch r {
		case '0':
			s = Zero
		case '1':
			s = One
		case 'x', 'X':
			s = X
		case 'z', 'Z':
			s = Z
		default:
			return Value{}, errors.Errorf("hwgraph: invalid bit character %q in literal %q", r, literal)
		}
		v = v.WithBit(bit, s)
	}
	return v, nil
}

func mask64(w uint) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// Width returns the declared width of v.
func (v Value) Width() uint { return v.width }

// Bit returns the state of bit i (0 is least significant).
//
func (v Value) Bit(i uint) BitState {
	if i >= v.width {
		panic("hwgraph: bit index out of range")
	}
	if !v.wide() {
		m := uint64(1) << i
		switch {
		case v.undef&m != 0:
			return X
		case v.hiz&m != 0:
			return Z
		case v.bits&m != 0:
			return One
		default:
			return Zero
		}
	}
	switch {
	case v.wundef.Bit(int(i)) == 1:
		return X
	case v.whiz.Bit(int(i)) == 1:
		return Z
	case v.wbits.Bit(int(i)) == 1:
		return One
	default:
		return Zero
	}
}

// WithBit returns a copy of v with bit i set to s.
//
func (v Value) WithBit(i uint, s BitState) Value {
	if i >= v.width {
		panic("hwgraph: bit index out of range")
	}
	if !v.wide() {
		m := uint64(1) << i
		r := v
		switch s {
		case Zero:
			r.bits &^= m
			r.hiz &^= m
			r.undef &^= m
		case One:
			r.bits |= m
			r.hiz &^= m
			r.undef &^= m
		case Z:
			r.hiz |= m
			r.undef &^= m
		case X:
			r.undef |= m
			r.hiz &^= m
		}
		return r
	}
	r := Value{width: v.width, wbits: new(big.Int).Set(v.wbits), whiz: new(big.Int).Set(v.whiz), wundef: new(big.Int).Set(v.wundef)}
	switch s {
	case Zero:
		r.wbits.SetBit(r.wbits, int(i), 0)
		r.whiz.SetBit(r.whiz, int(i), 0)
		r.wundef.SetBit(r.wundef, int(i), 0)
	case One:
		r.wbits.SetBit(r.wbits, int(i), 1)
		r.whiz.SetBit(r.whiz, int(i), 0)
		r.wundef.SetBit(r.wundef, int(i), 0)
	case Z:
		r.whiz.SetBit(r.whiz, int(i), 1)
		r.wundef.SetBit(r.wundef, int(i), 0)
	case X:
		r.wundef.SetBit(r.wundef, int(i), 1)
		r.whiz.SetBit(r.whiz, int(i), 0)
	}
	return r
}

// IsDefined reports whether every bit of v is 0 or 1.
func (v Value) IsDefined() bool {
	if !v.wide() {
		return v.hiz == 0 && v.undef == 0
	}
	var zero big.Int
	return v.whiz.Cmp(&zero) == 0 && v.wundef.Cmp(&zero) == 0
}

// Equal reports bit-exact, width-exact equality.
//
func (v Value) Equal(o Value) bool {
	if v.width != o.width {
		return false
	}
	if !v.wide() {
		return v.bits == o.bits && v.hiz == o.hiz && v.undef == o.undef
	}
	return v.wbits.Cmp(o.wbits) == 0 && v.whiz.Cmp(o.whiz) == 0 && v.wundef.Cmp(o.wundef) == 0
}

// String renders v MSB-first using 0/1/x/z.
//
func (v Value) String() string {
	var b strings.Builder
	b.Grow(int(v.width))
	for i := int(v.width) - 1; i >= 0; i-- {
		b.WriteRune(v.Bit(uint(i)).rune())
	}
	return b.String()
}

// Uint64 returns v as an unsigned integer, or an XZPropagation error if v
// contains any X or Z bit.
//
func (v Value) Uint64() (uint64, error) {
	if !v.IsDefined() {
		return 0, newErr(XZPropagation, "hwgraph: value "+v.String()+" has undefined bits")
	}
	if !v.wide() {
		return v.bits, nil
	}
	return v.wbits.Uint64(), nil
}

// BigInt returns v as an unsigned big.Int, or an XZPropagation error if v
// contains any X or Z bit.
//
func (v Value) BigInt() (*big.Int, error) {
	if !v.IsDefined() {
		return nil, newErr(XZPropagation, "hwgraph: value "+v.String()+" has undefined bits")
	}
	if !v.wide() {
		return new(big.Int).SetUint64(v.bits), nil
	}
	return new(big.Int).Set(v.wbits), nil
}

func perBit(a, b Value, width uint, f func(x, y BitState) BitState) Value {
	r := UndefinedValue(width)
	for i := uint(0); i < width; i++ {
		var x, y BitState = Zero, Zero
		if i < a.width {
			x = a.Bit(i)
		}
		if i < b.width {
			y = b.Bit(i)
		}
		r = r.WithBit(i, f(x, y))
	}
	return r
}

func maxWidth(a, b Value) uint {
	if a.width > b.width {
		return a.width
	}
	return b.width
}

// And returns the bitwise AND of v and o, zero-extended to the wider operand's width.
func (v Value) And(o Value) Value {
	return perBit(v, o, maxWidth(v, o), func(x, y BitState) BitState {
		if x == Zero || y == Zero {
			return Zero
		}
		if x == One && y == One {
			return One
		}
		return X
	})
}

// Or returns the bitwise OR of v and o, zero-extended to the wider operand's width.
func (v Value) Or(o Value) Value {
	return perBit(v, o, maxWidth(v, o), func(x, y BitState) BitState {
		if x == One || y == One {
			return One
		}
		if x == Zero && y == Zero {
			return Zero
		}
		return X
	})
}

// Xor returns the bitwise XOR of v and o, zero-extended to the wider operand's width.
func (v Value) Xor(o Value) Value {
	return perBit(v, o, maxWidth(v, o), func(x, y BitState) BitState {
		if x == X || y == X || x == Z || y == Z {
			return X
		}
		if x == y {
			return Zero
		}
		return One
	})
}

// Not returns the bitwise complement of v.
func (v Value) Not() Value {
	r := UndefinedValue(v.width)
	for i := uint(0); i < v.width; i++ {
		b := v.Bit(i)
		switch b {
		case Zero:
			r = r.WithBit(i, One)
		case One:
			r = r.WithBit(i, Zero)
		default:
			r = r.WithBit(i, X)
		}
	}
	return r
}

// Shl returns v logically shifted left by n, zero-filling from the right,
// at v's own width.
func (v Value) Shl(n uint) Value {
	r := UndefinedValue(v.width)
	for i := uint(0); i < v.width; i++ {
		if i < n {
			r = r.WithBit(i, Zero)
			continue
		}
		r = r.WithBit(i, v.Bit(i-n))
	}
	return r
}

// Shr returns v logically shifted right by n, zero-filling from the left,
// at v's own width.
func (v Value) Shr(n uint) Value {
	r := UndefinedValue(v.width)
	for i := uint(0); i < v.width; i++ {
		src := i + n
		if src >= v.width {
			r = r.WithBit(i, Zero)
			continue
		}
		r = r.WithBit(i, v.Bit(src))
	}
	return r
}

// Slice returns bits [lo, hi] of v (inclusive, hi >= lo), as a value of width hi-lo+1.
func (v Value) Slice(hi, lo uint) Value {
	if hi < lo || hi >= v.width {
		panic("hwgraph: invalid slice bounds")
	}
	w := hi - lo + 1
	r := UndefinedValue(w)
	for i := uint(0); i < w; i++ {
		r = r.WithBit(i, v.Bit(lo+i))
	}
	return r
}

// Concat concatenates values MSB-first: Concat(a, b) places a in the high
// bits and b in the low bits of the result.
func Concat(values ...Value) Value {
	total := uint(0)
	for _, v := range values {
		total += v.width
	}
	r := UndefinedValue(total)
	pos := uint(0)
	for i := len(values) - 1; i >= 0; i-- {
		v := values[i]
		for b := uint(0); b < v.width; b++ {
			r = r.WithBit(pos+b, v.Bit(b))
		}
		pos += v.width
	}
	return r
}

// contaminated reports whether any bit of v is X or Z; arithmetic ops
// collapse to all-X when any operand is contaminated.
func contaminated(v Value) bool { return !v.IsDefined() }

// valueFromBigInt builds a fully-defined width-w value from a non-negative
// big.Int, truncating to the low w bits.
func valueFromBigInt(w uint, x *big.Int) Value {
	m := new(big.Int).Lsh(big.NewInt(1), w)
	x = new(big.Int).Mod(x, m)
	if w <= smallWidth {
		return NewValue(w, x.Uint64())
	}
	v := Value{width: w, wbits: new(big.Int).Set(x), whiz: new(big.Int), wundef: new(big.Int)}
	return v
}

// arith implements the contaminate-to-all-X rule shared by Add/Sub/Mul: if
// either operand carries an X or Z bit, the whole result is undefined at
// the requested width; otherwise f computes the defined result.
func arith(a, b Value, width uint, f func(x, y *big.Int) *big.Int) Value {
	if contaminated(a) || contaminated(b) {
		return UndefinedValue(width)
	}
	ai, _ := a.BigInt()
	bi, _ := b.BigInt()
	return valueFromBigInt(width, f(ai, bi))
}

// Add returns v + o, contaminating to all-X if either operand has an X/Z
// bit, at the wider operand's width.
func (v Value) Add(o Value) Value {
	w := maxWidth(v, o)
	return arith(v, o, w, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) })
}

// Sub returns v - o (modulo 2^width), contaminating to all-X if either
// operand has an X/Z bit, at the wider operand's width.
func (v Value) Sub(o Value) Value {
	w := maxWidth(v, o)
	return arith(v, o, w, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) })
}

// Mul returns v * o, contaminating to all-X if either operand has an X/Z
// bit, at the wider operand's width.
func (v Value) Mul(o Value) Value {
	w := maxWidth(v, o)
	return arith(v, o, w, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) })
}
