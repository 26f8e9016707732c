package hwgraph

// exprOp identifies the operation an exprDriver evaluates. Kept as a small
// closed set rather than an arbitrary closure so that the synthesizer (see
// hwgraph/synth) can recover the operator and render it as SystemVerilog
// instead of only being able to run it.
//
type exprOp int

const (
	opAnd exprOp = iota
	opOr
	opXor
	opNot
	opAdd
	opSub
	opMul
	opShl
	opShr
	opSlice
	opSwizzle
)

// exprDriver is the Driver implementation backing every derived signal
// returned by Logic's operator methods.
type exprDriver struct {
	op       exprOp
	operands []*Logic
	width    uint
	hi, lo   uint // opSlice bounds
	amount   uint // opShl/opShr amount
}

func (e *exprDriver) Eval() Value {
	switch e.op {
	case opNot:
		return e.operands[0].Value().Not()
	case opAnd:
		return e.operands[0].Value().And(e.operands[1].Value())
	case opOr:
		return e.operands[0].Value().Or(e.operands[1].Value())
	case opXor:
		return e.operands[0].Value().Xor(e.operands[1].Value())
	case opAdd:
		return e.operands[0].Value().Add(e.operands[1].Value())
	case opSub:
		return e.operands[0].Value().Sub(e.operands[1].Value())
	case opMul:
		return e.operands[0].Value().Mul(e.operands[1].Value())
	case opShl:
		return e.operands[0].Value().Shl(e.amount)
	case opShr:
		return e.operands[0].Value().Shr(e.amount)
	case opSlice:
		return e.operands[0].Value().Slice(e.hi, e.lo)
	case opSwizzle:
		vs := make([]Value, len(e.operands))
		for i, o := range e.operands {
			vs[i] = o.Value()
		}
		return Concat(vs...)
	default:
		panic("hwgraph: unknown expression operator")
	}
}

// derive creates a new unnamed signal continuously driven by d, wires up
// its dests bookkeeping via Gets, and panics only on the impossible
// DriverConflict case (a brand-new signal can never already have a
// source).
func derive(width uint, d *exprDriver) *Logic {
	d.width = width
	l := NewLogic(width, "")
	if err := l.Gets(d); err != nil {
		panic(err)
	}
	return l
}

// And returns a new signal continuously driven by l & o.
func (l *Logic) And(o *Logic) *Logic {
	return derive(maxu(l.width, o.width), &exprDriver{op: opAnd, operands: []*Logic{l, o}})
}

// Or returns a new signal continuously driven by l | o.
func (l *Logic) Or(o *Logic) *Logic {
	return derive(maxu(l.width, o.width), &exprDriver{op: opOr, operands: []*Logic{l, o}})
}

// Xor returns a new signal continuously driven by l ^ o.
func (l *Logic) Xor(o *Logic) *Logic {
	return derive(maxu(l.width, o.width), &exprDriver{op: opXor, operands: []*Logic{l, o}})
}

// Not returns a new signal continuously driven by ~l.
func (l *Logic) Not() *Logic {
	return derive(l.width, &exprDriver{op: opNot, operands: []*Logic{l}})
}

// Add returns a new signal continuously driven by l + o.
func (l *Logic) Add(o *Logic) *Logic {
	return derive(maxu(l.width, o.width), &exprDriver{op: opAdd, operands: []*Logic{l, o}})
}

// Sub returns a new signal continuously driven by l - o.
func (l *Logic) Sub(o *Logic) *Logic {
	return derive(maxu(l.width, o.width), &exprDriver{op: opSub, operands: []*Logic{l, o}})
}

// Mul returns a new signal continuously driven by l * o.
func (l *Logic) Mul(o *Logic) *Logic {
	return derive(maxu(l.width, o.width), &exprDriver{op: opMul, operands: []*Logic{l, o}})
}

// Shl returns a new signal continuously driven by l << n.
func (l *Logic) Shl(n uint) *Logic {
	return derive(l.width, &exprDriver{op: opShl, operands: []*Logic{l}, amount: n})
}

// Shr returns a new signal continuously driven by l >> n.
func (l *Logic) Shr(n uint) *Logic {
	return derive(l.width, &exprDriver{op: opShr, operands: []*Logic{l}, amount: n})
}

// Slice returns a new signal continuously driven by l[hi:lo].
func (l *Logic) Slice(hi, lo uint) *Logic {
	if hi < lo || hi >= l.width {
		panic("hwgraph: invalid slice bounds")
	}
	return derive(hi-lo+1, &exprDriver{op: opSlice, operands: []*Logic{l}, hi: hi, lo: lo})
}

// Swizzle returns a new signal continuously driven by the MSB-first
// concatenation of l followed by parts.
func (l *Logic) Swizzle(parts ...*Logic) *Logic {
	operands := append([]*Logic{l}, parts...)
	width := uint(0)
	for _, o := range operands {
		width += o.width
	}
	return derive(width, &exprDriver{op: opSwizzle, operands: operands})
}

// The *Expr constructors below build the same exprDriver nodes as Logic's
// operator methods, but return them bare instead of wrapping them in a new
// continuously-driven signal. Use them as the Source/Cond/Selector of a
// conditional-IR node when the expression is meant to be evaluated fresh
// each time the enclosing Always block runs — e.g. a self-referential
// read like "x <= a; x <= NotExpr(x)" — rather than becoming a permanent
// structural wire. Logic.Not and friends remain the right choice for
// dataflow outside a behavioral block.

// NotExpr returns a one-shot expression computing ~d.
func NotExpr(d *Logic) Driver { return &exprDriver{op: opNot, operands: []*Logic{d}} }

// AndExpr returns a one-shot expression computing a & b.
func AndExpr(a, b *Logic) Driver { return &exprDriver{op: opAnd, operands: []*Logic{a, b}} }

// OrExpr returns a one-shot expression computing a | b.
func OrExpr(a, b *Logic) Driver { return &exprDriver{op: opOr, operands: []*Logic{a, b}} }

// XorExpr returns a one-shot expression computing a ^ b.
func XorExpr(a, b *Logic) Driver { return &exprDriver{op: opXor, operands: []*Logic{a, b}} }

// AddExpr returns a one-shot expression computing a + b.
func AddExpr(a, b *Logic) Driver { return &exprDriver{op: opAdd, operands: []*Logic{a, b}} }

// SubExpr returns a one-shot expression computing a - b.
func SubExpr(a, b *Logic) Driver { return &exprDriver{op: opSub, operands: []*Logic{a, b}} }

// MulExpr returns a one-shot expression computing a * b.
func MulExpr(a, b *Logic) Driver { return &exprDriver{op: opMul, operands: []*Logic{a, b}} }

// ShlExpr returns a one-shot expression computing d << n.
func ShlExpr(d *Logic, n uint) Driver { return &exprDriver{op: opShl, operands: []*Logic{d}, amount: n} }

// ShrExpr returns a one-shot expression computing d >> n.
func ShrExpr(d *Logic, n uint) Driver { return &exprDriver{op: opShr, operands: []*Logic{d}, amount: n} }

// SliceExpr returns a one-shot expression computing d[hi:lo].
func SliceExpr(d *Logic, hi, lo uint) Driver {
	return &exprDriver{op: opSlice, operands: []*Logic{d}, hi: hi, lo: lo}
}

// SwizzleExpr returns a one-shot expression computing the MSB-first
// concatenation of parts.
func SwizzleExpr(parts ...*Logic) Driver {
	return &exprDriver{op: opSwizzle, operands: append([]*Logic(nil), parts...)}
}

// Op identifies the operator behind an expression Driver returned by
// Inspect. Its values mirror exprOp so the cast in Inspect is exact; it
// exists so the synth package can render expressions as SystemVerilog
// without this package exposing exprDriver itself.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpXor
	OpNot
	OpAdd
	OpSub
	OpMul
	OpShl
	OpShr
	OpSlice
	OpSwizzle
)

func (o Op) String() string {
	switch o {
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	case OpXor:
		return "^"
	case OpNot:
		return "~"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpSlice:
		return "[:]"
	case OpSwizzle:
		return "{}"
	default:
		return "?"
	}
}

// Inspect decomposes d into its operator and operands if d is one of the
// expression nodes built by Logic's operator methods (or the matching
// *Expr constructor), with ok false for a plain Logic signal. hi/lo are
// only meaningful for OpSlice, amount only for OpShl/OpShr.
func Inspect(d Driver) (op Op, operands []*Logic, hi, lo, amount uint, ok bool) {
	e, ok := d.(*exprDriver)
	if !ok {
		return 0, nil, 0, 0, 0, false
	}
	return Op(e.op), e.operands, e.hi, e.lo, e.amount, true
}

func maxu(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}
