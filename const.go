package hwgraph

// constDriver is a Driver that always evaluates to a fixed Value. It has
// no upstream operands, so Build never discovers anything beyond it and
// the simulator never wires a watcher for it.
type constDriver struct{ v Value }

func (c *constDriver) Eval() Value { return c.v }

// Const returns a Driver that always evaluates to v, for use as a
// literal operand inside behavioral IR (e.g. a synchronous reset target)
// or as the source of a continuously-driven tie-off signal.
func Const(v Value) Driver { return &constDriver{v: v} }

// ConstValue returns the value behind a Driver built by Const and true,
// or the zero Value and false if d was not built that way. The
// synthesizer uses this to render a literal inline instead of declaring
// a wire for it.
func ConstValue(d Driver) (Value, bool) {
	c, ok := d.(*constDriver)
	if !ok {
		return Value{}, false
	}
	return c.v, true
}
