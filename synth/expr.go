package synth

import (
	"fmt"
	"strings"

	hw "hwgraph"
)

// renderLogic renders a reference to l, inlining its source expression in
// place of a wire name when nt marks it eligible for elision.
func renderLogic(l *hw.Logic, nt *nameTable) string {
	if nt.inlineable[l] {
		return renderDriver(l.Source(), nt)
	}
	return nt.of(l)
}

// renderDriver renders d as a SystemVerilog expression: a bare signal
// reference for a plain Logic, or the corresponding operator expression
// for one of Logic's operator-method nodes (recovered via hw.Inspect).
func renderDriver(d hw.Driver, nt *nameTable) string {
	if v, ok := hw.ConstValue(d); ok {
		return renderLiteral(v)
	}
	if l, ok := d.(*hw.Logic); ok {
		return renderLogic(l, nt)
	}
	op, operands, hi, lo, amount, ok := hw.Inspect(d)
	if !ok {
		return "/* unrenderable expression */"
	}
	switch op {
	case hw.OpNot:
		return fmt.Sprintf("~%s", renderLogic(operands[0], nt))
	case hw.OpAnd, hw.OpOr, hw.OpXor, hw.OpAdd, hw.OpSub, hw.OpMul:
		return fmt.Sprintf("(%s %s %s)", renderLogic(operands[0], nt), op, renderLogic(operands[1], nt))
	case hw.OpShl, hw.OpShr:
		return fmt.Sprintf("(%s %s %d)", renderLogic(operands[0], nt), op, amount)
	case hw.OpSlice:
		return fmt.Sprintf("%s[%d:%d]", renderLogic(operands[0], nt), hi, lo)
	case hw.OpSwizzle:
		parts := make([]string, len(operands))
		for i, o := range operands {
			parts[i] = renderLogic(o, nt)
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	default:
		return "/* unrenderable expression */"
	}
}

// renderLiteral renders a four-state Value as a sized SystemVerilog
// literal, e.g. "8'b0000x1z0".
func renderLiteral(v hw.Value) string {
	return fmt.Sprintf("%d'b%s", v.Width(), v.String())
}
