package synth

import (
	"go.uber.org/zap"

	hw "hwgraph"
)

// checkCaseOverlap walks nodes for Case/CaseZ blocks declared Unique and
// logs a diagnostic if two item patterns can match the same selector
// value, since such a block's "at most one pattern matches" contract
// would be violated at runtime.
func checkCaseOverlap(logger *zap.Logger, m *hw.Module, nodes []hw.IRNode) {
	for _, n := range nodes {
		switch t := n.(type) {
		case *hw.IfNode:
			checkCaseOverlap(logger, m, t.Then)
			for _, ei := range t.Elifs {
				checkCaseOverlap(logger, m, ei.Body)
			}
			checkCaseOverlap(logger, m, t.Else)
		case *hw.CaseNode:
			if t.Type == hw.Unique {
				warnOnOverlap(logger, m, t.Items, equalPattern)
			}
			for _, item := range t.Items {
				checkCaseOverlap(logger, m, item.Body)
			}
			checkCaseOverlap(logger, m, t.Default)
		case *hw.CaseZNode:
			if t.Type == hw.Unique {
				warnOnOverlap(logger, m, t.Items, casezOverlap)
			}
			for _, item := range t.Items {
				checkCaseOverlap(logger, m, item.Body)
			}
			checkCaseOverlap(logger, m, t.Default)
		}
	}
}

func equalPattern(a, b hw.Value) bool { return a.Equal(b) }

// casezOverlap reports whether one defined selector value matches both a
// and b under CaseZ's rule: at every bit, either pattern has z there or the
// two bits are the same 0 or 1.
func casezOverlap(a, b hw.Value) bool {
	if a.Width() != b.Width() {
		return false
	}
	for i := uint(0); i < a.Width(); i++ {
		x, y := a.Bit(i), b.Bit(i)
		if x == hw.X || y == hw.X || (x != hw.Z && y != hw.Z && x != y) {
			return false
		}
	}
	return true
}

func warnOnOverlap(logger *zap.Logger, m *hw.Module, items []hw.CaseItem, overlaps func(a, b hw.Value) bool) {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if overlaps(items[i].Pattern, items[j].Pattern) {
				logger.Warn("unique case declares overlapping patterns",
					zapModule(m),
					zap.String("pattern_a", items[i].Pattern.String()),
					zap.String("pattern_b", items[j].Pattern.String()),
				)
			}
		}
	}
}
