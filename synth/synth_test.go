package synth_test

import (
	"strings"
	"testing"

	hw "hwgraph"
	"hwgraph/cells"
	"hwgraph/synth"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func buildAndGate(t *testing.T) *hw.Module {
	t.Helper()
	extA := hw.NewLogic(1, "extA")
	extB := hw.NewLogic(1, "extB")
	m := hw.NewModule("AndGate")
	a, err := m.AddInput("a", extA, 1)
	require.NoError(t, err)
	b, err := m.AddInput("b", extB, 1)
	require.NoError(t, err)
	out, err := m.AddOutput("out", 1)
	require.NoError(t, err)
	require.NoError(t, out.Gets(a.And(b)))
	require.NoError(t, m.Build())
	return m
}

func TestSynthesizeRequiresBuild(t *testing.T) {
	m := hw.NewModule("Unbuilt")
	_, err := synth.Synthesize(m, synth.Options{})
	require.Error(t, err)
	require.Equal(t, hw.NotBuilt, hw.KindOf(err))
}

func TestSynthesizeEmitsContinuousAssign(t *testing.T) {
	m := buildAndGate(t)
	out, err := synth.Synthesize(m, synth.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "module AndGate(")
	require.Contains(t, out, "endmodule")
	require.Contains(t, out, "assign out = (a & b);")
}

func buildHierarchy(t *testing.T) *hw.Module {
	t.Helper()
	extA := hw.NewLogic(1, "extA")

	top := hw.NewModule("Top")
	ti, err := top.AddInput("a", extA, 1)
	require.NoError(t, err)
	to, err := top.AddOutput("out", 1)
	require.NoError(t, err)

	innerWrap := hw.NewModule("InnerWrap")
	wi, err := innerWrap.AddInput("i", ti, 1)
	require.NoError(t, err)
	wo, err := innerWrap.AddOutput("o", 1)
	require.NoError(t, err)
	require.NoError(t, wo.Gets(wi.Not()))
	require.NoError(t, to.Gets(wo))
	require.NoError(t, top.Build())
	return top
}

func TestSynthesizeEmitsSubmoduleInstance(t *testing.T) {
	top := buildHierarchy(t)
	out, err := synth.Synthesize(top, synth.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "module InnerWrap(")
	require.Contains(t, out, "module Top(")
	require.Contains(t, out, "InnerWrap InnerWrap (")
}

// TestSynthesizeInlinesSubmoduleInputFromDerivedSignal covers a sub-module
// port wired from a signal the nameTable has marked inlineable (one
// destination, unpreferred name): the connection must spell out that
// signal's driving expression rather than name a wire that emitDeclarations
// never declares. cells.Counter wires Register's "d" input exactly this
// way, from val.Add(one).
func TestSynthesizeInlinesSubmoduleInputFromDerivedSignal(t *testing.T) {
	en, reset, clk := hw.NewLogic(1, "en"), hw.NewLogic(1, "reset"), hw.NewLogic(1, "clk")
	m, _, err := cells.Counter(en, reset, clk, 8)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	out, err := synth.Synthesize(m, synth.Options{})
	require.NoError(t, err)
	require.NotContains(t, out, ".d(__", "input connection must not name an undeclared inlined wire")
	require.Contains(t, out, "+ 8'b00000001))", "input connection must inline the incrementer expression")
}

func buildCounterLikeFF(t *testing.T) *hw.Module {
	t.Helper()
	clkExt := hw.NewLogic(1, "clkExt")
	m := hw.NewModule("Toggle")
	clk, err := m.AddInput("clk", clkExt, 1)
	require.NoError(t, err)
	q, err := m.AddOutput("q", 1)
	require.NoError(t, err)
	hw.FF(m, clk, hw.Assign(q, hw.NotExpr(q)))
	require.NoError(t, m.Build())
	return m
}

func TestSynthesizeLowersSequentialBlock(t *testing.T) {
	m := buildCounterLikeFF(t)
	out, err := synth.Synthesize(m, synth.Options{})
	require.NoError(t, err)
	require.Contains(t, out, "always_ff @(posedge clk) begin")
	require.Contains(t, out, "q <= ~q;")
}

func TestSynthesizeRejectsMultipleDriversInFFBody(t *testing.T) {
	clkExt := hw.NewLogic(1, "clkExt")
	m := hw.NewModule("BadFF")
	clk, err := m.AddInput("clk", clkExt, 1)
	require.NoError(t, err)
	q, err := m.AddOutput("q", 1)
	require.NoError(t, err)
	a, err := m.AddInput("a", hw.NewLogic(1, "extA"), 1)
	require.NoError(t, err)
	hw.FF(m, clk, hw.Assign(q, a), hw.Assign(q, hw.NotExpr(q)))
	require.NoError(t, m.Build())

	_, err = synth.Synthesize(m, synth.Options{})
	require.Error(t, err)
	require.Equal(t, hw.MultipleDrivers, hw.KindOf(err))
}

func TestSynthesizeWarnsOnOverlappingUniqueCase(t *testing.T) {
	extA := hw.NewLogic(2, "extA")
	m := hw.NewModule("Sel")
	a, err := m.AddInput("a", extA, 2)
	require.NoError(t, err)
	out, err := m.AddOutput("out", 1)
	require.NoError(t, err)

	hw.Combinational(m, hw.Case(a, hw.Unique).
		AddItem(hw.NewValue(2, 0), hw.Assign(out, hw.Const(hw.NewValue(1, 1)))).
		AddItem(hw.NewValue(2, 0), hw.Assign(out, hw.Const(hw.NewValue(1, 0)))))
	require.NoError(t, m.Build())

	core, obs := observer.New(zap.WarnLevel)
	logger := zap.New(core)
	_, err = synth.Synthesize(m, synth.Options{Logger: logger})
	require.NoError(t, err)
	require.NotZero(t, obs.Len())
	require.True(t, strings.Contains(obs.All()[0].Message, "overlapping"))
}
