package cells_test

import (
	"testing"

	hw "hwgraph"
	"hwgraph/cells"
	"hwgraph/sim"

	"github.com/stretchr/testify/require"
)

func TestRippleAdderComputesSumAndCarry(t *testing.T) {
	a, b, cin := hw.NewLogic(4, "a"), hw.NewLogic(4, "b"), hw.NewLogic(1, "cin")
	m, sum, cout, err := cells.RippleAdder(a, b, cin)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	s := sim.New(sim.Options{})
	require.NoError(t, s.Attach(m))

	require.NoError(t, a.Put(hw.NewValue(4, 7)))
	require.NoError(t, b.Put(hw.NewValue(4, 6)))
	require.NoError(t, cin.Put(hw.NewValue(1, 0)))

	gotSum, err := sum.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 13, gotSum)
	gotCarry, err := cout.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0, gotCarry)
}

func TestRippleAdderOverflowSetsCarry(t *testing.T) {
	a, b, cin := hw.NewLogic(4, "a"), hw.NewLogic(4, "b"), hw.NewLogic(1, "cin")
	m, sum, cout, err := cells.RippleAdder(a, b, cin)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	s := sim.New(sim.Options{})
	require.NoError(t, s.Attach(m))

	require.NoError(t, a.Put(hw.NewValue(4, 15)))
	require.NoError(t, b.Put(hw.NewValue(4, 2)))
	require.NoError(t, cin.Put(hw.NewValue(1, 0)))

	gotSum, err := sum.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 1, gotSum)
	gotCarry, err := cout.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 1, gotCarry)
}

func TestRippleAdderRejectsOperandWidthMismatch(t *testing.T) {
	a, b, cin := hw.NewLogic(4, "a"), hw.NewLogic(3, "b"), hw.NewLogic(1, "cin")
	_, _, _, err := cells.RippleAdder(a, b, cin)
	require.Error(t, err)
	require.Equal(t, hw.WidthMismatch, hw.KindOf(err))
}
