package cells_test

import (
	"testing"

	hw "hwgraph"
	"hwgraph/cells"
	"hwgraph/sim"

	"github.com/stretchr/testify/require"
)

func pulseClock(t *testing.T, s *sim.Simulator, clk *hw.Logic) {
	t.Helper()
	require.NoError(t, clk.Put(hw.NewValue(1, 0)))
	require.NoError(t, clk.Put(hw.NewValue(1, 1)))
	s.Run()
}

func TestCounterAdvancesOnEachEnabledEdge(t *testing.T) {
	en, reset, clk := hw.NewLogic(1, "en"), hw.NewLogic(1, "reset"), hw.NewLogic(1, "clk")
	require.NoError(t, clk.Put(hw.NewValue(1, 0)))
	require.NoError(t, reset.Put(hw.NewValue(1, 1)))
	require.NoError(t, en.Put(hw.NewValue(1, 0)))

	m, val, err := cells.Counter(en, reset, clk, 8)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	s := sim.New(sim.Options{})
	require.NoError(t, s.Attach(m))

	// val powers up all-X; the mandatory reset-high edge is what first
	// gives it a defined value, per spec's counter scenario.
	pulseClock(t, s, clk)
	got, err := val.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0, got)

	require.NoError(t, reset.Put(hw.NewValue(1, 0)))
	require.NoError(t, en.Put(hw.NewValue(1, 1)))
	for i := uint64(1); i <= 3; i++ {
		pulseClock(t, s, clk)
		got, err = val.Uint64()
		require.NoError(t, err)
		require.EqualValues(t, i, got)
	}
}

func TestCounterResetOverridesEnable(t *testing.T) {
	en, reset, clk := hw.NewLogic(1, "en"), hw.NewLogic(1, "reset"), hw.NewLogic(1, "clk")
	require.NoError(t, clk.Put(hw.NewValue(1, 0)))
	require.NoError(t, reset.Put(hw.NewValue(1, 1)))
	require.NoError(t, en.Put(hw.NewValue(1, 1)))

	m, val, err := cells.Counter(en, reset, clk, 8)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	s := sim.New(sim.Options{})
	require.NoError(t, s.Attach(m))

	// Clear the X power-up value before relying on the counter advancing.
	pulseClock(t, s, clk)
	require.NoError(t, reset.Put(hw.NewValue(1, 0)))

	pulseClock(t, s, clk)
	pulseClock(t, s, clk)
	got, err := val.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 2, got)

	require.NoError(t, reset.Put(hw.NewValue(1, 1)))
	pulseClock(t, s, clk)
	got, err = val.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0, got)
}

func TestCounterWrapsAtWidth(t *testing.T) {
	en, reset, clk := hw.NewLogic(1, "en"), hw.NewLogic(1, "reset"), hw.NewLogic(1, "clk")
	require.NoError(t, clk.Put(hw.NewValue(1, 0)))
	require.NoError(t, reset.Put(hw.NewValue(1, 1)))
	require.NoError(t, en.Put(hw.NewValue(1, 1)))

	m, val, err := cells.Counter(en, reset, clk, 2)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	s := sim.New(sim.Options{})
	require.NoError(t, s.Attach(m))
	pulseClock(t, s, clk)

	require.NoError(t, reset.Put(hw.NewValue(1, 0)))
	for i := 0; i < 4; i++ {
		pulseClock(t, s, clk)
	}
	got, err := val.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 0, got, "a 2-bit counter must wrap back to 0 after four enabled edges")
}
