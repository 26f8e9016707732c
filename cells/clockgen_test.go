package cells_test

import (
	"testing"

	hw "hwgraph"
	"hwgraph/cells"
	"hwgraph/sim"

	"github.com/stretchr/testify/require"
)

func TestClockGenDrivenBySimulatorProducesSquareWave(t *testing.T) {
	m, clk, err := cells.ClockGen(5)
	require.NoError(t, err)
	require.NoError(t, m.Build())

	s := sim.New(sim.Options{})
	require.NoError(t, s.Attach(m))
	s.DriveClock(clk, sim.AtTick(5))

	var samples []uint64
	clk.OnChange(func(v hw.Value) {
		u, _ := v.Uint64()
		samples = append(samples, u)
	})
	for i := 0; i < 4 && s.Tick(); i++ {
	}
	require.Equal(t, []uint64{1, 0, 1, 0}, samples)
}

func TestClockGenInstallsCustomSystemVerilog(t *testing.T) {
	m, _, err := cells.ClockGen(5)
	require.NoError(t, err)
	fn, ok := m.CustomSystemVerilog()
	require.True(t, ok)
	require.Contains(t, fn(m), "forever #5 clk = ~clk;")
}
