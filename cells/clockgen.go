// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cells

import (
	"fmt"

	hw "hwgraph"
)

// ClockGen returns a source-free module whose sole output, clk, toggles
// with the given half-period. In simulation the returned Logic is meant
// to be driven by the caller's sim.Simulator.DriveClock, exactly like the
// teacher's function-based Input part feeds a circuit pin every tick;
// Build still requires some source on the output, so clk starts wired to
// a constant zero that DriveClock's Put calls override at run time. At
// synthesis time the constant wiring would be misleading, so the module
// installs a CustomSystemVerilog initial block in its place.
//
//	Outputs: clk
func ClockGen(halfPeriodTicks uint) (*hw.Module, *hw.Logic, error) {
	m := hw.NewModule("ClockGen")
	clk, err := m.AddOutput("clk", 1)
	if err != nil {
		return nil, nil, err
	}
	if err := clk.Gets(hw.Const(hw.NewValue(1, 0))); err != nil {
		return nil, nil, err
	}
	m.SetCustomSystemVerilog(func(m *hw.Module) string {
		return fmt.Sprintf(`module %s(
  output logic clk
);
  initial begin
    clk = 1'b0;
    forever #%d clk = ~clk;
  end
endmodule`, m.Name(), halfPeriodTicks)
	})
	return m, clk, nil
}
