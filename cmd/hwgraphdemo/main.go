// Command hwgraphdemo builds and simulates the two worked scenarios of
// spec.md §8 — a three-level module hierarchy and an 8-bit synchronous
// counter — then synthesizes each to SystemVerilog and prints the result,
// the same role the teacher's cmd/main.go plays for its bool-pin XOR
// circuit, generalized to this module's four-state graph.
package main

import (
	"fmt"
	"log"

	hw "hwgraph"
	"hwgraph/cells"
	"hwgraph/sim"
	"hwgraph/synth"
)

func main() {
	runHierarchyScenario()
	runCounterScenario()
}

// runHierarchyScenario wires a Top module whose output ORs one signal
// against another that first passes through a two-level chain of inner
// modules, then drives both inputs and prints the settled output and the
// synthesized SystemVerilog for the whole tree.
func runHierarchyScenario() {
	fmt.Println("=== hierarchy scenario ===")

	extA := hw.NewLogic(1, "a")
	extB := hw.NewLogic(1, "b")

	top := hw.NewModule("Top")
	ta, err := top.AddInput("a", extA, 1)
	must(err)
	tb, err := top.AddInput("b", extB, 1)
	must(err)
	tx, err := top.AddOutput("x", 1)
	must(err)

	// Inner1 and Inner2 each wire their "in" port straight to the real
	// upstream signal at construction time rather than to a placeholder
	// that would need a second, illegal Gets call later.
	inner1 := hw.NewModule("Inner1")
	i1in, err := inner1.AddInput("in", tb, 1)
	must(err)
	i1out, err := inner1.AddOutput("out", 1)
	must(err)

	inner2 := hw.NewModule("Inner2")
	i2in, err := inner2.AddInput("in", i1in, 1)
	must(err)
	i2out, err := inner2.AddOutput("out", 1)
	must(err)
	must(i2out.Gets(i2in.Not()))
	must(i1out.Gets(i2out))

	must(tx.Gets(ta.Or(i1out)))
	must(top.Build())

	s := sim.New(sim.Options{})
	must(s.Attach(top))
	must(extA.Put(hw.NewValue(1, 0)))
	must(extB.Put(hw.NewValue(1, 0)))

	got, err := tx.Uint64()
	must(err)
	fmt.Printf("a=0 b=0 => x=%d\n", got)

	sv, err := synth.Synthesize(top, synth.Options{})
	must(err)
	fmt.Println(sv)
}

// runCounterScenario wires an 8-bit Counter, drives the mandatory
// reset-high edge to clear its power-up X value, then pulses its clock a
// few times with enable asserted, printing the running value and finally
// the synthesized SystemVerilog.
func runCounterScenario() {
	fmt.Println("=== counter scenario ===")

	en := hw.NewLogic(1, "en")
	reset := hw.NewLogic(1, "reset")
	clk := hw.NewLogic(1, "clk")
	must(clk.Put(hw.NewValue(1, 0)))
	must(reset.Put(hw.NewValue(1, 1)))
	must(en.Put(hw.NewValue(1, 0)))

	m, val, err := cells.Counter(en, reset, clk, 8)
	must(err)
	must(m.Build())

	s := sim.New(sim.Options{})
	must(s.Attach(m))

	pulse := func() {
		must(clk.Put(hw.NewValue(1, 0)))
		must(clk.Put(hw.NewValue(1, 1)))
		s.Run()
	}

	// val powers up all-X; this edge is what first gives it a defined
	// value, exactly the counter scenario's mandatory first vector.
	pulse()
	got, err := val.Uint64()
	must(err)
	fmt.Printf("reset: val=%d\n", got)

	must(reset.Put(hw.NewValue(1, 0)))
	must(en.Put(hw.NewValue(1, 1)))
	for i := 0; i < 5; i++ {
		pulse()
		got, err := val.Uint64()
		must(err)
		fmt.Printf("tick %d: val=%d\n", i+1, got)
	}

	sv, err := synth.Synthesize(m, synth.Options{})
	must(err)
	fmt.Println(sv)
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
