// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cells

import hw "hwgraph"

// DFF returns a single-bit clocked register: q(t) = d(t-1), sampled on
// the rising edge of clk. It is a module around a single FF block; FF
// blocks themselves are simulated and emitted directly, not through DFF.
// Register below is built from it conceptually
// the same way the teacher's AdderN is built from FullAdder, even though
// here the fan-out is expressed directly as an FF body rather than a
// sub-module instantiation, since a single bit has no internal structure
// worth naming.
//
//	Inputs:  d, clk
//	Outputs: q
func DFF(d, clk *hw.Logic) (*hw.Module, *hw.Logic, error) {
	if d.Width() != 1 {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: DFF: d must be 1 bit, got %d", d.Width())
	}
	m := hw.NewModule("DFF")
	id, err := m.AddInput("d", d, 1)
	if err != nil {
		return nil, nil, err
	}
	iclk, err := m.AddInput("clk", clk, 1)
	if err != nil {
		return nil, nil, err
	}
	q, err := m.AddOutput("q", 1)
	if err != nil {
		return nil, nil, err
	}
	hw.FF(m, iclk, hw.Assign(q, id))
	return m, q, nil
}

// Register returns an N-bit synchronous register with active-high reset
// and enable: on each rising clk edge, q clears to zero if reset is
// asserted, else loads d if en is asserted, else holds its value.
// Grounded on the teacher's DFF, generalized from a single bit to an
// N-bit bus with the reset/enable priority chain spec.md's Counter
// scenario requires.
//
//	Inputs:  d, en, reset, clk
//	Outputs: q
func Register(d, en, reset, clk *hw.Logic) (*hw.Module, *hw.Logic, error) {
	if en.Width() != 1 {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: Register: en must be 1 bit, got %d", en.Width())
	}
	if reset.Width() != 1 {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: Register: reset must be 1 bit, got %d", reset.Width())
	}
	bits := d.Width()

	m := hw.NewModule("Register")
	id, err := m.AddInput("d", d, bits)
	if err != nil {
		return nil, nil, err
	}
	ien, err := m.AddInput("en", en, 1)
	if err != nil {
		return nil, nil, err
	}
	ireset, err := m.AddInput("reset", reset, 1)
	if err != nil {
		return nil, nil, err
	}
	iclk, err := m.AddInput("clk", clk, 1)
	if err != nil {
		return nil, nil, err
	}
	q, err := m.AddOutput("q", bits)
	if err != nil {
		return nil, nil, err
	}

	hw.FF(m, iclk,
		hw.If(ireset, hw.Assign(q, hw.Const(hw.NewValue(bits, 0)))).
			AddElseIf(ien, hw.Assign(q, id)).
			SetElse(hw.Assign(q, q)))
	return m, q, nil
}
