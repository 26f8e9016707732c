// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cells

import hw "hwgraph"

// Counter returns an N-bit synchronous up-counter wrapping Register with
// an incrementer: on each rising clk edge it clears to zero on reset,
// else advances by one when en is asserted, else holds. The increment is
// wired structurally (val.Add(one), continuously recomputed outside any
// Always block) rather than inside the FF body, so the body itself stays
// a plain load-or-hold register identical to Register's own.
//
//	Inputs:  en, reset, clk
//	Outputs: val
func Counter(en, reset, clk *hw.Logic, bits uint) (*hw.Module, *hw.Logic, error) {
	if en.Width() != 1 {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: Counter: en must be 1 bit, got %d", en.Width())
	}
	if reset.Width() != 1 {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: Counter: reset must be 1 bit, got %d", reset.Width())
	}

	m := hw.NewModule("Counter")
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
	val, err := m.AddOutput("val", bits)
	if err != nil {
		return nil, nil, err
	}

	one := hw.NewLogic(bits, "")
	if err := one.Gets(hw.Const(hw.NewValue(bits, 1))); err != nil {
		return nil, nil, err
	}
	next := val.Add(one)

	_, q, err := Register(next, ien, ireset, iclk)
	if err != nil {
		return nil, nil, err
	}
	if err := val.Gets(q); err != nil {
		return nil, nil, err
	}
	return m, val, nil
}
