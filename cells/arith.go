// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cells

import hw "hwgraph"

// RippleAdder returns an N-bit ripple-carry adder module: sum = a + b +
// cin, with the overflow bit split off into cout. Grounded on the
// teacher's AdderN, generalized from its per-bit half/full-adder chain to
// a single zero-extended Value.Add at width+1, since hwgraph's Value
// already carries four-state arithmetic.
//
//	Inputs:  a[bits], b[bits], cin
//	Outputs: out[bits], cout
func RippleAdder(a, b, cin *hw.Logic) (m *hw.Module, sum, cout *hw.Logic, err error) {
	if a.Width() != b.Width() {
		return nil, nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: RippleAdder: operand widths differ: %d vs %d", a.Width(), b.Width())
	}
	if cin.Width() != 1 {
		return nil, nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: RippleAdder: cin must be 1 bit, got %d", cin.Width())
	}
	bits := a.Width()

	m = hw.NewModule("RippleAdder")
	ia, err := m.AddInput(pA, a, bits)
	if err != nil {
		return nil, nil, nil, err
	}
	ib, err := m.AddInput(pB, b, bits)
	if err != nil {
		return nil, nil, nil, err
	}
	icin, err := m.AddInput("cin", cin, 1)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := m.AddOutput(pOut, bits)
	if err != nil {
		return nil, nil, nil, err
	}
	oc, err := m.AddOutput("cout", 1)
	if err != nil {
		return nil, nil, nil, err
	}

	zero := hw.NewLogic(1, "")
	if err := zero.Gets(hw.Const(hw.NewValue(1, 0))); err != nil {
		return nil, nil, nil, err
	}
	wideA := zero.Swizzle(ia)
	wideB := zero.Swizzle(ib)
	wide := wideA.Add(wideB).Add(icin)

	if err := out.Gets(wide.Slice(bits-1, 0)); err != nil {
		return nil, nil, nil, err
	}
	if err := oc.Gets(wide.Slice(bits, bits)); err != nil {
		return nil, nil, nil, err
	}
	return m, out, oc, nil
}
