// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cells

import (
	"strconv"

	hw "hwgraph"
)

// Mux returns a 2-to-1 multiplexer module: out = sel ? b : a.
//
//	Inputs:  a, b, sel
//	Outputs: out
//	Function: out = sel ? b : a
func Mux(a, b, sel *hw.Logic) (*hw.Module, *hw.Logic, error) {
	if a.Width() != b.Width() {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: Mux: operand widths differ: %d vs %d", a.Width(), b.Width())
	}
	if sel.Width() != 1 {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: Mux: sel must be 1 bit, got %d", sel.Width())
	}
	m := hw.NewModule("Mux")
	ia, err := m.AddInput(pA, a, a.Width())
	if err != nil {
		return nil, nil, err
	}
	ib, err := m.AddInput(pB, b, b.Width())
	if err != nil {
		return nil, nil, err
	}
	isel, err := m.AddInput(pSel, sel, 1)
	if err != nil {
		return nil, nil, err
	}
	out, err := m.AddOutput(pOut, a.Width())
	if err != nil {
		return nil, nil, err
	}
	hw.Combinational(m, hw.If(isel, hw.Assign(out, ib)).SetElse(hw.Assign(out, ia)))
	return m, out, nil
}

// MuxN returns an n-way multiplexer module selecting inputs[sel], built
// from a binary tree of Mux cells — the same decomposition the teacher's
// hwlib uses to build wide muxes from the 2-to-1 primitive. n must be a
// power of two and inputs must have exactly n elements, all the same width.
func MuxN(inputs []*hw.Logic, sel *hw.Logic) (*hw.Module, *hw.Logic, error) {
	n := len(inputs)
	if n == 0 || n&(n-1) != 0 {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: MuxN: input count %d is not a power of two", n)
	}
	levels := 0
	for 1<<levels < n {
		levels++
	}
	if sel.Width() != uint(levels) {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: MuxN: sel must be %d bits for %d inputs, got %d", levels, n, sel.Width())
	}

	m := hw.NewModule("Mux" + strconv.Itoa(n))
	ins := make([]*hw.Logic, n)
	for i, in := range inputs {
		p, err := m.AddInput(pIn+strconv.Itoa(i), in, in.Width())
		if err != nil {
			return nil, nil, err
		}
		ins[i] = p
	}
	isel, err := m.AddInput(pSel, sel, sel.Width())
	if err != nil {
		return nil, nil, err
	}
	out, err := m.AddOutput(pOut, inputs[0].Width())
	if err != nil {
		return nil, nil, err
	}

	cur := ins
	for level := 0; level < levels; level++ {
		next := make([]*hw.Logic, len(cur)/2)
		selBit := isel.Slice(uint(level), uint(level))
		for i := range next {
			_, o, err := Mux(cur[2*i], cur[2*i+1], selBit)
			if err != nil {
				return nil, nil, err
			}
			next[i] = o
		}
		cur = next
	}
	if err := out.Gets(cur[0]); err != nil {
		return nil, nil, err
	}
	return m, out, nil
}
