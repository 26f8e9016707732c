// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cells provides a library of reusable hardware modules built on
// top of hwgraph's Logic/Module graph: gates, a mux, a ripple adder, a
// register, a counter, and a clock generator — grounded on the teacher's
// own hwlib package, generalized from single/multi-bit boolean pins to
// hwgraph's four-state, arbitrary-width signals.
package cells

import hw "hwgraph"

// common pin names, matching the teacher's hwlib convention of fixed,
// documented port names per cell.
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// newGate wires a 2-input, same-width gate module named name, whose
// output is fn(a, b). Every gate constructor in this file is a thin
// wrapper around it.
func newGate(name string, a, b *hw.Logic, fn func(a, b *hw.Logic) *hw.Logic) (*hw.Module, *hw.Logic, error) {
	if a.Width() != b.Width() {
		return nil, nil, hw.NewKindErrorf(hw.WidthMismatch, "cells: %s: operand widths differ: %d vs %d", name, a.Width(), b.Width())
	}
	m := hw.NewModule(name)
	ia, err := m.AddInput(pA, a, a.Width())
	if err != nil {
		return nil, nil, err
	}
	ib, err := m.AddInput(pB, b, b.Width())
	if err != nil {
		return nil, nil, err
	}
	out, err := m.AddOutput(pOut, a.Width())
	if err != nil {
		return nil, nil, err
	}
	if err := out.Gets(fn(ia, ib)); err != nil {
		return nil, nil, err
	}
	return m, out, nil
}

// And returns an AND gate module, 1 bit or N-bit bus according to a's width.
//
//	Inputs:  a, b
//	Outputs: out
//	Function: out = a & b
func And(a, b *hw.Logic) (*hw.Module, *hw.Logic, error) {
	return newGate("And", a, b, (*hw.Logic).And)
}

// Or returns an OR gate module.
//
//	Inputs:  a, b
//	Outputs: out
//	Function: out = a | b
func Or(a, b *hw.Logic) (*hw.Module, *hw.Logic, error) {
	return newGate("Or", a, b, (*hw.Logic).Or)
}

// Xor returns an XOR gate module.
//
//	Inputs:  a, b
//	Outputs: out
//	Function: out = a ^ b
func Xor(a, b *hw.Logic) (*hw.Module, *hw.Logic, error) {
	return newGate("Xor", a, b, (*hw.Logic).Xor)
}

// Nand returns a NAND gate module.
//
//	Inputs:  a, b
//	Outputs: out
//	Function: out = ~(a & b)
func Nand(a, b *hw.Logic) (*hw.Module, *hw.Logic, error) {
	return newGate("Nand", a, b, func(x, y *hw.Logic) *hw.Logic { return x.And(y).Not() })
}

// Nor returns a NOR gate module.
//
//	Inputs:  a, b
//	Outputs: out
//	Function: out = ~(a | b)
func Nor(a, b *hw.Logic) (*hw.Module, *hw.Logic, error) {
	return newGate("Nor", a, b, func(x, y *hw.Logic) *hw.Logic { return x.Or(y).Not() })
}

// Xnor returns an XNOR gate module.
//
//	Inputs:  a, b
//	Outputs: out
//	Function: out = ~(a ^ b)
func Xnor(a, b *hw.Logic) (*hw.Module, *hw.Logic, error) {
	return newGate("Xnor", a, b, func(x, y *hw.Logic) *hw.Logic { return x.Xor(y).Not() })
}

// Not returns a NOT gate module, 1 bit or N-bit bus according to in's width.
//
//	Inputs:  in
//	Outputs: out
//	Function: out = ~in
func Not(in *hw.Logic) (*hw.Module, *hw.Logic, error) {
	m := hw.NewModule("Not")
	i, err := m.AddInput(pIn, in, in.Width())
	if err != nil {
		return nil, nil, err
	}
	out, err := m.AddOutput(pOut, in.Width())
	if err != nil {
		return nil, nil, err
	}
	if err := out.Gets(i.Not()); err != nil {
		return nil, nil, err
	}
	return m, out, nil
}
