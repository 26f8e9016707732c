// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cosim implements the co-simulation contract of spec.md §6: a
// vector-based comparison of a built module's in-memory simulation against
// expected outputs and, optionally, an external reference simulator.
// Grounded on the teacher's hwtest.ComparePart, which drives two
// implementations of the same interface with identical inputs and fails on
// the first mismatching output; this package generalizes that to hwgraph's
// four-state Value and makes the second implementation an out-of-process
// collaborator instead of a second in-process Part.
package cosim

import (
	"fmt"

	hw "hwgraph"
	"hwgraph/sim"
	"hwgraph/synth"
)

// Vector is one test vector: the input values to apply and the output
// values expected to result, keyed by port name — spec.md §6.
type Vector struct {
	Inputs          map[string]hw.Value
	ExpectedOutputs map[string]hw.Value
}

// DontCare is the "don't care" sentinel: an ExpectedOutputs entry set to
// DontCare matches any four-state value during comparison. It is the zero
// Value, distinguishable from every value NewValue can produce since those
// always carry a width of at least one.
var DontCare = hw.Value{}

// FromLiterals builds a Vector from plain unsigned integers, zero-extending
// each literal to the width declared for its signal in widths — the
// convenience spec.md §6 describes for hand-written test vectors, sparing
// callers from spelling out NewValue at every call site.
func FromLiterals(widths map[string]uint, inputs, expectedOutputs map[string]uint64) Vector {
	v := Vector{Inputs: make(map[string]hw.Value), ExpectedOutputs: make(map[string]hw.Value)}
	for name, lit := range inputs {
		v.Inputs[name] = hw.NewValue(widths[name], lit)
	}
	for name, lit := range expectedOutputs {
		v.ExpectedOutputs[name] = hw.NewValue(widths[name], lit)
	}
	return v
}

// ReferenceSimulator is the collaborator interface an external HDL
// simulator binds to. Loading and running it against an actual toolchain
// is out of scope per spec.md; only the contract is implemented here.
type ReferenceSimulator interface {
	// Load prepares top from hdl source text, declaring each port's width.
	Load(hdl string, top string, widths map[string]uint) error
	// Run applies each vector's Inputs in order and returns the resulting
	// output values observed after each one settles.
	Run(vectors []Vector) ([]map[string]hw.Value, error)
}

// Source identifies which simulator produced a Mismatch.
type Source string

const (
	SourceMemory    Source = "memory"
	SourceReference Source = "reference"
)

// Mismatch records one vector/output pair where a simulator's result
// disagreed with Vector.ExpectedOutputs.
type Mismatch struct {
	VectorIndex int
	Output      string
	Source      Source
	Got, Want   hw.Value
}

func (m Mismatch) String() string {
	return fmt.Sprintf("vector %d: %s output %q: got %s, want %s", m.VectorIndex, m.Source, m.Output, m.Got, m.Want)
}

// Compare drives vectors against m through a freshly attached
// sim.Simulator and, when ref is non-nil, against the named external
// reference too (loaded with m's synthesized SystemVerilog), returning every output where either disagreed with its
// vector's ExpectedOutputs. m must already be built. Passing a nil ref
// performs pure in-memory validation, for callers with no reference
// simulator available.
func Compare(m *hw.Module, vectors []Vector, ref ReferenceSimulator) ([]Mismatch, error) {
	if !m.HasBuilt() {
		return nil, hw.NewKindErrorf(hw.NotBuilt, "cosim: module %q has not been built", m.Name())
	}

	s := sim.New(sim.Options{})
	if err := s.Attach(m); err != nil {
		return nil, err
	}

	var mismatches []Mismatch
	for i, v := range vectors {
		for name, val := range v.Inputs {
			in, ok := m.Inputs()[name]
			if !ok {
				return nil, hw.NewKindErrorf(hw.PortViolation, "cosim: module %q has no input %q", m.Name(), name)
			}
			if err := in.Put(val); err != nil {
				return nil, err
			}
		}
		s.Run()
		for name, want := range v.ExpectedOutputs {
			out, ok := m.Outputs()[name]
			if !ok {
				return nil, hw.NewKindErrorf(hw.PortViolation, "cosim: module %q has no output %q", m.Name(), name)
			}
			if got := out.Value(); !valueMatches(got, want) {
				mismatches = append(mismatches, Mismatch{VectorIndex: i, Output: name, Source: SourceMemory, Got: got, Want: want})
			}
		}
	}

	if ref == nil {
		return mismatches, nil
	}

	widths := make(map[string]uint, len(m.Inputs())+len(m.Outputs()))
	for name, l := range m.Inputs() {
		widths[name] = l.Width()
	}
	for name, l := range m.Outputs() {
		widths[name] = l.Width()
	}
	hdl, err := synth.Synthesize(m, synth.Options{})
	if err != nil {
		return nil, err
	}
	if err := ref.Load(hdl, m.Name(), widths); err != nil {
		return nil, err
	}
	refOuts, err := ref.Run(vectors)
	if err != nil {
		return nil, err
	}
	for i, outs := range refOuts {
		for name, want := range vectors[i].ExpectedOutputs {
			got, ok := outs[name]
			if !ok || valueMatches(got, want) {
				continue
			}
			mismatches = append(mismatches, Mismatch{VectorIndex: i, Output: name, Source: SourceReference, Got: got, Want: want})
		}
	}
	return mismatches, nil
}

func valueMatches(got, want hw.Value) bool {
	if want.Width() == 0 {
		return true
	}
	return got.Equal(want)
}
