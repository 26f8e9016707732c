// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwgraph provides the tools to describe synchronous digital hardware
as a graph of modules and four-state signals, using Go itself as the
hardware description language.

A design is built by constructing Logic signals and wiring them into
Modules; calling build on the root module then traces the signal graph to
discover the containment hierarchy — sub-modules are never registered by
hand, they are found because their ports are connected into a parent's
signal graph.

Behavioral logic is expressed with Combinational and FF blocks, whose
bodies are an ordered tree of If/Case/CaseZ/Assign nodes executed by the
hwgraph/sim package's event-driven simulator, and lowered to SystemVerilog
by hwgraph/synth.
*/
package hwgraph
