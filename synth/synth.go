// Package synth walks a built hwgraph module tree and renders it as
// SystemVerilog: one module definition per unique type signature, with
// sub-module instantiation, unpreferred-name elision, and always_comb /
// always_ff lowering of the conditional IR, per spec.md §4.6.
package synth

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"

	hw "hwgraph"
)

// Options configures a Synthesize call.
type Options struct {
	// Logger receives non-fatal emission-time diagnostics (case-overlap
	// hints). Defaults to zap.NewNop().
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Synthesize returns SystemVerilog source text for top's module tree.
// top must already be built. Modules sharing a declared Name are treated
// as the same type signature and emitted once; CustomSystemVerilog takes
// priority over the generated body for any module that installs it.
func Synthesize(top *hw.Module, opts Options) (string, error) {
	if !top.HasBuilt() {
		return "", hw.NewKindErrorf(hw.NotBuilt, "synth: module %q has not been built", top.Name())
	}
	opts = opts.withDefaults()
	e := &emitter{opts: opts, emitted: make(map[string]bool)}
	var buf bytes.Buffer
	if err := e.emitTree(&buf, top); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type emitter struct {
	opts    Options
	emitted map[string]bool
}

// emitTree emits every sub-module's type signature before m's own, so the
// resulting text defines each module before anything that instantiates
// it — leaf-first, matching how the teacher's chip.go builds from the
// bottom of a Part tree up.
func (e *emitter) emitTree(w io.Writer, m *hw.Module) error {
	for _, sm := range m.SubModules() {
		if err := e.emitTree(w, sm); err != nil {
			return err
		}
	}
	if e.emitted[m.Name()] {
		return nil
	}
	e.emitted[m.Name()] = true
	return e.emitModule(w, m)
}

func (e *emitter) emitModule(w io.Writer, m *hw.Module) error {
	if fn, ok := m.CustomSystemVerilog(); ok {
		fmt.Fprintln(w, fn(m))
		fmt.Fprintln(w)
		return nil
	}

	for _, b := range m.AlwaysBlocks() {
		if b.Kind == hw.SequentialBlock {
			if err := checkMultipleDrivers(m, b.Body); err != nil {
				return err
			}
		}
		checkCaseOverlap(e.opts.Logger, m, b.Body)
	}

	nt := newNameTable(m)
	p := &printer{w: w}

	p.line("module %s(", m.Name())
	p.indent++
	e.emitPortList(p, m)
	p.indent--
	p.line(");")
	p.indent++

	for _, sm := range m.SubModules() {
		e.emitInstance(p, sm, nt)
	}

	e.emitDeclarations(p, m, nt)
	e.emitContinuousAssigns(p, m, nt)

	for _, b := range m.AlwaysBlocks() {
		e.emitAlwaysBlock(p, b, nt)
	}

	p.indent--
	p.line("endmodule")
	p.blank()
	return nil
}

func (e *emitter) emitPortList(p *printer, m *hw.Module) {
	total := len(m.InputNames()) + len(m.OutputNames())
	i := 0
	emit := func(dir string, name string, l *hw.Logic) {
		i++
		comma := ","
		if i == total {
			comma = ""
		}
		if l.Width() == 1 {
			p.line("%-6s logic       %s%s", dir, name, comma)
			return
		}
		p.line("%-6s logic [%d:0] %s%s", dir, l.Width()-1, name, comma)
	}
	for _, name := range m.InputNames() {
		emit("input", name, m.Inputs()[name])
	}
	for _, name := range m.OutputNames() {
		emit("output", name, m.Outputs()[name])
	}
}

// emitInstance renders sm's instantiation with named port connections. An
// input port connects to the rendering of whatever it was wired from in the
// parent's scope: a signal name, or the driving expression of a signal the
// nameTable inlines; an output port connects under its own declared name,
// since the nameTable never renames a sub-module's own ports.
func (e *emitter) emitInstance(p *printer, sm *hw.Module, nt *nameTable) {
	instName, err := sm.InstanceName()
	if err != nil {
		instName = sm.Name()
	}
	var conns []string
	for _, name := range sm.InputNames() {
		in := sm.Inputs()[name]
		connName := renderDriver(in.Source(), nt)
		conns = append(conns, fmt.Sprintf(".%s(%s)", name, connName))
	}
	for _, name := range sm.OutputNames() {
		conns = append(conns, fmt.Sprintf(".%s(%s)", name, sm.Outputs()[name].Name()))
	}
	p.line("%s %s (", sm.Name(), instName)
	p.indent++
	for i, c := range conns {
		comma := ","
		if i == len(conns)-1 {
			comma = ""
		}
		p.line("%s%s", c, comma)
	}
	p.indent--
	p.line(");")
}

func (e *emitter) emitDeclarations(p *printer, m *hw.Module, nt *nameTable) {
	seen := make(map[*hw.Logic]bool)
	var decls []*hw.Logic
	for _, sig := range m.InternalSignals() {
		if nt.inlineable[sig] {
			continue
		}
		rep := nt.find(sig)
		if rep != sig {
			continue
		}
		if isPort(m, rep) || seen[rep] {
			continue
		}
		seen[rep] = true
		decls = append(decls, rep)
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Name() < decls[j].Name() })
	for _, sig := range decls {
		if sig.Width() == 1 {
			p.line("logic       %s;", sig.Name())
			continue
		}
		p.line("logic [%d:0] %s;", sig.Width()-1, sig.Name())
	}
}

func isPort(m *hw.Module, l *hw.Logic) bool {
	for _, n := range m.InputNames() {
		if m.Inputs()[n] == l {
			return true
		}
	}
	for _, n := range m.OutputNames() {
		if m.Outputs()[n] == l {
			return true
		}
	}
	return false
}

// emitContinuousAssigns renders `assign` statements for every port or
// internal signal whose source is a live expression, under the name nt
// resolves it to, and for every pass-through whose source is an inlined
// signal. Other pass-throughs are folded into nt's aliasing, and signals
// driven by an Always block get no assign.
func (e *emitter) emitContinuousAssigns(p *printer, m *hw.Module, nt *nameTable) {
	behavioral := make(map[*hw.Logic]bool)
	for _, b := range m.AlwaysBlocks() {
		targets, _ := hw.CollectAlwaysRefs(b)
		for _, t := range targets {
			behavioral[t] = true
		}
	}

	var sigs []*hw.Logic
	for _, name := range m.OutputNames() {
		sigs = append(sigs, m.Outputs()[name])
	}
	sigs = append(sigs, m.InternalSignals()...)

	for _, sig := range sigs {
		if behavioral[sig] || nt.inlineable[sig] {
			continue
		}
		if sig.Source() == nil {
			continue
		}
		if src, isPassthrough := sig.Source().(*hw.Logic); isPassthrough && !nt.inlineable[src] {
			continue // collapsed by nameTable aliasing; no wire of its own
		}
		p.line("assign %s = %s;", nt.of(sig), renderDriver(sig.Source(), nt))
	}
}

func (e *emitter) emitAlwaysBlock(p *printer, b *hw.AlwaysBlock, nt *nameTable) {
	switch b.Kind {
	case hw.CombinationalBlock:
		p.line("always_comb begin")
		p.indent++
		emitBody(p, b.Body, nt, false)
		p.indent--
		p.line("end")
	case hw.SequentialBlock:
		p.line("always_ff @(posedge %s) begin", nt.of(b.Clock))
		p.indent++
		emitBody(p, b.Body, nt, true)
		p.indent--
		p.line("end")
	}
}
