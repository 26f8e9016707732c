package hwgraph

import (
	"hwgraph/internal/ident"
)

// Module is a named scope owning input ports, output ports, internal
// signals, and sub-modules — spec.md's "Module."
//
type Module struct {
	name         string
	instanceName string

	inputs      map[string]*Logic
	inputOrder  []string
	outputs     map[string]*Logic
	outputOrder []string

	internal map[*Logic]struct{}

	subModules []*Module

	parent   *Module
	hasBuilt bool

	nameCounts map[string]int

	customSV func(*Module) string

	alwaysBlocks []*AlwaysBlock
}

// NewModule creates a new, unparented module with the given name and empty
// port/sub-module collections.
//
func NewModule(name string) *Module {
	return &Module{
		name:       name,
		inputs:     make(map[string]*Logic),
		outputs:    make(map[string]*Logic),
		internal:   make(map[*Logic]struct{}),
		nameCounts: make(map[string]int),
	}
}

// Name returns the module's declared type name.
func (m *Module) Name() string { return m.name }

// Parent returns m's parent module, or nil for the root / a not-yet-built module.
func (m *Module) Parent() *Module { return m.parent }

// HasBuilt reports whether Build has already succeeded on m.
func (m *Module) HasBuilt() bool { return m.hasBuilt }

// InstanceName returns the unique name assigned to m within its parent
// during the parent's build pass. It is only valid after the owning
// hierarchy has been built.
//
func (m *Module) InstanceName() (string, error) {
	if m.parent == nil {
		if !m.hasBuilt {
			return "", newErrf(NotBuilt, "hwgraph: module %q has not been built", m.name)
		}
		return m.name, nil
	}
	if !m.parent.hasBuilt {
		return "", newErrf(NotBuilt, "hwgraph: module %q has not been built", m.name)
	}
	return m.instanceName, nil
}

// SubModules returns the sub-modules discovered by Build, in discovery order.
func (m *Module) SubModules() []*Module { return m.subModules }

// AlwaysBlocks returns the Combinational and FF blocks declared on m, in
// declaration order.
func (m *Module) AlwaysBlocks() []*AlwaysBlock { return m.alwaysBlocks }

// Inputs returns m's input ports keyed by name.
func (m *Module) Inputs() map[string]*Logic { return m.inputs }

// Outputs returns m's output ports keyed by name.
func (m *Module) Outputs() map[string]*Logic { return m.outputs }

// InputNames returns input port names in declaration order.
func (m *Module) InputNames() []string { return append([]string(nil), m.inputOrder...) }

// OutputNames returns output port names in declaration order.
func (m *Module) OutputNames() []string { return append([]string(nil), m.outputOrder...) }

// InternalSignals returns the signals discovered by Build to be strictly
// interior to m (neither a port of m nor belonging to a sub-module).
func (m *Module) InternalSignals() []*Logic {
	out := make([]*Logic, 0, len(m.internal))
	for s := range m.internal {
		out = append(out, s)
	}
	return out
}

// SetCustomSystemVerilog installs the module-level capability described in
// spec.md §4.6 point 6: when present, the synthesizer emits fn's output
// verbatim instead of lowering the module's Always blocks.
func (m *Module) SetCustomSystemVerilog(fn func(m *Module) string) {
	m.customSV = fn
}

// CustomSystemVerilog returns the capability installed by
// SetCustomSystemVerilog, and whether one is present.
func (m *Module) CustomSystemVerilog() (func(m *Module) string, bool) {
	return m.customSV, m.customSV != nil
}

// AddInput creates an input port named name, of the given width, wired
// from external. It fails with InvalidIdentifier, DuplicatePort, or
// WidthMismatch.
//
func (m *Module) AddInput(name string, external *Logic, width uint) (*Logic, error) {
	if err := m.checkNewPort(name); err != nil {
		return nil, err
	}
	if external.Width() != width {
		return nil, newErrf(WidthMismatch, "hwgraph: input %q of %q: declared width %d, external signal %q is %d bits",
			name, m.name, width, external.Name(), external.Width())
	}
	p := NewLogic(width, name)
	p.isInput = true
	p.parent = m
	if err := p.Gets(external); err != nil {
		return nil, err
	}
	m.inputs[name] = p
	m.inputOrder = append(m.inputOrder, name)
	return p, nil
}

// AddOutput creates an unsourced output port named name, of the given
// width, owned by m. The module's body must Gets() it before Build.
//
func (m *Module) AddOutput(name string, width uint) (*Logic, error) {
	if err := m.checkNewPort(name); err != nil {
		return nil, err
	}
	p := NewLogic(width, name)
	p.isOutput = true
	p.parent = m
	m.outputs[name] = p
	m.outputOrder = append(m.outputOrder, name)
	return p, nil
}

func (m *Module) checkNewPort(name string) error {
	if err := ident.Validate(name); err != nil {
		return newErrf(InvalidIdentifier, "hwgraph: %v", err)
	}
	if _, ok := m.inputs[name]; ok {
		return newErrf(DuplicatePort, "hwgraph: module %q already has a port named %q", m.name, name)
	}
	if _, ok := m.outputs[name]; ok {
		return newErrf(DuplicatePort, "hwgraph: module %q already has a port named %q", m.name, name)
	}
	return nil
}

// Build traces the signal graph reachable from m's ports, discovers
// sub-modules and internal signals, recursively builds every discovered
// sub-module, and assigns unique instance names — spec.md §4.2.
//
// Build fails with AlreadyBuilt if called twice.
//
func (m *Module) Build() error {
	if m.hasBuilt {
		return newErrf(AlreadyBuilt, "hwgraph: module %q has already been built", m.name)
	}

	visited := make(map[*Logic]bool)

	var behavioralTargets, behavioralReads []*Logic
	for _, b := range m.alwaysBlocks {
		collectIRRefs(b.Body, &behavioralTargets, &behavioralReads)
	}
	behaviorallyDriven := make(map[*Logic]bool, len(behavioralTargets))
	for _, t := range behavioralTargets {
		behaviorallyDriven[t] = true
	}

	for _, name := range m.outputOrder {
		out := m.outputs[name]
		if out.source == nil && !behaviorallyDriven[out] {
			return newErrf(PortViolation, "hwgraph: output %q of module %q is never driven", name, m.name)
		}
		if out.source != nil {
			if err := m.walkUpstream(out, visited); err != nil {
				return err
			}
		}
	}
	for _, name := range m.inputOrder {
		in := m.inputs[name]
		if err := m.walkDownstream(in, visited); err != nil {
			return err
		}
	}
	// Always blocks reference signals without going through Gets, so their
	// targets and reads need their own upstream trace to discover
	// sub-modules and internal signals reached only from behavioral code.
	for _, t := range behavioralTargets {
		if err := m.walkUpstream(t, visited); err != nil {
			return err
		}
	}
	for _, r := range behavioralReads {
		if err := m.walkUpstream(r, visited); err != nil {
			return err
		}
	}

	// A sub-module's port can be fed by (or feed into) a derived signal
	// that is otherwise unreachable from m's own ports or behavioral
	// code — e.g. an adder's output wired straight into a register's
	// input, with nothing else in m reading either signal directly.
	// Walking each adopted sub-module's port connections catches these;
	// the loop bound is re-read every iteration since walking one
	// sub-module's ports can itself adopt another.
	for i := 0; i < len(m.subModules); i++ {
		sm := m.subModules[i]
		for _, name := range sm.InputNames() {
			in := sm.Inputs()[name]
			if in.Source() == nil {
				continue
			}
			for _, u := range upstreamOf(in.Source()) {
				if err := m.walkUpstream(u, visited); err != nil {
					return err
				}
			}
		}
		for _, name := range sm.OutputNames() {
			for _, d := range sm.Outputs()[name].Destinations() {
				if err := m.walkDownstream(d, visited); err != nil {
					return err
				}
			}
		}
	}

	for _, sm := range m.subModules {
		if !sm.hasBuilt {
			if err := sm.Build(); err != nil {
				return err
			}
		}
	}

	m.assignInstanceNames()
	m.hasBuilt = true
	return nil
}

// walkUpstream follows source connections backward from an output port (or
// any signal already known to belong to m) looking for internal signals and
// sub-module output ports that feed it.
func (m *Module) walkUpstream(l *Logic, visited map[*Logic]bool) error {
	if visited[l] {
		return nil
	}
	visited[l] = true

	switch {
	case l.parent == nil:
		l.parent = m
		m.internal[l] = struct{}{}
	case l.parent == m:
		if l.isInput {
			// Reached our own input boundary via a pass-through; its
			// source lies outside m and is none of this build's concern.
			return nil
		}
	default:
		s := l.parent
		if l.isInput {
			return newErrf(PortViolation, "hwgraph: module %q: upstream trace from an output reached input port %q.%s",
				m.name, s.name, l.name)
		}
		if !l.isOutput {
			return newErrf(PortViolation, "hwgraph: module %q: upstream trace reached non-port signal %q owned by module %q",
				m.name, l.name, s.name)
		}
		if err := m.adopt(s); err != nil {
			return err
		}
		return nil
	}

	if l.source == nil {
		return nil
	}
	for _, u := range upstreamOf(l.source) {
		if err := m.walkUpstream(u, visited); err != nil {
			return err
		}
	}
	return nil
}

// walkDownstream follows destination connections forward from an input
// port (or any signal already known to belong to m) looking for internal
// signals and sub-module input ports that it feeds.
func (m *Module) walkDownstream(l *Logic, visited map[*Logic]bool) error {
	if visited[l] {
		return nil
	}
	visited[l] = true

	switch {
	case l.parent == nil:
		l.parent = m
		m.internal[l] = struct{}{}
	case l.parent == m:
		if l.isOutput {
			return nil
		}
	default:
		s := l.parent
		if l.isOutput {
			return newErrf(PortViolation, "hwgraph: module %q: downstream trace from an input reached output port %q.%s",
				m.name, s.name, l.name)
		}
		if !l.isInput {
			return newErrf(PortViolation, "hwgraph: module %q: downstream trace reached non-port signal %q owned by module %q",
				m.name, l.name, s.name)
		}
		if err := m.adopt(s); err != nil {
			return err
		}
		return nil
	}

	for _, d := range l.dests {
		if err := m.walkDownstream(d, visited); err != nil {
			return err
		}
	}
	return nil
}

// adopt claims s as a sub-module of m, idempotently. It fails with
// PortViolation if s already belongs to a different module.
func (m *Module) adopt(s *Module) error {
	if s.parent == m {
		return nil
	}
	if s.parent != nil {
		return newErrf(PortViolation, "hwgraph: module %q: sub-module %q already belongs to module %q",
			m.name, s.name, s.parent.name)
	}
	s.parent = m
	m.subModules = append(m.subModules, s)
	return nil
}

// assignInstanceNames derives HDL-legal instance names for every
// sub-module, disambiguating collisions with a monotonic suffix counter —
// spec.md §4.2 step 4.
func (m *Module) assignInstanceNames() {
	for _, sm := range m.subModules {
		base := ident.Sanitize(sm.name)
		n := m.nameCounts[base]
		m.nameCounts[base] = n + 1
		if n == 0 {
			sm.instanceName = base
			continue
		}
		sm.instanceName = ident.Disambiguate(base, n)
	}
}
