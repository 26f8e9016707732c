package synth

import hw "hwgraph"

// nameTable resolves every signal reachable from a module's rendering to
// its display name. Two mechanisms from spec.md's naming policy are
// implemented here:
//
//   - Pass-through aliasing: when a signal's source is another plain
//     Logic (no operator in between), the two name the same net and are
//     collapsed to one declaration. The non-unpreferred name wins; if
//     both sides are equally preferred, the driver side wins. A module's
//     own input ports are never aliased to their source, which lies in the
//     parent's scope.
//   - Single-use inlining: an unpreferred-named signal read by exactly
//     one destination never gets its own declaration; its source
//     expression is substituted at that one use site instead.
type nameTable struct {
	alias      map[*hw.Logic]*hw.Logic
	inlineable map[*hw.Logic]bool
}

func newNameTable(m *hw.Module) *nameTable {
	nt := &nameTable{
		alias:      make(map[*hw.Logic]*hw.Logic),
		inlineable: make(map[*hw.Logic]bool),
	}
	nt.buildAliases(m)
	nt.buildInlineSet(m)
	return nt
}

func (nt *nameTable) find(l *hw.Logic) *hw.Logic {
	r, ok := nt.alias[l]
	if !ok {
		return l
	}
	root := nt.find(r)
	nt.alias[l] = root
	return root
}

// union merges dest's equivalence class into driver's, preferring the
// non-unpreferred name and, on a tie, the driver side.
func (nt *nameTable) union(dest, driver *hw.Logic) {
	rd, rv := nt.find(dest), nt.find(driver)
	if rd == rv {
		return
	}
	destPreferred := !hw.IsUnpreferred(rd.Name())
	driverPreferred := !hw.IsUnpreferred(rv.Name())
	switch {
	case destPreferred && !driverPreferred:
		nt.alias[rv] = rd
	default:
		// driverPreferred && !destPreferred, or a tie: keep the driver side.
		nt.alias[rd] = rv
	}
}

func (nt *nameTable) buildAliases(m *hw.Module) {
	for _, sig := range allModuleSignals(m) {
		if sig.IsInput() {
			continue
		}
		src, ok := sig.Source().(*hw.Logic)
		if !ok || src == nil {
			continue
		}
		nt.union(sig, src)
	}
}

// buildInlineSet marks every unpreferred-named, non-port signal with
// exactly one destination and a non-nil source as eligible for inlining,
// skipping anything referenced from Always-block bodies since procedural
// reads are rendered against the signal's current value, not its source
// expression.
func (nt *nameTable) buildInlineSet(m *hw.Module) {
	behavioral := make(map[*hw.Logic]bool)
	for _, b := range m.AlwaysBlocks() {
		targets, reads := hw.CollectAlwaysRefs(b)
		for _, s := range targets {
			behavioral[s] = true
		}
		for _, s := range reads {
			behavioral[s] = true
		}
	}
	for _, sig := range m.InternalSignals() {
		if !hw.IsUnpreferred(sig.Name()) {
			continue
		}
		if sig.Source() == nil || len(sig.Destinations()) != 1 {
			continue
		}
		if behavioral[sig] {
			continue
		}
		nt.inlineable[sig] = true
	}
}

func (nt *nameTable) of(l *hw.Logic) string {
	return nt.find(l).Name()
}

func allModuleSignals(m *hw.Module) []*hw.Logic {
	out := make([]*hw.Logic, 0)
	for _, name := range m.InputNames() {
		out = append(out, m.Inputs()[name])
	}
	for _, name := range m.OutputNames() {
		out = append(out, m.Outputs()[name])
	}
	out = append(out, m.InternalSignals()...)
	return out
}
