package synth

import hw "hwgraph"

// checkMultipleDrivers enforces spec.md §4.4's FF rule at emission time:
// no reachable path through body may assign the same target twice. Each
// arm of an If/Case/CaseZ is checked against an independent copy of the
// targets seen so far, since only one arm executes per activation; the
// targets of every arm then count as seen for the statements that follow.
// The error names the module by its parent chain, e.g. "Top.Inner".
func checkMultipleDrivers(m *hw.Module, body []hw.IRNode) error {
	return walkPaths(m, body, make(map[*hw.Logic]bool))
}

func walkPaths(m *hw.Module, nodes []hw.IRNode, seen map[*hw.Logic]bool) error {
	for _, n := range nodes {
		switch t := n.(type) {
		case *hw.AssignNode:
			if seen[t.Target] {
				path := m.Name()
				for p := m.Parent(); p != nil; p = p.Parent() {
					path = p.Name() + "." + path
				}
				return hw.NewKindErrorf(hw.MultipleDrivers,
					"synth: module %q: FF target %q is assigned more than once along a single reachable path",
					path, t.Target.Name())
			}
			seen[t.Target] = true
		case *hw.IfNode:
			branches := append([][]hw.IRNode{t.Then}, t.Else)
			for _, ei := range t.Elifs {
				branches = append(branches, ei.Body)
			}
			var armSeen []map[*hw.Logic]bool
			for _, b := range branches {
				bs := cloneSeen(seen)
				if err := walkPaths(m, b, bs); err != nil {
					return err
				}
				armSeen = append(armSeen, bs)
			}
			for _, bs := range armSeen {
				for k := range bs {
					seen[k] = true
				}
			}
		case *hw.CaseNode:
			if err := walkCaseArms(m, t.Items, t.Default, seen); err != nil {
				return err
			}
		case *hw.CaseZNode:
			if err := walkCaseArms(m, t.Items, t.Default, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkCaseArms(m *hw.Module, items []hw.CaseItem, deflt []hw.IRNode, seen map[*hw.Logic]bool) error {
	arms := [][]hw.IRNode{deflt}
	for _, item := range items {
		arms = append(arms, item.Body)
	}
	var armSeen []map[*hw.Logic]bool
	for _, body := range arms {
		bs := cloneSeen(seen)
		if err := walkPaths(m, body, bs); err != nil {
			return err
		}
		armSeen = append(armSeen, bs)
	}
	for _, bs := range armSeen {
		for k := range bs {
			seen[k] = true
		}
	}
	return nil
}

func cloneSeen(seen map[*hw.Logic]bool) map[*hw.Logic]bool {
	clone := make(map[*hw.Logic]bool, len(seen))
	for k, v := range seen {
		clone[k] = v
	}
	return clone
}
