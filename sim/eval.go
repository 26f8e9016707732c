package sim

import hw "hwgraph"

// evalCtx threads the commit strategy and X-contamination state through a
// single walk of an Always block's body.
//
// immediate selects blocking commit (Combinational: target.Put happens
// right away, so later reads in the same body observe it) versus
// non-blocking commit (FF: writes accumulate in pending and are applied
// together once the whole body has been walked).
//
// contaminate is set for the remainder of a branch taken only because its
// controlling condition or selector was undefined; every assignment
// executed under it is forced to all-X, mirroring the Case/CaseZ rule that
// an undefined selector falls to the default item with X-contaminated
// writes.
type evalCtx struct {
	pending     map[*hw.Logic]hw.Value
	immediate   bool
	contaminate bool
}

func (c *evalCtx) commit(target *hw.Logic, v hw.Value) error {
	if c.immediate {
		return target.Put(v)
	}
	c.pending[target] = v
	return nil
}

func (c *evalCtx) contaminated() *evalCtx {
	sub := *c
	sub.contaminate = true
	return &sub
}

func (c *evalCtx) runBody(nodes []hw.IRNode) error {
	for _, n := range nodes {
		if err := c.runNode(n); err != nil {
			return err
		}
	}
	return nil
}

func truthy(v hw.Value) bool {
	for i := uint(0); i < v.Width(); i++ {
		if v.Bit(i) == hw.One {
			return true
		}
	}
	return false
}

func (c *evalCtx) runNode(n hw.IRNode) error {
	switch t := n.(type) {
	case *hw.AssignNode:
		v := t.Source.Eval()
		if c.contaminate {
			v = hw.UndefinedValue(t.Target.Width())
		}
		return c.commit(t.Target, v)

	case *hw.IfNode:
		cond := t.Cond.Eval()
		if !cond.IsDefined() {
			return c.contaminated().runBody(t.Else)
		}
		if truthy(cond) {
			return c.runBody(t.Then)
		}
		for _, ei := range t.Elifs {
			ec := ei.Cond.Eval()
			if !ec.IsDefined() {
				return c.contaminated().runBody(t.Else)
			}
			if truthy(ec) {
				return c.runBody(ei.Body)
			}
		}
		return c.runBody(t.Else)

	case *hw.CaseNode:
		sel := t.Selector.Eval()
		if !sel.IsDefined() {
			return c.contaminated().runBody(t.Default)
		}
		for _, item := range t.Items {
			if sel.Equal(item.Pattern) {
				return c.runBody(item.Body)
			}
		}
		return c.runBody(t.Default)

	case *hw.CaseZNode:
		sel := t.Selector.Eval()
		if !sel.IsDefined() {
			return c.contaminated().runBody(t.Default)
		}
		for _, item := range t.Items {
			if hw.MatchCaseZ(sel, item.Pattern) {
				return c.runBody(item.Body)
			}
		}
		return c.runBody(t.Default)

	default:
		return nil
	}
}
