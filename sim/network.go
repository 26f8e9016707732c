package sim

import hw "hwgraph"

// wireContinuous keeps sig equal to sig.Source().Eval() any time one of the
// source's upstream operands changes. This realizes every structural
// connection made with Gets outside a behavioral block: module port
// wiring, pass-throughs, and the derived signals returned by Logic's
// operator methods.
func (s *Simulator) wireContinuous(sig *hw.Logic) {
	recompute := sig
	for _, u := range hw.Upstream(sig.Source()) {
		u.OnChange(func(hw.Value) {
			recompute.Put(recompute.Source().Eval())
		})
	}
	sig.Put(sig.Source().Eval())
}

// wireCombinational re-evaluates b's body, with blocking/last-write-wins
// commit semantics, whenever a signal read anywhere in the body changes.
func (s *Simulator) wireCombinational(b *hw.AlwaysBlock) {
	targets, reads := collectRefs(b)

	// A signal the block also writes needs no external trigger: later
	// statements in the same body already see the new value directly by
	// reading it, and re-triggering on the block's own write would just
	// oscillate forever instead of converging in one pass.
	written := make(map[*hw.Logic]bool, len(targets))
	for _, t := range targets {
		written[t] = true
	}
	sensitivity := reads[:0:0]
	for _, r := range reads {
		if !written[r] {
			sensitivity = append(sensitivity, r)
		}
	}

	run := func(hw.Value) {
		s.combEvals[b]++
		if s.combEvals[b] > s.opts.MaxCombEvalsPerPoint {
			s.opts.Logger.Warn("combinational block exceeded re-evaluation bound at this time point; holding last value",
				zapModule(b), zapCount(s.combEvals[b]))
			return
		}
		ctx := &evalCtx{immediate: true}
		if err := ctx.runBody(b.Body); err != nil {
			s.opts.Logger.Warn("combinational block evaluation failed", zapModule(b), zapErr(err))
		}
	}

	for _, r := range sensitivity {
		r.OnChange(run)
	}
	run(hw.Value{})
}

// wireSequential re-evaluates b's body on every rising edge of its clock,
// sampling all right-hand sides against pre-edge values and committing
// every target simultaneously afterward. The body is evaluated as the edge
// arrives and its targets commit in an action at the same time point, so no
// FF block on that edge sees another's commit.
func (s *Simulator) wireSequential(b *hw.AlwaysBlock) {
	prev := b.Clock.Value()
	b.Clock.OnChange(func(v hw.Value) {
		wasLow := prev.IsDefined() && !truthy(prev)
		prev = v
		if !(wasLow && v.IsDefined() && truthy(v)) {
			return
		}
		ctx := &evalCtx{pending: make(map[*hw.Logic]hw.Value)}
		if err := ctx.runBody(b.Body); err != nil {
			s.opts.Logger.Warn("sequential block evaluation failed", zapModule(b), zapErr(err))
			return
		}
		s.RegisterAction(s.now, func() {
			for target, v := range ctx.pending {
				target.Put(v)
			}
		})
	})
}

func collectRefs(b *hw.AlwaysBlock) (targets, reads []*hw.Logic) {
	return hw.CollectAlwaysRefs(b)
}

// DriveClock registers a recurring half-period toggle action producing a
// square wave on clk from t = 0 with an initial low value, per spec.md's
// clock-generator rule.
func (s *Simulator) DriveClock(clk *hw.Logic, halfPeriod VTime) {
	clk.Put(hw.NewValue(clk.Width(), 0))
	var toggle func()
	toggle = func() {
		cur, _ := clk.Value().Uint64()
		clk.Put(hw.NewValue(clk.Width(), 1-cur))
		s.RegisterAction(s.now.Add(halfPeriod), toggle)
	}
	s.RegisterAction(s.now.Add(halfPeriod), toggle)
}
