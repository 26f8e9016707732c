package sim

import (
	"container/heap"

	"go.uber.org/zap"

	hw "hwgraph"
)

// Action is a unit of work registered against a future virtual time.
type Action func()

type scheduledAction struct {
	t      VTime
	seq    uint64
	action Action
}

type actionHeap []*scheduledAction

func (h actionHeap) Len() int { return len(h) }
func (h actionHeap) Less(i, j int) bool {
	if c := h[i].t.Compare(h[j].t); c != 0 {
		return c < 0
	}
	return h[i].seq < h[j].seq
}
func (h actionHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *actionHeap) Push(x interface{}) {
	*h = append(*h, x.(*scheduledAction))
}
func (h *actionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Options configures a Simulator. The zero value is valid: it disables
// logging and applies the default combinational-evaluation bound.
type Options struct {
	// Logger receives non-fatal diagnostics (combinational blocks that
	// exceed the re-evaluation bound, block evaluation failures).
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// MaxCombEvalsPerPoint bounds how many times a single Combinational
	// block may re-evaluate at one virtual-time point before the
	// simulator gives up and logs a warning instead of looping forever.
	// Defaults to 1000.
	MaxCombEvalsPerPoint int
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.MaxCombEvalsPerPoint <= 0 {
		o.MaxCombEvalsPerPoint = 1000
	}
	return o
}

// Simulator is an explicit, non-singleton event-driven scheduler: spec.md's
// C7. Every caller constructs and owns its own Simulator; there is no
// global instance.
type Simulator struct {
	now     VTime
	heap    actionHeap
	seq     uint64
	opts    Options
	modules []*hw.Module

	// combEvals counts, within a single Tick, how many times each
	// Combinational block has re-evaluated, to enforce
	// MaxCombEvalsPerPoint.
	combEvals map[*hw.AlwaysBlock]int
}

// New creates a Simulator at t = 0 with no pending actions.
func New(opts Options) *Simulator {
	return &Simulator{
		now:       ZeroTime(),
		opts:      opts.withDefaults(),
		combEvals: make(map[*hw.AlwaysBlock]int),
	}
}

// Now returns the simulator's current virtual time.
func (s *Simulator) Now() VTime { return s.now }

// RegisterAction inserts f to run at virtual time t. Actions registered at
// the same time run in the order they were registered.
func (s *Simulator) RegisterAction(t VTime, f Action) {
	heap.Push(&s.heap, &scheduledAction{t: t, seq: s.seq, action: f})
	s.seq++
}

// Tick advances to the next pending time point, runs every action
// registered there, and returns false once the queue is empty. Tick clears
// the per-point combinational-evaluation counters before running.
func (s *Simulator) Tick() bool {
	if s.heap.Len() == 0 {
		return false
	}
	next := s.heap[0].t
	s.now = next
	for k := range s.combEvals {
		delete(s.combEvals, k)
	}
	for s.heap.Len() > 0 && s.heap[0].t.Compare(next) == 0 {
		item := heap.Pop(&s.heap).(*scheduledAction)
		item.action()
	}
	return true
}

// Run calls Tick until no actions remain.
func (s *Simulator) Run() {
	for s.Tick() {
	}
}

// Reset discards all pending actions and returns the simulator to t = 0.
func (s *Simulator) Reset() {
	s.heap = nil
	s.seq = 0
	s.now = ZeroTime()
	s.combEvals = make(map[*hw.AlwaysBlock]int)
}

// Attach wires m's continuous connections, Combinational blocks, and FF
// blocks into the simulator's event graph, recursively across every
// sub-module discovered by m's Build pass. m must already be built.
func (s *Simulator) Attach(m *hw.Module) error {
	if !m.HasBuilt() {
		return hw.NewKindErrorf(hw.NotBuilt, "sim: module %q must be built before Attach", m.Name())
	}
	s.modules = append(s.modules, m)
	return s.wireModule(m)
}

func (s *Simulator) wireModule(m *hw.Module) error {
	for _, sig := range allModuleSignals(m) {
		if sig.Source() != nil {
			s.wireContinuous(sig)
		}
	}
	for _, b := range m.AlwaysBlocks() {
		switch b.Kind {
		case hw.CombinationalBlock:
			s.wireCombinational(b)
		case hw.SequentialBlock:
			s.wireSequential(b)
		}
	}
	for _, sm := range m.SubModules() {
		if err := s.wireModule(sm); err != nil {
			return err
		}
	}
	return nil
}

func allModuleSignals(m *hw.Module) []*hw.Logic {
	out := make([]*hw.Logic, 0)
	for _, s := range m.Inputs() {
		out = append(out, s)
	}
	for _, s := range m.Outputs() {
		out = append(out, s)
	}
	out = append(out, m.InternalSignals()...)
	return out
}
