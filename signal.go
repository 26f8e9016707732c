package hwgraph

import (
	"fmt"
	"math/big"
	"sync/atomic"
)

// Driver is anything that can be evaluated to a Value: a plain Logic
// signal (a structural wire) or an expression node built by one of
// Logic's operator methods (Add, And, Slice, Swizzle, ...).
//
type Driver interface {
	Eval() Value
}

// onChange is a registered watcher notified with the new value whenever a
// Logic's value changes. Watchers are registered through OnChange, which
// the sim package uses and other observers may use too.
type onChange = func(Value)

var derivedSeq uint64

// Logic is a multi-bit four-state wire: spec.md's "Logic signal".
//
type Logic struct {
	name   string
	width  uint
	value  Value
	source Driver
	dests  []*Logic
	parent *Module

	isInput  bool
	isOutput bool

	watchers []onChange
}

// NewLogic creates an unparented internal signal of the given width. If
// name is empty, an unpreferred placeholder name is generated so that the
// signal still has a stable identity for synthesis/debugging purposes.
//
func NewLogic(width uint, name string) *Logic {
	if width == 0 {
		panic("hwgraph: zero-width signal")
	}
	if name == "" {
		name = unpreferredName()
	}
	return &Logic{name: name, width: width, value: UndefinedValue(width)}
}

const unpreferredPrefix = "__"

func unpreferredName() string {
	n := atomic.AddUint64(&derivedSeq, 1) - 1
	return fmt.Sprintf("%s%d", unpreferredPrefix, n)
}

// IsUnpreferred reports whether name was synthesized rather than
// user-supplied, i.e. whether it carries the unpreferred-name prefix.
func IsUnpreferred(name string) bool {
	return len(name) > len(unpreferredPrefix) && name[:len(unpreferredPrefix)] == unpreferredPrefix
}

// Name returns the signal's name (possibly an unpreferred placeholder).
func (l *Logic) Name() string { return l.name }

// Width returns the signal's declared width.
func (l *Logic) Width() uint { return l.width }

// Parent returns the module that owns this signal as a port or internal
// signal, or nil if it has not been claimed by a build pass yet.
func (l *Logic) Parent() *Module { return l.parent }

// IsInput reports whether l is an input port of its parent.
func (l *Logic) IsInput() bool { return l.isInput }

// IsOutput reports whether l is an output port of its parent.
func (l *Logic) IsOutput() bool { return l.isOutput }

// Source returns the signal's current driver, or nil if unconnected.
func (l *Logic) Source() Driver { return l.source }

// Destinations returns the signals that read l as part of their source
// expression — spec.md's "destination connections."
func (l *Logic) Destinations() []*Logic { return l.dests }

// Eval implements Driver: a plain Logic evaluates to its current value.
func (l *Logic) Eval() Value { return l.value }

// Gets establishes src as l's unique source driver. It fails with
// DriverConflict if l already has a source.
//
func (l *Logic) Gets(src Driver) error {
	if l.source != nil {
		return newErrf(DriverConflict, "hwgraph: signal %q already has a source driver", l.name)
	}
	l.source = src
	for _, u := range upstreamOf(src) {
		u.dests = append(u.dests, l)
	}
	return nil
}

// Upstream returns the Logic signals that d reads from: itself for a plain
// Logic, or its operands for one of the expression nodes built by Logic's
// operator methods. It is exported for use by the simulator package, which
// needs to find the leaves of a Driver expression to wire sensitivity.
func Upstream(d Driver) []*Logic { return upstreamOf(d) }

// upstreamOf returns the Logic signals a Driver reads from: itself for a
// plain Logic, or its operands for an expression node.
func upstreamOf(d Driver) []*Logic {
	switch t := d.(type) {
	case *Logic:
		return []*Logic{t}
	case *exprDriver:
		return t.operands
	default:
		return nil
	}
}

// Put forces l's current value, firing the glitch stream iff v differs
// from the previous value. Used to apply simulation inputs and, by the sim
// package, to commit the result of continuous/behavioral re-evaluation.
//
func (l *Logic) Put(v Value) error {
	if v.Width() != l.width {
		return newErrf(WidthMismatch, "hwgraph: signal %q is %d bits wide, got %d", l.name, l.width, v.Width())
	}
	changed := !l.value.Equal(v)
	l.value = v
	if changed {
		for _, w := range l.watchers {
			w(v)
		}
	}
	return nil
}

// Value returns l's current four-state value.
func (l *Logic) Value() Value { return l.value }

// Uint64 returns l's current value as an unsigned integer, failing with
// XZPropagation if any bit is undefined.
func (l *Logic) Uint64() (uint64, error) { return l.value.Uint64() }

// BigInt returns l's current value as an unsigned big.Int, failing with
// XZPropagation if any bit is undefined.
func (l *Logic) BigInt() (*big.Int, error) { return l.value.BigInt() }

// OnChange registers f to be called with l's new value every time it
// changes. This is the hook the sim package uses to wire glitch
// propagation and Always-block sensitivity; it is exported so that custom
// schedulers or waveform probes can use it too.
//
func (l *Logic) OnChange(f func(Value)) {
	l.watchers = append(l.watchers, f)
}

// Changed returns a channel that receives l's new value on every glitch.
// It is a convenience tap for observers outside the simulator; the
// simulator itself drives Always-block re-evaluation via OnChange
// watchers, not via this channel, so a slow receiver here never stalls
// simulation — writes are non-blocking and drop if the channel isn't
// ready.
//
func (l *Logic) Changed() <-chan Value {
	ch := make(chan Value, 1)
	l.OnChange(func(v Value) {
		select {
		case ch <- v:
		default:
		}
	})
	return ch
}
