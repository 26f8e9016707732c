package hwgraph

import "github.com/pkg/errors"

// Kind identifies the class of failure behind an error returned by this
// package. Every Kind is an unrecoverable failure of the current
// construction or simulation operation; there is no local recovery.
//
type Kind int

const (
	// KindOther is returned by KindOf for errors not raised by this package.
	KindOther Kind = iota
	// DriverConflict: more than one source drives a signal.
	DriverConflict
	// PortViolation: tracing reached a port with disallowed polarity or
	// crossed an unexpected module boundary.
	PortViolation
	// WidthMismatch: declared width disagrees with actual source width.
	WidthMismatch
	// InvalidIdentifier: port name violates the target HDL's identifier rules.
	InvalidIdentifier
	// DuplicatePort: name already exists within the module.
	DuplicatePort
	// AlreadyBuilt: build called twice on the same module.
	AlreadyBuilt
	// NotBuilt: hierarchy/synthesis/unique-name access before build.
	NotBuilt
	// XZPropagation: integer conversion on a four-state value containing X/Z.
	XZPropagation
	// AmbiguousDirection: interface port tagged as both input and output.
	AmbiguousDirection
	// MultipleDrivers: an FF body assigns the same target more than once
	// along a single reachable path; enforced at synthesis, not at runtime.
	MultipleDrivers
)

func (k Kind) String() string {
	switch k {
	case DriverConflict:
		return "DriverConflict"
	case PortViolation:
		return "PortViolation"
	case WidthMismatch:
		return "WidthMismatch"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case DuplicatePort:
		return "DuplicatePort"
	case AlreadyBuilt:
		return "AlreadyBuilt"
	case NotBuilt:
		return "NotBuilt"
	case XZPropagation:
		return "XZPropagation"
	case AmbiguousDirection:
		return "AmbiguousDirection"
	case MultipleDrivers:
		return "MultipleDrivers"
	default:
		return "Other"
	}
}

// kindError carries a Kind alongside the wrapped pkg/errors error (which
// holds the stack trace) so
// that KindOf can recover it after the error has been wrapped any number
// of times with errors.Wrap.
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Cause() error  { return e.err }
func (e *kindError) Unwrap() error { return e.err }

// newErr builds a Kind-tagged error with a stack trace attached, the way
// the teacher's chip.go/wiring.go build plain errors.New errors — callers
// of this package can still errors.Wrap the result without losing the Kind.
func newErr(k Kind, msg string) error {
	return &kindError{kind: k, err: errors.New(msg)}
}

func newErrf(k Kind, format string, args ...interface{}) error {
	return &kindError{kind: k, err: errors.Errorf(format, args...)}
}

// NewKindErrorf builds a Kind-tagged error for use by the sim, synth, and
// cosim packages, which raise the same Kind values as this package (an FF
// body's MultipleDrivers check, NotBuilt for an unbuilt module passed to
// Attach, Compare or Synthesize, and so on) but live outside it.
func NewKindErrorf(k Kind, format string, args ...interface{}) error {
	return newErrf(k, format, args...)
}

// KindOf returns the Kind of err if it (or something it wraps) was raised
// by this package, and KindOther otherwise.
//
func KindOf(err error) Kind {
	for err != nil {
		if ke, ok := err.(*kindError); ok {
			return ke.kind
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return KindOther
}
