package hwgraph

// Tag marks a port definition with a direction role (e.g. "host", "device",
// "debug"); a single port can carry several tags and a caller decides, at
// connect time, which tags mean "input here" versus "output here" — spec.md's
// Interface is parameterized by whatever tag set the caller chooses.
type Tag string

type portDef struct {
	width uint
	tags  map[Tag]bool
}

// Interface is a named, reusable bundle of port definitions. DefinePort
// builds the bundle once; ConnectIO instantiates it against a parent module
// and a counterpart Interface any number of times.
//
type Interface struct {
	name  string
	defs  map[string]*portDef
	order []string
	bound map[string]*Logic
}

// NewInterface creates an empty, unbound interface.
func NewInterface(name string) *Interface {
	return &Interface{
		name:  name,
		defs:  make(map[string]*portDef),
		bound: make(map[string]*Logic),
	}
}

// DefinePort adds a port of the given width and direction tags to the
// bundle. It fails with DuplicatePort if name was already defined.
func (intf *Interface) DefinePort(name string, width uint, tags ...Tag) error {
	if _, ok := intf.defs[name]; ok {
		return newErrf(DuplicatePort, "hwgraph: interface %q already defines port %q", intf.name, name)
	}
	set := make(map[Tag]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	intf.defs[name] = &portDef{width: width, tags: set}
	intf.order = append(intf.order, name)
	return nil
}

// Port returns the signal bound to name by the most recent ConnectIO call,
// or nil if the port hasn't been connected (or was tagged out of both
// inputTags and outputTags and therefore omitted).
func (intf *Interface) Port(name string) *Logic { return intf.bound[name] }

func tagsIntersect(have map[Tag]bool, want []Tag) bool {
	for _, t := range want {
		if have[t] {
			return true
		}
	}
	return false
}

// ConnectIO wires intf's defined ports onto parent: for every port whose
// tags intersect inputTags, parent gains an input port sourced from the
// corresponding signal of other; for every port whose tags intersect
// outputTags, parent gains an output port that drives the corresponding
// signal of other. A port untagged by either set is silently omitted; a
// port tagged by both fails with AmbiguousDirection. intf's own view is
// rebound to the newly created parent ports.
//
func (intf *Interface) ConnectIO(parent *Module, other *Interface, inputTags, outputTags []Tag) error {
	for _, name := range intf.order {
		def := intf.defs[name]
		wantIn := tagsIntersect(def.tags, inputTags)
		wantOut := tagsIntersect(def.tags, outputTags)

		switch {
		case wantIn && wantOut:
			return newErrf(AmbiguousDirection, "hwgraph: interface %q: port %q is tagged for both input and output",
				intf.name, name)

		case wantIn:
			ext := other.bound[name]
			if ext == nil {
				ext = NewLogic(def.width, "")
				other.bound[name] = ext
			}
			p, err := parent.AddInput(name, ext, def.width)
			if err != nil {
				return err
			}
			intf.bound[name] = p

		case wantOut:
			p, err := parent.AddOutput(name, def.width)
			if err != nil {
				return err
			}
			intf.bound[name] = p
			if ext := other.bound[name]; ext != nil {
				if err := ext.Gets(p); err != nil {
					return err
				}
			} else {
				other.bound[name] = p
			}
		}
	}
	return nil
}
