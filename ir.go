package hwgraph

// IRNode is the closed sum type of conditional-IR variants that make up an
// Always block's body: Assign, If, Case, and CaseZ. isIRNode is unexported
// so the set of variants is closed to this package.
//
type IRNode interface {
	isIRNode()
}

// AssignNode assigns Source to Target. Inside a Combinational block this is
// a blocking assignment (later writes in the same body supersede earlier
// ones); inside an FF block it is non-blocking (all targets commit
// simultaneously at the end of the triggering edge).
type AssignNode struct {
	Target *Logic
	Source Driver
}

func (*AssignNode) isIRNode() {}

// Assign returns an AssignNode driving target from source.
func Assign(target *Logic, source Driver) *AssignNode {
	return &AssignNode{Target: target, Source: source}
}

// IfNode is a standard if/else-if/else chain. Elifs is walked in order;
// the first whose Cond evaluates fully defined and true executes its
// Body. X anywhere in a taken condition contaminates every target
// reached by the taken branch.
type IfNode struct {
	Cond  Driver
	Then  []IRNode
	Elifs []ElseIf
	Else  []IRNode
}

// ElseIf is one `else if` arm of an IfNode.
type ElseIf struct {
	Cond Driver
	Body []IRNode
}

func (*IfNode) isIRNode() {}

// If returns an IfNode with the given condition and then-body. Use
// AddElseIf and SetElse to extend it.
func If(cond Driver, then ...IRNode) *IfNode {
	return &IfNode{Cond: cond, Then: then}
}

// AddElseIf appends an else-if arm and returns the node for chaining.
func (n *IfNode) AddElseIf(cond Driver, body ...IRNode) *IfNode {
	n.Elifs = append(n.Elifs, ElseIf{Cond: cond, Body: body})
	return n
}

// SetElse installs the trailing else body and returns the node for
// chaining.
func (n *IfNode) SetElse(body ...IRNode) *IfNode {
	n.Else = body
	return n
}

// ConditionalType governs the overlap/exhaustiveness diagnostic emitted
// for a Case or CaseZ node at HDL synthesis time.
type ConditionalType int

const (
	// None applies no overlap/exhaustiveness diagnostic.
	None ConditionalType = iota
	// Unique asserts that at most one item pattern matches any selector value.
	Unique
	// Priority asserts that at least one item pattern matches any selector value.
	Priority
)

// CaseItem bundles a constant four-state pattern with the body that runs
// when the selector matches it.
type CaseItem struct {
	Pattern Value
	Body    []IRNode
}

// CaseNode selects among Items by bit-exact match against Selector's
// value, evaluated once per activation; the first matching item (in
// declaration order) runs, otherwise Default runs. X in the selector
// yields no match.
type CaseNode struct {
	Selector Driver
	Items    []CaseItem
	Default  []IRNode
	Type     ConditionalType
}

func (*CaseNode) isIRNode() {}

// Case returns an empty CaseNode over selector. Use AddItem and SetDefault
// to populate it.
func Case(selector Driver, typ ConditionalType) *CaseNode {
	return &CaseNode{Selector: selector, Type: typ}
}

// AddItem appends a pattern/body pair and returns the node for chaining.
func (n *CaseNode) AddItem(pattern Value, body ...IRNode) *CaseNode {
	n.Items = append(n.Items, CaseItem{Pattern: pattern, Body: body})
	return n
}

// SetDefault installs the node's default body and returns the node for
// chaining.
func (n *CaseNode) SetDefault(body ...IRNode) *CaseNode {
	n.Default = body
	return n
}

// CaseZNode is a CaseNode variant whose item patterns may contain Z bits as
// wildcards: a Z bit in Pattern matches either 0 or 1 in the selector at
// that position.
type CaseZNode struct {
	Selector Driver
	Items    []CaseItem
	Default  []IRNode
	Type     ConditionalType
}

func (*CaseZNode) isIRNode() {}

// CaseZ returns an empty CaseZNode over selector.
func CaseZ(selector Driver, typ ConditionalType) *CaseZNode {
	return &CaseZNode{Selector: selector, Type: typ}
}

// AddItem appends a wildcard pattern/body pair and returns the node for
// chaining.
func (n *CaseZNode) AddItem(pattern Value, body ...IRNode) *CaseZNode {
	n.Items = append(n.Items, CaseItem{Pattern: pattern, Body: body})
	return n
}

// SetDefault installs the node's default body and returns the node for
// chaining.
func (n *CaseZNode) SetDefault(body ...IRNode) *CaseZNode {
	n.Default = body
	return n
}

// collectIRRefs walks an Always-block body, appending every assignment
// target to *targets and every signal read by a condition/selector/source
// expression to *reads. Build uses this to discover sub-modules and
// internal signals that behavioral code references without ever calling
// Gets.
func collectIRRefs(nodes []IRNode, targets, reads *[]*Logic) {
	for _, n := range nodes {
		switch t := n.(type) {
		case *AssignNode:
			*targets = append(*targets, t.Target)
			*reads = append(*reads, upstreamOf(t.Source)...)
		case *IfNode:
			*reads = append(*reads, upstreamOf(t.Cond)...)
			collectIRRefs(t.Then, targets, reads)
			for _, ei := range t.Elifs {
				*reads = append(*reads, upstreamOf(ei.Cond)...)
				collectIRRefs(ei.Body, targets, reads)
			}
			collectIRRefs(t.Else, targets, reads)
		case *CaseNode:
			*reads = append(*reads, upstreamOf(t.Selector)...)
			for _, item := range t.Items {
				collectIRRefs(item.Body, targets, reads)
			}
			collectIRRefs(t.Default, targets, reads)
		case *CaseZNode:
			*reads = append(*reads, upstreamOf(t.Selector)...)
			for _, item := range t.Items {
				collectIRRefs(item.Body, targets, reads)
			}
			collectIRRefs(t.Default, targets, reads)
		}
	}
}

// CollectAlwaysRefs returns every assignment target and every read signal
// referenced anywhere in b's body. It is exported for the simulator
// package, which needs a block's read set to wire re-evaluation
// sensitivity.
func CollectAlwaysRefs(b *AlwaysBlock) (targets, reads []*Logic) {
	collectIRRefs(b.Body, &targets, &reads)
	return targets, reads
}

// MatchCaseZ reports whether sel matches pattern under CaseZ's Z-wildcard
// rule. It is exported for use by the simulator package's evaluator.
func MatchCaseZ(sel, pattern Value) bool { return matchCaseZ(sel, pattern) }

// matchCaseZ reports whether sel matches pattern under Z-wildcard rules: a
// Z bit in pattern matches any selector bit at that position, otherwise the
// bits must be bit-exact equal and defined.
func matchCaseZ(sel, pattern Value) bool {
	if sel.Width() != pattern.Width() {
		return false
	}
	for i := uint(0); i < sel.Width(); i++ {
		pb := pattern.Bit(i)
		if pb == Z {
			continue
		}
		if pb == X || sel.Bit(i) != pb {
			return false
		}
	}
	return true
}
