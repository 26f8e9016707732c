package hwgraph

import "testing"

func TestMatchCaseZ(t *testing.T) {
	sel := NewValue(4, 0b1011)
	pattern, err := ValueFromBits("10zz")
	if err != nil {
		t.Fatalf("ValueFromBits: %v", err)
	}
	if !matchCaseZ(sel, pattern) {
		t.Fatalf("expected %v to match wildcard pattern %v", sel, pattern)
	}

	other := NewValue(4, 0b0011)
	if matchCaseZ(other, pattern) {
		t.Fatalf("did not expect %v to match pattern %v", other, pattern)
	}
}

func TestIfNodeChaining(t *testing.T) {
	a := NewLogic(1, "a")
	b := NewLogic(1, "b")
	target := NewLogic(1, "out")

	n := If(a, Assign(target, b)).
		AddElseIf(b, Assign(target, a)).
		SetElse(Assign(target, a))

	if len(n.Then) != 1 {
		t.Fatalf("Then has %d nodes, want 1", len(n.Then))
	}
	if len(n.Elifs) != 1 {
		t.Fatalf("Elifs has %d entries, want 1", len(n.Elifs))
	}
	if len(n.Else) != 1 {
		t.Fatalf("Else has %d nodes, want 1", len(n.Else))
	}
}

func TestCaseNodeBuilder(t *testing.T) {
	sel := NewLogic(2, "sel")
	out := NewLogic(1, "out")
	zero := NewLogic(1, "")
	if err := zero.Put(NewValue(1, 0)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	one := NewLogic(1, "")
	if err := one.Put(NewValue(1, 1)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	n := Case(sel, Unique).
		AddItem(NewValue(2, 0), Assign(out, zero)).
		AddItem(NewValue(2, 1), Assign(out, one)).
		SetDefault(Assign(out, zero))

	if len(n.Items) != 2 {
		t.Fatalf("Items has %d entries, want 2", len(n.Items))
	}
	if n.Type != Unique {
		t.Fatalf("Type = %v, want Unique", n.Type)
	}
	if len(n.Default) != 1 {
		t.Fatalf("Default has %d nodes, want 1", len(n.Default))
	}
}
