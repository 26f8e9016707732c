package hwgraph

import "testing"

func TestCombinationalAndFFRegisterOnModule(t *testing.T) {
	m := NewModule("M")
	clk := NewLogic(1, "clk")
	out := NewLogic(1, "out")
	q := NewLogic(1, "q")

	cb := Combinational(m, Assign(out, out))
	fb := FF(m, clk, Assign(q, q))

	blocks := m.AlwaysBlocks()
	if len(blocks) != 2 {
		t.Fatalf("AlwaysBlocks returned %d blocks, want 2", len(blocks))
	}
	if blocks[0] != cb || blocks[1] != fb {
		t.Fatal("AlwaysBlocks did not preserve declaration order/identity")
	}
	if cb.Kind != CombinationalBlock {
		t.Fatalf("Combinational block Kind = %v, want CombinationalBlock", cb.Kind)
	}
	if fb.Kind != SequentialBlock {
		t.Fatalf("FF block Kind = %v, want SequentialBlock", fb.Kind)
	}
	if fb.Clock != clk {
		t.Fatal("FF block Clock not recorded")
	}
	if cb.Module() != m || fb.Module() != m {
		t.Fatal("AlwaysBlock.Module() should return the declaring module")
	}
}
