package synth

import hw "hwgraph"

// nonBlocking selects <= for an FF body's assignments and = for a
// Combinational body's, per spec.md §4.4.
func emitBody(p *printer, nodes []hw.IRNode, nt *nameTable, nonBlocking bool) {
	for _, n := range nodes {
		emitNode(p, n, nt, nonBlocking)
	}
}

func emitNode(p *printer, n hw.IRNode, nt *nameTable, nonBlocking bool) {
	switch t := n.(type) {
	case *hw.AssignNode:
		op := "="
		if nonBlocking {
			op = "<="
		}
		p.line("%s %s %s;", nt.of(t.Target), op, renderDriver(t.Source, nt))
	case *hw.IfNode:
		p.line("if (%s) begin", renderDriver(t.Cond, nt))
		p.indent++
		emitBody(p, t.Then, nt, nonBlocking)
		p.indent--
		for _, ei := range t.Elifs {
			p.line("end else if (%s) begin", renderDriver(ei.Cond, nt))
			p.indent++
			emitBody(p, ei.Body, nt, nonBlocking)
			p.indent--
		}
		if len(t.Else) > 0 {
			p.line("end else begin")
			p.indent++
			emitBody(p, t.Else, nt, nonBlocking)
			p.indent--
		}
		p.line("end")
	case *hw.CaseNode:
		emitCase(p, "case", t.Type, t.Selector, t.Items, t.Default, nt, nonBlocking)
	case *hw.CaseZNode:
		emitCase(p, "casez", t.Type, t.Selector, t.Items, t.Default, nt, nonBlocking)
	}
}

func emitCase(p *printer, keyword string, typ hw.ConditionalType, selector hw.Driver, items []hw.CaseItem, deflt []hw.IRNode, nt *nameTable, nonBlocking bool) {
	prefix := ""
	switch typ {
	case hw.Unique:
		prefix = "unique "
	case hw.Priority:
		prefix = "priority "
	}
	p.line("%s%s (%s)", prefix, keyword, renderDriver(selector, nt))
	p.indent++
	for _, item := range items {
		p.line("%s: begin", renderLiteral(item.Pattern))
		p.indent++
		emitBody(p, item.Body, nt, nonBlocking)
		p.indent--
		p.line("end")
	}
	if len(deflt) > 0 {
		p.line("default: begin")
		p.indent++
		emitBody(p, deflt, nt, nonBlocking)
		p.indent--
		p.line("end")
	}
	p.indent--
	p.line("endcase")
}
