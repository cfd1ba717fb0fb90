package cast

import "testing"

func TestIsTraceableKindAcceptsOnlyTheFourKinds(t *testing.T) {
	traceable := []StmtKind{Instr{}, Return{}, If{}, Loop{}}
	for _, k := range traceable {
		if !IsTraceableKind(k) {
			t.Errorf("IsTraceableKind(%T) = false, want true", k)
		}
	}
	notTraceable := []StmtKind{Goto{}, Break{}, Continue{}, Switch{}, Block{}, TryFinally{}, TryExcept{}}
	for _, k := range notTraceable {
		if IsTraceableKind(k) {
			t.Errorf("IsTraceableKind(%T) = true, want false", k)
		}
	}
}

func TestStmtHasLabel(t *testing.T) {
	s := Stmt{Labels: []Label{"foo", "claire_42"}}
	if !s.HasLabel("foo") {
		t.Error("HasLabel(foo) = false, want true")
	}
	if s.HasLabel("bar") {
		t.Error("HasLabel(bar) = true, want false")
	}
}
