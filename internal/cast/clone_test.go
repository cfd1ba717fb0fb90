package cast

import "testing"

func TestDeepCopyKindZeroesNestedSids(t *testing.T) {
	k := If{
		Cond: Expr{Text: "x"},
		Then: Stmt{Sid: 5, Kind: Instr{}},
		Else: &Stmt{Sid: 6, Kind: Instr{}},
	}
	copied, err := DeepCopyKind(k)
	if err != nil {
		t.Fatalf("DeepCopyKind: %v", err)
	}
	ifCopy, ok := copied.(If)
	if !ok {
		t.Fatalf("DeepCopyKind returned %T, want If", copied)
	}
	if ifCopy.Then.Sid != NoSid {
		t.Errorf("Then.Sid = %d, want NoSid", ifCopy.Then.Sid)
	}
	if ifCopy.Else.Sid != NoSid {
		t.Errorf("Else.Sid = %d, want NoSid", ifCopy.Else.Sid)
	}
	// The original must be untouched.
	if k.Then.Sid != 5 || k.Else.Sid != 6 {
		t.Error("DeepCopyKind mutated the original kind")
	}
}

func TestDeepCopyKindIsIndependentOfOriginal(t *testing.T) {
	k := Loop{Body: Stmt{Sid: 1, Kind: Instr{Instrs: []Expr{{Text: "i++"}}}}}
	copied, err := DeepCopyKind(k)
	if err != nil {
		t.Fatalf("DeepCopyKind: %v", err)
	}
	loopCopy := copied.(Loop)
	loopCopy.Body.Kind.(Instr).Instrs[0].Text = "mutated"
	if k.Body.Kind.(Instr).Instrs[0].Text != "i++" {
		t.Error("mutating the copy changed the original's expression text")
	}
}

func TestCloneStmtPreservesSid(t *testing.T) {
	s := Stmt{Sid: 7, Kind: Return{}}
	clone, err := CloneStmt(s)
	if err != nil {
		t.Fatalf("CloneStmt: %v", err)
	}
	if clone.Sid != 7 {
		t.Errorf("clone.Sid = %d, want 7", clone.Sid)
	}
}
