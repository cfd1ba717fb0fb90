package visitor

import (
	"fmt"
	"reflect"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
)

// Visitor is implemented by every AST pass. VisitStmt is called once per
// statement, in source order, before its children are visited (the
// "pre" half of "pre/post traversal": the Action it returns, together
// with Post for ActionDescendThenTransform, covers both halves).
type Visitor interface {
	VisitStmt(s cast.Stmt) Action
}

// ListVisitor is an optional capability a Visitor may also implement: it
// lets a single statement expand to zero or more replacement statements,
// which WalkList splices into the parent list in place of the original.
// Checked before VisitStmt for every list element.
type ListVisitor interface {
	VisitStmtList(s cast.Stmt) (replacement []cast.Stmt, handled bool)
}

// ScopeVisitor is an optional capability: EnterScope/ExitScope are
// called around block bodies, function parameter lists, and for-loop
// headers, so a visitor can maintain symbol-tracking state without the
// framework knowing what that state is.
type ScopeVisitor interface {
	EnterScope()
	ExitScope()
}

func enterScope(v Visitor) {
	if sv, ok := v.(ScopeVisitor); ok {
		sv.EnterScope()
	}
}

func exitScope(v Visitor) {
	if sv, ok := v.(ScopeVisitor); ok {
		sv.ExitScope()
	}
}

// WalkList visits every statement in list in order, applying v and
// splicing in replacements, and returns the (possibly different) list.
func WalkList(v Visitor, list []cast.Stmt) []cast.Stmt {
	out := make([]cast.Stmt, 0, len(list))
	for _, s := range list {
		if lv, ok := v.(ListVisitor); ok {
			if repl, handled := lv.VisitStmtList(s); handled {
				out = append(out, repl...)
				continue
			}
		}
		out = append(out, Apply(v, s))
	}
	return out
}

// walkListChanged is WalkList plus a changed flag, for identity-based
// rebuild of the parent node.
func walkListChanged(v Visitor, list []cast.Stmt) ([]cast.Stmt, bool) {
	out := WalkList(v, list)
	return out, !sameStmtList(list, out)
}

// Apply runs the full per-node pipeline for a single statement: invoke
// VisitStmt, then interpret the returned Action.
func Apply(v Visitor, s cast.Stmt) cast.Stmt {
	switch a := v.VisitStmt(s); a.Kind {
	case ActionSkip:
		return s
	case ActionReplace:
		return a.Node
	case ActionDescend:
		return descendInto(v, s)
	case ActionDescendThenTransform:
		rebuilt := descendInto(v, a.Node)
		return a.Post(rebuilt)
	default:
		panic(fmt.Sprintf("visitor: unknown action kind %d", a.Kind))
	}
}

// descendInto visits s's children (if any) and rebuilds s only if a
// child actually changed, per the identity-based rebuild contract of
// spec §4.1. "Identity" here is structural equality of the rebuilt
// subtree against the original, which is sufficient to avoid
// reallocating a node whose subtree the visitor left untouched.
func descendInto(v Visitor, s cast.Stmt) cast.Stmt {
	newKind, changed := descendKind(v, s.Kind)
	if !changed {
		return s
	}
	rebuilt := s
	rebuilt.Kind = newKind
	return rebuilt
}

func descendKind(v Visitor, k cast.StmtKind) (cast.StmtKind, bool) {
	switch t := k.(type) {
	case cast.Instr, cast.Return, cast.Goto, cast.Break, cast.Continue:
		return k, false

	case cast.If:
		newThen := Apply(v, t.Then)
		changed := !sameStmt(t.Then, newThen)
		t.Then = newThen
		if t.Else != nil {
			newElse := Apply(v, *t.Else)
			if !sameStmt(*t.Else, newElse) {
				changed = true
			}
			t.Else = &newElse
		}
		if !changed {
			return k, false
		}
		return t, true

	case cast.Loop:
		enterScope(v) // for-loop header introduces its own scope
		newBody := Apply(v, t.Body)
		exitScope(v)
		if sameStmt(t.Body, newBody) {
			return k, false
		}
		t.Body = newBody
		return t, true

	case cast.Switch:
		changed := false
		newCases := make([]cast.SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			newBody, bc := walkListChanged(v, c.Body)
			if bc {
				changed = true
			}
			newCases[i] = cast.SwitchCase{Exprs: c.Exprs, Body: newBody}
		}
		if !changed {
			return k, false
		}
		t.Cases = newCases
		return t, true

	case cast.Block:
		enterScope(v)
		newBody, changed := walkListChanged(v, t.Body)
		exitScope(v)
		if !changed {
			return k, false
		}
		t.Body = newBody
		return t, true

	case cast.TryFinally:
		newTry, c1 := walkListChanged(v, t.Try)
		newFinally, c2 := walkListChanged(v, t.Finally)
		if !c1 && !c2 {
			return k, false
		}
		t.Try = newTry
		t.Finally = newFinally
		return t, true

	case cast.TryExcept:
		changed := false
		newTry, c0 := walkListChanged(v, t.Try)
		if c0 {
			changed = true
		}
		newHandlers := make([]cast.ExceptHandler, len(t.Handlers))
		for i, h := range t.Handlers {
			newBody, hc := walkListChanged(v, h.Body)
			if hc {
				changed = true
			}
			newHandlers[i] = cast.ExceptHandler{Exprs: h.Exprs, Body: newBody}
		}
		if !changed {
			return k, false
		}
		t.Try = newTry
		t.Handlers = newHandlers
		return t, true

	default:
		panic(fmt.Sprintf("visitor: AST-shape violation: unknown statement kind %T", k))
	}
}

// WalkFuncDecl visits a function's body, firing scope hooks for its
// parameter scope around the body walk.
func WalkFuncDecl(v Visitor, f cast.FuncDecl) cast.FuncDecl {
	enterScope(v)
	f.Body = WalkList(v, f.Body)
	exitScope(v)
	return f
}

func sameStmt(a, b cast.Stmt) bool {
	return reflect.DeepEqual(a, b)
}

func sameStmtList(a, b []cast.Stmt) bool {
	return reflect.DeepEqual(a, b)
}
