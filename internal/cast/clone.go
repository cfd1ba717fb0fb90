package cast

import (
	"fmt"

	"github.com/mitchellh/copystructure"
)

// DeepCopyKind returns an independent deep copy of k with every nested
// Stmt's sid zeroed. This is the copy installed into a StatementMap
// during numbering (spec §4.2 step 2): later passes mutate the AST in
// place, so the map must hold a snapshot that cannot be disturbed by
// them, and that snapshot must carry no residual sids from a later
// renumbering of the same tree.
func DeepCopyKind(k StmtKind) (StmtKind, error) {
	raw, err := copystructure.Copy(k)
	if err != nil {
		return nil, fmt.Errorf("cast: deep copy of statement kind failed: %w", err)
	}
	copied, ok := raw.(StmtKind)
	if !ok {
		return nil, fmt.Errorf("cast: deep copy of statement kind produced %T, not a StmtKind", raw)
	}
	return zeroKindSids(copied), nil
}

// zeroStmtSids sets s.Sid to NoSid and recurses into s.Kind. Operates
// in place; callers must own an independent copy of s (see
// DeepCopyKind).
func zeroStmtSids(s *Stmt) {
	s.Sid = NoSid
	s.Kind = zeroKindSids(s.Kind)
}

// zeroKindSids recurses into every nested Stmt held by k, zeroing its
// sid. k must be an independent copy; this mutates slices and pointers
// reachable from k in place.
func zeroKindSids(k StmtKind) StmtKind {
	switch v := k.(type) {
	case Instr, Return, Goto, Break, Continue:
		return v
	case If:
		zeroStmtSids(&v.Then)
		if v.Else != nil {
			zeroStmtSids(v.Else)
		}
		return v
	case Loop:
		zeroStmtSids(&v.Body)
		return v
	case Switch:
		for i := range v.Cases {
			for j := range v.Cases[i].Body {
				zeroStmtSids(&v.Cases[i].Body[j])
			}
		}
		return v
	case Block:
		for i := range v.Body {
			zeroStmtSids(&v.Body[i])
		}
		return v
	case TryFinally:
		for i := range v.Try {
			zeroStmtSids(&v.Try[i])
		}
		for i := range v.Finally {
			zeroStmtSids(&v.Finally[i])
		}
		return v
	case TryExcept:
		for i := range v.Try {
			zeroStmtSids(&v.Try[i])
		}
		for i := range v.Handlers {
			for j := range v.Handlers[i].Body {
				zeroStmtSids(&v.Handlers[i].Body[j])
			}
		}
		return v
	default:
		panic(fmt.Sprintf("cast: unknown StmtKind %T", k))
	}
}

// CloneStmt returns a deep, independent copy of s including its sid and
// labels (unlike DeepCopyKind, sids are preserved) — used by
// Variant.copy() (spec §4.6) to duplicate a program without disturbing
// the original.
func CloneStmt(s Stmt) (Stmt, error) {
	raw, err := copystructure.Copy(s)
	if err != nil {
		return Stmt{}, fmt.Errorf("cast: clone of statement failed: %w", err)
	}
	copied, ok := raw.(Stmt)
	if !ok {
		return Stmt{}, fmt.Errorf("cast: clone of statement produced %T, not a Stmt", raw)
	}
	return copied, nil
}
