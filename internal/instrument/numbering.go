// numbering.go implements pass 2 of the coverage instrumenter: assigning
// a dense, source-order sid to every traceable statement and installing
// a deep, id-stripped copy of its kind into the statement map.
package instrument

import (
	"fmt"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/visitor"
)

// numberingVisitor implements visitor.Visitor (and, implicitly,
// visitor.ScopeVisitor is not needed here — numbering does not track
// symbols, only sids).
//
// Assignment order: VisitStmt decides this statement's sid (or strips
// its reserved labels and zeroes its sid) *before* descending, so
// numbering proceeds in source/pre-order; but the statement map entry
// is installed from Post, which runs *after* the framework has
// recursed into children — so the copy captures children that already
// carry their own (independently assigned) sids, which DeepCopyKind
// then zeroes again for the stored copy, per spec §4.2's invariant that
// map entries hold no residual ids.
type numberingVisitor struct {
	counter        *cast.Counter
	smap           *cast.StatementMap
	locMap         cast.LocationMap // nil unless collectLoc was requested
	reservedPrefix string
	err            error
}

func newNumberingVisitor(reservedPrefix string, collectLoc bool) *numberingVisitor {
	nv := &numberingVisitor{
		counter:        cast.NewCounter(),
		smap:           cast.NewStatementMap(),
		reservedPrefix: reservedPrefix,
	}
	if collectLoc {
		nv.locMap = cast.NewLocationMap()
	}
	return nv
}

func (n *numberingVisitor) VisitStmt(s cast.Stmt) visitor.Action {
	traceable := cast.IsTraceable(&s, n.reservedPrefix)
	node := s
	if traceable {
		node.Sid = n.counter.Next()
	} else {
		cast.StripReservedLabels(&node, n.reservedPrefix)
		node.Sid = cast.NoSid
	}
	return visitor.DescendThenTransform(node, func(rebuilt cast.Stmt) cast.Stmt {
		if !traceable {
			return rebuilt
		}
		copyKind, err := cast.DeepCopyKind(rebuilt.Kind)
		if err != nil && n.err == nil {
			n.err = fmt.Errorf("instrument: numbering sid %d: %w", rebuilt.Sid, err)
			return rebuilt
		}
		n.smap.Install(rebuilt.Sid, copyKind)
		if n.locMap != nil {
			n.locMap[rebuilt.Sid] = rebuilt.Pos
		}
		return rebuilt
	})
}

// NumberingResult is the outcome of running pass 2 over a translation
// unit.
type NumberingResult struct {
	Counter *cast.Counter
	Map     *cast.StatementMap
	LocMap  cast.LocationMap // nil unless collectLoc was requested
	Unit    cast.TranslationUnit
}

// Number runs the numbering pass over every function body in tu, in
// declaration order, and returns the (possibly label-stripped) rewritten
// unit alongside the counter and statement map it produced. When
// collectLoc is true, the returned result also carries a LocationMap
// (spec §3's optional location map, produced when --loc is requested).
func Number(tu cast.TranslationUnit, reservedPrefix string, collectLoc bool) (*NumberingResult, error) {
	nv := newNumberingVisitor(reservedPrefix, collectLoc)
	out := cast.TranslationUnit{Decls: make([]cast.Decl, len(tu.Decls))}
	for i, d := range tu.Decls {
		fd, ok := d.(cast.FuncDecl)
		if !ok {
			out.Decls[i] = d
			continue
		}
		out.Decls[i] = visitor.WalkFuncDecl(nv, fd)
	}
	if nv.err != nil {
		return nil, nv.err
	}
	if err := nv.smap.CheckDense(nv.counter.Peek()); err != nil {
		return nil, fmt.Errorf("instrument: numbering invariant violated: %w", err)
	}
	return &NumberingResult{Counter: nv.counter, Map: nv.smap, LocMap: nv.locMap, Unit: out}, nil
}
