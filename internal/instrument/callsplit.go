// callsplit.go implements pass 1 of the coverage instrumenter
// (spec §4.2 step 1): splitting a straight-line instruction list around
// calls to a designated set of functions, so a later pass can treat the
// isolated call as a non-tracing anchor. Only runs when --calls is
// requested.
package instrument

import (
	"strings"

	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"
	"github.com/AdaptiveComputationLab/genprog-code-prd/internal/visitor"
)

// CallAnchorLabel marks the isolated call segment produced by
// CallSplitter so the numbering pass treats it as non-traceable (spec
// §4.2: "The isolated call segment is not numbered in step 2"). It uses
// the reserved prefix so IsTraceable excludes it the same way it
// excludes any other synthetic label.
const CallAnchorLabel = cast.Label(ReservedLabelPrefix + "_call_anchor")

// CallSplitter implements visitor.ListVisitor, splitting every
// straight-line instruction list that contains a call to one of
// Targets into pre-call / call / post-call segments.
type CallSplitter struct {
	Targets map[string]bool
}

// NewCallSplitter builds a splitter for the given designated function
// names.
func NewCallSplitter(functionNames []string) *CallSplitter {
	targets := make(map[string]bool, len(functionNames))
	for _, n := range functionNames {
		targets[n] = true
	}
	return &CallSplitter{Targets: targets}
}

type instrSegment struct {
	exprs  []cast.Expr
	isCall bool
}

// VisitStmt implements visitor.Visitor: descend everywhere so nested
// Block/Switch/Try bodies get their own straight-line lists considered
// for splitting too. Splitting only ever fires from VisitStmtList, which
// operates on statement *lists* — a bare (brace-less) single-statement
// If/Loop body can't be expanded to three statements through the single-
// node Apply path, so it is left unsplit; C frontends that always
// represent compound bodies as Block (even for one statement) are
// unaffected by this.
func (c *CallSplitter) VisitStmt(cast.Stmt) visitor.Action {
	return visitor.Descend()
}

// VisitStmtList implements visitor.ListVisitor.
func (c *CallSplitter) VisitStmtList(s cast.Stmt) ([]cast.Stmt, bool) {
	instr, ok := s.Kind.(cast.Instr)
	if !ok {
		return nil, false
	}
	segs := c.splitInstrs(instr.Instrs)
	if len(segs) == 1 && !segs[0].isCall {
		return nil, false
	}

	out := make([]cast.Stmt, 0, len(segs))
	for i, seg := range segs {
		st := cast.Stmt{Pos: s.Pos, Kind: cast.Instr{Instrs: seg.exprs}}
		if i == 0 || i == len(segs)-1 {
			st.Labels = append(st.Labels, s.Labels...)
		}
		if seg.isCall {
			st.Labels = append(st.Labels, CallAnchorLabel)
		}
		out = append(out, st)
	}
	return out, true
}

// splitInstrs partitions instrs into alternating non-call/call segments.
// If instrs contains no designated call at all, it returns a single
// segment equal to the whole input with isCall=false — the caller
// recognizes this shape as "nothing to split".
func (c *CallSplitter) splitInstrs(instrs []cast.Expr) []instrSegment {
	var segs []instrSegment
	var cur []cast.Expr
	found := false

	for _, e := range instrs {
		if c.isDesignatedCall(e) {
			found = true
			if len(cur) > 0 {
				segs = append(segs, instrSegment{exprs: cur})
				cur = nil
			}
			segs = append(segs, instrSegment{exprs: []cast.Expr{e}, isCall: true})
			continue
		}
		cur = append(cur, e)
	}
	if len(cur) > 0 || len(segs) == 0 {
		segs = append(segs, instrSegment{exprs: cur})
	}
	if !found {
		return []instrSegment{{exprs: instrs}}
	}
	return segs
}

// isDesignatedCall reports whether e's text invokes one of the
// designated functions. Since C expression parsing is out of scope
// (spec §1), this is a textual "name(" match, which is exactly the
// granularity the rest of this package treats an Expr at.
func (c *CallSplitter) isDesignatedCall(e cast.Expr) bool {
	for name := range c.Targets {
		if strings.Contains(e.Text, name+"(") {
			return true
		}
	}
	return false
}
