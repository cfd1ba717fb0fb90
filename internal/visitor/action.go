// Package visitor implements the generic pre/post traversal framework
// over internal/cast trees described in spec §4.1. Client visitors
// return one of four actions per node; the framework interprets the
// action and handles change-based rebuilding so a visitor that leaves
// a subtree untouched gets the original node back rather than a rebuilt
// one; statement lists are still walked into freshly allocated slices.
package visitor

import "github.com/AdaptiveComputationLab/genprog-code-prd/internal/cast"

// ActionKind tags which case of Action is populated.
type ActionKind int

const (
	// ActionSkip returns the node unchanged and does not descend into
	// its children.
	ActionSkip ActionKind = iota
	// ActionReplace substitutes Node for the visited node and does not
	// descend into Node's children.
	ActionReplace
	// ActionDescend visits the node's children; the node is rebuilt
	// only if a child actually changed (deep structural comparison of
	// the child before and after the child visit; no revision counter
	// is kept).
	ActionDescend
	// ActionDescendThenTransform first substitutes Node, descends into
	// Node's children, then applies Post to the rebuilt result.
	ActionDescendThenTransform
)

// Action is the tagged result a Visitor method returns for one node.
// The zero value is ActionSkip, which is always a safe default for a
// visitor that only cares about a subset of node kinds.
type Action struct {
	Kind ActionKind
	Node cast.Stmt                 // populated for ActionReplace/ActionDescendThenTransform
	Post func(cast.Stmt) cast.Stmt // populated for ActionDescendThenTransform
}

// Skip is the no-op action.
func Skip() Action { return Action{Kind: ActionSkip} }

// Replace returns an action that substitutes n for the visited node
// without descending into it.
func Replace(n cast.Stmt) Action { return Action{Kind: ActionReplace, Node: n} }

// Descend returns an action that visits the node's children and rebuilds
// the node only if something changed.
func Descend() Action { return Action{Kind: ActionDescend} }

// DescendThenTransform returns an action that substitutes n, descends
// into n's children, then applies post to the rebuilt result.
func DescendThenTransform(n cast.Stmt, post func(cast.Stmt) cast.Stmt) Action {
	return Action{Kind: ActionDescendThenTransform, Node: n, Post: post}
}
