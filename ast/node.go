// Package ast defines the typed node model produced by the PEG grammar
// parser and consumed by the optimizer and the emitter.
//
// Every node kind embeds base, which owns the parent back-reference, the
// valid flag set on a successful parse, and the comments harvested by the
// parser immediately before (or, for trailing positions, after) the
// production that built the node. Parent links are non-owning: ownership
// flows strictly downward from the Grammar root to its leaves, and the
// Go garbage collector is relied on to break the parent/child reference
// cycle rather than an arena-of-indices scheme.
package ast

// Position is a 1-based line/column pair recording where a node's
// production began matching in the source text.
type Position struct {
	Line int
	Col  int
}

// Options carries the handful of formatting knobs the config store
// (spec.md §6) exposes to the emitter: the alternative-count threshold
// above which a Rule's alternation wraps to multiple lines.
type Options struct {
	WrapLimit int
}

// DefaultOptions returns the formatting defaults used when no config
// snapshot is available, e.g. in tests and Dump output.
func DefaultOptions() Options {
	return Options{WrapLimit: 4}
}

// Node is the closed interface implemented by every AST node kind.
type Node interface {
	Parent() Node
	SetParent(Node)
	Valid() bool
	Pos() Position
	SetPos(Position)

	// Comments returns the comment lines harvested immediately before this
	// node's production (or, when IsPostComment is true, immediately after
	// the last alternative of an enclosing Rule's Alternation).
	Comments() []string
	SetComments([]string)
	IsPostComment() bool
	SetPostComment(bool)

	// Children returns this node's direct children, freshly computed from
	// the node's current field state. It is the only way the generic walk
	// functions (FindAll, Map) observe tree structure, so every node kind
	// must keep it in sync with whatever scalar/slice fields the node
	// actually stores.
	Children() []Node

	// Format renders this node as canonical PEG syntax using opts (in
	// particular opts.WrapLimit). String() is Format(DefaultOptions()).
	Format(opts Options) string
	String() string
	Dump(indent string) string
}

// base is embedded by every concrete node type. It is never used on its
// own.
type base struct {
	parent      Node
	valid       bool
	pos         Position
	comments    []string
	postComment bool
}

func (b *base) Parent() Node           { return b.parent }
func (b *base) SetParent(p Node)       { b.parent = p }
func (b *base) Valid() bool            { return b.valid }
func (b *base) Pos() Position          { return b.pos }
func (b *base) SetPos(p Position)      { b.pos = p }
func (b *base) Comments() []string     { return b.comments }
func (b *base) SetComments(c []string) { b.comments = c }
func (b *base) IsPostComment() bool    { return b.postComment }
func (b *base) SetPostComment(v bool)  { b.postComment = v }

// GetParent returns n's nearest ancestor of type T, or the zero value and
// false if none exists. It is the Go equivalent of the spec's typed
// get_parent<K>() query.
func GetParent[T Node](n Node) (T, bool) {
	var zero T
	for p := n.Parent(); p != nil; p = p.Parent() {
		if t, ok := p.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// FindAll returns every descendant of root (including root itself) whose
// dynamic type is T and that satisfies predicate, in depth-first
// pre-order.
func FindAll[T Node](root Node, predicate func(T) bool) []T {
	var result []T
	findAll(root, predicate, &result)
	return result
}

func findAll[T Node](n Node, predicate func(T) bool, result *[]T) {
	if t, ok := n.(T); ok && predicate(t) {
		*result = append(*result, t)
	}
	for _, c := range n.Children() {
		findAll(c, predicate, result)
	}
}

// UpdateParents re-links n's entire subtree so that every descendant's
// Parent() points at its true direct parent. Callers invoke this after
// splicing, replacing, or otherwise moving children around without going
// through Map.
func UpdateParents(n Node) {
	for _, c := range n.Children() {
		c.SetParent(n)
		UpdateParents(c)
	}
}

// Map performs a depth-first traversal of n, invoking transform on every
// node. transform returns true when it has possibly restructured the
// tree (spliced, replaced, or removed children). When it does, Map
// re-links parent pointers for the affected node and re-scans the
// current sibling level from the start, because the edit may have
// shifted sibling indices out from under an in-progress iteration — this
// mirrors the mutation contract spec.md documents for the optimizer's
// tree walker.
func Map(n Node, transform func(Node) bool) bool {
	changed := transform(n)
	if changed {
		UpdateParents(n)
	}

	for {
		children := n.Children()
		restarted := false
		for _, c := range children {
			if Map(c, transform) {
				restarted = true
				break
			}
		}
		if !restarted {
			break
		}
	}
	return changed
}
