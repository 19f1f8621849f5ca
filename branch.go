package unverdad

import "strings"

// Branch joins child conditions with one logic operator. Children may be
// leaves or other branches, nested to any depth.
type Branch struct {
	ns       *Namespace
	logic    LogicOperator
	children []Condition
}

// NewBranch creates a root branch with its own namespace.
func NewBranch(logic LogicOperator) (*Branch, error) {
	root, err := NewNamespace("")
	if err != nil {
		return nil, err
	}
	return NewBranchIn(root, logic)
}

// MustBranch is NewBranch that panics on an invalid logic operator.
func MustBranch(logic LogicOperator) *Branch {
	b, err := NewBranch(logic)
	if err != nil {
		panic(err)
	}
	return b
}

// NewBranchIn creates a branch drawing placeholder names from ns, so that
// fragments built by separate callers on one namespace never collide.
func NewBranchIn(ns *Namespace, logic LogicOperator) (*Branch, error) {
	if ns == nil {
		return nil, usageError("NewBranchIn", "namespace is nil")
	}
	if !logic.Valid() {
		return nil, usageError("NewBranch", "invalid logic operator %q", logic)
	}
	return &Branch{ns: ns.MustSpawn(""), logic: logic}, nil
}

// Logic returns the operator joining this branch's children.
func (b *Branch) Logic() LogicOperator {
	return b.logic
}

// Namespace returns the namespace children are spawned from.
func (b *Branch) Namespace() *Namespace {
	return b.ns
}

// Len returns the number of children, empty ones included.
func (b *Branch) Len() int {
	return len(b.children)
}

// AddLeaf appends a new leaf and returns it for further comparisons.
// The alias qualifies the leaf's columns and prefixes its placeholder names.
func (b *Branch) AddLeaf(alias string, logic LogicOperator) (*Leaf, error) {
	l, err := newLeaf(b.ns, alias, logic)
	if err != nil {
		return nil, err
	}
	b.children = append(b.children, l)
	return l, nil
}

// MustAddLeaf is AddLeaf that panics on error.
func (b *Branch) MustAddLeaf(alias string, logic LogicOperator) *Leaf {
	l, err := b.AddLeaf(alias, logic)
	if err != nil {
		panic(err)
	}
	return l
}

// AddBranch appends a nested branch and returns it.
func (b *Branch) AddBranch(logic LogicOperator) (*Branch, error) {
	child, err := NewBranchIn(b.ns, logic)
	if err != nil {
		return nil, err
	}
	b.children = append(b.children, child)
	return child, nil
}

// MustAddBranch is AddBranch that panics on error.
func (b *Branch) MustAddBranch(logic LogicOperator) *Branch {
	child, err := b.AddBranch(logic)
	if err != nil {
		panic(err)
	}
	return child
}

// nonEmpty returns the children that render to something.
func (b *Branch) nonEmpty() []Condition {
	out := make([]Condition, 0, len(b.children))
	for _, c := range b.children {
		if !c.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}

// IsEmpty reports whether the branch has no children or only empty ones.
func (b *Branch) IsEmpty() bool {
	for _, c := range b.children {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// NotEmpty reports whether any child renders to something.
func (b *Branch) NotEmpty() bool {
	return !b.IsEmpty()
}

// Render joins the non-empty children with the branch's logic operator.
// A single child is returned as is; two or more are wrapped in parentheses.
// An empty branch renders "".
func (b *Branch) Render() string {
	children := b.nonEmpty()
	switch len(children) {
	case 0:
		return ""
	case 1:
		return children[0].Render()
	}

	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.Render()
	}
	return "(" + strings.Join(parts, b.logic.Separator()) + ")"
}

// Params returns the union of the non-empty children's bindings.
// An empty branch returns empty params.
func (b *Branch) Params() NamedParams {
	merged := make(map[string]any)
	for _, c := range b.nonEmpty() {
		for k, v := range c.Params().All() {
			merged[k] = v
		}
	}
	return NamedParams{m: merged}
}
