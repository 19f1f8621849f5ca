package unverdad

// Condition is a renderable filter: a Leaf or a Branch.
type Condition interface {
	// IsEmpty reports whether the condition renders to "".
	IsEmpty() bool
	// Render returns the fragment to place after WHERE.
	Render() string
	// Params returns the bindings for the placeholders in Render's output.
	Params() NamedParams
}

var (
	_ Condition = (*Leaf)(nil)
	_ Condition = (*Branch)(nil)
)

// Present reports whether c is non-nil and not empty.
func Present(c Condition) bool {
	return c != nil && !c.IsEmpty()
}

// Where returns "WHERE " followed by c's fragment, or "" when there is
// nothing to filter on.
func Where(c Condition) string {
	if !Present(c) {
		return ""
	}
	return "WHERE " + c.Render()
}

// Args returns c's bindings, or empty params when c is nil.
func Args(c Condition) NamedParams {
	if c == nil {
		return NamedParams{}
	}
	return c.Params()
}
