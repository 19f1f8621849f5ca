package unverdad

import (
	"database/sql"
	"iter"
	"maps"
	"slices"
)

// NamedParams is a read-only mapping from placeholder name to bound value.
// The zero value is empty and ready to use.
type NamedParams struct {
	m map[string]any
}

// NewNamedParams copies m into a NamedParams.
func NewNamedParams(m map[string]any) NamedParams {
	if len(m) == 0 {
		return NamedParams{}
	}
	return NamedParams{m: maps.Clone(m)}
}

// Get returns the value bound to name.
func (p NamedParams) Get(name string) (any, bool) {
	v, ok := p.m[name]
	return v, ok
}

// Has reports whether name is bound.
func (p NamedParams) Has(name string) bool {
	_, ok := p.m[name]
	return ok
}

// Len returns the number of bindings.
func (p NamedParams) Len() int {
	return len(p.m)
}

// Keys returns the bound names in sorted order.
func (p NamedParams) Keys() []string {
	return slices.Sorted(maps.Keys(p.m))
}

// All iterates over the bindings in sorted name order.
func (p NamedParams) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range p.Keys() {
			if !yield(k, p.m[k]) {
				return
			}
		}
	}
}

// Map returns a copy of the bindings. Changes to it are not seen by p.
func (p NamedParams) Map() map[string]any {
	out := make(map[string]any, len(p.m))
	maps.Copy(out, p.m)
	return out
}

// Args returns the bindings as sql.NamedArg values in sorted name order,
// ready for drivers that accept named arguments.
func (p NamedParams) Args() []any {
	args := make([]any, 0, len(p.m))
	for k, v := range p.All() {
		args = append(args, sql.Named(k, v))
	}
	return args
}

// With returns a copy of p with name bound to value.
func (p NamedParams) With(name string, value any) NamedParams {
	out := p.Map()
	out[name] = value
	return NamedParams{m: out}
}

// Merge returns the union of p and other. Where both bind a name,
// other's value is kept.
func (p NamedParams) Merge(other NamedParams) NamedParams {
	if other.Len() == 0 {
		return p
	}
	if p.Len() == 0 {
		return other
	}
	out := p.Map()
	maps.Copy(out, other.m)
	return NamedParams{m: out}
}
