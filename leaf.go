package unverdad

import (
	"strings"

	"github.com/John-Tuesday/unverdad/internal/types"
)

const (
	exprColumn = "{column}"
	exprParam  = "{param}"
)

// Leaf is a group of column comparisons joined by one logic operator and
// scoped to one optional table alias.
type Leaf struct {
	ns     *Namespace
	alias  string
	logic  LogicOperator
	parts  []string
	params map[string]any
}

// NewLeaf creates a standalone leaf with its own namespace.
// The alias, when set, qualifies columns and prefixes placeholder names.
func NewLeaf(alias string, logic LogicOperator) (*Leaf, error) {
	root, err := NewNamespace("")
	if err != nil {
		return nil, err
	}
	return newLeaf(root, alias, logic)
}

// MustLeaf is NewLeaf that panics on an invalid alias or logic operator.
func MustLeaf(alias string, logic LogicOperator) *Leaf {
	l, err := NewLeaf(alias, logic)
	if err != nil {
		panic(err)
	}
	return l
}

func newLeaf(parent *Namespace, alias string, logic LogicOperator) (*Leaf, error) {
	if !logic.Valid() {
		return nil, usageError("NewLeaf", "invalid logic operator %q", logic)
	}
	if alias != "" && !isValidIdentifier(alias) {
		return nil, usageError("NewLeaf", "invalid table alias %q", alias)
	}
	ns, err := parent.Spawn(alias)
	if err != nil {
		return nil, err
	}
	return &Leaf{
		ns:     ns,
		alias:  alias,
		logic:  logic,
		params: make(map[string]any),
	}, nil
}

// Alias returns the table alias, or "" when columns are unqualified.
func (l *Leaf) Alias() string {
	return l.alias
}

// Logic returns the operator joining this leaf's comparisons.
func (l *Leaf) Logic() LogicOperator {
	return l.logic
}

// Add compares column to value with op.
//
// A nil value renders "IS NULL" for EQ and "IS NOT NULL" for NE and binds
// nothing; any other operator returns an InvalidOperatorError.
// A failed call leaves the leaf and its namespace unchanged.
func (l *Leaf) Add(column string, value any, op Operator) error {
	return l.add(column, value, types.TypeAny, op)
}

// AddTyped is Add with the value checked against expected first.
// A mismatch returns a ValidationError. For a NULL comparison pass a typed
// nil pointer such as (*uuid.UUID)(nil); untyped nil is a mismatch unless
// expected is TypeAny.
func (l *Leaf) AddTyped(column string, value any, expected ValueType, op Operator) error {
	return l.add(column, value, expected, op)
}

// AddColumn is AddTyped using the column's declared type.
func (l *Leaf) AddColumn(col Column, value any, op Operator) error {
	return l.add(col.Name, value, col.Type, op)
}

// MustAdd is Add that panics on error.
func (l *Leaf) MustAdd(column string, value any, op Operator) *Leaf {
	if err := l.Add(column, value, op); err != nil {
		panic(err)
	}
	return l
}

func (l *Leaf) add(column string, value any, expected ValueType, op Operator) error {
	if !isValidIdentifier(column) {
		return usageError("Add", "invalid column name %q", column)
	}
	if !op.Valid() {
		return usageError("Add", "unknown operator %q for column %s", op, column)
	}
	if !expected.Accepts(value) {
		return ValidationError{Column: column, Expected: expected, Value: value}
	}

	if types.IsNull(value) {
		nullOp, ok := op.NullForm()
		if !ok {
			return InvalidOperatorError{Column: column, Operator: op}
		}
		l.parts = append(l.parts, l.qualify(column)+" "+string(nullOp))
		return nil
	}

	name := l.ns.Generate(column)
	l.parts = append(l.parts, l.qualify(column)+" "+string(op)+" :"+name)
	l.params[name] = value
	return nil
}

// AddExpr adds a comparison written as an expression template.
// The template must contain "{column}" and "{param}", which are replaced by
// the qualified column and the placeholder, e.g. "match_name({column}, {param})".
// Expressions have no NULL form, so value must not be nil.
func (l *Leaf) AddExpr(column, template string, value any) error {
	if !isValidIdentifier(column) {
		return usageError("AddExpr", "invalid column name %q", column)
	}
	if !strings.Contains(template, exprColumn) || !strings.Contains(template, exprParam) {
		return usageError("AddExpr", "template %q must contain %s and %s", template, exprColumn, exprParam)
	}
	if types.IsNull(value) {
		return usageError("AddExpr", "column %s: expressions cannot bind NULL", column)
	}

	name := l.ns.Generate(column)
	expr := strings.NewReplacer(exprColumn, l.qualify(column), exprParam, ":"+name).Replace(template)
	l.parts = append(l.parts, expr)
	l.params[name] = value
	return nil
}

func (l *Leaf) qualify(column string) string {
	if l.alias == "" {
		return column
	}
	return l.alias + "." + column
}

// IsEmpty reports whether no comparison has been added.
func (l *Leaf) IsEmpty() bool {
	return len(l.parts) == 0
}

// NotEmpty reports whether at least one comparison has been added.
func (l *Leaf) NotEmpty() bool {
	return !l.IsEmpty()
}

// Render returns the comparisons joined by the leaf's logic operator and
// wrapped in parentheses, or "" when the leaf is empty.
func (l *Leaf) Render() string {
	if l.IsEmpty() {
		return ""
	}
	return "(" + strings.Join(l.parts, l.logic.Separator()) + ")"
}

// Params returns the bindings for every placeholder in Render's output.
func (l *Leaf) Params() NamedParams {
	return NewNamedParams(l.params)
}
