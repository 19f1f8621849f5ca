package unverdad

import (
	"fmt"
	"strings"

	"github.com/John-Tuesday/unverdad/internal/types"
	"github.com/zoobzio/dbml"
)

// Schema resolves column types from a DBML project so comparisons can be
// validated against the declared type of their column.
type Schema struct {
	project *dbml.Project
	// table -> column -> type
	columns map[string]map[string]ValueType
}

// NewSchema indexes every table and column of project.
func NewSchema(project *dbml.Project) (*Schema, error) {
	if project == nil {
		return nil, usageError("NewSchema", "project cannot be nil")
	}

	s := &Schema{
		project: project,
		columns: make(map[string]map[string]ValueType),
	}

	for _, table := range project.Tables {
		if !isValidIdentifier(table.Name) {
			return nil, usageError("NewSchema", "invalid table name %q", table.Name)
		}
		cols := make(map[string]ValueType)
		for _, col := range table.Columns {
			if !isValidIdentifier(col.Name) {
				return nil, usageError("NewSchema", "invalid column name %q in table %s", col.Name, table.Name)
			}
			cols[col.Name] = TypeOf(col.Type)
		}
		s.columns[table.Name] = cols
	}

	return s, nil
}

// MustSchema is NewSchema that panics on error.
func MustSchema(project *dbml.Project) *Schema {
	s, err := NewSchema(project)
	if err != nil {
		panic(err)
	}
	return s
}

// Project returns the project the schema was built from.
func (s *Schema) Project() *dbml.Project {
	return s.project
}

// HasTable reports whether the schema declares table.
func (s *Schema) HasTable(table string) bool {
	_, ok := s.columns[table]
	return ok
}

// Column returns the declared column.
func (s *Schema) Column(table, column string) (Column, error) {
	cols, ok := s.columns[table]
	if !ok {
		return Column{}, fmt.Errorf("table '%s' not found in schema", table)
	}
	typ, ok := cols[column]
	if !ok {
		return Column{}, fmt.Errorf("column '%s' not found in table '%s'", column, table)
	}
	return Column{Table: table, Name: column, Type: typ}, nil
}

// C returns the declared column and panics if it does not exist.
func (s *Schema) C(table, column string) Column {
	c, err := s.Column(table, column)
	if err != nil {
		panic(err)
	}
	return c
}

// Leaf adds a leaf to b whose comparisons are checked against table's columns.
func (s *Schema) Leaf(b *Branch, table, alias string, logic LogicOperator) (*TableLeaf, error) {
	if !s.HasTable(table) {
		return nil, fmt.Errorf("table '%s' not found in schema", table)
	}
	l, err := b.AddLeaf(alias, logic)
	if err != nil {
		return nil, err
	}
	return &TableLeaf{Leaf: l, schema: s, table: table}, nil
}

// TableLeaf is a Leaf bound to one schema table. Add rejects unknown
// columns and validates values against the declared column type.
type TableLeaf struct {
	*Leaf
	schema *Schema
	table  string
}

// Table returns the schema table the leaf is bound to.
func (t *TableLeaf) Table() string {
	return t.table
}

// Add compares a declared column to value with op.
func (t *TableLeaf) Add(column string, value any, op Operator) error {
	col, err := t.schema.Column(t.table, column)
	if err != nil {
		return fmt.Errorf("invalid column: %w", err)
	}
	return t.Leaf.AddColumn(col, value, op)
}

// MustAdd is Add that panics on error.
func (t *TableLeaf) MustAdd(column string, value any, op Operator) *TableLeaf {
	if err := t.Add(column, value, op); err != nil {
		panic(err)
	}
	return t
}

// TypeOf maps a DBML column type to the value type it accepts.
// Length and precision suffixes such as varchar(255) are ignored.
func TypeOf(dbmlType string) ValueType {
	base := strings.ToLower(strings.TrimSpace(dbmlType))
	if i := strings.IndexByte(base, '('); i != -1 {
		base = strings.TrimSpace(base[:i])
	}

	switch base {
	case "uuid":
		return types.TypeUUID
	case "text", "varchar", "char", "string":
		return types.TypeString
	case "integer", "int", "bigint", "smallint":
		return types.TypeInteger
	case "real", "float", "double", "numeric", "decimal":
		return types.TypeReal
	case "bool", "boolean":
		return types.TypeBool
	case "path":
		return types.TypePath
	case "blob", "bytea":
		return types.TypeBytes
	default:
		return types.TypeAny
	}
}
