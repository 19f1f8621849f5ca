package types

// Column is a column reference with the value type its schema declares.
// This is exported from the internal package so dialects can use it,
// but external users cannot import this package.
type Column struct {
	Table string
	Name  string
	Type  ValueType
}

// GetName returns the column name.
func (c Column) GetName() string {
	return c.Name
}

// GetTable returns the owning table name.
func (c Column) GetTable() string {
	return c.Table
}
