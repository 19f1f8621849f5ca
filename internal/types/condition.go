package types

// LogicOperator represents how conditions are combined.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// Valid reports whether l is AND or OR.
func (l LogicOperator) Valid() bool {
	return l == AND || l == OR
}

// Separator returns the text placed between joined conditions.
func (l LogicOperator) Separator() string {
	return " " + string(l) + " "
}
