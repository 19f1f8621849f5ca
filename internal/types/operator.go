package types

// Operator represents a column comparison operator.
type Operator string

const (
	// Basic comparison operators.
	EQ Operator = "="
	NE Operator = "!="
	GT Operator = ">"
	GE Operator = ">="
	LT Operator = "<"
	LE Operator = "<="

	// Pattern operators.
	LIKE    Operator = "LIKE"
	NotLike Operator = "NOT LIKE"

	// Null forms. EQ and NE against a nil value render as these.
	OpIsNull    Operator = "IS NULL"
	OpIsNotNull Operator = "IS NOT NULL"
)

// Valid reports whether op may be passed to a comparison.
// The null forms are produced by rendering and are not accepted as input.
func (op Operator) Valid() bool {
	switch op {
	case EQ, NE, GT, GE, LT, LE, LIKE, NotLike:
		return true
	default:
		return false
	}
}

// NullForm returns the operator used when comparing against NULL.
// Only EQ and NE have one.
func (op Operator) NullForm() (Operator, bool) {
	switch op {
	case EQ:
		return OpIsNull, true
	case NE:
		return OpIsNotNull, true
	default:
		return "", false
	}
}
