package unverdad

import "github.com/John-Tuesday/unverdad/internal/types"

// Operator represents a comparison between a column and a bound value.
type Operator = types.Operator

// Comparison operators accepted by Leaf.Add.
const (
	EQ      = types.EQ
	NE      = types.NE
	GT      = types.GT
	GE      = types.GE
	LT      = types.LT
	LE      = types.LE
	LIKE    = types.LIKE
	NotLike = types.NotLike
)

// LogicOperator joins the comparisons of a leaf or the children of a branch.
type LogicOperator = types.LogicOperator

const (
	AND = types.AND
	OR  = types.OR
)
