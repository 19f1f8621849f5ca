package unverdad

import "github.com/John-Tuesday/unverdad/internal/types"

// ValueType names the kind of value a column holds.
type ValueType = types.ValueType

// Value types used for expected-type validation.
const (
	TypeAny     = types.TypeAny
	TypeString  = types.TypeString
	TypeInteger = types.TypeInteger
	TypeReal    = types.TypeReal
	TypeBool    = types.TypeBool
	TypeUUID    = types.TypeUUID
	TypePath    = types.TypePath
	TypeBytes   = types.TypeBytes
)

// Column is a column name with its declared value type.
type Column = types.Column

// IsNull reports whether v is compared as SQL NULL.
// Untyped nil and nil pointers are.
func IsNull(v any) bool {
	return types.IsNull(v)
}
