package types

import (
	"reflect"

	"github.com/google/uuid"
)

// ValueType names the kind of value a column holds.
type ValueType string

const (
	TypeAny     ValueType = "any"
	TypeString  ValueType = "string"
	TypeInteger ValueType = "integer"
	TypeReal    ValueType = "real"
	TypeBool    ValueType = "bool"
	TypeUUID    ValueType = "uuid"
	TypePath    ValueType = "path"
	TypeBytes   ValueType = "bytes"
)

// Accepts reports whether v is an instance of t.
// TypeAny accepts untyped nil. Other types accept only a nil pointer whose
// element type they accept, so a NULL comparison still names its type.
func (t ValueType) Accepts(v any) bool {
	if t == TypeAny || t == "" {
		return true
	}
	if v == nil {
		return false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return t.Accepts(reflect.Zero(rv.Type().Elem()).Interface())
	}
	switch t {
	case TypeAny, "":
		return true
	case TypeString, TypePath:
		_, ok := v.(string)
		return ok
	case TypeInteger:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
		return false
	case TypeReal:
		switch v.(type) {
		case float32, float64:
			return true
		}
		return false
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeUUID:
		switch v.(type) {
		case uuid.UUID, *uuid.UUID:
			return true
		}
		return false
	case TypeBytes:
		_, ok := v.([]byte)
		return ok
	default:
		return false
	}
}

// IsNull reports whether v stands for SQL NULL. Untyped nil and nil pointers do.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
