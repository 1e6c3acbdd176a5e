package dappkitty

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// formatArgs joins console arguments into one message: text stays text,
// composite values are rendered as JSON.
func formatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatArg(a)
	}
	return strings.Join(parts, " ")
}

// formatArg never panics: a failing String, Error or MarshalJSON method
// falls back to fmt, which reports the panic inline.
func formatArg(a any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprint(a)
		}
	}()
	if isNil(a) {
		return "null"
	}
	switch v := a.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}
	switch reflect.ValueOf(a).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return fmt.Sprint(a)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T", a)
	}
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Sprintf("%+v", a)
	}
	return string(b)
}

// isNil reports untyped nil and nil pointers behind a non-nil interface
// value, whose methods may dereference the receiver.
func isNil(a any) bool {
	if a == nil {
		return true
	}
	switch v := reflect.ValueOf(a); v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
