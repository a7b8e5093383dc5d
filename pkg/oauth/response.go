package oauth

import (
	"encoding/json"
	"fmt"
	"math"
)

// ParseErrorKind classifies why a token endpoint response was rejected.
type ParseErrorKind int

const (
	// ExpectedType means the top-level JSON value had the wrong type.
	ExpectedType ParseErrorKind = iota
	// ExpectedFieldType means a field was absent or had the wrong JSON type.
	ExpectedFieldType
	// ExpectedFieldValue means a field had the right type but a disallowed value.
	ExpectedFieldValue
	// UnexpectedField means a field was present that the target shape forbids.
	UnexpectedField
)

// String makes ParseErrorKind satisfy the fmt.Stringer interface.
func (k ParseErrorKind) String() string {
	switch k {
	case ExpectedType:
		return "ExpectedType"
	case ExpectedFieldType:
		return "ExpectedFieldType"
	case ExpectedFieldValue:
		return "ExpectedFieldValue"
	case UnexpectedField:
		return "UnexpectedField"
	default:
		return "Unknown"
	}
}

// ParseError describes a token response that is valid JSON but has the wrong shape.
//
// Field is empty for ExpectedType. Expected holds the JSON kind ("object",
// "string", "i64") or, for ExpectedFieldValue, the required value.
type ParseError struct {
	Kind     ParseErrorKind
	Field    string
	Expected string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ExpectedType:
		return fmt.Sprintf("expected response of type %s", e.Expected)
	case ExpectedFieldType:
		return fmt.Sprintf("expected field %q of type %s", e.Field, e.Expected)
	case ExpectedFieldValue:
		return fmt.Sprintf("expected field %q to equal %q", e.Field, e.Expected)
	case UnexpectedField:
		return fmt.Sprintf("unexpected field %q", e.Field)
	default:
		return "malformed token response"
	}
}

// Is reports whether target is a *ParseError with the same kind, field and
// expectation. It lets callers compare against a literal with errors.Is.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return *e == *t
}

func errExpectedType(kind string) *ParseError {
	return &ParseError{Kind: ExpectedType, Expected: kind}
}

func errExpectedFieldType(field, kind string) *ParseError {
	return &ParseError{Kind: ExpectedFieldType, Field: field, Expected: kind}
}

func errExpectedFieldValue(field, value string) *ParseError {
	return &ParseError{Kind: ExpectedFieldValue, Field: field, Expected: value}
}

func errUnexpectedField(field string) *ParseError {
	return &ParseError{Kind: UnexpectedField, Field: field}
}

// responseObject is a decoded JSON object from a token endpoint.
type responseObject map[string]any

// asObject requires the top-level JSON value to be an object.
func asObject(v any) (responseObject, error) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, nil
	case responseObject:
		return obj, nil
	default:
		return nil, errExpectedType("object")
	}
}

func (o responseObject) has(field string) bool {
	_, ok := o[field]
	return ok
}

// optionalString returns the field if it is a string. Any other type counts as absent.
func (o responseObject) optionalString(field string) (string, bool) {
	s, ok := o[field].(string)
	return s, ok
}

func (o responseObject) requiredString(field string) (string, error) {
	s, ok := o.optionalString(field)
	if !ok {
		return "", errExpectedFieldType(field, "string")
	}
	return s, nil
}

func (o responseObject) requiredInt(field string) (int64, error) {
	n, ok := asInt64(o[field])
	if !ok {
		return 0, errExpectedFieldType(field, "i64")
	}
	return n, nil
}

// asInt64 accepts JSON integers only. Values decoded with UseNumber arrive as
// json.Number; hand-built maps may carry Go integer types. Floats are accepted
// only when they hold an exact integer, matching a decoder without UseNumber.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
