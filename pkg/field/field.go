package field

import (
	"encoding/json"
)

type Kind string

const (
	KindString  Kind = "string"
	KindDate    Kind = "date"
	KindTime    Kind = "time"
	KindNumber  Kind = "number"
	KindInteger Kind = "integer"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindJSON    Kind = "json"
)

func (k Kind) Known() bool {
	switch k {
	case KindString, KindDate, KindTime, KindNumber, KindInteger, KindBoolean, KindArray, KindObject, KindJSON:
		return true
	}

	return false
}

// Map holds extracted fields keyed by field name.
type Map = map[string]Value

type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Value is one extracted datum. Exactly one payload slot matching Kind is
// set, or none when the service omitted the value or sent an unknown kind.
type Value struct {
	Kind Kind

	Confidence *float64
	Source     string
	Spans      []Span

	set bool

	text    string
	number  float64
	integer int64
	boolean bool

	array  []Value
	object Map
	raw    json.RawMessage
}

func String(val string) Value {
	return Value{Kind: KindString, set: true, text: val}
}

// Date expects an ISO 8601 date (YYYY-MM-DD).
func Date(val string) Value {
	return Value{Kind: KindDate, set: true, text: val}
}

// Time expects an ISO 8601 time (hh:mm:ss).
func Time(val string) Value {
	return Value{Kind: KindTime, set: true, text: val}
}

func Number(val float64) Value {
	return Value{Kind: KindNumber, set: true, number: val}
}

func Integer(val int64) Value {
	return Value{Kind: KindInteger, set: true, integer: val}
}

func Boolean(val bool) Value {
	return Value{Kind: KindBoolean, set: true, boolean: val}
}

func Array(vals ...Value) Value {
	return Value{Kind: KindArray, set: true, array: vals}
}

func Object(vals Map) Value {
	return Value{Kind: KindObject, set: true, object: vals}
}

func JSON(val json.RawMessage) Value {
	return Value{Kind: KindJSON, set: true, raw: val}
}

func (v Value) WithConfidence(val float64) Value {
	v.Confidence = &val
	return v
}

func (v Value) WithSource(source string, spans ...Span) Value {
	v.Source = source
	v.Spans = spans
	return v
}

// Empty reports whether the value carries no payload.
func (v Value) Empty() bool {
	return !v.set
}

func (v Value) AsString() (string, bool) {
	if v.Kind != KindString || !v.set {
		return "", false
	}

	return v.text, true
}

func (v Value) AsDate() (string, bool) {
	if v.Kind != KindDate || !v.set {
		return "", false
	}

	return v.text, true
}

func (v Value) AsTime() (string, bool) {
	if v.Kind != KindTime || !v.set {
		return "", false
	}

	return v.text, true
}

func (v Value) AsNumber() (float64, bool) {
	if v.Kind != KindNumber || !v.set {
		return 0, false
	}

	return v.number, true
}

func (v Value) AsInteger() (int64, bool) {
	if v.Kind != KindInteger || !v.set {
		return 0, false
	}

	return v.integer, true
}

func (v Value) AsBoolean() (bool, bool) {
	if v.Kind != KindBoolean || !v.set {
		return false, false
	}

	return v.boolean, true
}

func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray || !v.set {
		return nil, false
	}

	return v.array, true
}

func (v Value) AsObject() (Map, bool) {
	if v.Kind != KindObject || !v.set {
		return nil, false
	}

	return v.object, true
}

func (v Value) AsJSON() (json.RawMessage, bool) {
	if v.Kind != KindJSON || !v.set {
		return nil, false
	}

	return v.raw, true
}
