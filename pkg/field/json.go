package field

import (
	"bytes"
	"encoding/json"
	"errors"
)

// MaxDepth bounds the nesting of array and object values. Deeper composites
// decode without payload, so extraction below that level misses silently.
const MaxDepth = 32

type wireValue struct {
	Type Kind `json:"type,omitempty"`

	ValueString  *string  `json:"valueString,omitempty"`
	ValueDate    *string  `json:"valueDate,omitempty"`
	ValueTime    *string  `json:"valueTime,omitempty"`
	ValueNumber  *float64 `json:"valueNumber,omitempty"`
	ValueInteger *int64   `json:"valueInteger,omitempty"`
	ValueBoolean *bool    `json:"valueBoolean,omitempty"`

	ValueArray  []json.RawMessage          `json:"valueArray,omitzero"`
	ValueObject map[string]json.RawMessage `json:"valueObject,omitzero"`
	ValueJSON   json.RawMessage            `json:"valueJson,omitzero"`

	Confidence *float64 `json:"confidence,omitempty"`
	Source     string   `json:"source,omitempty"`
	Spans      []Span   `json:"spans,omitempty"`
}

func (v *Value) UnmarshalJSON(data []byte) error {
	return v.decode(data, 0)
}

func (v *Value) decode(data []byte, depth int) error {
	var w wireValue

	if err := json.Unmarshal(data, &w); err != nil {
		// a slot of the wrong JSON type stays empty
		var typeErr *json.UnmarshalTypeError

		if !errors.As(err, &typeErr) {
			return err
		}
	}

	*v = Value{
		Kind: w.Type,

		Confidence: w.Confidence,
		Source:     w.Source,
		Spans:      w.Spans,
	}

	switch w.Type {
	case KindString:
		if w.ValueString != nil {
			v.set, v.text = true, *w.ValueString
		}

	case KindDate:
		if w.ValueDate != nil {
			v.set, v.text = true, *w.ValueDate
		}

	case KindTime:
		if w.ValueTime != nil {
			v.set, v.text = true, *w.ValueTime
		}

	case KindNumber:
		if w.ValueNumber != nil {
			v.set, v.number = true, *w.ValueNumber
		}

	case KindInteger:
		if w.ValueInteger != nil {
			v.set, v.integer = true, *w.ValueInteger
		}

	case KindBoolean:
		if w.ValueBoolean != nil {
			v.set, v.boolean = true, *w.ValueBoolean
		}

	case KindArray:
		if w.ValueArray == nil || depth >= MaxDepth {
			return nil
		}

		items := make([]Value, 0, len(w.ValueArray))

		for _, raw := range w.ValueArray {
			var item Value

			if err := item.decode(raw, depth+1); err != nil {
				item = Value{}
			}

			items = append(items, item)
		}

		v.set, v.array = true, items

	case KindObject:
		if w.ValueObject == nil || depth >= MaxDepth {
			return nil
		}

		items := make(Map, len(w.ValueObject))

		for key, raw := range w.ValueObject {
			var item Value

			if err := item.decode(raw, depth+1); err != nil {
				item = Value{}
			}

			items[key] = item
		}

		v.set, v.object = true, items

	case KindJSON:
		if len(w.ValueJSON) == 0 || bytes.Equal(w.ValueJSON, []byte("null")) {
			return nil
		}

		v.set, v.raw = true, w.ValueJSON
	}

	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	w := wireValue{
		Type: v.Kind,

		Confidence: v.Confidence,
		Source:     v.Source,
		Spans:      v.Spans,
	}

	if v.set {
		switch v.Kind {
		case KindString:
			w.ValueString = &v.text

		case KindDate:
			w.ValueDate = &v.text

		case KindTime:
			w.ValueTime = &v.text

		case KindNumber:
			w.ValueNumber = &v.number

		case KindInteger:
			w.ValueInteger = &v.integer

		case KindBoolean:
			w.ValueBoolean = &v.boolean

		case KindArray:
			w.ValueArray = make([]json.RawMessage, 0, len(v.array))

			for _, item := range v.array {
				data, err := json.Marshal(item)

				if err != nil {
					return nil, err
				}

				w.ValueArray = append(w.ValueArray, data)
			}

		case KindObject:
			w.ValueObject = make(map[string]json.RawMessage, len(v.object))

			for key, item := range v.object {
				data, err := json.Marshal(item)

				if err != nil {
					return nil, err
				}

				w.ValueObject[key] = data
			}

		case KindJSON:
			w.ValueJSON = v.raw
		}
	}

	return json.Marshal(w)
}
