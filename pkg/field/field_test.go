package field_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/adrianliechti/contentkit/pkg/field"

	"github.com/stretchr/testify/require"
)

func TestGetFirstCandidate(t *testing.T) {
	fields := field.Map{
		"Total":       field.String("x"),
		"TotalAmount": field.Number(42.5),
	}

	v, ok := field.Get(fields, "Missing", "TotalAmount", "Total")
	require.True(t, ok)
	require.Equal(t, field.KindNumber, v.Kind)

	v, ok = field.Get(fields, "Total", "TotalAmount")
	require.True(t, ok)
	require.Equal(t, field.KindString, v.Kind)

	_, ok = field.Get(fields, "A", "B")
	require.False(t, ok)

	_, ok = field.Get(nil, "A")
	require.False(t, ok)
}

func TestNumberField(t *testing.T) {
	val, ok := field.NumberOf(field.Map{"TotalAmount": field.Number(42.5)}, "TotalAmount")
	require.True(t, ok)
	require.Equal(t, 42.5, val)

	_, ok = field.NumberOf(field.Map{"TotalAmount": field.String("x")}, "TotalAmount")
	require.False(t, ok)
}

func TestTypedLookupSkipsMismatchedCandidates(t *testing.T) {
	fields := field.Map{
		"Amount": field.String("12"),
		"Total":  field.Number(12),
	}

	val, ok := field.NumberOf(fields, "Amount", "Total")
	require.True(t, ok)
	require.Equal(t, 12.0, val)
}

func TestAccessorsMatchKind(t *testing.T) {
	values := []field.Value{
		field.String("a"),
		field.Date("2024-01-02"),
		field.Time("10:11:12"),
		field.Number(1.5),
		field.Integer(7),
		field.Boolean(true),
		field.Array(field.String("x")),
		field.Object(field.Map{"k": field.Integer(1)}),
		field.JSON(json.RawMessage(`{"a":1}`)),
	}

	for _, v := range values {
		_, isString := v.AsString()
		_, isDate := v.AsDate()
		_, isTime := v.AsTime()
		_, isNumber := v.AsNumber()
		_, isInteger := v.AsInteger()
		_, isBoolean := v.AsBoolean()
		_, isArray := v.AsArray()
		_, isObject := v.AsObject()
		_, isJSON := v.AsJSON()

		require.Equal(t, v.Kind == field.KindString, isString, v.Kind)
		require.Equal(t, v.Kind == field.KindDate, isDate, v.Kind)
		require.Equal(t, v.Kind == field.KindTime, isTime, v.Kind)
		require.Equal(t, v.Kind == field.KindNumber, isNumber, v.Kind)
		require.Equal(t, v.Kind == field.KindInteger, isInteger, v.Kind)
		require.Equal(t, v.Kind == field.KindBoolean, isBoolean, v.Kind)
		require.Equal(t, v.Kind == field.KindArray, isArray, v.Kind)
		require.Equal(t, v.Kind == field.KindObject, isObject, v.Kind)
		require.Equal(t, v.Kind == field.KindJSON, isJSON, v.Kind)
	}
}

func TestDecodeFields(t *testing.T) {
	data := `{
		"InvoiceDate": {"type": "date", "valueDate": "2025-03-01", "confidence": 0.91, "source": "D(1,1,1,2,2)", "spans": [{"offset": 10, "length": 10}]},
		"TotalAmount": {"type": "number", "valueNumber": 18.4},
		"Count": {"type": "integer", "valueInteger": 3},
		"Paid": {"type": "boolean", "valueBoolean": true},
		"Raw": {"type": "json", "valueJson": {"a": [1, 2]}},
		"Items": {"type": "array", "valueArray": [
			{"type": "object", "valueObject": {
				"Description": {"type": "string", "valueString": "Coffee"},
				"Price": {"type": "number", "valueNumber": 1.2}
			}},
			{"type": "string", "valueString": "stray"}
		]},
		"Future": {"type": "hologram", "valueHologram": 1, "confidence": 0.5},
		"Broken": {"type": "number", "valueNumber": "NaN"},
		"Null": {"type": "string", "valueString": null}
	}`

	var fields field.Map
	require.NoError(t, json.Unmarshal([]byte(data), &fields))

	date, ok := field.DateOf(fields, "InvoiceDate")
	require.True(t, ok)
	require.Equal(t, "2025-03-01", date)
	require.InDelta(t, 0.91, *fields["InvoiceDate"].Confidence, 1e-9)
	require.Equal(t, "D(1,1,1,2,2)", fields["InvoiceDate"].Source)
	require.Equal(t, []field.Span{{Offset: 10, Length: 10}}, fields["InvoiceDate"].Spans)

	total, ok := field.NumberOf(fields, "TotalAmount")
	require.True(t, ok)
	require.Equal(t, 18.4, total)

	count, ok := field.IntegerOf(fields, "Count")
	require.True(t, ok)
	require.Equal(t, int64(3), count)

	paid, ok := field.BooleanOf(fields, "Paid")
	require.True(t, ok)
	require.True(t, paid)

	raw, ok := fields["Raw"].AsJSON()
	require.True(t, ok)
	require.JSONEq(t, `{"a": [1, 2]}`, string(raw))

	items := field.Objects(fields, "Items")
	require.Len(t, items, 1)

	desc, ok := field.StringOf(items[0], "Description")
	require.True(t, ok)
	require.Equal(t, "Coffee", desc)

	future := fields["Future"]
	require.Equal(t, field.Kind("hologram"), future.Kind)
	require.False(t, future.Kind.Known())
	require.True(t, future.Empty())
	require.NotNil(t, future.Confidence)

	_, ok = field.NumberOf(fields, "Broken")
	require.False(t, ok)

	_, ok = field.StringOf(fields, "Null")
	require.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	in := field.Map{
		"Items": field.Array(
			field.Object(field.Map{
				"Quantity": field.Number(2).WithConfidence(0.8),
			}),
		),
		"Empty": field.Array(),
		"Note":  field.String("ok").WithSource("D(1,0,0)", field.Span{Offset: 1, Length: 2}),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out field.Map
	require.NoError(t, json.Unmarshal(data, &out))

	quantity, ok := field.Path(out, "Items")
	require.True(t, ok)

	items, ok := quantity.AsArray()
	require.True(t, ok)
	require.Len(t, items, 1)

	obj, _ := items[0].AsObject()
	require.InDelta(t, 0.8, *obj["Quantity"].Confidence, 1e-9)

	empty, ok := out["Empty"].AsArray()
	require.True(t, ok)
	require.Empty(t, empty)

	require.Equal(t, "D(1,0,0)", out["Note"].Source)
	require.Equal(t, []field.Span{{Offset: 1, Length: 2}}, out["Note"].Spans)
}

func TestDecodeDepthCap(t *testing.T) {
	depth := field.MaxDepth + 5

	leaf := `{"type": "string", "valueString": "deep"}`
	data := strings.Repeat(`{"type": "object", "valueObject": {"next": `, depth) + leaf + strings.Repeat(`}}`, depth)

	var v field.Value
	require.NoError(t, json.Unmarshal([]byte(data), &v))

	levels := 0

	field.Walk(v, func(path []string, v field.Value) bool {
		if len(path) > levels {
			levels = len(path)
		}

		_, isString := v.AsString()
		require.False(t, isString)

		return true
	})

	require.Equal(t, field.MaxDepth, levels)
}

func TestPath(t *testing.T) {
	fields := field.Map{
		"Merchant": field.Object(field.Map{
			"Address": field.Object(field.Map{
				"City": field.String("Zurich"),
			}),
		}),
	}

	v, ok := field.Path(fields, "Merchant", "Address", "City")
	require.True(t, ok)

	city, _ := v.AsString()
	require.Equal(t, "Zurich", city)

	_, ok = field.Path(fields, "Merchant", "Address", "City", "Zip")
	require.False(t, ok)

	_, ok = field.Path(fields)
	require.False(t, ok)
}
