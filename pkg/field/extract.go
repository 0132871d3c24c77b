package field

import (
	"strconv"
)

// Get returns the first of the candidate names present in fields, whatever
// its kind.
func Get(fields Map, names ...string) (Value, bool) {
	for _, name := range names {
		if v, ok := fields[name]; ok {
			return v, true
		}
	}

	return Value{}, false
}

// StringOf returns the first candidate that holds a string value.
func StringOf(fields Map, names ...string) (string, bool) {
	return lookup(fields, names, Value.AsString)
}

func DateOf(fields Map, names ...string) (string, bool) {
	return lookup(fields, names, Value.AsDate)
}

func TimeOf(fields Map, names ...string) (string, bool) {
	return lookup(fields, names, Value.AsTime)
}

func NumberOf(fields Map, names ...string) (float64, bool) {
	return lookup(fields, names, Value.AsNumber)
}

func IntegerOf(fields Map, names ...string) (int64, bool) {
	return lookup(fields, names, Value.AsInteger)
}

func BooleanOf(fields Map, names ...string) (bool, bool) {
	return lookup(fields, names, Value.AsBoolean)
}

func ArrayOf(fields Map, names ...string) ([]Value, bool) {
	return lookup(fields, names, Value.AsArray)
}

func ObjectOf(fields Map, names ...string) (Map, bool) {
	return lookup(fields, names, Value.AsObject)
}

// Objects returns the object entries of an array field, skipping elements
// of any other kind.
func Objects(fields Map, names ...string) []Map {
	items, ok := ArrayOf(fields, names...)

	if !ok {
		return nil
	}

	var result []Map

	for _, item := range items {
		if obj, ok := item.AsObject(); ok {
			result = append(result, obj)
		}
	}

	return result
}

func lookup[T any](fields Map, names []string, as func(Value) (T, bool)) (T, bool) {
	for _, name := range names {
		v, ok := fields[name]

		if !ok {
			continue
		}

		if val, ok := as(v); ok {
			return val, true
		}
	}

	var zero T
	return zero, false
}

// Path follows a chain of object keys starting at fields.
func Path(fields Map, keys ...string) (Value, bool) {
	if len(keys) == 0 || len(keys) > MaxDepth {
		return Value{}, false
	}

	v, ok := fields[keys[0]]

	if !ok {
		return Value{}, false
	}

	for _, key := range keys[1:] {
		obj, ok := v.AsObject()

		if !ok {
			return Value{}, false
		}

		if v, ok = obj[key]; !ok {
			return Value{}, false
		}
	}

	return v, true
}

// Walk visits v and its nested values depth-first. Returning false from fn
// skips the children of the visited value. Nesting beyond MaxDepth is not
// visited.
func Walk(v Value, fn func(path []string, v Value) bool) {
	walk(nil, v, fn, 0)
}

func walk(path []string, v Value, fn func(path []string, v Value) bool, depth int) {
	if depth > MaxDepth {
		return
	}

	if !fn(path, v) {
		return
	}

	if items, ok := v.AsArray(); ok {
		for i, item := range items {
			walk(append(path[:len(path):len(path)], strconv.Itoa(i)), item, fn, depth+1)
		}
	}

	if items, ok := v.AsObject(); ok {
		for key, item := range items {
			walk(append(path[:len(path):len(path)], key), item, fn, depth+1)
		}
	}
}
