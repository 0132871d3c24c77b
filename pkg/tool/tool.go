package tool

import (
	"context"
	"encoding/json"
	"errors"
)

type Tool struct {
	Name        string
	Description string

	Parameters map[string]any
}

var (
	ErrInvalidTool = errors.New("invalid tool")
)

type Provider interface {
	Tools(ctx context.Context) ([]Tool, error)
	Execute(ctx context.Context, name string, parameters map[string]any) (any, error)
}

func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	if schema["type"] == nil {
		if schema["items"] != nil {
			schema["type"] = "array"
		} else {
			schema["type"] = "object"
		}
	}

	schemaType, _ := schema["type"].(string)

	switch schemaType {
	case "object":
		if schema["properties"] == nil {
			schema["properties"] = map[string]any{}
		}

	case "array":
		if schema["items"] == nil {
			schema["items"] = map[string]any{"type": "string"}
		}
	}

	return schema
}

func ParseNormalizedSchema(data []byte) map[string]any {
	var schema map[string]any

	if len(data) == 0 || json.Unmarshal(data, &schema) != nil {
		schema = map[string]any{}
	}

	return NormalizeSchema(schema)
}
