package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func pairListSchema() *Schema {
	return &Schema{
		Name:        "pair-list",
		Description: "A list of sentence pairs",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pairs": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"source": map[string]any{"type": "string"},
							"target": map[string]any{"type": "string"},
						},
						"required": []any{"source", "target"},
					},
				},
			},
			"required": []any{"pairs"},
		},
	}
}

func TestValidateResponseAccepts(t *testing.T) {
	raw := json.RawMessage(`{"pairs":[{"source":"Hola","target":"Hello"}]}`)
	if err := validateResponse(pairListSchema(), raw); err != nil {
		t.Fatalf("validateResponse: %v", err)
	}
}

func TestValidateResponseRejectsMissingField(t *testing.T) {
	raw := json.RawMessage(`{"pairs":[{"source":"Hola"}]}`)
	err := validateResponse(pairListSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponseRejectsWrongType(t *testing.T) {
	raw := json.RawMessage(`{"pairs":"not an array"}`)
	err := validateResponse(pairListSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponseRejectsMalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"pairs":`)
	err := validateResponse(pairListSchema(), raw)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	schema, err := buildGeminiSchema(pairListSchema().Definition)
	if err != nil {
		t.Fatalf("buildGeminiSchema: %v", err)
	}

	pairs, ok := schema.Properties["pairs"]
	if !ok {
		t.Fatal("missing pairs property")
	}
	if pairs.Items == nil {
		t.Fatal("missing items on pairs array")
	}
	if got := pairs.Items.Required; len(got) != 2 {
		t.Errorf("item required = %v, want [source target]", got)
	}
}
