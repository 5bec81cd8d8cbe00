package deckgen

import "github.com/listenly/listenly/internal/llm"

// DeckSchema defines the JSON schema for LLM deck generation responses.
var DeckSchema = &llm.Schema{
	Name:        "sentence-deck",
	Description: "A deck of sentence pairs for listening practice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "A short human-readable deck name, e.g. \"Ordering food (beginner)\"",
			},
			"pairs": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"source": map[string]any{
							"type":        "string",
							"description": "The sentence in the language being learned",
						},
						"target": map[string]any{
							"type":        "string",
							"description": "The translation in the learner's language",
						},
					},
					"required":             []any{"source", "target"},
					"additionalProperties": false,
				},
				"description": "The sentence pairs, exactly as many as requested",
			},
		},
		"required":             []any{"name", "pairs"},
		"additionalProperties": false,
	},
}
