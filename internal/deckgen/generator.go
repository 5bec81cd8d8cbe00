package deckgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/listenly/listenly/internal/deck"
	"github.com/listenly/listenly/internal/llm"
)

// Generator produces listening decks using an LLM provider.
type Generator interface {
	// Generate produces a deck for the given input. All configured
	// validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (*deck.Deck, error)
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// deckOutput is the raw LLM response before validation.
type deckOutput struct {
	Name  string          `json:"name"`
	Pairs []GeneratedPair `json:"pairs"`
}

// Generate produces a deck for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*deck.Deck, error) {
	ctx = llm.WithPurpose(ctx, "deck-gen")

	userMsg := buildUserMessage(input, g.config)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      DeckSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw deckOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(raw.Pairs, input); verr != nil {
			return nil, verr
		}
	}

	d := &deck.Deck{
		ID:         uuid.NewString(),
		Name:       raw.Name,
		SourceLang: input.SourceLang,
		TargetLang: input.TargetLang,
		Pairs:      make([]deck.Pair, len(raw.Pairs)),
	}
	for i, p := range raw.Pairs {
		d.Pairs[i] = deck.Pair{Source: p.Source, Target: p.Target}
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("generated deck is invalid: %w", err)
	}
	return d, nil
}
