package deckgen

import (
	"fmt"
	"strings"
	"unicode"
)

// DuplicateValidator rejects decks with repeated sentences. Targets are
// compared as well as sources: duplicate translations would make the
// answer options ambiguous. Comparison ignores case, punctuation, and
// whitespace differences.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicates" }

func (v *DuplicateValidator) Validate(pairs []GeneratedPair, input GenerateInput) *ValidationError {
	avoid := make(map[string]bool, len(input.AvoidSources))
	for _, s := range input.AvoidSources {
		avoid[normalize(s)] = true
	}

	sources := make(map[string]int, len(pairs))
	targets := make(map[string]int, len(pairs))
	for i, p := range pairs {
		src := normalize(p.Source)
		tgt := normalize(p.Target)

		if avoid[src] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pair %d repeats a sentence from an existing deck", i+1),
				Retryable: true,
			}
		}
		if prev, ok := sources[src]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pairs %d and %d have the same source sentence", prev+1, i+1),
				Retryable: true,
			}
		}
		if prev, ok := targets[tgt]; ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pairs %d and %d have the same translation", prev+1, i+1),
				Retryable: true,
			}
		}
		sources[src] = i
		targets[tgt] = i
	}
	return nil
}

// normalize lowercases and strips everything except letters, digits,
// and single spaces, so trivially reworded repeats still collide.
func normalize(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r) && !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}
