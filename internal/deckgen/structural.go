package deckgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxSentenceLen = 200

// StructuralValidator checks that the generated pairs are present,
// non-empty, and within length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(pairs []GeneratedPair, input GenerateInput) *ValidationError {
	if len(pairs) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "no pairs generated",
			Retryable: true,
		}
	}
	if input.Count > 0 && len(pairs) != input.Count {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d pairs, requested %d", len(pairs), input.Count),
			Retryable: true,
		}
	}
	for i, p := range pairs {
		if strings.TrimSpace(p.Source) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pair %d has an empty source sentence", i+1),
				Retryable: true,
			}
		}
		if strings.TrimSpace(p.Target) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pair %d has an empty translation", i+1),
				Retryable: true,
			}
		}
		if utf8.RuneCountInString(p.Source) > maxSentenceLen {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pair %d source exceeds %d characters", i+1, maxSentenceLen),
				Retryable: true,
			}
		}
		if utf8.RuneCountInString(p.Target) > maxSentenceLen {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("pair %d translation exceeds %d characters", i+1, maxSentenceLen),
				Retryable: true,
			}
		}
	}
	return nil
}
