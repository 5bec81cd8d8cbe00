package deckgen

// Level describes the learner's proficiency in the target language.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// GenerateInput holds all context needed to generate a deck.
type GenerateInput struct {
	// SourceLang is the language being learned, as a BCP 47 tag
	// (e.g. "es-ES", "fr-FR"). Sentences are spoken in this language.
	SourceLang string

	// TargetLang is the learner's own language; translations are
	// written in it.
	TargetLang string

	// Topic steers sentence content, e.g. "ordering food", "travel".
	// Empty means everyday sentences.
	Topic string

	// Level sets sentence complexity.
	Level Level

	// Count is the number of sentence pairs to generate.
	Count int

	// AvoidSources lists source sentences from existing decks that the
	// new deck must not repeat.
	AvoidSources []string
}

// Validator checks a generated deck before it is accepted.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, e.g.
	// "structural", "duplicates".
	Name() string

	// Validate checks the generated pairs and returns nil if they pass.
	Validate(pairs []GeneratedPair, input GenerateInput) *ValidationError
}

// GeneratedPair is one sentence pair as produced by the LLM.
type GeneratedPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ValidationError describes why a generated deck failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return e.Validator + ": " + e.Message
}
