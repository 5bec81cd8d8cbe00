package deckgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a language teacher creating listening practice material.

Rules:
- Generate sentence pairs: a sentence in the language being learned ("source") and its translation in the learner's language ("target").
- Sentences must be natural, common, spoken-register phrases a learner would actually hear.
- Match the requested proficiency level: beginner sentences are short (3-7 words) with high-frequency vocabulary; intermediate sentences use past and future tenses; advanced sentences may use idioms and subordinate clauses.
- Every source sentence must be distinct, and every target translation must be distinct. Translations are used as answer options, so near-identical translations make the exercise ambiguous.
- Translations should be faithful but idiomatic, not word-for-word.
- Do not repeat any sentence from the "avoid" list.
- Generate exactly the requested number of pairs.`

// buildUserMessage constructs the user message from GenerateInput and
// Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language being learned: %s\n", input.SourceLang)
	fmt.Fprintf(&b, "Learner's language: %s\n", input.TargetLang)
	fmt.Fprintf(&b, "Level: %s\n", input.Level)
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}
	fmt.Fprintf(&b, "Number of pairs: %d\n", input.Count)

	b.WriteString("\nAvoid these sentences:\n")
	b.WriteString(buildAvoidList(input.AvoidSources, cfg.MaxAvoidSources))

	return b.String()
}

// buildAvoidList formats previously generated sentences for the prompt,
// respecting the max limit. Returns "None" if there is nothing to avoid.
func buildAvoidList(sources []string, max int) string {
	if len(sources) == 0 {
		return "None"
	}

	// Keep only the most recent N sentences.
	if max > 0 && len(sources) > max {
		sources = sources[len(sources)-max:]
	}

	var b strings.Builder
	for i, s := range sources {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
