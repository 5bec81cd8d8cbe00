package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Pair is one sentence in the language being learned together with its
// translation. Source is what gets spoken aloud; Target is what the
// learner picks from the option list.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Deck is an ordered set of sentence pairs plus the metadata needed to
// speak them. A deck is read-only for the lifetime of an exercise run.
type Deck struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Pairs      []Pair `json:"pairs"`
}

var (
	ErrNoPairs   = errors.New("deck has no pairs")
	ErrNoName    = errors.New("deck has no name")
	ErrNoLang    = errors.New("deck has no source language")
	ErrEmptyPair = errors.New("pair has an empty source or target")
)

// Validate checks the structural invariants an exercise run relies on.
// Duplicate target strings are allowed; they degrade distractor quality
// but are not an error.
func (d *Deck) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNoName
	}
	if strings.TrimSpace(d.SourceLang) == "" {
		return ErrNoLang
	}
	if len(d.Pairs) == 0 {
		return ErrNoPairs
	}
	for i, p := range d.Pairs {
		if strings.TrimSpace(p.Source) == "" || strings.TrimSpace(p.Target) == "" {
			return fmt.Errorf("pair %d: %w", i, ErrEmptyPair)
		}
	}
	return nil
}

// Targets returns every pair's target except the one at exclude.
// This is the distractor pool for the pair at that position.
func (d *Deck) Targets(exclude int) []string {
	out := make([]string, 0, len(d.Pairs)-1)
	for i, p := range d.Pairs {
		if i == exclude {
			continue
		}
		out = append(out, p.Target)
	}
	return out
}

// Len returns the number of pairs.
func (d *Deck) Len() int {
	return len(d.Pairs)
}
