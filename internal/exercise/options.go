package exercise

import (
	"math/rand"
	"sort"
)

// maxDistractors is the number of wrong answers shown next to the
// correct one when the pool is large enough.
const maxDistractors = 3

// SelectOptions picks the answer choices for one exercise position:
// the correct translation plus up to three distractors drawn from pool,
// shuffled. Distractors are ranked by confusability with the correct
// answer so the quiz favors options that look like it — same length,
// shared characters — over uniform random picks.
//
// pool is every other pair's target in the deck. Entries equal to
// correct and duplicate entries are skipped. The function is total:
// an empty pool yields just [correct]. All randomness comes from rng,
// so a fixed seed gives a fixed result.
func SelectOptions(rng *rand.Rand, correct string, pool []string) []string {
	type candidate struct {
		text  string
		score int
		tie   float64
	}

	correctRunes := []rune(correct)
	charset := make(map[rune]bool, len(correctRunes))
	for _, r := range correctRunes {
		charset[r] = true
	}

	seen := map[string]bool{correct: true}
	cands := make([]candidate, 0, len(pool))
	for _, text := range pool {
		if seen[text] {
			continue
		}
		seen[text] = true
		cands = append(cands, candidate{
			text:  text,
			score: confusability(correctRunes, charset, text),
			tie:   rng.Float64(),
		})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].tie < cands[j].tie
	})

	n := maxDistractors
	if len(cands) < n {
		n = len(cands)
	}

	options := make([]string, 0, n+1)
	options = append(options, correct)
	for _, c := range cands[:n] {
		options = append(options, c.text)
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// confusability scores how easily a candidate is mistaken for the
// correct answer. Length similarity: +5 for equal length, +3 within 2,
// +1 within 4. Character overlap: +2 per candidate rune (repeats
// included) that appears anywhere in the correct answer.
func confusability(correct []rune, charset map[rune]bool, text string) int {
	runes := []rune(text)

	score := 0
	diff := len(correct) - len(runes)
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		score += 5
	case diff <= 2:
		score += 3
	case diff <= 4:
		score += 1
	}

	for _, r := range runes {
		if charset[r] {
			score += 2
		}
	}
	return score
}
