package exercise

// speakDoneMsg is sent when an utterance finished playing (or failed).
// The seq ties it to the utterance that produced it: replays supersede
// earlier utterances, so a stale completion must not clear the playing
// flag of a newer one.
type speakDoneMsg struct {
	seq int
}

// advanceMsg is sent when the post-correct advance delay elapses.
type advanceMsg struct {
	seq int
}
