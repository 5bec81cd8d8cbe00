package deck

import (
	"bytes"
	_ "embed"
)

//go:embed starter.json
var starterJSON []byte

// Starter returns the built-in Spanish starter deck so `listenly play`
// works before anything has been imported or generated.
func Starter() *Deck {
	d, err := Decode(bytes.NewReader(starterJSON))
	if err != nil {
		// The embedded deck is validated by tests. If this fires,
		// the binary itself is broken.
		panic("embedded starter deck: " + err.Error())
	}
	return d
}
