package deck

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a deck from JSON and validates it.
func Decode(r io.Reader) (*Deck, error) {
	var d Deck
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}
	return &d, nil
}

// Encode writes the deck as indented JSON.
func Encode(w io.Writer, d *Deck) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	return nil
}

// LoadFile reads and validates a deck from a JSON file on disk.
func LoadFile(path string) (*Deck, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
