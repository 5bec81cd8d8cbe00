package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/listenly/listenly/internal/deck"
)

// ErrDeckNotFound is returned when a deck ID is not in the library.
var ErrDeckNotFound = errors.New("deck not found")

// DeckInfo is a library listing entry.
type DeckInfo struct {
	ID         string
	Name       string
	SourceLang string
	TargetLang string
	PairCount  int
	CreatedAt  time.Time
}

// DeckRepo is the deck library.
type DeckRepo interface {
	// Put stores a deck, replacing any existing deck with the same ID.
	Put(ctx context.Context, d *deck.Deck) error

	// Get loads a full deck by ID. Returns ErrDeckNotFound if absent.
	Get(ctx context.Context, id string) (*deck.Deck, error)

	// List returns library entries, newest first.
	List(ctx context.Context) ([]DeckInfo, error)

	// Delete removes a deck and its pairs. Returns ErrDeckNotFound if absent.
	Delete(ctx context.Context, id string) error
}

type deckRepo struct {
	db *sql.DB
}

func (r *deckRepo) Put(ctx context.Context, d *deck.Deck) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validate deck: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO decks (id, name, source_lang, target_lang) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name,
		 source_lang = excluded.source_lang, target_lang = excluded.target_lang`,
		d.ID, d.Name, d.SourceLang, d.TargetLang)
	if err != nil {
		return fmt.Errorf("upsert deck: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pairs WHERE deck_id = ?`, d.ID); err != nil {
		return fmt.Errorf("clear pairs: %w", err)
	}
	for i, p := range d.Pairs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pairs (deck_id, idx, source, target) VALUES (?, ?, ?, ?)`,
			d.ID, i, p.Source, p.Target)
		if err != nil {
			return fmt.Errorf("insert pair %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (r *deckRepo) Get(ctx context.Context, id string) (*deck.Deck, error) {
	d := &deck.Deck{ID: id}
	err := r.db.QueryRowContext(ctx,
		`SELECT name, source_lang, target_lang FROM decks WHERE id = ?`, id).
		Scan(&d.Name, &d.SourceLang, &d.TargetLang)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeckNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT source, target FROM pairs WHERE deck_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("load pairs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p deck.Pair
		if err := rows.Scan(&p.Source, &p.Target); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		d.Pairs = append(d.Pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pairs: %w", err)
	}
	return d, nil
}

func (r *deckRepo) List(ctx context.Context) ([]DeckInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.id, d.name, d.source_lang, d.target_lang, d.created_at,
		        (SELECT COUNT(*) FROM pairs p WHERE p.deck_id = d.id)
		 FROM decks d ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	var out []DeckInfo
	for rows.Next() {
		var info DeckInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.SourceLang,
			&info.TargetLang, &info.CreatedAt, &info.PairCount); err != nil {
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (r *deckRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrDeckNotFound
	}
	return nil
}
