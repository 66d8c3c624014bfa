// internal/words/sqlstore.go
//
// SQLite-backed dictionary source.
// The words table is created by the embedded migrations (assets/sql).
// SeedDB fills an empty table from a word list; LoadDB reads enabled rows.

package words

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robalobadob/kanamatch/internal/lexicon"
)

// SeedDB inserts entries that are not in the table yet and returns how many
// rows were added.
func SeedDB(ctx context.Context, db *sql.DB, entries []Entry) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO words (kana, romaji, english, kanji, emoji)
	                                     VALUES (?,?,?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, e := range entries {
		res, err := stmt.ExecContext(ctx, e.Kana, e.Romaji, e.English, e.Kanji, e.Emoji)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", e.Kana, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// CountDB returns the number of enabled words in the table.
func CountDB(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM words WHERE enabled=1`).Scan(&n)
	return n, err
}

// LoadDB builds a dictionary from the enabled rows of the words table.
func LoadDB(ctx context.Context, db *sql.DB, alphabet []lexicon.Symbol) (*Dictionary, error) {
	rows, err := db.QueryContext(ctx, `SELECT kana, romaji, english, kanji, emoji
	                                   FROM words WHERE enabled=1 ORDER BY created_at, kana`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Kana, &e.Romaji, &e.English, &e.Kanji, &e.Emoji); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return New(entries, alphabet)
}
