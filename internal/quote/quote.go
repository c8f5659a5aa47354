// Package quote stores named snapshots of calculator results.
//
// A snapshot keeps the inputs exactly as they were typed together with the
// result computed at save time. Reading a quote never recomputes it.
package quote

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/profitcalc/internal/pricing"
)

const timeLayout = "2006-01-02 15:04:05"

// likeEscaper makes search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var (
	// ErrNotFound is returned when no quote matches the requested id.
	ErrNotFound = errors.New("quote not found")
	// ErrTitleRequired is returned by Save when the title is blank.
	ErrTitleRequired = errors.New("title is required")
)

// Quote is one saved calculation.
type Quote struct {
	ID        int64
	Ref       string
	CreatedAt time.Time
	Title     string
	Notes     string
	Input     pricing.Input
	Result    pricing.Result
}

// Store persists quotes in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore returns a Store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save inserts q and returns it with its id, ref and creation time filled in.
func (s *Store) Save(ctx context.Context, q Quote) (Quote, error) {
	q.Title = strings.TrimSpace(q.Title)
	q.Notes = strings.TrimSpace(q.Notes)
	if q.Title == "" {
		return Quote{}, ErrTitleRequired
	}

	inputJSON, err := json.Marshal(q.Input)
	if err != nil {
		return Quote{}, fmt.Errorf("encode quote inputs: %w", err)
	}
	resultJSON, err := json.Marshal(q.Result)
	if err != nil {
		return Quote{}, fmt.Errorf("encode quote result: %w", err)
	}

	q.Ref = uuid.NewString()
	q.CreatedAt = s.now().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (ref, created_at, title, notes, inputs_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, q.Ref, q.CreatedAt.Format(timeLayout), q.Title, q.Notes, string(inputJSON), string(resultJSON))
	if err != nil {
		return Quote{}, fmt.Errorf("insert quote: %w", err)
	}

	q.ID, err = res.LastInsertId()
	if err != nil {
		return Quote{}, fmt.Errorf("read quote id: %w", err)
	}

	return q, nil
}

// Get loads the stored snapshot for id.
func (s *Store) Get(ctx context.Context, id int64) (Quote, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, ref, created_at, title, COALESCE(notes, ''), inputs_json, result_json
		FROM quotes
		WHERE id = ?
	`, id)

	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quote %d: %w", id, err)
	}
	return q, nil
}

// List returns quotes newest first. A non-empty query filters by title or notes.
func (s *Store) List(ctx context.Context, query string) ([]Quote, error) {
	query = strings.TrimSpace(query)
	search := "%" + likeEscaper.Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ref, created_at, title, COALESCE(notes, ''), inputs_json, result_json
		FROM quotes
		WHERE (? = '' OR title LIKE ? ESCAPE '\' OR COALESCE(notes, '') LIKE ? ESCAPE '\')
		ORDER BY created_at DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]Quote, 0)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// Delete removes the quote with id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quote %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quote %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuote(row scanner) (Quote, error) {
	var (
		q          Quote
		createdAt  string
		inputJSON  string
		resultJSON string
	)
	if err := row.Scan(&q.ID, &q.Ref, &createdAt, &q.Title, &q.Notes, &inputJSON, &resultJSON); err != nil {
		return Quote{}, err
	}

	var err error
	q.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return Quote{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if err := json.Unmarshal([]byte(inputJSON), &q.Input); err != nil {
		return Quote{}, fmt.Errorf("decode quote inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &q.Result); err != nil {
		return Quote{}, fmt.Errorf("decode quote result: %w", err)
	}

	return q, nil
}
