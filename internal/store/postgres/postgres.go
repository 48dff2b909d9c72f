// Package postgres stores thoughts in a PostgreSQL table through a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/happythoughts/happythoughts/internal/model"
	"github.com/happythoughts/happythoughts/internal/store"
)

var schema = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS thoughts (
	id UUID PRIMARY KEY,
	text VARCHAR(%[2]d) NOT NULL CHECK (char_length(text) BETWEEN %[1]d AND %[2]d),
	likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	seq BIGSERIAL
);
CREATE INDEX IF NOT EXISTS idx_thoughts_created_at ON thoughts(created_at DESC, seq DESC);
`, model.TextMinLength, model.TextMaxLength)

type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Open creates a connection pool for databaseURL, checks connectivity and
// applies the schema.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}
	config.MaxConns = 25
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool, now: time.Now}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) CreateThought(ctx context.Context, text string) (model.Thought, error) {
	thought := model.NewThought(text, s.now())
	if err := store.Validate(thought); err != nil {
		return model.Thought{}, err
	}
	thought.ID = uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO thoughts (id, text, likes, created_at)
		VALUES ($1, $2, $3, $4)
	`, thought.ID, thought.Text, thought.Likes, thought.CreatedAt)
	if err != nil {
		return model.Thought{}, fmt.Errorf("failed to create thought: %w", err)
	}
	return thought, nil
}

func (s *Store) ListRecentThoughts(ctx context.Context, limit int) ([]model.Thought, error) {
	if limit <= 0 {
		return []model.Thought{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, text, likes, created_at
		FROM thoughts
		ORDER BY created_at DESC, seq DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query thoughts: %w", err)
	}
	defer rows.Close()

	thoughts := make([]model.Thought, 0, limit)
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, err
		}
		thoughts = append(thoughts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read thoughts: %w", err)
	}
	return thoughts, nil
}

func (s *Store) GetThought(ctx context.Context, id string) (model.Thought, error) {
	if err := checkID(id); err != nil {
		return model.Thought{}, err
	}
	row := s.pool.QueryRow(ctx, `
		SELECT id::text, text, likes, created_at
		FROM thoughts
		WHERE id = $1
	`, id)
	return scanThought(row)
}

func (s *Store) LikeThought(ctx context.Context, id string) (model.Thought, error) {
	if err := checkID(id); err != nil {
		return model.Thought{}, err
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE thoughts SET likes = likes + 1
		WHERE id = $1
		RETURNING id::text, text, likes, created_at
	`, id)
	return scanThought(row)
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return nil
}

func scanThought(row pgx.Row) (model.Thought, error) {
	var t model.Thought
	if err := row.Scan(&t.ID, &t.Text, &t.Likes, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Thought{}, store.ErrNotFound
		}
		return model.Thought{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC().Truncate(time.Millisecond)
	return t, nil
}
