package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/happythoughts/happythoughts/internal/model"
	"github.com/happythoughts/happythoughts/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection serializes writers so the engine never reports
	// SQLITE_BUSY to concurrent likes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// schema holds the thoughts migrations in order. thought_migrations records
// how many have been applied.
var schema = []string{
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS thoughts (
	id TEXT PRIMARY KEY,
	text TEXT NOT NULL CHECK (length(text) BETWEEN %d AND %d),
	likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
	created_at INTEGER NOT NULL
)`, model.TextMinLength, model.TextMaxLength),
	`CREATE INDEX IF NOT EXISTS idx_thoughts_created_at ON thoughts(created_at DESC)`,
}

func applySchema(db *sql.DB) error {
	const ledger = `CREATE TABLE IF NOT EXISTS thought_migrations (step INTEGER PRIMARY KEY)`
	if _, err := db.Exec(ledger); err != nil {
		return fmt.Errorf("create migration ledger: %w", err)
	}

	var applied int
	if err := db.QueryRow(`SELECT COUNT(*) FROM thought_migrations`).Scan(&applied); err != nil {
		return fmt.Errorf("read migration ledger: %w", err)
	}

	for step := applied + 1; step <= len(schema); step++ {
		if err := migrate(db, step); err != nil {
			return fmt.Errorf("migration %d: %w", step, err)
		}
	}
	return nil
}

// migrate applies one schema step and records it in the same transaction.
func migrate(db *sql.DB, step int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(schema[step-1]); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO thought_migrations (step) VALUES (?)`, step); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) CreateThought(ctx context.Context, text string) (model.Thought, error) {
	thought := model.NewThought(text, s.now())
	if err := store.Validate(thought); err != nil {
		return model.Thought{}, err
	}
	thought.ID = uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO thoughts (id, text, likes, created_at)
VALUES (?, ?, ?, ?)
`, thought.ID, thought.Text, thought.Likes, thought.CreatedAt.UnixMilli())
	if err != nil {
		return model.Thought{}, fmt.Errorf("insert thought: %w", err)
	}
	return thought, nil
}

func (s *Store) ListRecentThoughts(ctx context.Context, limit int) ([]model.Thought, error) {
	if limit <= 0 {
		return []model.Thought{}, nil
	}
	// rowid breaks ties between thoughts created in the same millisecond.
	rows, err := s.db.QueryContext(ctx, `
SELECT id, text, likes, created_at
FROM thoughts
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list thoughts: %w", err)
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
		return nil, err
	}
	return thoughts, nil
}

func (s *Store) GetThought(ctx context.Context, id string) (model.Thought, error) {
	if err := checkID(id); err != nil {
		return model.Thought{}, err
	}
	row := s.db.QueryRowContext(ctx, `
SELECT id, text, likes, created_at
FROM thoughts
WHERE id = ?
LIMIT 1
`, id)
	return scanThought(row)
}

func (s *Store) LikeThought(ctx context.Context, id string) (model.Thought, error) {
	if err := checkID(id); err != nil {
		return model.Thought{}, err
	}
	row := s.db.QueryRowContext(ctx, `
UPDATE thoughts SET likes = likes + 1
WHERE id = ?
RETURNING id, text, likes, created_at
`, id)
	return scanThought(row)
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return nil
}

func scanThought(scanner interface{ Scan(dest ...any) error }) (model.Thought, error) {
	var t model.Thought
	var created int64
	if err := scanner.Scan(&t.ID, &t.Text, &t.Likes, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Thought{}, store.ErrNotFound
		}
		return model.Thought{}, err
	}
	t.CreatedAt = time.UnixMilli(created).UTC()
	return t, nil
}
