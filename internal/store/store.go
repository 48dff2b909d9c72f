package store

import (
	"context"
	"errors"

	"github.com/happythoughts/happythoughts/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
)

// ValidationError is returned by CreateThought when the document does not
// satisfy the thought schema. Nothing is persisted in that case.
type ValidationError struct {
	Fields model.ValidationErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Fields
}

// Validate runs the schema checks for t and wraps any failure in a
// ValidationError. Backends call it before writing.
func Validate(t model.Thought) error {
	err := t.Validate()
	if err == nil {
		return nil
	}
	var fields model.ValidationErrors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

type Store interface {
	ThoughtStore
	Ping(ctx context.Context) error
	Close() error
}

type ThoughtStore interface {
	// CreateThought validates text and persists a new thought with zero
	// likes and the current time.
	CreateThought(ctx context.Context, text string) (model.Thought, error)
	// ListRecentThoughts returns at most limit thoughts, newest first.
	ListRecentThoughts(ctx context.Context, limit int) ([]model.Thought, error)
	GetThought(ctx context.Context, id string) (model.Thought, error)
	// LikeThought atomically increments the likes of id by one and returns
	// the updated thought.
	LikeThought(ctx context.Context, id string) (model.Thought, error)
}
