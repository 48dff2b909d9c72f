package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happythoughts/happythoughts/internal/model"
	"github.com/happythoughts/happythoughts/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestThoughtLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	before := time.Now().Truncate(time.Millisecond)
	created, err := st.CreateThought(ctx, "Hello world!")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hello world!", created.Text)
	assert.Zero(t, created.Likes)
	assert.False(t, created.CreatedAt.Before(before))

	got, err := st.GetThought(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	liked, err := st.LikeThought(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, created.ID, liked.ID)
	assert.Equal(t, created.Text, liked.Text)
	assert.True(t, created.CreatedAt.Equal(liked.CreatedAt))
}

func TestCreateThoughtRejectsInvalidText(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"", "short", strings.Repeat("x", 141)} {
		_, err := st.CreateThought(ctx, text)
		var verr *store.ValidationError
		require.True(t, errors.As(err, &verr), "text %q: expected validation error, got %v", text, err)
		assert.Contains(t, verr.Fields, "text")
	}

	thoughts, err := st.ListRecentThoughts(ctx, 20)
	require.NoError(t, err)
	assert.Empty(t, thoughts)
}

func TestListRecentThoughtsOrderAndLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	st.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	for i := 0; i < 25; i++ {
		_, err := st.CreateThought(ctx, fmt.Sprintf("thought number %02d", i))
		require.NoError(t, err)
	}

	thoughts, err := st.ListRecentThoughts(ctx, 20)
	require.NoError(t, err)
	require.Len(t, thoughts, 20)
	assert.Equal(t, "thought number 24", thoughts[0].Text)
	assert.Equal(t, "thought number 05", thoughts[19].Text)
	for i := 1; i < len(thoughts); i++ {
		assert.True(t, thoughts[i-1].CreatedAt.After(thoughts[i].CreatedAt), "not strictly descending at %d", i)
	}
}

func TestListRecentThoughtsSameMillisecond(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }

	for _, text := range []string{"first thought", "second thought", "third thought"} {
		_, err := st.CreateThought(ctx, text)
		require.NoError(t, err)
	}

	thoughts, err := st.ListRecentThoughts(ctx, 20)
	require.NoError(t, err)
	require.Len(t, thoughts, 3)
	assert.Equal(t, "third thought", thoughts[0].Text)
	assert.Equal(t, "first thought", thoughts[2].Text)
}

func TestLikeThoughtErrors(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.LikeThought(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.LikeThought(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, store.ErrInvalidID)
	assert.NotErrorIs(t, err, store.ErrNotFound)

	_, err = st.GetThought(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestConcurrentLikes(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateThought(ctx, "like me many times")
	require.NoError(t, err)

	const k = 50
	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.LikeThought(ctx, created.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("like failed: %v", err)
	}

	got, err := st.GetThought(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, k, got.Likes)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	first, err := Open(path)
	require.NoError(t, err)
	defer first.Close()

	created, err := first.CreateThought(context.Background(), "survives reopen")
	require.NoError(t, err)

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.GetThought(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Text, got.Text)
}

func TestSchemaEnforcesTextBounds(t *testing.T) {
	st := newTestStore(t)
	insert := func(text string) error {
		_, err := st.db.Exec(`INSERT INTO thoughts (id, text, likes, created_at) VALUES (?, ?, 0, 0)`, uuid.NewString(), text)
		return err
	}

	assert.NoError(t, insert(strings.Repeat("a", model.TextMinLength)))
	assert.NoError(t, insert(strings.Repeat("é", model.TextMaxLength)))
	assert.Error(t, insert(strings.Repeat("a", model.TextMinLength-1)))
	assert.Error(t, insert(strings.Repeat("a", model.TextMaxLength+1)))
}
