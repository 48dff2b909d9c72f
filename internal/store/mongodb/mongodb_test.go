package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/happythoughts/happythoughts/internal/store"
)

func thoughtResponse(id primitive.ObjectID, text string, likes int32, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "text", Value: text},
		{Key: "likes", Value: likes},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(created)},
		{Key: "__v", Value: int32(0)},
	}
}

func TestMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create thought", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		fixed := time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.UTC)
		st.now = func() time.Time { return fixed }
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		got, err := st.CreateThought(context.Background(), "Hello world!")
		require.NoError(mt, err)
		assert.Len(mt, got.ID, 24)
		assert.Equal(mt, "Hello world!", got.Text)
		assert.Zero(mt, got.Likes)
		assert.True(mt, got.CreatedAt.Equal(fixed.Truncate(time.Millisecond)))
	})

	mt.Run("create thought validation", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)

		_, err := st.CreateThought(context.Background(), "hey")
		var verr *store.ValidationError
		require.True(mt, errors.As(err, &verr))
		assert.Equal(mt, "minlength", verr.Fields["text"].Kind)
	})

	mt.Run("create thought write error", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := st.CreateThought(context.Background(), "Hello world!")
		require.Error(mt, err)
		var verr *store.ValidationError
		assert.False(mt, errors.As(err, &verr))
	})

	mt.Run("list recent thoughts", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		now := time.Now().UTC().Truncate(time.Millisecond)
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			thoughtResponse(newer, "the newer thought", 2, now),
			thoughtResponse(older, "the older thought", 0, now.Add(-time.Minute)),
		))

		thoughts, err := st.ListRecentThoughts(context.Background(), 20)
		require.NoError(mt, err)
		require.Len(mt, thoughts, 2)
		assert.Equal(mt, newer.Hex(), thoughts[0].ID)
		assert.Equal(mt, 2, thoughts[0].Likes)
		assert.True(mt, thoughts[0].CreatedAt.Equal(now))
		assert.Equal(mt, older.Hex(), thoughts[1].ID)
	})

	mt.Run("list recent thoughts empty", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		thoughts, err := st.ListRecentThoughts(context.Background(), 20)
		require.NoError(mt, err)
		assert.NotNil(mt, thoughts)
		assert.Empty(mt, thoughts)
	})

	mt.Run("list recent thoughts failure", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Name:    "InterruptedAtShutdown",
			Message: "interrupted at shutdown",
		}))

		thoughts, err := st.ListRecentThoughts(context.Background(), 20)
		require.Error(mt, err)
		assert.Nil(mt, thoughts)
	})

	mt.Run("like thought", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		id := primitive.NewObjectID()
		created := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: thoughtResponse(id, "Hello world!", 1, created)},
		))

		got, err := st.LikeThought(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), got.ID)
		assert.Equal(mt, 1, got.Likes)
		assert.True(mt, got.CreatedAt.Equal(created))
	})

	mt.Run("like thought not found", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: nil},
		))

		_, err := st.LikeThought(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("like thought malformed id", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)

		_, err := st.LikeThought(context.Background(), "bad-id")
		assert.ErrorIs(mt, err, store.ErrInvalidID)
		assert.NotErrorIs(mt, err, store.ErrNotFound)
	})

	mt.Run("get thought not found", func(mt *mtest.T) {
		st := New(mt.Client, mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := st.GetThought(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, store.ErrNotFound)
	})
}
