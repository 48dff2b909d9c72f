// Package mongodb stores thoughts as documents in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/happythoughts/happythoughts/internal/model"
	"github.com/happythoughts/happythoughts/internal/store"
)

const (
	DefaultDatabase = "project-happy-thoughts-api"
	CollectionName  = "happythoughts"
)

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

type thoughtDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Text      string             `bson:"text"`
	Likes     int                `bson:"likes"`
	CreatedAt time.Time          `bson:"createdAt"`
	Version   int                `bson:"__v"`
}

func (d thoughtDoc) model() model.Thought {
	return model.Thought{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Likes:     d.Likes,
		CreatedAt: d.CreatedAt.UTC(),
		Version:   d.Version,
	}
}

// Open connects to uri, verifies the deployment is reachable and makes sure
// the feed index exists. The database is the one named in the URI path, or
// DefaultDatabase when the URI has none.
func Open(ctx context.Context, uri string) (*Store, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parse mongo url: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	st := New(client, client.Database(dbName).Collection(CollectionName))
	if err := st.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return st, nil
}

// New wraps an already connected client. Close disconnects it.
func New(client *mongo.Client, coll *mongo.Collection) *Store {
	return &Store{client: client, coll: coll, now: time.Now}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("create createdAt index: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) CreateThought(ctx context.Context, text string) (model.Thought, error) {
	thought := model.NewThought(text, s.now())
	if err := store.Validate(thought); err != nil {
		return model.Thought{}, err
	}
	doc := thoughtDoc{
		ID:        primitive.NewObjectID(),
		Text:      thought.Text,
		Likes:     thought.Likes,
		CreatedAt: thought.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return model.Thought{}, fmt.Errorf("insert thought: %w", err)
	}
	return doc.model(), nil
}

func (s *Store) ListRecentThoughts(ctx context.Context, limit int) ([]model.Thought, error) {
	if limit <= 0 {
		return []model.Thought{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find thoughts: %w", err)
	}
	var docs []thoughtDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode thoughts: %w", err)
	}
	thoughts := make([]model.Thought, 0, len(docs))
	for _, d := range docs {
		thoughts = append(thoughts, d.model())
	}
	return thoughts, nil
}

func (s *Store) GetThought(ctx context.Context, id string) (model.Thought, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Thought{}, err
	}
	var doc thoughtDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return model.Thought{}, translate(err)
	}
	return doc.model(), nil
}

func (s *Store) LikeThought(ctx context.Context, id string) (model.Thought, error) {
	oid, err := objectID(id)
	if err != nil {
		return model.Thought{}, err
	}
	var doc thoughtDoc
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return model.Thought{}, translate(err)
	}
	return doc.model(), nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", store.ErrInvalidID, id)
	}
	return oid, nil
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
