package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongoconn "github.com/dmitrymomot/sessionkit/pkg/mongo"
)

const mongoCollection = "sessions"

// MongoStore implements Store on top of MongoDB. Sessions are stored as
// documents keyed by the session id with the JSON state in a binary field
// and a nullable expires_at used both for load-time filtering and for the
// optional TTL index created by EnsureIndexes.
type MongoStore struct {
	col *mongo.Collection
}

type mongoSessionDoc struct {
	ID        string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoStore creates a MongoDB-backed session store using the "sessions"
// collection of the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(mongoCollection)}
}

// NewMongoStoreFromConfig connects to MongoDB using the shared connection
// helper and wraps the database in a MongoStore.
func NewMongoStoreFromConfig(ctx context.Context, cfg mongoconn.Config, database string) (*MongoStore, error) {
	db, err := mongoconn.NewWithDatabase(ctx, cfg, database)
	if err != nil {
		return nil, err
	}
	return NewMongoStore(db), nil
}

// EnsureIndexes creates a TTL index on expires_at so MongoDB reaps expired
// sessions on its own. Safe to call on every startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// Load returns the session for the cookie token, or nil when it is absent,
// expired or undecodable. Backend failures are returned as errors.
func (s *MongoStore) Load(ctx context.Context, token string) (*Session, error) {
	filter := bson.M{
		"_id": HashToken(token),
		"$or": bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gt": time.Now()}},
		},
	}

	var doc mongoSessionDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	sess := &Session{}
	if err := json.Unmarshal(doc.Data, sess); err != nil {
		return nil, nil
	}

	return sess.Validate(), nil
}

// Store upserts the session document and returns the cookie token for newly
// created sessions, "" otherwise.
func (s *MongoStore) Store(ctx context.Context, sess *Session) (string, error) {
	if sess == nil || sess.ID() == "" {
		return "", ErrInvalidSession
	}

	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	doc := mongoSessionDoc{
		ID:   sess.ID(),
		Data: b,
	}
	if expiry := sess.Expiry(); !expiry.IsZero() {
		doc.ExpiresAt = &expiry
	}

	_, err = s.col.ReplaceOne(ctx, bson.M{"_id": sess.ID()}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", err
	}

	return sess.TakeCookieToken(), nil
}

// Destroy removes the session document. Deleting a missing document is not
// an error.
func (s *MongoStore) Destroy(ctx context.Context, sess *Session) error {
	if sess == nil {
		return nil
	}
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": sess.ID()})
	return err
}
