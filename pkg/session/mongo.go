package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// DefaultCollection is the collection MongoStore keeps sessions in.
const DefaultCollection = "sessions"

// MongoStore keeps sessions in a MongoDB collection so charts survive a
// server restart and can be shared between replicas. Each Get rebuilds the
// series from its stored snapshot.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *log.Logger
}

// mongoDoc is the stored form of a session. The series snapshot is kept as
// JSON so option lengths keep their "50%" form.
type mongoDoc struct {
	ID        string        `bson:"_id"`
	CreatedAt time.Time     `bson:"created_at"`
	ExpiresAt time.Time     `bson:"expires_at"`
	TTL       time.Duration `bson:"ttl"`
	State     string        `bson:"state"`
}

// NewMongoStore connects to uri and prepares the sessions collection of
// database. A TTL index on expires_at lets the server drop stale sessions
// on its own; Cleanup does the same on demand.
func NewMongoStore(ctx context.Context, uri, database string, logger *log.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	client, err := mongo.Connect(ctx, mongoopts.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(DefaultCollection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: mongoopts.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("create session index: %w", err)
	}
	return &MongoStore{client: client, coll: coll, logger: logger}, nil
}

func (m *MongoStore) Get(ctx context.Context, id string) (*Session, error) {
	var doc mongoDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if time.Now().After(doc.ExpiresAt) {
		if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			m.logger.Warn("drop expired session", "id", id, "err", err)
		}
		return nil, ErrExpired
	}
	rec, err := doc.record()
	if err != nil {
		return nil, err
	}
	return FromRecord(rec, m.logger)
}

func (m *MongoStore) Set(ctx context.Context, s *Session) error {
	doc, err := newMongoDoc(s.Record())
	if err != nil {
		return err
	}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, mongoopts.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoStore) Cleanup(ctx context.Context) error {
	res, err := m.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return fmt.Errorf("cleanup sessions: %w", err)
	}
	if res.DeletedCount > 0 {
		m.logger.Debug("expired sessions removed", "count", res.DeletedCount)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func newMongoDoc(r Record) (mongoDoc, error) {
	state, err := json.Marshal(r.State)
	if err != nil {
		return mongoDoc{}, fmt.Errorf("marshal session state: %w", err)
	}
	return mongoDoc{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.UTC(),
		ExpiresAt: r.ExpiresAt.UTC(),
		TTL:       r.TTL,
		State:     string(state),
	}, nil
}

func (d mongoDoc) record() (Record, error) {
	var state treegraph.Snapshot
	if err := json.Unmarshal([]byte(d.State), &state); err != nil {
		return Record{}, fmt.Errorf("parse session state: %w", err)
	}
	return Record{
		ID:        d.ID,
		CreatedAt: d.CreatedAt,
		ExpiresAt: d.ExpiresAt,
		TTL:       d.TTL,
		State:     state,
	}, nil
}

var _ Store = (*MongoStore)(nil)
