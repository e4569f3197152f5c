package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mathproblem/pkg/cache"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/problem"
)

// Default MongoDB names.
const (
	DefaultMongoDatabase   = "mathproblem"
	DefaultMongoCollection = "problem_sets"
)

// MongoStore keeps one document per set.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDoc struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	Level     int       `bson:"level"`
	Count     int       `bson:"count"`
	CreatedAt time.Time `bson:"created_at"`
	Payload   []byte    `bson:"payload,omitempty"`
}

// OpenMongo connects to uri, pings the server (retrying transient failures)
// and ensures the listing index exists.
func OpenMongo(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
				return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
			}
			return err
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func (m *MongoStore) Save(ctx context.Context, set *problem.Set) (err error) {
	start := time.Now()
	defer func() { observe(ctx, "mongo", "save", start, err) }()

	if err := validateSet(set); err != nil {
		return err
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode set: %w", err)
	}
	doc := mongoDoc{
		ID:        set.ID,
		Kind:      string(set.Kind),
		Level:     set.Level,
		Count:     len(set.Problems),
		CreatedAt: set.CreatedAt.UTC(),
		Payload:   payload,
	}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": set.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert set: %w", err)
	}
	return nil
}

func (m *MongoStore) Get(ctx context.Context, id string) (_ *problem.Set, err error) {
	start := time.Now()
	defer func() { observe(ctx, "mongo", "get", start, err) }()

	var doc mongoDoc
	err = m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find set: %w", err)
	}

	var set problem.Set
	if err := json.Unmarshal(doc.Payload, &set); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode set %s", id)
	}
	return &set, nil
}

func (m *MongoStore) List(ctx context.Context, opts ListOptions) (_ []Summary, err error) {
	start := time.Now()
	defer func() { observe(ctx, "mongo", "list", start, err) }()

	filter := bson.M{}
	if opts.Kind != "" {
		filter["kind"] = string(opts.Kind)
	}
	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(opts.limit())).
		SetProjection(bson.M{"payload": 0})

	cur, err := m.coll.Find(ctx, filter, find)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	var docs []mongoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sets: %w", err)
	}

	out := make([]Summary, len(docs))
	for i, d := range docs {
		out[i] = Summary{
			ID:        d.ID,
			Kind:      problem.Kind(d.Kind),
			Level:     d.Level,
			Count:     d.Count,
			CreatedAt: d.CreatedAt,
		}
	}
	return out, nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe(ctx, "mongo", "delete", start, err) }()

	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
