package repository

import (
	"context"
	"time"

	"github.com/desuite/desuite-web/backend/internal/demorequest"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed repository for demo requests.
// _id holds the UUIDv7 string; listing sorts by createdAt then _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, storageErr("mongo", "ensure index", err)
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) Create(ctx context.Context, r *demorequest.DemoRequest) error {
	id, err := newID()
	if err != nil {
		return storageErr("mongo", "create", err)
	}
	rec := r.Clone()
	rec.ID = id
	rec.CreatedAt = stamp(time.Millisecond)
	if _, err := m.col.InsertOne(ctx, rec); err != nil {
		return storageErr("mongo", "create", err)
	}
	r.ID, r.CreatedAt = rec.ID, rec.CreatedAt
	return nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*demorequest.DemoRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageErr("mongo", "list", err)
	}
	defer cur.Close(ctx)
	out := []*demorequest.DemoRequest{}
	for cur.Next(ctx) {
		var d demorequest.DemoRequest
		if err := cur.Decode(&d); err != nil {
			return nil, storageErr("mongo", "list", err)
		}
		d.CreatedAt = d.CreatedAt.UTC()
		out = append(out, &d)
	}
	if err := cur.Err(); err != nil {
		return nil, storageErr("mongo", "list", err)
	}
	return out, nil
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}
