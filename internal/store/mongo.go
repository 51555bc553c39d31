package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection keeps a collection as a single snapshot document
// {_id: <name>, records: [...], updatedAt}. Replacing that document is
// atomic on the server, so a save never leaves a half-written array.
type MongoCollection[T any] struct {
	col  *mongo.Collection
	name string
}

type snapshot[T any] struct {
	ID        string    `bson:"_id"`
	Records   []T       `bson:"records"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoCollection stores the collection in col under the document id name.
func NewMongoCollection[T any](col *mongo.Collection, name string) *MongoCollection[T] {
	return &MongoCollection[T]{col: col, name: name}
}

func (m *MongoCollection[T]) Name() string { return m.name }

func (m *MongoCollection[T]) Load(ctx context.Context) ([]T, error) {
	var doc snapshot[T]
	err := m.col.FindOne(ctx, bson.M{"_id": m.name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []T{}, nil
		}
		return nil, storageErr(m.name, "load", err)
	}
	return nonNil(doc.Records), nil
}

func (m *MongoCollection[T]) Save(ctx context.Context, records []T) error {
	doc := snapshot[T]{ID: m.name, Records: nonNil(records), UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": m.name}, doc, opts); err != nil {
		return storageErr(m.name, "save", err)
	}
	return nil
}
