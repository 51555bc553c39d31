package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoCollection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing document loads empty", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		c := NewMongoCollection[item](mt.Coll, "items")
		got, err := c.Load(context.Background())
		require.NoError(mt, err)
		require.Empty(mt, got)
		require.NotNil(mt, got)
	})

	mt.Run("load decodes snapshot records", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "items"},
			{Key: "records", Value: bson.A{
				bson.D{{Key: "id", Value: int64(2)}, {Key: "text", Value: "second"}},
				bson.D{{Key: "id", Value: int64(1)}, {Key: "text", Value: "first"}},
			}},
		}))

		c := NewMongoCollection[item](mt.Coll, "items")
		got, err := c.Load(context.Background())
		require.NoError(mt, err)
		require.Equal(mt, []item{{ID: 2, Text: "second"}, {ID: 1, Text: "first"}}, got)
	})

	mt.Run("save upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		c := NewMongoCollection[item](mt.Coll, "items")
		require.NoError(mt, c.Save(context.Background(), []item{{ID: 1, Text: "first"}}))
	})

	mt.Run("server error is a storage error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))

		c := NewMongoCollection[item](mt.Coll, "items")
		err := c.Save(context.Background(), nil)
		var serr *StorageError
		require.True(mt, errors.As(err, &serr))
		require.Equal(mt, "save", serr.Op)
		var cmdErr mongo.CommandError
		require.True(mt, errors.As(err, &cmdErr))
	})
}
