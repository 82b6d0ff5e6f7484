package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const contributorsNS = "lifelessons.contributors"

func TestContributorRepository_RecordLesson(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}}}},
		))

		err := NewContributorRepository(mt.DB).RecordLesson(context.Background(), "Maya", "/maya.png", time.Now().UTC())
		assert.NoError(mt, err)
	})

	mt.Run("retries a duplicate key race", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			updateResponse(1),
		)

		err := NewContributorRepository(mt.DB).RecordLesson(context.Background(), "Maya", "/maya.png", time.Now().UTC())
		assert.NoError(mt, err)
	})
}

func TestContributorRepository_Upsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the stored document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Maya"},
			{Key: "avatar", Value: "/maya.png"},
			{Key: "lessons", Value: int64(3)},
		}}))

		contributor, err := NewContributorRepository(mt.DB).Upsert(context.Background(), "Maya", "/maya.png", time.Now().UTC())

		require.NoError(mt, err)
		assert.Equal(mt, "Maya", contributor.Name)
		assert.Equal(mt, int64(3), contributor.Lessons)
	})
}

func TestContributorRepository_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes in server order", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, contributorsNS, mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Maya"}, {Key: "lessons", Value: int64(5)}},
			bson.D{{Key: "name", Value: "Anonymous"}, {Key: "lessons", Value: int64(2)}},
		))

		contributors, err := NewContributorRepository(mt.DB).List(context.Background())

		require.NoError(mt, err)
		require.Len(mt, contributors, 2)
		assert.Equal(mt, "Maya", contributors[0].Name)
		assert.Equal(mt, int64(2), contributors[1].Lessons)
	})
}
