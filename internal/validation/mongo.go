package validation

import (
	"context"
	"time"

	"github.com/BartekS5/RCV/pkg/logger"
	"github.com/BartekS5/RCV/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSink persists violation records as audit documents, one run id per
// Write call so a run's findings can be queried together.
type MongoSink struct {
	Client     *mongo.Client
	Database   string
	Collection string
}

func NewMongoSink(client *mongo.Client) *MongoSink {
	return &MongoSink{
		Client:     client,
		Database:   "rcv",
		Collection: "violations",
	}
}

func (m *MongoSink) Write(records []models.ViolationRecord) error {
	if len(records) == 0 {
		return nil
	}

	runID := uuid.NewString()
	recordedAt := time.Now().UTC()

	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, bson.M{
			"run_id":      runID,
			"record_id":   rec.RecordID,
			"record":      rec.Record,
			"violations":  rec.Violations,
			"recorded_at": recordedAt,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	coll := m.Client.Database(m.Database).Collection(m.Collection)
	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return err
	}

	logger.Infof("Stored %d violation record(s) in MongoDB (run %s)", len(res.InsertedIDs), runID)
	return nil
}
