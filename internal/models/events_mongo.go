package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	if dbName == "" {
		dbName = EventsDbName
	}
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

// eventDocument carries the ObjectID next to the inlined event fields.
type eventDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Event `bson:",inline"`
}

func (d *eventDocument) toEvent() *Event {
	e := d.Event
	e.ID = d.ID.Hex()
	return &e
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(dbName).Collection(colName), nil
}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	doc := eventDocument{
		ID:    primitive.NewObjectID(),
		Event: *event,
	}
	doc.Stamp(time.Now())

	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert event into database: %w", err)
	}
	return doc.toEvent(), nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]*Event, 0)
	for cursor.Next(ctx) {
		var doc eventDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding event: %w", err)
		}
		events = append(events, doc.toEvent())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id string) (*Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEventNotFound
	}
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var doc eventDocument
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("error finding event by ID: %w", err)
	}
	return doc.toEvent(), nil
}

// DeleteEvent removes one event. An id that is not a valid ObjectID cannot
// match any document and is reported as not found.
func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrEventNotFound
	}
	col, err := mdb.GetCollection(ctx, mdb.dbName, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Close is a no-op; the client is owned and disconnected by connect.
func (mdb *MongodbRepo) Close(ctx context.Context) error {
	return nil
}
