package journal

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo wraps the MongoDB client and the events collection
type Mongo struct {
	mongoClient *mongo.Client
	collection  *mongo.Collection
}

// NewMongo creates a new MongoDB journal
func NewMongo(connectionString, databaseName, collectionName string) *Mongo {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Mongo{}
	}

	return &Mongo{
		mongoClient: mongoClient,
		collection:  mongoClient.Database(databaseName).Collection(collectionName),
	}
}

// Connect verifies the connection to MongoDB
func (m *Mongo) Connect(ctx context.Context) error {
	if m.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return m.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (m *Mongo) Close(ctx context.Context) error {
	if m.mongoClient == nil {
		return nil
	}
	return m.mongoClient.Disconnect(ctx)
}

// Record inserts one event document
func (m *Mongo) Record(ctx context.Context, evt Event) error {
	if m.collection == nil {
		return fmt.Errorf("collection not initialized")
	}
	if _, err := m.collection.InsertOne(ctx, evt); err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Recent returns the newest events first
func (m *Mongo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if m.collection == nil {
		return nil, fmt.Errorf("collection not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 0})

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return events, nil
}
