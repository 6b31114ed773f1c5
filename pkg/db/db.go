package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"api-security-news/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client and the collection that archives curated items
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// storedItem is the archived form of a curated item
type storedItem struct {
	domain.NewsItem `bson:",inline"`
	CuratedAt       time.Time `bson:"curated_at"`
	RunID           string    `bson:"run_id,omitempty"`
}

// NewClient creates a new database client
func NewClient(connectionString, databaseName, collectionName string) *Client {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &Client{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &Client{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB
func (c *Client) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// Publish implements Mirror by upserting the curated items
func (c *Client) Publish(ctx context.Context, result *domain.CurationResult) error {
	return c.SaveItems(ctx, result.Items, result.GeneratedAt, result.RunID)
}

// SaveItems upserts items keyed by link. Items without a link cannot be keyed and are skipped.
func (c *Client) SaveItems(ctx context.Context, items []domain.NewsItem, curatedAt time.Time, runID string) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	models := make([]mongo.WriteModel, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			log.Printf("Mongo: skipping item without link: %q", item.Title)
			continue
		}
		doc := storedItem{NewsItem: item, CuratedAt: curatedAt, RunID: runID}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"link": item.Link}).
			SetUpdate(bson.M{"$set": doc}).
			SetUpsert(true))
	}
	if len(models) == 0 {
		return nil
	}

	res, err := c.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to upsert items: %w", err)
	}

	log.Printf("Mongo: upserted %d, modified %d items", res.UpsertedCount, res.ModifiedCount)
	return nil
}
