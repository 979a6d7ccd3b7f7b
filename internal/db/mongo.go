package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	ColUsers     = "usuarios"
	ColBikes     = "bicicletas"
	ColAuditLogs = "audit_logs"
)

var client *mongo.Client

// Connect initializes the process-wide client. Called once from main.
func Connect(uri string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("mongo connect failed: %v", err)
	}
	if err := c.Ping(ctx, nil); err != nil {
		log.Fatalf("mongo ping failed: %v", err)
	}
	client = c
}

func GetCollection(dbName, name string) *mongo.Collection {
	return client.Database(dbName).Collection(name)
}

func Disconnect(ctx context.Context) error {
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on: the unique
// tax id on users and the embedded loan id lookup on bikes.
func EnsureIndexes(ctx context.Context, dbName string) error {
	users := GetCollection(dbName, ColUsers)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tax_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	bikes := GetCollection(dbName, ColBikes)
	_, err = bikes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "loan._id", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	return err
}
