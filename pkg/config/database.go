package config

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds the database connection
type DB struct {
	Client *mongo.Client
	Name   string
}

// InitDB initializes and returns the database connection
func InitDB(cfg *Config) (*DB, error) {
	client, err := initMongo(cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	return &DB{Client: client, Name: cfg.MongoDB}, nil
}

// Database returns the application database handle.
func (db *DB) Database() *mongo.Database {
	return db.Client.Database(db.Name)
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Client.Disconnect(ctx); err != nil {
		slog.Error("error closing mongo connection", "err", err)
	}
}
