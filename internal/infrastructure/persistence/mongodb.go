package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"messenger-client/internal/infrastructure/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoTimeout = 10 * time.Second

// MongoOptions describes where the attachment reuse store lives.
type MongoOptions struct {
	URI      string
	Database string
	Username string
	Password string
	// Timeout bounds connect and ping. Zero means 10s.
	Timeout time.Duration
}

// MongoOptionsFromConfig picks the Mongo fields out of the app config.
func MongoOptionsFromConfig(cfg *config.Config) MongoOptions {
	return MongoOptions{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDB,
		Username: cfg.MongoUser,
		Password: cfg.MongoPassword,
	}
}

func (o MongoOptions) validate() error {
	if o.URI == "" {
		return errors.New("mongodb uri is required")
	}
	if o.Database == "" {
		return errors.New("mongodb database name is required")
	}
	return nil
}

// clientOptions only sets credentials when both parts are present, so a URI
// that already embeds them is left untouched.
func (o MongoOptions) clientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(o.URI).SetAppName("messenger-client")
	if o.Username != "" && o.Password != "" {
		opts.SetAuth(options.Credential{
			Username: o.Username,
			Password: o.Password,
		})
	}
	return opts
}

func (o MongoOptions) timeout() time.Duration {
	if o.Timeout <= 0 {
		return defaultMongoTimeout
	}
	return o.Timeout
}

// MongoStore is a connected client plus the database holding reuse records.
type MongoStore struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, o MongoOptions) (*MongoStore, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout())
	defer cancel()

	client, err := mongo.Connect(ctx, o.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{Client: client, Database: client.Database(o.Database)}, nil
}
