// Package docstore connects to MongoDB and hands out the cats collection.
package docstore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/taskdb/taskdb/internal/config"
	"github.com/taskdb/taskdb/internal/errs"
)

// Store wraps a connected client and the configured collection names.
type Store struct {
	Client *mongo.Client
	cfg    config.MongoConfig
	log    *zerolog.Logger
}

// New connects to cfg.URI. The driver connects lazily, so New pings the
// primary to surface connectivity problems right away.
func New(ctx context.Context, cfg config.MongoConfig, logger *zerolog.Logger) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errs.NewUnavailableError("Could not connect to MongoDB", err)
	}

	s := &Store{Client: client, cfg: cfg, log: logger}
	if _, err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info().Str("database", cfg.Database).Msg("connected to mongodb")
	return s, nil
}

// Ping runs the admin ping command and returns its reply ({ok: 1}).
func (s *Store) Ping(ctx context.Context) (bson.M, error) {
	var reply bson.M
	err := s.Client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Decode(&reply)
	if err != nil {
		return nil, errs.NewUnavailableError("MongoDB did not answer ping", err)
	}
	if err := s.Client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errs.NewUnavailableError("MongoDB primary is not reachable", err)
	}
	return reply, nil
}

// DatabaseNames lists the databases visible to the connected user.
func (s *Store) DatabaseNames(ctx context.Context) ([]string, error) {
	names, err := s.Client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing databases: %w", err)
	}
	return names, nil
}

// Cats returns the cats collection after making sure the unique index
// on name exists. CreateOne is a no-op when the index is already there.
func (s *Store) Cats(ctx context.Context) (*mongo.Collection, error) {
	coll := s.Client.Database(s.cfg.Database).Collection(s.cfg.Collection)
	if err := EnsureNameIndex(ctx, coll); err != nil {
		return nil, err
	}
	return coll, nil
}

// EnsureNameIndex creates the unique ascending index on name.
func EnsureNameIndex(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return fmt.Errorf("creating unique index on %s.name: %w", coll.Name(), err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	s.log.Info().Msg("closing mongodb client")
	return s.Client.Disconnect(ctx)
}
