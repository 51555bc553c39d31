package app

import (
	"context"
	"fmt"
	"time"

	"github.com/familyboard/familyboard/internal/config"
	"github.com/familyboard/familyboard/internal/database"
	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/store"
	"github.com/familyboard/familyboard/internal/wish"
	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

// Storage is the opened pair of collections plus the connections behind them.
type Storage struct {
	Recipes *store.Guarded[recipe.Recipe]
	Wishes  *store.Guarded[wish.Wish]
	// Redis is set when a Redis connection was opened, for storage or for
	// the shared rate limiter.
	Redis *redis.Client

	mongo *mongo.Client
}

// OpenStorage connects the configured backend and initializes both
// collections. fs is only used by the file backend.
func OpenStorage(ctx context.Context, cfg *config.Config, fs afero.Fs) (*Storage, error) {
	s := &Storage{}
	var recipes store.Collection[recipe.Recipe]
	var wishes store.Collection[wish.Wish]

	needRedis := cfg.Storage.Backend == "redis" ||
		(cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && cfg.Redis.Host != "")
	if needRedis {
		client, err := database.Retry(ctx, "redis", connectAttempts, connectBackoff, func(ctx context.Context) (*redis.Client, error) {
			return database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		})
		switch {
		case err == nil:
			s.Redis = client
			logger.Infof("connected to Redis at %s", cfg.Redis.Addr())
		case cfg.Storage.Backend == "redis":
			return nil, err
		default:
			logger.Warnf("shared rate limiter unavailable, using in-memory limiter: %v", err)
		}
	}

	switch cfg.Storage.Backend {
	case "file":
		fr := store.NewFileCollection[recipe.Recipe](fs, cfg.Storage.DataDir, recipe.Collection)
		fw := store.NewFileCollection[wish.Wish](fs, cfg.Storage.DataDir, wish.Collection)
		for _, c := range []store.Initializer{fr, fw} {
			if err := c.Init(ctx); err != nil {
				s.Close(ctx)
				return nil, fmt.Errorf("init file storage: %w", err)
			}
		}
		logger.Infof("file storage: %s, %s", fr.Path(), fw.Path())
		recipes, wishes = fr, fw
	case "redis":
		recipes = store.NewRedisCollection[recipe.Recipe](s.Redis, cfg.Redis.Prefix, recipe.Collection)
		wishes = store.NewRedisCollection[wish.Wish](s.Redis, cfg.Redis.Prefix, wish.Collection)
		logger.Infof("redis storage: prefix %q", cfg.Redis.Prefix)
	case "mongo":
		client, err := database.Retry(ctx, "mongodb", connectAttempts, connectBackoff, func(ctx context.Context) (*mongo.Client, error) {
			return database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		})
		if err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.mongo = client
		db := client.Database(cfg.MongoDB.Database)
		recipes = store.NewMongoCollection[recipe.Recipe](db.Collection("collections"), recipe.Collection)
		wishes = store.NewMongoCollection[wish.Wish](db.Collection("collections"), wish.Collection)
		logger.Infof("mongo storage: database %q", cfg.MongoDB.Database)
	default:
		s.Close(ctx)
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	s.Recipes = store.Guard(recipes)
	s.Wishes = store.Guard(wishes)
	return s, nil
}

// Close releases backend connections.
func (s *Storage) Close(ctx context.Context) {
	if s.mongo != nil {
		if err := s.mongo.Disconnect(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
		s.mongo = nil
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warnf("redis close: %v", err)
		}
		s.Redis = nil
	}
}
