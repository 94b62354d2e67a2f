package app

import (
	"context"
	"errors"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/config"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/db"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/redis"
)

type Infra struct {
	DB    *db.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureIndexes(ctx, database.Database); err != nil {
		_ = database.Close(context.Background())
		return nil, err
	}

	logger.Info("database ready", map[string]any{
		"database": cfg.MongoDatabase,
	})

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		_ = database.Close(context.Background())
		return nil, err
	}

	logger.Info("redis ready", map[string]any{
		"addr": cfg.RedisAddr,
	})

	return &Infra{
		DB:    database,
		Redis: redisClient,
	}, nil
}

// Close releases Redis and Mongo, reporting both failures.
func (i *Infra) Close(ctx context.Context) error {
	return errors.Join(
		i.Redis.Close(),
		i.DB.Close(ctx),
	)
}

// EnsureIndexes connects to the document store only long enough to build
// the indexes.
func EnsureIndexes(ctx context.Context, cfg config.Config) error {
	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer database.Close(context.Background())

	return db.EnsureIndexes(ctx, database.Database)
}
