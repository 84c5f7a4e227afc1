package cli

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/config"
	"github.com/ahmednasr/repo-insights/internal/database"
	"github.com/ahmednasr/repo-insights/internal/repository"
	"github.com/ahmednasr/repo-insights/internal/service"
)

// stores bundles the repositories behind the configured engine.
type stores struct {
	users   service.UserRepository
	repos   service.RepositoryRepository
	reports service.ReportRepository
	client  *mongo.Client
	close   func()
}

// openStores connects to MongoDB or builds an in-memory engine. An in-memory
// engine starts empty in every process, so it is seeded right away; commands
// that only read still see the dataset.
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*stores, error) {
	if cfg.Engine == config.EngineMemory {
		mem := repository.NewMemoryStore(log)
		if _, err := service.NewSeedService(mem, mem, log).Seed(ctx); err != nil {
			return nil, err
		}
		return &stores{users: mem, repos: mem, reports: mem, close: func() {}}, nil
	}

	client, err := database.NewMongo(ctx, cfg.MongoURI, cfg.ConnectTimeout())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBName, err)
	}
	log.Info("connected to mongo", zap.String("db", cfg.DBName))

	db := client.Database(cfg.DBName)
	repoRepo := repository.NewRepoRepository(db, log)
	return &stores{
		users:   repository.NewUserRepository(db, log),
		repos:   repoRepo,
		reports: repoRepo,
		client:  client,
		close: func() {
			if err := database.Disconnect(client, cfg.ConnectTimeout()); err != nil {
				log.Warn("disconnect failed", zap.Error(err))
			}
		},
	}, nil
}
