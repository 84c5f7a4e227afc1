package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/models"
	"github.com/ahmednasr/repo-insights/internal/seed"
)

// ---- Repository contracts --------------------------------------------------

// UserRepository replaces and lists the users collection.
type UserRepository interface {
	ReplaceUsers(ctx context.Context, users []models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// RepositoryRepository replaces and lists the repositories collection.
type RepositoryRepository interface {
	ReplaceRepositories(ctx context.Context, repos []models.Repository) error
	ListRepositories(ctx context.Context) ([]models.Repository, error)
}

// ---- Service interface + implementation ------------------------------------

// SeedSummary reports how many documents a Seed call loaded.
type SeedSummary struct {
	Users        int `json:"users"`
	Repositories int `json:"repositories"`
}

// Snapshot is the full content of both collections.
type Snapshot struct {
	Users        []models.User       `json:"users"`
	Repositories []models.Repository `json:"repositories"`
}

// SeedService loads the fixed dataset and reads it back.
type SeedService interface {
	// Seed drops both collections and reloads them. Running it any number of
	// times leaves the same contents as running it once.
	Seed(ctx context.Context) (SeedSummary, error)
	List(ctx context.Context) (Snapshot, error)
}

type seedService struct {
	users UserRepository
	repos RepositoryRepository
	log   *zap.Logger
}

// NewSeedService wires the repositories.
func NewSeedService(users UserRepository, repos RepositoryRepository, log *zap.Logger) SeedService {
	return &seedService{users: users, repos: repos, log: log}
}

// Seed replaces users first, then repositories.
func (s *seedService) Seed(ctx context.Context) (SeedSummary, error) {
	users := seed.Users()
	repos := seed.Repositories()

	s.log.Info("seeding collections", zap.Int("users", len(users)), zap.Int("repositories", len(repos)))

	if err := s.users.ReplaceUsers(ctx, users); err != nil {
		return SeedSummary{}, fmt.Errorf("seed users: %w", err)
	}
	if err := s.repos.ReplaceRepositories(ctx, repos); err != nil {
		return SeedSummary{}, fmt.Errorf("seed repositories: %w", err)
	}

	return SeedSummary{Users: len(users), Repositories: len(repos)}, nil
}

// List returns every user and repository.
func (s *seedService) List(ctx context.Context) (Snapshot, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list users: %w", err)
	}
	repos, err := s.repos.ListRepositories(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list repositories: %w", err)
	}
	return Snapshot{Users: users, Repositories: repos}, nil
}
