package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/models"
	"github.com/ahmednasr/repo-insights/internal/repository"
	"github.com/ahmednasr/repo-insights/internal/seed"
)

func TestSeedAndList(t *testing.T) {
	store := repository.NewMemoryStore(zap.NewNop())
	svc := NewSeedService(store, store, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		summary, err := svc.Seed(ctx)
		if err != nil {
			t.Fatalf("Seed #%d: %v", i+1, err)
		}
		if summary.Users != 4 || summary.Repositories != 2 {
			t.Errorf("summary = %+v, want 4 users and 2 repositories", summary)
		}
	}

	snap, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snap.Users) != len(seed.Users()) {
		t.Errorf("users = %d, want %d", len(snap.Users), len(seed.Users()))
	}
	for i, u := range snap.Users {
		if u.ID != i+1 {
			t.Errorf("users[%d].ID = %d, want %d", i, u.ID, i+1)
		}
	}
	if len(snap.Repositories) != 2 || snap.Repositories[0].Name != "project-alpha" {
		t.Errorf("repositories = %+v", snap.Repositories)
	}
}

type brokenUsers struct{}

var errDown = errors.New("server down")

func (brokenUsers) ReplaceUsers(context.Context, []models.User) error { return errDown }
func (brokenUsers) ListUsers(context.Context) ([]models.User, error)  { return nil, errDown }

func TestSeedStopsOnUserFailure(t *testing.T) {
	store := repository.NewMemoryStore(zap.NewNop())
	svc := NewSeedService(brokenUsers{}, store, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Seed(ctx); !errors.Is(err, errDown) {
		t.Fatalf("Seed = %v, want errDown", err)
	}
	repos, err := store.ListRepositories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(repos) != 0 {
		t.Errorf("repositories seeded after users failed: %d", len(repos))
	}
	if _, err := svc.List(ctx); !errors.Is(err, errDown) {
		t.Errorf("List = %v, want errDown", err)
	}
}
