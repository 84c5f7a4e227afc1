package repository

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/database"
	"github.com/ahmednasr/repo-insights/internal/seed"
)

// liveDB connects to MONGODB_TEST_URI and returns a throwaway database that
// is dropped when the test ends.
func liveDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	client, err := database.NewMongo(context.Background(), uri, 10*time.Second)
	if err != nil {
		t.Fatalf("NewMongo: %v", err)
	}
	db := client.Database(fmt.Sprintf("repo_insights_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = database.Disconnect(client, 5*time.Second)
	})
	return db
}

func seedMongo(t *testing.T, db *mongo.Database) (*UserMongo, *RepoMongo) {
	t.Helper()
	ctx := context.Background()
	users := NewUserRepository(db, zap.NewNop())
	repos := NewRepoRepository(db, zap.NewNop())
	if err := users.ReplaceUsers(ctx, seed.Users()); err != nil {
		t.Fatalf("ReplaceUsers: %v", err)
	}
	if err := repos.ReplaceRepositories(ctx, seed.Repositories()); err != nil {
		t.Fatalf("ReplaceRepositories: %v", err)
	}
	return users, repos
}

func TestMongoSeedIsIdempotent(t *testing.T) {
	db := liveDB(t)
	ctx := context.Background()
	users, repos := seedMongo(t, db)

	firstUsers, err := users.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	firstRepos, err := repos.ListRepositories(ctx)
	if err != nil {
		t.Fatal(err)
	}

	seedMongo(t, db)
	seedMongo(t, db)

	againUsers, err := users.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	againRepos, err := repos.ListRepositories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(firstUsers, againUsers) {
		t.Errorf("users changed after reseeding:\n%+v\n%+v", firstUsers, againUsers)
	}
	if !reflect.DeepEqual(firstRepos, againRepos) {
		t.Errorf("repositories changed after reseeding")
	}

	n, err := db.Collection(RepositoriesCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(seed.Repositories())) {
		t.Errorf("repositories count = %d, want %d", n, len(seed.Repositories()))
	}
}

func TestMongoReplaceOnMissingCollection(t *testing.T) {
	db := liveDB(t)
	users := NewUserRepository(db, zap.NewNop())
	// Nothing exists yet, so the drop inside ReplaceUsers targets a missing namespace.
	if err := users.ReplaceUsers(context.Background(), seed.Users()); err != nil {
		t.Fatalf("ReplaceUsers on empty database: %v", err)
	}
}

// TestMongoMatchesMemory checks every report returns exactly what the
// in-memory engine returns over the same data.
func TestMongoMatchesMemory(t *testing.T) {
	db := liveDB(t)
	ctx := context.Background()
	_, repos := seedMongo(t, db)
	mem := seededStore(t)

	check := func(name string, gotFn, wantFn func() (interface{}, error)) {
		t.Run(name, func(t *testing.T) {
			got, err := gotFn()
			if err != nil {
				t.Fatalf("mongo: %v", err)
			}
			want, err := wantFn()
			if err != nil {
				t.Fatalf("memory: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("mongo  = %+v\nmemory = %+v", got, want)
			}
		})
	}

	check("commit-authors",
		func() (interface{}, error) { return repos.CommitAuthors(ctx) },
		func() (interface{}, error) { return mem.CommitAuthors(ctx) })
	check("active-users",
		func() (interface{}, error) { return repos.ActiveUsers(ctx) },
		func() (interface{}, error) { return mem.ActiveUsers(ctx) })
	check("repository-bugs",
		func() (interface{}, error) { return repos.RepositoryBugs(ctx, 1) },
		func() (interface{}, error) { return mem.RepositoryBugs(ctx, 1) })
	check("repository-bugs-unknown",
		func() (interface{}, error) { return repos.RepositoryBugs(ctx, 99) },
		func() (interface{}, error) { return mem.RepositoryBugs(ctx, 99) })
	check("commit-pairs",
		func() (interface{}, error) { return repos.CommitPairs(ctx, 5*time.Minute) },
		func() (interface{}, error) { return mem.CommitPairs(ctx, 5*time.Minute) })
	check("commit-pairs-wide",
		func() (interface{}, error) { return repos.CommitPairs(ctx, time.Hour) },
		func() (interface{}, error) { return mem.CommitPairs(ctx, time.Hour) })
	check("issue-rollup",
		func() (interface{}, error) { return repos.IssueRollup(ctx) },
		func() (interface{}, error) { return mem.IssueRollup(ctx) })
}
