package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/models"
)

// RepoMongo owns the "repositories" collection and runs every report
// pipeline against it. Pipelines that join users read usersColl from the
// same database.
//
// Expected schema:
//
//	repositories
//	  { _id: int, name, owner_id, created_at,
//	    commits: [{ commit_hash, author_id, message, changed_files, timestamp }],
//	    issues:  [{ issue_id, reporter_id, title, description, status, created_at,
//	                issue_type, severity?, votes?, comments: [...] }] }
//
//	users
//	  { _id: int, username, email }
type RepoMongo struct {
	col       *mongo.Collection
	usersColl string
	log       *zap.Logger
}

// NewRepoRepository wires the collections.
func NewRepoRepository(db *mongo.Database, log *zap.Logger) *RepoMongo {
	return &RepoMongo{
		col:       db.Collection(RepositoriesCollection),
		usersColl: UsersCollection,
		log:       log.With(zap.String("collection", RepositoriesCollection)),
	}
}

// -------------------------- seeding -----------------------------------------

// ReplaceRepositories drops the collection and bulk-inserts repos.
func (r *RepoMongo) ReplaceRepositories(ctx context.Context, repos []models.Repository) error {
	docs := make([]interface{}, len(repos))
	for i, repo := range repos {
		docs[i] = repo
	}
	return replaceAll(ctx, r.col, r.log, docs)
}

// ListRepositories returns every repository ordered by _id.
func (r *RepoMongo) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find repositories: %w", err)
	}
	defer cur.Close(ctx)

	repos := []models.Repository{}
	if err := cur.All(ctx, &repos); err != nil {
		return nil, fmt.Errorf("decode repositories: %w", err)
	}
	r.log.Debug("listed repositories", zap.Int("count", len(repos)))
	return repos, nil
}

// -------------------------- reports -----------------------------------------

// CommitAuthors lists multi-file commits with their author's username.
func (r *RepoMongo) CommitAuthors(ctx context.Context) ([]models.CommitAuthor, error) {
	return aggregate[models.CommitAuthor](ctx, r, "commit-authors", CommitAuthorsPipeline(r.usersColl))
}

// ActiveUsers lists users who authored a commit or reported a bug.
func (r *RepoMongo) ActiveUsers(ctx context.Context) ([]models.ActiveUser, error) {
	return aggregate[models.ActiveUser](ctx, r, "active-users", ActiveUsersPipeline(r.col.Name(), r.usersColl))
}

// RepositoryBugs lists the bugs filed against repository repoID.
func (r *RepoMongo) RepositoryBugs(ctx context.Context, repoID int) ([]models.BugIssue, error) {
	return aggregate[models.BugIssue](ctx, r, "repository-bugs", RepositoryBugsPipeline(repoID))
}

// CommitPairs lists same-repository commit pairs less than window apart.
func (r *RepoMongo) CommitPairs(ctx context.Context, window time.Duration) ([]models.CommitPair, error) {
	return aggregate[models.CommitPair](ctx, r, "commit-pairs", CommitPairsPipeline(r.col.Name(), window))
}

// IssueRollup counts issues by repository and status with subtotals.
func (r *RepoMongo) IssueRollup(ctx context.Context) ([]models.IssueCount, error) {
	return aggregate[models.IssueCount](ctx, r, "issue-rollup", IssueRollupPipeline())
}

// aggregate runs pipeline on the repositories collection and decodes every
// result into T. The result is never nil.
func aggregate[T any](ctx context.Context, r *RepoMongo, report string, pipeline mongo.Pipeline) ([]T, error) {
	log := r.log.With(zap.String("report", report))
	log.Debug("running aggregation", zap.Int("stages", len(pipeline)))

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		log.Error("aggregation failed", zap.Error(err))
		return nil, fmt.Errorf("aggregate %s: %w", report, err)
	}
	defer cur.Close(ctx)

	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		log.Error("decoding aggregation results failed", zap.Error(err))
		return nil, fmt.Errorf("decode %s: %w", report, err)
	}
	log.Debug("aggregation returned", zap.Int("count", len(out)))
	return out, nil
}
