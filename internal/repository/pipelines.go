package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahmednasr/repo-insights/internal/models"
)

// CommitAuthorsPipeline runs on the repositories collection. It keeps commits
// with at least two changed files and joins each to its author in usersColl.
func CommitAuthorsPipeline(usersColl string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$commits"}},
		// changed_files.1 exists only when the array has a second element.
		{{Key: "$match", Value: bson.D{
			{Key: "commits.changed_files.1", Value: bson.D{{Key: "$exists", Value: true}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersColl},
			{Key: "localField", Value: "commits.author_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: "$author"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "repository_name", Value: "$name"},
			{Key: "commit_hash", Value: "$commits.commit_hash"},
			{Key: "commit_message", Value: "$commits.message"},
			{Key: "author_username", Value: "$author.username"},
			{Key: "timestamp", Value: "$commits.timestamp"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "repository_name", Value: 1},
			{Key: "timestamp", Value: 1},
			{Key: "commit_hash", Value: 1},
		}}},
	}
}

// ActiveUsersPipeline runs on reposColl. Commit authors are unioned with bug
// reporters, grouped by id and resolved against usersColl.
func ActiveUsersPipeline(reposColl, usersColl string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$commits"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "user_id", Value: "$commits.author_id"},
		}}},
		{{Key: "$unionWith", Value: bson.D{
			{Key: "coll", Value: reposColl},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$unwind", Value: "$issues"}},
				bson.D{{Key: "$match", Value: bson.D{{Key: "issues.issue_type", Value: models.IssueTypeBug}}}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: 0},
					{Key: "user_id", Value: "$issues.reporter_id"},
				}}},
			}},
		}}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$user_id"}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersColl},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: "$user"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "username", Value: "$user.username"},
			{Key: "email", Value: "$user.email"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "username", Value: 1}}}},
	}
}

// RepositoryBugsPipeline lists the bug-type issues of one repository.
func RepositoryBugsPipeline(repoID int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: repoID}}}},
		{{Key: "$unwind", Value: "$issues"}},
		{{Key: "$match", Value: bson.D{{Key: "issues.issue_type", Value: models.IssueTypeBug}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "issue_id", Value: "$issues.issue_id"},
			{Key: "title", Value: "$issues.title"},
			{Key: "status", Value: "$issues.status"},
			{Key: "severity", Value: "$issues.severity"},
			{Key: "created_at", Value: "$issues.created_at"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "issue_id", Value: 1}}}},
	}
}

// CommitPairsPipeline self-joins reposColl: every unwound commit c1 looks
// up the commits c2 of its own repository with 0 < c2 - c1 < window.
// Subtracting two BSON dates yields milliseconds.
func CommitPairsPipeline(reposColl string, window time.Duration) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$commits"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: reposColl},
			{Key: "let", Value: bson.D{
				{Key: "repo_id", Value: "$_id"},
				{Key: "t1", Value: "$commits.timestamp"},
			}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$eq", Value: bson.A{"$_id", "$$repo_id"}},
				}}}}},
				bson.D{{Key: "$unwind", Value: "$commits"}},
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
					{Key: "$and", Value: bson.A{
						bson.D{{Key: "$gt", Value: bson.A{"$commits.timestamp", "$$t1"}}},
						bson.D{{Key: "$lt", Value: bson.A{
							bson.D{{Key: "$subtract", Value: bson.A{"$commits.timestamp", "$$t1"}}},
							window.Milliseconds(),
						}}},
					}},
				}}}}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "_id", Value: 0},
					{Key: "commit_hash", Value: "$commits.commit_hash"},
					{Key: "timestamp", Value: "$commits.timestamp"},
				}}},
			}},
			{Key: "as", Value: "later"},
		}}},
		{{Key: "$unwind", Value: "$later"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "repository_name", Value: "$name"},
			{Key: "commit1_hash", Value: "$commits.commit_hash"},
			{Key: "commit1_timestamp", Value: "$commits.timestamp"},
			{Key: "commit2_hash", Value: "$later.commit_hash"},
			{Key: "commit2_timestamp", Value: "$later.timestamp"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "repository_name", Value: 1},
			{Key: "commit1_timestamp", Value: 1},
			{Key: "commit2_timestamp", Value: 1},
			{Key: "commit1_hash", Value: 1},
			{Key: "commit2_hash", Value: 1},
		}}},
	}
}

// IssueRollupPipeline counts issues per (repository, status), per repository
// and overall. The three groupings run as $facet branches and are merged back
// into one stream; missing group keys become the rollup labels.
func IssueRollupPipeline() mongo.Pipeline {
	count := bson.D{{Key: "$sum", Value: 1}}
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$issues"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "repository_name", Value: "$name"},
			{Key: "status", Value: "$issues.status"},
		}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "by_status", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: bson.D{
						{Key: "repository_name", Value: "$repository_name"},
						{Key: "status", Value: "$status"},
					}},
					{Key: "count", Value: count},
				}}},
			}},
			{Key: "by_repository", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: bson.D{{Key: "repository_name", Value: "$repository_name"}}},
					{Key: "count", Value: count},
				}}},
			}},
			{Key: "total", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: nil},
					{Key: "count", Value: count},
				}}},
			}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "rows", Value: bson.D{{Key: "$concatArrays", Value: bson.A{"$by_status", "$by_repository", "$total"}}}},
		}}},
		{{Key: "$unwind", Value: "$rows"}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$rows"}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "repository_name", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$_id.repository_name", models.GrandTotal}}}},
			{Key: "status", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$_id.status", models.AllStatuses}}}},
			{Key: "count", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "repository_name", Value: 1},
			{Key: "status", Value: 1},
		}}},
	}
}
