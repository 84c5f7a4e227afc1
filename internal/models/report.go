package models

import "time"

// Labels emitted by the issue rollup for subtotal and grand-total rows.
const (
	AllStatuses = "All Statuses"
	GrandTotal  = "Grand Total"
)

// CommitAuthor is a row of the commit-authors report.
type CommitAuthor struct {
	RepositoryName string    `bson:"repository_name" json:"repository_name"`
	CommitHash     string    `bson:"commit_hash" json:"commit_hash"`
	CommitMessage  string    `bson:"commit_message" json:"commit_message"`
	AuthorUsername string    `bson:"author_username" json:"author_username"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}

// ActiveUser is a row of the active-users report.
type ActiveUser struct {
	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
}

// BugIssue is a row of the repository-bugs report.
type BugIssue struct {
	IssueID   int       `bson:"issue_id" json:"issue_id"`
	Title     string    `bson:"title" json:"title"`
	Status    string    `bson:"status" json:"status"`
	Severity  string    `bson:"severity,omitempty" json:"severity,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// CommitPair is a row of the commit-pairs report: Commit2 landed after
// Commit1 in the same repository, within the window.
type CommitPair struct {
	RepositoryName   string    `bson:"repository_name" json:"repository_name"`
	Commit1Hash      string    `bson:"commit1_hash" json:"commit1_hash"`
	Commit1Timestamp time.Time `bson:"commit1_timestamp" json:"commit1_timestamp"`
	Commit2Hash      string    `bson:"commit2_hash" json:"commit2_hash"`
	Commit2Timestamp time.Time `bson:"commit2_timestamp" json:"commit2_timestamp"`
}

// IssueCount is a row of the issue rollup. Subtotals carry Status ==
// AllStatuses; the grand total also carries RepositoryName == GrandTotal.
type IssueCount struct {
	RepositoryName string `bson:"repository_name" json:"repository_name"`
	Status         string `bson:"status" json:"status"`
	Count          int    `bson:"count" json:"count"`
}
