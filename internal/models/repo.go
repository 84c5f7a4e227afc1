package models

import "time"

// Issue types and statuses used by the seed data and the reports.
const (
	IssueTypeBug            = "bug"
	IssueTypeFeatureRequest = "feature_request"

	StatusOpen   = "open"
	StatusClosed = "closed"
)

// User is a document in the "users" collection.
type User struct {
	ID       int    `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
}

// Repository is a document in the "repositories" collection. Commits and
// issues are embedded; OwnerID references User.ID but nothing enforces it.
type Repository struct {
	ID        int       `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	OwnerID   int       `bson:"owner_id" json:"owner_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Commits   []Commit  `bson:"commits" json:"commits"`
	Issues    []Issue   `bson:"issues" json:"issues"`
}

// Commit is embedded in Repository.
type Commit struct {
	Hash         string    `bson:"commit_hash" json:"commit_hash"`
	AuthorID     int       `bson:"author_id" json:"author_id"`
	Message      string    `bson:"message" json:"message"`
	ChangedFiles []string  `bson:"changed_files" json:"changed_files"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"`
}

// Issue is embedded in Repository. Severity is only set on bugs and Votes
// only on feature requests.
type Issue struct {
	IssueID     int       `bson:"issue_id" json:"issue_id"`
	ReporterID  int       `bson:"reporter_id" json:"reporter_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Status      string    `bson:"status" json:"status"` // open | closed
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	IssueType   string    `bson:"issue_type" json:"issue_type"` // bug | feature_request
	Severity    string    `bson:"severity,omitempty" json:"severity,omitempty"`
	Votes       int       `bson:"votes,omitempty" json:"votes,omitempty"`
	Comments    []Comment `bson:"comments" json:"comments"`
}

// Comment is embedded in Issue.
type Comment struct {
	CommentID int       `bson:"comment_id" json:"comment_id"`
	AuthorID  int       `bson:"author_id" json:"author_id"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
