// Package seed holds the fixed sample dataset loaded on every run.
//
// Each call returns freshly built values, so callers may mutate what they get.
package seed

import (
	"time"

	"github.com/ahmednasr/repo-insights/internal/models"
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

// Users returns the seeded users ordered by ID.
func Users() []models.User {
	return []models.User{
		{ID: 1, Username: "alice", Email: "alice@example.com"},
		{ID: 2, Username: "bob", Email: "bob@example.com"},
		{ID: 3, Username: "carol", Email: "carol@example.com"},
		{ID: 4, Username: "dave", Email: "dave@example.com"},
	}
}

// Repositories returns the seeded repositories ordered by ID.
func Repositories() []models.Repository {
	return []models.Repository{
		{
			ID:        1,
			Name:      "project-alpha",
			OwnerID:   1,
			CreatedAt: at(2023, time.January, 10, 9, 0),
			Commits: []models.Commit{
				{
					Hash:         "a1b2c3d4",
					AuthorID:     1,
					Message:      "Initial commit",
					ChangedFiles: []string{"README.md", "main.go"},
					Timestamp:    at(2023, time.January, 15, 14, 0),
				},
				{
					Hash:         "e5f6g7h8",
					AuthorID:     2,
					Message:      "Add user model",
					ChangedFiles: []string{"models/user.go"},
					Timestamp:    at(2023, time.January, 15, 14, 30),
				},
				{
					Hash:         "i9j0k1l2",
					AuthorID:     1,
					Message:      "Validate user email",
					ChangedFiles: []string{"models/user.go", "models/user_test.go"},
					Timestamp:    at(2023, time.January, 15, 14, 34),
				},
			},
			Issues: []models.Issue{
				{
					IssueID:     1,
					ReporterID:  2,
					Title:       "Login fails with empty password",
					Description: "Submitting the login form with an empty password returns a 500.",
					Status:      models.StatusOpen,
					CreatedAt:   at(2023, time.January, 16, 10, 0),
					IssueType:   models.IssueTypeBug,
					Severity:    "medium",
					Comments: []models.Comment{
						{CommentID: 1, AuthorID: 1, Content: "Reproduced on main.", CreatedAt: at(2023, time.January, 16, 11, 0)},
						{CommentID: 2, AuthorID: 2, Content: "Stack trace attached.", CreatedAt: at(2023, time.January, 16, 11, 20)},
					},
				},
				{
					IssueID:     2,
					ReporterID:  3,
					Title:       "Dark mode",
					Description: "Add a dark theme to the dashboard.",
					Status:      models.StatusOpen,
					CreatedAt:   at(2023, time.January, 18, 15, 45),
					IssueType:   models.IssueTypeFeatureRequest,
					Votes:       12,
					Comments: []models.Comment{
						{CommentID: 3, AuthorID: 4, Content: "+1, my eyes hurt.", CreatedAt: at(2023, time.January, 19, 8, 5)},
					},
				},
			},
		},
		{
			ID:        2,
			Name:      "project-beta",
			OwnerID:   2,
			CreatedAt: at(2023, time.February, 1, 12, 0),
			Commits: []models.Commit{
				{
					Hash:         "m3n4o5p6",
					AuthorID:     3,
					Message:      "Bootstrap service",
					ChangedFiles: []string{"go.mod", "cmd/main.go", "README.md"},
					Timestamp:    at(2023, time.February, 5, 9, 0),
				},
				{
					Hash:         "q7r8s9t0",
					AuthorID:     2,
					Message:      "Update docs",
					ChangedFiles: []string{"README.md"},
					Timestamp:    at(2023, time.February, 5, 9, 10),
				},
			},
			Issues: []models.Issue{
				{
					IssueID:     3,
					ReporterID:  1,
					Title:       "Crash on startup",
					Description: "Service panics when the config file is missing.",
					Status:      models.StatusClosed,
					CreatedAt:   at(2023, time.February, 6, 13, 30),
					IssueType:   models.IssueTypeBug,
					Severity:    "high",
					Comments: []models.Comment{
						{CommentID: 4, AuthorID: 3, Content: "Fixed by falling back to defaults.", CreatedAt: at(2023, time.February, 7, 9, 0)},
					},
				},
			},
		},
	}
}
