package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/models"
)

// MemoryStore keeps both collections in process and evaluates the reports
// with the same joins, filters and ordering as the Mongo pipelines. Values
// are copied on the way in and out, and dates are stored at millisecond
// precision as BSON would store them.
type MemoryStore struct {
	mu    sync.RWMutex
	users []models.User
	repos []models.Repository
	log   *zap.Logger
}

// NewMemoryStore returns an empty store.
func NewMemoryStore(log *zap.Logger) *MemoryStore {
	return &MemoryStore{log: log.With(zap.String("engine", "memory"))}
}

// ReplaceUsers mirrors drop + insertMany on "users".
func (m *MemoryStore) ReplaceUsers(_ context.Context, users []models.User) error {
	seen := make(map[int]bool, len(users))
	for _, u := range users {
		if seen[u.ID] {
			return fmt.Errorf("insert into %s: %w: %d", UsersCollection, ErrDuplicateID, u.ID)
		}
		seen[u.ID] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = slices.Clone(users)
	m.log.Info("inserted documents", zap.String("collection", UsersCollection), zap.Int("count", len(users)))
	return nil
}

// ReplaceRepositories mirrors drop + insertMany on "repositories".
func (m *MemoryStore) ReplaceRepositories(_ context.Context, repos []models.Repository) error {
	seen := make(map[int]bool, len(repos))
	copied := make([]models.Repository, len(repos))
	for i, r := range repos {
		if seen[r.ID] {
			return fmt.Errorf("insert into %s: %w: %d", RepositoriesCollection, ErrDuplicateID, r.ID)
		}
		seen[r.ID] = true
		copied[i] = cloneRepository(r)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.repos = copied
	m.log.Info("inserted documents", zap.String("collection", RepositoriesCollection), zap.Int("count", len(repos)))
	return nil
}

// ListUsers returns every user ordered by ID.
func (m *MemoryStore) ListUsers(context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := slices.Clone(m.users)
	if users == nil {
		users = []models.User{}
	}
	slices.SortFunc(users, func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) })
	return users, nil
}

// ListRepositories returns every repository ordered by ID.
func (m *MemoryStore) ListRepositories(context.Context) ([]models.Repository, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	repos := make([]models.Repository, len(m.repos))
	for i, r := range m.repos {
		repos[i] = cloneRepository(r)
	}
	slices.SortFunc(repos, func(a, b models.Repository) int { return cmp.Compare(a.ID, b.ID) })
	return repos, nil
}

func (m *MemoryStore) userIndex() map[int]models.User {
	idx := make(map[int]models.User, len(m.users))
	for _, u := range m.users {
		idx[u.ID] = u
	}
	return idx
}

// CommitAuthors lists multi-file commits with their author's username.
// Commits whose author is not a known user are dropped.
func (m *MemoryStore) CommitAuthors(context.Context) ([]models.CommitAuthor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := m.userIndex()
	out := []models.CommitAuthor{}
	for _, r := range m.repos {
		for _, c := range r.Commits {
			if len(c.ChangedFiles) < 2 {
				continue
			}
			author, ok := users[c.AuthorID]
			if !ok {
				continue
			}
			out = append(out, models.CommitAuthor{
				RepositoryName: r.Name,
				CommitHash:     c.Hash,
				CommitMessage:  c.Message,
				AuthorUsername: author.Username,
				Timestamp:      c.Timestamp,
			})
		}
	}

	slices.SortFunc(out, func(a, b models.CommitAuthor) int {
		return cmp.Or(
			cmp.Compare(a.RepositoryName, b.RepositoryName),
			a.Timestamp.Compare(b.Timestamp),
			cmp.Compare(a.CommitHash, b.CommitHash),
		)
	})
	return out, nil
}

// ActiveUsers lists users who authored a commit or reported a bug, once each.
func (m *MemoryStore) ActiveUsers(context.Context) ([]models.ActiveUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make(map[int]struct{})
	for _, r := range m.repos {
		for _, c := range r.Commits {
			ids[c.AuthorID] = struct{}{}
		}
		for _, is := range r.Issues {
			if is.IssueType == models.IssueTypeBug {
				ids[is.ReporterID] = struct{}{}
			}
		}
	}

	users := m.userIndex()
	out := []models.ActiveUser{}
	for id := range ids {
		if u, ok := users[id]; ok {
			out = append(out, models.ActiveUser{Username: u.Username, Email: u.Email})
		}
	}

	slices.SortFunc(out, func(a, b models.ActiveUser) int {
		return cmp.Or(cmp.Compare(a.Username, b.Username), cmp.Compare(a.Email, b.Email))
	})
	return out, nil
}

// RepositoryBugs lists the bugs filed against repository repoID.
func (m *MemoryStore) RepositoryBugs(_ context.Context, repoID int) ([]models.BugIssue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.BugIssue{}
	for _, r := range m.repos {
		if r.ID != repoID {
			continue
		}
		for _, is := range r.Issues {
			if is.IssueType != models.IssueTypeBug {
				continue
			}
			out = append(out, models.BugIssue{
				IssueID:   is.IssueID,
				Title:     is.Title,
				Status:    is.Status,
				Severity:  is.Severity,
				CreatedAt: is.CreatedAt,
			})
		}
	}

	slices.SortFunc(out, func(a, b models.BugIssue) int { return cmp.Compare(a.IssueID, b.IssueID) })
	return out, nil
}

// CommitPairs lists ordered commit pairs of the same repository where the
// second commit is strictly later than the first and less than window after it.
func (m *MemoryStore) CommitPairs(_ context.Context, window time.Duration) ([]models.CommitPair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.CommitPair{}
	for _, r := range m.repos {
		for _, c1 := range r.Commits {
			for _, c2 := range r.Commits {
				gap := c2.Timestamp.Sub(c1.Timestamp)
				if gap <= 0 || gap >= window {
					continue
				}
				out = append(out, models.CommitPair{
					RepositoryName:   r.Name,
					Commit1Hash:      c1.Hash,
					Commit1Timestamp: c1.Timestamp,
					Commit2Hash:      c2.Hash,
					Commit2Timestamp: c2.Timestamp,
				})
			}
		}
	}

	slices.SortFunc(out, func(a, b models.CommitPair) int {
		return cmp.Or(
			cmp.Compare(a.RepositoryName, b.RepositoryName),
			a.Commit1Timestamp.Compare(b.Commit1Timestamp),
			a.Commit2Timestamp.Compare(b.Commit2Timestamp),
			cmp.Compare(a.Commit1Hash, b.Commit1Hash),
			cmp.Compare(a.Commit2Hash, b.Commit2Hash),
		)
	})
	return out, nil
}

// IssueRollup counts issues per (repository, status), per repository and in
// total. With no issues at all it returns no rows, not a zero grand total.
func (m *MemoryStore) IssueRollup(context.Context) ([]models.IssueCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type key struct{ repo, status string }
	byStatus := make(map[key]int)
	byRepo := make(map[string]int)
	total := 0
	for _, r := range m.repos {
		for _, is := range r.Issues {
			byStatus[key{r.Name, is.Status}]++
			byRepo[r.Name]++
			total++
		}
	}

	out := []models.IssueCount{}
	if total == 0 {
		return out, nil
	}
	for k, n := range byStatus {
		out = append(out, models.IssueCount{RepositoryName: k.repo, Status: k.status, Count: n})
	}
	for name, n := range byRepo {
		out = append(out, models.IssueCount{RepositoryName: name, Status: models.AllStatuses, Count: n})
	}
	out = append(out, models.IssueCount{RepositoryName: models.GrandTotal, Status: models.AllStatuses, Count: total})

	slices.SortFunc(out, func(a, b models.IssueCount) int {
		return cmp.Or(cmp.Compare(a.RepositoryName, b.RepositoryName), cmp.Compare(a.Status, b.Status))
	})
	return out, nil
}

func cloneRepository(r models.Repository) models.Repository {
	out := r
	out.CreatedAt = millis(r.CreatedAt)

	out.Commits = make([]models.Commit, len(r.Commits))
	for i, c := range r.Commits {
		c.ChangedFiles = slices.Clone(c.ChangedFiles)
		c.Timestamp = millis(c.Timestamp)
		out.Commits[i] = c
	}

	out.Issues = make([]models.Issue, len(r.Issues))
	for i, is := range r.Issues {
		is.CreatedAt = millis(is.CreatedAt)
		is.Comments = slices.Clone(is.Comments)
		for j := range is.Comments {
			is.Comments[j].CreatedAt = millis(is.Comments[j].CreatedAt)
		}
		out.Issues[i] = is
	}
	return out
}
