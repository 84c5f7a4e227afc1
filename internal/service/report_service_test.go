package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/models"
	"github.com/ahmednasr/repo-insights/internal/repository"
)

func seededReports(t *testing.T, opts ReportOptions) ReportService {
	t.Helper()
	store := repository.NewMemoryStore(zap.NewNop())
	if _, err := NewSeedService(store, store, zap.NewNop()).Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return NewReportService(store, opts, zap.NewNop())
}

func reportNames(reports []Report) []string {
	names := make([]string, len(reports))
	for i, r := range reports {
		names[i] = r.Name
	}
	return names
}

func TestRunAllInOrder(t *testing.T) {
	svc := seededReports(t, DefaultReportOptions())
	reports, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{ReportCommitAuthors, ReportActiveUsers, ReportRepositoryBugs, ReportCommitPairs, ReportIssueRollup}
	if got := reportNames(reports); !slices.Equal(got, want) {
		t.Errorf("report order = %v, want %v", got, want)
	}
	if !slices.Equal(svc.Names(), want) {
		t.Errorf("Names() = %v, want %v", svc.Names(), want)
	}

	counts := map[string]int{
		ReportCommitAuthors:  3,
		ReportActiveUsers:    3,
		ReportRepositoryBugs: 1,
		ReportCommitPairs:    1,
		ReportIssueRollup:    5,
	}
	for _, r := range reports {
		if r.Label == "" {
			t.Errorf("%s has no label", r.Name)
		}
		if len(r.Results) != counts[r.Name] {
			t.Errorf("%s: %d results, want %d", r.Name, len(r.Results), counts[r.Name])
		}
	}

	pair, ok := reports[3].Results[0].(models.CommitPair)
	if !ok {
		t.Fatalf("commit-pairs result type = %T", reports[3].Results[0])
	}
	if pair.Commit1Hash != "e5f6g7h8" || pair.Commit2Hash != "i9j0k1l2" {
		t.Errorf("pair = %+v", pair)
	}
}

func TestRunSelected(t *testing.T) {
	svc := seededReports(t, DefaultReportOptions())
	reports, err := svc.Run(context.Background(), ReportIssueRollup, ReportCommitAuthors, ReportIssueRollup)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{ReportCommitAuthors, ReportIssueRollup}
	if got := reportNames(reports); !slices.Equal(got, want) {
		t.Errorf("reports = %v, want %v", got, want)
	}
}

func TestRunUnknownReport(t *testing.T) {
	svc := seededReports(t, DefaultReportOptions())
	_, err := svc.Run(context.Background(), ReportActiveUsers, "top-committers")
	if !errors.Is(err, ErrUnknownReport) {
		t.Errorf("Run = %v, want ErrUnknownReport", err)
	}
}

func TestReportOptions(t *testing.T) {
	svc := seededReports(t, ReportOptions{BugsRepositoryID: 2, PairWindow: time.Hour})
	reports, err := svc.Run(context.Background(), ReportRepositoryBugs, ReportCommitPairs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	bugs := reports[0]
	if bugs.Label != "Bugs for repository 2" {
		t.Errorf("label = %q", bugs.Label)
	}
	if len(bugs.Results) != 1 || bugs.Results[0].(models.BugIssue).IssueID != 3 {
		t.Errorf("bugs for repository 2 = %+v, want issue 3", bugs.Results)
	}

	pairs := reports[1]
	if pairs.Label != "Commit pairs within 60 minutes" {
		t.Errorf("label = %q", pairs.Label)
	}
	if len(pairs.Results) != 4 {
		t.Errorf("pairs within an hour = %d, want 4", len(pairs.Results))
	}
}

type failingRepo struct {
	*repository.MemoryStore
}

var errBoom = errors.New("boom")

func (failingRepo) CommitPairs(context.Context, time.Duration) ([]models.CommitPair, error) {
	return nil, errBoom
}

func TestRunStopsOnError(t *testing.T) {
	repo := failingRepo{MemoryStore: repository.NewMemoryStore(zap.NewNop())}
	svc := NewReportService(repo, DefaultReportOptions(), zap.NewNop())

	reports, err := svc.Run(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run = %v, want errBoom", err)
	}
	want := []string{ReportCommitAuthors, ReportActiveUsers, ReportRepositoryBugs}
	if got := reportNames(reports); !slices.Equal(got, want) {
		t.Errorf("completed before failure = %v, want %v", got, want)
	}
}

func TestDescribeWindow(t *testing.T) {
	tests := map[time.Duration]string{
		5 * time.Minute:  "5 minutes",
		time.Minute:      "1 minute",
		90 * time.Second: "1m30s",
		time.Hour:        "60 minutes",
	}
	for d, want := range tests {
		if got := describeWindow(d); got != want {
			t.Errorf("describeWindow(%v) = %q, want %q", d, got, want)
		}
	}
}
