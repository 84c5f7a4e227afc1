package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/models"
)

// ErrUnknownReport is returned by Run for a name not in Names().
var ErrUnknownReport = errors.New("unknown report")

// Report names, in the order Run executes them.
const (
	ReportCommitAuthors  = "commit-authors"
	ReportActiveUsers    = "active-users"
	ReportRepositoryBugs = "repository-bugs"
	ReportCommitPairs    = "commit-pairs"
	ReportIssueRollup    = "issue-rollup"
)

// ---- Repository contract ---------------------------------------------------

// ReportRepository answers the five reporting queries. RepoMongo runs them
// as aggregation pipelines; MemoryStore evaluates them in process.
type ReportRepository interface {
	CommitAuthors(ctx context.Context) ([]models.CommitAuthor, error)
	ActiveUsers(ctx context.Context) ([]models.ActiveUser, error)
	RepositoryBugs(ctx context.Context, repoID int) ([]models.BugIssue, error)
	CommitPairs(ctx context.Context, window time.Duration) ([]models.CommitPair, error)
	IssueRollup(ctx context.Context) ([]models.IssueCount, error)
}

// ---- Return DTO ------------------------------------------------------------

// Report is one labelled result set.
type Report struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Results []any  `json:"results"`
}

// ReportOptions parameterises the reports that take arguments.
type ReportOptions struct {
	BugsRepositoryID int
	PairWindow       time.Duration
}

// DefaultReportOptions reproduces the stock reports: repository 1 and a
// five minute window.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{BugsRepositoryID: 1, PairWindow: 5 * time.Minute}
}

// ---- Service interface + implementation ------------------------------------

// ReportService runs reports by name.
type ReportService interface {
	// Names lists every report in execution order.
	Names() []string
	// Run executes the named reports, or all of them when names is empty.
	// Reports always run in Names() order regardless of the order of names,
	// and a name given twice runs once.
	Run(ctx context.Context, names ...string) ([]Report, error)
}

type reportDef struct {
	name  string
	label string
	run   func(ctx context.Context) ([]any, error)
}

type reportService struct {
	defs []reportDef
	log  *zap.Logger
}

// NewReportService wires the repository and fixes the report parameters.
func NewReportService(repo ReportRepository, opts ReportOptions, log *zap.Logger) ReportService {
	return &reportService{
		log: log,
		defs: []reportDef{
			{
				name:  ReportCommitAuthors,
				label: "Commits touching more than one file, with author",
				run: func(ctx context.Context) ([]any, error) {
					return rows(repo.CommitAuthors(ctx))
				},
			},
			{
				name:  ReportActiveUsers,
				label: "Active users (committed or reported a bug)",
				run: func(ctx context.Context) ([]any, error) {
					return rows(repo.ActiveUsers(ctx))
				},
			},
			{
				name:  ReportRepositoryBugs,
				label: fmt.Sprintf("Bugs for repository %d", opts.BugsRepositoryID),
				run: func(ctx context.Context) ([]any, error) {
					return rows(repo.RepositoryBugs(ctx, opts.BugsRepositoryID))
				},
			},
			{
				name:  ReportCommitPairs,
				label: "Commit pairs within " + describeWindow(opts.PairWindow),
				run: func(ctx context.Context) ([]any, error) {
					return rows(repo.CommitPairs(ctx, opts.PairWindow))
				},
			},
			{
				name:  ReportIssueRollup,
				label: "Issue counts by repository and status",
				run: func(ctx context.Context) ([]any, error) {
					return rows(repo.IssueRollup(ctx))
				},
			},
		},
	}
}

func (s *reportService) Names() []string {
	names := make([]string, len(s.defs))
	for i, d := range s.defs {
		names[i] = d.name
	}
	return names
}

func (s *reportService) Run(ctx context.Context, names ...string) ([]Report, error) {
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}
	for n := range selected {
		if !s.known(n) {
			return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownReport, n, strings.Join(s.Names(), ", "))
		}
	}

	var reports []Report
	for _, d := range s.defs {
		if len(selected) > 0 && !selected[d.name] {
			continue
		}

		start := time.Now()
		results, err := d.run(ctx)
		if err != nil {
			s.log.Error("report failed", zap.String("report", d.name), zap.Error(err))
			return reports, fmt.Errorf("report %s: %w", d.name, err)
		}
		s.log.Info("report finished",
			zap.String("report", d.name),
			zap.Int("count", len(results)),
			zap.Duration("took", time.Since(start)),
		)

		reports = append(reports, Report{Name: d.name, Label: d.label, Results: results})
	}
	return reports, nil
}

func (s *reportService) known(name string) bool {
	for _, d := range s.defs {
		if d.name == name {
			return true
		}
	}
	return false
}

// rows erases the row type so reports of different shapes share one slice.
func rows[T any](in []T, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]any, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out, nil
}

// describeWindow renders whole minutes as "5 minutes" and anything else
// with time.Duration's own format.
func describeWindow(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		if m := int(d / time.Minute); m != 1 {
			return fmt.Sprintf("%d minutes", m)
		}
		return "1 minute"
	}
	return d.String()
}
