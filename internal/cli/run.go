package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahmednasr/repo-insights/internal/service"
)

var reportFlags struct {
	repoID int
	window time.Duration
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&reportFlags.repoID, "repo-id", 1, "repository scanned by repository-bugs (overrides BUGS_REPOSITORY_ID)")
	cmd.Flags().DurationVar(&reportFlags.window, "window", 5*time.Minute, "maximum gap for commit-pairs (overrides PAIR_WINDOW_SEC)")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Reseed both collections, then print every report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := getEnv(cmd)
		ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.QueryTimeout())
		defer cancel()

		st, err := openStores(ctx, e.cfg, e.log)
		if err != nil {
			return err
		}
		defer st.close()

		summary, err := service.NewSeedService(st.users, st.repos, e.log).Seed(ctx)
		if err != nil {
			return err
		}
		e.out.Info("Seeded %d users and %d repositories", summary.Users, summary.Repositories)

		return printReports(ctx, cmd, st)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [name...]",
	Short: "Print reports over the current data without reseeding",
	Long: fmt.Sprintf(`Print the named reports, or all of them, in their fixed order.

Reports: %s, %s, %s, %s, %s`,
		service.ReportCommitAuthors, service.ReportActiveUsers, service.ReportRepositoryBugs,
		service.ReportCommitPairs, service.ReportIssueRollup),
	ValidArgs: []string{
		service.ReportCommitAuthors, service.ReportActiveUsers, service.ReportRepositoryBugs,
		service.ReportCommitPairs, service.ReportIssueRollup,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		e := getEnv(cmd)
		ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.QueryTimeout())
		defer cancel()

		st, err := openStores(ctx, e.cfg, e.log)
		if err != nil {
			return err
		}
		defer st.close()

		return printReports(ctx, cmd, st, args...)
	},
}

func printReports(ctx context.Context, cmd *cobra.Command, st *stores, names ...string) error {
	e := getEnv(cmd)
	opts := service.ReportOptions{
		BugsRepositoryID: e.cfg.BugsRepositoryID,
		PairWindow:       e.cfg.PairWindow(),
	}

	reports, err := service.NewReportService(st.reports, opts, e.log).Run(ctx, names...)
	if err != nil {
		return err
	}
	for _, r := range reports {
		if err := e.out.Section(r.Name, r.Label, r.Results); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	addReportFlags(runCmd)
	addReportFlags(reportCmd)
	rootCmd.AddCommand(runCmd, reportCmd)
}
