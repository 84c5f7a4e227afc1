package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ahmednasr/repo-insights/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Drop and reload the users and repositories collections",
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
		e.out.Info("Seeded %d users and %d repositories into %s", summary.Users, summary.Repositories, e.cfg.DBName)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every user and repository document",
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

		snap, err := service.NewSeedService(st.users, st.repos, e.log).List(ctx)
		if err != nil {
			return err
		}

		users := make([]any, len(snap.Users))
		for i, u := range snap.Users {
			users[i] = u
		}
		if err := e.out.Section("users", "All users", users); err != nil {
			return err
		}

		repos := make([]any, len(snap.Repositories))
		for i, r := range snap.Repositories {
			repos[i] = r
		}
		return e.out.Section("repositories", "All repositories", repos)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd, listCmd)
}
