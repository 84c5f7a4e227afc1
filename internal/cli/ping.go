package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ahmednasr/repo-insights/internal/config"
	"github.com/ahmednasr/repo-insights/internal/database"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the database connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := getEnv(cmd)
		if e.cfg.Engine == config.EngineMemory {
			e.out.Info("%s: %s", e.cfg.Engine, database.Status(cmd.Context(), nil))
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.ConnectTimeout())
		defer cancel()

		st, err := openStores(ctx, e.cfg, e.log)
		if err != nil {
			return err
		}
		defer st.close()

		e.out.Info("%s: %s", e.cfg.DBName, database.Status(ctx, st.client))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
