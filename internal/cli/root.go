package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ahmednasr/repo-insights/internal/config"
	"github.com/ahmednasr/repo-insights/internal/logger"
	"github.com/ahmednasr/repo-insights/internal/output"
	"github.com/ahmednasr/repo-insights/internal/service"
)

var version = "dev"

// Exit codes.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitValidation = 3
)

// CmdError wraps an error with the exit code the process should return.
type CmdError struct {
	Err  error
	Code int
}

func (e *CmdError) Error() string { return e.Err.Error() }

func (e *CmdError) Unwrap() error { return e.Err }

func cmdErr(err error, code int) *CmdError {
	return &CmdError{Err: err, Code: code}
}

type contextKey string

const envKey contextKey = "env"

// env is what PersistentPreRunE resolves once for every command.
type env struct {
	cfg config.Config
	log *zap.Logger
	out *output.Writer
}

var flags struct {
	engine string
	format string
	uri    string
	db     string
}

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Seed the sample repositories dataset and print its reports",
	Long: `insights drops and reloads the users and repositories collections with a
fixed sample dataset, then runs five aggregation reports over it:

  commit-authors   commits touching more than one file, with author
  active-users     users who committed or reported a bug
  repository-bugs  bugs filed against one repository
  commit-pairs     commits of the same repository landing close together
  issue-rollup     issue counts by repository and status, with totals

Without a subcommand it behaves like "insights run".`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return cmdErr(err, ExitValidation)
		}
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return cmdErr(err, ExitValidation)
		}

		log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return cmdErr(err, ExitValidation)
		}

		out := output.New(cfg.OutputFormat)
		out.Stdout = cmd.OutOrStdout()
		out.Stderr = cmd.ErrOrStderr()

		e := &env{cfg: cfg, log: log, out: out}
		cmd.SetContext(context.WithValue(cmd.Context(), envKey, e))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if e, ok := cmd.Context().Value(envKey).(*env); ok {
			_ = e.log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCmd.RunE(cmd, args)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.engine, "engine", "", "query engine: mongo or memory (overrides QUERY_ENGINE)")
	pf.StringVarP(&flags.format, "output", "o", "", "output format: human, table or json (overrides OUTPUT_FORMAT)")
	pf.StringVar(&flags.uri, "uri", "", "MongoDB connection string (overrides MONGODB_URI)")
	pf.StringVar(&flags.db, "db", "", "database name (overrides MONGODB_DB)")

	addReportFlags(rootCmd)
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("engine") {
		cfg.Engine = flags.engine
	}
	if fs.Changed("output") {
		cfg.OutputFormat = flags.format
	}
	if fs.Changed("uri") {
		cfg.MongoURI = flags.uri
	}
	if fs.Changed("db") {
		cfg.DBName = flags.db
	}
	if fs.Lookup("repo-id") != nil && fs.Changed("repo-id") {
		cfg.BugsRepositoryID = reportFlags.repoID
	}
	if fs.Lookup("window") != nil && fs.Changed("window") {
		cfg.PairWindowSec = int(reportFlags.window.Seconds())
	}
}

func getEnv(cmd *cobra.Command) *env {
	return cmd.Context().Value(envKey).(*env)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return execute(ctx, os.Args[1:])
}

func execute(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	code := ExitGeneral
	var ce *CmdError
	if errors.As(err, &ce) {
		code = ce.Code
	} else if errors.Is(err, service.ErrUnknownReport) || errors.Is(err, config.ErrInvalidConfig) {
		code = ExitValidation
	}
	w := output.New("")
	w.Stderr = rootCmd.ErrOrStderr()
	w.Error(err)
	return code
}
