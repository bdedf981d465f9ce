package main // Entry point package

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iliyamo/fyyur/internal/config"
)

var (
	// Global flags
	envFile string

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd runs the web server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "fyyur",
	Short: "Fyyur: a directory of live music venues, artists and shows",
	Long: `Fyyur lists venues and artists, their past and upcoming shows, and lets
visitors create, edit and delete them through web forms.

Run without arguments to start the web server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(envFile); err != nil {
			return err
		}
		if logger, err = newLogger(cfg); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the venues, artists and shows tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchema(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, schemaCmd)
}

// newLogger builds the production zap config, or the development one when
// APP_ENV is dev.  LOG_LEVEL overrides the level of either.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Env == "dev" {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zc.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
