package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/EasyScience/EasyCore-sub001/config"
	"github.com/EasyScience/EasyCore-sub001/logging"
)

var (
	// Global flags
	verbose    bool
	logBackend string

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "easycore",
	Short: "easycore - object graph, undo/redo and constrained parameters",
	Long: `easycore drives a small demonstration model (a straight line y = m*x + c)
through the observed parameter API so the recorded script, the undo history
and the constraint pipeline can be inspected from the command line.

Settings are read from $EASYCORE_CONFIG (YAML) or ~/.config/easycore/config.yaml
and can be overridden with EASYCORE_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		switch logBackend {
		case "zap", "slog":
		default:
			return fmt.Errorf("unknown log backend %q (want zap or slog)", logBackend)
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		// Initialize logger
		zc := zap.NewProductionConfig()
		zc.Encoding = "console"
		if cfg.Logging.Format == "json" {
			zc.Encoding = "json"
		}
		zc.Level = zap.NewAtomicLevelAt(zapLevel(logging.ParseLevel(cfg.Logging.Level)))
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func zapLevel(l logging.LogLevel) zapcore.Level {
	switch l {
	case logging.LogLevelDebug:
		return zapcore.DebugLevel
	case logging.LogLevelWarn:
		return zapcore.WarnLevel
	case logging.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logBackend, "log-backend", "zap", "Session logger backend (zap or slog)")

	addEditFlags(sessionCmd)
	sessionCmd.Flags().StringVarP(&edits.format, "output", "o", "text", "Output format (text or yaml)")
	addEditFlags(scriptCmd)

	// Add commands to root
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(scriptCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
