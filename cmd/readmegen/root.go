package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"readmegen/internal/config"
	"readmegen/internal/errors"
	"readmegen/internal/slogutil"
	"readmegen/internal/version"
)

var (
	configFlag     string
	verboseFlag    int
	quietFlag      bool
	classifierFlag string
)

var rootCmd = &cobra.Command{
	Use:   "readmegen",
	Short: "readmegen - README generator with source line statistics",
	Long: `readmegen regenerates a project's README from the persisted project version,
per-extension source line counts of the configured roots, and a hand-written
fragment appended verbatim.`,
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default: .readmegen.yaml in the working directory)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v",
		"Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false,
		"Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&classifierFlag, "classifier", "",
		"Line classifier: heuristic or syntax (overrides config)")
}

// runEnv is the per-invocation state shared by every command.
type runEnv struct {
	dir    string
	cfg    *config.Config
	logger *slog.Logger
	runID  string

	logFile *os.File
}

// loadEnv resolves the working directory, loads and validates the
// configuration and builds the run logger.
func loadEnv() (*runEnv, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.NewGenError(errors.InternalError, "Failed to get current directory", err, nil)
	}
	return newRunEnv(cwd, configFlag)
}

func newRunEnv(dir string, configFile string) (*runEnv, error) {
	cfg, err := config.LoadConfig(dir, configFile)
	if err != nil {
		return nil, errors.NewGenError(errors.ConfigInvalid, "Failed to load configuration", err,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}
	if classifierFlag != "" {
		cfg.Classifier = classifierFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewGenError(errors.ConfigInvalid, "Invalid configuration", err,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}

	env := &runEnv{
		dir:   dir,
		cfg:   cfg,
		runID: uuid.NewString(),
	}

	level := slogutil.LevelFromString(cfg.Logging.Level)
	if verboseFlag > 0 || quietFlag {
		level = slogutil.LevelFromVerbosity(verboseFlag, quietFlag)
	}
	logger := slogutil.NewLogger(os.Stderr, level)

	if cfg.Logging.File != "" {
		fileLogger, f, err := slogutil.NewFileLogger(env.path(cfg.Logging.File), slog.LevelDebug)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		env.logFile = f
		logger = slog.New(slogutil.NewTeeHandler(logger.Handler(), fileLogger.Handler()))
	}

	env.logger = logger.With("run", env.runID)
	env.logger.Debug("Starting readmegen", "version", version.Info(), "dir", dir, "classifier", cfg.Classifier)
	return env, nil
}

// path resolves a configured path against the working directory.
func (e *runEnv) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.dir, p)
}

// roots resolves every configured root.
func (e *runEnv) roots(roots []string) []string {
	resolved := make([]string, len(roots))
	for i, r := range roots {
		resolved[i] = e.path(r)
	}
	return resolved
}

func (e *runEnv) Close() {
	if e.logFile != nil {
		_ = e.logFile.Close()
	}
}
