package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"readmegen/internal/errors"
	"readmegen/internal/paths"
	"readmegen/internal/readme"
	"readmegen/internal/semver"
	"readmegen/internal/sourcestats"
)

var generateCmd = &cobra.Command{
	Use:   "generate [bump]",
	Short: "Regenerate the README",
	Long: `Counts source lines under the configured roots and rewrites the README.

The optional bump argument increments the persisted version before writing:
  0 or patch   increment patch
  1 or major   increment major, reset minor and patch
  2 or minor   increment minor, reset patch
Without an argument the version is left unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	bumpArg := ""
	if len(args) > 0 {
		bumpArg = args[0]
	}

	res, err := generate(cmd.Context(), env, bumpArg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (ver %s, %d sloc)\n",
		paths.Display(res.Output), res.Version, res.Stats.Table.TotalSloc())
	if res.Stats.Partial() {
		fmt.Fprintf(cmd.OutOrStdout(), "Warning: %d paths skipped, counts are partial\n", len(res.Stats.Skipped))
	}
	return nil
}

// generateResult summarizes one README generation.
type generateResult struct {
	Output  string
	Version semver.Version
	Stats   *sourcestats.Result
}

// generate bumps the version, counts the roots and writes the README. The
// bumped version is persisted only after the README has been written.
func generate(ctx context.Context, env *runEnv, bumpArg string) (*generateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := env.cfg

	bump, err := semver.ParseBump(bumpArg)
	if err != nil {
		return nil, err
	}

	store := semver.NewStore(env.path(cfg.VersionFile))
	current, err := store.Load()
	if err != nil {
		return nil, errors.NewGenError(errors.VersionStore, "Failed to load version", err,
			errors.GetSuggestedFixes(errors.VersionStore))
	}
	next := current.Bump(bump)
	if bump != semver.BumpNone {
		env.logger.Info("Bumping version", "from", current.String(), "to", next.String(), "kind", bump.String())
	}

	stats, err := countRoots(ctx, env, cfg.Roots)
	if err != nil {
		return nil, err
	}
	if stats.Partial() {
		env.logger.Warn("Counts are partial", "skipped", len(stats.Skipped))
	}

	fragment, err := readme.ReadFragment(env.path(cfg.Readme.Fragment), cfg.Readme.AllowMissingFragment)
	if err != nil {
		return nil, err
	}

	output := env.path(cfg.Readme.Output)
	doc := readme.Document{
		Name:        cfg.Project.Name,
		Description: cfg.Project.Description,
		Version:     next,
		Stats:       stats,
		Summary:     cfg.Readme.Summary,
		WrapWidth:   cfg.Readme.WrapWidth,
		Fragment:    fragment,
	}
	if err := readme.Write(output, doc); err != nil {
		return nil, fmt.Errorf("failed to write README: %w", err)
	}
	env.logger.Info("README written", "path", output, "sloc", stats.Table.TotalSloc())

	if next != current {
		if err := store.Save(next); err != nil {
			return nil, errors.NewGenError(errors.VersionStore, "Failed to save version", err,
				errors.GetSuggestedFixes(errors.VersionStore))
		}
	}

	return &generateResult{Output: output, Version: next, Stats: stats}, nil
}

// countRoots runs one traversal pass over roots with the configured
// registry, classifier mode and missing root policy.
func countRoots(ctx context.Context, env *runEnv, roots []string) (*sourcestats.Result, error) {
	cfg := env.cfg

	reg, err := sourcestats.LoadRegistry(env.path(cfg.LanguagesFile))
	if err != nil {
		return nil, errors.NewGenError(errors.ConfigInvalid, "Failed to load language declarations", err,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}

	policy, err := sourcestats.ParseMissingRootPolicy(cfg.MissingRoot)
	if err != nil {
		return nil, errors.NewGenError(errors.ConfigInvalid, "Invalid missing root policy", err,
			errors.GetSuggestedFixes(errors.ConfigInvalid))
	}

	env.logger.Debug("Counting source lines", "roots", len(roots), "policy", string(policy), "classifier", cfg.Classifier)
	return sourcestats.Count(ctx, reg, env.roots(roots), policy, counterOptions(env)...)
}

// counterOptions selects the line classifier. The syntax classifier falls
// back to the heuristic when it is not compiled in or fails to start.
func counterOptions(env *runEnv) []sourcestats.Option {
	opts := []sourcestats.Option{sourcestats.WithLogger(env.logger)}
	if env.cfg.Classifier != "syntax" {
		return opts
	}
	if !sourcestats.SyntaxAvailable() {
		env.logger.Warn("Syntax classifier not built in (CGO disabled), using heuristic")
		return opts
	}

	sc, err := sourcestats.NewSyntaxCounter()
	if err != nil {
		env.logger.Warn("Syntax classifier unavailable, using heuristic", "error", err.Error())
		return opts
	}
	return append(opts, sourcestats.WithSourceCounter(sc))
}
