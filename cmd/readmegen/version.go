package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"readmegen/internal/errors"
	"readmegen/internal/semver"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Manage the persisted project version",
}

var versionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted project version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd, func(v semver.Version) (semver.Version, error) { return v, nil })
	},
}

var versionBumpCmd = &cobra.Command{
	Use:   "bump <patch|major|minor>",
	Short: "Increment the persisted project version",
	Long:  "Accepts a component name or the numeric form 0 (patch), 1 (major), 2 (minor).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bump, err := semver.ParseBump(args[0])
		if err != nil {
			return err
		}
		if bump == semver.BumpNone {
			return fmt.Errorf("bump kind must not be empty")
		}
		return runVersion(cmd, func(v semver.Version) (semver.Version, error) { return v.Bump(bump), nil })
	},
}

var versionSetCmd = &cobra.Command{
	Use:   "set <version>",
	Short: "Overwrite the persisted project version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion(cmd, func(semver.Version) (semver.Version, error) { return semver.Parse(args[0]) })
	},
}

func init() {
	versionCmd.PersistentFlags().StringVar(&versionFormat, "format", "human", "Output format (human, json)")
	versionCmd.AddCommand(versionShowCmd, versionBumpCmd, versionSetCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionResponse is the output of the version subcommands
type versionResponse struct {
	Version  string `json:"version"`
	Previous string `json:"previous,omitempty"`
	Path     string `json:"path"`
	// Downgrade is set when the new version sorts below the previous one.
	Downgrade bool `json:"downgrade,omitempty"`
}

func runVersion(cmd *cobra.Command, update func(semver.Version) (semver.Version, error)) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	resp, err := updateVersion(env, update)
	if err != nil {
		return err
	}

	out, err := FormatResponse(resp, OutputFormat(versionFormat))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if OutputFormat(versionFormat) == FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

// updateVersion loads the stored version, applies update and saves the
// result when it changed.
func updateVersion(env *runEnv, update func(semver.Version) (semver.Version, error)) (*versionResponse, error) {
	path := env.path(env.cfg.VersionFile)
	store := semver.NewStore(path)

	current, err := store.Load()
	if err != nil {
		return nil, errors.NewGenError(errors.VersionStore, "Failed to load version", err,
			errors.GetSuggestedFixes(errors.VersionStore))
	}

	next, err := update(current)
	if err != nil {
		return nil, err
	}

	downgrade := semver.Compare(next, current) < 0
	if downgrade {
		env.logger.Warn("Version moves backwards", "from", current.String(), "to", next.String())
	}

	if next != current {
		if err := store.Save(next); err != nil {
			return nil, errors.NewGenError(errors.VersionStore, "Failed to save version", err,
				errors.GetSuggestedFixes(errors.VersionStore))
		}
		env.logger.Info("Version updated", "from", current.String(), "to", next.String())
	}

	return &versionResponse{
		Version:   next.String(),
		Previous:  current.String(),
		Path:      path,
		Downgrade: downgrade,
	}, nil
}
