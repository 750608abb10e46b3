package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"readmegen/internal/config"
	"readmegen/internal/errors"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default readmegen configuration",
	Long:  "Creates .readmegen.yaml with default settings in the current directory",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.NewGenError(errors.InternalError, "Failed to get current directory", err, nil)
	}
	return initConfig(cmd.OutOrStdout(), cwd, initForce)
}

// initConfig writes the default configuration into dir. An existing file is
// left alone unless force is set.
func initConfig(w io.Writer, dir string, force bool) error {
	configPath := filepath.Join(dir, config.FileName)

	if _, statErr := os.Stat(configPath); statErr == nil && !force {
		// Already initialized is success
		fmt.Fprintln(w, "readmegen already initialized.")
		fmt.Fprintf(w, "Configuration at: %s\n", configPath)
		fmt.Fprintln(w, "\nRun 'readmegen init --force' to overwrite.")
		return nil
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return errors.NewGenError(errors.InternalError, "Failed to write config file", err, nil)
	}

	fmt.Fprintln(w, "readmegen initialized successfully!")
	fmt.Fprintf(w, "Configuration written to: %s\n", configPath)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Edit roots and project in .readmegen.yaml")
	fmt.Fprintln(w, "  2. Run 'readmegen stats' to preview the counts")
	fmt.Fprintln(w, "  3. Run 'readmegen generate' to write the README")
	return nil
}
