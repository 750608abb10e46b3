package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"readmegen/internal/output"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats [roots...]",
	Short: "Print source line statistics without writing the README",
	Long: `Counts source lines under the given roots, or the configured roots when none
are given, and prints the per-extension table.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "human", "Output format (human, json)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	roots := env.cfg.Roots
	if len(args) > 0 {
		roots = args
	}

	res, err := countRoots(cmd.Context(), env, roots)
	if err != nil {
		return err
	}

	out, err := FormatResponse(output.NewStatsReport(res, env.runID), OutputFormat(statsFormat))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if OutputFormat(statsFormat) == FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
