package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"readmegen/internal/config"
	"readmegen/internal/sourcestats"
	"readmegen/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the README whenever sources change",
	Long: `Writes the README once, then watches the configured roots, the fragment and
the language declarations, regenerating after each quiet period. The version
is never bumped by watch.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch(ctx, env, cmd.OutOrStdout())
}

// watch regenerates once and then after every batch of relevant changes
// until ctx is done.
func watch(ctx context.Context, env *runEnv, out io.Writer) error {
	var mu sync.Mutex
	regenerate := func() {
		mu.Lock()
		defer mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		res, err := generate(ctx, env, "")
		if err != nil {
			env.logger.Error("Regeneration failed", "error", err.Error())
			return
		}
		fmt.Fprintf(out, "Wrote %s (%d sloc)\n", res.Output, res.Stats.Table.TotalSloc())
	}

	filter, err := watchFilter(env)
	if err != nil {
		return err
	}

	wcfg := watcher.Config{
		DebounceMs:     env.cfg.Watch.DebounceMs,
		IgnorePatterns: env.cfg.Watch.Ignore,
	}
	w, err := watcher.New(wcfg, env.logger, filter, func(events []watcher.Event) {
		for _, ev := range events {
			env.logger.Info("Change", "type", ev.Type.String(), "path", ev.Path)
		}
		regenerate()
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	for _, p := range watchPaths(env) {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	regenerate()
	return w.Run(ctx)
}

// watchPaths lists everything whose change affects the README.
func watchPaths(env *runEnv) []string {
	paths := env.roots(env.cfg.Roots)
	for _, p := range []string{env.cfg.Readme.Fragment, env.cfg.LanguagesFile} {
		if p != "" {
			paths = append(paths, env.path(p))
		}
	}
	return paths
}

// watchFilter accepts counted extensions, the fragment, the language
// declarations and extensionless paths, which may be directories. The
// README itself and the version store never match.
func watchFilter(env *runEnv) (watcher.Filter, error) {
	reg, err := sourcestats.LoadRegistry(env.path(env.cfg.LanguagesFile))
	if err != nil {
		return nil, err
	}

	exact := map[string]bool{
		filepath.Clean(env.path(config.FileName)): true,
	}
	for _, p := range []string{env.cfg.Readme.Fragment, env.cfg.LanguagesFile} {
		if p != "" {
			exact[filepath.Clean(env.path(p))] = true
		}
	}
	output := filepath.Clean(env.path(env.cfg.Readme.Output))

	return func(path string) bool {
		path = filepath.Clean(path)
		if path == output {
			return false
		}
		if exact[path] {
			return true
		}
		ext := filepath.Ext(path)
		if ext == "" {
			return true
		}
		_, ok := reg.Lookup(ext)
		return ok
	}, nil
}
