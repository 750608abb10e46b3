package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWatchFilter(t *testing.T) {
	dir := projectDir(t)
	env := testEnv(t, dir)

	filter, err := watchFilter(env)
	if err != nil {
		t.Fatalf("watchFilter() error = %v", err)
	}

	tests := []struct {
		rel  string
		want bool
	}{
		{"src/b.cpp", true},
		{"incl/a.h", true},
		{"test.rb", true},
		{"_readme.md", true},
		{"languages.toml", true},
		{".readmegen.yaml", true},
		{"src/newdir", true},
		{"README.md", false},
		{"src/notes.txt", false},
		{".readmegen/version.yaml", false},
	}
	for _, tt := range tests {
		if got := filter(filepath.Join(dir, tt.rel)); got != tt.want {
			t.Errorf("filter(%s) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

// syncBuffer guards a buffer written from the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_RegeneratesOnChange(t *testing.T) {
	dir := projectDir(t)
	writeFile(t, dir, ".readmegen.yaml", "version: 1\nwatch:\n  debounceMs: 50\n")
	env := testEnv(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watch(ctx, env, &out) }()
	defer func() {
		cancel()
		<-done
	}()

	waitFor(t, func() bool { return strings.Count(out.String(), "Wrote ") >= 1 })
	if !strings.Contains(out.String(), "(4 sloc)") {
		t.Fatalf("initial output = %q", out.String())
	}

	writeFile(t, dir, "src/extra.cpp", "int z;\nint w;\n")

	waitFor(t, func() bool { return strings.Contains(out.String(), "(6 sloc)") })
	readme, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(readme), "size: 6 sloc") {
		t.Errorf("README not regenerated:\n%s", readme)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met within 5s")
}
