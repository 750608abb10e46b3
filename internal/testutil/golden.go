package testutil

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"
)

var (
	// updateGolden controls whether golden files should be updated.
	// Use: go test ./... -run TestGolden -update
	updateGolden = flag.Bool("update", false, "update golden files")

	// goldenFixture filters which fixtures to test.
	// Use: go test ./... -run TestGolden -goldenFixture=speroc
	goldenFixture = flag.String("goldenFixture", "", "filter fixtures (comma-separated names)")
)

// ShouldTestFixture returns true if the named fixture should be tested.
func ShouldTestFixture(name string) bool {
	if *goldenFixture == "" {
		return true
	}
	for _, f := range strings.Split(*goldenFixture, ",") {
		if strings.TrimSpace(f) == name {
			return true
		}
	}
	return false
}

// CompareGolden compares got byte-for-byte against the golden file, failing
// with a diff on mismatch. If -update is set, the golden file is rewritten.
func CompareGolden(t *testing.T, fixture *FixtureContext, name string, got []byte) {
	t.Helper()

	goldenPath := fixture.ExpectedPath(name)

	if *updateGolden {
		UpdateGolden(t, fixture, name, got)
		t.Logf("Updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("Golden file missing: %s\n\nGot:\n%s\n\nRun with -update to create:\n  go test ./... -run %s -update",
				goldenPath, string(got), t.Name())
		}
		t.Fatalf("Failed to read golden file: %v", err)
	}

	if !bytes.Equal(got, expected) {
		diff := unifiedDiff(string(expected), string(got), goldenPath)
		t.Fatalf("Golden mismatch for %s:\n%s\n\nRun with -update to refresh:\n  go test ./... -run %s -update",
			name, diff, t.Name())
	}
}

// CompareGoldenJSON normalizes got and compares its JSON encoding against
// the golden file.
func CompareGoldenJSON(t *testing.T, fixture *FixtureContext, name string, got any) {
	t.Helper()
	CompareGolden(t, fixture, name, MarshalNormalized(t, fixture, got))
}

// UpdateGolden writes data to the golden file.
// Creates parent directories if they don't exist.
func UpdateGolden(t *testing.T, fixture *FixtureContext, name string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(fixture.ExpectedDir, 0o755); err != nil {
		t.Fatalf("Failed to create expected directory: %v", err)
	}
	if err := os.WriteFile(fixture.ExpectedPath(name), data, 0o644); err != nil {
		t.Fatalf("Failed to write golden file: %v", err)
	}
}

// unifiedDiff produces a simple line-by-line diff between two strings.
func unifiedDiff(expected, got, path string) string {
	var buf bytes.Buffer

	expectedLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")

	fmt.Fprintf(&buf, "--- %s (expected)\n", path)
	fmt.Fprintf(&buf, "+++ %s (got)\n", path)

	maxLines := len(expectedLines)
	if len(gotLines) > maxLines {
		maxLines = len(gotLines)
	}

	for i := 0; i < maxLines; i++ {
		var expLine, gotLine string
		hasExp := i < len(expectedLines)
		hasGot := i < len(gotLines)
		if hasExp {
			expLine = expectedLines[i]
		}
		if hasGot {
			gotLine = gotLines[i]
		}

		if hasExp && hasGot && expLine == gotLine {
			continue
		}
		fmt.Fprintf(&buf, "@@ line %d @@\n", i+1)
		if hasExp {
			fmt.Fprintf(&buf, "-%q\n", expLine)
		}
		if hasGot {
			fmt.Fprintf(&buf, "+%q\n", gotLine)
		}
	}

	return buf.String()
}

// ForEachFixture runs a test function for each available fixture.
// Respects the -goldenFixture flag.
func ForEachFixture(t *testing.T, fn func(t *testing.T, fixture *FixtureContext)) {
	t.Helper()

	names := AvailableFixtures(t)
	if len(names) == 0 {
		t.Skip("No fixtures available")
	}

	for _, name := range names {
		if !ShouldTestFixture(name) {
			continue
		}

		t.Run(name, func(t *testing.T) {
			fn(t, LoadFixture(t, name))
		})
	}
}
