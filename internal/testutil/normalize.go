package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"readmegen/internal/output"
)

// Normalizer defines the interface for normalizing golden test data.
type Normalizer interface {
	// Normalize processes the data for stable comparison.
	Normalize(t *testing.T, fixture *FixtureContext, data any) any
}

var _ Normalizer = (*DefaultNormalizer)(nil)

// DefaultNormalizer drops per-run fields and rewrites fixture paths.
type DefaultNormalizer struct{}

// Normalize applies all normalization rules for stable golden comparison.
// This is called before both compare AND update operations.
func (n *DefaultNormalizer) Normalize(t *testing.T, fixture *FixtureContext, data any) any {
	t.Helper()

	// Deep copy via JSON round-trip to avoid modifying original
	jsonBytes, err := output.DeterministicEncode(data)
	if err != nil {
		t.Fatalf("Failed to marshal data for normalization: %v", err)
	}

	var normalized any
	if err := json.Unmarshal(jsonBytes, &normalized); err != nil {
		t.Fatalf("Failed to unmarshal data for normalization: %v", err)
	}

	return n.normalizeValue(normalized, fixture.ProjectDir)
}

func (n *DefaultNormalizer) normalizeValue(v any, projectDir string) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			if isVolatileField(k) {
				continue
			}
			result[k] = n.normalizeValue(item, projectDir)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = n.normalizeValue(item, projectDir)
		}
		return result
	case string:
		return NormalizeFilePath(val, projectDir)
	default:
		return v
	}
}

func isVolatileField(name string) bool {
	volatileFields := map[string]bool{
		"runId":     true,
		"timestamp": true,
		"duration":  true,
		"elapsed":   true,
	}
	return volatileFields[name]
}

// MarshalNormalized normalizes data and marshals it to stable JSON bytes
// with 2-space indentation and a trailing newline.
func MarshalNormalized(t *testing.T, fixture *FixtureContext, data any) []byte {
	t.Helper()

	normalizer := &DefaultNormalizer{}
	normalized := normalizer.Normalize(t, fixture, data)

	bytes, err := output.DeterministicEncodeIndented(normalized, "  ")
	if err != nil {
		t.Fatalf("Failed to marshal normalized data: %v", err)
	}
	return append(bytes, '\n')
}

// NormalizeFilePath replaces the project directory prefix with <project>
// and converts separators to forward slashes.
func NormalizeFilePath(s, projectDir string) string {
	s = strings.ReplaceAll(s, "\\", "/")
	if projectDir != "" {
		s = strings.ReplaceAll(s, strings.ReplaceAll(projectDir, "\\", "/"), "<project>")
	}
	return s
}
