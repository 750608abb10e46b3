package main

import (
	"fmt"

	"readmegen/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as deterministic indented JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := output.DeterministicEncodeIndented(resp, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *output.StatsReport:
		return output.FormatHuman(v), nil
	case *versionResponse:
		return formatVersionHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatVersionHuman(resp *versionResponse) string {
	if resp.Previous != "" && resp.Previous != resp.Version {
		if resp.Downgrade {
			return fmt.Sprintf("%s -> %s (downgrade)\n", resp.Previous, resp.Version)
		}
		return fmt.Sprintf("%s -> %s\n", resp.Previous, resp.Version)
	}
	return resp.Version + "\n"
}
