// Package readme assembles the generated README from the version, the line
// statistics and the hand-written fragment.
package readme

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"readmegen/internal/errors"
	"readmegen/internal/paths"
	"readmegen/internal/semver"
	"readmegen/internal/sourcestats"
)

// Document is everything that goes into one README.
type Document struct {
	Name        string
	Description string
	Version     semver.Version

	// Stats is the traversal result; a partial result is flagged in the output
	Stats *sourcestats.Result

	// Summary lists the extensions shown on the file-count line, in order
	Summary []string

	// WrapWidth wraps the header line; 0 leaves it alone
	WrapWidth int

	// Fragment is appended verbatim after the generated block
	Fragment []byte
}

// Render writes doc to w.
//
//	<name> ver <version> - <description>
//
//	Project Info:
//
//	    size: <sloc> sloc
//	    <n> <ext> files, ...
//	<fragment>
func Render(w io.Writer, doc Document) error {
	var b strings.Builder

	header := fmt.Sprintf("%s ver %s - %s", doc.Name, doc.Version, doc.Description)
	if doc.WrapWidth > 0 {
		header = wordwrap.WrapString(header, uint(doc.WrapWidth))
	}
	b.WriteString(header)
	b.WriteString("\n")

	table := sourcestats.NewTable()
	partial := false
	skipped := 0
	if doc.Stats != nil && doc.Stats.Table != nil {
		table = doc.Stats.Table
		partial = doc.Stats.Partial()
		skipped = len(doc.Stats.Skipped)
	}

	b.WriteString("\nProject Info:\n")
	fmt.Fprintf(&b, "\n    size: %d sloc\n", table.TotalSloc())
	b.WriteString("    " + SummaryLine(table, doc.Summary) + "\n")
	if partial {
		fmt.Fprintf(&b, "    (partial: %d paths skipped)\n", skipped)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return writeFragment(w, doc.Fragment)
}

// SummaryLine renders "H .h files, C .cpp files, ..." for the given
// extensions. Extensions missing from the table show 0.
func SummaryLine(table *sourcestats.Table, exts []string) string {
	parts := make([]string, 0, len(exts))
	for _, ext := range exts {
		s, _ := table.Get(ext)
		parts = append(parts, fmt.Sprintf("%d %s files", s.Files, ext))
	}
	return strings.Join(parts, ", ")
}

// writeFragment copies the fragment verbatim, terminating the last line
// if it has no newline.
func writeFragment(w io.Writer, fragment []byte) error {
	if len(fragment) == 0 {
		return nil
	}
	if _, err := w.Write(fragment); err != nil {
		return err
	}
	if fragment[len(fragment)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// ReadFragment loads the static fragment. A missing file is a
// FRAGMENT_MISSING error unless allowMissing is set, in which case the
// fragment is empty.
func ReadFragment(path string, allowMissing bool) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if allowMissing {
				return nil, nil
			}
			return nil, errors.NewGenError(errors.FragmentMissing,
				fmt.Sprintf("fragment %s not found", paths.Display(path)), err,
				errors.GetSuggestedFixes(errors.FragmentMissing))
		}
		return nil, fmt.Errorf("failed to read fragment %s: %w", path, err)
	}
	return data, nil
}

// Write renders doc and replaces path with the result.
func Write(path string, doc Document) error {
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return err
	}
	return paths.WriteFileAtomic(path, buf.Bytes(), 0644)
}
