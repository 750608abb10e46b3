package sourcestats

import (
	"fmt"
	"sort"
	"strings"
)

// whitespace matches the \s class: space, tab, CR, LF, form feed, vertical tab.
const whitespace = " \t\r\n\f\v"

// Classifier decides whether a single line counts as source.
// line never includes its trailing newline.
type Classifier interface {
	Significant(line string) bool
}

// PrefixClassifier treats a line as insignificant when it is blank or when
// its first non-whitespace characters begin with one of Markers.
// Markers appearing later in the line are ignored, so code followed by a
// trailing comment still counts.
type PrefixClassifier struct {
	Markers []string
}

// Significant implements Classifier.
func (c PrefixClassifier) Significant(line string) bool {
	rest := strings.TrimLeft(line, whitespace)
	if rest == "" {
		return false
	}
	for _, m := range c.Markers {
		if strings.HasPrefix(rest, m) {
			return false
		}
	}
	return true
}

// Style names a built-in classification heuristic.
type Style string

const (
	// StyleScript is for languages with `#` line comments.
	StyleScript Style = "script"
	// StyleBrace is for languages with `//` and `/* */` comments.
	// Any line starting with `*` is taken to be a block comment
	// continuation, which also catches code such as `*ptr = 5;`.
	StyleBrace Style = "brace"
	// StyleNone keeps the extension in the table but counts nothing.
	StyleNone Style = "none"
)

// ScriptStyle returns the `#` comment heuristic.
func ScriptStyle() PrefixClassifier {
	return PrefixClassifier{Markers: []string{"#"}}
}

// BraceStyle returns the `//`, `/*`, `*` comment heuristic.
func BraceStyle() PrefixClassifier {
	return PrefixClassifier{Markers: []string{"//", "/*", "*"}}
}

// ClassifierForStyle maps a style name to its classifier.
// StyleNone yields a nil classifier.
func ClassifierForStyle(s Style) (Classifier, error) {
	switch s {
	case StyleScript:
		return ScriptStyle(), nil
	case StyleBrace:
		return BraceStyle(), nil
	case StyleNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown style %q", s)
	}
}

// Registry maps extensions to classifiers. An extension registered with a
// nil classifier is recognized (it gets a table entry) but never counted.
type Registry struct {
	classifiers map[string]Classifier
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classifiers: make(map[string]Classifier)}
}

// DefaultRegistry recognizes .cpp, .h, .c (brace style) and .rb (script style).
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".cpp", BraceStyle())
	r.Register(".h", BraceStyle())
	r.Register(".c", BraceStyle())
	r.Register(".rb", ScriptStyle())
	return r
}

// Register adds or replaces the classifier for ext.
func (r *Registry) Register(ext string, c Classifier) {
	r.classifiers[ext] = c
}

// Lookup returns the classifier for ext and whether ext is recognized.
// Matching is exact and case-sensitive.
func (r *Registry) Lookup(ext string) (Classifier, bool) {
	c, ok := r.classifiers[ext]
	return c, ok
}

// Extensions returns all recognized extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.classifiers))
	for ext := range r.classifiers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
