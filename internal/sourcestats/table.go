// Package sourcestats counts significant source lines per file extension.
//
// A Counter walks a list of root paths, hands every regular file whose
// extension is registered to that extension's Classifier, and accumulates
// the results in a Table. Lines are classified one at a time with no state
// carried between lines, so block comments are only recognized as far as
// the per-line prefix heuristics allow.
package sourcestats

import "sort"

// ExtStats holds the accumulated counters for one extension.
type ExtStats struct {
	// Files is the number of files counted
	Files int `json:"files"`

	// Total is the number of lines read across those files
	Total int `json:"total"`

	// Sloc is the number of lines classified as significant
	Sloc int `json:"sloc"`
}

// Table maps recognized extensions to their counters.
// The set of keys is fixed when the table is created.
type Table struct {
	exts map[string]*ExtStats
}

// NewTable creates a table with a zeroed entry for every given extension.
func NewTable(exts ...string) *Table {
	t := &Table{exts: make(map[string]*ExtStats, len(exts))}
	for _, ext := range exts {
		t.exts[ext] = &ExtStats{}
	}
	return t
}

// Has reports whether ext is a key of the table.
func (t *Table) Has(ext string) bool {
	_, ok := t.exts[ext]
	return ok
}

// Get returns a copy of the counters for ext.
func (t *Table) Get(ext string) (ExtStats, bool) {
	s, ok := t.exts[ext]
	if !ok {
		return ExtStats{}, false
	}
	return *s, true
}

// Extensions returns the table keys in sorted order.
func (t *Table) Extensions() []string {
	keys := make([]string, 0, len(t.exts))
	for ext := range t.exts {
		keys = append(keys, ext)
	}
	sort.Strings(keys)
	return keys
}

// TotalSloc sums Sloc across every extension.
func (t *Table) TotalSloc() int {
	n := 0
	for _, s := range t.exts {
		n += s.Sloc
	}
	return n
}

// TotalFiles sums Files across every extension.
func (t *Table) TotalFiles() int {
	n := 0
	for _, s := range t.exts {
		n += s.Files
	}
	return n
}

// Snapshot returns a copy of every entry.
func (t *Table) Snapshot() map[string]ExtStats {
	out := make(map[string]ExtStats, len(t.exts))
	for ext, s := range t.exts {
		out[ext] = *s
	}
	return out
}

// add records one fully counted file. Unknown keys are ignored.
func (t *Table) add(ext string, lc LineCount) {
	s, ok := t.exts[ext]
	if !ok {
		return
	}
	s.Files++
	s.Total += lc.Total
	s.Sloc += lc.Sloc
}
