package sourcestats

import (
	"testing"
)

func TestPrefixClassifier_Script(t *testing.T) {
	cls := ScriptStyle()

	tests := []struct {
		line string
		want bool
	}{
		{"x = 1", true},
		{"", false},
		{"   ", false},
		{"\t\r", false},
		{"# comment", false},
		{"   # indented comment", false},
		{"y = 2  # inline comment", true},
		{"puts '#'", true},
		{"\f#", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := cls.Significant(tt.line); got != tt.want {
				t.Errorf("Significant(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestPrefixClassifier_Brace(t *testing.T) {
	cls := BraceStyle()

	tests := []struct {
		line string
		want bool
	}{
		{"int x;", true},
		{"// comment", false},
		{"  /* block */", false},
		{" * continuation", false},
		{"*ptr = 5;", false}, // prefix heuristic, not a lexer
		{"interior of a block comment", true},
		{"x = y; // trailing", true},
		{"}", true},
		{"", false},
		{" \t ", false},
		{"# define FOO", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := cls.Significant(tt.line); got != tt.want {
				t.Errorf("Significant(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifierForStyle(t *testing.T) {
	tests := []struct {
		style   Style
		wantNil bool
		wantErr bool
	}{
		{StyleScript, false, false},
		{StyleBrace, false, false},
		{StyleNone, true, false},
		{"lisp", true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			cls, err := ClassifierForStyle(tt.style)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ClassifierForStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
			}
			if (cls == nil) != tt.wantNil {
				t.Errorf("ClassifierForStyle(%q) = %v, wantNil %v", tt.style, cls, tt.wantNil)
			}
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	want := []string{".c", ".cpp", ".h", ".rb"}
	got := reg.Extensions()
	if len(got) != len(want) {
		t.Fatalf("Extensions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Extensions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, ext := range []string{".CPP", "cpp", ".md", ""} {
		if _, ok := reg.Lookup(ext); ok {
			t.Errorf("Lookup(%q) should not be recognized", ext)
		}
	}
}
