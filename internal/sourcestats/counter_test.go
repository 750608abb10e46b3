package sourcestats

import (
	"errors"
	"strings"
	"testing"
)

func TestCountLines(t *testing.T) {
	tests := []struct {
		name      string
		cls       Classifier
		input     string
		wantTotal int
		wantSloc  int
	}{
		{"empty", ScriptStyle(), "", 0, 0},
		{"script comments only", ScriptStyle(), "# comment\n\n  # another\n", 3, 0},
		{"script inline comment", ScriptStyle(), "x = 1\n# comment\ny = 2  # inline comment\n", 3, 2},
		{"brace star heuristic", BraceStyle(), "int x;\n// comment\n* continuation-looking code;\n", 3, 1},
		{"crlf endings", BraceStyle(), "int x;\r\n\r\n// c\r\n", 3, 1},
		{"unterminated last line", ScriptStyle(), "a = 1\nb = 2", 2, 1},
		{"single newline", ScriptStyle(), "\n", 1, 0},
		{"unprefixed block interior", BraceStyle(), "/*\n  still a comment\n*/\n", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc, err := CountLines(tt.cls, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("CountLines error: %v", err)
			}
			if lc.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", lc.Total, tt.wantTotal)
			}
			if lc.Sloc != tt.wantSloc {
				t.Errorf("Sloc = %d, want %d", lc.Sloc, tt.wantSloc)
			}
		})
	}
}

func TestCountLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200000) + "\n"
	lc, err := CountLines(BraceStyle(), strings.NewReader(long))
	if err != nil {
		t.Fatalf("CountLines error: %v", err)
	}
	if lc.Total != 1 || lc.Sloc != 1 {
		t.Errorf("got %+v, want {Total:1 Sloc:1}", lc)
	}
}

func TestCounter_CountReader(t *testing.T) {
	c := NewCounter(DefaultRegistry())

	if _, err := c.CountReader(".rb", strings.NewReader("x = 1\n# c\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CountReader(".rb", strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CountReader(".cpp", strings.NewReader("int x;\n")); err != nil {
		t.Fatal(err)
	}

	rb, _ := c.Table().Get(".rb")
	if rb != (ExtStats{Files: 2, Total: 2, Sloc: 1}) {
		t.Errorf(".rb = %+v, want {Files:2 Total:2 Sloc:1}", rb)
	}
	cpp, _ := c.Table().Get(".cpp")
	if cpp != (ExtStats{Files: 1, Total: 1, Sloc: 1}) {
		t.Errorf(".cpp = %+v, want {Files:1 Total:1 Sloc:1}", cpp)
	}
	if got := c.Table().TotalSloc(); got != 2 {
		t.Errorf("TotalSloc() = %d, want 2", got)
	}
}

func TestCounter_UnrecognizedExtension(t *testing.T) {
	c := NewCounter(DefaultRegistry())
	before := c.Table().Snapshot()

	lc, err := c.CountReader(".md", strings.NewReader("# Title\ntext\n"))
	if err != nil {
		t.Fatal(err)
	}
	if lc != (LineCount{}) {
		t.Errorf("unrecognized extension returned %+v", lc)
	}
	if c.Table().Has(".md") {
		t.Error("unrecognized extension created a table entry")
	}
	after := c.Table().Snapshot()
	for ext, s := range before {
		if after[ext] != s {
			t.Errorf("%s changed from %+v to %+v", ext, s, after[ext])
		}
	}
}

func TestCounter_NilClassifierKeepsEntry(t *testing.T) {
	reg := DefaultRegistry()
	reg.Register(".y", nil)
	c := NewCounter(reg)

	if _, err := c.CountReader(".y", strings.NewReader("%%\nrule: x;\n")); err != nil {
		t.Fatal(err)
	}
	s, ok := c.Table().Get(".y")
	if !ok {
		t.Fatal(".y should have a table entry")
	}
	if s != (ExtStats{}) {
		t.Errorf(".y = %+v, want zero", s)
	}
}

type failingReader struct{ after string }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.after != "" {
		n := copy(p, r.after)
		r.after = r.after[n:]
		return n, nil
	}
	return 0, errors.New("disk on fire")
}

func TestCounter_ReadErrorLeavesTableUntouched(t *testing.T) {
	c := NewCounter(DefaultRegistry())
	if _, err := c.CountReader(".c", strings.NewReader("int a;\n")); err != nil {
		t.Fatal(err)
	}

	_, err := c.CountReader(".c", &failingReader{after: "int b;\nint c;\n"})
	if err == nil {
		t.Fatal("expected read error")
	}

	s, _ := c.Table().Get(".c")
	if s != (ExtStats{Files: 1, Total: 1, Sloc: 1}) {
		t.Errorf(".c = %+v, want {Files:1 Total:1 Sloc:1}", s)
	}
}

type fakeSource struct {
	ext   string
	calls int
}

func (f *fakeSource) Supports(ext string) bool { return ext == f.ext }

func (f *fakeSource) CountSource(ext string, src []byte) (LineCount, error) {
	f.calls++
	return LineCount{Total: 10, Sloc: 4}, nil
}

func TestCounter_WithSourceCounter(t *testing.T) {
	src := &fakeSource{ext: ".cpp"}
	c := NewCounter(DefaultRegistry(), WithSourceCounter(src))

	if _, err := c.CountReader(".cpp", strings.NewReader("ignored\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CountReader(".rb", strings.NewReader("x\n")); err != nil {
		t.Fatal(err)
	}

	if src.calls != 1 {
		t.Errorf("source counter called %d times, want 1", src.calls)
	}
	cpp, _ := c.Table().Get(".cpp")
	if cpp != (ExtStats{Files: 1, Total: 10, Sloc: 4}) {
		t.Errorf(".cpp = %+v", cpp)
	}
	rb, _ := c.Table().Get(".rb")
	if rb != (ExtStats{Files: 1, Total: 1, Sloc: 1}) {
		t.Errorf(".rb = %+v", rb)
	}
}

func TestCounter_SlocNeverExceedsTotal(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"a\nb\nc",
		"# x\ny\n",
		"/* a */\nint b;\n * c\n",
		"\r\n\r\nx\r\n",
	}
	c := NewCounter(DefaultRegistry())
	for _, in := range inputs {
		for _, ext := range []string{".rb", ".h"} {
			if _, err := c.CountReader(ext, strings.NewReader(in)); err != nil {
				t.Fatal(err)
			}
			for e, s := range c.Table().Snapshot() {
				if s.Sloc > s.Total {
					t.Fatalf("%s: sloc %d > total %d after %q", e, s.Sloc, s.Total, in)
				}
			}
		}
	}
}
