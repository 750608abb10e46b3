package sourcestats

import "testing"

func TestCountMasked(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		comment   string // 'c' marks a comment byte
		wantTotal int
		wantSloc  int
	}{
		{"empty", "", "", 0, 0},
		{"code", "int x;\n", "       ", 1, 1},
		{"all comment", "/* a\n b */\n", "cccccccccc\n", 2, 0},
		{"code after comment", "/* a */ int y;\n", "ccccccc        ", 1, 1},
		{"blank lines", "\n  \n", "    ", 2, 0},
		{"unterminated", "x", " ", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := make([]bool, len(tt.src))
			for i := range mask {
				mask[i] = i < len(tt.comment) && tt.comment[i] == 'c'
			}
			lc := countMasked([]byte(tt.src), mask)
			if lc.Total != tt.wantTotal || lc.Sloc != tt.wantSloc {
				t.Errorf("countMasked = %+v, want {Total:%d Sloc:%d}", lc, tt.wantTotal, tt.wantSloc)
			}
		})
	}
}
