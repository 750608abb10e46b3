//go:build cgo

package sourcestats

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/ruby"
)

// SyntaxCounter counts lines using tree-sitter comment nodes, so block
// comments are tracked across lines. A line is significant when it has at
// least one non-whitespace byte outside every comment node.
type SyntaxCounter struct {
	parser *sitter.Parser
}

// NewSyntaxCounter creates a tree-sitter backed SourceCounter.
func NewSyntaxCounter() (*SyntaxCounter, error) {
	return &SyntaxCounter{parser: sitter.NewParser()}, nil
}

// SyntaxAvailable reports whether syntax counting was compiled in.
func SyntaxAvailable() bool {
	return true
}

// syntaxLanguage returns the grammar for an extension.
func syntaxLanguage(ext string) *sitter.Language {
	switch ext {
	case ".c":
		return c.GetLanguage()
	case ".cpp", ".h":
		return cpp.GetLanguage()
	case ".rb":
		return ruby.GetLanguage()
	default:
		return nil
	}
}

// Supports implements SourceCounter.
func (s *SyntaxCounter) Supports(ext string) bool {
	return syntaxLanguage(ext) != nil
}

// CountSource implements SourceCounter.
func (s *SyntaxCounter) CountSource(ext string, src []byte) (LineCount, error) {
	lang := syntaxLanguage(ext)
	if lang == nil {
		return LineCount{}, fmt.Errorf("no grammar for %s", ext)
	}

	s.parser.SetLanguage(lang)
	tree, err := s.parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return LineCount{}, fmt.Errorf("parse error: %w", err)
	}
	defer tree.Close()

	comment := make([]bool, len(src))
	markComments(tree.RootNode(), comment)
	return countMasked(src, comment), nil
}

// markComments flags every byte covered by a comment node.
func markComments(root *sitter.Node, comment []bool) {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type() == "comment" {
			end := int(n.EndByte())
			if end > len(comment) {
				end = len(comment)
			}
			for i := int(n.StartByte()); i < end; i++ {
				comment[i] = true
			}
			continue
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); child != nil {
				stack = append(stack, child)
			}
		}
	}
}
