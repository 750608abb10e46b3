//go:build !cgo

package sourcestats

// SyntaxCounter is a stub for non-CGO builds.
type SyntaxCounter struct{}

// NewSyntaxCounter returns ErrSyntaxUnavailable when CGO is disabled.
func NewSyntaxCounter() (*SyntaxCounter, error) {
	return nil, ErrSyntaxUnavailable
}

// SyntaxAvailable returns false when CGO is disabled.
func SyntaxAvailable() bool {
	return false
}

// Supports always returns false.
func (s *SyntaxCounter) Supports(ext string) bool {
	return false
}

// CountSource always returns ErrSyntaxUnavailable.
func (s *SyntaxCounter) CountSource(ext string, src []byte) (LineCount, error) {
	return LineCount{}, ErrSyntaxUnavailable
}
