//go:build !cgo

package sourcestats

import (
	"errors"
	"testing"
)

func TestSyntaxStub(t *testing.T) {
	if SyntaxAvailable() {
		t.Error("SyntaxAvailable() = true without cgo")
	}
	if _, err := NewSyntaxCounter(); !errors.Is(err, ErrSyntaxUnavailable) {
		t.Errorf("NewSyntaxCounter() error = %v, want ErrSyntaxUnavailable", err)
	}
}
