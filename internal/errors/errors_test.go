package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewGenError(t *testing.T) {
	cause := errors.New("underlying error")
	fixes := []FixAction{{Type: RunCommand, Command: "readmegen version show"}}

	err := NewGenError(VersionStore, "failed to load version", cause, fixes)

	if err.Code != VersionStore {
		t.Errorf("Code = %v, want %v", err.Code, VersionStore)
	}
	if err.Message != "failed to load version" {
		t.Errorf("Message = %q, want %q", err.Message, "failed to load version")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
}

func TestGenError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      UnreadableFile,
			message:   "cannot read src/main.cpp",
			cause:     errors.New("permission denied"),
			wantParts: []string{"UNREADABLE_FILE", "cannot read src/main.cpp", "permission denied"},
		},
		{
			name:      "without cause",
			code:      PathNotFound,
			message:   "root 'incl' does not exist",
			cause:     nil,
			wantParts: []string{"PATH_NOT_FOUND", "root 'incl' does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewGenError(tt.code, tt.message, tt.cause, nil).Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestGenError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewGenError(InternalError, "something went wrong", cause, nil)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}

	errNoCause := NewGenError(FragmentMissing, "no fragment", nil, nil)
	if errNoCause.Unwrap() != nil {
		t.Errorf("Unwrap() on error without cause should return nil")
	}
}

func TestGenError_WithDetails(t *testing.T) {
	err := NewGenError(ConfigInvalid, "bad style", nil, nil)
	result := err.WithDetails(map[string]string{"language": "python"})

	if result != err {
		t.Error("WithDetails should return the same error for chaining")
	}
	if err.Details == nil {
		t.Error("Details should be set")
	}
}

func TestCodeOf(t *testing.T) {
	inner := NewGenError(PathNotFound, "missing", nil, nil)
	wrapped := fmt.Errorf("count: %w", inner)

	if got := CodeOf(wrapped); got != PathNotFound {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, PathNotFound)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestAsGenError(t *testing.T) {
	inner := NewGenError(FragmentMissing, "no fragment", nil, nil)
	ge, ok := AsGenError(fmt.Errorf("generate: %w", inner))
	if !ok || ge != inner {
		t.Fatalf("AsGenError() = %v, %v; want inner error", ge, ok)
	}
	if _, ok := AsGenError(errors.New("plain")); ok {
		t.Error("AsGenError(plain) should report false")
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		wantNil bool
	}{
		{PathNotFound, false},
		{FragmentMissing, false},
		{ConfigInvalid, false},
		{VersionStore, false},
		{UnreadableFile, true},
		{InternalError, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			fixes := GetSuggestedFixes(tt.code)
			if tt.wantNil && fixes != nil {
				t.Errorf("GetSuggestedFixes(%v) = %v, want nil", tt.code, fixes)
			}
			if !tt.wantNil && len(fixes) == 0 {
				t.Errorf("GetSuggestedFixes(%v) returned no fixes", tt.code)
			}
		})
	}
}

func TestErrorCodes(t *testing.T) {
	codes := []ErrorCode{
		PathNotFound,
		UnreadableFile,
		UnreadableDir,
		VersionStore,
		FragmentMissing,
		ConfigInvalid,
		InternalError,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %v", code)
		}
		seen[code] = true
		if string(code) == "" {
			t.Error("Error code should not be empty")
		}
	}
}
