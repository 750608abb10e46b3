package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// PathNotFound indicates a traversal root does not exist
	PathNotFound ErrorCode = "PATH_NOT_FOUND"
	// UnreadableFile indicates a recognized source file could not be opened or read
	UnreadableFile ErrorCode = "UNREADABLE_FILE"
	// UnreadableDir indicates a directory could not be listed
	UnreadableDir ErrorCode = "UNREADABLE_DIR"
	// VersionStore indicates the persisted version could not be loaded or saved
	VersionStore ErrorCode = "VERSION_STORE"
	// FragmentMissing indicates the static README fragment was not found
	FragmentMissing ErrorCode = "FRAGMENT_MISSING"
	// ConfigInvalid indicates a configuration or declaration file is malformed
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditFile suggests editing a file by hand
	EditFile FixActionType = "edit-file"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Path        string        `json:"path,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// GenError represents a readmegen error with code, message, and suggestions
type GenError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewGenError creates a new GenError
func NewGenError(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *GenError {
	return &GenError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *GenError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GenError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *GenError) WithDetails(details interface{}) *GenError {
	e.Details = details
	return e
}

// AsGenError returns the first GenError in err's chain.
func AsGenError(err error) (*GenError, bool) {
	var ge *GenError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// CodeOf returns the code of the first GenError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	if ge, ok := AsGenError(err); ok {
		return ge.Code
	}
	return ""
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	PathNotFound: {
		{
			Type:        EditFile,
			Path:        ".readmegen.yaml",
			Description: "Remove the missing path from roots, or set missingRoot: warn",
		},
	},
	FragmentMissing: {
		{
			Type:        EditFile,
			Path:        "_readme.md",
			Description: "Create the fragment file, or set readme.allowMissingFragment: true",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "readmegen init --force",
			Safe:        false,
			Description: "Regenerate the default configuration",
		},
	},
	VersionStore: {
		{
			Type:        RunCommand,
			Command:     "readmegen version show",
			Safe:        true,
			Description: "Inspect the persisted version",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
