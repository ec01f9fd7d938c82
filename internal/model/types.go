package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultBranchSentinel is the branch name assigned to a worktree when the
// listing reports no branch (detached HEAD or bare repository).
const DefaultBranchSentinel = "main"

// Worktree represents one linked working directory of a repository.
type Worktree struct {
	// Path is the absolute filesystem path to the worktree. It is the
	// unique key within a registry.
	Path string `json:"path" yaml:"path"`

	// Branch is the checked-out branch name, or DefaultBranchSentinel when
	// the listing reports none.
	Branch string `json:"branch" yaml:"branch"`

	// IsMain is true iff Path equals the primary repository root known to
	// the caller. It is derived, not enforced: a listing may produce zero or
	// several main records.
	IsMain bool `json:"isMain" yaml:"isMain"`

	// Detached is true when the listing reports no branch (detached HEAD,
	// bare repository or a missing branch field). Branch then holds the
	// sentinel for display only and must never be passed to git.
	Detached bool `json:"detached,omitempty" yaml:"detached,omitempty"`
}

// DeletionMode selects what a delete batch removes for each entry.
type DeletionMode string

const (
	// DeleteDirectoryOnly removes the worktree directory and leaves the branch.
	DeleteDirectoryOnly DeletionMode = "directory-only"

	// DeleteDirectoryAndBranch removes the worktree directory, then force
	// deletes its branch. Branch deletion failure is tolerated.
	DeleteDirectoryAndBranch DeletionMode = "directory-and-branch"
)

// String returns the string representation of DeletionMode.
func (m DeletionMode) String() string {
	return string(m)
}

// IsValid checks whether the DeletionMode value is one of the predefined modes.
func (m DeletionMode) IsValid() bool {
	switch m {
	case DeleteDirectoryOnly, DeleteDirectoryAndBranch:
		return true
	default:
		return false
	}
}

// DeletesBranch reports whether the mode cascades to branch deletion.
func (m DeletionMode) DeletesBranch() bool {
	return m == DeleteDirectoryAndBranch
}

// ParseDeletionMode converts a string to a DeletionMode.
// Returns an error if the string does not match any valid mode.
func ParseDeletionMode(s string) (DeletionMode, error) {
	mode := DeletionMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid deletion mode: %q (valid: directory-only, directory-and-branch)", s)
	}
	return mode, nil
}

// DeletionEntry is one (path, branch) pair chosen for deletion.
type DeletionEntry struct {
	Path   string `json:"path" yaml:"path"`
	Branch string `json:"branch" yaml:"branch"`

	// Detached entries have no branch of their own; branch deletion is
	// skipped for them in every mode.
	Detached bool `json:"detached,omitempty" yaml:"detached,omitempty"`
}

// OwnsBranch reports whether Branch names a real branch checked out in
// this worktree.
func (e DeletionEntry) OwnsBranch() bool {
	return !e.Detached && e.Branch != ""
}

// DeletionSelection is the ordered set of entries for a single delete batch
// together with the chosen mode.
type DeletionSelection struct {
	Entries []DeletionEntry
	Mode    DeletionMode
}

// NewDeletionSelection builds a selection from registry records, dropping
// every main worktree. This is the only place selections are constructed,
// which is what keeps the main worktree out of any delete batch.
func NewDeletionSelection(worktrees []Worktree, mode DeletionMode) DeletionSelection {
	sel := DeletionSelection{Mode: mode}
	for _, wt := range worktrees {
		if wt.IsMain {
			continue
		}
		sel.Entries = append(sel.Entries, DeletionEntry{Path: wt.Path, Branch: wt.Branch, Detached: wt.Detached})
	}
	return sel
}

// Deletable returns the records eligible for deletion (every non-main worktree),
// preserving order.
func Deletable(worktrees []Worktree) []Worktree {
	out := make([]Worktree, 0, len(worktrees))
	for _, wt := range worktrees {
		if !wt.IsMain {
			out = append(out, wt)
		}
	}
	return out
}

// branchNameRegex restricts branch names to characters that are safe to pass
// to git and to use as path segments: no spaces, no shell metacharacters.
var branchNameRegex = regexp.MustCompile(`^[a-zA-Z0-9/_-]+$`)

// Validation messages shown inline by the branch prompt.
const (
	MsgBranchEmpty   = "Branch name cannot be empty"
	MsgBranchInvalid = "Branch name contains invalid characters"
)

// ValidateBranchName checks a user-supplied branch name before any git
// invocation. It returns a CLIError with ExitValidationError carrying the
// message for the specific violation.
func ValidateBranchName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewCLIError(ExitValidationError, MsgBranchEmpty)
	}
	if !branchNameRegex.MatchString(name) {
		return WrapCLIError(ExitValidationError, MsgBranchInvalid, fmt.Errorf("%q", name))
	}
	return nil
}

// ExitCode defines standard CLI exit codes. These codes allow scripts to
// programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitValidationError indicates user input was rejected before any
	// external command ran (bad branch name, empty selection, path collision).
	ExitValidationError ExitCode = 2

	// ExitNotInRepository indicates no Git workspace could be found.
	ExitNotInRepository ExitCode = 3

	// ExitEditorError indicates the editor launcher failed.
	ExitEditorError ExitCode = 4

	// ExitGitError indicates a Git operation (worktree add/remove) failed.
	ExitGitError ExitCode = 5

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// IsValidationError reports whether err was rejected as bad user input.
func IsValidationError(err error) bool {
	return HasExitCode(err, ExitValidationError)
}

// HasExitCode reports whether the first CLIError in err's chain carries
// the given code.
func HasExitCode(err error, code ExitCode) bool {
	var cliErr *CLIError
	return errors.As(err, &cliErr) && cliErr.Code == code
}
