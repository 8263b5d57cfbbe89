package gitcore

import "fmt"

// ErrorKind enumerates the user-facing error kinds from spec §7.
// The Command Façade type-switches on Kind to choose an exit code and message.
type ErrorKind int

const (
	// ErrUnknown covers anything not classified below (wrapped, not surfaced raw).
	ErrUnknown ErrorKind = iota
	ErrNotARepository
	ErrAlreadyInitialized
	ErrPathNotFound
	ErrEmptyIndex
	ErrUnknownTarget
	ErrBranchExists
	ErrNoCommits
	ErrMissingObject
	ErrMalformedObject
	ErrNoCommonAncestor
	ErrMergeConflict
	ErrDetachedCommit
)

var kindNames = map[ErrorKind]string{
	ErrUnknown:            "Unknown",
	ErrNotARepository:     "NotARepository",
	ErrAlreadyInitialized: "AlreadyInitialized",
	ErrPathNotFound:       "PathNotFound",
	ErrEmptyIndex:         "EmptyIndex",
	ErrUnknownTarget:      "UnknownTarget",
	ErrBranchExists:       "BranchExists",
	ErrNoCommits:          "NoCommits",
	ErrMissingObject:      "MissingObject",
	ErrMalformedObject:    "MalformedObject",
	ErrNoCommonAncestor:   "NoCommonAncestor",
	ErrMergeConflict:      "MergeConflict",
	ErrDetachedCommit:     "DetachedCommit",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// CoreError is the structured error type engines return for every
// spec-recognized failure mode. The façade switches on Kind rather than
// matching error strings.
type CoreError struct {
	Kind ErrorKind
	Msg  string
	Err  error // optional wrapped cause
}

func (e *CoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *CoreError) Unwrap() error { return e.Err }

// newErr constructs a CoreError with a formatted message.
func newErr(kind ErrorKind, format string, args ...any) *CoreError {
	return &CoreError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// wrapErr constructs a CoreError wrapping a lower-level cause.
func wrapErr(kind ErrorKind, msg string, cause error) *CoreError {
	return &CoreError{Kind: kind, Msg: msg, Err: cause}
}
