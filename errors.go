package jsonk

import "github.com/pkg/errors"

// kindError is a comparable sentinel, the same shape as the teacher's
// jsonError string-constant type (json/number.go), extended with the error
// classification spec.md §7 requires. Call sites wrap a sentinel with
// github.com/pkg/errors to attach position/context without losing
// errors.Is comparability to the sentinel.
type kindError string

func (e kindError) Error() string { return string(e) }

// Sentinel errors, one per error kind named in spec.md §7. Use errors.Is to
// classify a failure returned from Parse, Serialize, or ApplyPatch.
const (
	// ErrSyntax covers lexical/syntactic failures: unrecognized token,
	// unterminated string, invalid escape, invalid number, unexpected
	// structural character.
	ErrSyntax kindError = "jsonk: syntax error"

	// ErrDepth covers nesting deeper than MaxDepth.
	ErrDepth kindError = "jsonk: max depth exceeded"

	// ErrLimit covers object/array/string/key size limits exceeded.
	ErrLimit kindError = "jsonk: limit exceeded"

	// ErrMemory covers allocation failure or per-parse budget exhaustion.
	ErrMemory kindError = "jsonk: memory exhausted"

	// ErrOverflow covers a destination buffer too small to hold a result.
	ErrOverflow kindError = "jsonk: buffer overflow"

	// ErrPath covers a malformed path passed to SetPath: an empty
	// component or a path longer than MaxPathLen. GetPath reports a missing
	// component or a non-object hop by returning nil instead.
	ErrPath kindError = "jsonk: invalid path"

	// ErrType covers a patch target or patch body that is not an Object.
	ErrType kindError = "jsonk: not an object"
)

// wrapf annotates a sentinel with positional context, the way the pack's
// grafana-loki repo annotates sentinel errors with github.com/pkg/errors
// rather than losing the sentinel under a bare fmt.Errorf("%s: %v", ...).
func wrapf(sentinel kindError, format string, args ...any) error {
	return errors.Wrapf(sentinel, format, args...)
}
