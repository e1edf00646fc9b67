package turboply

import "errors"

// Error kinds. Every failure produced by this package wraps exactly one of
// these sentinels; callers discriminate with errors.Is.
var (
	// ErrFormat covers malformed or unsupported headers: missing magic,
	// encoding-line mismatch, unknown scalar token, a property declared
	// without a parent element, duplicate element registration and
	// header-already-written.
	ErrFormat = errors.New("turboply: format error")

	// ErrBind covers column-binding failures: missing required property,
	// scalar/list shape mismatch, element row-count mismatch across specs,
	// fixed-capacity storage size mismatch and conflicting specs.
	ErrBind = errors.New("turboply: bind error")

	// ErrParse covers malformed ASCII numeric tokens in row data.
	ErrParse = errors.New("turboply: parse error")

	// ErrIO covers file open/map failures and reads or writes past the
	// extent of a mapped region.
	ErrIO = errors.New("turboply: io error")
)
