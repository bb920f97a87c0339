package convert

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrParse indicates the input is not well-formed XML.
	ErrParse = errors.New("convert: malformed XML")

	// ErrNoRoot indicates the input has no root element.
	ErrNoRoot = errors.New("convert: document has no root element")

	// ErrWrite indicates the converted document could not be stored.
	ErrWrite = errors.New("convert: could not write output")
)
