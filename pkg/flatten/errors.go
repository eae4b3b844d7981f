package flatten

import "errors"

// Sentinel errors classifying pipeline failures. Callers match them with
// errors.Is; the concrete cause is carried by wrapping. Malformed exclude
// patterns surface as ignore.ErrInvalidPattern from New.
var (
	// ErrExpand indicates a malformed glob in a configured path entry.
	ErrExpand = errors.New("invalid path glob")
	// ErrRead indicates an I/O failure on a file that passed discovery.
	ErrRead = errors.New("file read failed")
	// ErrEmit indicates a failure while writing the XML document.
	ErrEmit = errors.New("xml emission failed")
)
