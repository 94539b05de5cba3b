package engine

import "errors"

var (
	// ErrBadMagic means the stream does not start with the engine's magic
	// constant: a foreign or corrupted file.
	ErrBadMagic = errors.New("engine: wrong or corrupted save stream")
	// ErrUnsupportedVersion means the stream was written by a newer build.
	// Older known versions are always readable; the reverse never is.
	ErrUnsupportedVersion = errors.New("engine: unsupported save version")
)
