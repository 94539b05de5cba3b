package fs

import "errors"

var (
	ErrFileNotFound   = errors.New("fs: file not found")
	ErrUnknownDevice  = errors.New("fs: unknown device in stack")
	ErrEmptyStack     = errors.New("fs: empty device stack")
	ErrClosed         = errors.New("fs: file system is closed")
	ErrNoWriteSupport = errors.New("fs: device does not support writes")
)
