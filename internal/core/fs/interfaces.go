// Package fs implements the engine's layered file system: named devices
// composed into lookup stacks, with asynchronous reads whose completions
// only ever run inside UpdateAsyncTransactions on the calling goroutine.
package fs

// Device is a single mountable storage backend.
type Device interface {
	// Name identifies the device inside a stack string such as "memory:disk".
	Name() string

	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error

	Close() error
}

// ReadCallback receives the result of an asynchronous read. It runs on the
// goroutine that calls UpdateAsyncTransactions.
type ReadCallback func(path string, data []byte, err error)

// FileSystem is the façade's view of storage. Reads resolve through the
// default device stack, writes go to the save stack.
type FileSystem interface {
	Mount(d Device)
	SetDefaultDevice(stack string) error
	SetSaveDevice(stack string) error

	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error

	// ReadAsync queues a read on a background worker. The callback is
	// deferred until the next UpdateAsyncTransactions call.
	ReadAsync(path string, cb ReadCallback)

	// UpdateAsyncTransactions runs every completion queued since the last
	// call. This is the single point per frame where async I/O callbacks
	// are allowed to execute.
	UpdateAsyncTransactions()

	Close() error
}
