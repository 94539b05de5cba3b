package fs

import (
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const asyncWorkers = 4

var _ FileSystem = (*fileSystem)(nil)

type completion struct {
	path string
	data []byte
	err  error
	cb   ReadCallback
}

type fileSystem struct {
	mu           sync.Mutex
	devices      map[string]Device
	defaultStack []Device
	saveStack    []Device

	workers   errgroup.Group
	completed []completion
	closed    bool
}

// New creates an empty file system. Callers mount devices and pick the
// default and save stacks before first use.
func New() FileSystem {
	f := &fileSystem{devices: make(map[string]Device)}
	f.workers.SetLimit(asyncWorkers)
	return f
}

func (f *fileSystem) Mount(d Device) {
	f.mu.Lock()
	f.devices[d.Name()] = d
	f.mu.Unlock()
}

// resolveStack parses a "memory:disk" style stack string into the mounted
// devices, in lookup order.
func (f *fileSystem) resolveStack(stack string) ([]Device, error) {
	names := strings.Split(stack, ":")
	if len(names) == 0 || stack == "" {
		return nil, ErrEmptyStack
	}
	devices := make([]Device, 0, len(names))
	for _, name := range names {
		d, ok := f.devices[name]
		if !ok {
			return nil, ErrUnknownDevice
		}
		devices = append(devices, d)
	}
	return devices, nil
}

func (f *fileSystem) SetDefaultDevice(stack string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	devices, err := f.resolveStack(stack)
	if err != nil {
		return err
	}
	f.defaultStack = devices
	return nil
}

func (f *fileSystem) SetSaveDevice(stack string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	devices, err := f.resolveStack(stack)
	if err != nil {
		return err
	}
	f.saveStack = devices
	return nil
}

func (f *fileSystem) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	stack := f.defaultStack
	f.mu.Unlock()
	if len(stack) == 0 {
		return nil, ErrEmptyStack
	}
	for _, d := range stack {
		data, err := d.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if err != ErrFileNotFound {
			return nil, err
		}
	}
	return nil, ErrFileNotFound
}

// WriteFile writes through the save stack's first device.
func (f *fileSystem) WriteFile(path string, data []byte) error {
	f.mu.Lock()
	stack := f.saveStack
	f.mu.Unlock()
	if len(stack) == 0 {
		return ErrEmptyStack
	}
	return stack[0].WriteFile(path, data)
}

func (f *fileSystem) ReadAsync(path string, cb ReadCallback) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		cb(path, nil, ErrClosed)
		return
	}
	f.mu.Unlock()

	f.workers.Go(func() error {
		data, err := f.ReadFile(path)
		f.mu.Lock()
		f.completed = append(f.completed, completion{path: path, data: data, err: err, cb: cb})
		f.mu.Unlock()
		return nil
	})
}

func (f *fileSystem) UpdateAsyncTransactions() {
	f.mu.Lock()
	done := f.completed
	f.completed = nil
	f.mu.Unlock()

	for _, c := range done {
		c.cb(c.path, c.data, c.err)
	}
}

// Close waits for in-flight reads, drops queued completions unseen, and
// closes every mounted device.
func (f *fileSystem) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	if err := f.workers.Wait(); err != nil {
		return err
	}
	f.mu.Lock()
	f.completed = nil
	devices := f.devices
	f.devices = make(map[string]Device)
	f.mu.Unlock()

	for _, d := range devices {
		if err := d.Close(); err != nil {
			return err
		}
	}
	return nil
}
