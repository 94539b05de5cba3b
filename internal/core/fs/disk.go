package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

var _ Device = (*DiskDevice)(nil)

// DiskDevice serves files from the host file system, rooted at the
// engine's base path.
type DiskDevice struct {
	root string
}

func NewDiskDevice(root string) *DiskDevice {
	return &DiskDevice{root: root}
}

func (d *DiskDevice) Name() string { return "disk" }

func (d *DiskDevice) resolve(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(path))
}

func (d *DiskDevice) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(d.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	return data, err
}

func (d *DiskDevice) WriteFile(path string, data []byte) error {
	full := d.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (d *DiskDevice) Close() error { return nil }
