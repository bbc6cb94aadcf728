package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// erased mimics unprogrammed EEPROM so a missing file reads as an
// uninitialized record.
const erased = 0xFF

// FileStore is a file-backed ByteStore holding a small fixed-size
// record.
type FileStore struct {
	path string
	size int
}

func NewFile(path string, size int) *FileStore {
	return &FileStore{path: path, size: size}
}

func (f *FileStore) ReadByte(addr int) (byte, error) {
	if addr < 0 || addr >= f.size {
		return 0, fmt.Errorf("read address %d out of range", addr)
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return erased, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", f.path, err)
	}
	if addr >= len(data) {
		return erased, nil
	}
	return data[addr], nil
}

func (f *FileStore) WriteByte(addr int, b byte) error {
	if addr < 0 || addr >= f.size {
		return fmt.Errorf("write address %d out of range", addr)
	}
	data, err := os.ReadFile(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", f.path, err)
	}
	for len(data) < f.size {
		data = append(data, erased)
	}
	data[addr] = b
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}
