package segment

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped is a read-only memory mapping of one byte range of a file.
type Mapped struct {
	region []byte
	data   []byte
}

// Open maps length bytes of the file at path starting at start. The file
// itself is closed before returning; the mapping stays valid until Close.
func Open(path string, start, length int64) (*Mapped, error) {
	if length == 0 {
		return &Mapped{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	defer f.Close()

	// mmap offsets have to be page aligned.
	pageSize := int64(os.Getpagesize())
	aligned := start &^ (pageSize - 1)
	skip := start - aligned

	region, err := unix.Mmap(int(f.Fd()), aligned, int(skip+length), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unable to mmap [%d, %d): %w", start, start+length, err)
	}
	_ = unix.Madvise(region, unix.MADV_SEQUENTIAL)

	return &Mapped{
		region: region,
		data:   region[skip:],
	}, nil
}

// Bytes returns the mapped range, indexed from zero. It must not be used
// after Close.
func (m *Mapped) Bytes() []byte {
	return m.data
}

func (m *Mapped) Len() int {
	return len(m.data)
}

func (m *Mapped) Close() error {
	if m.region == nil {
		return nil
	}
	region := m.region
	m.region, m.data = nil, nil
	if err := unix.Munmap(region); err != nil {
		return fmt.Errorf("unable to munmap: %w", err)
	}
	return nil
}
