package segment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Segment is a line aligned byte range [Start, End) of the input.
type Segment struct {
	Start int64
	End   int64
}

func (s Segment) Len() int64 {
	return s.End - s.Start
}

const scanChunk = 128

// Locate returns the offset just after the first newline at or after
// candidate, or size if there is none before the end of the input.
func Locate(r io.ReaderAt, candidate, size int64) (int64, error) {
	buf := make([]byte, scanChunk)

	pos := candidate
	for pos < size {
		n, err := r.ReadAt(buf[:min(int64(len(buf)), size-pos)], pos)
		if i := bytes.IndexByte(buf[:n], '\n'); i >= 0 {
			return pos + int64(i) + 1, nil
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("unable to read at %d: %w", pos, err)
		}
		pos += int64(n)
	}
	return size, nil
}

// Plan splits [0, size) into at most desired line aligned segments. The
// first segment always starts at 0 and the last always ends at size;
// empty segments are left out.
func Plan(r io.ReaderAt, size int64, desired int) ([]Segment, error) {
	desired = max(desired, 1)
	step := size / int64(desired)

	boundaries := make([]int64, desired+1)
	boundaries[desired] = size
	for i := 1; i < desired; i++ {
		b, err := Locate(r, int64(i)*step, size)
		if err != nil {
			return nil, fmt.Errorf("unable to locate boundary %d: %w", i, err)
		}
		boundaries[i] = b
	}

	segments := make([]Segment, 0, desired)
	for i := 0; i < desired; i++ {
		if boundaries[i] == boundaries[i+1] {
			continue
		}
		segments = append(segments, Segment{Start: boundaries[i], End: boundaries[i+1]})
	}
	return segments, nil
}
