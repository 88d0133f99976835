package regions

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// Reader reads regions from the first columns of a BED stream.
type Reader struct {
	r    *bufio.Reader
	line int
}

// NewReader returns a new Reader over r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

func skip(line []byte) bool {
	if len(line) == 0 {
		return true
	}
	for _, prefix := range [][]byte{[]byte("#"), []byte("track"), []byte("browser")} {
		if bytes.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Read returns the next region. It returns io.EOF at the end of the stream.
func (r *Reader) Read() (Region, error) {
	var line []byte
	var err error
	for {
		line, err = r.r.ReadBytes('\n')
		if len(line) > 0 {
			r.line++
		}
		line = bytes.TrimSpace(line)
		if !skip(line) {
			break
		}
		if err != nil {
			return Region{}, err
		}
	}
	fields := bytes.Fields(line)
	if len(fields) < 3 {
		return Region{}, fmt.Errorf("line %d: expected at least 3 fields, got %d", r.line, len(fields))
	}
	start, err := strconv.Atoi(string(fields[1]))
	if err != nil {
		return Region{}, fmt.Errorf("line %d: parsing start: %v", r.line, err)
	}
	end, err := strconv.Atoi(string(fields[2]))
	if err != nil {
		return Region{}, fmt.Errorf("line %d: parsing end: %v", r.line, err)
	}
	if start < 0 || end <= start {
		return Region{}, fmt.Errorf("line %d: invalid interval %d-%d", r.line, start, end)
	}
	var name string
	if len(fields) > 3 {
		name = string(fields[3])
	}
	return NewRegion(string(fields[0]), start, end, name), nil
}
