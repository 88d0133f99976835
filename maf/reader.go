package maf

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"runtime"

	"github.com/biogo/hts/bgzf"
)

// Reader is a buffered reader over a possibly compressed MAF stream.
type Reader struct {
	*bufio.Reader
	closers []io.Closer
}

// Close releases the decompressor and the underlying file, if any.
func (r *Reader) Close() error {
	var err error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if cerr := r.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// CheckBytes peeks at a buffered stream and checks if the first read bytes match.
func CheckBytes(b *bufio.Reader, buf []byte) (bool, error) {
	m, err := b.Peek(len(buf))
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	for i := range buf {
		if m[i] != buf[i] {
			return false, nil
		}
	}
	return true, nil
}

func isGzip(b *bufio.Reader) (bool, error) {
	return CheckBytes(b, []byte{0x1f, 0x8b})
}

func isBzip2(b *bufio.Reader) (bool, error) {
	return CheckBytes(b, []byte{0x42, 0x5a, 0x68})
}

// isBgzf checks for a gzip member with the FEXTRA flag and a leading BC subfield.
func isBgzf(b *bufio.Reader) (bool, error) {
	m, err := b.Peek(14)
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return m[0] == 0x1f && m[1] == 0x8b && m[2] == 8 && m[3]&4 != 0 && m[12] == 'B' && m[13] == 'C', nil
}

// NewReader returns a Reader over r. BGZF, gzip and bzip2 input is
// decompressed transparently; anything else is read as plain text.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	if ok, err := isBgzf(br); err != nil {
		return nil, err
	} else if ok {
		bg, err := bgzf.NewReader(br, runtime.GOMAXPROCS(0))
		if err != nil {
			return nil, err
		}
		return &Reader{bufio.NewReader(bg), []io.Closer{bg}}, nil
	}
	if ok, err := isGzip(br); err != nil {
		return nil, err
	} else if ok {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &Reader{bufio.NewReader(gz), []io.Closer{gz}}, nil
	}
	if ok, err := isBzip2(br); err != nil {
		return nil, err
	} else if ok {
		return &Reader{bufio.NewReader(bzip2.NewReader(br)), nil}, nil
	}
	return &Reader{br, nil}, nil
}

// Open opens the named MAF file for reading.
func Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closers = append([]io.Closer{f}, r.closers...)
	return r, nil
}
