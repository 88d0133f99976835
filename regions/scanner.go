package regions

import (
	"io"

	"github.com/guigolab/malign/maf"
)

type Scanner struct {
	r   *Reader
	reg Region
	err error
}

// NewScanner returns a new instance of a Scanner
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{
		r: NewReader(r),
	}
}

// Next reads the next region.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	s.reg, s.err = s.r.Read()
	return s.err == nil
}

// Error returns the first non-EOF error that was encountered by the Scanner.
func (s *Scanner) Error() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// Region returns the current region
func (s *Scanner) Region() Region {
	return s.reg
}

// ReadFile returns all regions of a possibly compressed BED file.
func ReadFile(name string) ([]Region, error) {
	f, err := maf.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var regs []Region
	s := NewScanner(f)
	for s.Next() {
		regs = append(regs, s.Region())
	}
	return regs, s.Error()
}
