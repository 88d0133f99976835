// Package regions reads query regions from BED files.
package regions

import (
	"fmt"
	"strings"
)

// Region is a zero-based half-open interval on a chromosome.
type Region struct {
	Chrom      string
	Start, End int
	Name       string
}

// NewRegion returns a new Region. A leading "chr" is removed from chrom so
// that it matches the alignment catalog keys.
func NewRegion(chrom string, start, end int, name string) Region {
	return Region{strings.TrimPrefix(chrom, "chr"), start, end, name}
}

// String returns the string representation of a Region
func (r Region) String() string {
	if r.Name != "" {
		return fmt.Sprintf("%s:%d-%d:%s", r.Chrom, r.Start, r.End, r.Name)
	}
	return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
}
