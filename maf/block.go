package maf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Gap is the alignment gap character.
const Gap = '-'

var (
	// ErrLengthMismatch is returned when the subject and query base strings of a block differ in length.
	ErrLengthMismatch = errors.New("base strings are not the same length")
	// ErrOutOfRange is returned when a sequence range is empty or falls outside an alignment.
	ErrOutOfRange = errors.New("range outside of alignment")
)

// Side holds the coordinate metadata of one component of an alignment block.
type Side struct {
	Contig  string `json:"contig"`
	Start   int    `json:"start"`
	Size    int    `json:"size"`
	Strand  string `json:"strand"`
	SrcSize int    `json:"src_size"`
}

// End returns Start+Size.
func (s Side) End() int {
	return s.Start + s.Size
}

// String returns the string representation of a Side
func (s Side) String() string {
	return fmt.Sprintf("%s:%d-%d:%s", s.Contig, s.Start, s.End(), s.Strand)
}

// Block is a single pairwise alignment block. Both base strings share the same
// columns, so an index range computed on the subject string applies unchanged
// to the query string.
type Block struct {
	subject, query Side
	sbases, qbases string
}

// NewBlock returns a new Block from the raw subject and query fields. Each side
// must hold six fields in MAF order: contig, start, size, strand, source size
// and bases. Columns where both sides are gaps are removed.
func NewBlock(subject, query []string) (*Block, error) {
	s, sbases, err := parseSide(subject)
	if err != nil {
		return nil, fmt.Errorf("subject: %v", err)
	}
	q, qbases, err := parseSide(query)
	if err != nil {
		return nil, fmt.Errorf("query: %v", err)
	}
	sbases, qbases, err = conform(sbases, qbases)
	if err != nil {
		return nil, err
	}
	return &Block{s, q, sbases, qbases}, nil
}

func parseSide(fields []string) (side Side, bases string, err error) {
	if len(fields) != 6 {
		return side, "", fmt.Errorf("expected 6 fields, got %d", len(fields))
	}
	side.Contig = fields[0]
	if side.Start, err = strconv.Atoi(fields[1]); err != nil {
		return side, "", fmt.Errorf("parsing start: %v", err)
	}
	if side.Size, err = strconv.Atoi(fields[2]); err != nil {
		return side, "", fmt.Errorf("parsing size: %v", err)
	}
	side.Strand = fields[3]
	if side.SrcSize, err = strconv.Atoi(fields[4]); err != nil {
		return side, "", fmt.Errorf("parsing source size: %v", err)
	}
	return side, fields[5], nil
}

// conform drops the columns where both b1 and b2 have a gap.
func conform(b1, b2 string) (string, string, error) {
	if len(b1) != len(b2) {
		return "", "", fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(b1), len(b2))
	}
	if strings.IndexByte(b1, Gap) < 0 || strings.IndexByte(b2, Gap) < 0 {
		return b1, b2, nil
	}
	var o1, o2 strings.Builder
	o1.Grow(len(b1))
	o2.Grow(len(b2))
	for i := 0; i < len(b1); i++ {
		if b1[i] != Gap || b2[i] != Gap {
			o1.WriteByte(b1[i])
			o2.WriteByte(b2[i])
		}
	}
	return o1.String(), o2.String(), nil
}

// Subject returns the subject (reference) component metadata.
func (b *Block) Subject() Side {
	return b.subject
}

// Query returns the query component metadata.
func (b *Block) Query() Side {
	return b.query
}

// Start returns the subject start of the block.
func (b *Block) Start() int {
	return b.subject.Start
}

// End returns the subject end of the block.
func (b *Block) End() int {
	return b.subject.End()
}

// Columns returns the number of alignment columns.
func (b *Block) Columns() int {
	return len(b.sbases)
}

// SourceSequence returns the whole gapped subject string.
func (b *Block) SourceSequence() string {
	return b.sbases
}

// QuerySequence returns the whole gapped query string.
func (b *Block) QuerySequence() string {
	return b.qbases
}

// SourceRange returns the gapped subject string covering the subject range [start,end).
func (b *Block) SourceRange(start, end int) (string, error) {
	i, j, err := b.offsets(start, end)
	if err != nil {
		return "", err
	}
	return b.sbases[i:j], nil
}

// QueryRange returns the gapped query string aligned to the subject range [start,end).
func (b *Block) QueryRange(start, end int) (string, error) {
	i, j, err := b.offsets(start, end)
	if err != nil {
		return "", err
	}
	return b.qbases[i:j], nil
}

// offsets maps the subject range [start,end) to column indexes. The start
// column is the last column seen while the coordinate counter equals start,
// the end column is the one whose base pushes the counter past end.
func (b *Block) offsets(start, end int) (int, int, error) {
	if start >= end {
		return 0, 0, fmt.Errorf("%w: start %d is not less than end %d", ErrOutOfRange, start, end)
	}
	if start < b.Start() {
		return 0, 0, fmt.Errorf("%w: start %d is before %d", ErrOutOfRange, start, b.Start())
	}
	if end > b.End() {
		return 0, 0, fmt.Errorf("%w: end %d is after %d", ErrOutOfRange, end, b.End())
	}
	if start == b.Start() && end == b.End() {
		return 0, len(b.sbases), nil
	}
	sindex, eindex := 0, len(b.sbases)
	counter := b.Start()
	for i := 0; i < len(b.sbases); i++ {
		if counter == start {
			sindex = i
		}
		if b.sbases[i] != Gap {
			counter++
		}
		if counter > end {
			eindex = i
			break
		}
	}
	return sindex, eindex, nil
}

// String returns the string representation of a Block
func (b *Block) String() string {
	return fmt.Sprintf("%s|%s", b.subject, b.query)
}

func countBases(s string) int {
	return len(s) - strings.Count(s, string(Gap))
}
