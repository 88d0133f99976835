package maf

import (
	"fmt"
	"strings"

	"github.com/guigolab/malign/utils"
)

// Alignment is implemented by anything that can return subject and query
// sequences for a range of subject coordinates.
type Alignment interface {
	Start() int
	End() int
	SourceSequence() string
	QuerySequence() string
	SourceRange(start, end int) (string, error)
	QueryRange(start, end int) (string, error)
}

// Compound is a read-only view over a run of consecutive blocks. The blocks
// are borrowed from the Index that produced them.
type Compound struct {
	blocks []*Block
}

// Blocks returns the number of blocks in c.
func (c *Compound) Blocks() int {
	return len(c.blocks)
}

// Block returns the i-th block of c.
func (c *Compound) Block(i int) *Block {
	return c.blocks[i]
}

// Start returns the start of the first block.
func (c *Compound) Start() int {
	return c.blocks[0].Start()
}

// End returns the end of the last block.
func (c *Compound) End() int {
	return c.blocks[len(c.blocks)-1].End()
}

// SourceSequence returns the subject sequence over the whole compound.
func (c *Compound) SourceSequence() string {
	s, _ := c.SourceRange(c.Start(), c.End())
	return s
}

// QuerySequence returns the query sequence over the whole compound.
func (c *Compound) QuerySequence() string {
	s, _ := c.QueryRange(c.Start(), c.End())
	return s
}

// SourceRange concatenates the subject sequence of every block intersecting [start,end).
func (c *Compound) SourceRange(start, end int) (string, error) {
	return c.sequence(start, end, (*Block).SourceRange)
}

// QueryRange concatenates the query sequence of every block intersecting [start,end).
func (c *Compound) QueryRange(start, end int) (string, error) {
	return c.sequence(start, end, (*Block).QueryRange)
}

func (c *Compound) sequence(start, end int, get func(*Block, int, int) (string, error)) (string, error) {
	if start >= end {
		return "", fmt.Errorf("%w: start %d is not less than end %d", ErrOutOfRange, start, end)
	}
	var sb strings.Builder
	for _, b := range c.blocks {
		if b.End() < start {
			continue
		}
		if b.Start() > end {
			break
		}
		s, e := utils.Max(start, b.Start()), utils.Min(end, b.End())
		// a block touching the range only at a boundary adds no columns
		if s >= e {
			continue
		}
		seq, err := get(b, s, e)
		if err != nil {
			return "", err
		}
		sb.WriteString(seq)
	}
	return sb.String(), nil
}

// Builder accumulates blocks into a Compound.
type Builder struct {
	blocks []*Block
	built  bool
}

// Add appends b to the builder. Blocks must be added in subject order.
func (bl *Builder) Add(b *Block) {
	if bl.built {
		panic("maf: Add called after Build")
	}
	bl.blocks = append(bl.blocks, b)
}

// Build returns a Compound over the added blocks. The builder cannot be used afterwards.
func (bl *Builder) Build() *Compound {
	bl.built = true
	return &Compound{bl.blocks}
}
