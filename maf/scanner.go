package maf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/guigolab/malign/stats"
	log "github.com/sirupsen/logrus"
)

const (
	sideFields  = 6
	blockFields = 2 * sideFields
	basesField  = sideFields - 1
	// emptyFiller fills the query of an e line whose status is not C.
	emptyFiller = '='
)

// fieldSet accumulates the raw fields of one paragraph.
type fieldSet struct {
	subject, query [sideFields]string
	sset, qset     [sideFields]bool
	kind           int
}

func (f *fieldSet) count() int {
	n := 0
	for i := 0; i < sideFields; i++ {
		if f.sset[i] {
			n++
		}
		if f.qset[i] {
			n++
		}
	}
	return n
}

func (f *fieldSet) empty() bool {
	return f.count() == 0
}

func (f *fieldSet) reset() {
	*f = fieldSet{}
}

func fill(dst *[sideFields]string, set *[sideFields]bool, tokens []string) {
	for i := 0; i < sideFields && i < len(tokens); i++ {
		dst[i] = tokens[i]
		set[i] = true
	}
}

func (f *fieldSet) setSubject(tokens []string) {
	fill(&f.subject, &f.sset, tokens)
}

func (f *fieldSet) setQuery(tokens []string, kind int) {
	fill(&f.query, &f.qset, tokens)
	f.kind = kind
}

// Scanner reads alignment blocks from a MAF stream. Lines whose source
// contains the subject name fill the subject side of a block, lines whose
// source contains the query name fill the query side.
type Scanner struct {
	r              *bufio.Reader
	subject, query string
	line           int
	fields         fieldSet
	block          *Block
	done           bool
	err            error
	stats          *stats.Load
}

// NewScanner returns a new instance of a Scanner
func NewScanner(r io.Reader, subject, query string) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{
		r:       br,
		subject: subject,
		query:   query,
		stats:   stats.NewLoad(),
	}
}

// Next advances to the next complete block. It returns false at the end of
// the stream or on the first error.
func (s *Scanner) Next() bool {
	s.block = nil
	for s.err == nil && !s.done {
		line, err := s.r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.err = err
				return false
			}
			s.done = true
		}
		var tokens []string
		if len(line) > 0 {
			s.line++
			tokens = strings.Fields(line)
		}
		if len(tokens) > 0 {
			s.consume(tokens)
		}
		if len(tokens) == 0 || s.done {
			s.block, s.err = s.flush()
			if s.block != nil {
				return true
			}
		}
	}
	return false
}

// Block returns the current block.
func (s *Scanner) Block() *Block {
	return s.block
}

// Error returns the first non-EOF error that was encountered by the Scanner.
func (s *Scanner) Error() error {
	return s.err
}

// Stats returns the load statistics collected so far.
func (s *Scanner) Stats() *stats.Load {
	return s.stats
}

func (s *Scanner) consume(tokens []string) {
	if len(tokens) < 2 {
		return
	}
	switch tokens[0] {
	case "s":
		if strings.Contains(tokens[1], s.subject) {
			s.fields.setSubject(tokens[1:])
		} else if strings.Contains(tokens[1], s.query) {
			s.fields.setQuery(tokens[1:], stats.QueryAligned)
		}
	case "e":
		if !strings.Contains(tokens[1], s.query) || !s.fields.sset[basesField] {
			return
		}
		n := len(s.fields.subject[basesField])
		kind, filler := stats.QueryEmptyOther, string(emptyFiller)
		if tokens[len(tokens)-1] == "C" {
			kind, filler = stats.QueryEmptyContiguous, string(Gap)
		}
		e := make([]string, len(tokens)-1)
		copy(e, tokens[1:])
		e[len(e)-1] = strings.Repeat(filler, n)
		s.fields.setQuery(e, kind)
	}
}

// flush turns the pending paragraph into a block. Incomplete paragraphs are
// dropped and yield a nil block.
func (s *Scanner) flush() (*Block, error) {
	f := &s.fields
	if f.empty() {
		return nil, nil
	}
	defer f.reset()
	s.stats.Paragraph()
	if !f.qset[0] {
		f.setQuery([]string{
			"none", "0", "0", f.subject[3], "0",
			strings.Repeat(string(Gap), len(f.subject[basesField])),
		}, stats.QueryMissing)
	}
	if n := f.count(); n != blockFields {
		log.WithFields(log.Fields{
			"line":   s.line,
			"fields": n,
		}).Debug("Dropping incomplete alignment block")
		s.stats.Drop()
		return nil, nil
	}
	b, err := NewBlock(f.subject[:], f.query[:])
	if err != nil {
		return nil, fmt.Errorf("block ending at line %d: %w", s.line, err)
	}
	if countBases(b.sbases) != b.subject.Size {
		log.WithFields(log.Fields{
			"line":  s.line,
			"size":  b.subject.Size,
			"bases": countBases(b.sbases),
		}).Warn("Subject size does not match its bases")
		s.stats.SizeMismatch++
	}
	s.stats.Block(b.Columns(), b.subject.Size, f.kind)
	return b, nil
}
