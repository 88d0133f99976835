package maf

import (
	"strings"
	"testing"

	"github.com/guigolab/malign/stats"
)

func scanAll(t *testing.T, maf string) ([]*Block, *stats.Load) {
	scanner := NewScanner(strings.NewReader(maf), "hg19", "mm10")
	var blocks []*Block
	for scanner.Next() {
		blocks = append(blocks, scanner.Block())
	}
	if err := scanner.Error(); err != nil {
		t.Fatal(err)
	}
	return blocks, scanner.Stats()
}

func TestScannerMissingQuery(t *testing.T) {
	blocks, st := scanAll(t, `a score=10
s hg19.chr1 100 5 - 1000 ACGTA
`)
	if len(blocks) != 1 {
		t.Fatalf("(Scanner) expected 1 block, got %v", len(blocks))
	}
	b := blocks[0]
	if b.QuerySequence() != "-----" {
		t.Errorf("(Scanner) expected all-gap query, got %q", b.QuerySequence())
	}
	q := b.Query()
	if q.Contig != "none" || q.Start != 0 || q.Size != 0 || q.SrcSize != 0 || q.Strand != "-" {
		t.Errorf("(Scanner) unexpected synthesized query %+v", q)
	}
	if st.Query.Missing != 1 || st.AlignedBases != 0 {
		t.Errorf("(Scanner) unexpected stats %+v", st)
	}
}

func TestScannerEmptyLines(t *testing.T) {
	for i, c := range []struct {
		status, expected string
		contiguous       bool
	}{
		{"C", "------", true},
		{"I", "======", false},
		{"M", "======", false},
	} {
		blocks, st := scanAll(t, `a score=10
s hg19.chr1 100 6 + 1000 ACGTAC
e mm10.chr5 2000 300 - 9000 `+c.status+`
`)
		if len(blocks) != 1 {
			t.Errorf("[%d] expected 1 block, got %v", i, len(blocks))
			continue
		}
		b := blocks[0]
		if b.QuerySequence() != c.expected {
			t.Errorf("[%d] Expected %q, got %q", i, c.expected, b.QuerySequence())
		}
		q := b.Query()
		if q.Contig != "mm10.chr5" || q.Start != 2000 || q.Size != 300 || q.Strand != "-" || q.SrcSize != 9000 {
			t.Errorf("[%d] unexpected query %+v", i, q)
		}
		if c.contiguous && st.Query.EmptyContiguous != 1 || !c.contiguous && st.Query.EmptyOther != 1 {
			t.Errorf("[%d] unexpected stats %+v", i, st.Query)
		}
	}
}

func TestScannerEmptyLineBeforeSubject(t *testing.T) {
	blocks, _ := scanAll(t, `a score=10
e mm10.chr5 2000 300 - 9000 C
s hg19.chr1 100 3 + 1000 ACG
`)
	if len(blocks) != 1 {
		t.Fatalf("(Scanner) expected 1 block, got %v", len(blocks))
	}
	if blocks[0].Query().Contig != "none" {
		t.Errorf("(Scanner) e line before the subject must be ignored, got %+v", blocks[0].Query())
	}
}

func TestScannerDropsIncomplete(t *testing.T) {
	blocks, st := scanAll(t, `##maf version=1
a score=1
s mm10.chr5 10 4 + 9000 ACGT

a score=2
s hg19.chr1 100 4 + 1000

a score=3
s hg19.chr1 200 4 + 1000 ACGT
s mm10.chr5 20 4 + 9000 AC-T
i mm10.chr5 C 0 C 0
s panTro4.chr1 100 4 + 1000 ACGT
`)
	if len(blocks) != 1 {
		t.Fatalf("(Scanner) expected 1 block, got %v", len(blocks))
	}
	if blocks[0].Start() != 200 || blocks[0].QuerySequence() != "AC-T" {
		t.Errorf("(Scanner) unexpected block %v", blocks[0])
	}
	if st.Paragraphs != 3 || st.Dropped != 2 || st.Blocks != 1 {
		t.Errorf("(Scanner) unexpected stats %+v", st)
	}
}

func TestScannerNoTrailingNewline(t *testing.T) {
	blocks, _ := scanAll(t, "a score=1\ns hg19.chr1 0 2 + 10 AC\ns mm10.chr1 0 2 + 10 AC\n\n\n\na score=2\ns hg19.chr1 2 2 + 10 GT\ns mm10.chr1 2 2 + 10 G-")
	if len(blocks) != 2 {
		t.Fatalf("(Scanner) expected 2 blocks, got %v", len(blocks))
	}
	if blocks[1].QuerySequence() != "G-" {
		t.Errorf("(Scanner) expected %q, got %q", "G-", blocks[1].QuerySequence())
	}
}

func TestScannerWhitespaceLines(t *testing.T) {
	blocks, _ := scanAll(t, "a score=1\r\ns hg19.chr1 0 2 + 10 AC\r\n \t \r\ns hg19.chr1 2 2 + 10 GT\r\n")
	if len(blocks) != 2 {
		t.Fatalf("(Scanner) expected 2 blocks, got %v", len(blocks))
	}
	if blocks[0].SourceSequence() != "AC" || blocks[1].SourceSequence() != "GT" {
		t.Errorf("(Scanner) unexpected bases %q %q", blocks[0].SourceSequence(), blocks[1].SourceSequence())
	}
}

func TestScannerSizeMismatch(t *testing.T) {
	_, st := scanAll(t, `s hg19.chr1 0 5 + 10 AC-T
s mm10.chr1 0 4 + 10 ACGT
`)
	if st.SizeMismatch != 1 {
		t.Errorf("(Scanner) expected 1 size mismatch, got %v", st.SizeMismatch)
	}
}
