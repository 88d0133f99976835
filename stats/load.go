package stats

// Query kinds of a loaded block.
const (
	QueryAligned = iota
	QueryMissing
	QueryEmptyContiguous
	QueryEmptyOther
)

// QueryStats counts blocks by the origin of their query component.
type QueryStats struct {
	Aligned         uint64 `json:"aligned"`
	Missing         uint64 `json:"missing,omitempty"`
	EmptyContiguous uint64 `json:"empty_contiguous,omitempty"`
	EmptyOther      uint64 `json:"empty_other,omitempty"`
}

// Load represents statistics collected while parsing a MAF stream.
type Load struct {
	Paragraphs      uint64     `json:"paragraphs"`
	Blocks          uint64     `json:"blocks"`
	Dropped         uint64     `json:"dropped,omitempty"`
	Unsorted        uint64     `json:"unsorted,omitempty"`
	SizeMismatch    uint64     `json:"size_mismatch,omitempty"`
	Columns         uint64     `json:"columns"`
	SubjectBases    uint64     `json:"subject_bases"`
	AlignedBases    uint64     `json:"aligned_bases"`
	AlignedFraction fraction   `json:"aligned_fraction"`
	Query           QueryStats `json:"query"`
}

// NewLoad returns a new Load instance.
func NewLoad() *Load {
	return &Load{}
}

// Paragraph counts a non-empty paragraph.
func (s *Load) Paragraph() {
	s.Paragraphs++
}

// Drop counts a paragraph that did not yield a block.
func (s *Load) Drop() {
	s.Dropped++
}

// Block counts a block with the given number of columns and subject bases.
// kind tells where the query component came from.
func (s *Load) Block(columns, bases, kind int) {
	s.Blocks++
	s.Columns += uint64(columns)
	s.SubjectBases += uint64(bases)
	switch kind {
	case QueryAligned:
		s.Query.Aligned++
		s.AlignedBases += uint64(bases)
	case QueryMissing:
		s.Query.Missing++
	case QueryEmptyContiguous:
		s.Query.EmptyContiguous++
	default:
		s.Query.EmptyOther++
	}
}

// Update updates all counts from another Load instance.
func (s *Load) Update(other *Load) {
	s.Paragraphs += other.Paragraphs
	s.Blocks += other.Blocks
	s.Dropped += other.Dropped
	s.Unsorted += other.Unsorted
	s.SizeMismatch += other.SizeMismatch
	s.Columns += other.Columns
	s.SubjectBases += other.SubjectBases
	s.AlignedBases += other.AlignedBases
	s.Query.Aligned += other.Query.Aligned
	s.Query.Missing += other.Query.Missing
	s.Query.EmptyContiguous += other.Query.EmptyContiguous
	s.Query.EmptyOther += other.Query.EmptyOther
}

// Finalize updates dependent counts.
func (s *Load) Finalize() {
	if s.SubjectBases > 0 {
		s.AlignedFraction = fraction(s.AlignedBases) / fraction(s.SubjectBases)
	}
}
