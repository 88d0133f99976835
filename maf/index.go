package maf

import (
	"io"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/guigolab/malign/stats"
	log "github.com/sirupsen/logrus"
)

// Index holds all alignment blocks of one chromosome ordered by subject
// start. It is read-only once built and safe for concurrent queries.
type Index struct {
	blocks []Block
	tree   *rtreego.Rtree
	stats  *stats.Load
}

// span is the Rtree item for a block.
type span struct {
	location *rtreego.Rect
	index    int
}

// Bounds returns the location of the span. It is used within the Rtree.
func (s *span) Bounds() *rtreego.Rect {
	return s.location
}

// NewIndex reads all blocks from r. Blocks are expected in non-decreasing
// subject start order; when sortBlocks is set they are sorted after loading.
func NewIndex(r io.Reader, subject, query string, sortBlocks bool) (*Index, error) {
	scanner := NewScanner(r, subject, query)
	var blocks []Block
	for scanner.Next() {
		blocks = append(blocks, *scanner.Block())
	}
	if err := scanner.Error(); err != nil {
		return nil, err
	}
	st := scanner.Stats()
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Start() < blocks[i-1].Start() {
			st.Unsorted++
		}
	}
	if st.Unsorted > 0 {
		if sortBlocks {
			log.WithFields(log.Fields{
				"unsorted": st.Unsorted,
			}).Info("Sorting alignment blocks")
			sort.SliceStable(blocks, func(i, j int) bool {
				return blocks[i].Start() < blocks[j].Start()
			})
		} else {
			log.WithFields(log.Fields{
				"unsorted": st.Unsorted,
			}).Warn("Alignment blocks are not sorted by subject start")
		}
	}
	st.Finalize()
	return &Index{
		blocks: blocks,
		tree:   buildTree(blocks),
		stats:  st,
	}, nil
}

func buildTree(blocks []Block) *rtreego.Rtree {
	var spans []rtreego.Spatial
	for i := range blocks {
		size := blocks[i].Subject().Size
		if size <= 0 {
			continue
		}
		rect, err := rtreego.NewRect(rtreego.Point{float64(blocks[i].Start())}, []float64{float64(size)})
		if err != nil {
			continue
		}
		spans = append(spans, &span{rect, i})
	}
	return rtreego.NewTree(1, 25, 50, spans...)
}

// Len returns the number of blocks.
func (idx *Index) Len() int {
	return len(idx.blocks)
}

// Block returns the i-th block.
func (idx *Index) Block(i int) *Block {
	return &idx.blocks[i]
}

// Stats returns the statistics collected while loading the index.
func (idx *Index) Stats() *stats.Load {
	return idx.stats
}

// Alignment returns the run of blocks covering [start,end), beginning at the
// block containing start. It returns false if no block contains start.
func (idx *Index) Alignment(start, end int) (*Compound, bool) {
	i, ok := idx.search(start)
	if !ok {
		return nil, false
	}
	var builder Builder
	for ; i < len(idx.blocks); i++ {
		b := &idx.blocks[i]
		builder.Add(b)
		if end <= b.End() {
			break
		}
	}
	return builder.Build(), true
}

// search returns the index of a block whose closed range [start,end]
// contains position.
func (idx *Index) search(position int) (int, bool) {
	lo, hi := 0, len(idx.blocks)
	for lo < hi {
		mid := (lo + hi) / 2
		b := &idx.blocks[mid]
		switch {
		case b.Start() > position:
			hi = mid
		case b.End() < position:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return 0, false
}

// Overlapping returns the blocks intersecting [start,end) in index order.
func (idx *Index) Overlapping(start, end int) []*Block {
	if end <= start || idx.tree.Size() == 0 {
		return nil
	}
	bb, err := rtreego.NewRect(rtreego.Point{float64(start)}, []float64{float64(end - start)})
	if err != nil {
		return nil
	}
	var hits []int
	for _, item := range idx.tree.SearchIntersect(bb) {
		i := item.(*span).index
		if b := &idx.blocks[i]; b.Start() < end && b.End() > start {
			hits = append(hits, i)
		}
	}
	sort.Ints(hits)
	blocks := make([]*Block, len(hits))
	for i, h := range hits {
		blocks[i] = &idx.blocks[h]
	}
	return blocks
}
