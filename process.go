// Package malign converts reference coordinates into pairwise alignment
// sequences read from per-chromosome MAF files.
package malign

import (
	"sync"
	"time"

	"github.com/guigolab/malign/catalog"
	"github.com/guigolab/malign/config"
	"github.com/guigolab/malign/regions"
	"github.com/guigolab/malign/stats"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

// Result is the answer for one region.
type Result struct {
	Chrom     string `json:"chrom"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Name      string `json:"name,omitempty"`
	SourceSeq string `json:"sourceseq,omitempty"`
	QuerySeq  string `json:"queryseq,omitempty"`
	Error     string `json:"error,omitempty"`
}

type loaded struct {
	chrom string
	stats *stats.Load
	err   error
}

func worker(id int, cat *catalog.Catalog, chroms <-chan string, out chan<- loaded, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := log.WithFields(log.Fields{
		"worker": id,
	})
	logger.Debug("Starting")
	for chrom := range chroms {
		index, err := cat.Load(chrom)
		if err != nil {
			out <- loaded{chrom, nil, err}
			continue
		}
		out <- loaded{chrom, index.Stats(), nil}
	}
	logger.Debug("Done")
}

// Load reads the given chromosomes, or all of them when chroms is empty,
// using cfg.Cpu workers. It returns the load statistics per chromosome.
func Load(cat *catalog.Catalog, chroms []string, cpu int) (stats.Map, error) {
	if len(chroms) == 0 {
		chroms = cat.Chromosomes()
	}
	if cpu < 1 {
		cpu = 1
	}
	var wg sync.WaitGroup
	in := make(chan string)
	out := make(chan loaded, len(chroms))
	for i := 0; i < cpu; i++ {
		wg.Add(1)
		go worker(i+1, cat, in, out, &wg)
	}
	start := time.Now()
	go func() {
		for _, chrom := range chroms {
			in <- chrom
		}
		close(in)
		wg.Wait()
		close(out)
	}()
	sm := make(stats.Map)
	var err error
	for l := range out {
		if l.err != nil {
			if err == nil {
				err = l.err
			}
			continue
		}
		sm.Add(l.chrom, l.stats)
	}
	log.Infof("Loaded %d chromosomes in %v", len(sm), time.Since(start))
	return sm, err
}

// Query returns the subject and query sequences of every region. Regions that
// cannot be answered carry the reason in Result.Error.
func Query(cat *catalog.Catalog, regs []regions.Region) []Result {
	results := make([]Result, len(regs))
	for i, r := range regs {
		res := Result{Chrom: r.Chrom, Start: r.Start, End: r.End, Name: r.Name}
		a, err := cat.Alignment(r.Chrom, r.Start, r.End)
		if err == nil {
			res.SourceSeq, err = a.SourceRange(r.Start, r.End)
		}
		if err == nil {
			res.QuerySeq, err = a.QueryRange(r.Start, r.End)
		}
		if err != nil {
			log.WithFields(log.Fields{
				"region": r,
			}).Debug(err)
			res.Error = err.Error()
		}
		results[i] = res
	}
	return results
}

// NewCatalog returns the catalog of cfg.MafDir.
func NewCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.New(cfg)
}
