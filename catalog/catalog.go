// Package catalog keeps the per-chromosome alignment indexes of a MAF directory.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/guigolab/malign/config"
	"github.com/guigolab/malign/maf"
	"github.com/guigolab/malign/stats"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrUnknownChromosome is returned for chromosomes without a MAF file.
	ErrUnknownChromosome = errors.New("chrom is not valid, perform availablechroms to get available chromosomes")
	// ErrNoAlignment is returned when no block covers the start of a range.
	ErrNoAlignment = errors.New("no alignment covers the requested range")
)

// Patterns are the file name patterns searched in the MAF directory.
var Patterns = []string{"*.maf", "*.maf.gz", "*.maf.bgz"}

type entry struct {
	mu    sync.Mutex
	path  string
	index *maf.Index
}

// Catalog lazily loads one maf.Index per chromosome. The set of chromosomes
// is fixed when the catalog is created; each one is loaded at most once.
type Catalog struct {
	cfg     *config.Config
	entries map[string]*entry
}

// ChromName returns the chromosome key for a MAF file name: the base name
// without "chr", cut at the first dot.
func ChromName(path string) string {
	name := strings.Replace(filepath.Base(path), "chr", "", -1)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}

// New returns a Catalog of the MAF files found in cfg.MafDir.
func New(cfg *config.Config) (*Catalog, error) {
	info, err := os.Stat(cfg.MafDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", cfg.MafDir)
	}
	c := &Catalog{cfg: cfg, entries: make(map[string]*entry)}
	for _, pattern := range Patterns {
		matches, err := filepath.Glob(filepath.Join(cfg.MafDir, pattern))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			chrom := ChromName(m)
			if e, ok := c.entries[chrom]; ok {
				log.WithFields(log.Fields{
					"chrom": chrom,
					"kept":  e.path,
				}).Warnf("Ignoring duplicate file %s", m)
				continue
			}
			c.entries[chrom] = &entry{path: m}
		}
	}
	log.WithFields(log.Fields{
		"dir":         cfg.MafDir,
		"chromosomes": len(c.entries),
	}).Info("Found alignment files")
	return c, nil
}

// Chromosomes returns the sorted available chromosomes.
func (c *Catalog) Chromosomes() []string {
	chroms := make([]string, 0, len(c.entries))
	for chrom := range c.entries {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// Loaded reports whether the index of chrom is in memory.
func (c *Catalog) Loaded(chrom string) bool {
	e, ok := c.entries[chrom]
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index != nil
}

// Load returns the index of chrom, reading it on first use. Concurrent
// callers for the same chromosome wait for a single load.
func (c *Catalog) Load(chrom string) (*maf.Index, error) {
	e, ok := c.entries[chrom]
	if !ok {
		return nil, ErrUnknownChromosome
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index != nil {
		return e.index, nil
	}
	logger := log.WithFields(log.Fields{
		"chrom": chrom,
		"file":  e.path,
	})
	logger.Info("Loading chromosome")
	start := time.Now()
	r, err := maf.Open(e.path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	index, err := maf.NewIndex(r, c.cfg.Subject, c.cfg.Query, c.cfg.SortBlocks)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", e.path, err)
	}
	logger.WithFields(log.Fields{
		"blocks":  index.Len(),
		"dropped": index.Stats().Dropped,
	}).Infof("Chromosome loaded in %v", time.Since(start))
	e.index = index
	return index, nil
}

// Alignment returns the alignment of chrom covering [start,end).
func (c *Catalog) Alignment(chrom string, start, end int) (*maf.Compound, error) {
	index, err := c.Load(chrom)
	if err != nil {
		return nil, err
	}
	a, ok := index.Alignment(start, end)
	if !ok {
		return nil, ErrNoAlignment
	}
	return a, nil
}

// Stats returns the load statistics of the loaded chromosomes.
func (c *Catalog) Stats() stats.Map {
	sm := make(stats.Map)
	for chrom, e := range c.entries {
		e.mu.Lock()
		if e.index != nil {
			sm.Add(chrom, e.index.Stats())
		}
		e.mu.Unlock()
	}
	return sm
}
