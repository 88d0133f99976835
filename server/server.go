// Package server exposes alignment queries as a JSON over HTTP service.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guigolab/malign/maf"
	log "github.com/sirupsen/logrus"
)

const (
	chromsPath   = "/availablechroms"
	sequencePath = "/sequence"
	blocksPath   = "/blocks"

	requestIDKey = "requestID"
)

var options = []string{
	chromsPath + " - lists available chromosomes",
	sequencePath + ` {"chrom": <>, "start": <>, "end": <>} - Returns the sequences at chrom start and end`,
	blocksPath + ` {"chrom": <>, "start": <>, "end": <>} - Lists the alignment blocks overlapping chrom start and end`,
}

// Source is the set of per-chromosome alignments served.
type Source interface {
	Chromosomes() []string
	Load(chrom string) (*maf.Index, error)
	Alignment(chrom string, start, end int) (*maf.Compound, error)
}

// rangeRequest is the body of sequence and block requests.
type rangeRequest struct {
	Chrom *string `json:"chrom"`
	Start *int    `json:"start"`
	End   *int    `json:"end"`
}

func (r *rangeRequest) validate() error {
	switch {
	case r.Chrom == nil:
		return errors.New("input is missing required key chrom")
	case r.Start == nil:
		return errors.New("input is missing required key start")
	case r.End == nil:
		return errors.New("input is missing required key end")
	case *r.Start < 0:
		return fmt.Errorf("start %d is negative", *r.Start)
	case *r.Start >= *r.End:
		return fmt.Errorf("%w: start %d is not less than end %d", maf.ErrOutOfRange, *r.Start, *r.End)
	}
	return nil
}

// blockSummary describes one block in a /blocks response.
type blockSummary struct {
	Start   int      `json:"start"`
	End     int      `json:"end"`
	Columns int      `json:"columns"`
	Query   maf.Side `json:"query"`
}

// NewRouter returns a gin engine serving src.
func NewRouter(src Source) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	r.POST(chromsPath, availableChroms(src))
	r.POST(sequencePath, sequence(src))
	r.POST(blocksPath, blocks(src))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodHead {
			c.Status(http.StatusOK)
			return
		}
		reject(c, fmt.Errorf("path %s is not known", c.Request.URL.Path))
	})
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"id":      id,
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start),
		}).Info("Request served")
	}
}

func reject(c *gin.Context, err error) {
	id, _ := c.Get(requestIDKey)
	log.WithFields(log.Fields{
		"id": id,
	}).Debugf("Request rejected: %v", err)
	c.JSON(http.StatusOK, gin.H{
		"action":  "rejected",
		"reason":  err.Error(),
		"options": options,
	})
}

func accept(c *gin.Context, body gin.H) {
	body["action"] = "accepted"
	c.JSON(http.StatusOK, body)
}

func parseRange(c *gin.Context) (*rangeRequest, error) {
	var req rangeRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("parsing request: %v", err)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func availableChroms(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		accept(c, gin.H{"chromosomes": src.Chromosomes()})
	}
}

func sequence(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseRange(c)
		if err != nil {
			reject(c, err)
			return
		}
		a, err := src.Alignment(*req.Chrom, *req.Start, *req.End)
		if err != nil {
			reject(c, err)
			return
		}
		source, err := a.SourceRange(*req.Start, *req.End)
		if err != nil {
			reject(c, err)
			return
		}
		query, err := a.QueryRange(*req.Start, *req.End)
		if err != nil {
			reject(c, err)
			return
		}
		accept(c, gin.H{"sourceseq": source, "queryseq": query})
	}
}

func blocks(src Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseRange(c)
		if err != nil {
			reject(c, err)
			return
		}
		index, err := src.Load(*req.Chrom)
		if err != nil {
			reject(c, err)
			return
		}
		overlapping := index.Overlapping(*req.Start, *req.End)
		summaries := make([]blockSummary, len(overlapping))
		for i, b := range overlapping {
			summaries[i] = blockSummary{b.Start(), b.End(), b.Columns(), b.Query()}
		}
		accept(c, gin.H{"blocks": summaries})
	}
}
