package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guigolab/malign/maf"
	"github.com/stretchr/testify/assert"
)

const testMaf = `a score=1
s hg19.chr1 100 4 + 1000 AC-GT
s mm10.chr2 10 5 + 500 ACTGT

a score=2
s hg19.chr1 104 3 + 1000 TTA
s mm10.chr2 15 2 + 500 T-A

a score=3
s hg19.chr1 200 2 + 1000 GG
`

type fakeSource struct {
	indexes map[string]*maf.Index
}

func (s *fakeSource) Chromosomes() []string {
	return []string{"1"}
}

func (s *fakeSource) Load(chrom string) (*maf.Index, error) {
	idx, ok := s.indexes[chrom]
	if !ok {
		return nil, errors.New("chrom is not valid")
	}
	return idx, nil
}

func (s *fakeSource) Alignment(chrom string, start, end int) (*maf.Compound, error) {
	idx, err := s.Load(chrom)
	if err != nil {
		return nil, err
	}
	a, ok := idx.Alignment(start, end)
	if !ok {
		return nil, errors.New("no alignment")
	}
	return a, nil
}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	idx, err := maf.NewIndex(strings.NewReader(testMaf), "hg19", "mm10", false)
	if err != nil {
		t.Fatal(err)
	}
	return NewRouter(&fakeSource{map[string]*maf.Index{"1": idx}})
}

func post(t *testing.T, router *gin.Engine, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	router.ServeHTTP(w, req)
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestAvailableChroms(t *testing.T) {
	router := setupRouter(t)
	w, resp := post(t, router, "/availablechroms", "{}")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "accepted", resp["action"])
	assert.Equal(t, []interface{}{"1"}, resp["chromosomes"])
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestSequence(t *testing.T) {
	router := setupRouter(t)
	testCases := []struct {
		name, body, source, query string
	}{
		{"single block", `{"chrom": "1", "start": 101, "end": 103}`, "C-G", "CTG"},
		{"two blocks", `{"chrom": "1", "start": 101, "end": 106}`, "C-GTTT", "CTGTT-"},
		{"reference only", `{"chrom": "1", "start": 200, "end": 202}`, "GG", "--"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := post(t, router, "/sequence", tc.body)
			assert.Equal(t, 200, w.Code)
			assert.Equal(t, "accepted", resp["action"])
			assert.Equal(t, tc.source, resp["sourceseq"])
			assert.Equal(t, tc.query, resp["queryseq"])
		})
	}
}

func TestSequenceRejected(t *testing.T) {
	router := setupRouter(t)
	testCases := []struct{ name, path, body string }{
		{"missing chrom", "/sequence", `{"start": 1, "end": 2}`},
		{"missing end", "/sequence", `{"chrom": "1", "start": 1}`},
		{"empty range", "/sequence", `{"chrom": "1", "start": 102, "end": 102}`},
		{"negative start", "/sequence", `{"chrom": "1", "start": -1, "end": 102}`},
		{"unknown chrom", "/sequence", `{"chrom": "7", "start": 101, "end": 102}`},
		{"no coverage", "/sequence", `{"chrom": "1", "start": 150, "end": 160}`},
		{"invalid json", "/sequence", `{"chrom": `},
		{"unknown path", "/translate", `{}`},
		{"blocks unknown chrom", "/blocks", `{"chrom": "7", "start": 101, "end": 102}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := post(t, router, tc.path, tc.body)
			assert.Equal(t, 200, w.Code)
			assert.Equal(t, "rejected", resp["action"])
			assert.NotEmpty(t, resp["reason"])
			assert.Len(t, resp["options"], len(options))
		})
	}
}

func TestBlocks(t *testing.T) {
	router := setupRouter(t)
	w, resp := post(t, router, "/blocks", `{"chrom": "1", "start": 103, "end": 201}`)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "accepted", resp["action"])
	blocks, ok := resp["blocks"].([]interface{})
	if !assert.True(t, ok) {
		return
	}
	assert.Len(t, blocks, 3)
	first := blocks[0].(map[string]interface{})
	assert.Equal(t, float64(100), first["start"])
	assert.Equal(t, float64(104), first["end"])
	assert.Equal(t, float64(5), first["columns"])
	assert.Equal(t, "mm10.chr2", first["query"].(map[string]interface{})["contig"])
	last := blocks[2].(map[string]interface{})
	assert.Equal(t, "none", last["query"].(map[string]interface{})["contig"])
}

func TestHead(t *testing.T) {
	router := setupRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("HEAD", "/", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
}
