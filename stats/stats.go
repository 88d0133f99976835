// Package stats collects counts about MAF files loaded into an alignment index.
package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type fraction float64

func (m fraction) String() string {
	return fmt.Sprintf("%.6g", float64(m))
}

func (m fraction) MarshalJSON() ([]byte, error) {
	v, err := strconv.ParseFloat(m.String(), 64)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Map is a map of Load instances with chromosome keys.
type Map map[string]*Load

// Add adds a new Load object to sm
func (sm Map) Add(key string, s *Load) {
	sm[key] = s
}

// Total merges all Load instances of sm into a new one.
func (sm Map) Total() *Load {
	t := NewLoad()
	for _, s := range sm {
		t.Update(s)
	}
	t.Finalize()
	return t
}
