package utils

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestMax(t *testing.T) {
	for i, c := range []struct {
		vals     [2]int
		expected int
	}{
		{[2]int{3, 7}, 7},
		{[2]int{5, 2}, 5},
		{[2]int{-1, -1}, -1},
	} {
		m := Max(c.vals[0], c.vals[1])
		if m != c.expected {
			t.Errorf("[%d] Expected %v, got %v", i, c.expected, m)
		}
	}
}

func TestMin(t *testing.T) {
	for i, c := range []struct {
		vals     [2]int
		expected int
	}{
		{[2]int{3, 7}, 3},
		{[2]int{5, 2}, 2},
		{[2]int{-1, -1}, -1},
	} {
		m := Min(c.vals[0], c.vals[1])
		if m != c.expected {
			t.Errorf("[%d] Expected %v, got %v", i, c.expected, m)
		}
	}
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputJSON(&buf, map[string]int{"blocks": 2}); err != nil {
		t.Fatal(err)
	}
	expected := "{\n\t\"blocks\": 2\n}\n"
	if buf.String() != expected {
		t.Errorf("(OutputJSON) expected %q, got %q", expected, buf.String())
	}
}

func TestNewOutput(t *testing.T) {
	dir, err := ioutil.TempDir("", "malign")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "out.json")
	w, err := NewOutput(name)
	if err != nil {
		t.Fatal(err)
	}
	if err := OutputJSON(w, []string{"1"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[\n\t\"1\"\n]\n" {
		t.Errorf("(NewOutput) unexpected content %q", b)
	}
}
