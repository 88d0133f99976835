// Package utils provides small helpers shared by the malign packages.
package utils

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a < b {
		return b
	}
	return a
}

// Min returns the smaller of a and b.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// OutputJSON writes the indented json representation of v to an io.Writer
func OutputJSON(writer io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if _, err := writer.Write(b); err != nil {
		return err
	}
	if w, ok := writer.(*bufio.Writer); ok {
		return w.Flush()
	}
	return nil
}

type output struct {
	*bufio.Writer
	f *os.File
}

func (o *output) Close() error {
	if err := o.Flush(); err != nil {
		o.f.Close()
		return err
	}
	return o.f.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NewOutput returns a new io.WriteCloser given an output file name. If the file name is '-' os.Stdout is returned.
func NewOutput(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &output{bufio.NewWriter(f), f}, nil
}
