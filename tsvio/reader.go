// Package tsvio reads image pairs from and writes results to
// tab-separated files.
package tsvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"imagediffer/types"
)

// Header columns required in the input file, in order
var InputHeader = []string{"Image_1", "Image_2"}

// ErrInvalidHeader is returned when the input header is not exactly
// InputHeader
var ErrInvalidHeader = errors.New("input file has invalid header")

// IsValidHeader reports whether headers is exactly Image_1, Image_2
func IsValidHeader(headers []string) bool {
	if len(headers) != len(InputHeader) {
		return false
	}
	for i, h := range InputHeader {
		if headers[i] != h {
			return false
		}
	}
	return true
}

// ReadPairs reads every image pair from the file at path
func ReadPairs(path string) ([]types.ImagePair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %s: %w", path, err)
	}
	defer f.Close()

	pairs, err := ReadPairsFrom(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file %s: %w", path, err)
	}
	return pairs, nil
}

// ReadPairsFrom parses a tab-separated stream. The header must be valid
// and every data row must have exactly two fields. Empty lines are
// skipped.
func ReadPairsFrom(r io.Reader) ([]types.ImagePair, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrInvalidHeader
	}
	if err != nil {
		return nil, err
	}
	if !IsValidHeader(headers) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, headers)
	}

	var pairs []types.ImagePair
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != len(InputHeader) {
			row, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", row, len(InputHeader), len(record))
		}

		pairs = append(pairs, types.ImagePair{
			Image1: record[0],
			Image2: record[1],
			Line:   line,
		})
	}

	return pairs, nil
}
