package tsvio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"imagediffer/types"
)

// Header columns written to the output file
var OutputHeader = []string{"IMAGE1", "IMAGE2", "SIMILAR", "ELAPSE"}

// WriteResults creates (or truncates) the file at path and writes the
// header followed by one line per record
func WriteResults(path string, records []types.ResultRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file %s: %w", path, err)
	}

	if err := WriteResultsTo(f, records); err != nil {
		f.Close()
		return fmt.Errorf("cannot write output file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close output file %s: %w", path, err)
	}
	return nil
}

// WriteResultsTo writes the header and records to w. Fields are joined
// with a tab as is; paths are not quoted.
func WriteResultsTo(w io.Writer, records []types.ResultRecord) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(OutputHeader, "\t") + "\n"); err != nil {
		return err
	}

	for _, rec := range records {
		line := strings.Join([]string{
			rec.Image1,
			rec.Image2,
			FormatFloat(rec.Similar),
			FormatFloat(rec.Elapsed),
		}, "\t")
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// FormatFloat writes the shortest decimal that round-trips, keeping a
// fractional part on whole numbers: 1 becomes "1.0"
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
