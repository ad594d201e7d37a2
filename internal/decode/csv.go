package decode

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// sniffCandidates are the delimiters considered for .txt exports, in
// tie-break order.
var sniffCandidates = []rune{',', ';', '\t', '|'}

// readDelimited parses delimited text into a cell grid. A zero comma sniffs
// the delimiter from the first non-blank line.
func readDelimited(r io.Reader, comma rune) ([][]string, error) {
	data, err := io.ReadAll(textReader(r))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if comma == 0 {
		comma = sniffDelimiter(data)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks the candidate that occurs most often in the first
// non-blank line. Comma wins when nothing else does better.
func sniffDelimiter(data []byte) rune {
	var line []byte
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			line, data = data, nil
		} else {
			line, data = data[:i], data[i+1:]
		}
		if len(bytes.TrimSpace(line)) > 0 {
			break
		}
		line = nil
	}

	best, bestCount := ',', 0
	for _, c := range sniffCandidates {
		if n := bytes.Count(line, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
