package decode

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// textReader prepares delimited exports for parsing. Spreadsheet tools on
// Windows prefix a BOM and legacy exports often carry Latin-1 bytes; both
// would otherwise end up inside the first header or cell.
func textReader(r io.Reader) io.Reader {
	return newUTF8Sanitizer(skipBOM(r))
}

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8Sanitizer replaces invalid UTF-8 bytes with '?' while streaming.
// A multi-byte rune split across two reads is held back until the next
// read completes it.
type utf8Sanitizer struct {
	r       io.Reader
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{r: r, pending: make([]byte, 0, utf8.UTFMax)}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	// Callers read through bufio, so p always has room for pending.
	off := copy(p, s.pending)
	s.pending = s.pending[:0]

	n, err := s.r.Read(p[off:])
	n += off
	if n == 0 {
		return 0, err
	}

	return s.sanitize(p[:n], err == io.EOF), err
}

// sanitize rewrites data in place and returns the number of bytes to hand
// to the caller.
func (s *utf8Sanitizer) sanitize(data []byte, atEOF bool) int {
	w := 0
	for i := 0; i < len(data); {
		if data[i] < utf8.RuneSelf {
			data[w] = data[i]
			w++
			i++
			continue
		}

		if !atEOF && !utf8.FullRune(data[i:]) {
			s.pending = append(s.pending, data[i:]...)
			return w
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			data[w] = '?'
			w++
			i++
			continue
		}
		copy(data[w:], data[i:i+size])
		w += size
		i += size
	}
	return w
}
