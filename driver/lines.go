package driver

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Urethramancer/fmt68/format"
)

// ReadLines splits a stream into lines, dropping "\n" and "\r\n" terminators.
// A trailing newline does not produce an extra empty line.
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		s, err := br.ReadString('\n')
		if s != "" {
			s = strings.TrimSuffix(s, "\n")
			lines = append(lines, strings.TrimSuffix(s, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading lines: %w", err)
		}
	}
}

// WriteLines writes each line followed by "\n".
func WriteLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return fmt.Errorf("writing lines: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing lines: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing lines: %w", err)
	}
	return nil
}

// FormatSource formats a whole file held in memory. It reports whether the
// result differs from src.
func FormatSource(f *format.Formatter, src []byte) (formatted []byte, changed bool, err error) {
	lines, err := ReadLines(bytes.NewReader(src))
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	buf.Grow(len(src))
	if err := WriteLines(&buf, f.Lines(lines)); err != nil {
		return nil, false, err
	}

	formatted = buf.Bytes()
	return formatted, !bytes.Equal(src, formatted), nil
}
