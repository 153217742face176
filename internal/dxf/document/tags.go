package document

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tag is one group code / value pair from a DXF tag stream
type Tag struct {
	Code  int
	Value string
}

// TagReader reads the line-oriented ASCII DXF tag stream: each tag is a
// group code on one line followed by its value on the next line.
type TagReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewTagReader creates a tag reader over raw DXF content
func NewTagReader(r io.Reader) *TagReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &TagReader{scanner: scanner}
}

// Next returns the next tag in the stream, or io.EOF when exhausted.
// A code line that does not parse as an integer is a structural error.
func (r *TagReader) Next() (Tag, error) {
	codeLine, ok := r.readLine()
	if !ok {
		if err := r.scanner.Err(); err != nil {
			return Tag{}, err
		}
		return Tag{}, io.EOF
	}

	code, err := strconv.Atoi(strings.TrimSpace(codeLine))
	if err != nil {
		return Tag{}, &StructureError{
			Line:   r.line,
			Reason: fmt.Sprintf("invalid group code %q", strings.TrimSpace(codeLine)),
		}
	}

	valueLine, ok := r.readLine()
	if !ok {
		if err := r.scanner.Err(); err != nil {
			return Tag{}, err
		}
		return Tag{}, &StructureError{Line: r.line, Reason: "group code without value line"}
	}

	// Values keep interior whitespace; only the line terminator is trimmed
	return Tag{Code: code, Value: strings.TrimRight(valueLine, "\r")}, nil
}

func (r *TagReader) readLine() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	r.line++
	return r.scanner.Text(), true
}
