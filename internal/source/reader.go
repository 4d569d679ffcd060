package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nmedina/wardload/internal/model"
	"github.com/nmedina/wardload/internal/normalize"
)

// preambleLines is the number of physical lines unconditionally discarded
// before the header row. The roster template puts title and instruction
// rows there; this is a fixed contract of the export, not a heuristic.
const preambleLines = 3

// ParseError is a row-scoped CSV syntax problem. Line is the physical line
// number in the source file.
type ParseError struct {
	Line    int
	Message string
}

// Meta describes the source that produced a ReadResult.
type Meta struct {
	Source string
	SHA256 string
	Header []string
}

// ReadResult is the outcome of reading one roster source.
type ReadResult struct {
	Rows        []model.RawRow
	ParseErrors []ParseError
	Meta        Meta
}

// ParseRoster parses roster text: the first three physical lines are
// discarded, line four is the header row, and every following non-empty
// line is one data row keyed by header. Cells are trimmed; rows whose cells
// are all empty (trailing spreadsheet padding) are skipped. A source too
// short to hold a header yields zero rows, not an error — callers treat an
// empty row set as a validation failure.
func ParseRoster(r io.Reader) (*ReadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) <= preambleLines {
		return &ReadResult{}, nil
	}
	body := strings.Join(lines[preambleLines:], "\n")

	cr := csv.NewReader(strings.NewReader(body))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	result := &ReadResult{}
	var header []string

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if pe, ok := err.(*csv.ParseError); ok {
				result.ParseErrors = append(result.ParseErrors, ParseError{
					Line:    preambleLines + pe.Line,
					Message: pe.Err.Error(),
				})
				continue
			}
			return nil, fmt.Errorf("parse roster: %w", err)
		}

		line, _ := cr.FieldPos(0)
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}

		if header == nil {
			header = rec
			result.Meta.Header = rec
			continue
		}

		fields := make(map[string]string, len(header))
		empty := true
		for i, name := range header {
			var v string
			if i < len(rec) {
				v = rec[i]
			}
			fields[name] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		result.Rows = append(result.Rows, model.RawRow{
			Line:   preambleLines + line,
			Fields: fields,
		})
	}

	return result, nil
}

// ReadFile parses a local roster file and records its SHA-256 digest.
func ReadFile(path string) (*ReadResult, error) {
	sha, err := normalize.FileHash(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	result, err := ParseRoster(f)
	if err != nil {
		return nil, err
	}
	result.Meta.Source = path
	result.Meta.SHA256 = sha
	return result, nil
}
