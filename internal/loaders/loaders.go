// Package loaders reads annotation files into the nested data structures
// the expansion engine matches against. Readers only parse; they never
// interpret forms or validate values.
package loaders

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReadJSON parses a JSON annotation file into nested maps and sequences.
// Numbers decode as json.Number so numeric text reaches the quantity
// tokens exactly as the file spelled it.
func ReadJSON(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}

// ReadText parses a line-oriented annotation file into a sequence. Blank
// lines are skipped. A line containing whitespace becomes a nested
// sequence of its fields; a single-field line stays a scalar, so class
// lists read as plain values and per-record lines as field groups.
func ReadText(path string) ([]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 1 {
			lines = append(lines, fields[0])
			continue
		}
		row := make([]any, len(fields))
		for i, fld := range fields {
			row[i] = fld
		}
		lines = append(lines, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return lines, nil
}
