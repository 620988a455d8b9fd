// Package source loads contact records from log files. CSV and ADIF are
// supported; both feed the same record.Raw stream, already filtered so every
// record carries a callsign.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"qslgen/adif"
	"qslgen/record"
)

// Load reads a log file, picking the format from the extension: .adi/.adif
// parse as ADIF, everything else as header-keyed CSV.
func Load(path string) ([]record.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".adi", ".adif":
		return ReadADIF(f)
	default:
		return ReadCSV(f)
	}
}

// ReadCSV parses header-keyed CSV rows into records. Header names are
// lower-cased and trimmed, empty cells dropped, and rows without a callsign
// discarded.
func ReadCSV(r io.Reader) ([]record.Raw, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var out []record.Raw
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rec := record.Raw{}
		for i, cell := range row {
			if i >= len(header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" || header[i] == "" {
				continue
			}
			rec[header[i]] = cell
		}
		if rec.Call() != "" {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ReadADIF parses an ADIF log, keeping only records with a callsign.
func ReadADIF(r io.Reader) ([]record.Raw, error) {
	recs, err := adif.Parse(r)
	if err != nil {
		return nil, err
	}
	out := recs[:0]
	for _, rec := range recs {
		if rec.Call() != "" {
			out = append(out, rec)
		}
	}
	return out, nil
}
