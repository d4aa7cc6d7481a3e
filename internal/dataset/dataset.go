// Package dataset loads the nutrition table once at start-up and serves
// read-only lookups over it.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/korjavin/fitnourish/internal/nutrition"
)

// Column headers of the source table.
const (
	ColName     = "Food Name"
	ColSource   = "Source"
	ColCalories = "Calories"
	ColProtein  = "Protein (g)"
	ColFat      = "Fat (g)"
	ColCarbs    = "Carbohydrates (g)"
)

var requiredColumns = []string{ColName, ColSource, ColCalories, ColProtein, ColFat, ColCarbs}

var (
	ErrEmptySource   = errors.New("dataset: source has no header row")
	ErrMissingColumn = errors.New("dataset: missing required column")
	ErrTooManyFields = errors.New("dataset: row has more fields than the header")
)

// naTokens are the cell values that count as missing, on top of the empty
// string. They match what spreadsheet and dataframe exports commonly write.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// Dataset is an immutable, in-memory nutrition table. It is safe for
// concurrent use because nothing mutates it after Load returns.
type Dataset struct {
	records  []nutrition.Record
	byName   map[string]int // name -> index of first record with that name
	names    []string       // distinct names, ascending
	manifest Manifest
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f, path)
}

// Load parses a comma-separated table with a header row. Columns may appear
// in any order and extra columns are ignored. Every missing cell, including
// cells absent from a short row, is replaced with nutrition.Missing. Any read
// error, row longer than the header or absent required column fails the
// whole load.
func Load(r io.Reader, source string) (*Dataset, error) {
	start := time.Now()

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = -1

	ds := &Dataset{byName: make(map[string]int)}
	m := Manifest{
		Source:          source,
		MissingByColumn: make(map[string]int),
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d, header has %d", ErrTooManyFields, line, len(row), len(header))
		}

		cell := func(col string) string {
			var v string
			if i := cols[col]; i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			if isMissing(v) {
				m.MissingCells++
				m.MissingByColumn[col]++
				return nutrition.Missing
			}
			return v
		}

		rec := nutrition.Record{
			Name:     cell(ColName),
			Source:   cell(ColSource),
			Calories: cell(ColCalories),
			Protein:  cell(ColProtein),
			Fat:      cell(ColFat),
			Carbs:    cell(ColCarbs),
		}

		if _, dup := ds.byName[rec.Name]; dup {
			m.DuplicateCount++
			slog.Debug("duplicate food name, keeping first", "name", rec.Name)
		} else {
			ds.byName[rec.Name] = len(ds.records)
			ds.names = append(ds.names, rec.Name)
		}
		ds.records = append(ds.records, rec)
	}

	sort.Strings(ds.names)

	m.RecordCount = len(ds.records)
	m.NameCount = len(ds.names)
	m.LoadTime = time.Now().UTC()
	m.LoadDuration = time.Since(start)
	ds.manifest = m
	return ds, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func isMissing(v string) bool {
	if v == "" {
		return true
	}
	_, ok := naTokens[v]
	return ok
}

// Names returns the distinct food names in ascending order. The returned
// slice is a copy.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Lookup returns the first record whose name equals name exactly.
// An empty name is never found.
func (d *Dataset) Lookup(name string) (nutrition.Record, bool) {
	if name == "" {
		return nutrition.Record{}, false
	}
	i, ok := d.byName[name]
	if !ok {
		return nutrition.Record{}, false
	}
	return d.records[i], true
}

// Len returns the number of rows, duplicates included.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Manifest describes how the dataset was loaded.
func (d *Dataset) Manifest() Manifest {
	m := d.manifest
	m.MissingByColumn = make(map[string]int, len(d.manifest.MissingByColumn))
	for k, v := range d.manifest.MissingByColumn {
		m.MissingByColumn[k] = v
	}
	return m
}
