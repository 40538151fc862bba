// Package refdata holds the real-world reference facts shown for each body.
package refdata

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

//go:embed bodies.csv
var defaultCSV []byte

// Entry is one row of reference data. Values are display strings.
type Entry struct {
	Name          string `csv:"name"`
	Kind          string `csv:"kind"`
	RealDistance  string `csv:"real_distance"`
	RealRadius    string `csv:"real_radius"`
	OrbitalPeriod string `csv:"orbital_period"`
}

// Table maps body names to reference entries.
type Table struct {
	entries []Entry
	byName  map[string]int
}

// Default returns the embedded table.
func Default() (*Table, error) {
	var rows []Entry
	if err := gocsv.UnmarshalBytes(defaultCSV, &rows); err != nil {
		return nil, fmt.Errorf("parsing embedded reference data: %w", err)
	}
	return newTable(rows)
}

// MustDefault returns the embedded table and panics on error.
func MustDefault() *Table {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a reference table from a CSV file with the same columns as
// the embedded one.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference data: %w", err)
	}
	defer f.Close()

	var rows []Entry
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing reference data %s: %w", path, err)
	}
	return newTable(rows)
}

func newTable(rows []Entry) (*Table, error) {
	t := &Table{entries: rows, byName: make(map[string]int, len(rows))}
	for i, e := range rows {
		if e.Name == "" {
			return nil, fmt.Errorf("reference row %d: empty name", i+1)
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("reference row %d: duplicate name %q", i+1, e.Name)
		}
		t.byName[e.Name] = i
	}
	return t, nil
}

// Lookup returns the entry for a body name.
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns all entries in file order.
func (t *Table) Entries() []Entry {
	return t.entries
}
