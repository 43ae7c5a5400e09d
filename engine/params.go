package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Table maps pad indices (0-63) to their saved entity configuration.
// Reading an absent pad inserts the default so subsequent reads are stable.
type Table struct {
	Assignments map[int]Config `yaml:"assignments"`

	path string
}

// NewTable returns an empty in-memory table (no backing file).
func NewTable() *Table {
	return &Table{Assignments: make(map[int]Config)}
}

// LoadTable reads a table from disk. A missing file yields an empty table;
// any other failure is returned and is fatal at startup.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t := NewTable()
			t.path = path
			return t, nil
		}
		return nil, fmt.Errorf("read assignments: %w", err)
	}

	t := NewTable()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse assignments: %w", err)
	}
	if t.Assignments == nil {
		t.Assignments = make(map[int]Config)
	}
	t.path = path
	return t, nil
}

// Get returns the pad's configuration, inserting the default on first read.
func (t *Table) Get(pad int) Config {
	if cfg, ok := t.Assignments[pad]; ok {
		return cfg
	}
	cfg := DefaultConfig()
	t.Assignments[pad] = cfg
	return cfg
}

// Has reports whether the pad has an assignment, without creating one.
func (t *Table) Has(pad int) bool {
	_, ok := t.Assignments[pad]
	return ok
}

// Set overwrites the pad's configuration.
func (t *Table) Set(pad int, cfg Config) {
	t.Assignments[pad] = cfg
}

// Save writes the table back to its file. Tables created without a backing
// file skip saving.
func (t *Table) Save() error {
	if t.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return fmt.Errorf("save assignments: %w", err)
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("save assignments: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0644); err != nil {
		return fmt.Errorf("save assignments: %w", err)
	}
	return nil
}
