// Package sheet defines the workbook-derived document model and its loader.
// The model is produced once, upstream, by a one-time converter from the
// original spreadsheet file; this package only reads the converted form.
package sheet

import (
	"fmt"
	"sort"

	"github.com/benchwise/sheetcalc/pkg/formula"
	"github.com/benchwise/sheetcalc/pkg/ref"
	"github.com/benchwise/sheetcalc/pkg/types"
	"gopkg.in/yaml.v3"
)

// Cell is one stored cell: a raw value and an optional formula.
type Cell struct {
	Value   types.Value
	Formula string
}

// HasFormula reports whether the cell carries a formula.
func (c Cell) HasFormula() bool {
	return c.Formula != ""
}

// Input describes one editable field the rendering layer shows above the
// grid. The evaluator itself never reads inputs.
type Input struct {
	Label string `yaml:"label" json:"label"`
	Cell  string `yaml:"cell" json:"cell"`
	Type  string `yaml:"type" json:"type"`
}

// Table declares the row/column rectangle the rendering layer displays.
type Table struct {
	StartRow int      `yaml:"startRow" json:"startRow"`
	EndRow   int      `yaml:"endRow" json:"endRow"`
	Columns  []string `yaml:"columns" json:"columns"`
}

// Sheet is one worksheet: an immutable cell table plus the rendering
// metadata carried through from the converter.
type Sheet struct {
	Name   string
	Cells  map[string]Cell // keyed by normalized reference
	Inputs []Input
	Table  Table
}

// Lookup returns the cell stored under a normalized reference.
func (s *Sheet) Lookup(norm string) (Cell, bool) {
	c, ok := s.Cells[norm]
	return c, ok
}

// Model is the loaded document: every sheet plus one shared formula AST
// cache. The cache lives on the model so parse-once holds across any number
// of evaluation sessions.
type Model struct {
	Source  string
	Sheets  map[string]*Sheet
	Formula *formula.Cache
}

// SheetNames returns the sheet names in sorted order.
func (m *Model) SheetNames() []string {
	names := make([]string, 0, len(m.Sheets))
	for name := range m.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sheet returns a sheet by name.
func (m *Model) Sheet(name string) (*Sheet, bool) {
	s, ok := m.Sheets[name]
	return s, ok
}

// raw decoding shapes for the converter's JSON output. yaml.v3 decodes JSON
// as well, so one decoder covers both spellings of the model file.

type rawModel struct {
	Source string              `yaml:"source"`
	Sheets map[string]rawSheet `yaml:"sheets"`
}

type rawSheet struct {
	Cells  map[string]rawCell `yaml:"cells"`
	Inputs []Input            `yaml:"inputs"`
	Table  Table              `yaml:"table"`
}

type rawCell struct {
	V interface{} `yaml:"v"`
	F string      `yaml:"f"`
}

// Load decodes a converted model document. Cell keys are normalized on the
// way in; keys that cannot be decoded as references are dropped rather than
// failing the whole document, and blank string values normalize to blank.
func Load(data []byte) (*Model, error) {
	var raw rawModel
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding model: %w", err)
	}
	if len(raw.Sheets) == 0 {
		return nil, fmt.Errorf("model contains no sheets")
	}

	m := &Model{
		Source:  raw.Source,
		Sheets:  make(map[string]*Sheet, len(raw.Sheets)),
		Formula: formula.NewCache(),
	}

	for name, rs := range raw.Sheets {
		s := &Sheet{
			Name:   name,
			Cells:  make(map[string]Cell, len(rs.Cells)),
			Inputs: rs.Inputs,
			Table:  rs.Table,
		}
		for addr, rc := range rs.Cells {
			norm, err := ref.Normalize(addr)
			if err != nil {
				continue // tolerated as an absent lookup
			}
			s.Cells[norm] = Cell{
				Value:   types.FromRaw(rc.V),
				Formula: rc.F,
			}
		}
		m.Sheets[name] = s
	}

	return m, nil
}
