// Package catalog holds the data-driven parameter descriptors and database
// record layouts that tell internal/parser and internal/frame how to
// interpret a given device's wire format (spec.md §3).
package catalog

import (
	"fmt"

	"github.com/pwitab/corus"
	"github.com/pwitab/corus/internal/codec"
)

// Parameter describes one addressable Corus parameter.
type Parameter struct {
	Name        string
	ID          int
	Kind        codec.Kind
	Readable    bool
	Writable    bool
	Description string
}

// Field describes one fixed-position field within a database record.
type Field struct {
	Name    string
	Kind    codec.Kind
	Scaled  bool // scaled_by_pulse_weight, spec.md §3/§4.7
	Divisor *int // optional integer divisor, spec.md §4.7
}

// RecordLayout is the ordered field list for one database record shape.
type RecordLayout []Field

// Length is the record's total byte width, compared against the first
// frame's declared record size by LayoutByRecordSize.
func (l RecordLayout) Length() int {
	total := 0
	for _, f := range l {
		total += f.Kind.Width()
	}
	return total
}

// Catalog is a parameter/layout dictionary, either the built-in defaults or
// one loaded from an INI mapping file.
type Catalog struct {
	byID   map[int]Parameter
	byName map[string]Parameter
	// Layouts maps a database name ("interval", "hourly", "daily",
	// "monthly") to its record layout.
	Layouts map[string]RecordLayout
}

// New builds a Catalog from an explicit parameter list and layout map.
func New(parameters []Parameter, layouts map[string]RecordLayout) *Catalog {
	c := &Catalog{
		byID:    make(map[int]Parameter, len(parameters)),
		byName:  make(map[string]Parameter, len(parameters)),
		Layouts: layouts,
	}
	for _, p := range parameters {
		c.byID[p.ID] = p
		c.byName[p.Name] = p
	}
	return c
}

// ParameterByID looks up a parameter descriptor by numeric id.
func (c *Catalog) ParameterByID(id int) (Parameter, error) {
	p, ok := c.byID[id]
	if !ok {
		return Parameter{}, corus.NewConfigErrorf("unknown parameter id %d", id)
	}
	return p, nil
}

// ParameterByName looks up a parameter descriptor by name.
func (c *Catalog) ParameterByName(name string) (Parameter, error) {
	p, ok := c.byName[name]
	if !ok {
		return Parameter{}, corus.NewConfigErrorf("unknown parameter %q", name)
	}
	return p, nil
}

// Parameters returns every registered parameter descriptor.
func (c *Catalog) Parameters() []Parameter {
	out := make([]Parameter, 0, len(c.byID))
	for _, p := range c.byID {
		out = append(out, p)
	}
	return out
}

// LayoutByRecordSize returns the database's layout if its encoded width
// equals the record size a ReadDatabase transfer reported. Each database
// holds exactly one layout; a width that differs is a ProtocolError, and no
// alternative layout for another record size is looked up.
func (c *Catalog) LayoutByRecordSize(database string, recordSize int) (RecordLayout, error) {
	layout, ok := c.Layouts[database]
	if !ok {
		return nil, corus.NewConfigErrorf("unknown database %q", database)
	}
	if layout.Length() != recordSize {
		return nil, corus.NewProtocolErrorf(
			"database %q record size mismatch: device reports %d, catalog layout is %d bytes",
			database, recordSize, layout.Length())
	}
	return layout, nil
}

func (p Parameter) String() string {
	return fmt.Sprintf("%s(id=%d, kind=%s)", p.Name, p.ID, p.Kind)
}
