package storage

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/twobody"
)

// Columns lists every scalar a Dataset can track, in file order.
var Columns = []string{"t", "x1", "y1", "vx1", "vy1", "x2", "y2", "vx2", "vy2"}

// Dataset is a columnar trajectory: one named float64 array per tracked scalar,
// all of the same length.
type Dataset struct {
	names []string
	cols  map[string][]float64
}

// NewDataset creates an empty dataset tracking the given columns, or all of
// Columns when none are given.
func NewDataset(names ...string) (*Dataset, error) {
	if len(names) == 0 {
		names = Columns
	}
	ds := &Dataset{
		names: make([]string, 0, len(names)),
		cols:  make(map[string][]float64, len(names)),
	}
	for _, name := range names {
		if _, ok := ds.cols[name]; ok {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		if !IsColumn(name) {
			return nil, fmt.Errorf("unknown column %q (available: %v)", name, Columns)
		}
		ds.names = append(ds.names, name)
		ds.cols[name] = make([]float64, 0)
	}
	return ds, nil
}

// FromResult builds a full dataset from the produced states of a run.
func FromResult(r *sim.Result) *Dataset {
	ds, _ := NewDataset()
	for i := range r.States {
		ds.Append(r.Times[i], r.States[i])
	}
	return ds
}

func (d *Dataset) Append(t float64, s twobody.State) {
	for _, name := range d.names {
		d.cols[name] = append(d.cols[name], ColumnValue(name, t, s))
	}
}

func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Dataset) Column(name string) ([]float64, bool) {
	c, ok := d.cols[name]
	return c, ok
}

// Len is the number of rows.
func (d *Dataset) Len() int {
	if len(d.names) == 0 {
		return 0
	}
	return len(d.cols[d.names[0]])
}

// Recorder is a sim.Observer that fills a Dataset.
type Recorder struct {
	ds *Dataset
}

func NewRecorder(names ...string) (*Recorder, error) {
	ds, err := NewDataset(names...)
	if err != nil {
		return nil, err
	}
	return &Recorder{ds: ds}, nil
}

func (r *Recorder) OnStep(t float64, s twobody.State) error {
	r.ds.Append(t, s)
	return nil
}

func (r *Recorder) Dataset() *Dataset { return r.ds }

// IsColumn reports whether name is one of Columns.
func IsColumn(name string) bool {
	for _, c := range Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnValue extracts a named scalar from a sample. Unknown names yield 0.
func ColumnValue(name string, t float64, s twobody.State) float64 {
	switch name {
	case "t":
		return t
	case "x1":
		return s.X1
	case "y1":
		return s.Y1
	case "vx1":
		return s.VX1
	case "vy1":
		return s.VY1
	case "x2":
		return s.X2
	case "y2":
		return s.Y2
	case "vx2":
		return s.VX2
	case "vy2":
		return s.VY2
	}
	return 0
}
