package report

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/twobody"
)

type ExportData struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	Params     twobody.Params     `json:"params"`
	Initial    twobody.State      `json:"initial"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Status     string             `json:"status"`
	Error      string             `json:"error,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
	Times      []float64          `json:"times"`
	States     []twobody.State    `json:"states"`
}

// NewExportData joins a run's metadata with its stored trajectory. Columns
// missing from the dataset are left zero in the exported states.
func NewExportData(meta *storage.RunMetadata, ds *storage.Dataset) ExportData {
	data := ExportData{
		Name:       meta.Name,
		Integrator: meta.Integrator,
		Params:     meta.Params,
		Initial:    meta.Initial,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Steps:      meta.Steps,
		Status:     meta.Status,
		Error:      meta.Error,
		Metrics:    meta.Metrics,
		Times:      make([]float64, ds.Len()),
		States:     make([]twobody.State, ds.Len()),
	}

	col := func(name string) []float64 {
		c, _ := ds.Column(name)
		return c
	}
	times := col("t")
	fields := []struct {
		src []float64
		dst func(*twobody.State) *float64
	}{
		{col("x1"), func(s *twobody.State) *float64 { return &s.X1 }},
		{col("y1"), func(s *twobody.State) *float64 { return &s.Y1 }},
		{col("vx1"), func(s *twobody.State) *float64 { return &s.VX1 }},
		{col("vy1"), func(s *twobody.State) *float64 { return &s.VY1 }},
		{col("x2"), func(s *twobody.State) *float64 { return &s.X2 }},
		{col("y2"), func(s *twobody.State) *float64 { return &s.Y2 }},
		{col("vx2"), func(s *twobody.State) *float64 { return &s.VX2 }},
		{col("vy2"), func(s *twobody.State) *float64 { return &s.VY2 }},
	}

	for i := range data.States {
		if times != nil {
			data.Times[i] = times[i]
		}
		for _, f := range fields {
			if f.src != nil {
				*f.dst(&data.States[i]) = f.src[i]
			}
		}
	}
	return data
}

func ExportJSON(w io.Writer, meta *storage.RunMetadata, ds *storage.Dataset) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, ds))
}
