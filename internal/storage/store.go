package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/twobody"
)

const (
	metadataFile   = "metadata.json"
	trajectoryCSV  = "trajectory.csv"
	trajectoryNPZ  = "trajectory.npz"
	StatusComplete = "completed"
	StatusFailed   = "failed"
)

// ErrInvalidName is returned for run names and ids that are not a single
// path element inside the store.
var ErrInvalidName = errors.New("storage: invalid run name")

// CheckName reports whether name can be used as a run name.
func CheckName(name string) error {
	if !filepath.IsLocal(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Integrator  string             `json:"integrator"`
	Params      twobody.Params     `json:"params"`
	Initial     twobody.State      `json:"initial"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Status      string             `json:"status"`
	Error       string             `json:"error,omitempty"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save persists a run: metadata.json, trajectory.csv and trajectory.npz under
// a fresh run directory. A failed run is saved with its partial trajectory and
// the failure recorded in the metadata.
func (s *Store) Save(name, integrator string, cfg sim.Config, result *sim.Result, runErr error) (string, error) {
	if err := CheckName(name); err != nil {
		return "", err
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%s", name, now.Format("20060102T150405.000000"))
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Integrator:  integrator,
		Params:      result.Params,
		Initial:     result.Initial,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       result.StepsTaken,
		Status:      StatusComplete,
		EnergyDrift: finite(result.EnergyDrift),
		Metrics:     make(map[string]float64, len(result.Metrics)),
	}
	// JSON has no encoding for NaN or Inf
	for k, v := range result.Metrics {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			meta.Metrics[k] = v
		}
	}
	if runErr != nil {
		meta.Status = StatusFailed
		meta.Error = runErr.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	ds := FromResult(result)
	if err := writeCSV(filepath.Join(runDir, trajectoryCSV), ds); err != nil {
		return "", err
	}
	if err := SaveNPZ(filepath.Join(runDir, trajectoryNPZ), ds); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns stored runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := CheckName(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadDataset reads the trajectory of a run back into columns.
func (s *Store) LoadDataset(runID string) (*Dataset, error) {
	if err := CheckName(runID); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryCSV))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty trajectory file", runID)
	}

	ds, err := NewDataset(records[0]...)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
			}
			name := ds.names[j]
			ds.cols[name] = append(ds.cols[name], v)
		}
	}

	return ds, nil
}

// NPZPath is where Save put the NumPy archive of a run.
func (s *Store) NPZPath(runID string) string {
	return filepath.Join(s.baseDir, runID, trajectoryNPZ)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(csv.NewWriter(f), ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes a header of column names followed by one row per sample.
// Values use the shortest representation that round-trips exactly.
func WriteCSV(w *csv.Writer, ds *Dataset) error {
	if err := w.Write(ds.Names()); err != nil {
		return err
	}

	row := make([]string, len(ds.names))
	for i := 0; i < ds.Len(); i++ {
		for j, name := range ds.names {
			row[j] = strconv.FormatFloat(ds.cols[name][i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
