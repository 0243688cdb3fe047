package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sbinet/npyio/npz"
)

var errNPYFormat = errors.New("storage: unsupported npy array")

// WriteNPZ writes every column of ds as a 1-D float64 array in a NumPy .npz
// archive, so numpy.load(path)["x1"] yields the column.
func WriteNPZ(w io.Writer, ds *Dataset) error {
	zw := npz.NewWriter(w)
	for _, name := range ds.names {
		if err := zw.Write(name, ds.cols[name]); err != nil {
			zw.Close()
			return fmt.Errorf("column %s: %w", name, err)
		}
	}
	return zw.Close()
}

func SaveNPZ(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteNPZ(f, ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadNPZ loads an archive of 1-D float64 columns. Columns come back in the
// order of Columns.
func ReadNPZ(path string) (*Dataset, error) {
	zr, err := npz.Open(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	keys := make([]string, 0, len(zr.Keys()))
	for _, key := range zr.Keys() {
		name := strings.TrimSuffix(key, ".npy")
		if !IsColumn(name) {
			return nil, fmt.Errorf("%w: unknown column %q", errNPYFormat, name)
		}
		keys = append(keys, name)
	}
	sort.Slice(keys, func(i, j int) bool { return columnIndex(keys[i]) < columnIndex(keys[j]) })

	ds := &Dataset{cols: make(map[string][]float64, len(keys))}
	for _, name := range keys {
		key := name + ".npy"
		hdr := zr.Header(key)
		if hdr == nil {
			return nil, fmt.Errorf("%w: column %s has no header", errNPYFormat, name)
		}
		if hdr.Descr.Type != "<f8" || hdr.Descr.Fortran || len(hdr.Descr.Shape) != 1 {
			return nil, fmt.Errorf("%w: column %s is %s with shape %v",
				errNPYFormat, name, hdr.Descr.Type, hdr.Descr.Shape)
		}

		var data []float64
		if err := zr.Read(key, &data); err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		if len(ds.names) > 0 && len(data) != ds.Len() {
			return nil, fmt.Errorf("%w: column %s has %d rows, want %d", errNPYFormat, name, len(data), ds.Len())
		}
		ds.names = append(ds.names, name)
		ds.cols[name] = data
	}
	return ds, nil
}

func columnIndex(name string) int {
	for i, c := range Columns {
		if c == name {
			return i
		}
	}
	return len(Columns)
}
