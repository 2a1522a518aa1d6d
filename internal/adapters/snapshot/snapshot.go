// Package snapshot reads and writes league snapshot files: the players of one
// season plus, optionally, a prebuilt benchmark table.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/rinkscout/internal/domain/benchmark"
	"github.com/okian/rinkscout/internal/domain/model"
)

// File permission constants.
const filePermission = 0o600

// Sentinel error kinds for this package.
var (
	ErrDecode = errors.New("decode snapshot")
	ErrEncode = errors.New("encode snapshot")
)

// Benchmarks is the serialized form of a benchmark table.
type Benchmarks struct {
	PDO   benchmark.Stat                         `json:"pdo"`
	Roles map[model.Role]benchmark.RoleBenchmark `json:"roles"`
}

// File is a league snapshot.
type File struct {
	Season     string                `json:"season,omitempty"`
	Players    []model.PlayerProfile `json:"players"`
	Benchmarks *Benchmarks           `json:"benchmarks,omitempty"`
}

// FromTable captures t for serialization.
func FromTable(t *benchmark.Table) *Benchmarks {
	roles, pdo := t.Snapshot()
	return &Benchmarks{PDO: pdo, Roles: roles}
}

// Table rebuilds the benchmark table, or nil when the snapshot carries none.
func (f *File) Table() *benchmark.Table {
	if f.Benchmarks == nil || len(f.Benchmarks.Roles) == 0 {
		return nil
	}
	return benchmark.NewTable(f.Benchmarks.Roles, f.Benchmarks.PDO)
}

// Decode reads a snapshot from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := json.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	// Unrecognized codes are kept so evaluation can report them.
	for i := range f.Players {
		if pos := model.ParsePosition(string(f.Players[i].Position)); pos != "" {
			f.Players[i].Position = pos
		}
	}
	return &f, nil
}

// Encode writes f to w as indented JSON.
func Encode(w io.Writer, f *File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// Load reads the snapshot at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Save writes f to path, replacing any existing file.
func Save(path string, f *File) (err error) {
	fh, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	return Encode(fh, f)
}
