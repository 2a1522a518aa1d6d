// Package benchmark holds role benchmark tables and compares normalized
// player metrics against them.
package benchmark

import (
	"fmt"
	"math"

	"github.com/okian/rinkscout/internal/domain/model"
	"github.com/okian/rinkscout/internal/domain/normalize"
)

// sdEpsilon is the smallest standard deviation treated as signal.
const sdEpsilon = 1e-9

// Stat is a benchmark mean and standard deviation.
type Stat struct {
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
}

// HasSignal reports whether the stat can produce a non-zero z-score.
func (s Stat) HasSignal() bool {
	return !math.IsNaN(s.SD) && !math.IsInf(s.SD, 0) && math.Abs(s.SD) > sdEpsilon
}

// Z returns (v-mean)/sd, or 0 when the stat carries no signal or the result is
// not finite.
func (s Stat) Z(v float64) float64 {
	if !s.HasSignal() {
		return 0
	}
	z := (v - s.Mean) / s.SD
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0
	}
	return z
}

// RoleBenchmark is the benchmark entry of one role.
type RoleBenchmark struct {
	Metrics map[model.Metric]Stat `json:"metrics"`
	Impact  Stat                  `json:"impact"`
	Samples int                   `json:"samples,omitempty"`
}

// Stat returns the stat of m.
func (rb RoleBenchmark) Stat(m model.Metric) (Stat, bool) {
	s, ok := rb.Metrics[m]
	return s, ok
}

// Prior implements normalize.Priors using the benchmark means.
func (rb RoleBenchmark) Prior(m model.Metric) (float64, bool) {
	s, ok := rb.Metrics[m]
	if !ok {
		return 0, false
	}
	return s.Mean, true
}

func (rb RoleBenchmark) clone() RoleBenchmark {
	out := RoleBenchmark{Impact: rb.Impact, Samples: rb.Samples, Metrics: make(map[model.Metric]Stat, len(rb.Metrics))}
	for m, s := range rb.Metrics {
		out.Metrics[m] = s
	}
	return out
}

// Table is an immutable set of role benchmarks plus the league PDO reference.
// All players evaluated against one Table are compared on the same basis.
type Table struct {
	roles map[model.Role]RoleBenchmark
	pdo   Stat
}

// NewTable copies roles into a new immutable Table.
func NewTable(roles map[model.Role]RoleBenchmark, pdo Stat) *Table {
	t := &Table{roles: make(map[model.Role]RoleBenchmark, len(roles)), pdo: pdo}
	for r, rb := range roles {
		if !r.Valid() {
			continue
		}
		t.roles[r] = rb.clone()
	}
	return t
}

// Role returns a copy of the benchmark entry of r.
func (t *Table) Role(r model.Role) (RoleBenchmark, bool) {
	if t == nil {
		return RoleBenchmark{}, false
	}
	rb, ok := t.roles[r]
	if !ok {
		return RoleBenchmark{}, false
	}
	return rb.clone(), true
}

// HasRole reports whether the table has an entry for r.
func (t *Table) HasRole(r model.Role) bool {
	if t == nil {
		return false
	}
	_, ok := t.roles[r]
	return ok
}

// stat looks up one metric stat without copying the role entry.
func (t *Table) stat(r model.Role, m model.Metric) (Stat, bool) {
	if t == nil {
		return Stat{}, false
	}
	rb, ok := t.roles[r]
	if !ok {
		return Stat{}, false
	}
	return rb.Stat(m)
}

func (t *Table) impact(r model.Role) (Stat, bool) {
	if t == nil {
		return Stat{}, false
	}
	rb, ok := t.roles[r]
	if !ok {
		return Stat{}, false
	}
	return rb.Impact, true
}

// PDO returns the league possession-luck reference.
func (t *Table) PDO() Stat {
	if t == nil {
		return Stat{}
	}
	return t.pdo
}

// Roles returns the roles present in the table in canonical order.
func (t *Table) Roles() []model.Role {
	var out []model.Role
	for _, r := range model.AllRoles() {
		if t.HasRole(r) {
			out = append(out, r)
		}
	}
	return out
}

// Priors returns the shrinkage priors of role r, or nil when the role is missing.
func (t *Table) Priors(r model.Role) normalize.Priors {
	rb, ok := t.Role(r)
	if !ok {
		return nil
	}
	return rb
}

// Require fails with ErrMissingRole for the first role absent from the table.
func (t *Table) Require(roles ...model.Role) error {
	if t == nil {
		return ErrNilTable
	}
	for _, r := range roles {
		if !t.HasRole(r) {
			return fmt.Errorf("%w: %s", ErrMissingRole, r)
		}
	}
	return nil
}

// Snapshot returns a deep copy of the table contents, for serialization.
func (t *Table) Snapshot() (map[model.Role]RoleBenchmark, Stat) {
	out := make(map[model.Role]RoleBenchmark)
	if t == nil {
		return out, Stat{}
	}
	for r, rb := range t.roles {
		out[r] = rb.clone()
	}
	return out, t.pdo
}
