// Package thresholds classifies water-quality readings against safety bands.
//
// A Table is the only place bands and the comparison policy live; every view,
// report and alert badge asks the same Table.
package thresholds

import (
	"fmt"
	"math"
	"strings"
)

// Kind is the measured parameter.
type Kind string

const (
	PH        Kind = "ph"
	Turbidity Kind = "turbidity"
	ORP       Kind = "orp"
)

// Kinds lists the parameters in display order.
var Kinds = []Kind{PH, Turbidity, ORP}

// ParseKind accepts the canonical names plus the backend's spelling ("turbidez").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ph":
		return PH, nil
	case "turbidity", "turbidez":
		return Turbidity, nil
	case "orp":
		return ORP, nil
	}
	return "", fmt.Errorf("unknown parameter kind %q", s)
}

// Unit returns the display unit of the parameter.
func (k Kind) Unit() string {
	switch k {
	case Turbidity:
		return "NTU"
	case ORP:
		return "mV"
	}
	return ""
}

// Severity is the classification of one value.
type Severity string

const (
	Normal Severity = "normal"
	High   Severity = "high"
	Low    Severity = "low"
)

// Policy decides how a value equal to a bound is classified.
type Policy string

const (
	// Strict treats the bounds as part of the normal band: v < low is Low, v > high is High.
	Strict Policy = "strict"
	// Inclusive treats the bounds as out of range: v <= low is Low, v >= high is High.
	Inclusive Policy = "inclusive"
)

// ParsePolicy parses "strict" or "inclusive".
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case Strict:
		return Strict, nil
	case Inclusive:
		return Inclusive, nil
	}
	return "", fmt.Errorf("unknown threshold policy %q", s)
}

// Band is the normal range of a parameter. Hard, when set, is the outer
// limit published with the band; it never changes the severity.
type Band struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	Hard *Limits `json:"hard,omitempty"`
}

// Limits is a closed range [Low, High].
type Limits struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (b Band) clone() Band {
	if b.Hard != nil {
		hard := *b.Hard
		b.Hard = &hard
	}
	return b
}

// Table holds one band per kind and the policy applied to all of them.
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	policy Policy
	bands  map[Kind]Band
}

// NewTable validates the bands and returns a Table.
func NewTable(policy Policy, bands map[Kind]Band) (*Table, error) {
	if policy != Strict && policy != Inclusive {
		return nil, fmt.Errorf("unknown threshold policy %q", policy)
	}
	copied := make(map[Kind]Band, len(bands))
	for kind, band := range bands {
		if math.IsNaN(band.Low) || math.IsNaN(band.High) || band.Low >= band.High {
			return nil, fmt.Errorf("invalid band for %s: [%v, %v]", kind, band.Low, band.High)
		}
		if h := band.Hard; h != nil && (math.IsNaN(h.Low) || math.IsNaN(h.High) || h.Low >= h.High) {
			return nil, fmt.Errorf("invalid hard limits for %s: [%v, %v]", kind, h.Low, h.High)
		}
		copied[kind] = band.clone()
	}
	return &Table{policy: policy, bands: copied}, nil
}

// DefaultTable is the strict table: pH [6.5, 8.5], turbidity [0.1, 1.0] NTU, ORP [200, 600] mV.
func DefaultTable() *Table {
	return &Table{
		policy: Strict,
		bands: map[Kind]Band{
			PH:        {Low: 6.5, High: 8.5},
			Turbidity: {Low: 0.1, High: 1.0},
			ORP:       {Low: 200, High: 600},
		},
	}
}

// RevisionBTable is the inclusive table from the later dashboard revision,
// soft bands with their hard limits: pH [6.6, 8.4] / [6.5, 8.5],
// turbidity [255, 308] / [0, 309], ORP [199, 599] / [200, 600].
// The turbidity bounds are kept as found; confirm them before relying on them.
func RevisionBTable() *Table {
	return &Table{
		policy: Inclusive,
		bands: map[Kind]Band{
			PH:        {Low: 6.6, High: 8.4, Hard: &Limits{Low: 6.5, High: 8.5}},
			Turbidity: {Low: 255, High: 308, Hard: &Limits{Low: 0, High: 309}},
			ORP:       {Low: 199, High: 599, Hard: &Limits{Low: 200, High: 600}},
		},
	}
}

// Policy returns the comparison policy.
func (t *Table) Policy() Policy {
	return t.policy
}

// Band returns the band for kind.
func (t *Table) Band(kind Kind) (Band, bool) {
	b, ok := t.bands[kind]
	return b.clone(), ok
}

// Classify maps value to a severity for kind.
// Unknown kinds and NaN values are Normal: there is nothing to compare against.
func (t *Table) Classify(value float64, kind Kind) Severity {
	band, ok := t.bands[kind]
	if !ok || math.IsNaN(value) {
		return Normal
	}
	switch t.policy {
	case Inclusive:
		if value <= band.Low {
			return Low
		}
		if value >= band.High {
			return High
		}
	default:
		if value < band.Low {
			return Low
		}
		if value > band.High {
			return High
		}
	}
	return Normal
}

// OutsideHard reports whether value lies beyond the hard limits of kind.
// Bands without hard limits, unknown kinds and NaN report false.
func (t *Table) OutsideHard(value float64, kind Kind) bool {
	band, ok := t.bands[kind]
	if !ok || band.Hard == nil || math.IsNaN(value) {
		return false
	}
	return value < band.Hard.Low || value > band.Hard.High
}

// Snapshot is the JSON view of a table.
type Snapshot struct {
	Policy Policy        `json:"policy"`
	Bands  map[Kind]Band `json:"bands"`
}

// Snapshot returns a copy of the table for display.
func (t *Table) Snapshot() Snapshot {
	bands := make(map[Kind]Band, len(t.bands))
	for k, b := range t.bands {
		bands[k] = b.clone()
	}
	return Snapshot{Policy: t.policy, Bands: bands}
}
