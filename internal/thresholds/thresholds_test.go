package thresholds

import (
	"math"
	"testing"

	"github.com/DeveloperManuel24/SistemaAlertasFrontEnd/internal/config"
)

func TestClassifyDefaultTable(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	tests := []struct {
		name  string
		value float64
		kind  Kind
		want  Severity
	}{
		{name: "neutral ph", value: 7.0, kind: PH, want: Normal},
		{name: "alkaline ph", value: 9.0, kind: PH, want: High},
		{name: "acidic ph", value: 5.5, kind: PH, want: Low},
		{name: "clear water", value: 0.05, kind: Turbidity, want: Low},
		{name: "cloudy water", value: 1.2, kind: Turbidity, want: High},
		{name: "typical orp", value: 450, kind: ORP, want: Normal},
		{name: "orp too high", value: 650, kind: ORP, want: High},
		{name: "unknown kind", value: 1e9, kind: Kind("chlorine"), want: Normal},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := table.Classify(tc.value, tc.kind); got != tc.want {
				t.Fatalf("Classify(%v,%s)=%s want %s", tc.value, tc.kind, got, tc.want)
			}
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	bands := map[Kind]Band{PH: {Low: 6.5, High: 8.5}}
	strict, err := NewTable(Strict, bands)
	if err != nil {
		t.Fatalf("NewTable strict: %v", err)
	}
	inclusive, err := NewTable(Inclusive, bands)
	if err != nil {
		t.Fatalf("NewTable inclusive: %v", err)
	}

	tests := []struct {
		value         float64
		wantStrict    Severity
		wantInclusive Severity
	}{
		{value: 6.5, wantStrict: Normal, wantInclusive: Low},
		{value: 8.5, wantStrict: Normal, wantInclusive: High},
		{value: math.Nextafter(6.5, 0), wantStrict: Low, wantInclusive: Low},
		{value: math.Nextafter(8.5, 10), wantStrict: High, wantInclusive: High},
		{value: math.Nextafter(6.5, 10), wantStrict: Normal, wantInclusive: Normal},
	}

	for _, tc := range tests {
		if got := strict.Classify(tc.value, PH); got != tc.wantStrict {
			t.Fatalf("strict Classify(%v)=%s want %s", tc.value, got, tc.wantStrict)
		}
		if got := inclusive.Classify(tc.value, PH); got != tc.wantInclusive {
			t.Fatalf("inclusive Classify(%v)=%s want %s", tc.value, got, tc.wantInclusive)
		}
	}
}

func TestClassifyNormalIffInsideBand(t *testing.T) {
	t.Parallel()

	table := DefaultTable()
	band, _ := table.Band(PH)
	for v := 0.0; v <= 14.0; v += 0.05 {
		got := table.Classify(v, PH)
		inside := band.Low <= v && v <= band.High
		if inside != (got == Normal) {
			t.Fatalf("Classify(%v)=%s but inside=%t", v, got, inside)
		}
		if v < band.Low && got != Low {
			t.Fatalf("Classify(%v)=%s want low", v, got)
		}
		if v > band.High && got != High {
			t.Fatalf("Classify(%v)=%s want high", v, got)
		}
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	t.Parallel()

	table := RevisionBTable()
	for _, kind := range Kinds {
		for _, v := range []float64{0, 6.6, 8.4, 199, 300, 599, 1000} {
			first := table.Classify(v, kind)
			for i := 0; i < 3; i++ {
				if again := table.Classify(v, kind); again != first {
					t.Fatalf("Classify(%v,%s) changed from %s to %s", v, kind, first, again)
				}
			}
		}
	}
}

func TestClassifyNaN(t *testing.T) {
	t.Parallel()

	for _, table := range []*Table{DefaultTable(), RevisionBTable()} {
		if got := table.Classify(math.NaN(), PH); got != Normal {
			t.Fatalf("Classify(NaN)=%s want normal", got)
		}
	}
}

func TestNewTableRejectsBadBands(t *testing.T) {
	t.Parallel()

	if _, err := NewTable(Strict, map[Kind]Band{PH: {Low: 8.5, High: 6.5}}); err == nil {
		t.Fatalf("inverted band accepted")
	}
	if _, err := NewTable(Strict, map[Kind]Band{ORP: {Low: 1, High: 1}}); err == nil {
		t.Fatalf("empty band accepted")
	}
	if _, err := NewTable(Policy("loose"), nil); err == nil {
		t.Fatalf("unknown policy accepted")
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{"pH": PH, "turbidez": Turbidity, " Turbidity ": Turbidity, "ORP": ORP}
	for in, want := range tests {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q)=%s,%v want %s", in, got, err, want)
		}
	}
	if _, err := ParseKind("chlorine"); err == nil {
		t.Fatalf("ParseKind(chlorine) succeeded")
	}
}

func TestIndicatorsStaySeparateFromSeverity(t *testing.T) {
	t.Parallel()

	if IndicatorFor(Low).Color != "red" || IndicatorFor(High).Color != "yellow" || IndicatorFor(Normal).Color != "green" {
		t.Fatalf("unexpected severity colors: low=%v high=%v normal=%v", IndicatorFor(Low), IndicatorFor(High), IndicatorFor(Normal))
	}
	if got := LevelIndicator("CRITICAL").Color; got != "red" {
		t.Fatalf("critical color=%s want red", got)
	}
	if got := LevelIndicator("").Color; got != "orange" {
		t.Fatalf("default level color=%s want orange", got)
	}
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	table, err := FromConfig(config.ThresholdsConfig{Preset: "revision_b"})
	if err != nil {
		t.Fatalf("revision_b preset: %v", err)
	}
	if table.Policy() != Inclusive {
		t.Fatalf("revision_b policy=%s want inclusive", table.Policy())
	}

	custom, err := FromConfig(config.ThresholdsConfig{
		Preset:    "custom",
		Policy:    "strict",
		PH:        config.BandConfig{Low: 6.8, High: 7.8},
		Turbidity: config.BandConfig{Low: 0.1, High: 1.0},
		ORP:       config.BandConfig{Low: 200, High: 600},
	})
	if err != nil {
		t.Fatalf("custom preset: %v", err)
	}
	if got := custom.Classify(8.0, PH); got != High {
		t.Fatalf("custom Classify(8.0)=%s want high", got)
	}

	if _, err := FromConfig(config.ThresholdsConfig{Preset: "legacy"}); err == nil {
		t.Fatalf("unknown preset accepted")
	}
}

func TestRevisionBHardLimits(t *testing.T) {
	t.Parallel()

	table := RevisionBTable()
	want := map[Kind]Limits{
		PH:        {Low: 6.5, High: 8.5},
		Turbidity: {Low: 0, High: 309},
		ORP:       {Low: 200, High: 600},
	}
	snap := table.Snapshot()
	for kind, limits := range want {
		band, ok := table.Band(kind)
		if !ok || band.Hard == nil || *band.Hard != limits {
			t.Fatalf("Band(%s).Hard=%v want %v", kind, band.Hard, limits)
		}
		if got := snap.Bands[kind].Hard; got == nil || *got != limits {
			t.Fatalf("Snapshot hard %s=%v want %v", kind, got, limits)
		}
	}

	tests := []struct {
		value float64
		kind  Kind
		sev   Severity
		hard  bool
	}{
		{value: 6.55, kind: PH, sev: Low, hard: false},
		{value: 6.4, kind: PH, sev: Low, hard: true},
		{value: 8.5, kind: PH, sev: High, hard: false},
		{value: 310, kind: Turbidity, sev: High, hard: true},
		{value: 199.5, kind: ORP, sev: Normal, hard: true},
		{value: math.NaN(), kind: ORP, sev: Normal, hard: false},
	}
	for _, tc := range tests {
		if got := table.Classify(tc.value, tc.kind); got != tc.sev {
			t.Fatalf("Classify(%v,%s)=%s want %s", tc.value, tc.kind, got, tc.sev)
		}
		if got := table.OutsideHard(tc.value, tc.kind); got != tc.hard {
			t.Fatalf("OutsideHard(%v,%s)=%t want %t", tc.value, tc.kind, got, tc.hard)
		}
	}

	if DefaultTable().OutsideHard(-100, PH) {
		t.Fatalf("default table has no hard limits")
	}
}

func TestBandCopiesHardLimits(t *testing.T) {
	t.Parallel()

	table := RevisionBTable()
	band, _ := table.Band(PH)
	band.Hard.Low = -1
	if again, _ := table.Band(PH); again.Hard.Low != 6.5 {
		t.Fatalf("caller mutated table hard limits: %v", again.Hard)
	}
	if _, err := NewTable(Strict, map[Kind]Band{PH: {Low: 6, High: 8, Hard: &Limits{Low: 9, High: 5}}}); err == nil {
		t.Fatalf("inverted hard limits accepted")
	}
}
