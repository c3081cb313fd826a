package fir

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/cwbudde/algo-firfilter/internal/testutil"
)

func TestExtend(t *testing.T) {
	block := []float64{1, 2, 3, 4, 5, 6}

	tests := []struct {
		mode EdgeMode
		want []float64
	}{
		{MirrorData, []float64{2, 1, 1, 2, 3, 4, 5, 6, 6, 5}},
		{ZeroPad, []float64{0, 0, 1, 2, 3, 4, 5, 6, 0, 0}},
		{NoEdgeEffectCompensation, []float64{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, err := Extend(block, 2, tt.mode)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 0)

			got[2] = 99
			if block[0] != 1 {
				t.Fatal("Extend aliased its input")
			}
		})
	}
}

func TestExtendErrors(t *testing.T) {
	if _, err := Extend([]float64{1, 2}, 3, MirrorData); !errors.Is(err, ErrInsufficientBlockLength) {
		t.Fatalf("expected ErrInsufficientBlockLength, got %v", err)
	}
	if _, err := Extend([]float64{1, 2}, -1, ZeroPad); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	for _, m := range []EdgeMode{-1, 3, 7} {
		if _, err := Extend([]float64{1, 2, 3, 4}, 2, m); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("Extend with %v: expected ErrInvalidParameter, got %v", m, err)
		}
		if _, err := Strip(make([]float64, 12), 6, 2, m, false); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("Strip with %v: expected ErrInvalidParameter, got %v", m, err)
		}
	}
	// Zero padding has no minimum length.
	if got, err := Extend([]float64{1}, 3, ZeroPad); err != nil || len(got) != 7 {
		t.Fatalf("ZeroPad short block: len %d, err %v", len(got), err)
	}
}

func TestStrip(t *testing.T) {
	// Block of 6, order 2: extended 10, full convolution 12.
	filtered := make([]float64, 12)
	for i := range filtered {
		filtered[i] = float64(i)
	}

	tests := []struct {
		name string
		mode EdgeMode
		keep bool
		want []float64
	}{
		{"mirror aligned", MirrorData, false, []float64{3, 4, 5, 6, 7, 8}},
		{"mirror overhead", MirrorData, true, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"zero aligned", ZeroPad, false, []float64{3, 4, 5, 6, 7, 8}},
		{"none aligned", NoEdgeEffectCompensation, false, []float64{1, 2, 3, 4, 5, 6}},
		{"none overhead", NoEdgeEffectCompensation, true, []float64{0, 1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Strip(filtered, 6, 2, tt.mode, tt.keep)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 0)
		})
	}

	if _, err := Strip(filtered[:8], 6, 2, MirrorData, true); !errors.Is(err, ErrInsufficientBlockLength) {
		t.Fatalf("expected ErrInsufficientBlockLength, got %v", err)
	}
}

func TestEdgeModeStrings(t *testing.T) {
	for _, m := range []EdgeMode{MirrorData, ZeroPad, NoEdgeEffectCompensation} {
		if got := ParseEdgeMode(m.String()); got != m {
			t.Errorf("ParseEdgeMode(%q) = %v", m.String(), got)
		}
	}

	if got := ParseEdgeMode("reflect"); got != MirrorData {
		t.Errorf("unknown mode = %v, want MirrorData", got)
	}

	var zero EdgeMode
	if zero != MirrorData {
		t.Error("zero value must be MirrorData")
	}

	var cfg struct {
		Mode EdgeMode `json:"mode"`
	}
	if err := json.Unmarshal([]byte(`{"mode":"ZeroPad"}`), &cfg); err != nil || cfg.Mode != ZeroPad {
		t.Fatalf("unmarshal = %v, %v", cfg.Mode, err)
	}
	data, err := json.Marshal(cfg)
	if err != nil || string(data) != `{"mode":"ZeroPad"}` {
		t.Fatalf("marshal = %s, %v", data, err)
	}
}
