package ocr

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	c := Calibration{
		"pct":    {Floor: 0, Ceiling: 100},
		"frac":   {Floor: 0, Ceiling: 1},
		"offset": {Floor: 20, Ceiling: 120},
	}

	tests := []struct {
		engine string
		raw    float64
		want   float64
	}{
		{"pct", 50, 0.5},
		{"pct", 0, 0},
		{"pct", 100, 1},
		{"frac", 0.25, 0.25},
		{"offset", 70, 0.5},
		{"offset", 10, 0},    // below floor clamps
		{"offset", 150, 1},   // above ceiling clamps
		{"unknown", 80, 0.8}, // identity percentage fallback
	}
	for _, tt := range tests {
		got := c.Normalize(tt.engine, tt.raw)
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Normalize(%q, %v) = %v, want %v", tt.engine, tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeDegenerateScale(t *testing.T) {
	c := Calibration{"bad": {Floor: 50, Ceiling: 50}}
	if got := c.Normalize("bad", 50); got != 0.5 {
		t.Errorf("degenerate scale should fall back to percentage mapping, got %v", got)
	}
}

func TestLoadCalibration(t *testing.T) {
	yaml := `
engines:
  tesseract:
    floor: 0
    ceiling: 100
  neural:
    floor: 0.1
    ceiling: 0.95
`
	c, err := LoadCalibration(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadCalibration: %v", err)
	}
	if len(c) != 2 {
		t.Fatalf("loaded %d engines, want 2", len(c))
	}
	if c["tesseract"].Ceiling != 100 {
		t.Errorf("tesseract ceiling = %v", c["tesseract"].Ceiling)
	}
	mid := c.Normalize("neural", 0.525)
	if mid < 0.49 || mid > 0.51 {
		t.Errorf("neural mid-scale normalized to %v, want 0.5", mid)
	}
}

func TestLoadCalibrationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", ":\n:::"},
		{"no engines", "engines: {}"},
		{"inverted scale", "engines:\n  bad:\n    floor: 10\n    ceiling: 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCalibration(strings.NewReader(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultCalibrationCoversBundledEngines(t *testing.T) {
	c := DefaultCalibration()
	for _, name := range []string{EngineTesseract, EngineDensity} {
		if _, ok := c[name]; !ok {
			t.Errorf("default calibration missing %q", name)
		}
	}
}
