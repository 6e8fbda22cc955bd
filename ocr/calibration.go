package ocr

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EngineScale describes one engine's native confidence range. Raw scores are
// mapped onto [0,1] with (raw-Floor)/(Ceiling-Floor), clamped.
type EngineScale struct {
	Floor   float64 `yaml:"floor"`
	Ceiling float64 `yaml:"ceiling"`
}

// Calibration maps engine names to their native confidence scales. The
// mapping is data-driven rather than hard-coded so it can be re-measured per
// engine as models change.
type Calibration map[string]EngineScale

// DefaultCalibration returns the calibration for the bundled engines, which
// both report percentages.
func DefaultCalibration() Calibration {
	return Calibration{
		EngineTesseract: {Floor: 0, Ceiling: 100},
		EngineDensity:   {Floor: 0, Ceiling: 100},
	}
}

// Normalize maps an engine's raw confidence onto [0,1]. Engines missing
// from the table get the identity percentage mapping.
func (c Calibration) Normalize(engine string, raw float64) float64 {
	scale, ok := c[engine]
	if !ok || scale.Ceiling <= scale.Floor {
		scale = EngineScale{Floor: 0, Ceiling: 100}
	}
	v := (raw - scale.Floor) / (scale.Ceiling - scale.Floor)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// calibrationFile is the YAML document shape for a calibration table:
//
//	engines:
//	  tesseract:
//	    floor: 0
//	    ceiling: 100
type calibrationFile struct {
	Engines map[string]EngineScale `yaml:"engines"`
}

// LoadCalibration parses a YAML calibration table from caller-supplied
// bytes. Entries not present keep their defaults when merged by the caller.
func LoadCalibration(r io.Reader) (Calibration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading calibration: %w", err)
	}
	var file calibrationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing calibration: %w", err)
	}
	if len(file.Engines) == 0 {
		return nil, fmt.Errorf("calibration defines no engines")
	}
	for name, scale := range file.Engines {
		if scale.Ceiling <= scale.Floor {
			return nil, fmt.Errorf("calibration for %q: ceiling %v not above floor %v", name, scale.Ceiling, scale.Floor)
		}
	}
	return Calibration(file.Engines), nil
}
