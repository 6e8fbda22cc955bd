package doczone

import (
	"log/slog"
	"time"

	"github.com/tsawler/doczone/ocr"
)

// Option configures a Processor at construction time.
type Option func(*Processor)

// WithLogger routes pipeline stage logging to the given logger. By default
// the processor is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithHint selects the detection profile for a document type. Unknown hints
// keep the default profile.
//
// Example:
//
//	p := doczone.New(doczone.WithHint("invoice"))
func WithHint(hint string) Option {
	return func(p *Processor) {
		p.profile = ProfileForHint(hint)
	}
}

// WithProfile installs a fully custom detection profile, overriding any
// hint.
func WithProfile(profile Profile) Option {
	return func(p *Processor) {
		p.profile = profile
	}
}

// WithEngines replaces the bundled recognition engines. The order given is
// the preference order of the provisional classification pass.
func WithEngines(engines ...ocr.Engine) Option {
	return func(p *Processor) {
		p.engines = engines
	}
}

// WithLanguage sets the recognition language passed to the bundled Tesseract
// engine, as a "+" separated list (e.g. "fra+eng"). It has no effect when
// WithEngines is also given.
func WithLanguage(language string) Option {
	return func(p *Processor) {
		p.language = language
	}
}

// WithCalibration replaces the confidence calibration table used during
// arbitration. Engines missing from the table get the identity percentage
// mapping.
func WithCalibration(calibration ocr.Calibration) Option {
	return func(p *Processor) {
		if calibration != nil {
			p.calibration = calibration
		}
	}
}

// WithEngineTimeout bounds each engine invocation on each zone. A timed-out
// engine counts as failed for that zone only.
func WithEngineTimeout(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.arbiterCfg.EngineTimeout = d
		}
	}
}
