package ocr

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/tsawler/doczone/model"
)

// fakeEngine is a scripted engine for arbitration tests.
type fakeEngine struct {
	name   string
	result model.RecognitionResult
	err    error
	delay  time.Duration
}

func (f *fakeEngine) Name() string { return f.name }

func (f *fakeEngine) Recognize(ctx context.Context, crop image.Image) (model.RecognitionResult, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return model.RecognitionResult{}, ctx.Err()
		}
	}
	if f.err != nil {
		return model.RecognitionResult{}, f.err
	}
	return f.result, nil
}

func textResult(avg float64, lines ...string) model.RecognitionResult {
	r := model.RecognitionResult{AvgConfidence: avg}
	for _, l := range lines {
		r.Lines = append(r.Lines, model.Line{Text: l, Confidence: avg})
	}
	return r
}

func testCrop() image.Image {
	return image.NewGray(image.Rect(0, 0, 200, 80))
}

func testZone() *model.Zone {
	return model.NewZone(0, model.NewBBox(10, 10, 150, 50))
}

func TestArbiterSingleEngineWinsRegardlessOfConfidence(t *testing.T) {
	// Arbitration law: a lone successful engine is selected even with a
	// rock-bottom raw confidence.
	engine := &fakeEngine{name: "alpha", result: textResult(3, "barely legible")}
	arb := NewArbiter([]Engine{engine}, nil)

	zone := testZone()
	arb.RecognizeZone(context.Background(), testCrop(), zone)

	if zone.SelectedEngine != "alpha" {
		t.Errorf("selected engine = %q, want alpha", zone.SelectedEngine)
	}
	if !zone.LowConfidence {
		t.Error("3%% confidence should be flagged low")
	}
	if len(zone.Recognition) != 1 {
		t.Errorf("recognition map has %d entries, want 1", len(zone.Recognition))
	}
}

func TestArbiterNormalizesHeterogeneousScales(t *testing.T) {
	// Engine "frac" reports on 0-1, engine "pct" on 0-100. Raw 0.9 must
	// beat raw 50 once both are normalized.
	calibration := Calibration{
		"frac": {Floor: 0, Ceiling: 1},
		"pct":  {Floor: 0, Ceiling: 100},
	}
	engines := []Engine{
		&fakeEngine{name: "pct", result: textResult(50, "Invoice total 12,00 €")},
		&fakeEngine{name: "frac", result: textResult(0.9, "Invoice total 12,00 €")},
	}
	arb := NewArbiter(engines, calibration)

	zone := testZone()
	arb.RecognizeZone(context.Background(), testCrop(), zone)

	if zone.SelectedEngine != "frac" {
		t.Errorf("selected engine = %q, want frac", zone.SelectedEngine)
	}
	if got := zone.Recognition["frac"].NormalizedConfidence; got < 0.899 || got > 0.901 {
		t.Errorf("frac normalized confidence = %v, want 0.9", got)
	}
	if got := zone.Recognition["pct"].NormalizedConfidence; got < 0.499 || got > 0.501 {
		t.Errorf("pct normalized confidence = %v, want 0.5", got)
	}
	if zone.LowConfidence {
		t.Error("0.9 normalized confidence should not be flagged low")
	}
}

func TestArbiterOmitsFailingEngine(t *testing.T) {
	engines := []Engine{
		&fakeEngine{name: "broken", err: errors.New("crash")},
		&fakeEngine{name: "good", result: textResult(80, "readable text")},
	}
	arb := NewArbiter(engines, nil)

	zone := testZone()
	arb.RecognizeZone(context.Background(), testCrop(), zone)

	if zone.SelectedEngine != "good" {
		t.Errorf("selected engine = %q, want good", zone.SelectedEngine)
	}
	if _, ok := zone.Recognition["broken"]; ok {
		t.Error("failed engine must not appear in the recognition map")
	}
}

func TestArbiterOmitsEmptyResult(t *testing.T) {
	engines := []Engine{
		&fakeEngine{name: "empty", result: model.RecognitionResult{}},
		&fakeEngine{name: "good", result: textResult(70, "content")},
	}
	arb := NewArbiter(engines, nil)

	zone := testZone()
	arb.RecognizeZone(context.Background(), testCrop(), zone)

	if zone.SelectedEngine != "good" {
		t.Errorf("selected engine = %q, want good", zone.SelectedEngine)
	}
	if _, ok := zone.Recognition["empty"]; ok {
		t.Error("empty result must be treated as a failure")
	}
}

func TestArbiterAllEnginesFail(t *testing.T) {
	engines := []Engine{
		&fakeEngine{name: "a", err: errors.New("boom")},
		&fakeEngine{name: "b", err: errors.New("bang")},
	}
	arb := NewArbiter(engines, nil)

	zone := testZone()
	arb.RecognizeZone(context.Background(), testCrop(), zone)

	if zone.SelectedEngine != "" {
		t.Errorf("selected engine = %q, want unset", zone.SelectedEngine)
	}
	if zone.Recognition == nil || len(zone.Recognition) != 0 {
		t.Errorf("recognition = %v, want empty non-nil map", zone.Recognition)
	}
	if !zone.LowConfidence {
		t.Error("zone with no results should be flagged low confidence")
	}
}

func TestArbiterTimeoutIsPerZoneFailure(t *testing.T) {
	cfg := DefaultArbiterConfig()
	cfg.EngineTimeout = 30 * time.Millisecond
	engines := []Engine{
		&fakeEngine{name: "slow", delay: 500 * time.Millisecond, result: textResult(99, "late")},
		&fakeEngine{name: "fast", result: textResult(60, "on time")},
	}
	arb := NewArbiterWithConfig(engines, nil, cfg)

	zone := testZone()
	start := time.Now()
	arb.RecognizeZone(context.Background(), testCrop(), zone)

	if zone.SelectedEngine != "fast" {
		t.Errorf("selected engine = %q, want fast", zone.SelectedEngine)
	}
	if _, ok := zone.Recognition["slow"]; ok {
		t.Error("timed-out engine must be omitted")
	}
	if elapsed := time.Since(start); elapsed > 400*time.Millisecond {
		t.Errorf("arbitration waited %v, should stop at the engine timeout", elapsed)
	}
}

func TestArbiterDeterministicTieBreak(t *testing.T) {
	// Identical results: the lexically first engine name wins, every run.
	result := textResult(75, "same text")
	for i := 0; i < 20; i++ {
		engines := []Engine{
			&fakeEngine{name: "zeta", result: result},
			&fakeEngine{name: "alpha", result: result},
		}
		zone := testZone()
		NewArbiter(engines, nil).RecognizeZone(context.Background(), testCrop(), zone)
		if zone.SelectedEngine != "alpha" {
			t.Fatalf("run %d: selected %q, want alpha", i, zone.SelectedEngine)
		}
	}
}

func TestArbiterQualityWeighting(t *testing.T) {
	// Slightly lower raw confidence with clean text beats a marginally
	// higher confidence full of recognition garbage.
	engines := []Engine{
		&fakeEngine{name: "garbled", result: textResult(80, "Ill||l O00O ###¶¶±±±±")},
		&fakeEngine{name: "clean", result: textResult(75, "Facture du 12/03/2024, total 150,00 €")},
	}
	zone := testZone()
	NewArbiter(engines, nil).RecognizeZone(context.Background(), testCrop(), zone)
	if zone.SelectedEngine != "clean" {
		t.Errorf("selected engine = %q, want clean", zone.SelectedEngine)
	}
}

func TestProvisionalTextFirstNonEmpty(t *testing.T) {
	engines := []Engine{
		&fakeEngine{name: "first", err: errors.New("down")},
		&fakeEngine{name: "second", result: textResult(60, "hello world")},
	}
	arb := NewArbiter(engines, nil)
	got := arb.ProvisionalText(context.Background(), testCrop(), model.NewBBox(0, 0, 100, 40))
	if got != "hello world" {
		t.Errorf("ProvisionalText = %q", got)
	}
}

func TestProvisionalTextAllFail(t *testing.T) {
	engines := []Engine{&fakeEngine{name: "only", err: errors.New("down")}}
	arb := NewArbiter(engines, nil)
	if got := arb.ProvisionalText(context.Background(), testCrop(), model.NewBBox(0, 0, 100, 40)); got != "" {
		t.Errorf("ProvisionalText = %q, want empty", got)
	}
}
