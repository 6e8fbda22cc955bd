// Command zonescan runs the full zone-detection and recognition pipeline on
// a document image and prints the annotated result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/tsawler/doczone"
	"github.com/tsawler/doczone/imgutil"
	"github.com/tsawler/doczone/model"
	"github.com/tsawler/doczone/ocr"
)

// CLI defines the command-line interface for zonescan.
var CLI struct {
	Image       string        `arg:"" help:"Path to document image (PNG, JPEG, GIF, BMP, TIFF, WebP)" type:"existingfile"`
	Hint        string        `help:"Document-type hint (invoice, form, newspaper, manuscript, table, photo)"`
	Lang        string        `help:"Recognition languages, '+' separated (e.g. fra+eng)"`
	Calibration string        `help:"Path to YAML engine calibration table" type:"existingfile"`
	Timeout     time.Duration `help:"Per-engine timeout per zone" default:"30s"`
	Pretty      bool          `help:"Indent JSON output"`
	Verbose     bool          `short:"v" help:"Log pipeline stages to stderr"`
}

// engineOutput is one engine's result for one zone in the JSON output.
type engineOutput struct {
	Text                 string  `json:"text"`
	AvgConfidence        float64 `json:"avg_confidence"`
	NormalizedConfidence float64 `json:"normalized_confidence"`
}

// zoneOutput is one zone in the JSON output, listed in reading order.
type zoneOutput struct {
	ID             int                     `json:"id"`
	BBox           [4]int                  `json:"bbox"`
	Type           string                  `json:"type"`
	TypeConfidence float64                 `json:"type_confidence"`
	ReadingIndex   int                     `json:"reading_index"`
	Engine         string                  `json:"engine,omitempty"`
	Text           string                  `json:"text,omitempty"`
	Confidence     float64                 `json:"confidence"`
	LowConfidence  bool                    `json:"low_confidence,omitempty"`
	Engines        map[string]engineOutput `json:"engines,omitempty"`
}

// documentOutput is the top-level JSON document.
type documentOutput struct {
	Source            string         `json:"source"`
	Format            string         `json:"format"`
	Width             int            `json:"width"`
	Height            int            `json:"height"`
	ZoneCount         int            `json:"zone_count"`
	CountsByType      map[string]int `json:"counts_by_type"`
	AverageConfidence float64        `json:"average_confidence"`
	Zones             []zoneOutput   `json:"zones"`
	Text              string         `json:"text"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("zonescan"),
		kong.Description("Detect, classify, and read text zones in a document image."),
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	data, err := os.ReadFile(CLI.Image)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	format := imgutil.Detect(data)

	opts := []doczone.Option{doczone.WithEngineTimeout(CLI.Timeout)}
	if CLI.Hint != "" {
		opts = append(opts, doczone.WithHint(CLI.Hint))
	}
	if CLI.Lang != "" {
		opts = append(opts, doczone.WithLanguage(CLI.Lang))
	}
	if CLI.Calibration != "" {
		f, err := os.Open(CLI.Calibration)
		if err != nil {
			return fmt.Errorf("opening calibration: %w", err)
		}
		calibration, err := ocr.LoadCalibration(f)
		f.Close()
		if err != nil {
			return err
		}
		opts = append(opts, doczone.WithCalibration(calibration))
	}
	if CLI.Verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, doczone.WithLogger(logger))
	}

	doc, err := doczone.New(opts...).ProcessBytes(context.Background(), data)
	if err != nil {
		return err
	}

	out := buildOutput(doc, format)
	enc := json.NewEncoder(os.Stdout)
	if CLI.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func buildOutput(doc *model.Document, format imgutil.Format) documentOutput {
	counts := make(map[string]int)
	for typ, n := range doc.CountsByType() {
		counts[typ.String()] = n
	}

	zones := make([]zoneOutput, 0, doc.ZoneCount())
	for _, z := range doc.ZonesInReadingOrder() {
		zo := zoneOutput{
			ID:             z.ID,
			BBox:           [4]int{z.BBox.X1, z.BBox.Y1, z.BBox.X2, z.BBox.Y2},
			Type:           z.Type.String(),
			TypeConfidence: z.TypeConfidence,
			ReadingIndex:   z.ReadingIndex,
			Engine:         z.SelectedEngine,
			LowConfidence:  z.LowConfidence,
		}
		if result, ok := z.SelectedResult(); ok {
			zo.Text = result.Text()
			zo.Confidence = result.NormalizedConfidence
		}
		if len(z.Recognition) > 0 {
			zo.Engines = make(map[string]engineOutput, len(z.Recognition))
			for name, r := range z.Recognition {
				zo.Engines[name] = engineOutput{
					Text:                 r.Text(),
					AvgConfidence:        r.AvgConfidence,
					NormalizedConfidence: r.NormalizedConfidence,
				}
			}
		}
		zones = append(zones, zo)
	}

	return documentOutput{
		Source:            CLI.Image,
		Format:            format.String(),
		Width:             doc.Width,
		Height:            doc.Height,
		ZoneCount:         doc.ZoneCount(),
		CountsByType:      counts,
		AverageConfidence: doc.AverageConfidence(),
		Zones:             zones,
		Text:              doc.Text(),
	}
}
