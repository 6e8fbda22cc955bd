package model

// ZoneType represents the semantic category assigned to a zone.
type ZoneType int

const (
	ZoneUnknown ZoneType = iota
	ZoneHeader
	ZoneTitle
	ZoneSubtitle
	ZoneParagraph
	ZoneList
	ZoneTable
	ZoneFooter
	ZoneSignature
	ZoneLogo
	ZoneFormField
	ZonePrice
	ZoneDate
	ZoneAddress
	ZoneReference
	ZoneNoise
)

func (t ZoneType) String() string {
	switch t {
	case ZoneHeader:
		return "header"
	case ZoneTitle:
		return "title"
	case ZoneSubtitle:
		return "subtitle"
	case ZoneParagraph:
		return "paragraph"
	case ZoneList:
		return "list"
	case ZoneTable:
		return "table"
	case ZoneFooter:
		return "footer"
	case ZoneSignature:
		return "signature"
	case ZoneLogo:
		return "logo"
	case ZoneFormField:
		return "form_field"
	case ZonePrice:
		return "price"
	case ZoneDate:
		return "date"
	case ZoneAddress:
		return "address"
	case ZoneReference:
		return "reference"
	case ZoneNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// ReadingIndexUnset is the sentinel value of Zone.ReadingIndex before the
// reading-order stage has run.
const ReadingIndexUnset = -1

// Line is a single recognized text line with its confidence on the producing
// engine's native scale.
type Line struct {
	Text       string
	Confidence float64
}

// RecognitionResult holds one engine's output for one zone. It is owned by
// the zone that recorded it and is not modified afterward.
type RecognitionResult struct {
	// Lines are the recognized text lines in top-to-bottom order.
	Lines []Line

	// AvgConfidence is the mean per-line confidence on the engine's
	// native scale.
	AvgConfidence float64

	// NormalizedConfidence is AvgConfidence mapped onto [0,1] using the
	// engine's calibration, set during arbitration.
	NormalizedConfidence float64
}

// Text returns the result's lines joined with newlines.
func (r RecognitionResult) Text() string {
	var s string
	for i, ln := range r.Lines {
		if i > 0 {
			s += "\n"
		}
		s += ln.Text
	}
	return s
}

// Zone is a classified rectangular region of a document image believed to
// contain coherent text. Zones are created by candidate extraction and then
// annotated in place by the classification, ordering, and recognition stages;
// after a run completes they are not mutated again.
type Zone struct {
	// ID is a stable identifier assigned at creation, unique within a
	// Document and never reused.
	ID int

	// BBox is the zone's rectangle in source-image pixel coordinates.
	BBox BBox

	// Type is the semantic category assigned by classification.
	Type ZoneType

	// TypeConfidence is the classification confidence in [0,1].
	TypeConfidence float64

	// ReadingIndex is the zone's position in reading order, or
	// ReadingIndexUnset before ordering has run.
	ReadingIndex int

	// ProvisionalText is the quick single-engine text used for semantic
	// classification. It is not the final recognized text.
	ProvisionalText string

	// Recognition maps engine name to that engine's result for this zone.
	// Empty when every engine failed on the zone.
	Recognition map[string]RecognitionResult

	// SelectedEngine names the engine that won arbitration, or "" when no
	// engine produced a result.
	SelectedEngine string

	// LowConfidence marks a zone whose best normalized confidence fell
	// below the arbitration threshold, for caller-side highlighting.
	LowConfidence bool
}

// NewZone creates a zone with the given ID and bounds. Type defaults to
// ZoneUnknown and ReadingIndex to the unset sentinel.
func NewZone(id int, bbox BBox) *Zone {
	return &Zone{
		ID:           id,
		BBox:         bbox,
		Type:         ZoneUnknown,
		ReadingIndex: ReadingIndexUnset,
	}
}

// Area returns the zone's area in square pixels, derived from its bbox.
func (z *Zone) Area() int {
	return z.BBox.Area()
}

// AspectRatio returns the zone's width/height ratio, derived from its bbox.
func (z *Zone) AspectRatio() float64 {
	return z.BBox.AspectRatio()
}

// SelectedResult returns the arbitration winner's result and true, or a zero
// result and false when no engine succeeded on this zone.
func (z *Zone) SelectedResult() (RecognitionResult, bool) {
	if z.SelectedEngine == "" {
		return RecognitionResult{}, false
	}
	r, ok := z.Recognition[z.SelectedEngine]
	return r, ok
}

// SelectedText returns the text of the arbitration winner, or "" when no
// engine succeeded.
func (z *Zone) SelectedText() string {
	r, ok := z.SelectedResult()
	if !ok {
		return ""
	}
	return r.Text()
}
