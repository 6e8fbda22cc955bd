package layout

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/doczone/model"
)

// Candidate is the input to semantic classification: a geometry-filtered
// region plus whatever provisional text a quick recognition pass produced
// for it. Text may be empty, in which case classification falls back to
// geometry alone.
type Candidate struct {
	BBox model.BBox
	Text string
}

// ClassifierConfig holds configuration for semantic classification.
type ClassifierConfig struct {
	// HeaderBand is the fraction of image height from the top inside
	// which zones bias toward header/reference. Default: 0.15
	HeaderBand float64

	// FooterBand is the fraction of image height above which (toward the
	// bottom) zones bias toward footer/signature. Default: 0.8
	FooterBand float64

	// MinConfidence is the score below which a zone falls into the
	// unknown bucket. Default: 0.2
	MinConfidence float64

	// TypeWeights optionally scales the score of individual types, used
	// by document-type hints to bias classification. Types absent from
	// the map keep weight 1.
	TypeWeights map[model.ZoneType]float64
}

// DefaultClassifierConfig returns sensible default configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		HeaderBand:    0.15,
		FooterBand:    0.8,
		MinConfidence: 0.2,
	}
}

// Classifier assigns each candidate a semantic zone type and a confidence.
// Classification is a pure function of the candidate and image dimensions;
// the classifier carries no per-document mutable state and is safe for
// concurrent use across zones.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with default configuration.
func NewClassifier() *Classifier {
	return &Classifier{config: DefaultClassifierConfig()}
}

// NewClassifierWithConfig creates a classifier with custom configuration.
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{config: config}
}

// Patterns are matched against folded (lowercased, diacritic-stripped)
// text, so the French source vocabulary matches however the OCR engine
// rendered the accents.
var (
	headerPatterns = compileAll(
		`\b(facture|invoice|devis|quote|bon de commande)\b`,
		`\b(societe|company|entreprise|sarl|sas)\b`,
	)
	datePatterns = compileAll(
		`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`,
		`\b\d{1,2}\s+(janvier|fevrier|mars|avril|mai|juin|juillet|aout|septembre|octobre|novembre|decembre|january|february|march|april|may|june|july|august|september|october|november|december)\b`,
		`\bdate\s*:`,
	)
	pricePatterns = compileAll(
		`\d+[.,]\d{2}\s*[€$]`,
		`[€$]\s*\d+[.,]\d{2}`,
		`\b(total|montant|prix|price|amount)\b`,
		`\b(tva|ht|ttc|tax)\b`,
	)
	addressPatterns = compileAll(
		`\b\d+[,]?\s+(rue|avenue|boulevard|place|chemin|street|road|lane)\b`,
		`\b\d{5}\s+[a-z]+`,
		`\b(adresse|address)\b`,
	)
	referencePatterns = compileAll(
		`\bref\s*\.?\s*:?\s*[a-z0-9\-]+`,
		`\breference\b`,
		`\bn[o°]?\s*[.:]?\s*\d+`,
	)
	signaturePatterns = compileAll(
		`\b(signature|signe|signed|cachet|stamp)\b`,
	)
	bulletPattern  = regexp.MustCompile(`(?m)^\s*([-•*]|\d+[.)])\s+`)
	columnsPattern = regexp.MustCompile(`(?m)^\S.*(\s{2,}|\t|\|).*\S$`)
	fieldPattern   = regexp.MustCompile(`(?m)^[^:\n]{1,40}:\s*(_{2,}|\.{3,})?\s*$`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases text and strips diacritics for pattern matching.
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Classify assigns a type and confidence to one candidate. It never fails:
// absence of signal yields unknown with low confidence so a weak classifier
// cannot block recognition.
func (c *Classifier) Classify(cand Candidate, imageWidth, imageHeight int) (model.ZoneType, float64) {
	scores := make(map[model.ZoneType]float64)

	c.scoreTextRules(cand.Text, scores)
	c.scorePositionRules(cand.BBox, imageWidth, imageHeight, cand.Text, scores)

	for typ, weight := range c.config.TypeWeights {
		if s, ok := scores[typ]; ok {
			scores[typ] = s * weight
		}
	}

	best := model.ZoneUnknown
	bestScore := 0.0
	for typ, score := range scores {
		if score > bestScore || (score == bestScore && typePriority(typ) < typePriority(best)) {
			best = typ
			bestScore = score
		}
	}

	confidence := clamp01(bestScore)
	if confidence < c.config.MinConfidence {
		return model.ZoneUnknown, confidence
	}
	return best, confidence
}

// scoreTextRules adds pattern-based scores derived from provisional text.
func (c *Classifier) scoreTextRules(text string, scores map[model.ZoneType]float64) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 {
		return
	}
	folded := fold(trimmed)

	addPatternScore(scores, model.ZoneHeader, headerPatterns, folded)
	addPatternScore(scores, model.ZoneDate, datePatterns, folded)
	addPatternScore(scores, model.ZonePrice, pricePatterns, folded)
	addPatternScore(scores, model.ZoneAddress, addressPatterns, folded)
	addPatternScore(scores, model.ZoneReference, referencePatterns, folded)
	addPatternScore(scores, model.ZoneSignature, signaturePatterns, folded)

	lines := nonEmptyLines(trimmed)
	words := strings.Fields(trimmed)

	// Digit-heavy text with a currency or percentage mark reads as an
	// amount even when no explicit price keyword is present.
	if digitRatio(trimmed) > 0.3 && strings.ContainsAny(trimmed, "€$%") {
		scores[model.ZonePrice] += 0.3
	}

	if len(lines) >= 2 && len(bulletPattern.FindAllString(trimmed, -1)) >= 2 {
		scores[model.ZoneList] += 0.5
	}
	if len(lines) >= 2 && len(columnsPattern.FindAllString(trimmed, -1)) >= 2 {
		scores[model.ZoneTable] += 0.4
	}
	if fieldPattern.MatchString(trimmed) && len(words) <= 8 {
		scores[model.ZoneFormField] += 0.35
	}

	// Multi-line ordinary prose defaults toward paragraph.
	if len(lines) >= 2 && len(words) >= 8 {
		scores[model.ZoneParagraph] += 0.45
	} else if len(words) >= 5 {
		scores[model.ZoneParagraph] += 0.25
	}

	// Mostly non-alphanumeric content is recognition garbage.
	if alnumRatio(trimmed) < 0.3 {
		scores[model.ZoneNoise] += 0.4
	}
}

// scorePositionRules adds position and shape scores. These apply whether or
// not provisional text exists.
func (c *Classifier) scorePositionRules(bbox model.BBox, imageWidth, imageHeight int, text string, scores map[model.ZoneType]float64) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return
	}
	center := bbox.Center()
	relY := float64(center.Y) / float64(imageHeight)
	relW := float64(bbox.Width()) / float64(imageWidth)
	relH := float64(bbox.Height()) / float64(imageHeight)
	hasText := len(strings.TrimSpace(text)) >= 2

	switch {
	case relY < c.config.HeaderBand:
		if relW > 0.5 {
			scores[model.ZoneHeader] += 0.5
		} else {
			scores[model.ZoneReference] += 0.3
		}
	case relY < 0.3 && relW > 0.4 && relH < 0.08:
		if isMostlyUpper(text) {
			scores[model.ZoneTitle] += 0.35
		} else {
			scores[model.ZoneSubtitle] += 0.25
		}
	case relY > c.config.FooterBand:
		if relH < 0.05 {
			scores[model.ZoneFooter] += 0.5
		} else {
			scores[model.ZoneSignature] += 0.5
		}
	}

	// Long flat blocks read as single text lines; without contrary
	// evidence treat them as paragraphs.
	if bbox.AspectRatio() > 5 {
		scores[model.ZoneParagraph] += 0.25
	}

	// A compact textless block in the body is likely artwork.
	if !hasText {
		aspect := bbox.AspectRatio()
		if aspect >= 0.5 && aspect <= 2 && relH < 0.25 && relY >= c.config.HeaderBand {
			scores[model.ZoneLogo] += 0.25
		}
	}
}

func addPatternScore(scores map[model.ZoneType]float64, typ model.ZoneType, patterns []*regexp.Regexp, folded string) {
	matched := 0
	for _, p := range patterns {
		if p.MatchString(folded) {
			matched++
		}
	}
	if matched == 0 {
		return
	}
	score := 0.4 + 0.15*float64(matched-1)
	if score > 0.8 {
		score = 0.8
	}
	scores[typ] += score
}

// typePriority orders types for tie-breaking: specific content types outrank
// structural ones, which outrank the generic paragraph. Lower is stronger.
func typePriority(t model.ZoneType) int {
	switch t {
	case model.ZonePrice:
		return 0
	case model.ZoneDate:
		return 1
	case model.ZoneReference:
		return 2
	case model.ZoneAddress:
		return 3
	case model.ZoneSignature:
		return 4
	case model.ZoneFormField:
		return 5
	case model.ZoneHeader:
		return 6
	case model.ZoneFooter:
		return 7
	case model.ZoneTitle:
		return 8
	case model.ZoneSubtitle:
		return 9
	case model.ZoneList:
		return 10
	case model.ZoneTable:
		return 11
	case model.ZoneLogo:
		return 12
	case model.ZoneParagraph:
		return 13
	case model.ZoneNoise:
		return 14
	default:
		return 15
	}
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, ln := range strings.Split(s, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

func digitRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	digits := 0
	total := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(digits) / float64(total)
}

func alnumRatio(s string) float64 {
	alnum := 0
	total := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			alnum++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(alnum) / float64(total)
}

func isMostlyUpper(s string) bool {
	upper := 0
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	return letters > 0 && float64(upper)/float64(letters) > 0.7
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
