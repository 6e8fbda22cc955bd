package ocr

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tsawler/doczone/model"
)

// QualityMetrics scores how plausible a recognition result is as real
// document text, independent of the engine's self-reported confidence.
type QualityMetrics struct {
	// CharacterConsistency is the fraction of characters that belong to
	// the expected document alphabet.
	CharacterConsistency float64

	// DocumentStructure rewards the presence of structured tokens such as
	// dates, amounts, and reference codes.
	DocumentStructure float64

	// InformationDensity measures how much of the text is meaningful
	// content rather than fragments.
	InformationDensity float64

	// ErrorPenalty scores typical recognition confusion patterns
	// (I/l/1 runs, O/0 runs, stray symbols); higher is worse.
	ErrorPenalty float64
}

// Factor combines the metrics into a single multiplier in [0,1] applied to
// an engine's confidence during arbitration.
func (m QualityMetrics) Factor() float64 {
	f := m.CharacterConsistency*0.3 +
		m.DocumentStructure*0.25 +
		m.InformationDensity*0.25 +
		(1-m.ErrorPenalty)*0.2
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

var (
	structurePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),                                // dates
		regexp.MustCompile(`\b\d+[.,]\d{2}\s*[€$]`),                                           // amounts
		regexp.MustCompile(`\b[A-Z]{2,}\d+\b`),                                                // reference codes
		regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),            // emails
		regexp.MustCompile(`\b\d{2}[\s.\-]?\d{2}[\s.\-]?\d{2}[\s.\-]?\d{2}[\s.\-]?\d{2}\b`),   // phone numbers
	}
	structureKeywords = []string{"facture", "invoice", "total", "date", "montant", "prix", "tva"}

	errorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[Il1|]{2,}\b`),
		regexp.MustCompile(`\b[O0]{2,}\b`),
		regexp.MustCompile(`[^\w\s.,;:!?()\-€$%/\\'"@#&*+=<>\[\]{}]`),
	}
)

// Evaluate computes quality metrics for a recognition result's lines.
// Results with no textual content score zero structure and density but are
// not penalized for errors.
func Evaluate(lines []model.Line) QualityMetrics {
	texts := make([]string, 0, len(lines))
	for _, ln := range lines {
		texts = append(texts, ln.Text)
	}
	joined := strings.Join(texts, " ")

	return QualityMetrics{
		CharacterConsistency: characterConsistency(joined),
		DocumentStructure:    documentStructure(joined),
		InformationDensity:   informationDensity(texts),
		ErrorPenalty:         errorPenalty(joined),
	}
}

func characterConsistency(text string) float64 {
	total, valid := 0, 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			strings.ContainsRune(" .,;:!?-()[]{}\"'€$%/\\@#&*+=<>", r) {
			valid++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(valid) / float64(total)
}

func documentStructure(text string) float64 {
	var score, weight float64
	for _, p := range structurePatterns {
		if n := len(p.FindAllString(text, -1)); n > 0 {
			score += float64(n) * 0.2
			weight += 0.2
		}
	}
	lower := strings.ToLower(text)
	keywordCount := 0
	for _, kw := range structureKeywords {
		keywordCount += strings.Count(lower, kw)
	}
	if keywordCount > 0 {
		score += float64(keywordCount) * 0.1
		weight += 0.1
	}
	if weight < 1 {
		weight = 1
	}
	v := score / weight
	if v > 1 {
		return 1
	}
	return v
}

func informationDensity(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}
	var total, meaningful int
	reasonable := 0
	for _, line := range lines {
		total += len(line)
		clean := strings.TrimSpace(line)
		if len(clean) > 2 {
			meaningful += len(clean)
		}
		if n := len(clean); n >= 5 && n <= 100 {
			reasonable++
		}
	}
	var density float64
	if total > 0 {
		density = float64(meaningful) / float64(total)
	}
	lineQuality := float64(reasonable) / float64(len(lines))
	return (density + lineQuality) / 2
}

func errorPenalty(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	errors := 0
	for _, p := range errorPatterns {
		errors += len(p.FindAllString(text, -1))
	}
	// Words with long runs of one repeated character are usually garbage.
	for _, word := range words {
		run, maxRun := 1, 1
		runes := []rune(word)
		for i := 1; i < len(runes); i++ {
			if runes[i] == runes[i-1] {
				run++
				if run > maxRun {
					maxRun = run
				}
			} else {
				run = 1
			}
		}
		if maxRun > 3 {
			errors++
		}
	}
	v := float64(errors) / float64(len(words))
	if v > 1 {
		return 1
	}
	return v
}
