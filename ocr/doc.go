// Package ocr provides text recognition for document zones across multiple
// independent engines, and the arbitration policy that selects the best
// result per zone.
//
// Every engine sits behind the Engine interface and reports confidence on
// its own native scale; the arbiter maps those onto a common [0,1] scale
// using a per-engine calibration table before comparing them.
//
// The Tesseract engine wraps gosseract and requires the "ocr" build tag plus
// a system Tesseract installation:
//
//	go build -tags ocr
//
// Without the tag a stub is compiled in and only the density engine is
// available.
package ocr
