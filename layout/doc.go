// Package layout detects and organizes text zones on a normalized document
// image. It provides candidate extraction through binarization and
// directional morphology, geometric plausibility filtering, semantic zone
// classification, zone merging, and reading-order resolution.
package layout
