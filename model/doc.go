// Package model defines the core data structures for document zone analysis:
// pixel-space geometry, typed zones, recognition results, and the Document
// value that a processing run produces.
package model
