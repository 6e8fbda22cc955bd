package layout

import (
	"math"
	"strings"

	"github.com/tsawler/doczone/model"
)

// MergeConfig holds configuration for post-classification zone merging.
type MergeConfig struct {
	// DistanceRatio scales the zones' average half-size into the maximum
	// center distance at which two same-type zones merge. Default: 0.8
	DistanceRatio float64

	// MaxConfidenceGap is the largest classification-confidence
	// difference two zones may have and still merge. Default: 0.3
	MaxConfidenceGap float64
}

// DefaultMergeConfig returns sensible default configuration.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		DistanceRatio:    0.8,
		MaxConfidenceGap: 0.3,
	}
}

// Merger fuses fragments of one logical region that the morphology split:
// zones of the same type whose centers sit closer than a fraction of their
// average size. Merging also guarantees that no two zones in the result
// share an identical bbox.
type Merger struct {
	config MergeConfig
}

// NewMerger creates a merger with default configuration.
func NewMerger() *Merger {
	return &Merger{config: DefaultMergeConfig()}
}

// NewMergerWithConfig creates a merger with custom configuration.
func NewMergerWithConfig(config MergeConfig) *Merger {
	return &Merger{config: config}
}

// Merge combines mergeable zone groups and returns the surviving zones in
// input order. Merged zones keep the first member's ID, take the union
// bbox, concatenate provisional text, and area-weight the classification
// confidence.
func (m *Merger) Merge(zones []*model.Zone) []*model.Zone {
	if len(zones) <= 1 {
		return zones
	}

	used := make([]bool, len(zones))
	result := make([]*model.Zone, 0, len(zones))

	for i, z := range zones {
		if used[i] {
			continue
		}
		used[i] = true
		group := []*model.Zone{z}

		for j := i + 1; j < len(zones); j++ {
			if used[j] {
				continue
			}
			if m.shouldMerge(z, zones[j]) {
				used[j] = true
				group = append(group, zones[j])
			}
		}

		if len(group) == 1 {
			result = append(result, z)
		} else {
			result = append(result, mergeGroup(group))
		}
	}

	return dedupe(result)
}

// shouldMerge applies the pairwise merge criteria.
func (m *Merger) shouldMerge(a, b *model.Zone) bool {
	if a.Type != b.Type {
		return false
	}
	if math.Abs(a.TypeConfidence-b.TypeConfidence) > m.config.MaxConfidenceGap {
		return false
	}

	ca, cb := a.BBox.Center(), b.BBox.Center()
	dx := float64(ca.X - cb.X)
	dy := float64(ca.Y - cb.Y)
	distance := math.Sqrt(dx*dx + dy*dy)

	avgSize := float64(a.BBox.Width()+a.BBox.Height()+b.BBox.Width()+b.BBox.Height()) / 4

	return distance < avgSize*m.config.DistanceRatio
}

// mergeGroup folds a group of zones into one.
func mergeGroup(group []*model.Zone) *model.Zone {
	bbox := group[0].BBox
	var texts []string
	var weightedConf, totalArea float64

	for _, z := range group {
		bbox = bbox.Union(z.BBox)
		if t := strings.TrimSpace(z.ProvisionalText); t != "" {
			texts = append(texts, t)
		}
		area := float64(z.BBox.Area())
		weightedConf += z.TypeConfidence * area
		totalArea += area
	}

	merged := model.NewZone(group[0].ID, bbox)
	merged.Type = group[0].Type
	if totalArea > 0 {
		merged.TypeConfidence = weightedConf / totalArea
	}
	merged.ProvisionalText = strings.Join(texts, " ")
	return merged
}

// dedupe drops zones whose bbox duplicates an earlier zone's exactly,
// keeping the higher-confidence one in place of the first occurrence.
func dedupe(zones []*model.Zone) []*model.Zone {
	seen := make(map[model.BBox]int, len(zones))
	result := make([]*model.Zone, 0, len(zones))
	for _, z := range zones {
		if idx, ok := seen[z.BBox]; ok {
			if z.TypeConfidence > result[idx].TypeConfidence {
				result[idx] = z
			}
			continue
		}
		seen[z.BBox] = len(result)
		result = append(result, z)
	}
	return result
}
