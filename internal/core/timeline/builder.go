package timeline

import (
	"sort"

	"github.com/penwyp/go-relation-insight/internal/core/model"
)

// Build returns the events sorted most-recent-first. Sorting is stable, so
// events sharing a timestamp keep their relative input order. The input
// slice is not modified.
func Build(events []model.InteractionEvent) []model.InteractionEvent {
	ordered := make([]model.InteractionEvent, len(events))
	copy(ordered, events)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.After(ordered[j].Timestamp)
	})
	return ordered
}

// Merge combines multiple event sources into a single descending timeline.
func Merge(sources ...[]model.InteractionEvent) []model.InteractionEvent {
	var totalSize int
	for _, src := range sources {
		totalSize += len(src)
	}

	merged := make([]model.InteractionEvent, 0, totalSize)
	for _, src := range sources {
		merged = append(merged, src...)
	}
	return Build(merged)
}

// SortAscending returns a copy of the events sorted oldest-first, the order
// required for conversation grouping and latency math. Stable for ties.
func SortAscending(events []model.InteractionEvent) []model.InteractionEvent {
	ordered := make([]model.InteractionEvent, len(events))
	copy(ordered, events)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	return ordered
}
