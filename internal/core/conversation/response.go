package conversation

import (
	"sort"
	"time"

	"github.com/penwyp/go-relation-insight/internal/core/model"
)

// ResponseTimes returns the k-1 latencies between the k consecutive events of
// a thread. Threads hold ascending events, so every delta is non-negative;
// zero deltas from near-simultaneous events are valid. The thread's ordering
// invariant is assumed, not re-established.
func ResponseTimes(thread *model.ConversationThread) []time.Duration {
	if len(thread.Events) < 2 {
		return nil
	}

	deltas := make([]time.Duration, 0, len(thread.Events)-1)
	for i := 1; i < len(thread.Events); i++ {
		deltas = append(deltas, thread.Events[i].Timestamp.Sub(thread.Events[i-1].Timestamp))
	}
	return deltas
}

// ResponseStats summarizes a set of response latencies.
type ResponseStats struct {
	Count  int
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	Median time.Duration
}

// ComputeStats summarizes latencies. An empty input yields zero stats.
func ComputeStats(deltas []time.Duration) ResponseStats {
	if len(deltas) == 0 {
		return ResponseStats{}
	}

	sorted := make([]time.Duration, len(deltas))
	copy(sorted, deltas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	stats := ResponseStats{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Mean:  total / time.Duration(len(sorted)),
	}
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}
	return stats
}

// ThreadStats aggregates latency statistics across all threads.
func ThreadStats(threads []model.ConversationThread) ResponseStats {
	var all []time.Duration
	for i := range threads {
		all = append(all, ResponseTimes(&threads[i])...)
	}
	return ComputeStats(all)
}
