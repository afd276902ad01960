package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/penwyp/go-relation-insight/internal/core/model"
	"github.com/penwyp/go-relation-insight/internal/core/timeline"
	"github.com/penwyp/go-relation-insight/internal/util"
)

// Group partitions events into conversation threads. Events are first sorted
// ascending by timestamp, then walked once: a gap between consecutive events
// larger than the window closes the active thread and opens a new one.
// Boundaries depend only on consecutive gaps, never on conversation ids in
// the source data, so inconsistent thread metadata cannot skew grouping.
//
// The output is an exact partition of the input: every event lands in exactly
// one thread.
func Group(events []model.InteractionEvent, window time.Duration) []model.ConversationThread {
	if len(events) == 0 {
		return nil
	}

	ordered := timeline.SortAscending(events)

	threads := make([]model.ConversationThread, 0)
	active := newThread()
	active.Events = append(active.Events, ordered[0])

	for _, ev := range ordered[1:] {
		prev := active.Events[len(active.Events)-1]
		gap := ev.Timestamp.Sub(prev.Timestamp)

		if gap > window {
			threads = append(threads, active)
			active = newThread()
		}
		active.Events = append(active.Events, ev)
	}
	threads = append(threads, active)

	util.LogDebugf("Grouped %d events into %d threads (window %s)",
		len(ordered), len(threads), window)
	return threads
}

func newThread() model.ConversationThread {
	return model.ConversationThread{Id: uuid.NewString()}
}
