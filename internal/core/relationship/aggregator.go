package relationship

import (
	"sort"
	"time"

	"github.com/penwyp/go-relation-insight/internal/core/model"
)

// Aggregator folds classified events into per-counterpart profiles and
// global activity histograms. It is an explicit value threaded through the
// analysis, never a hidden singleton; callers running batches concurrently
// accumulate into separate aggregators and combine them with Merge.
type Aggregator struct {
	profiles map[string]*model.UserProfile
	hourly   [24]int
	daily    [7]int
	total    int
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{
		profiles: make(map[string]*model.UserProfile),
	}
}

// Add folds one event into the aggregator. The histograms count every event;
// a counterpart profile is created lazily on the first interaction with that
// counterpart. Events without a counterpart (original posts) contribute to
// the histograms only.
func (a *Aggregator) Add(ev model.InteractionEvent) {
	hour := ev.Timestamp.UTC().Hour()
	weekday := int(ev.Timestamp.UTC().Weekday())
	a.hourly[hour]++
	a.daily[weekday]++
	a.total++

	if ev.Counterpart == "" {
		return
	}
	profile, ok := a.profiles[ev.Counterpart]
	if !ok {
		profile = model.NewUserProfile(ev.Counterpart)
		a.profiles[ev.Counterpart] = profile
	}
	profile.Record(ev)
}

// AddAll folds a batch of events.
func (a *Aggregator) AddAll(events []model.InteractionEvent) {
	for _, ev := range events {
		a.Add(ev)
	}
}

// Aggregate is a convenience wrapper that folds the events into a fresh
// aggregator and returns it alongside its histograms.
func Aggregate(events []model.InteractionEvent) (map[string]*model.UserProfile, [24]int, [7]int) {
	a := New()
	a.AddAll(events)
	return a.Profiles(), a.Hourly(), a.Daily()
}

// Profiles returns the counterpart profile map.
func (a *Aggregator) Profiles() map[string]*model.UserProfile {
	return a.profiles
}

// Hourly returns the hour-of-day histogram (UTC, index 0-23).
func (a *Aggregator) Hourly() [24]int {
	return a.hourly
}

// Daily returns the day-of-week histogram (index 0 = Sunday).
func (a *Aggregator) Daily() [7]int {
	return a.daily
}

// TotalEvents returns the number of events folded in.
func (a *Aggregator) TotalEvents() int {
	return a.total
}

// TopRelationships ranks profiles by total interaction count descending.
// Ties resolve by counterpart id ascending so output is deterministic
// regardless of map iteration order. n <= 0 returns all profiles.
func (a *Aggregator) TopRelationships(n int) []*model.UserProfile {
	ranked := make([]*model.UserProfile, 0, len(a.profiles))
	for _, p := range a.profiles {
		ranked = append(ranked, p)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalInteractions != ranked[j].TotalInteractions {
			return ranked[i].TotalInteractions > ranked[j].TotalInteractions
		}
		return ranked[i].Counterpart < ranked[j].Counterpart
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// TopRelationships ranks a standalone profile map with the same policy as
// the aggregator method.
func TopRelationships(profiles map[string]*model.UserProfile, n int) []*model.UserProfile {
	a := &Aggregator{profiles: profiles}
	return a.TopRelationships(n)
}

// PeakHour returns the hour with the most activity. Ties resolve to the
// earliest hour.
func (a *Aggregator) PeakHour() int {
	return argmax(a.hourly[:])
}

// PeakDay returns the weekday with the most activity. Ties resolve to the
// earliest day (Sunday first).
func (a *Aggregator) PeakDay() time.Weekday {
	return time.Weekday(argmax(a.daily[:]))
}

func argmax(buckets []int) int {
	best := 0
	for i, count := range buckets {
		if count > buckets[best] {
			best = i
		}
	}
	return best
}

// Merge combines another aggregator into this one by associative addition:
// histogram buckets and typed counts sum, profile first/last timestamps take
// the min/max. Used to join per-batch aggregators after concurrent analysis.
func (a *Aggregator) Merge(other *Aggregator) {
	for i := range other.hourly {
		a.hourly[i] += other.hourly[i]
	}
	for i := range other.daily {
		a.daily[i] += other.daily[i]
	}
	a.total += other.total

	for counterpart, src := range other.profiles {
		dst, ok := a.profiles[counterpart]
		if !ok {
			dst = model.NewUserProfile(counterpart)
			a.profiles[counterpart] = dst
		}
		for typ, count := range src.InteractionCounts {
			dst.InteractionCounts[typ] += count
		}
		dst.TotalInteractions += src.TotalInteractions
		if dst.FirstSeen.IsZero() || (!src.FirstSeen.IsZero() && src.FirstSeen.Before(dst.FirstSeen)) {
			dst.FirstSeen = src.FirstSeen
		}
		if src.LastSeen.After(dst.LastSeen) {
			dst.LastSeen = src.LastSeen
		}
	}
}
