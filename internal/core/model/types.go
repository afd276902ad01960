package model

import (
	"time"
)

// InteractionType classifies a single interaction relative to the archive
// owner.
type InteractionType string

const (
	TypeOriginalPost InteractionType = "original_post"
	TypeReplyToSelf  InteractionType = "reply_to_self"
	TypeReplyToOther InteractionType = "reply_to_other"
	TypeDMSent       InteractionType = "dm_sent"
	TypeDMReceived   InteractionType = "dm_received"
)

// Owner identifies the archive owner. Tweet reply chains reference either
// the numeric account id or the screen name, so both are carried.
type Owner struct {
	AccountId  string
	ScreenName string
}

// InteractionEvent is one classified interaction. Events are immutable once
// produced and belong to exactly one containing timeline or thread.
type InteractionEvent struct {
	Id          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"` // always UTC
	Type        InteractionType   `json:"type"`
	Counterpart string            `json:"counterpart,omitempty"`
	Text        string            `json:"text,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ConversationThread is a run of events separated by gaps no larger than the
// conversation window. Events are ascending by timestamp.
type ConversationThread struct {
	Id     string             `json:"id"`
	Events []InteractionEvent `json:"events"`
}

// Duration returns the span between the first and last event of the thread.
func (t *ConversationThread) Duration() time.Duration {
	if len(t.Events) < 2 {
		return 0
	}
	return t.Events[len(t.Events)-1].Timestamp.Sub(t.Events[0].Timestamp)
}

// UserProfile aggregates interaction statistics for one counterpart.
type UserProfile struct {
	Counterpart       string                  `json:"counterpart"`
	TotalInteractions int                     `json:"totalInteractions"`
	FirstSeen         time.Time               `json:"firstSeen"`
	LastSeen          time.Time               `json:"lastSeen"`
	InteractionCounts map[InteractionType]int `json:"interactionCounts"`
	Metadata          map[string]string       `json:"metadata,omitempty"`
}

// NewUserProfile creates an empty profile for a counterpart.
func NewUserProfile(counterpart string) *UserProfile {
	return &UserProfile{
		Counterpart:       counterpart,
		InteractionCounts: make(map[InteractionType]int),
	}
}

// Record folds one event into the profile, keeping TotalInteractions equal
// to the sum of the typed counts.
func (p *UserProfile) Record(ev InteractionEvent) {
	p.InteractionCounts[ev.Type]++
	p.TotalInteractions++
	if p.FirstSeen.IsZero() || ev.Timestamp.Before(p.FirstSeen) {
		p.FirstSeen = ev.Timestamp
	}
	if ev.Timestamp.After(p.LastSeen) {
		p.LastSeen = ev.Timestamp
	}
}
