package classify

import (
	"github.com/penwyp/go-relation-insight/internal/core/model"
	"github.com/penwyp/go-relation-insight/internal/util"
)

// EventFromTweet classifies a tweet record and lifts it into an
// InteractionEvent with a UTC timestamp.
func EventFromTweet(t *model.TweetRecord, owner model.Owner) (model.InteractionEvent, error) {
	ts, err := util.ParseTweetTime(t.CreatedAt)
	if err != nil {
		return model.InteractionEvent{}, err
	}

	typ := ClassifyTweet(t, owner)
	ev := model.InteractionEvent{
		Id:        t.IdStr,
		Timestamp: ts,
		Type:      typ,
		Text:      t.FullText,
		Metadata:  map[string]string{"source": "tweet"},
	}
	// Originals have no counterpart and self-replies point back at the
	// owner, so only replies to others feed a relationship.
	if typ == model.TypeReplyToOther {
		ev.Counterpart = TweetCounterpart(t)
	}
	if parent := t.InReplyToStatusIdStr.String(); parent != "" {
		ev.Metadata["in_reply_to_status_id"] = parent
	}
	return ev, nil
}

// EventFromMessage classifies a direct message and lifts it into an
// InteractionEvent carrying its conversation id.
func EventFromMessage(m *model.DMMessage, conversationId string, owner model.Owner) (model.InteractionEvent, error) {
	ts, err := util.ParseMessageTime(m.CreatedAt)
	if err != nil {
		return model.InteractionEvent{}, err
	}

	return model.InteractionEvent{
		Id:          m.Id,
		Timestamp:   ts,
		Type:        ClassifyMessage(m, owner),
		Counterpart: MessageCounterpart(m, owner),
		Text:        m.Text,
		Metadata: map[string]string{
			"source":          "dm",
			"conversation_id": conversationId,
		},
	}, nil
}
