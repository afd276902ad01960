package classify

import (
	"strings"

	"github.com/penwyp/go-relation-insight/internal/core/model"
)

// ClassifyTweet maps a tweet record to an interaction type relative to the
// archive owner. A tweet with no reply reference is an original post; a reply
// whose referenced author is the owner is a self-reply; anything else is a
// reply to another account. Pure and deterministic.
func ClassifyTweet(t *model.TweetRecord, owner model.Owner) model.InteractionType {
	if !t.IsReply() {
		return model.TypeOriginalPost
	}
	if isOwner(t.InReplyToUserIdStr.String(), t.InReplyToScreenName.String(), owner) {
		return model.TypeReplyToSelf
	}
	return model.TypeReplyToOther
}

// ClassifyMessage maps a direct message to dm_sent or dm_received depending
// on whether the owner is the sender.
func ClassifyMessage(m *model.DMMessage, owner model.Owner) model.InteractionType {
	if m.SenderId.String() == owner.AccountId {
		return model.TypeDMSent
	}
	return model.TypeDMReceived
}

func isOwner(userId, screenName string, owner model.Owner) bool {
	if userId != "" && userId == owner.AccountId {
		return true
	}
	return screenName != "" && strings.EqualFold(screenName, owner.ScreenName)
}

// TweetCounterpart resolves the counterpart identity of a tweet: the replied-to
// screen name when present, falling back to the replied-to account id.
// Original posts have no counterpart.
func TweetCounterpart(t *model.TweetRecord) string {
	if name := t.InReplyToScreenName.String(); name != "" {
		return name
	}
	return t.InReplyToUserIdStr.String()
}

// MessageCounterpart resolves the counterpart of a direct message: whichever
// side of the exchange is not the owner.
func MessageCounterpart(m *model.DMMessage, owner model.Owner) string {
	if m.SenderId.String() == owner.AccountId {
		return m.RecipientId.String()
	}
	return m.SenderId.String()
}
