package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-relation-insight/internal/core/model"
)

func TestEventFromTweet(t *testing.T) {
	tweet := model.TweetRecord{
		IdStr:                "900",
		FullText:             "@bob nice one",
		CreatedAt:            "Wed Oct 10 20:19:24 +0000 2018",
		InReplyToStatusIdStr: "899",
		InReplyToUserIdStr:   "222",
		InReplyToScreenName:  "bob",
	}

	ev, err := EventFromTweet(&tweet, owner)
	require.NoError(t, err)

	assert.Equal(t, "900", ev.Id)
	assert.Equal(t, model.TypeReplyToOther, ev.Type)
	assert.Equal(t, "bob", ev.Counterpart)
	assert.Equal(t, "@bob nice one", ev.Text)
	assert.Equal(t, time.Date(2018, 10, 10, 20, 19, 24, 0, time.UTC), ev.Timestamp)
	assert.Equal(t, "tweet", ev.Metadata["source"])
	assert.Equal(t, "899", ev.Metadata["in_reply_to_status_id"])
}

func TestEventFromTweetNonUTCOffsetNormalized(t *testing.T) {
	tweet := model.TweetRecord{
		IdStr:     "901",
		CreatedAt: "Wed Oct 10 22:19:24 +0200 2018",
	}

	ev, err := EventFromTweet(&tweet, owner)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 10, 10, 20, 19, 24, 0, time.UTC), ev.Timestamp)
	assert.Equal(t, time.UTC, ev.Timestamp.Location())
}

func TestEventFromTweetInvalidTimestamp(t *testing.T) {
	tweet := model.TweetRecord{IdStr: "902", CreatedAt: "not-a-date"}
	_, err := EventFromTweet(&tweet, owner)
	assert.Error(t, err)
}

func TestEventFromMessage(t *testing.T) {
	msg := model.DMMessage{
		Id:          "m1",
		SenderId:    "222",
		RecipientId: "111",
		CreatedAt:   "2023-10-15T10:00:00.000Z",
		Text:        "hey",
	}

	ev, err := EventFromMessage(&msg, "111-222", owner)
	require.NoError(t, err)

	assert.Equal(t, model.TypeDMReceived, ev.Type)
	assert.Equal(t, "222", ev.Counterpart)
	assert.Equal(t, "111-222", ev.Metadata["conversation_id"])
	assert.Equal(t, time.Date(2023, 10, 15, 10, 0, 0, 0, time.UTC), ev.Timestamp)
}

func TestEventFromMessageInvalidTimestamp(t *testing.T) {
	msg := model.DMMessage{Id: "m2", CreatedAt: "yesterday"}
	_, err := EventFromMessage(&msg, "111-222", owner)
	assert.Error(t, err)
}
