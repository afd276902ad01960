package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tweetExport = `window.YTD.tweets.part0 = [
  {
    "tweet": {
      "id_str": "900",
      "full_text": "hello world",
      "created_at": "Wed Oct 10 20:19:24 +0000 2018"
    }
  },
  {
    "tweet": {
      "id_str": "901",
      "full_text": "@bob yes",
      "created_at": "Wed Oct 10 21:00:00 +0000 2018",
      "in_reply_to_status_id_str": "899",
      "in_reply_to_user_id_str": "222",
      "in_reply_to_screen_name": "bob"
    }
  }
]`

const messageExport = `window.YTD.direct_messages.part0 = [
  {
    "dmConversation": {
      "conversationId": "111-222",
      "messages": [
        {
          "messageCreate": {
            "id": "m1",
            "senderId": "111",
            "recipientId": "222",
            "createdAt": "2023-10-15T10:00:00.000Z",
            "text": "hi"
          }
        },
        {
          "messageCreate": {
            "id": "m2",
            "senderId": "222",
            "recipientId": "111",
            "createdAt": "2023-10-15T10:03:00.000Z",
            "text": "hey"
          }
        }
      ]
    }
  }
]`

func TestExtractArrayPayload(t *testing.T) {
	payload, err := ExtractArrayPayload([]byte(`window.YTD.tweets.part0 = [ {"a": 1} ]`))
	require.NoError(t, err)
	assert.Equal(t, `[ {"a": 1} ]`, string(payload))
}

func TestExtractArrayPayloadBareArray(t *testing.T) {
	payload, err := ExtractArrayPayload([]byte(`[1,2,3]`))
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(payload))
}

func TestExtractArrayPayloadMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no delimiters", raw: "window.YTD.tweets.part0 = null"},
		{name: "only opening", raw: "data = [1, 2"},
		{name: "only closing", raw: "1, 2]"},
		{name: "inverted", raw: "] foo ["},
		{name: "empty", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractArrayPayload([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestParseTweets(t *testing.T) {
	tweets, err := ParseTweets([]byte(tweetExport))
	require.NoError(t, err)
	require.Len(t, tweets, 2)

	assert.Equal(t, "900", tweets[0].IdStr)
	assert.Equal(t, "hello world", tweets[0].FullText)
	assert.False(t, tweets[0].IsReply())

	assert.Equal(t, "901", tweets[1].IdStr)
	assert.True(t, tweets[1].IsReply())
	assert.Equal(t, "bob", tweets[1].InReplyToScreenName.String())
}

func TestParseTweetsMalformedJSON(t *testing.T) {
	_, err := ParseTweets([]byte(`window.YTD.tweets.part0 = [ {"tweet": } ]`))
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParseConversations(t *testing.T) {
	conversations, err := ParseConversations([]byte(messageExport))
	require.NoError(t, err)
	require.Len(t, conversations, 1)

	conv := conversations[0]
	assert.Equal(t, "111-222", conv.ConversationId)
	require.Len(t, conv.Messages, 2)
	require.NotNil(t, conv.Messages[0].MessageCreate)
	assert.Equal(t, "m1", conv.Messages[0].MessageCreate.Id)
	assert.Equal(t, "111", conv.Messages[0].MessageCreate.SenderId.String())
}

func TestParseTweetFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "tweets.js")
	require.NoError(t, os.WriteFile(path, []byte(tweetExport), 0644))

	tweets, err := ParseTweetFile(path)
	require.NoError(t, err)
	assert.Len(t, tweets, 2)
}

func TestParseTweetFileMissing(t *testing.T) {
	_, err := ParseTweetFile(filepath.Join(t.TempDir(), "absent.js"))
	assert.ErrorIs(t, err, ErrIoFailure)
}

func TestParseConversationFileMalformed(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "direct-messages.js")
	require.NoError(t, os.WriteFile(path, []byte("no array here"), 0644))

	_, err := ParseConversationFile(path)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestParseTweetsEmptyArray(t *testing.T) {
	tweets, err := ParseTweets([]byte(`window.YTD.tweets.part0 = []`))
	require.NoError(t, err)
	assert.Empty(t, tweets)
}

func TestParseTweetsFlexibleNumericField(t *testing.T) {
	// Some archive versions emit counts as numbers, others as strings.
	export := `window.YTD.tweets.part0 = [
	  {"tweet": {"id_str": "1", "created_at": "Wed Oct 10 20:19:24 +0000 2018", "favorite_count": 7}},
	  {"tweet": {"id_str": "2", "created_at": "Wed Oct 10 20:20:24 +0000 2018", "favorite_count": "3"}}
	]`

	tweets, err := ParseTweets([]byte(export))
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "7", tweets[0].FavoriteCount.String())
	assert.Equal(t, "3", tweets[1].FavoriteCount.String())
}
