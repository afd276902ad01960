package model

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Raw export record shapes. Tweet exports wrap each record in a {"tweet": ...}
// envelope; direct-message exports wrap each conversation in
// {"dmConversation": ...}.

type TweetEnvelope struct {
	Tweet TweetRecord `json:"tweet"`
}

// TweetRecord carries the subset of tweet export fields the analysis needs.
// Fields that appear as either a scalar or an object across archive versions
// are decoded through FlexibleString.
type TweetRecord struct {
	IdStr                string         `json:"id_str"`
	FullText             string         `json:"full_text"`
	CreatedAt            string         `json:"created_at"`
	InReplyToStatusIdStr FlexibleString `json:"in_reply_to_status_id_str"`
	InReplyToUserIdStr   FlexibleString `json:"in_reply_to_user_id_str"`
	InReplyToScreenName  FlexibleString `json:"in_reply_to_screen_name"`
	Lang                 string         `json:"lang,omitempty"`
	FavoriteCount        FlexibleString `json:"favorite_count,omitempty"`
	RetweetCount         FlexibleString `json:"retweet_count,omitempty"`
}

// IsReply reports whether the tweet references a parent status or author.
func (t *TweetRecord) IsReply() bool {
	return t.InReplyToStatusIdStr != "" || t.InReplyToUserIdStr != "" || t.InReplyToScreenName != ""
}

type DMConversationEnvelope struct {
	DmConversation DMConversation `json:"dmConversation"`
}

// DMConversation groups direct messages under a conversation id of the form
// "<idA>-<idB>".
type DMConversation struct {
	ConversationId string              `json:"conversationId"`
	Messages       []DMMessageEnvelope `json:"messages"`
}

// Participants splits the conversation id into the two participant ids.
func (c *DMConversation) Participants() (string, string, bool) {
	parts := strings.SplitN(c.ConversationId, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

type DMMessageEnvelope struct {
	MessageCreate *DMMessage `json:"messageCreate"`
}

// DMMessage is a single direct message.
type DMMessage struct {
	Id          string         `json:"id"`
	SenderId    FlexibleString `json:"senderId"`
	RecipientId FlexibleString `json:"recipientId"`
	CreatedAt   string         `json:"createdAt"`
	Text        string         `json:"text"`
}

// FlexibleString tolerates fields that appear as a string, a number, or an
// object across export versions. Scalars keep their textual value; objects
// and arrays are coerced to their compact JSON representation so downstream
// components only ever see a canonical string.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	var str string
	if err := sonic.Unmarshal(data, &str); err == nil {
		*f = FlexibleString(str)
		return nil
	}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}

	// Numbers, booleans, objects, arrays: validate, then keep the compact
	// textual form.
	var probe interface{}
	if err := sonic.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("flexible field is not valid JSON: %w", err)
	}
	compact, err := sonic.Marshal(probe)
	if err != nil {
		return err
	}
	*f = FlexibleString(compact)
	return nil
}

func (f FlexibleString) String() string {
	return string(f)
}
