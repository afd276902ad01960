package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-relation-insight/internal/core/model"
	"github.com/penwyp/go-relation-insight/internal/util"
)

var (
	// ErrMalformedInput marks an export file whose JS wrapper or JSON payload
	// cannot be parsed. Fatal for that file, never retried.
	ErrMalformedInput = errors.New("malformed export input")

	// ErrIoFailure marks an unreadable source path. Propagated to the caller
	// as a distinct kind.
	ErrIoFailure = errors.New("io failure")
)

// ExtractArrayPayload strips the JavaScript variable-assignment wrapper that
// export files carry ("window.YTD.tweets.part0 = [ ... ]") by locating the
// first '[' and the last ']'. Returns ErrMalformedInput when either
// delimiter is absent or inverted.
func ExtractArrayPayload(raw []byte) ([]byte, error) {
	start := bytes.IndexByte(raw, '[')
	end := bytes.LastIndexByte(raw, ']')
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array delimiters found", ErrMalformedInput)
	}
	return raw[start : end+1], nil
}

// ParseTweets decodes a tweet export payload (wrapper included or not) into
// tweet records.
func ParseTweets(raw []byte) ([]model.TweetRecord, error) {
	payload, err := ExtractArrayPayload(raw)
	if err != nil {
		return nil, err
	}

	var envelopes []model.TweetEnvelope
	if err := sonic.Unmarshal(payload, &envelopes); err != nil {
		return nil, fmt.Errorf("%w: decoding tweet array: %v", ErrMalformedInput, err)
	}

	tweets := make([]model.TweetRecord, 0, len(envelopes))
	for _, env := range envelopes {
		tweets = append(tweets, env.Tweet)
	}
	return tweets, nil
}

// ParseConversations decodes a direct-message export payload into
// conversations.
func ParseConversations(raw []byte) ([]model.DMConversation, error) {
	payload, err := ExtractArrayPayload(raw)
	if err != nil {
		return nil, err
	}

	var envelopes []model.DMConversationEnvelope
	if err := sonic.Unmarshal(payload, &envelopes); err != nil {
		return nil, fmt.Errorf("%w: decoding conversation array: %v", ErrMalformedInput, err)
	}

	conversations := make([]model.DMConversation, 0, len(envelopes))
	for _, env := range envelopes {
		conversations = append(conversations, env.DmConversation)
	}
	return conversations, nil
}

// ParseTweetFile reads and decodes one tweet export file.
func ParseTweetFile(path string) ([]model.TweetRecord, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	tweets, err := ParseTweets(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	util.LogDebugf("Parsed %d tweet records from %s", len(tweets), path)
	return tweets, nil
}

// ParseConversationFile reads and decodes one direct-message export file.
func ParseConversationFile(path string) ([]model.DMConversation, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	conversations, err := ParseConversations(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	util.LogDebugf("Parsed %d conversations from %s", len(conversations), path)
	return conversations, nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIoFailure, path, err)
	}
	return raw, nil
}
