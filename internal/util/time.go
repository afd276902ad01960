package util

import (
	"fmt"
	"time"
)

// tweetTimeLayout is the legacy timestamp format used for tweet created_at
// values, e.g. "Wed Oct 10 20:19:24 +0000 2018".
const tweetTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// ParseTweetTime parses a tweet created_at timestamp into UTC.
func ParseTweetTime(value string) (time.Time, error) {
	t, err := time.Parse(tweetTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid tweet timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}

// ParseMessageTime parses a direct-message createdAt timestamp (ISO-8601)
// into UTC.
func ParseMessageTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid message timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}

// FormatTimestamp renders a time for report output.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
