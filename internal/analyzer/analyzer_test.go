package analyzer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-relation-insight/internal/core/model"
)

const tweetExport = `window.YTD.tweets.part0 = [
  {"tweet": {"id_str": "900", "full_text": "hello world", "created_at": "Sun Oct 15 10:00:00 +0000 2023"}},
  {"tweet": {"id_str": "901", "full_text": "@bob yes", "created_at": "Sun Oct 15 10:05:00 +0000 2023",
    "in_reply_to_status_id_str": "899", "in_reply_to_user_id_str": "222", "in_reply_to_screen_name": "bob"}},
  {"tweet": {"id_str": "902", "full_text": "follow-up", "created_at": "Sun Oct 15 12:05:00 +0000 2023",
    "in_reply_to_status_id_str": "901", "in_reply_to_user_id_str": "111", "in_reply_to_screen_name": "alice"}}
]`

const messageExport = `window.YTD.direct_messages.part0 = [
  {"dmConversation": {"conversationId": "111-222", "messages": [
    {"messageCreate": {"id": "m1", "senderId": "111", "recipientId": "222",
      "createdAt": "2023-10-16T09:00:00.000Z", "text": "hi"}},
    {"messageCreate": {"id": "m2", "senderId": "222", "recipientId": "111",
      "createdAt": "2023-10-16T09:03:00.000Z", "text": "hey"}}
  ]}}
]`

func writeArchive(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "tweets.js"), []byte(tweetExport), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "direct-messages.js"), []byte(messageExport), 0644))
	return dir
}

func newTestAnalyzer(t *testing.T, archiveDir string) *Analyzer {
	t.Helper()
	return New(&Config{
		ArchiveDir: archiveDir,
		OutputDir:  t.TempDir(),
		Owner:      model.Owner{AccountId: "111", ScreenName: "alice"},
		Window:     time.Hour,
		TopN:       10,
	})
}

func TestAnalyzeFullPipeline(t *testing.T) {
	a := newTestAnalyzer(t, writeArchive(t))

	result, err := a.Analyze()
	require.NoError(t, err)
	assert.Empty(t, result.FileErrors)

	assert.Equal(t, 3, result.TweetCount)
	assert.Equal(t, 2, result.MessageCount)

	// Timeline is descending and complete.
	require.Len(t, result.Timeline, 5)
	assert.Equal(t, "m2", result.Timeline[0].Id)
	for i := 1; i < len(result.Timeline); i++ {
		assert.False(t, result.Timeline[i].Timestamp.After(result.Timeline[i-1].Timestamp))
	}

	// 10:00+10:05 cluster, 12:05 alone, the two DMs the next day.
	require.Len(t, result.Threads, 3)
	assert.Len(t, result.Threads[0].Events, 2)
	assert.Len(t, result.Threads[1].Events, 1)
	assert.Len(t, result.Threads[2].Events, 2)

	// bob: one reply plus one dm_received; 222 appears only via DM counterparts.
	profiles := result.Aggregator.Profiles()
	require.Contains(t, profiles, "bob")
	assert.Equal(t, 1, profiles["bob"].InteractionCounts[model.TypeReplyToOther])
	require.Contains(t, profiles, "222")
	assert.Equal(t, 1, profiles["222"].InteractionCounts[model.TypeDMSent])
	assert.Equal(t, 1, profiles["222"].InteractionCounts[model.TypeDMReceived])

	// Self-reply and original post carry no counterpart profile for alice.
	assert.NotContains(t, profiles, "alice")

	assert.Equal(t, 5, result.Aggregator.TotalEvents())
	assert.Equal(t, 2, result.ResponseStats.Count)
	assert.Equal(t, 3*time.Minute, result.ResponseStats.Min)
	assert.Equal(t, 5*time.Minute, result.ResponseStats.Max)
}

func TestAnalyzeEmptyArchive(t *testing.T) {
	a := newTestAnalyzer(t, t.TempDir())

	result, err := a.Analyze()
	require.NoError(t, err)

	assert.Empty(t, result.Timeline)
	assert.Empty(t, result.Threads)
	assert.Empty(t, result.Aggregator.Profiles())
	assert.Equal(t, 0, result.Aggregator.TotalEvents())
}

func TestAnalyzeMalformedFileIsSurfacedNotFatal(t *testing.T) {
	dir := writeArchive(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "tweets-part1.js"),
		[]byte("not an export"), 0644))

	a := newTestAnalyzer(t, dir)
	result, err := a.Analyze()
	require.NoError(t, err)

	// The broken file is reported; the healthy files still contribute.
	require.Len(t, result.FileErrors, 1)
	assert.Equal(t, 3, result.TweetCount)
	assert.Equal(t, 2, result.MessageCount)
}

func TestRunWritesReportArtifact(t *testing.T) {
	archive := writeArchive(t)
	outDir := t.TempDir()
	a := New(&Config{
		ArchiveDir: archive,
		OutputDir:  outDir,
		Owner:      model.Owner{AccountId: "111", ScreenName: "alice"},
		Window:     time.Hour,
		TopN:       5,
	})

	path, err := a.Run()
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "alice_")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Relationship Intelligence Report for @alice")
}

func TestNewAppliesDefaults(t *testing.T) {
	a := New(&Config{ArchiveDir: "."})
	assert.Greater(t, a.config.Concurrency, 0)
	assert.Equal(t, time.Hour, a.config.Window)
}
