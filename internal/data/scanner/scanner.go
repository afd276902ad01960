package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-relation-insight/internal/util"
)

// ExportSet holds the export files found inside an archive directory, split
// by record kind.
type ExportSet struct {
	TweetFiles   []string
	MessageFiles []string
}

// ArchiveScanner locates export files in an unpacked archive directory.
type ArchiveScanner struct {
	baseDir string
}

// NewArchiveScanner creates a scanner rooted at the given directory.
func NewArchiveScanner(baseDir string) *ArchiveScanner {
	return &ArchiveScanner{baseDir: baseDir}
}

// Scan walks the archive directory and collects tweet and direct-message
// export files (.js exports, e.g. tweets.js, tweet.js, direct-messages.js and
// their multi-part variants). Results are sorted for deterministic runs.
func (s *ArchiveScanner) Scan() (*ExportSet, error) {
	start := time.Now()
	set := &ExportSet{}
	fileCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning archive directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip path (error): %s - %v", path, err))
			return nil
		}
		if info.IsDir() {
			return nil
		}

		fileCount++
		name := strings.ToLower(filepath.Base(path))
		if filepath.Ext(name) != ".js" {
			return nil
		}

		switch {
		case strings.HasPrefix(name, "direct-message"):
			set.MessageFiles = append(set.MessageFiles, path)
		case strings.HasPrefix(name, "tweet"):
			set.TweetFiles = append(set.TweetFiles, path)
		}
		return nil
	})

	sort.Strings(set.TweetFiles)
	sort.Strings(set.MessageFiles)

	util.LogDebug(fmt.Sprintf("Archive scan completed: duration %v, %d files seen, %d tweet exports, %d message exports",
		time.Since(start), fileCount, len(set.TweetFiles), len(set.MessageFiles)))

	return set, err
}

// IsEmpty reports whether no export files were found.
func (e *ExportSet) IsEmpty() bool {
	return len(e.TweetFiles) == 0 && len(e.MessageFiles) == 0
}
