package analyzer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/penwyp/go-relation-insight/internal/core/classify"
	"github.com/penwyp/go-relation-insight/internal/core/conversation"
	"github.com/penwyp/go-relation-insight/internal/core/model"
	"github.com/penwyp/go-relation-insight/internal/core/relationship"
	"github.com/penwyp/go-relation-insight/internal/core/timeline"
	"github.com/penwyp/go-relation-insight/internal/data/parser"
	"github.com/penwyp/go-relation-insight/internal/data/scanner"
	"github.com/penwyp/go-relation-insight/internal/presentation/report"
	"github.com/penwyp/go-relation-insight/internal/util"
)

type Config struct {
	ArchiveDir   string
	OutputDir    string
	Owner        model.Owner
	Window       time.Duration
	TopN         int
	OutputFormat string // text, json
	Concurrency  int
}

// Result holds the complete output of one analysis run.
type Result struct {
	Owner         model.Owner
	Timeline      []model.InteractionEvent
	Threads       []model.ConversationThread
	Aggregator    *relationship.Aggregator
	ResponseStats conversation.ResponseStats
	TweetCount    int
	MessageCount  int
	FileErrors    []error
}

// Analyzer drives the full pipeline: scan -> parse -> classify -> timeline ->
// group -> aggregate -> report.
type Analyzer struct {
	config  *Config
	scanner *scanner.ArchiveScanner
}

func New(config *Config) *Analyzer {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}
	if config.Window <= 0 {
		config.Window = time.Hour
	}

	return &Analyzer{
		config:  config,
		scanner: scanner.NewArchiveScanner(config.ArchiveDir),
	}
}

// Run analyzes the archive and writes the report artifact, returning its
// path.
func (a *Analyzer) Run() (string, error) {
	result, err := a.Analyze()
	if err != nil {
		return "", err
	}

	gen := report.NewGenerator(a.config.OutputDir, a.config.OutputFormat)
	path, err := gen.Write(buildReportData(result, a.config.TopN))
	if err != nil {
		return "", err
	}

	util.LogInfof("Report written to %s", path)
	return path, nil
}

// batchResult is the outcome of analyzing one export file. Each batch folds
// into its own aggregator; batches merge afterward so concurrent analysis
// never shares mutable state.
type batchResult struct {
	file     string
	events   []model.InteractionEvent
	agg      *relationship.Aggregator
	tweets   int
	messages int
	err      error
}

// Analyze runs the pipeline without report generation. A parse or read
// failure aborts that file only; per-file errors are surfaced in
// Result.FileErrors while the remaining files still contribute.
func (a *Analyzer) Analyze() (*Result, error) {
	start := time.Now()

	exports, err := a.scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", a.config.ArchiveDir, err)
	}
	if exports.IsEmpty() {
		util.LogWarnf("No export files found under %s", a.config.ArchiveDir)
	}

	batches := a.analyzeFiles(exports)

	result := &Result{
		Owner:      a.config.Owner,
		Aggregator: relationship.New(),
	}

	var allEvents []model.InteractionEvent
	for _, batch := range batches {
		if batch.err != nil {
			util.LogWarnf("Skipping %s: %v", batch.file, batch.err)
			result.FileErrors = append(result.FileErrors, batch.err)
			continue
		}
		allEvents = append(allEvents, batch.events...)
		result.Aggregator.Merge(batch.agg)
		result.TweetCount += batch.tweets
		result.MessageCount += batch.messages
	}

	result.Timeline = timeline.Build(allEvents)
	result.Threads = conversation.Group(allEvents, a.config.Window)
	result.ResponseStats = conversation.ThreadStats(result.Threads)

	util.LogInfof("Analysis completed in %v: %d events, %d counterparts, %d threads",
		time.Since(start), len(allEvents), len(result.Aggregator.Profiles()), len(result.Threads))
	return result, nil
}

// analyzeFiles parses and classifies every export file concurrently, bounded
// by the configured concurrency.
func (a *Analyzer) analyzeFiles(exports *scanner.ExportSet) []batchResult {
	type job struct {
		file    string
		isTweet bool
	}

	jobs := make([]job, 0, len(exports.TweetFiles)+len(exports.MessageFiles))
	for _, f := range exports.TweetFiles {
		jobs = append(jobs, job{file: f, isTweet: true})
	}
	for _, f := range exports.MessageFiles {
		jobs = append(jobs, job{file: f})
	}

	results := make([]batchResult, len(jobs))
	semaphore := make(chan struct{}, a.config.Concurrency)
	var wg sync.WaitGroup

	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if j.isTweet {
				results[i] = a.analyzeTweetFile(j.file)
			} else {
				results[i] = a.analyzeMessageFile(j.file)
			}
		}(i, j)
	}
	wg.Wait()

	return results
}

func (a *Analyzer) analyzeTweetFile(file string) batchResult {
	batch := batchResult{file: file, agg: relationship.New()}

	tweets, err := parser.ParseTweetFile(file)
	if err != nil {
		batch.err = err
		return batch
	}
	batch.tweets = len(tweets)

	for i := range tweets {
		ev, err := classify.EventFromTweet(&tweets[i], a.config.Owner)
		if err != nil {
			util.LogDebugf("Skip tweet %s: %v", tweets[i].IdStr, err)
			continue
		}
		batch.events = append(batch.events, ev)
		batch.agg.Add(ev)
	}
	return batch
}

func (a *Analyzer) analyzeMessageFile(file string) batchResult {
	batch := batchResult{file: file, agg: relationship.New()}

	conversations, err := parser.ParseConversationFile(file)
	if err != nil {
		batch.err = err
		return batch
	}

	for _, conv := range conversations {
		for _, env := range conv.Messages {
			if env.MessageCreate == nil {
				continue
			}
			batch.messages++
			ev, err := classify.EventFromMessage(env.MessageCreate, conv.ConversationId, a.config.Owner)
			if err != nil {
				util.LogDebugf("Skip message %s: %v", env.MessageCreate.Id, err)
				continue
			}
			batch.events = append(batch.events, ev)
			batch.agg.Add(ev)
		}
	}
	return batch
}

// buildReportData converts an analysis result into the report collaborator's
// input shape. The core keeps no knowledge of paths or formatting.
func buildReportData(res *Result, topN int) *report.Data {
	data := &report.Data{
		ScreenName:    res.Owner.ScreenName,
		GeneratedAt:   time.Now().UTC(),
		TotalEvents:   res.Aggregator.TotalEvents(),
		TweetCount:    res.TweetCount,
		MessageCount:  res.MessageCount,
		ThreadCount:   len(res.Threads),
		Hourly:        res.Aggregator.Hourly(),
		Daily:         res.Aggregator.Daily(),
		PeakHour:      res.Aggregator.PeakHour(),
		PeakDay:       res.Aggregator.PeakDay(),
		Top:           res.Aggregator.TopRelationships(topN),
		ResponseStats: res.ResponseStats,
		Timeline:      res.Timeline,
	}
	return data
}
