package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-relation-insight/internal/core/conversation"
	"github.com/penwyp/go-relation-insight/internal/core/model"
	"github.com/penwyp/go-relation-insight/internal/util"
)

// Data is everything the report renders. The analysis core hands this over
// fully materialized; the generator owns paths and formatting.
type Data struct {
	ScreenName    string                     `json:"screenName"`
	GeneratedAt   time.Time                  `json:"generatedAt"`
	TotalEvents   int                        `json:"totalEvents"`
	TweetCount    int                        `json:"tweetCount"`
	MessageCount  int                        `json:"messageCount"`
	ThreadCount   int                        `json:"threadCount"`
	Hourly        [24]int                    `json:"hourly"`
	Daily         [7]int                     `json:"daily"`
	PeakHour      int                        `json:"peakHour"`
	PeakDay       time.Weekday               `json:"peakDay"`
	Top           []*model.UserProfile       `json:"topRelationships"`
	ResponseStats conversation.ResponseStats `json:"responseStats"`
	Timeline      []model.InteractionEvent   `json:"-"`
}

// Generator writes per-run report artifacts named by screen name and run
// timestamp.
type Generator struct {
	outputDir string
	format    string // text, json
}

func NewGenerator(outputDir, format string) *Generator {
	if format == "" {
		format = "text"
	}
	return &Generator{outputDir: outputDir, format: format}
}

// Write renders the report and returns the artifact path.
func (g *Generator) Write(data *Data) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	name := data.ScreenName
	if name == "" {
		name = "archive"
	}
	stamp := data.GeneratedAt.Format("20060102-150405")

	var path string
	var content []byte
	switch g.format {
	case "json":
		path = filepath.Join(g.outputDir, fmt.Sprintf("%s_%s.json", name, stamp))
		rendered, err := sonic.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		content = rendered
	default:
		path = filepath.Join(g.outputDir, fmt.Sprintf("%s_%s.txt", name, stamp))
		content = []byte(g.renderText(data))
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func (g *Generator) renderText(data *Data) string {
	var b strings.Builder
	rule := strings.Repeat("=", 64)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Relationship Intelligence Report for @%s\n", data.ScreenName)
	fmt.Fprintf(&b, "Generated: %s UTC\n", util.FormatTimestamp(data.GeneratedAt))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Overview:")
	fmt.Fprintf(&b, "  Interactions: %s (%s tweets, %s messages)\n",
		util.FormatNumber(data.TotalEvents), util.FormatNumber(data.TweetCount), util.FormatNumber(data.MessageCount))
	fmt.Fprintf(&b, "  Conversation threads: %d\n", data.ThreadCount)
	fmt.Fprintf(&b, "  Peak hour: %02d:00 UTC\n", data.PeakHour)
	fmt.Fprintf(&b, "  Peak day: %s\n", data.PeakDay)
	fmt.Fprintln(&b)

	if data.ResponseStats.Count > 0 {
		fmt.Fprintln(&b, "Response Times:")
		fmt.Fprintf(&b, "  Samples: %d\n", data.ResponseStats.Count)
		fmt.Fprintf(&b, "  Median: %s  Mean: %s\n",
			util.FormatDuration(data.ResponseStats.Median), util.FormatDuration(data.ResponseStats.Mean))
		fmt.Fprintf(&b, "  Min: %s  Max: %s\n",
			util.FormatDuration(data.ResponseStats.Min), util.FormatDuration(data.ResponseStats.Max))
		fmt.Fprintln(&b)
	}

	g.renderTopTable(&b, data.Top)
	g.renderHistogram(&b, "Activity by hour (UTC)", hourLabels(), data.Hourly[:])
	g.renderHistogram(&b, "Activity by weekday", dayLabels(), data.Daily[:])
	g.renderRecentTimeline(&b, data.Timeline)

	fmt.Fprintln(&b, rule)
	return b.String()
}

func (g *Generator) renderTopTable(b *strings.Builder, top []*model.UserProfile) {
	if len(top) == 0 {
		return
	}

	fmt.Fprintln(b, "Top Relationships:")
	headers := []string{"#", "Counterpart", "Total", "First Seen", "Last Seen"}
	rows := make([][]string, 0, len(top))
	for i, p := range top {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			util.Truncate(p.Counterpart, 24),
			fmt.Sprintf("%d", p.TotalInteractions),
			util.FormatTimestamp(p.FirstSeen),
			util.FormatTimestamp(p.LastSeen),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = util.DisplayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := util.DisplayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow := func(cells []string) {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = util.PadRight(cell, widths[i])
		}
		fmt.Fprintf(b, "  %s\n", strings.Join(padded, "  "))
	}

	printRow(headers)
	for _, row := range rows {
		printRow(row)
	}
	fmt.Fprintln(b)
}

const histogramWidth = 40

func (g *Generator) renderHistogram(b *strings.Builder, title string, labels []string, buckets []int) {
	max := 0
	for _, count := range buckets {
		if count > max {
			max = count
		}
	}
	if max == 0 {
		return
	}

	fmt.Fprintf(b, "%s:\n", title)
	for i, count := range buckets {
		bar := strings.Repeat("#", count*histogramWidth/max)
		fmt.Fprintf(b, "  %s %6d %s\n", util.PadRight(labels[i], 9), count, bar)
	}
	fmt.Fprintln(b)
}

const timelineSample = 10

func (g *Generator) renderRecentTimeline(b *strings.Builder, events []model.InteractionEvent) {
	if len(events) == 0 {
		return
	}

	fmt.Fprintln(b, "Recent Activity:")
	limit := timelineSample
	if len(events) < limit {
		limit = len(events)
	}
	for _, ev := range events[:limit] {
		line := fmt.Sprintf("  %s  %-14s", util.FormatTimestamp(ev.Timestamp), ev.Type)
		if ev.Counterpart != "" {
			line += "  @" + ev.Counterpart
		}
		if ev.Text != "" {
			line += "  " + util.Truncate(strings.ReplaceAll(ev.Text, "\n", " "), 48)
		}
		fmt.Fprintln(b, line)
	}
	fmt.Fprintln(b)
}

func hourLabels() []string {
	labels := make([]string, 24)
	for i := range labels {
		labels[i] = fmt.Sprintf("%02d:00", i)
	}
	return labels
}

func dayLabels() []string {
	labels := make([]string, 7)
	for i := range labels {
		labels[i] = time.Weekday(i).String()
	}
	return labels
}
