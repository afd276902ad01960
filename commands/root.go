package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-relation-insight/internal/analyzer"
	"github.com/penwyp/go-relation-insight/internal/config"
	"github.com/penwyp/go-relation-insight/internal/core/model"
	"github.com/penwyp/go-relation-insight/internal/util"
)

var (
	// Logging related
	debug   bool
	logFile string

	// Input data
	archiveDir string
	configPath string

	// Owner identity
	accountId  string
	screenName string

	// Analysis parameters
	windowSeconds int
	topN          int

	// Output related
	outputDir    string
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "go-relation-insight [flags]",
		Short: "Relationship analysis for exported social-media archives",
		Long: `go-relation-insight analyzes an exported Twitter/X personal archive and
builds per-contact relationship intelligence: interaction counts by type,
activity timelines, conversation threads, response-time statistics, and
ranked top relationships.

Examples:
  go-relation-insight --archive ~/twitter-archive --account-id 12345 --screen-name alice
  go-relation-insight --archive ./archive --window 1800 --top 10
  go-relation-insight --archive ./archive --output json --out ./reports
  go-relation-insight schema ./archive/data/tweets.js --sample 200
  go-relation-insight split --in ./archive/data/tweets.js --out ./chunks`,
		RunE: runAnalyze,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Write logs to this file instead of stderr")

	rootCmd.Flags().StringVarP(&archiveDir, "archive", "a", ".",
		"Unpacked archive directory")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"YAML config file path")
	rootCmd.Flags().StringVar(&accountId, "account-id", "",
		"Archive owner's numeric account id")
	rootCmd.Flags().StringVar(&screenName, "screen-name", "",
		"Archive owner's screen name")
	rootCmd.Flags().IntVarP(&windowSeconds, "window", "w", 0,
		"Conversation window in seconds (max inactivity gap inside a thread)")
	rootCmd.Flags().IntVar(&topN, "top", 0,
		"Number of ranked relationships in the report")
	rootCmd.Flags().StringVar(&outputDir, "out", "",
		"Report output directory")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "",
		"Report format (text, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags override file configuration.
	if accountId != "" {
		cfg.Account.AccountId = accountId
	}
	if screenName != "" {
		cfg.Account.ScreenName = screenName
	}
	if windowSeconds > 0 {
		cfg.Analysis.WindowSeconds = windowSeconds
	}
	if topN > 0 {
		cfg.Analysis.Top = topN
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a := analyzer.New(&analyzer.Config{
		ArchiveDir: expandPath(archiveDir),
		OutputDir:  expandPath(cfg.Output.Dir),
		Owner: model.Owner{
			AccountId:  cfg.Account.AccountId,
			ScreenName: cfg.Account.ScreenName,
		},
		Window:       time.Duration(cfg.Analysis.WindowSeconds) * time.Second,
		TopN:         cfg.Analysis.Top,
		OutputFormat: cfg.Output.Format,
	})

	path, err := a.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Report written to %s\n", path)
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initLogging() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	if logFile != "" {
		logFile = expandPath(logFile)
		if err := ensureDir(filepath.Dir(logFile)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return util.InitLogger(logLevel, logFile, debug)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
