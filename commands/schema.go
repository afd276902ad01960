package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-relation-insight/internal/data/schema"
	"github.com/penwyp/go-relation-insight/internal/util"
)

var (
	sampleLimit int

	schemaCmd = &cobra.Command{
		Use:   "schema <export-file>",
		Short: "Inspect the field schema of an export file",
		Long: `schema samples records from an export file and reports every field path
with the set of value kinds observed. Fields seen with more than one kind
need flexible decoding and are flagged as problematic.`,
		Args: cobra.ExactArgs(1),
		RunE: runSchema,
	}
)

func init() {
	schemaCmd.Flags().IntVar(&sampleLimit, "sample", 100,
		"Maximum number of records to sample")
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	path := expandPath(args[0])
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	report, err := schema.AnalyzeSample(raw, sampleLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Sampled %d records from %s\n\n", report.SampledRecords, path)

	pathWidth := len("Field")
	for _, p := range report.FieldPaths() {
		if w := util.DisplayWidth(p); w > pathWidth {
			pathWidth = w
		}
	}

	fmt.Printf("%s  %-6s  %s\n", util.PadRight("Field", pathWidth), "Count", "Kinds")
	for _, p := range report.FieldPaths() {
		info := report.Fields[p]
		line := fmt.Sprintf("%s  %-6d  %s", util.PadRight(p, pathWidth), info.Count,
			strings.Join(info.KindList(), ", "))
		if info.Problematic() {
			line += "  [problematic]"
		}
		fmt.Println(line)
	}

	if problematic := report.ProblematicFields(); len(problematic) > 0 {
		fmt.Printf("\n%d field(s) need flexible decoding: %s\n",
			len(problematic), strings.Join(problematic, ", "))
	}
	return nil
}
