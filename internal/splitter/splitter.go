package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/penwyp/go-relation-insight/internal/data/parser"
	"github.com/penwyp/go-relation-insight/internal/util"
)

// Options controls how an export is split.
type Options struct {
	ChunkSize         int // records per chunk file
	OverwriteExisting bool
	DirMode           os.FileMode
	FileMode          os.FileMode
}

// Result reports what a split wrote.
type Result struct {
	ChunksWritten  int
	RecordsWritten int
	BytesWritten   int
}

const defaultChunkSize = 500

// SplitExport splits one export file (JS wrapper or bare JSON array) into
// chunk files of at most ChunkSize records each, written as plain JSON
// arrays named part0000.json, part0001.json, ... under outputDir. Utility
// for working with archives too large to inspect whole; independent of the
// analysis pipeline.
func SplitExport(inputPath, outputDir string, opts Options) (Result, error) {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if opts.DirMode == 0 {
		opts.DirMode = 0o755
	}
	if opts.FileMode == 0 {
		opts.FileMode = 0o644
	}

	var res Result

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return res, fmt.Errorf("%w: %s: %v", parser.ErrIoFailure, inputPath, err)
	}
	payload, err := parser.ExtractArrayPayload(raw)
	if err != nil {
		return res, fmt.Errorf("%s: %w", inputPath, err)
	}

	root := gjson.ParseBytes(payload)
	if !root.IsArray() {
		return res, fmt.Errorf("%s: %w: payload is not a JSON array", inputPath, parser.ErrMalformedInput)
	}

	if err := os.MkdirAll(outputDir, opts.DirMode); err != nil {
		return res, fmt.Errorf("%w: %v", parser.ErrIoFailure, err)
	}

	var chunk []string
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		path := filepath.Join(outputDir, fmt.Sprintf("part%04d.json", res.ChunksWritten))
		if !opts.OverwriteExisting {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use overwrite)", path)
			}
		}
		content := []byte("[" + strings.Join(chunk, ",") + "]\n")
		if err := os.WriteFile(path, content, opts.FileMode); err != nil {
			return fmt.Errorf("%w: %v", parser.ErrIoFailure, err)
		}
		res.ChunksWritten++
		res.RecordsWritten += len(chunk)
		res.BytesWritten += len(content)
		chunk = chunk[:0]
		return nil
	}

	var walkErr error
	root.ForEach(func(_, record gjson.Result) bool {
		chunk = append(chunk, record.Raw)
		if len(chunk) >= opts.ChunkSize {
			if walkErr = flush(); walkErr != nil {
				return false
			}
		}
		return true
	})
	if walkErr != nil {
		return res, walkErr
	}
	if err := flush(); err != nil {
		return res, err
	}

	util.LogInfof("Split %s into %d chunks (%d records)", inputPath, res.ChunksWritten, res.RecordsWritten)
	return res, nil
}
