package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rezonia/au-invoice/internal/processor"
)

var stdin io.Reader = os.Stdin

// readInput returns the invoice named by arg. "-" or no argument reads
// stdin, an existing path is read from disk and anything else is taken as
// a link or query string.
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, "stdin", nil
	}

	arg := args[0]
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read file: %w", err)
		}
		return data, arg, nil
	}

	if processor.DetectFormat([]byte(arg)) != processor.FormatUnknown {
		return []byte(arg), "argument", nil
	}

	return nil, "", fmt.Errorf("file not found: %s", arg)
}

// newPipeline builds a pipeline whose clock follows --timezone
func newPipeline(opts ...processor.PipelineOption) (*processor.Pipeline, error) {
	loc, err := location()
	if err != nil {
		return nil, err
	}

	clock := func() time.Time { return time.Now().In(loc) }
	return processor.NewPipeline(append([]processor.PipelineOption{processor.WithClock(clock)}, opts...)...), nil
}

// processInput reads and processes an invoice, logging warnings when verbose
func processInput(pipeline *processor.Pipeline, args []string, timeout time.Duration) (*processor.Result, error) {
	data, source, err := readInput(args)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	printVerbose("Processing: %s\n", source)
	result := pipeline.Process(ctx, data)
	printVerbose("  Format: %s\n", result.Format)
	for _, w := range result.Warnings {
		printVerbose("  Warning: %s\n", w)
	}

	if result.Error != nil {
		return result, result.Error
	}
	return result, nil
}

// collectFiles expands globs and directories into files with one of exts
func collectFiles(args []string, exts ...string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}
			if !info.IsDir() {
				files = append(files, arg)
				continue
			}
			matches = []string{arg}
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				if hasExt(match, exts) {
					files = append(files, match)
				}
				continue
			}

			// Walk directory
			err = filepath.Walk(match, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && hasExt(path, exts) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func hasExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
