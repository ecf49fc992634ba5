package describe

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// Processor evaluates one input with an engine.
type Processor func(DescribeEngine, string) ([]Description, error)

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine DescribeEngine,
	paths []string,
	processor Processor,
) ([]Description, error) {
	var all []Description
	for _, path := range paths {
		descs, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
		all = append(all, descs...)
	}
	return all, nil
}

type fileResult struct {
	path  string
	descs []Description
	err   error
}

// ProcessPath processes a single scenario file, or every scenario file
// below a directory. Directory entries are evaluated concurrently; files
// that fail are logged and skipped. Results are ordered by file path.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine DescribeEngine,
	path string,
	processor Processor,
) ([]Description, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, err
	}

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	results := make(chan fileResult, len(files))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	collected := make([]fileResult, 0, len(files))
	started := 0
	var canceled error

dispatch:
	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			canceled = err
			break
		}
		select {
		case <-ctx.Done():
			canceled = ctx.Err()
			break dispatch
		case sem <- struct{}{}:
		}
		started++
		go func(fp string) {
			defer func() { <-sem }()
			descs, err := processor(engine, fp)
			results <- fileResult{path: fp, descs: descs, err: err}
			_ = bar.Add(1)
		}(filePath)
	}

	for i := 0; i < started; i++ {
		res := <-results
		if res.err != nil {
			if logger != nil {
				logger.Error("Error processing file", zap.String("file", res.path), zap.Error(res.err))
			}
			continue
		}
		collected = append(collected, res)
	}
	_ = bar.Finish()

	sort.Slice(collected, func(i, j int) bool { return collected[i].path < collected[j].path })
	descs := make([]Description, 0, len(collected))
	for _, res := range collected {
		descs = append(descs, res.descs...)
	}
	if canceled != nil {
		return descs, canceled
	}
	return descs, nil
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return files, nil
}

func ProcessFile(engine DescribeEngine, filePath string) ([]Description, error) {
	return engine.Run(filePath)
}

// ProcessSource evaluates an in-memory scenario document.
func ProcessSource(engine DescribeEngine, source []byte) ([]Description, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
