// File: pkg/measure/worker.go
package measure

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mocsize/pkg/config"
)

// fileSize is what one file contributes to a result.
type fileSize struct {
	loaded     int   // Bytes after optional minification.
	compressed int64 // Bytes after compression.
}

// measureAll loads, optionally minifies and compresses each file with a bounded worker group.
// The returned slice is index-aligned with files. The first failure cancels the rest.
func measureAll(ctx context.Context, files []string, minify bool, compression config.Compression, maxWorkers int, logger *zap.Logger) ([]fileSize, error) {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}

	sizes := make([]fileSize, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	logger.Debug("Distributing files to workers", zap.Int("workers", maxWorkers), zap.Int("files", len(files)))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := loadFile(file, minify, logger)
			if err != nil {
				return err
			}
			n, err := compressedSize(data, compression)
			if err != nil {
				return fmt.Errorf("failed to compress %s: %w", file, err)
			}
			sizes[i] = fileSize{loaded: len(data), compressed: n}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("All files processed", zap.Int("processedFiles", len(files)))
	return sizes, nil
}

// loadFile reads one file and minifies it when asked and when its type is supported.
func loadFile(path string, minify bool, logger *zap.Logger) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	if !minify || isBinary(data) {
		return data, nil
	}

	out, ok, err := minifyByExtension(path, data)
	if err != nil {
		logger.Warn("Minification failed, counting file as is", zap.String("filePath", path), zap.Error(err))
		return data, nil
	}
	if !ok {
		return data, nil
	}

	logger.Debug("Minified file",
		zap.String("filePath", path),
		zap.Int("inputBytes", len(data)),
		zap.Int("outputBytes", len(out)))
	return out, nil
}
