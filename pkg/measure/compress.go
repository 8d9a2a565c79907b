package measure

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"

	"mocsize/pkg/config"
)

// countingWriter discards everything written to it and remembers how much that was.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// compressedSize returns the size of data after compression c.
func compressedSize(data []byte, c config.Compression) (int64, error) {
	counter := &countingWriter{}

	var zw io.WriteCloser
	switch c {
	case config.CompressionNone:
		return int64(len(data)), nil
	case config.CompressionGzip:
		gw, err := gzip.NewWriterLevel(counter, gzip.BestCompression)
		if err != nil {
			return 0, err
		}
		zw = gw
	default:
		zw = brotli.NewWriterLevel(counter, brotli.BestCompression)
	}

	if _, err := zw.Write(data); err != nil {
		return 0, err
	}
	if err := zw.Close(); err != nil {
		return 0, err
	}
	return counter.n, nil
}
