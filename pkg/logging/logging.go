// Package logging owns the process-wide zap logger.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mocsize/pkg/version"
)

// Logger discards everything until Setup replaces it.
var Logger = zap.NewNop()

// Setup installs the process logger, writing to w.
func Setup(w io.Writer, verbose bool, info version.Info) {
	Logger = New(w, verbose, info)
	zap.ReplaceGlobals(Logger)
}

// New builds a logger writing to w. Verbose mode writes human-readable debug output with
// callers and error stack traces. Otherwise only warnings and errors are written, as JSON
// and without stack traces: stdout carries the report and stderr the one-line error.
func New(w io.Writer, verbose bool, info version.Info) *zap.Logger {
	var (
		encoder zapcore.Encoder
		level   zapcore.Level
		opts    []zap.Option
	)
	if verbose {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
		opts = append(opts, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		level = zapcore.WarnLevel
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
	return zap.New(core, opts...).With(
		zap.String("appName", info.Name),
		zap.String("appVersion", info.Version),
	)
}
