package sizecheck

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"mocsize/pkg/config"
	"mocsize/pkg/expand"
	"mocsize/pkg/measure"
)

// fixedStrategy reports preset sizes regardless of input and records what it was given.
type fixedStrategy struct {
	sizes []int64
	got   []string
}

func (s *fixedStrategy) Measure(_ context.Context, files []string) ([]measure.Result, error) {
	s.got = files
	out := make([]measure.Result, 0, len(s.sizes))
	for _, size := range s.sizes {
		out = append(out, measure.Result{Name: "target", Size: size})
	}
	return out, nil
}

func distWith40k(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dist := filepath.Join(dir, "dist")
	if err := os.MkdirAll(dist, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dist, "index.js"), bytes.Repeat([]byte("a"), 40000), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func run(t *testing.T, cfg config.Config, registry measure.Registry) (string, error) {
	t.Helper()

	var out bytes.Buffer
	err := Run(context.Background(), &Arguments{
		Config:   cfg,
		Registry: registry,
		Output:   &out,
	}, nil)
	return out.String(), err
}

func TestRunWithinBudget(t *testing.T) {
	dir := distWith40k(t)
	cfg := config.Resolve(config.Overrides{Preset: "app", Limit: "50kb", Compression: "none"}, nil, dir)

	out, err := run(t, cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "Size limit:   50.00 kB") || !strings.Contains(out, "Size:         40.00 kB") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestRunOverBudget(t *testing.T) {
	dir := distWith40k(t)
	cfg := config.Resolve(config.Overrides{Preset: "app", Limit: "30kb", Compression: "none"}, nil, dir)

	out, err := run(t, cfg, nil)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("err = %v, want ErrBudgetExceeded", err)
	}
	if !strings.Contains(out, "exceeded") {
		t.Fatalf("failing entry not marked:\n%s", out)
	}
}

func TestRunReportOnly(t *testing.T) {
	dir := distWith40k(t)
	cfg := config.Resolve(config.Overrides{}, nil, dir)

	strategy := &fixedStrategy{sizes: []int64{1 << 30}}
	registry := measure.Registry{
		config.PresetSmallLib: func(measure.Options) measure.Strategy { return strategy },
	}

	if _, err := run(t, cfg, registry); err != nil {
		t.Fatalf("report-only run must succeed, got %v", err)
	}
	if want := []string{filepath.Join(dir, "dist", "index.js")}; len(strategy.got) != 1 || strategy.got[0] != want[0] {
		t.Fatalf("strategy got %v, want %v", strategy.got, want)
	}
}

func TestRunMultipleResults(t *testing.T) {
	dir := distWith40k(t)
	cfg := config.Resolve(config.Overrides{Limit: "1kb"}, nil, dir)

	registry := measure.Registry{
		config.PresetSmallLib: func(measure.Options) measure.Strategy {
			return &fixedStrategy{sizes: []int64{500, 900}}
		},
	}
	out, err := run(t, cfg, registry)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Count(out, "Size:") != 2 {
		t.Fatalf("expected two entries:\n%s", out)
	}

	registry[config.PresetSmallLib] = func(measure.Options) measure.Strategy {
		return &fixedStrategy{sizes: []int64{500, 1001}}
	}
	if _, err := run(t, cfg, registry); !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("err = %v, want ErrBudgetExceeded", err)
	}
}

func TestRunEmptyMatch(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Resolve(config.Overrides{Limit: "50kb"}, nil, dir)

	out, err := run(t, cfg, nil)
	var empty *expand.EmptyMatchError
	if !errors.As(err, &empty) {
		t.Fatalf("err = %v, want EmptyMatchError", err)
	}
	if out != "" {
		t.Fatalf("nothing should be reported, got:\n%s", out)
	}
}

func TestRunExpectedFailuresStayBelowWarn(t *testing.T) {
	tests := map[string]struct {
		dir      func(t *testing.T) string
		preset   string
		registry measure.Registry
	}{
		"empty match":    {dir: func(t *testing.T) string { return t.TempDir() }},
		"missing preset": {dir: distWith40k, preset: "app", registry: measure.Registry{}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			cfg := config.Resolve(config.Overrides{Preset: tt.preset, Limit: "50kb"}, nil, tt.dir(t))

			err := Run(context.Background(), &Arguments{
				Config:   cfg,
				Registry: tt.registry,
				Output:   &bytes.Buffer{},
			}, zap.New(core))
			if err == nil {
				t.Fatal("expected an error")
			}
			if logs.Len() != 0 {
				t.Fatalf("expected no warn/error entries, got %v", logs.All())
			}
		})
	}
}

func TestRunLogsFileCount(t *testing.T) {
	dir := distWith40k(t)
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := config.Resolve(config.Overrides{Preset: "app", Compression: "none"}, nil, dir)

	if err := Run(context.Background(), &Arguments{Config: cfg, Output: &bytes.Buffer{}}, zap.New(core)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	entries := logs.FilterMessage("Measured target").All()
	if len(entries) != 1 {
		t.Fatalf("expected one target entry, got %v", logs.All())
	}
	if files := entries[0].ContextMap()["files"]; files != int64(1) {
		t.Fatalf("files = %v (%T), want 1", files, files)
	}
}

func TestRunMissingPreset(t *testing.T) {
	dir := distWith40k(t)
	cfg := config.Resolve(config.Overrides{Preset: "big"}, nil, dir)

	_, err := run(t, cfg, measure.Registry{})
	var missing *measure.MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingDependencyError", err)
	}
}

func TestRunHonoursSizeIgnore(t *testing.T) {
	dir := distWith40k(t)
	if err := os.WriteFile(filepath.Join(dir, "dist", "extra.txt"), []byte("123"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".sizeignore"), []byte("*.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Resolve(config.Overrides{Preset: "app", Compression: "none"}, nil, dir)
	out, err := run(t, cfg, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out, "40.00 kB") {
		t.Fatalf("ignored file was counted:\n%s", out)
	}
}
