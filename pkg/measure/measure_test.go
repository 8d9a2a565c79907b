package measure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mocsize/pkg/config"
)

func writeTempFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func measureOne(t *testing.T, preset config.PresetID, c config.Compression, files ...string) Result {
	t.Helper()

	s, err := DefaultRegistry.Lookup(preset, Options{Name: "test", Compression: c, Workers: 2})
	if err != nil {
		t.Fatalf("Lookup(%s): %v", preset, err)
	}
	results, err := s.Measure(context.Background(), files)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one aggregate result, got %d", len(results))
	}
	return results[0]
}

const sampleJS = `
// a comment that the minifier drops
function addNumbers(firstNumber, secondNumber) {
    const total = firstNumber + secondNumber;
    return total;
}

export default addNumbers;
`

func TestUncompressedAppCountsRawBytes(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.bin", bytes.Repeat([]byte{0}, 40000))
	b := writeTempFile(t, dir, "b.js", []byte(sampleJS))

	r := measureOne(t, config.PresetApp, config.CompressionNone, a, b)
	if want := int64(40000 + len(sampleJS)); r.Size != want {
		t.Fatalf("size = %d, want %d", r.Size, want)
	}
	if r.Files != 2 {
		t.Fatalf("files = %d", r.Files)
	}
	if r.Name != "test" {
		t.Fatalf("name = %q", r.Name)
	}
	if r.LoadingTime == 0 {
		t.Fatal("app preset should estimate loading time")
	}
}

func TestMinifiedPresetsShrinkJavaScript(t *testing.T) {
	dir := t.TempDir()
	f := writeTempFile(t, dir, "index.js", []byte(sampleJS))

	raw := measureOne(t, config.PresetApp, config.CompressionNone, f)
	small := measureOne(t, config.PresetSmallLib, config.CompressionNone, f)
	big := measureOne(t, config.PresetBigLib, config.CompressionNone, f)

	if small.Size >= raw.Size {
		t.Fatalf("minified size %d should be below raw size %d", small.Size, raw.Size)
	}
	if big.Size != small.Size {
		t.Fatalf("big-lib (%d) and small-lib (%d) minify identically", big.Size, small.Size)
	}
	if small.LoadingTime != 0 {
		t.Fatal("small-lib does not estimate loading time")
	}
	if big.LoadingTime == 0 {
		t.Fatal("big-lib estimates loading time")
	}
}

func TestCompressionShrinksRepetitiveInput(t *testing.T) {
	dir := t.TempDir()
	f := writeTempFile(t, dir, "data.txt", []byte(strings.Repeat("size budget ", 5000)))

	none := measureOne(t, config.PresetApp, config.CompressionNone, f)
	for _, c := range []config.Compression{config.CompressionBrotli, config.CompressionGzip} {
		r := measureOne(t, config.PresetApp, c, f)
		if r.Size <= 0 || r.Size >= none.Size {
			t.Errorf("%s size = %d, raw = %d", c, r.Size, none.Size)
		}
	}
}

func TestSizesAreSummedPerFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(strings.Repeat("the same text in every copy\n", 400))
	a := writeTempFile(t, dir, "a.txt", content)
	b := writeTempFile(t, dir, "b.txt", content)
	other := writeTempFile(t, dir, "c.js", []byte(sampleJS))

	for _, c := range []config.Compression{config.CompressionBrotli, config.CompressionGzip, config.CompressionNone} {
		one := measureOne(t, config.PresetApp, c, a)
		two := measureOne(t, config.PresetApp, c, a, b)
		if two.Size != 2*one.Size {
			t.Errorf("%s: two identical files = %d, want 2 x %d", c, two.Size, one.Size)
		}

		forward := measureOne(t, config.PresetSmallLib, c, a, other)
		backward := measureOne(t, config.PresetSmallLib, c, other, a)
		js := measureOne(t, config.PresetSmallLib, c, other)
		text := measureOne(t, config.PresetSmallLib, c, a)
		if forward.Size != backward.Size || forward.Size != js.Size+text.Size {
			t.Errorf("%s: sum = %d / %d, want %d", c, forward.Size, backward.Size, js.Size+text.Size)
		}
	}
}

func TestBinaryAndUnknownFilesAreNotMinified(t *testing.T) {
	dir := t.TempDir()
	content := []byte("  keep   all   this   whitespace  ")
	f := writeTempFile(t, dir, "notes.txt", content)

	r := measureOne(t, config.PresetSmallLib, config.CompressionNone, f)
	if r.Size != int64(len(content)) {
		t.Fatalf("size = %d, want %d", r.Size, len(content))
	}

	if !isBinary([]byte{'a', 0, 'b'}) {
		t.Error("NUL byte marks binary content")
	}
	if isBinary([]byte("plain text\n")) {
		t.Error("plain text is not binary")
	}
	if isBinary([]byte("héllo wörld")) {
		t.Error("UTF-8 text is not binary")
	}
}

func TestMeasureMissingFile(t *testing.T) {
	s, err := DefaultRegistry.Lookup(config.PresetSmallLib, Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Measure(context.Background(), []string{filepath.Join(t.TempDir(), "gone.js")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLookupMissingPreset(t *testing.T) {
	r := Registry{}
	_, err := r.Lookup(config.PresetApp, Options{})

	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDependencyError, got %v", err)
	}
	if missing.Preset != config.PresetApp {
		t.Fatalf("preset = %q", missing.Preset)
	}
}

func TestDefaultRegistryCoversEveryPreset(t *testing.T) {
	for _, id := range config.Presets() {
		if _, err := DefaultRegistry.Lookup(id, Options{}); err != nil {
			t.Errorf("preset %s: %v", id, err)
		}
	}
}

func TestLoadingTime(t *testing.T) {
	if got := LoadingTime(1); got != minLoadingTime {
		t.Fatalf("LoadingTime(1) = %v, want floor %v", got, minLoadingTime)
	}
	if got := LoadingTime(50 * 1024); got != time.Second {
		t.Fatalf("LoadingTime(50 KiB) = %v, want 1s", got)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		minify bool
		c      config.Compression
		want   string
	}{
		{true, config.CompressionBrotli, "with all dependencies, minified and brotlied"},
		{true, config.CompressionGzip, "with all dependencies, minified and gzipped"},
		{true, config.CompressionNone, "with all dependencies, minified"},
		{false, config.CompressionBrotli, "brotlied"},
		{false, config.CompressionNone, "uncompressed"},
	}
	for _, tt := range tests {
		p := newPipeline(Options{Compression: tt.c}, tt.minify, false)
		if got := p.describe(); got != tt.want {
			t.Errorf("describe(minify=%v, %s) = %q, want %q", tt.minify, tt.c, got, tt.want)
		}
	}
}
