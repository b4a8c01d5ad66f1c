package fileprocessor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/moodump/internal/moo/mootest"
	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/moodump/internal/writer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func writeMOO(t *testing.T, dir, name string, tests int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, mootest.File(tests), 0o600))
	return path
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	logger := log.NewTestLogger(t)

	tests := []struct {
		name     string
		output   string
		format   string
		contains string
	}{
		{name: "text", output: "out.txt", contains: "==== Test #1 "},
		{name: "json by extension", output: "out.json", contains: `"tests"`},
		{name: "explicit format", output: "out.dat", format: "json", contains: `"cpu": "8088"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.New()
			opts.Quiet = true
			opts.Input = writeMOO(t, dir, "00.MOO", 2)
			opts.Output = filepath.Join(dir, tt.output)
			opts.Format = tt.format

			assert.NoError(t, ProcessFile(context.Background(), logger, opts))

			data, err := os.ReadFile(opts.Output)
			assert.NoError(t, err)
			assert.True(t, strings.Contains(string(data), tt.contains), "output misses %q", tt.contains)
		})
	}
}

func TestProcessFileErrors(t *testing.T) {
	dir := t.TempDir()
	logger := log.NewTestLogger(t)

	opts := options.New()
	opts.Quiet = true
	opts.Input = filepath.Join(dir, "missing.moo")
	opts.Output = filepath.Join(dir, "out.txt")
	assert.ErrorContains(t, ProcessFile(context.Background(), logger, opts), "loading file")

	opts.Input = writeMOO(t, dir, "ok.moo", 1)
	opts.Output = filepath.Join(dir, "missing", "out.txt")
	assert.ErrorContains(t, ProcessFile(context.Background(), logger, opts), "creating writer")
}

func TestProcessFileKeepsReportOnLoadError(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "00.txt")
	assert.NoError(t, os.WriteFile(report, []byte("previous report"), 0o600))

	opts := options.New()
	opts.Quiet = true
	opts.Input = filepath.Join(dir, "missing.moo")
	opts.Output = report
	assert.ErrorContains(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts), "loading file")

	data, err := os.ReadFile(report)
	assert.NoError(t, err)
	assert.Equal(t, "previous report", string(data))
}

func TestCreateWriterTerminal(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func() bool { return true }

	opts := options.New()
	_, err := createWriter(opts, writer.CBOR)
	assert.ErrorIs(t, err, ErrTerminalOutput)

	out, err := createWriter(opts, writer.Text)
	assert.NoError(t, err)
	assert.True(t, out == os.Stdout)
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	writeMOO(t, dir, "00.MOO", 1)
	writeMOO(t, dir, "01.MOO", 1)

	opts := options.New()
	opts.Input = "single.moo"
	files, err := GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"single.moo"}, files)

	opts.Batch = filepath.Join(dir, "*.MOO")
	files, err = GetFilesToProcess(&opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts.Batch = filepath.Join(dir, "*.none")
	_, err = GetFilesToProcess(&opts)
	assert.ErrorContains(t, err, "no files match")

	opts.Batch = "["
	_, err = GetFilesToProcess(&opts)
	assert.Error(t, err)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "tests/00.txt", GenerateOutputFilename("tests/00.MOO", writer.Text))
	assert.Equal(t, "00.json", GenerateOutputFilename("00.MOO", writer.JSON))
	assert.Equal(t, "noext.cbor", GenerateOutputFilename("noext", writer.CBOR))
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)
	opts := options.New()
	PrintBanner(logger, opts, "1.0.0", "0123456789abcdef", "2024-01-01")
	PrintBanner(logger, opts, "dev", "", "unknown")

	opts.Quiet = true
	PrintBanner(logger, opts, "1.0.0", "", "")
}
