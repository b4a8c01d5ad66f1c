package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/moodump/internal/moo"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantInput string
		wantIndex int
		wantLimit int
	}{
		{
			name:      "file only",
			args:      []string{"8088/00.MOO"},
			wantInput: "8088/00.MOO",
			wantIndex: moo.NoFilter,
			wantLimit: moo.NoFilter,
		},
		{
			name:      "limit and index",
			args:      []string{"-limit=3", "-index=2", "00.MOO"},
			wantInput: "00.MOO",
			wantIndex: 2,
			wantLimit: 3,
		},
		{
			name:      "flags after file",
			args:      []string{"00.MOO", "-index=0"},
			wantInput: "00.MOO",
			wantIndex: 0,
			wantLimit: moo.NoFilter,
		},
		{
			name:      "flags around file",
			args:      []string{"-limit", "5", "00.MOO", "-q"},
			wantInput: "00.MOO",
			wantIndex: moo.NoFilter,
			wantLimit: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs("moodump", tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantInput, opts.Input)
			assert.Equal(t, tt.wantIndex, opts.Index)
			assert.Equal(t, tt.wantLimit, opts.Limit)
		})
	}
}

func TestParseArgsUsageErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		errContain string
	}{
		{
			name: "no file",
			args: []string{"-limit=1"},
		},
		{
			name:       "two files",
			args:       []string{"a.MOO", "b.MOO"},
			errContain: "Unexpected argument: b.MOO",
		},
		{
			name:       "negative limit",
			args:       []string{"-limit=-1", "a.MOO"},
			errContain: "non-negative integer",
		},
		{
			name:       "invalid index",
			args:       []string{"-index=abc", "a.MOO"},
			errContain: "non-negative integer",
		},
		{
			name:       "duplicate index",
			args:       []string{"-index=1", "a.MOO", "-index=2"},
			errContain: "duplicate argument",
		},
		{
			name:       "unknown flag",
			args:       []string{"-x", "a.MOO"},
			errContain: "-x",
		},
		{
			name:       "invalid format",
			args:       []string{"-format=xml", "a.MOO"},
			errContain: "unsupported format",
		},
		{
			name:       "batch with file",
			args:       []string{"-batch=*.MOO", "a.MOO"},
			errContain: "can not be combined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("moodump", tt.args)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr), "expected usage error, got %v", err)
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"moodump", "-format=JSON", "-verify", "00.MOO"}
	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "json", opts.Format)
	assert.True(t, opts.Verify)
	assert.Equal(t, 1000, opts.MaxMemoryEntries)
}

func TestParseArgsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodump.toml")
	content := []byte("format = \"json\"\nlimit = 10\nverify = true\n\n[display]\nmax_queue_bytes = 8\n")
	assert.NoError(t, os.WriteFile(path, content, 0600))

	opts, err := parseArgs("moodump", []string{"-config", path, "-limit=2", "00.MOO"})
	assert.NoError(t, err)
	assert.Equal(t, "json", opts.Format)
	assert.Equal(t, 2, opts.Limit, "command line must override the config file")
	assert.True(t, opts.Verify)
	assert.Equal(t, 8, opts.MaxQueueBytes)
	assert.Equal(t, moo.NoFilter, opts.Index)

	_, err = parseArgs("moodump", []string{"-config", filepath.Join(t.TempDir(), "missing.toml"), "00.MOO"})
	assert.ErrorContains(t, err, "reading config file")
}
