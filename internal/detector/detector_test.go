package detector

import (
	"testing"

	"github.com/retroenv/moodump/internal/options"
	"github.com/retroenv/moodump/internal/writer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		formatOpt  string
		outputFile string
		wantFormat writer.Format
	}{
		{
			name:       "explicit json format option",
			formatOpt:  "json",
			outputFile: "report.txt",
			wantFormat: writer.JSON,
		},
		{
			name:       "explicit text format option",
			formatOpt:  "text",
			outputFile: "report.cbor",
			wantFormat: writer.Text,
		},
		{
			name:       "detect from .json extension",
			outputFile: "00.json",
			wantFormat: writer.JSON,
		},
		{
			name:       "detect from .cbor extension",
			outputFile: "00.cbor",
			wantFormat: writer.CBOR,
		},
		{
			name:       "console output defaults to text",
			wantFormat: writer.Text,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.New()
			opts.Format = tt.formatOpt
			opts.Output = tt.outputFile

			got := d.Detect(opts)
			assert.Equal(t, tt.wantFormat, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	d := New(log.NewTestLogger(t))

	tests := []struct {
		name       string
		filename   string
		wantFormat writer.Format
	}{
		{"uppercase extension", "00.JSON", writer.JSON},
		{"cbor", "tests/00.cbor", writer.CBOR},
		{"no extension", "report", writer.Text},
		{"txt", "00.txt", writer.Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFormat, d.detectFromFile(tt.filename))
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".txt", Extension(writer.Text))
	assert.Equal(t, ".json", Extension(writer.JSON))
	assert.Equal(t, ".cbor", Extension(writer.CBOR))
}
