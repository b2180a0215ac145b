package ui_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hostgen/pkg/errors"
	"github.com/arthur-debert/hostgen/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.FormatYAML, "yaml"},
		{ui.Format(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"Terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"text", ui.FormatText, false},
		{"JSON", ui.FormatJSON, false},
		{"yml", ui.FormatYAML, false},
		{"yaml", ui.FormatYAML, false},
		{"xml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFormat_ErrorCode(t *testing.T) {
	_, err := ui.ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestFormatStructured(t *testing.T) {
	assert.True(t, ui.FormatJSON.Structured())
	assert.True(t, ui.FormatYAML.Structured())
	assert.False(t, ui.FormatText.Structured())
	assert.False(t, ui.FormatTerminal.Structured())
	assert.False(t, ui.FormatAuto.Structured())
}

func TestFormatResolve(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ui.FormatJSON, ui.FormatJSON.Resolve(&buf), "explicit formats are kept")
	assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(&buf), "a buffer is never a terminal")

	file, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	assert.Equal(t, ui.FormatText, ui.FormatAuto.Resolve(file), "a regular file is never a terminal")
}

func TestErrorOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Same(t, &stdout, ui.ErrorOutput(ui.FormatJSON, &stdout, &stderr))
	assert.Same(t, &stdout, ui.ErrorOutput(ui.FormatYAML, &stdout, &stderr))
	assert.Same(t, &stderr, ui.ErrorOutput(ui.FormatText, &stdout, &stderr))
	assert.Same(t, &stderr, ui.ErrorOutput(ui.FormatAuto, &stdout, &stderr))
}
