package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestWrite(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{FormatJSON, "{\n  \"name\": \"button\",\n  \"count\": 2\n}\n"},
		{FormatYAML, "name: button\ncount: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sample{Name: "button", Count: 2}, tt.format))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWrite_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sample{}, FormatTable)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format: table")
	assert.Empty(t, buf.String())
}
