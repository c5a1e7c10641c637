package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KindFromMark(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback Kind
		want     Kind
	}{
		{
			name:     "scan mark",
			err:      Mark(New("no such directory"), ErrScan),
			fallback: KindGeneration,
			want:     KindScan,
		},
		{
			name:     "write mark",
			err:      Mark(New("read-only file system"), ErrWrite),
			fallback: KindGeneration,
			want:     KindWrite,
		},
		{
			name:     "configuration mark",
			err:      Mark(New("bad yaml"), ErrConfiguration),
			fallback: KindScan,
			want:     KindConfiguration,
		},
		{
			name:     "unmarked uses fallback",
			err:      New("boom"),
			fallback: KindGeneration,
			want:     KindGeneration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.err, tt.fallback, "failed to generate component registry")
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestClassify_PreservesMessageNotCause(t *testing.T) {
	inner := Mark(Wrap(fs.ErrNotExist, "read components directory /src/components"), ErrScan)

	err := Classify(inner, KindGeneration, "failed to analyze components")

	assert.Equal(t, "[SCAN_FAILED] failed to analyze components: read components directory /src/components: file does not exist", err.Error())
	assert.True(t, Is(err, ErrScan))
	assert.False(t, Is(err, ErrWrite))
	// Opaque: the underlying filesystem error is not reachable.
	assert.False(t, Is(err, fs.ErrNotExist))

	var te *ToolError
	require.True(t, As(err, &te))
	assert.Equal(t, KindScan, te.Kind)
}

func TestClassify_KeepsHints(t *testing.T) {
	inner := WithHint(Mark(New("script configs cannot be evaluated"), ErrConfiguration), "convert it to JSON")

	err := Classify(inner, KindGeneration, "")

	var te *ToolError
	require.True(t, As(err, &te))
	assert.Equal(t, []string{"convert it to JSON"}, te.Hints)
	assert.Equal(t, "[CONFIGURATION_FAILED] script configs cannot be evaluated", te.Error())
}

func TestClassify_Idempotent(t *testing.T) {
	first := Classify(Mark(New("x"), ErrWrite), KindGeneration, "write")
	second := Classify(first, KindScan, "other context")

	assert.Same(t, first, second)
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, Classify(nil, KindGeneration, "ctx"))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Kind(""), KindOf(New("plain")))
}
