package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/supplier-risk/internal/errors"
)

func writeCodec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "label_codec.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadLabelCodec(t *testing.T) {
	path := writeCodec(t, `{"classes": ["critical", "high", "low", "medium"]}`)

	codec, err := LoadLabelCodec(path)
	require.NoError(t, err)

	level, err := codec.Decode(2)
	require.NoError(t, err)
	assert.Equal(t, "low", level)

	label, err := codec.Encode("medium")
	require.NoError(t, err)
	assert.Equal(t, 3, label)
}

func TestLoadLabelCodecRejectsBadLabelSpaces(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too few classes", `{"classes": ["low", "medium", "high"]}`},
		{"duplicate class", `{"classes": ["low", "low", "high", "critical"]}`},
		{"uppercase class", `{"classes": ["LOW", "medium", "high", "critical"]}`},
		{"not json", `classes: low`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLabelCodec(writeCodec(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsLoadError(err))
		})
	}
}

func TestLabelCodecDecodeOutOfRange(t *testing.T) {
	codec := &LabelCodec{Classes: []string{"low", "medium", "high", "critical"}}

	_, err := codec.Decode(-1)
	assert.Error(t, err)
	_, err = codec.Decode(4)
	assert.Error(t, err)
}

func TestLabelCodecEncodeUnknown(t *testing.T) {
	codec := &LabelCodec{Classes: []string{"low", "medium", "high", "critical"}}

	_, err := codec.Encode("severe")
	assert.Error(t, err)
}
