package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	out := `{"streams":[{"codec_type":"audio"},{"codec_type":"video","width":1280,"height":720}],
		"format":{"duration":"61.500000","format_name":"matroska,webm"}}`

	info, err := parseProbeOutput(out)
	require.NoError(t, err)
	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, 720, info.Height)
	assert.InDelta(t, 61.5, info.Duration, 0.001)
	assert.Equal(t, "matroska,webm", info.Format)

	info, err = parseProbeOutput(`{"streams":[],"format":{"format_name":"webm"}}`)
	require.NoError(t, err)
	assert.Zero(t, info.Duration)

	_, err = parseProbeOutput("not json")
	assert.Error(t, err)
}
