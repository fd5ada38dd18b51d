package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRecognizesAllThreeKeys(t *testing.T) {
	cfg, err := Parse(strings.NewReader("resolution 640 480\nsamples 128\nbounces 8\n"))
	require.NoError(t, err)
	require.Equal(t, RenderConfig{ResolutionX: 640, ResolutionY: 480, Samples: 128, Bounces: 8}, cfg)
}

func TestParseSkipsBlankLinesAndComments(t *testing.T) {
	cfg, err := Parse(strings.NewReader("\n# a comment\nsamples 16\n\n# trailing\n"))
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Samples)
}

func TestParseRejectsUnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("gamma 2.2\n"))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 1, pe.Line)
}

func TestParseRejectsWrongArgumentCount(t *testing.T) {
	_, err := Parse(strings.NewReader("resolution 640\n"))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseRejectsNonIntegerArgument(t *testing.T) {
	_, err := Parse(strings.NewReader("samples abc\n"))
	require.Error(t, err)
}

func TestParseReportsCorrectLineNumberForTrailingError(t *testing.T) {
	_, err := Parse(strings.NewReader("samples 16\nbounces 8\nwhatever\n"))
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, 3, pe.Line)
}

func TestLoadReturnsErrorForMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/render.cfg")
	require.Error(t, err)
}
