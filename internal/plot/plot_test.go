package plot

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	var buf bytes.Buffer
	err := Line(&buf, "Multiplier trajectory", []float64{3.1, 3.18, 3.27, 3.35, 3.42}, 20, 4)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Multiplier trajectory")
	assert.Contains(t, out, "3.42", "axis carries the series max")
	assert.Contains(t, out, "3.10", "axis carries the series min")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5, "title plus one line per chart row")

	// Every chart row is axis label + separator + width braille cells.
	for _, l := range lines[1:] {
		assert.Equal(t, axisLabelWidth+utf8.RuneCountInString(axisSeparator)+20, utf8.RuneCountInString(l))
	}
}

func TestLine_EmptySeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Line(&buf, "nothing", nil, 20, 4))
	assert.Zero(t, buf.Len())
}

func TestLine_FlatSeries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Line(&buf, "", []float64{2, 2, 2}, 12, 3))

	// A flat series widens its range instead of dividing by zero.
	out := buf.String()
	assert.Contains(t, out, "3.00")
	assert.Contains(t, out, "1.00")
}

func TestWidthFor(t *testing.T) {
	axis := axisLabelWidth + utf8.RuneCountInString(axisSeparator)
	assert.Equal(t, 80-axis, WidthFor(80))
	assert.Equal(t, minWidth, WidthFor(0))
	assert.Equal(t, minWidth, WidthFor(axis+1))
}

func TestResample(t *testing.T) {
	// shrink: bucket means
	got := resample([]float64{1, 1, 3, 3}, 2)
	require.Len(t, got, 2)
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 3.0, got[1], 1e-12)

	// stretch: endpoints preserved
	got = resample([]float64{0, 10}, 5)
	require.Len(t, got, 5)
	assert.InDelta(t, 0.0, got[0], 1e-12)
	assert.InDelta(t, 5.0, got[2], 1e-12)
	assert.InDelta(t, 10.0, got[4], 1e-12)

	// single value repeats
	got = resample([]float64{7}, 3)
	assert.Equal(t, []float64{7, 7, 7}, got)
}
