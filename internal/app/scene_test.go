package app

import (
	"math"
	"testing"

	"plot-viewport/internal/plot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSceneBuilds(t *testing.T) {
	items, err := plot.NewItems(DemoScene()...)
	require.NoError(t, err)
	require.Len(t, items, 5)

	rect, ok := items[0].(plot.Rect)
	require.True(t, ok)
	assert.Equal(t, 120.0, rect.Width)

	curves := plot.Curves(items)
	require.Len(t, curves, 3)
	assert.Equal(t, 30.0, curves[0].Eval(0))
	assert.Equal(t, 2.0, curves[1].Eval(10))
	assert.InDelta(t, 50*math.Sin(1), curves[2].Eval(50), 1e-12)
}
