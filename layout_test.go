package bellong

import (
	"testing"

	"github.com/innermond/bellong/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCombined(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 300)

	d := Combined(spec, p, DefaultLayout())
	assert.Equal(t, "", d.Name)
	assert.Equal(t, 2*145.0+2*145+3*5+2*30, d.Width)
	assert.Equal(t, 290.0+60, d.Height)
	assert.Equal(t, canvas.Viewport{W: d.Width, H: d.Height}, d.View)
	assert.Equal(t, canvas.Style{StrokeWidth: 1, StrokeColor: "black"}, d.Style)

	require.Len(t, d.Layers, 4)
	ids := []string{}
	for _, l := range d.Layers {
		ids = append(ids, l.ID)
		assert.Len(t, l.Polygons, 20)
	}
	assert.Equal(t, []string{"top", "right", "bottom", "left"}, ids)

	// faces start at margin, 30 + 145 + 5, ...
	for n, x := range []float64{30, 180, 330, 480} {
		first := d.Layers[n].Polygons[0]
		assert.Equal(t, r2.Vec{X: x + 26, Y: 30}, first[0], d.Layers[n].ID)
		assert.Equal(t, r2.Vec{X: x + 72.5, Y: 15}, d.Layers[n].Anchor)
	}
	assert.Equal(t, "top, 20 folds", d.Layers[0].Label)

	lo, hi, ok := d.Bounds()
	require.True(t, ok)
	assert.Equal(t, 30+1.5, lo.X)
	assert.Equal(t, 30.0, lo.Y)
	assert.Equal(t, 655-30-1.5, hi.X)
	assert.Equal(t, 30+287.5, hi.Y)
}

func TestSeparate(t *testing.T) {
	spec := DefaultSpec()
	spec.RearHeight = 120
	p := mustPlan(t, spec, 300)

	ds := Separate(spec, p, DefaultLayout())
	require.Len(t, ds, 4)

	names := []string{}
	for _, d := range ds {
		names = append(names, d.Name)
		assert.Equal(t, 350.0, d.Height)
		require.Len(t, d.Layers, 1)
		assert.Len(t, d.Layers[0].Polygons, 20)
	}
	assert.Equal(t, []string{"face1_top", "face2_right", "face3_bottom", "face4_left"}, names)

	assert.Equal(t, 145.0+60, ds[0].Width)
	assert.Equal(t, 120.0+60, ds[1].Width)
	assert.Equal(t, 145.0+60, ds[2].Width)
	assert.Equal(t, 120.0+60, ds[3].Width)
}

func TestLayoutNoFolds(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 10)

	d := Combined(spec, p, DefaultLayout())
	assert.Equal(t, 655.0, d.Width)
	assert.Equal(t, 60.0, d.Height)
	assert.Equal(t, 0, d.NumPolygons())
	_, _, ok := d.Bounds()
	assert.False(t, ok)

	for _, d := range Separate(spec, p, DefaultLayout()) {
		assert.Equal(t, 0, d.NumPolygons(), d.Name)
	}
}

func TestJoinName(t *testing.T) {
	assert.Equal(t, "a_b", joinName("a", "b"))
	assert.Equal(t, "b", joinName("", "b"))
	assert.Equal(t, "a", joinName("a", ""))
}
