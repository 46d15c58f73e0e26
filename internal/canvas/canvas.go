// Package canvas holds the in-memory drawing handed from the pattern layout
// to the svg and raster encoders.
package canvas

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon is a closed outline, the last point joins the first.
type Polygon []r2.Vec

// Layer groups the outlines of one bellows face.
type Layer struct {
	ID       string
	Label    string
	Anchor   r2.Vec
	Polygons []Polygon
}

type Style struct {
	StrokeWidth float64
	StrokeColor string
}

// Viewport is the region of drawing coordinates shown on the output,
// in millimetres.
type Viewport struct {
	X, Y, W, H float64
}

// Drawing is a physical page of Width x Height millimetres showing View.
type Drawing struct {
	Name          string
	Width, Height float64
	View          Viewport
	Style         Style
	Layers        []Layer
}

func New(name string, w, h float64, style Style) Drawing {
	return Drawing{
		Name:   name,
		Width:  w,
		Height: h,
		View:   Viewport{W: w, H: h},
		Style:  style,
	}
}

// NumPolygons counts outlines over all layers.
func (d Drawing) NumPolygons() int {
	n := 0
	for _, l := range d.Layers {
		n += len(l.Polygons)
	}
	return n
}

// Bounds returns the smallest box holding every point of every layer.
// ok is false when the drawing has no points.
func (d Drawing) Bounds() (min, max r2.Vec, ok bool) {
	min = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	max = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, l := range d.Layers {
		for _, p := range l.Polygons {
			for _, v := range p {
				min.X, min.Y = math.Min(min.X, v.X), math.Min(min.Y, v.Y)
				max.X, max.Y = math.Max(max.X, v.X), math.Max(max.Y, v.Y)
				ok = true
			}
		}
	}
	return min, max, ok
}

// Map returns a copy of the polygon with f applied to every point.
func (p Polygon) Map(f func(r2.Vec) r2.Vec) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = f(v)
	}
	return out
}
