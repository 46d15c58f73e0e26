package bellong

import (
	"fmt"

	"github.com/innermond/bellong/internal/canvas"
	"gonum.org/v1/gonum/spatial/r2"
)

type Layout struct {
	Margin  float64
	FaceGap float64
	Style   canvas.Style
}

func DefaultLayout() Layout {
	return Layout{
		Margin:  30,
		FaceGap: 5,
		Style:   canvas.Style{StrokeWidth: 1, StrokeColor: "black"},
	}
}

func (q Quad) polygon(offset r2.Vec) canvas.Polygon {
	p := make(canvas.Polygon, len(q))
	for i, v := range q {
		p[i] = r2.Add(v, offset)
	}
	return p
}

func faceLayer(face Face, spec Spec, plan FoldPlan, offset r2.Vec, margin float64) canvas.Layer {
	quads := GenerateFace(face, spec, plan)
	polys := make([]canvas.Polygon, len(quads))
	for i, q := range quads {
		polys[i] = q.polygon(offset)
	}
	return canvas.Layer{
		ID:       face.String(),
		Label:    fmt.Sprintf("%s, %d folds", face, plan.NumFolds),
		Anchor:   r2.Vec{X: offset.X + FaceWidth(face, spec)/2, Y: margin / 2},
		Polygons: polys,
	}
}

// Combined lays the four faces side by side, Top, Right, Bottom, Left,
// inside a margin.
func Combined(spec Spec, plan FoldPlan, lay Layout) canvas.Drawing {
	x := lay.Margin
	var layers []canvas.Layer
	for n, face := range Faces {
		if n > 0 {
			x += lay.FaceGap
		}
		layers = append(layers, faceLayer(face, spec, plan, r2.Vec{X: x, Y: lay.Margin}, lay.Margin))
		x += FaceWidth(face, spec)
	}

	d := canvas.New("", x+lay.Margin, plan.TotalLength+2*lay.Margin, lay.Style)
	d.Layers = layers
	return d
}

// FaceName is the output name of a face drawn on its own.
func FaceName(face Face) string {
	return fmt.Sprintf("face%d_%s", int(face)+1, face)
}

// Separate draws every face on its own canvas.
func Separate(spec Spec, plan FoldPlan, lay Layout) []canvas.Drawing {
	out := make([]canvas.Drawing, 0, len(Faces))
	for _, face := range Faces {
		w := FaceWidth(face, spec)
		d := canvas.New(FaceName(face), w+2*lay.Margin, plan.TotalLength+2*lay.Margin, lay.Style)
		d.Layers = []canvas.Layer{
			faceLayer(face, spec, plan, r2.Vec{X: lay.Margin, Y: lay.Margin}, lay.Margin),
		}
		out = append(out, d)
	}
	return out
}

func joinName(base, suffix string) string {
	switch {
	case base == "":
		return suffix
	case suffix == "":
		return base
	}
	return base + "_" + suffix
}
