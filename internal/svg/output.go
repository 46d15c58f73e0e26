package svg

import (
	"errors"
	"fmt"
	"math"

	"github.com/innermond/bellong/internal/canvas"
)

const unit = "mm"

func aproximateHeightText(numchar int, w float64) float64 {
	wchar := w / float64(numchar+2)
	return math.Floor(1.5*wchar*100.0) / 100
}

func layerGroup(id string, plain bool, attrs ...string) string {
	ss := []string{Attr("id", id)}
	if !plain {
		ss = append(ss, Attr("inkscape:label", id), `inkscape:groupmode="layer"`)
	}
	return GroupStart(append(ss, attrs...)...)
}

// Out encodes a whole drawing as an svg document. Each layer becomes a group
// of stroked outlines; with showLabels a separate layer names every face.
func Out(d canvas.Drawing, plain bool, showLabels bool) (string, error) {
	if d.Width < 0 || d.Height < 0 || d.View.W < 0 || d.View.H < 0 {
		return "", errors.New("negative canvas size")
	}

	s := StartView(d.Width, d.Height, d.View, unit, plain)

	stroke := []string{
		Attr("stroke", d.Style.StrokeColor),
		Attr("stroke-width", fmt.Sprintf("%g", d.Style.StrokeWidth)),
		`fill="none"`,
	}
	for _, l := range d.Layers {
		g := layerGroup(l.ID, plain, stroke...)
		for _, p := range l.Polygons {
			if len(p) < 3 {
				return "", errors.New("degenerate outline in layer " + l.ID)
			}
			g += Path(p)
		}
		s += GroupEnd(g)
	}

	if showLabels {
		g := layerGroup("labels", plain)
		for _, l := range d.Layers {
			if l.Label == "" {
				continue
			}
			size := math.Min(aproximateHeightText(len(l.Label), d.Width/4), 6)
			g += Text(l.Anchor.X, l.Anchor.Y, "", l.Label,
				"text-anchor:middle;font-size:"+fmt.Sprintf("%.2f", size)+"px;fill:"+d.Style.StrokeColor)
		}
		s += GroupEnd(g)
	}

	return End(s), nil
}
