package svg

import (
	"fmt"
	"html"
	"strings"

	"github.com/innermond/bellong/internal/canvas"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	svgtop = `<?xml version="1.0" encoding="UTF-8"?>
<svg`
	svginitfmt = `%s width="%f%s" height="%f%s"`
	svgns      = `
     xmlns="http://www.w3.org/2000/svg"
     xmlns:xlink="http://www.w3.org/1999/xlink"`
	svgnsinkscape = `
   xmlns:sodipodi="http://sodipodi.sourceforge.net/DTD/sodipodi-0.dtd"
   xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"`
	vbfmt = `viewBox="%f %f %f %f"`
)

// StartView opens a document w x h units large showing the vp region.
func StartView(w float64, h float64, vp canvas.Viewport, unit string, plain bool) string {
	s := fmt.Sprintf(svginitfmt, svgtop, w, unit, h, unit) + " " +
		fmt.Sprintf(vbfmt, vp.X, vp.Y, vp.W, vp.H) + svgns
	if !plain {
		s += svgnsinkscape
	}
	s += ">"
	return s
}

func End(s string) string {
	return s + "\n</svg>\n"
}

func GroupStart(ss ...string) string {
	return "\n" + fmt.Sprintf("<g %s>", strings.Join(ss, " "))
}

func GroupEnd(g string) string {
	return g + "\n</g>"
}

// Attr renders name="value" with the value escaped.
func Attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

// Path draws a closed outline.
func Path(points []r2.Vec) string {
	if len(points) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M %.2f,%.2f ", points[0].X, points[0].Y)
	for _, p := range points[1:] {
		fmt.Fprintf(&b, "L %.2f,%.2f ", p.X, p.Y)
	}
	b.WriteString("Z")
	return fmt.Sprintf(`
<path d="%s"/>`, b.String())
}

func Text(x float64, y float64, transform, txt string, s string) string {
	return fmt.Sprintf(`
<text x="%f" y="%f" %s style="%s" >
%s
</text>`, x, y, transform, html.EscapeString(s), html.EscapeString(txt))
}
