// Package raster exports drawings to bitmap and pdf files through the
// gonum plot vg backends.
package raster

import (
	"image/color"
	"image/jpeg"
	"io"
	"math"
	"strings"

	"github.com/innermond/bellong/internal/canvas"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
)

type Format string

const (
	SVG  Format = "svg"
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

const (
	DefaultDPI  = 300
	jpegQuality = 95

	// minSide is the smallest page side in mm.
	minSide = 1
)

var ErrUnknownFormat = errors.New("unknown output format")

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "pdf":
		return PDF, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// Ext is the file extension written for the format.
func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// ParseColor resolves an svg colour keyword or a #rgb/#rrggbb hex value.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, errors.Wrapf(err, "colour %q", s)
		}
		return c, nil
	}
	return nil, errors.Errorf("unknown colour %q", s)
}

// Encode renders d to w. Only the outlines are drawn, labels are an svg
// feature. Sides shorter than 1 mm are widened to 1 mm.
func Encode(w io.Writer, d canvas.Drawing, f Format, dpi int) error {
	if d.Width < 0 || d.Height < 0 {
		return errors.Errorf("cannot rasterize a %vx%v canvas", d.Width, d.Height)
	}
	// an empty pattern still gets a blank page
	d.Width, d.Height = math.Max(d.Width, minSide), math.Max(d.Height, minSide)
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	col, err := ParseColor(d.Style.StrokeColor)
	if err != nil {
		return err
	}

	width := vg.Length(d.Width) * vg.Millimeter
	height := vg.Length(d.Height) * vg.Millimeter

	switch f {
	case PNG, JPEG:
		c := vgimg.NewWith(
			vgimg.UseWH(width, height),
			vgimg.UseDPI(dpi),
			vgimg.UseBackgroundColor(color.White),
		)
		stroke(c, d, col)
		if f == PNG {
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
			return errors.Wrap(err, "png")
		}
		return errors.Wrap(jpeg.Encode(w, c.Image(), &jpeg.Options{Quality: jpegQuality}), "jpeg")

	case PDF:
		c := vgpdf.New(width, height)
		stroke(c, d, col)
		_, err = c.WriteTo(w)
		return errors.Wrap(err, "pdf")
	}
	return errors.Wrapf(ErrUnknownFormat, "%q cannot be rasterized", f)
}

// stroke draws every polygon, mapping the drawing's y-down viewport onto
// the y-up vg page.
func stroke(c vg.Canvas, d canvas.Drawing, col color.Color) {
	sx, sy := 1.0, 1.0
	if d.View.W > 0 && d.View.H > 0 {
		sx, sy = d.Width/d.View.W, d.Height/d.View.H
	}
	pt := func(x, y float64) vg.Point {
		return vg.Point{
			X: vg.Length((x-d.View.X)*sx) * vg.Millimeter,
			Y: vg.Length(d.Height-(y-d.View.Y)*sy) * vg.Millimeter,
		}
	}

	c.SetColor(col)
	c.SetLineWidth(vg.Length(d.Style.StrokeWidth) * vg.Millimeter)
	for _, l := range d.Layers {
		for _, poly := range l.Polygons {
			if len(poly) == 0 {
				continue
			}
			var p vg.Path
			p.Move(pt(poly[0].X, poly[0].Y))
			for _, v := range poly[1:] {
				p.Line(pt(v.X, v.Y))
			}
			p.Close()
			c.Stroke(p)
		}
	}
}
