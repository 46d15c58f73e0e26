package bellong

import (
	"fmt"
	"math"
	"strings"

	"github.com/innermond/bellong/internal/canvas"
	"github.com/pkg/errors"
)

var ErrUnknownPage = errors.New("unknown page format")

// PageSize is a printable sheet in millimetres, portrait.
type PageSize struct {
	Name          string
	Width, Height float64
}

var (
	A4 = PageSize{Name: "A4", Width: 210, Height: 297}
	A3 = PageSize{Name: "A3", Width: 297, Height: 420}
)

func LookupPage(name string) (PageSize, error) {
	switch strings.ToUpper(name) {
	case "A4":
		return A4, nil
	case "A3":
		return A3, nil
	}
	return PageSize{}, errors.Wrapf(ErrUnknownPage, "%q", name)
}

// Tile splits a drawing into pages of size p, row by row. Every page shows
// the same layers through its own viewport. A drawing that fits on one page
// comes back untouched.
func Tile(d canvas.Drawing, p PageSize) []canvas.Drawing {
	cols := int(math.Ceil(d.Width / p.Width))
	rows := int(math.Ceil(d.Height / p.Height))
	if cols <= 1 && rows <= 1 {
		return []canvas.Drawing{d}
	}
	cols, rows = max(cols, 1), max(rows, 1)

	// page size is physical, scale it into the drawing's viewport units
	sx, sy := d.View.W/d.Width, d.View.H/d.Height

	pages := make([]canvas.Drawing, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			t := d
			t.Name = joinName(d.Name, fmt.Sprintf("page_%d_%d", row+1, col+1))
			t.Width, t.Height = p.Width, p.Height
			t.View = canvas.Viewport{
				X: d.View.X + float64(col)*p.Width*sx,
				Y: d.View.Y + float64(row)*p.Height*sy,
				W: p.Width * sx,
				H: p.Height * sy,
			}
			pages = append(pages, t)
		}
	}
	return pages
}
