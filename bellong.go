package bellong

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/innermond/bellong/internal/canvas"
	"github.com/innermond/bellong/internal/raster"
	"github.com/innermond/bellong/internal/svg"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const DefaultOutname = "bellows_pattern.svg"

type Op struct {
	spec    Spec
	maxDraw float64

	outname string
	layout  Layout

	plain, showLabels bool
	separate          bool

	page   string
	format raster.Format
	dpi    int

	sheetW, sheetH, kerf float64
}

func NewOp(spec Spec, maxDraw float64) *Op {
	return &Op{
		spec:    spec,
		maxDraw: maxDraw,
		outname: DefaultOutname,
		layout:  DefaultLayout(),
		plain:   true,
		format:  raster.SVG,
		dpi:     raster.DefaultDPI,
	}
}

func (op *Op) Outname(name string) *Op {
	op.outname = name
	return op
}

func (op *Op) Margin(m float64) *Op {
	op.layout.Margin = m
	return op
}

func (op *Op) FaceGap(g float64) *Op {
	op.layout.FaceGap = g
	return op
}

func (op *Op) Stroke(width float64, color string) *Op {
	op.layout.Style = canvas.Style{StrokeWidth: width, StrokeColor: color}
	return op
}

func (op *Op) Appearance(yesno ...bool) *Op {
	switch len(yesno) {
	case 0:
		op.plain = true
		op.showLabels = false

	case 1:
		op.plain = yesno[0]

	default:
		op.plain = yesno[0]
		op.showLabels = yesno[1]
	}

	return op
}

func (op *Op) Separate(yes bool) *Op {
	op.separate = yes
	return op
}

// Pages splits every output onto pages of the named format, "" keeps one page.
func (op *Op) Pages(name string) *Op {
	op.page = name
	return op
}

func (op *Op) Format(f raster.Format) *Op {
	op.format = f
	return op
}

func (op *Op) DPI(dpi int) *Op {
	op.dpi = dpi
	return op
}

// Sheet nests the separate faces onto w x h material sheets.
func (op *Op) Sheet(w, h, kerf float64) *Op {
	op.sheetW = w
	op.sheetH = h
	op.kerf = kerf
	return op
}

// PatternReader maps an output file name to its content.
type PatternReader map[string]io.Reader

type Report struct {
	Spec         Spec        `json:"spec"`
	MaxDraw      float64     `json:"max_draw"`
	FoldCycle    float64     `json:"fold_cycle"`
	Folds        int         `json:"folds"`
	Pairs        int         `json:"pairs"`
	TotalLength  float64     `json:"total_length"`
	CanvasWidth  float64     `json:"canvas_width"`
	CanvasHeight float64     `json:"canvas_height"`
	Pages        int         `json:"pages,omitempty"`
	Files        []string    `json:"files"`
	Nest         *NestReport `json:"nest,omitempty"`
}

func (op *Op) validate() error {
	if err := op.spec.Validate(); err != nil {
		return err
	}
	l := op.layout
	if !finite(l.Margin) || l.Margin < 0 || !finite(l.FaceGap) || l.FaceGap < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "margin %v and face gap %v must not be negative", l.Margin, l.FaceGap)
	}
	if !finite(l.Style.StrokeWidth) || l.Style.StrokeWidth <= 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "stroke width must be positive, got %v", l.Style.StrokeWidth)
	}
	if strings.TrimSpace(l.Style.StrokeColor) == "" {
		return errors.Wrap(ErrInvalidConfiguration, "stroke color required")
	}
	if op.format != raster.SVG {
		if _, err := raster.ParseColor(l.Style.StrokeColor); err != nil {
			return errors.Wrap(ErrInvalidConfiguration, err.Error())
		}
	}
	return nil
}

// Drawings runs the geometry and layout stages without encoding anything.
func (op *Op) Drawings() (FoldPlan, []canvas.Drawing, *NestReport, error) {
	if err := op.validate(); err != nil {
		return FoldPlan{}, nil, nil, err
	}
	plan, err := ComputeFoldPlan(op.spec, op.maxDraw)
	if err != nil {
		return FoldPlan{}, nil, nil, err
	}

	var drawings []canvas.Drawing
	if op.separate {
		drawings = Separate(op.spec, plan, op.layout)
	} else {
		drawings = []canvas.Drawing{Combined(op.spec, plan, op.layout)}
	}

	var nest *NestReport
	if op.sheetW != 0 || op.sheetH != 0 {
		var sheets []canvas.Drawing
		nest, sheets, err = Nest(Separate(op.spec, plan, op.layout), op.sheetW, op.sheetH, op.kerf)
		if err != nil {
			return FoldPlan{}, nil, nil, err
		}
		drawings = append(drawings, sheets...)
	}

	if op.page != "" {
		p, err := LookupPage(op.page)
		if err != nil {
			return FoldPlan{}, nil, nil, err
		}
		var pages []canvas.Drawing
		for _, d := range drawings {
			pages = append(pages, Tile(d, p)...)
		}
		drawings = pages
	}

	return plan, drawings, nest, nil
}

// Pattern builds the report and the encoded files: always svg, plus the
// requested raster or pdf conversion of every svg.
func (op *Op) Pattern() (*Report, []PatternReader, error) {
	plan, drawings, nest, err := op.Drawings()
	if err != nil {
		return nil, nil, err
	}

	formats := []raster.Format{raster.SVG}
	if op.format != raster.SVG {
		formats = append(formats, op.format)
	}

	base := strings.TrimSuffix(op.outname, filepath.Ext(op.outname))
	if base == "" {
		base = strings.TrimSuffix(DefaultOutname, filepath.Ext(DefaultOutname))
	}

	bufs := make([][]*bytes.Buffer, len(drawings))
	var g errgroup.Group
	for i, d := range drawings {
		i, d := i, d
		bufs[i] = make([]*bytes.Buffer, len(formats))
		for j, f := range formats {
			j, f := j, f
			g.Go(func() error {
				b, err := op.encode(d, f)
				if err != nil {
					return errors.WithMessagef(err, "encoding %s as %s", joinName(base, d.Name), f)
				}
				bufs[i][j] = b
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	whole := Combined(op.spec, plan, op.layout)
	rep := &Report{
		Spec:         op.spec,
		MaxDraw:      op.maxDraw,
		FoldCycle:    plan.FoldCycle,
		Folds:        plan.NumFolds,
		Pairs:        plan.Pairs(),
		TotalLength:  plan.TotalLength,
		CanvasWidth:  whole.Width,
		CanvasHeight: whole.Height,
		Nest:         nest,
	}
	if op.page != "" {
		rep.Pages = len(drawings)
	}

	outs := make([]PatternReader, 0, len(drawings)*len(formats))
	for i, d := range drawings {
		for j, f := range formats {
			fn := joinName(base, d.Name) + "." + f.Ext()
			rep.Files = append(rep.Files, fn)
			outs = append(outs, PatternReader{fn: bufs[i][j]})
		}
	}
	return rep, outs, nil
}

func (op *Op) encode(d canvas.Drawing, f raster.Format) (*bytes.Buffer, error) {
	var b bytes.Buffer
	if f == raster.SVG {
		s, err := svg.Out(d, op.plain, op.showLabels)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
		return &b, nil
	}
	if err := raster.Encode(&b, d, f, op.dpi); err != nil {
		return nil, err
	}
	return &b, nil
}
