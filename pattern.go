package bellong

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

// Spec holds the physical dimensions of a conical bellows, in millimetres.
// The rear is expected to be the larger end.
type Spec struct {
	FrontWidth  float64 `json:"front_w"`
	FrontHeight float64 `json:"front_h"`
	RearWidth   float64 `json:"rear_w"`
	RearHeight  float64 `json:"rear_h"`

	StiffenerHeight float64 `json:"stiffener_height"`
	GapHeight       float64 `json:"gap_height"`
	Chamfer         float64 `json:"chamfer"`
}

func DefaultSpec() Spec {
	return Spec{
		FrontWidth:  96,
		FrontHeight: 96,
		RearWidth:   145,
		RearHeight:  145,

		StiffenerHeight: 12,
		GapHeight:       2.5,
		Chamfer:         1.5,
	}
}

// Validate checks the face dimensions and the chamfer. Fold parameters are
// checked by ComputeFoldPlan.
func (s Spec) Validate() error {
	dims := []struct {
		name string
		v    float64
	}{
		{"front width", s.FrontWidth},
		{"front height", s.FrontHeight},
		{"rear width", s.RearWidth},
		{"rear height", s.RearHeight},
	}
	for _, d := range dims {
		if !finite(d.v) || d.v <= 0 {
			return errors.Wrapf(ErrInvalidConfiguration, "%s must be positive, got %v", d.name, d.v)
		}
	}
	if !finite(s.Chamfer) || s.Chamfer < 0 {
		return errors.Wrapf(ErrInvalidConfiguration, "chamfer must not be negative, got %v", s.Chamfer)
	}
	return nil
}

// MaxFolds bounds the folds a single pattern may have.
const MaxFolds = 10000

// FoldPlan is derived once from a Spec and the maximum draw.
type FoldPlan struct {
	FoldCycle   float64 `json:"fold_cycle"`
	NumFolds    int     `json:"folds"`
	TotalLength float64 `json:"total_length"`
}

// Pairs is the number of trapezoid pairs, folds are always even.
func (p FoldPlan) Pairs() int {
	return p.NumFolds / 2
}

// ComputeFoldPlan fits as many stiffener+gap cycles as the draw allows,
// rounded down to an even count. A draw shorter than one cycle yields
// zero folds, which is not an error.
func ComputeFoldPlan(spec Spec, maxDraw float64) (FoldPlan, error) {
	switch {
	case !finite(spec.StiffenerHeight) || spec.StiffenerHeight <= 0:
		return FoldPlan{}, errors.Wrapf(ErrInvalidConfiguration, "stiffener height must be positive, got %v", spec.StiffenerHeight)
	case !finite(spec.GapHeight) || spec.GapHeight < 0:
		return FoldPlan{}, errors.Wrapf(ErrInvalidConfiguration, "gap height must not be negative, got %v", spec.GapHeight)
	case !finite(maxDraw) || maxDraw < 0:
		return FoldPlan{}, errors.Wrapf(ErrInvalidConfiguration, "max draw must not be negative, got %v", maxDraw)
	}

	cycle := spec.StiffenerHeight + spec.GapHeight
	if maxDraw/cycle > MaxFolds+1 {
		return FoldPlan{}, errors.Wrapf(ErrInvalidConfiguration, "max draw %v needs more than %d folds", maxDraw, MaxFolds)
	}
	n := int(math.Floor(maxDraw / cycle))
	if n%2 != 0 {
		n--
	}

	return FoldPlan{
		FoldCycle:   cycle,
		NumFolds:    n,
		TotalLength: float64(n) * cycle,
	}, nil
}

type Face int

const (
	Top Face = iota
	Right
	Bottom
	Left
)

// Faces lists the faces in pattern order.
var Faces = []Face{Top, Right, Bottom, Left}

func (f Face) String() string {
	switch f {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// Trapezoid reports whether the face tapers by pairs.
func (f Face) Trapezoid() bool {
	return f == Top || f == Bottom
}

// Point is in millimetres, y grows toward the rear of the bellows.
type Point = r2.Vec

// Quad is one stiffener outline: top-left, top-right, bottom-right, bottom-left.
type Quad [4]Point

// Area is the signed shoelace area, positive for the quad winding.
func (q Quad) Area() float64 {
	a := 0.0
	for i := range q {
		a += r2.Cross(q[i], q[(i+1)%len(q)])
	}
	return a / 2
}

// PairDimension interpolates per pair of folds: both folds of a pair get
// the same value, so the taper steps every two folds.
func PairDimension(plan FoldPlan, i int, small, large float64) float64 {
	return pairDimension(i/2, plan.Pairs(), small, large)
}

func pairDimension(pair, pairs int, small, large float64) float64 {
	ratio := float64(pair) / float64(max(pairs-1, 1))
	return small + (large-small)*ratio
}

// ContinuousDimension interpolates per fold.
func ContinuousDimension(plan FoldPlan, i int, small, large float64) float64 {
	ratio := float64(i) / float64(max(plan.NumFolds-1, 1))
	return small + (large-small)*ratio
}

func isLastPair(pair, pairs int) bool {
	return pair == pairs-1
}

// TrapezoidWidths returns the top and bottom edge widths of fold i of a
// trapezoid face. Even folds are narrow on top, odd folds wide on top; the
// two folds of a pair meet at the same width.
//
// The last pair swings between the previous pair's width and RearWidth,
// meeting at RearWidth. With a single pair the previous pair is pair -1,
// extrapolated past the front.
func TrapezoidWidths(spec Spec, plan FoldPlan, i int) (top, bottom float64) {
	pair, pairs := i/2, plan.Pairs()
	even := i%2 == 0

	if isLastPair(pair, pairs) {
		prev := pairDimension(pairs-2, pairs, spec.FrontWidth, spec.RearWidth)
		if even {
			return prev, spec.RearWidth
		}
		return spec.RearWidth, prev
	}

	this := pairDimension(pair, pairs, spec.FrontWidth, spec.RearWidth)
	next := pairDimension(pair+1, pairs, spec.FrontWidth, spec.RearWidth)
	if even {
		return this, next
	}
	return next, this
}

// FaceWidth is the width of the strip a face occupies, its widest end.
func FaceWidth(face Face, spec Spec) float64 {
	if face.Trapezoid() {
		return math.Max(spec.FrontWidth, spec.RearWidth)
	}
	return math.Max(spec.FrontHeight, spec.RearHeight)
}

// Trapezoid builds fold i of a top or bottom face. Coordinates are relative
// to the face's own top-left corner.
func Trapezoid(spec Spec, plan FoldPlan, i int) Quad {
	top, bottom := TrapezoidWidths(spec, plan, i)
	return foldQuad(spec, plan, i, FaceWidth(Top, spec)/2, top, bottom)
}

// Rectangle builds fold i of a left or right face.
func Rectangle(spec Spec, plan FoldPlan, i int) Quad {
	w := ContinuousDimension(plan, i, spec.FrontHeight, spec.RearHeight)
	return foldQuad(spec, plan, i, FaceWidth(Left, spec)/2, w, w)
}

func foldQuad(spec Spec, plan FoldPlan, i int, xc, top, bottom float64) Quad {
	yTop := float64(i) * plan.FoldCycle
	yBottom := yTop + spec.StiffenerHeight

	// chamfer clips the corners so folded stiffeners do not overlap
	ht := top/2 - spec.Chamfer
	hb := bottom/2 - spec.Chamfer

	return Quad{
		{X: xc - ht, Y: yTop},
		{X: xc + ht, Y: yTop},
		{X: xc + hb, Y: yBottom},
		{X: xc - hb, Y: yBottom},
	}
}

// GenerateFace returns one quad per fold, empty when the plan has no folds.
func GenerateFace(face Face, spec Spec, plan FoldPlan) []Quad {
	quads := make([]Quad, 0, plan.NumFolds)
	for i := 0; i < plan.NumFolds; i++ {
		switch face {
		case Top, Bottom:
			quads = append(quads, Trapezoid(spec, plan, i))
		case Left, Right:
			quads = append(quads, Rectangle(spec, plan, i))
		}
	}
	return quads
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
