package bellong

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func mustPlan(t *testing.T, spec Spec, maxDraw float64) FoldPlan {
	t.Helper()
	p, err := ComputeFoldPlan(spec, maxDraw)
	require.NoError(t, err)
	return p
}

func TestComputeFoldPlan(t *testing.T) {
	spec := DefaultSpec()

	tt := []struct {
		name    string
		maxDraw float64
		folds   int
		length  float64
	}{
		{"even count", 300, 20, 290},
		{"odd count decremented", 310, 20, 290},
		{"exact cycle multiple", 14.5 * 22, 22, 319},
		{"single pair", 30, 2, 29},
		{"three cycles", 14.5 * 3, 2, 29},
		{"shorter than a cycle", 10, 0, 0},
		{"one cycle", 14.5, 0, 0},
		{"zero draw", 0, 0, 0},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			p := mustPlan(t, spec, tc.maxDraw)
			assert.Equal(t, 14.5, p.FoldCycle)
			assert.Equal(t, tc.folds, p.NumFolds)
			assert.Equal(t, tc.length, p.TotalLength)
			assert.Equal(t, tc.folds/2, p.Pairs())
		})
	}
}

func TestFoldPlanInvariants(t *testing.T) {
	for _, gap := range []float64{0, 0.5, 2.5, 3.3} {
		for _, stiffener := range []float64{0.7, 5, 12, 17.25} {
			spec := DefaultSpec()
			spec.StiffenerHeight, spec.GapHeight = stiffener, gap
			for draw := 0.0; draw < 600; draw += 7.3 {
				p := mustPlan(t, spec, draw)
				if p.NumFolds%2 != 0 || p.NumFolds < 0 {
					t.Fatalf("stiffener %v gap %v draw %v: %d folds", stiffener, gap, draw, p.NumFolds)
				}
				if p.TotalLength != float64(p.NumFolds)*p.FoldCycle {
					t.Fatalf("total length %v != %d x %v", p.TotalLength, p.NumFolds, p.FoldCycle)
				}
				if p.TotalLength > draw+tol {
					t.Fatalf("total length %v exceeds draw %v", p.TotalLength, draw)
				}
			}
		}
	}
}

func TestComputeFoldPlanBound(t *testing.T) {
	spec := DefaultSpec()

	p := mustPlan(t, spec, 14.5*(MaxFolds+1))
	assert.Equal(t, MaxFolds, p.NumFolds)

	for _, draw := range []float64{14.5 * (MaxFolds + 2), 1e30, math.MaxFloat64} {
		_, err := ComputeFoldPlan(spec, draw)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "draw %v", draw)
	}
}

func TestComputeFoldPlanInvalid(t *testing.T) {
	tt := []struct {
		name      string
		stiffener float64
		gap       float64
		maxDraw   float64
	}{
		{"zero stiffener", 0, 2.5, 300},
		{"negative stiffener", -12, 2.5, 300},
		{"zero cycle", 0, 0, 300},
		{"NaN stiffener", math.NaN(), 2.5, 300},
		{"negative gap", 12, -0.1, 300},
		{"infinite gap", 12, math.Inf(1), 300},
		{"negative draw", 12, 2.5, -1},
		{"NaN draw", 12, 2.5, math.NaN()},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultSpec()
			spec.StiffenerHeight, spec.GapHeight = tc.stiffener, tc.gap
			_, err := ComputeFoldPlan(spec, tc.maxDraw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Equal(t, ErrInvalidConfiguration, errors.Cause(err))
		})
	}
}

func TestSpecValidate(t *testing.T) {
	require.NoError(t, DefaultSpec().Validate())

	bad := []func(*Spec){
		func(s *Spec) { s.FrontWidth = 0 },
		func(s *Spec) { s.FrontHeight = -1 },
		func(s *Spec) { s.RearWidth = math.NaN() },
		func(s *Spec) { s.RearHeight = math.Inf(1) },
		func(s *Spec) { s.Chamfer = -0.5 },
	}
	for i, f := range bad {
		s := DefaultSpec()
		f(&s)
		assert.ErrorIs(t, s.Validate(), ErrInvalidConfiguration, "case %d", i)
	}
}

func TestPairDimension(t *testing.T) {
	p := mustPlan(t, DefaultSpec(), 300)

	for i := 0; i < p.NumFolds; i += 2 {
		a := PairDimension(p, i, 96, 145)
		b := PairDimension(p, i+1, 96, 145)
		assert.Equal(t, a, b, "folds %d and %d share a pair", i, i+1)
	}
	assert.Equal(t, 96.0, PairDimension(p, 0, 96, 145))
	assert.Equal(t, 145.0, PairDimension(p, p.NumFolds-1, 96, 145))
	assert.True(t, scalar.EqualWithinAbs(96+49.0*4/9, PairDimension(p, 8, 96, 145), tol))

	// a single pair clamps the denominator to 1
	single := mustPlan(t, DefaultSpec(), 30)
	assert.Equal(t, 96.0, PairDimension(single, 0, 96, 145))
	assert.Equal(t, 96.0, PairDimension(single, 1, 96, 145))
}

func TestContinuousDimension(t *testing.T) {
	p := mustPlan(t, DefaultSpec(), 300)

	assert.Equal(t, 96.0, ContinuousDimension(p, 0, 96, 145))
	assert.Equal(t, 145.0, ContinuousDimension(p, p.NumFolds-1, 96, 145))
	for i := 1; i < p.NumFolds; i++ {
		assert.Greater(t, ContinuousDimension(p, i, 96, 145), ContinuousDimension(p, i-1, 96, 145))
		// shrinking taper
		assert.Less(t, ContinuousDimension(p, i, 145, 96), ContinuousDimension(p, i-1, 145, 96))
	}

	single := FoldPlan{FoldCycle: 14.5, NumFolds: 1, TotalLength: 14.5}
	assert.Equal(t, 96.0, ContinuousDimension(single, 0, 96, 145))
}

func TestTrapezoidWidths(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 300)
	pair := func(k int) float64 { return 96 + 49*float64(k)/9 }

	top, bottom := TrapezoidWidths(spec, p, 0)
	assert.Equal(t, 96.0, top)
	assert.True(t, scalar.EqualWithinAbs(pair(1), bottom, tol))

	top, bottom = TrapezoidWidths(spec, p, 5)
	assert.True(t, scalar.EqualWithinAbs(pair(3), top, tol))
	assert.True(t, scalar.EqualWithinAbs(pair(2), bottom, tol))

	// last pair swings between the previous pair's width and the rear
	top, bottom = TrapezoidWidths(spec, p, 18)
	assert.True(t, scalar.EqualWithinAbs(pair(8), top, tol))
	assert.Equal(t, 145.0, bottom)

	top, bottom = TrapezoidWidths(spec, p, 19)
	assert.Equal(t, 145.0, top)
	assert.True(t, scalar.EqualWithinAbs(pair(8), bottom, tol))
	assert.InDelta(t, 139.5556, bottom, 1e-4)
}

func TestTrapezoidParity(t *testing.T) {
	for _, widths := range [][2]float64{{96, 145}, {145, 96}} {
		spec := DefaultSpec()
		spec.FrontWidth, spec.RearWidth = widths[0], widths[1]
		for _, draw := range []float64{30, 60, 300} {
			p := mustPlan(t, spec, draw)
			for i := 0; i < p.NumFolds; i++ {
				top, bottom := TrapezoidWidths(spec, p, i)
				if i%2 == 0 {
					top, bottom = bottom, top
				}
				// even folds taper from the front toward the rear; odd folds mirror them
				if spec.FrontWidth < spec.RearWidth {
					assert.Greater(t, top, bottom, "%v draw %v fold %d", widths, draw, i)
				} else {
					assert.Less(t, top, bottom, "%v draw %v fold %d", widths, draw, i)
				}
			}
		}
	}
}

func TestTrapezoidSeams(t *testing.T) {
	spec := DefaultSpec()
	for _, draw := range []float64{30, 60, 120, 300, 1000} {
		p := mustPlan(t, spec, draw)
		for i := 0; i+1 < p.NumFolds; i += 2 {
			_, bottom := TrapezoidWidths(spec, p, i)
			top, _ := TrapezoidWidths(spec, p, i+1)
			assert.Equal(t, bottom, top, "draw %v fold %d", draw, i)
		}
		if p.NumFolds > 0 {
			_, rear := TrapezoidWidths(spec, p, p.NumFolds-2)
			top, _ := TrapezoidWidths(spec, p, p.NumFolds-1)
			assert.Equal(t, spec.RearWidth, rear, "draw %v last pair meets at the rear", draw)
			assert.Equal(t, spec.RearWidth, top, "draw %v last pair meets at the rear", draw)
		}
	}
}

func TestSinglePair(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 30)
	require.Equal(t, 2, p.NumFolds)

	// the previous pair is pair -1, one full step before the front
	top, bottom := TrapezoidWidths(spec, p, 0)
	assert.Equal(t, 47.0, top)
	assert.Equal(t, spec.RearWidth, bottom)
	assert.Equal(t, spec.FrontWidth, PairDimension(p, 0, spec.FrontWidth, spec.RearWidth))

	top, bottom = TrapezoidWidths(spec, p, 1)
	assert.Equal(t, spec.RearWidth, top)
	assert.Equal(t, 47.0, bottom)
}

func TestTrapezoidPoints(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 300)

	q := Trapezoid(spec, p, 0)
	hb := (96+49.0/9)/2 - 1.5
	want := Quad{
		{X: 72.5 - 46.5, Y: 0},
		{X: 72.5 + 46.5, Y: 0},
		{X: 72.5 + hb, Y: 12},
		{X: 72.5 - hb, Y: 12},
	}
	for i := range q {
		assert.True(t, scalar.EqualWithinAbs(want[i].X, q[i].X, tol), "point %d x: %v", i, q[i])
		assert.True(t, scalar.EqualWithinAbs(want[i].Y, q[i].Y, tol), "point %d y: %v", i, q[i])
	}

	q = Trapezoid(spec, p, 3)
	assert.Equal(t, 3*14.5, q[0].Y)
	assert.Equal(t, q[0].Y, q[1].Y)
	assert.Equal(t, 3*14.5+12, q[2].Y)
	assert.Equal(t, q[2].Y, q[3].Y)
	// odd folds are wide on top
	assert.Greater(t, q[1].X-q[0].X, q[2].X-q[3].X)
}

func TestRectanglePoints(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 300)

	q := Rectangle(spec, p, 0)
	assert.Equal(t, Quad{{X: 26, Y: 0}, {X: 119, Y: 0}, {X: 119, Y: 12}, {X: 26, Y: 12}}, q)

	q = Rectangle(spec, p, 19)
	assert.Equal(t, Quad{{X: 1.5, Y: 275.5}, {X: 143.5, Y: 275.5}, {X: 143.5, Y: 287.5}, {X: 1.5, Y: 287.5}}, q)

	prev := 0.0
	for i := 0; i < p.NumFolds; i++ {
		q := Rectangle(spec, p, i)
		w := q[1].X - q[0].X
		assert.Equal(t, w, q[2].X-q[3].X, "fold %d is a rectangle", i)
		assert.Greater(t, w, prev, "fold %d widens", i)
		prev = w
	}
}

func TestGenerateFace(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 300)

	for _, face := range Faces {
		quads := GenerateFace(face, spec, p)
		require.Len(t, quads, p.NumFolds, face.String())
		for i, q := range quads {
			assert.Greater(t, q.Area(), 0.0, "%s fold %d", face, i)
		}
	}
	assert.Equal(t, GenerateFace(Top, spec, p), GenerateFace(Bottom, spec, p))
	assert.Equal(t, GenerateFace(Left, spec, p), GenerateFace(Right, spec, p))
	assert.Empty(t, GenerateFace(Face(42), spec, p))
}

func TestGenerateFaceArea(t *testing.T) {
	dims := []struct{ frontW, frontH, rearW, rearH float64 }{
		{96, 96, 145, 145},
		{145, 145, 96, 96},
		{100, 60, 100, 60},
		{40, 200, 200, 40},
	}
	for _, d := range dims {
		lo := math.Min(math.Min(d.frontW, d.rearW), math.Min(d.frontH, d.rearH))
		for _, chamfer := range []float64{0, 1.5, lo/2 - 0.5} {
			spec := DefaultSpec()
			spec.FrontWidth, spec.FrontHeight = d.frontW, d.frontH
			spec.RearWidth, spec.RearHeight = d.rearW, d.rearH
			spec.Chamfer = chamfer
			p := mustPlan(t, spec, 300)
			for _, face := range Faces {
				for i, q := range GenerateFace(face, spec, p) {
					assert.Greater(t, q.Area(), 0.0, "%+v chamfer %v %s fold %d", d, chamfer, face, i)
				}
			}
		}
	}
}

func TestGenerateFaceNoFolds(t *testing.T) {
	spec := DefaultSpec()
	p := mustPlan(t, spec, 10)
	require.Equal(t, 0, p.NumFolds)

	for _, face := range Faces {
		quads := GenerateFace(face, spec, p)
		assert.NotNil(t, quads)
		assert.Empty(t, quads, face.String())
	}
}

func TestQuadArea(t *testing.T) {
	q := Quad{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4}, {X: 0, Y: 4}}
	assert.Equal(t, 40.0, q.Area())

	trap := Quad{{X: 2, Y: 0}, {X: 8, Y: 0}, {X: 10, Y: 4}, {X: 0, Y: 4}}
	assert.Equal(t, 32.0, trap.Area())
}

func TestFaceString(t *testing.T) {
	assert.Equal(t, "top", Top.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "bottom", Bottom.String())
	assert.Equal(t, "left", Left.String())
	assert.True(t, Top.Trapezoid())
	assert.True(t, Bottom.Trapezoid())
	assert.False(t, Left.Trapezoid())
	assert.False(t, Right.Trapezoid())
}
