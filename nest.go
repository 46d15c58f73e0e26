package bellong

import (
	"fmt"
	"sort"
	"sync"

	"github.com/innermond/bellong/internal/canvas"
	"github.com/innermond/pak"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

func newStrategies() map[string]*pak.Base {
	return map[string]*pak.Base{
		"BestAreaFit":      &pak.Base{Scorer: &pak.BestAreaFit{}},
		"BestLongSide":     &pak.Base{Scorer: &pak.BestLongSide{}},
		"BestShortSide":    &pak.Base{Scorer: &pak.BestShortSide{}},
		"BottomLeft":       &pak.Base{Scorer: &pak.BottomLeft{}},
		"BestSimilarRatio": &pak.Base{Scorer: &pak.BestSimilarRatio{}},
	}
}

// NestReport describes how the face strips were laid on material sheets.
type NestReport struct {
	Strategy    string  `json:"strategy"`
	SheetWidth  float64 `json:"sheet_width"`
	SheetHeight float64 `json:"sheet_height"`
	Sheets      int     `json:"sheets"`
	UsedArea    float64 `json:"used_area"`
	FacesArea   float64 `json:"faces_area"`
	LostArea    float64 `json:"lost_area"`
	UnfitLen    int     `json:"unfit_len"`
	UnfitCode   string  `json:"unfit_code"`
}

// piece is a face cut to the bounding box of its outlines.
type piece struct {
	layers []canvas.Layer
	min    r2.Vec
	w, h   float64
}

type placement struct {
	piece *piece
	box   *pak.Box
	sheet int
}

type nesting struct {
	sheets    int
	facesArea float64
	placed    []placement
	unfit     []*pak.Box
}

// Nest packs the outlines of each drawing onto sheets of w x h millimetres,
// kerf added around every piece. Every packing strategy is tried and the one
// using the fewest sheets, then losing the least area, wins. Pieces that fit
// no sheet are reported as unfit.
func Nest(drawings []canvas.Drawing, w, h, kerf float64) (*NestReport, []canvas.Drawing, error) {
	if !finite(w) || !finite(h) || w <= 0 || h <= 0 {
		return nil, nil, errors.Wrapf(ErrInvalidConfiguration, "sheet %vx%v must be positive", w, h)
	}
	if !finite(kerf) || kerf < 0 {
		return nil, nil, errors.Wrapf(ErrInvalidConfiguration, "kerf must not be negative, got %v", kerf)
	}

	var pieces []*piece
	for _, d := range drawings {
		lo, hi, ok := d.Bounds()
		if !ok {
			continue
		}
		pieces = append(pieces, &piece{
			layers: d.Layers,
			min:    lo,
			w:      hi.X - lo.X + kerf,
			h:      hi.Y - lo.Y + kerf,
		})
	}

	strategies := newStrategies()
	results := map[string]nesting{}
	mx := sync.Mutex{}

	var wg sync.WaitGroup
	wg.Add(len(strategies))
	for name, strategy := range strategies {
		name, strategy := name, strategy
		go func() {
			defer wg.Done()
			n := nest(pieces, w, h, strategy)
			mx.Lock()
			results[name] = n
			mx.Unlock()
		}()
	}
	wg.Wait()

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	sheetArea := w * h
	winner := ""
	for _, name := range names {
		if winner == "" {
			winner = name
			continue
		}
		r, best := results[name], results[winner]
		lost, bestLost := float64(r.sheets)*sheetArea-r.facesArea, float64(best.sheets)*sheetArea-best.facesArea
		if r.sheets < best.sheets || (r.sheets == best.sheets && lost < bestLost) {
			winner = name
		}
	}

	best := results[winner]
	used := float64(best.sheets) * sheetArea
	rep := &NestReport{
		Strategy:    winner,
		SheetWidth:  w,
		SheetHeight: h,
		Sheets:      best.sheets,
		UsedArea:    used,
		FacesArea:   best.facesArea,
		LostArea:    used - best.facesArea,
		UnfitLen:    len(best.unfit),
		UnfitCode:   pak.BoxCode(best.unfit),
	}

	style := canvas.Style{}
	if len(drawings) > 0 {
		style = drawings[0].Style
	}
	return rep, sheetDrawings(best, w, h, kerf, style), nil
}

func nest(pieces []*piece, w, h float64, strategy *pak.Base) nesting {
	var n nesting
	owner := map[*pak.Box]*piece{}
	boxes := make([]*pak.Box, 0, len(pieces))
	for _, p := range pieces {
		b := &pak.Box{W: p.w, H: p.h, CanRotate: true}
		owner[b] = p
		boxes = append(boxes, b)
	}
	// largest first
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].W*boxes[i].H > boxes[j].W*boxes[j].H
	})

	for len(boxes) > 0 {
		bin := pak.NewBin(w, h, strategy)
		var remaining []*pak.Box
		for _, b := range boxes {
			if !bin.Insert(b) {
				remaining = append(remaining, b)
				continue
			}
			n.facesArea += b.W * b.H
			n.placed = append(n.placed, placement{piece: owner[b], box: b, sheet: n.sheets})
		}
		if len(remaining) == len(boxes) {
			break
		}
		n.sheets++
		boxes = remaining
	}
	n.unfit = boxes
	return n
}

func sheetDrawings(n nesting, w, h, kerf float64, style canvas.Style) []canvas.Drawing {
	sheets := make([]canvas.Drawing, n.sheets)
	for i := range sheets {
		sheets[i] = canvas.New(fmt.Sprintf("sheet_%d", i+1), w, h, style)
	}

	for _, pl := range n.placed {
		p, b := pl.piece, pl.box
		// rotated boxes come back with width and height swapped
		rotated := b.Rotated
		place := func(v r2.Vec) r2.Vec {
			local := r2.Add(r2.Sub(v, p.min), r2.Vec{X: kerf / 2, Y: kerf / 2})
			if rotated {
				local = r2.Vec{X: local.Y, Y: p.w - local.X}
			}
			return r2.Add(local, r2.Vec{X: b.X, Y: b.Y})
		}

		for _, l := range p.layers {
			moved := canvas.Layer{ID: l.ID, Label: l.Label, Anchor: place(l.Anchor)}
			for _, poly := range l.Polygons {
				moved.Polygons = append(moved.Polygons, poly.Map(place))
			}
			sheets[pl.sheet].Layers = append(sheets[pl.sheet].Layers, moved)
		}
	}
	return sheets
}
