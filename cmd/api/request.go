package main

import "github.com/innermond/bellong"

type RequestData struct {
	// bellows ends in mm
	FrontW float64 `json:"front_w"`
	FrontH float64 `json:"front_h"`
	RearW  float64 `json:"rear_w"`
	RearH  float64 `json:"rear_h"`

	// construction
	StiffenerHeight float64 `json:"stiffener_height"`
	GapHeight       float64 `json:"gap_height"`
	Chamfer         float64 `json:"chamfer"`
	FaceGap         float64 `json:"face_gap"`
	MaxDraw         float64 `json:"max_draw"`

	// rendering
	Margin      float64 `json:"margin"`
	StrokeWidth float64 `json:"stroke_width"`
	StrokeColor string  `json:"stroke_color"`
	// plain FALSE indicates svg output is as-inkscape
	Plain  bool `json:"plain"`
	Labels bool `json:"labels"`

	// one svg per face instead of all faces side by side
	SeparateFaces bool `json:"separate_faces"`
	// page format to split into: "", A4, A3
	Page string `json:"page"`

	// optional material sheet the faces are nested on
	SheetW float64 `json:"sheet_w"`
	SheetH float64 `json:"sheet_h"`
	Kerf   float64 `json:"kerf"`
}

// defaultRequest is what a field left out of the json body falls back to.
func defaultRequest() RequestData {
	spec := bellong.DefaultSpec()
	lay := bellong.DefaultLayout()
	return RequestData{
		FrontW: spec.FrontWidth,
		FrontH: spec.FrontHeight,
		RearW:  spec.RearWidth,
		RearH:  spec.RearHeight,

		StiffenerHeight: spec.StiffenerHeight,
		GapHeight:       spec.GapHeight,
		Chamfer:         spec.Chamfer,
		FaceGap:         lay.FaceGap,
		MaxDraw:         300,

		Margin:      lay.Margin,
		StrokeWidth: lay.Style.StrokeWidth,
		StrokeColor: lay.Style.StrokeColor,
		Plain:       true,
	}
}

func (rd RequestData) op(outname string) *bellong.Op {
	spec := bellong.Spec{
		FrontWidth:  rd.FrontW,
		FrontHeight: rd.FrontH,
		RearWidth:   rd.RearW,
		RearHeight:  rd.RearH,

		StiffenerHeight: rd.StiffenerHeight,
		GapHeight:       rd.GapHeight,
		Chamfer:         rd.Chamfer,
	}
	op := bellong.NewOp(spec, rd.MaxDraw).
		Outname(outname).
		Margin(rd.Margin).
		FaceGap(rd.FaceGap).
		Stroke(rd.StrokeWidth, rd.StrokeColor).
		Appearance(rd.Plain, rd.Labels).
		Separate(rd.SeparateFaces).
		Pages(rd.Page)
	if rd.SheetW != 0 || rd.SheetH != 0 {
		op.Sheet(rd.SheetW, rd.SheetH, rd.Kerf)
	}
	return op
}
