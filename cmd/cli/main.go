package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/innermond/bellong"
	"github.com/innermond/bellong/internal/raster"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bellong",
		Short:         "Large format camera bellows pattern generator",
		Long:          "Generates cutting patterns for conical camera bellows with trapezoidal top/bottom faces and rectangular side faces.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
	}
	param(cmd, v)
	return cmd
}

func param(cmd *cobra.Command, v *viper.Viper) {
	def := bellong.DefaultSpec()
	lay := bellong.DefaultLayout()

	f := cmd.Flags()

	// dimensions
	f.Float64("front-w", def.FrontWidth, "front width in mm")
	f.Float64("front-h", def.FrontHeight, "front height in mm")
	f.Float64("rear-w", def.RearWidth, "rear width in mm")
	f.Float64("rear-h", def.RearHeight, "rear height in mm")

	// construction
	f.Float64("stiffener-height", def.StiffenerHeight, "stiffener height in mm")
	f.Float64("gap-height", def.GapHeight, "folding gap height in mm")
	f.Float64("chamfer", def.Chamfer, "corner chamfer in mm")
	f.Float64("face-gap", lay.FaceGap, "gap between faces in pattern in mm")
	f.Float64("max-draw", 300, "maximum bellows extension in mm")

	// rendering
	f.Float64("margin", lay.Margin, "margin around pattern in mm")
	f.Float64("stroke-width", lay.Style.StrokeWidth, "line thickness in mm")
	f.String("stroke-color", lay.Style.StrokeColor, "line color")
	f.Bool("inkscape", false, "save svg as inkscape svg, one layer per face")
	f.Bool("labels", false, "add a layer naming every face")

	// generation and export
	f.Bool("separate-faces", false, "generate 4 separate files (one per face)")
	f.String("format", "svg", "output format: svg, png, jpeg, jpg, pdf")
	f.Int("dpi", raster.DefaultDPI, "resolution of png and jpeg exports")
	f.Bool("split-a4", false, "split into A4 pages if needed")
	f.Bool("split-a3", false, "split into A3 pages if needed")

	// nesting
	f.String("sheet", "", "nest the faces on material sheets given as \"wxh\" in mm")
	f.Float64("kerf", 0, "material lost around every nested face in mm")

	f.StringP("output", "o", bellong.DefaultOutname, "output filename")
	f.Bool("report", false, "print the json report on stdout")
	f.BoolP("verbose", "v", false, "log debugging information")
	f.String("config", "", "config file (json, yaml or toml)")

	v.SetEnvPrefix("BELLONG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(f); err != nil {
		panic(err)
	}
}

func loadConfig(v *viper.Viper) error {
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "reading config %s", cfg)
		}
	}
	if v.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	log.WithField("config", v.ConfigFileUsed()).Debug("configuration loaded")
	return nil
}

func specFrom(v *viper.Viper) bellong.Spec {
	return bellong.Spec{
		FrontWidth:  v.GetFloat64("front-w"),
		FrontHeight: v.GetFloat64("front-h"),
		RearWidth:   v.GetFloat64("rear-w"),
		RearHeight:  v.GetFloat64("rear-h"),

		StiffenerHeight: v.GetFloat64("stiffener-height"),
		GapHeight:       v.GetFloat64("gap-height"),
		Chamfer:         v.GetFloat64("chamfer"),
	}
}

func opFrom(v *viper.Viper) (*bellong.Op, error) {
	format, err := raster.ParseFormat(v.GetString("format"))
	if err != nil {
		return nil, err
	}

	page := ""
	switch {
	case v.GetBool("split-a3"):
		page = bellong.A3.Name
	case v.GetBool("split-a4"):
		page = bellong.A4.Name
	}

	op := bellong.NewOp(specFrom(v), v.GetFloat64("max-draw")).
		Outname(v.GetString("output")).
		Margin(v.GetFloat64("margin")).
		FaceGap(v.GetFloat64("face-gap")).
		Stroke(v.GetFloat64("stroke-width"), v.GetString("stroke-color")).
		Appearance(!v.GetBool("inkscape"), v.GetBool("labels")).
		Separate(v.GetBool("separate-faces")).
		Pages(page).
		Format(format).
		DPI(v.GetInt("dpi"))

	if s := v.GetString("sheet"); s != "" {
		var sh sheet
		if err := sh.Set(s); err != nil {
			return nil, err
		}
		op.Sheet(sh.w, sh.h, v.GetFloat64("kerf"))
	}
	return op, nil
}

func run(v *viper.Viper) error {
	op, err := opFrom(v)
	if err != nil {
		return err
	}

	rep, outs, err := op.Pattern()
	if err != nil {
		return err
	}

	s := rep.Spec
	log.Infof("dimensions: %gx%g -> %gx%g mm", s.FrontWidth, s.FrontHeight, s.RearWidth, s.RearHeight)
	log.Infof("folds: %d (%d pairs)", rep.Folds, rep.Pairs)
	log.Infof("length: %g mm", rep.TotalLength)
	if rep.Folds == 0 {
		log.Warnf("max draw %g is shorter than one fold cycle of %g mm, pattern is empty", rep.MaxDraw, rep.FoldCycle)
	}
	if n := rep.Nest; n != nil {
		log.WithFields(log.Fields{
			"strategy": n.Strategy,
			"sheets":   n.Sheets,
			"unfit":    n.UnfitLen,
		}).Infof("nested faces on %gx%g mm sheets", n.SheetWidth, n.SheetHeight)
		if n.UnfitLen > 0 {
			log.Warnf("%d faces do not fit the sheet", n.UnfitLen)
		}
	}

	errs := writeFiles(outs)
	for _, err := range errs {
		log.Error(err)
	}

	if v.GetBool("report") {
		b, err := json.Marshal(rep)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", b)
	}

	if len(errs) > 0 {
		return errors.Errorf("%d of %d files not written", len(errs), len(rep.Files))
	}
	return nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	if err := newRootCmd(viper.New()).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
