// teapotctl is a CLI utility for inspecting, tessellating and converting
// Bezier patch documents.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-teapot/internal/assets"
	"github.com/Faultbox/bezier-teapot/internal/engine/camera"
	"github.com/Faultbox/bezier-teapot/internal/logger"
	"github.com/Faultbox/bezier-teapot/pkg/bezier"
	"github.com/Faultbox/bezier-teapot/pkg/formats"
	"github.com/Faultbox/bezier-teapot/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays usable for OBJ and JSON output.
	if err := logger.InitWith(logger.Options{Level: os.Getenv("TEAPOT_LOG"), Console: os.Stderr}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "tessellate", "t":
		err = cmdTessellate(args)
	case "transforms", "mvp":
		err = cmdTransforms(args)
	case "convert":
		err = cmdConvert(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`teapotctl - Bezier patch utility

Usage:
  teapotctl <command> [options]

Commands:
  info [file]                            Show surfaces, grid sizes and bounds
  tessellate [-n N] [-normals S] [-o out.obj] [file]
                                         Tessellate and export Wavefront OBJ
  transforms [-pitch deg] [-yaw deg] [-zoom z] [-aspect a]
                                         Print projection, model-view and normal matrices
  convert <in> <out.json>                Rewrite a patch document as JSON

A missing file or "-" selects the built-in Utah teapot. Files ending in
.json are read as TeaSrfs JSON, anything else as the text notation.
Set TEAPOT_LOG=debug for verbose logging.

Examples:
  teapotctl info
  teapotctl tessellate -n 16 -o teapot.obj
  teapotctl tessellate -normals finite-difference rim.json > rim.obj
  teapotctl transforms -pitch 30 -yaw 45 -zoom 6 -aspect 1.333
  teapotctl convert teapot.txt teapot.json`)
}

// loadDocument resolves a file argument; "" and "-" mean the embedded teapot.
func loadDocument(name string) (*formats.TeapotDocument, error) {
	if name == "-" {
		name = ""
	}
	m := assets.NewManager()
	defer m.Close()
	return m.Load(name)
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	n := fs.Int("n", 8, "Resolution used to measure surface bounds")
	fs.Parse(args)

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	name := fs.Arg(0)
	if name == "" || name == "-" {
		name = "(built-in teapot)"
	}
	fmt.Printf("Document: %s\n", name)
	fmt.Printf("Surfaces: %d\n", len(doc.Surfaces))
	fmt.Println()

	for i, s := range doc.Surfaces {
		rows := len(s.ControlPoints)
		cols := 0
		if rows > 0 {
			cols = len(s.ControlPoints[0])
		}
		status := "ok"
		if _, err := s.Grid(); err != nil {
			status = err.Error()
		}
		fmt.Printf("  %3d  %dx%d control points  degree %dx%d  %s\n", i, rows, cols, rows-1, cols-1, status)
	}

	grids, err := doc.Grids()
	if err != nil {
		logger.Warn("some surfaces are invalid", zap.Error(err))
	}
	mesh, err := bezier.TessellateGrids(grids, *n, nil)
	if mesh == nil {
		return err
	}

	b := mesh.Bounds()
	fmt.Println()
	fmt.Printf("Bounds:   min (%.4g, %.4g, %.4g)\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Printf("          max (%.4g, %.4g, %.4g)\n", b.Max.X, b.Max.Y, b.Max.Z)
	c, size := b.Center(), b.Size()
	fmt.Printf("Center:   (%.4g, %.4g, %.4g)\n", c.X, c.Y, c.Z)
	fmt.Printf("Size:     (%.4g, %.4g, %.4g)\n", size.X, size.Y, size.Z)
	return nil
}

func cmdTessellate(args []string) error {
	fs := flag.NewFlagSet("tessellate", flag.ExitOnError)
	n := fs.Int("n", 10, "Segments per patch edge")
	normals := fs.String("normals", bezier.StrategyAnalytic, "Normal strategy: analytic, finite-difference, fixed-up")
	out := fs.String("o", "", "Output OBJ file (default stdout)")
	strict := fs.Bool("strict", false, "Fail when any patch is invalid instead of skipping it")
	fs.Parse(args)

	est, err := bezier.NormalStrategy(*normals)
	if err != nil {
		return err
	}

	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	log := logger.Named("tessellate")

	grids, gridErr := doc.Grids()
	mesh, err := bezier.TessellateGrids(grids, *n, est)
	if mesh == nil {
		return err
	}
	if err := errors.Join(gridErr, err); err != nil {
		if *strict {
			return err
		}
		log.Warn("skipped invalid patches", zap.Error(err))
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := formats.WriteOBJ(w, mesh, "teapot"); err != nil {
		return err
	}

	log.Info("mesh written",
		zap.Int("patches", len(mesh.Patches)),
		zap.Int("resolution", *n),
		zap.String("normals", bezier.StrategyName(est)),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.String("output", *out),
	)
	return nil
}

func cmdTransforms(args []string) error {
	fs := flag.NewFlagSet("transforms", flag.ExitOnError)
	pitch := fs.Float64("pitch", 0, "Pitch in degrees")
	yaw := fs.Float64("yaw", 0, "Yaw in degrees")
	zoom := fs.Float64("zoom", 5, "Distance from the model")
	aspect := fs.Float64("aspect", 4.0/3.0, "Viewport width / height")
	fov := fs.Float64("fov", 45, "Vertical field of view in degrees")
	up := fs.String("up", "y", "Up axis of the model: y or z")
	fs.Parse(args)

	base, err := camera.BaseOrientationFor(*up)
	if err != nil {
		return err
	}

	b := camera.NewTransformBuilder()
	b.Projection.FovY = math.Radians(float32(*fov))
	b.BaseOrientation = base

	state := camera.State{
		Pitch: math.Radians(float32(*pitch)),
		Yaw:   math.Radians(float32(*yaw)),
		Zoom:  float32(*zoom),
	}
	set, err := b.Build(state, float32(*aspect))
	if err != nil {
		return err
	}

	printMatrix("Projection", set.Projection)
	printMatrix("ModelView", set.ModelView)
	printMatrix("Normal", set.Normal)
	return nil
}

func printMatrix(name string, m math.Mat4) {
	fmt.Printf("%s:\n", name)
	for row := 0; row < 4; row++ {
		fmt.Printf("  [% 10.5f % 10.5f % 10.5f % 10.5f]\n", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
	}
	fmt.Printf("  column-major: %v\n\n", [16]float32(m))
}

func cmdConvert(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: teapotctl convert <in> <out.json>")
		os.Exit(1)
	}

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	if _, err := doc.Grids(); err != nil {
		logger.Warn("document has invalid surfaces; converting as-is", zap.Error(err))
	}

	var w io.Writer = os.Stdout
	if args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := doc.WriteJSON(w); err != nil {
		return err
	}

	logger.Info("converted", zap.String("input", args[0]), zap.String("output", args[1]), zap.Int("surfaces", len(doc.Surfaces)))
	return nil
}
