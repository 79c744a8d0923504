package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/overlap-d/internal/config"
	"github.com/unixpickle/overlap-d/internal/logger"
	"github.com/unixpickle/overlap-d/overlapd"
	"github.com/unixpickle/overlap-d/scene"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	var sizeX, sizeY, sizeZ float64
	var bore float64
	var sliceZ float64
	var cells int
	flag.StringVar(&configPath, "config", "", "TOML configuration file")
	flag.Float64Var(&sizeX, "size-x", 4, "plate extent along x")
	flag.Float64Var(&sizeY, "size-y", 3, "plate extent along y")
	flag.Float64Var(&sizeZ, "size-z", 2, "plate extent along z")
	flag.Float64Var(&bore, "bore", 0.8, "radius of the bore through the plate")
	flag.Float64Var(&sliceZ, "slice-z", 0.5, "height of the cross-section plane")
	flag.IntVar(&cells, "cells", 128, "marching cubes resolution")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: solid_slice [flags] <output.yml>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	outputPath := args[0]

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		essentials.Must(err)
	}
	essentials.Must(logger.Init(cfg.LogLevel, cfg.LogFile))
	defer logger.Sync()

	logger.Info("Building solid",
		zap.Float64("size-x", sizeX),
		zap.Float64("size-y", sizeY),
		zap.Float64("size-z", sizeZ),
		zap.Float64("bore", bore))
	plate, err := sdf.Box3D(v3.Vec{X: sizeX, Y: sizeY, Z: sizeZ}, 0)
	essentials.Must(err)
	hole, err := sdf.Cylinder3D(2*sizeZ, bore, 0)
	essentials.Must(err)
	solid := sdf.Difference3D(plate, hole)

	logger.Info("Meshing solid", zap.Int("cells", cells))
	tris := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))
	logger.Info("Meshed solid", zap.Int("triangles", len(tris)))

	env := overlapd.NewEnv()
	plane, err := overlapd.NewPlane(env, overlapd.Z(sliceZ), overlapd.Z(1), cfg.Epsilon)
	essentials.Must(err)

	doc := &scene.Document{Epsilon: cfg.Epsilon}
	var outline float64
	var skipped int
	for _, t := range tris {
		tri, err := overlapd.NewTriangle(env,
			vecFromV3(t[0]), vecFromV3(t[1]), vecFromV3(t[2]), cfg.Epsilon)
		if err != nil {
			// Marching cubes emits the occasional sliver.
			skipped++
			continue
		}
		seg, ok := tri.IntersectPlane(plane, cfg.Epsilon).(*overlapd.LineSegment)
		if !ok {
			continue
		}
		outline += seg.Length()
		d, err := scene.Describe(fmt.Sprintf("cut-%04d", len(doc.Shapes)), seg)
		essentials.Must(err)
		doc.Shapes = append(doc.Shapes, d)
	}
	if skipped > 0 {
		logger.Warn("Skipped degenerate mesh triangles", zap.Int("count", skipped))
	}
	logger.Info("Cross-section complete",
		zap.Float64("z", sliceZ),
		zap.Int("segments", len(doc.Shapes)),
		zap.Float64("outline", outline))

	essentials.Must(scene.SaveDocument(outputPath, doc))
	fmt.Printf("wrote %d cross-section segments to %s\n", len(doc.Shapes), outputPath)
}

func vecFromV3(v v3.Vec) overlapd.Vector {
	return overlapd.XYZ(v.X, v.Y, v.Z)
}
