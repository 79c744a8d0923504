package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/overlap-d/overlapd"
)

func main() {
	var pointStr string
	var normalStr string
	var eps float64
	flag.StringVar(&pointStr, "point", "0,0,0", "a point on the cutting plane")
	flag.StringVar(&normalStr, "normal", "0,0,1", "normal of the cutting plane")
	flag.Float64Var(&eps, "epsilon", 1e-8, "comparison tolerance")
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: mesh_slice [flags] <input.stl> <below.stl> <above.stl>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath, belowPath, abovePath := args[0], args[1], args[2]

	point, err := parseVector(pointStr)
	essentials.Must(err)
	normal, err := parseVector(normalStr)
	essentials.Must(err)

	log.Println("Loading mesh...")
	f, err := os.Open(inputPath)
	essentials.Must(err)
	inputTris, err := model3d.ReadSTL(f)
	f.Close()
	essentials.Must(err)

	env := overlapd.NewEnv()
	plane, err := overlapd.NewPlane(env, point, normal, eps)
	essentials.Must(err)
	belowRef := point.Sub(plane.Normal())
	aboveRef := point.Add(plane.Normal())

	log.Println("Slicing...")
	var below, above []*model3d.Triangle
	var dropped int
	for _, t := range inputTris {
		tri, err := overlapd.FromModelTriangle(env, t, eps)
		if err != nil {
			// Sliver triangles in the input have no usable plane.
			dropped++
			continue
		}
		below = append(below, overlapd.ToModelTriangles(overlapd.Clip(tri, plane, belowRef, eps))...)
		above = append(above, overlapd.ToModelTriangles(overlapd.Clip(tri, plane, aboveRef, eps))...)
	}
	if dropped > 0 {
		log.Printf("Dropped %d degenerate input triangles", dropped)
	}
	log.Printf("Split %d triangles into %d below and %d above", len(inputTris), len(below), len(above))

	log.Println("Saving meshes...")
	essentials.Must(model3d.NewMeshTriangles(below).SaveGroupedSTL(belowPath))
	essentials.Must(model3d.NewMeshTriangles(above).SaveGroupedSTL(abovePath))
}

func parseVector(s string) (overlapd.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return overlapd.Origin, fmt.Errorf("vector %q should have 3 comma-separated parts", s)
	}
	var coords [3]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return overlapd.Origin, fmt.Errorf("vector %q: %s is not a number", s, p)
		}
		coords[i] = x
	}
	return overlapd.XYZ(coords[0], coords[1], coords[2]), nil
}
