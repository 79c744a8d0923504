package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/overlap-d/overlapd"
	"github.com/unixpickle/overlap-d/scene"
)

func main() {
	var verbose bool
	flag.BoolVar(&verbose, "verbose", false, "list every shape")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: scene_info [flags] <scene.yml>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := args[0]

	log.Println("Loading scene...")
	s, err := scene.Load(inputPath)
	essentials.Must(err)

	counts := map[string]int{}
	var bounds *overlapd.AABB
	unbounded := 0
	for _, ent := range s.Entries {
		d, err := scene.Describe(ent.Name, ent.Shape)
		essentials.Must(err)
		counts[d.Kind]++
		if b := ent.Shape.Bounds(); b != nil {
			if bounds == nil {
				bounds = b
			} else {
				bounds = bounds.Union(b)
			}
		} else {
			unbounded++
		}
	}

	fmt.Println("Shapes:", len(s.Entries))
	fmt.Println("Epsilon:", s.Epsilon)
	for _, kind := range []string{"point", "line", "segment", "plane", "triangle", "area", "tetrahedron"} {
		if counts[kind] > 0 {
			fmt.Printf("  %-12s %d\n", kind, counts[kind])
		}
	}
	if bounds != nil {
		fmt.Println("Bounds:", bounds)
	}
	if unbounded > 0 {
		fmt.Println("Unbounded shapes:", unbounded)
	}
	if verbose {
		for _, ent := range s.Entries {
			fmt.Printf("  %s: %s\n", ent.Name, ent.Shape)
		}
	}
}
