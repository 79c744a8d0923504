package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/overlap-d/internal/config"
	"github.com/unixpickle/overlap-d/internal/logger"
	"github.com/unixpickle/overlap-d/overlapd"
	"github.com/unixpickle/overlap-d/scene"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	var distances bool
	flag.StringVar(&configPath, "config", "", "TOML configuration file")
	flag.BoolVar(&distances, "distances", false, "also report distances between disjoint pairs")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: scene_overlaps [flags] <scene.yml>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		essentials.Must(err)
	}
	essentials.Must(logger.Init(cfg.LogLevel, cfg.LogFile))
	defer logger.Sync()

	doc, err := scene.LoadDocument(args[0])
	essentials.Must(err)
	if doc.Epsilon == 0 {
		doc.Epsilon = cfg.Epsilon
	}
	s, err := scene.Build(doc)
	essentials.Must(err)
	logger.Info("Loaded scene",
		zap.String("path", args[0]),
		zap.Int("shapes", len(s.Entries)),
		zap.Float64("epsilon", s.Epsilon))

	ix := scene.NewIndexWithBranching(s, cfg.Index.MinBranch, cfg.Index.MaxBranch)
	pairs := ix.OverlapPairs()
	logger.Info("Overlap scan complete", zap.Int("pairs", len(pairs)))

	if len(pairs) == 0 {
		fmt.Println("no overlapping shapes")
	}
	for _, p := range pairs {
		fmt.Printf("%s + %s: %s\n", p.A.Name, p.B.Name,
			describeOverlap(p.A.Shape, p.B.Shape, s.Epsilon))
	}

	if distances {
		reportDistances(s, pairs)
	}
}

// describeOverlap renders the exact intersection of a known
// overlapping pair. Tetrahedron pairs go through their piecewise
// query, since a shared volume has no single shape.
func describeOverlap(a, b overlapd.Shape, eps float64) string {
	if ta, ok := a.(*overlapd.Tetrahedron); ok {
		if tb, ok := b.(*overlapd.Tetrahedron); ok {
			pieces := ta.IntersectTetrahedron(tb, eps)
			return fmt.Sprintf("volume overlap with %d boundary pieces", len(pieces))
		}
	}
	return overlapd.Intersect(a, b, eps).String()
}

func reportDistances(s *scene.Scene, pairs []scene.EntryPair) {
	overlapping := map[[2]int64]bool{}
	for _, p := range pairs {
		overlapping[pairIDs(p.A, p.B)] = true
	}
	for i, a := range s.Entries {
		for _, b := range s.Entries[i+1:] {
			if overlapping[pairIDs(a, b)] {
				continue
			}
			d := overlapd.Distance(a.Shape, b.Shape, s.Epsilon)
			fmt.Printf("%s | %s: apart by %f\n", a.Name, b.Name, d)
		}
	}
}

func pairIDs(a, b *scene.Entry) [2]int64 {
	i, j := a.Shape.ID(), b.Shape.ID()
	if i > j {
		i, j = j, i
	}
	return [2]int64{i, j}
}
