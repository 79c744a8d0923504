// Package scene stores catalogs of kernel shapes as YAML documents
// and answers broad-phase queries over them.
package scene

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/unixpickle/overlap-d/overlapd"
	"gopkg.in/yaml.v3"
)

// DefaultEpsilon is the comparison tolerance for documents that do
// not set one.
const DefaultEpsilon = 1e-8

// Document is the on-disk form of a scene.
type Document struct {
	Epsilon float64    `yaml:"epsilon,omitempty"`
	Shapes  []ShapeDoc `yaml:"shapes"`
}

// ShapeDoc describes one shape. Kind selects the geometry: "point",
// "line", "segment", "plane", "triangle", "area", or "tetrahedron".
// Planes take one point and a normal; lines take a base point and one
// more point along them; everything else is defined by its points.
type ShapeDoc struct {
	Name   string       `yaml:"name,omitempty"`
	Kind   string       `yaml:"kind"`
	Points [][3]float64 `yaml:"points,flow"`
	Normal *[3]float64  `yaml:"normal,omitempty,flow"`
}

// Entry is a named shape inside a built scene.
type Entry struct {
	Name  string
	Shape overlapd.Shape
}

// Scene is a document realized into kernel shapes sharing one Env.
type Scene struct {
	Env     *overlapd.Env
	Epsilon float64
	Entries []*Entry
}

// Build realizes a document. Shapes without a name get a generated
// one, so every entry can be addressed in reports.
func Build(doc *Document) (*Scene, error) {
	eps := doc.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}
	s := &Scene{Env: overlapd.NewEnv(), Epsilon: eps}
	for i, d := range doc.Shapes {
		shape, err := buildShape(s.Env, d, eps)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d (%s)", i, d.Kind)
		}
		name := d.Name
		if name == "" {
			name = uuid.NewString()
		}
		s.Entries = append(s.Entries, &Entry{Name: name, Shape: shape})
	}
	return s, nil
}

// Validate checks a document without keeping the result: unknown
// kinds, wrong point counts, and degenerate geometry all fail here
// rather than later inside a query.
func Validate(doc *Document) error {
	eps := doc.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}
	env := overlapd.NewEnv()
	for i, d := range doc.Shapes {
		if _, err := buildShape(env, d, eps); err != nil {
			return errors.Wrapf(err, "shape %d (%s)", i, d.Kind)
		}
	}
	return nil
}

// LoadDocument reads a scene file without realizing it, so callers
// can adjust the document before Build.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load scene")
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "load scene")
	}
	return &doc, nil
}

// Load reads and realizes a scene file.
func Load(path string) (*Scene, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	s, err := Build(doc)
	if err != nil {
		return nil, errors.Wrap(err, "load scene")
	}
	return s, nil
}

// SaveDocument writes a document as YAML.
func SaveDocument(path string, doc *Document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "save scene")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "save scene")
	}
	return nil
}

// Document converts the scene back to its on-disk form.
func (s *Scene) Document() (*Document, error) {
	doc := &Document{Epsilon: s.Epsilon}
	for _, ent := range s.Entries {
		d, err := Describe(ent.Name, ent.Shape)
		if err != nil {
			return nil, err
		}
		doc.Shapes = append(doc.Shapes, d)
	}
	return doc, nil
}

// Save writes the scene as YAML.
func (s *Scene) Save(path string) error {
	doc, err := s.Document()
	if err != nil {
		return errors.Wrap(err, "save scene")
	}
	return SaveDocument(path, doc)
}

// Find returns the entry with the given name, or nil.
func (s *Scene) Find(name string) *Entry {
	for _, ent := range s.Entries {
		if ent.Name == name {
			return ent
		}
	}
	return nil
}

func buildShape(env *overlapd.Env, d ShapeDoc, eps float64) (overlapd.Shape, error) {
	pts := make([]overlapd.Vector, len(d.Points))
	for i, p := range d.Points {
		pts[i] = overlapd.XYZ(p[0], p[1], p[2])
	}
	switch d.Kind {
	case "point":
		if len(pts) != 1 {
			return nil, fmt.Errorf("a point takes 1 point, not %d", len(pts))
		}
		return overlapd.NewPoint(env, pts[0]), nil
	case "line":
		if len(pts) != 2 {
			return nil, fmt.Errorf("a line takes 2 points, not %d", len(pts))
		}
		return overlapd.NewLine(env, pts[0], pts[1], eps)
	case "segment":
		if len(pts) != 2 {
			return nil, fmt.Errorf("a segment takes 2 points, not %d", len(pts))
		}
		return overlapd.NewLineSegment(env, pts[0], pts[1], eps)
	case "plane":
		if len(pts) != 1 || d.Normal == nil {
			return nil, fmt.Errorf("a plane takes 1 point and a normal")
		}
		n := overlapd.XYZ(d.Normal[0], d.Normal[1], d.Normal[2])
		return overlapd.NewPlane(env, pts[0], n, eps)
	case "triangle":
		if len(pts) != 3 {
			return nil, fmt.Errorf("a triangle takes 3 points, not %d", len(pts))
		}
		return overlapd.NewTriangle(env, pts[0], pts[1], pts[2], eps)
	case "area":
		if len(pts) < 4 {
			return nil, fmt.Errorf("an area takes at least 4 points, not %d", len(pts))
		}
		return overlapd.NewConvexArea(env, pts, eps)
	case "tetrahedron":
		if len(pts) != 4 {
			return nil, fmt.Errorf("a tetrahedron takes 4 points, not %d", len(pts))
		}
		return overlapd.NewTetrahedron(env, pts[0], pts[1], pts[2], pts[3], eps)
	default:
		return nil, fmt.Errorf("unknown shape kind %q", d.Kind)
	}
}

// Describe turns a kernel shape into its document form. Lines come
// back as two points, so a direction-defined line loses that
// distinction.
func Describe(name string, s overlapd.Shape) (ShapeDoc, error) {
	d := ShapeDoc{Name: name}
	switch v := s.(type) {
	case *overlapd.Point:
		d.Kind = "point"
		d.Points = [][3]float64{v.Abs().Array()}
	case *overlapd.Line:
		d.Kind = "line"
		d.Points = [][3]float64{v.Base().Array(), v.Base().Add(v.Dir()).Array()}
	case *overlapd.LineSegment:
		d.Kind = "segment"
		d.Points = [][3]float64{v.A().Array(), v.B().Array()}
	case *overlapd.Plane:
		d.Kind = "plane"
		d.Points = [][3]float64{v.Base().Array()}
		n := v.Normal().Array()
		d.Normal = &n
	case *overlapd.Triangle:
		d.Kind = "triangle"
		for _, p := range v.Vertices() {
			d.Points = append(d.Points, p.Array())
		}
	case *overlapd.ConvexArea:
		d.Kind = "area"
		for _, p := range v.Vertices() {
			d.Points = append(d.Points, p.Array())
		}
	case *overlapd.Tetrahedron:
		d.Kind = "tetrahedron"
		for _, p := range v.Vertices() {
			d.Points = append(d.Points, p.Array())
		}
	default:
		return d, fmt.Errorf("cannot store %T in a scene document", s)
	}
	return d, nil
}
