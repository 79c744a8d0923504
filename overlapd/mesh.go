package overlapd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// FromCoord3D converts a model3d coordinate to a Vector.
func FromCoord3D(c model3d.Coord3D) Vector {
	return XYZ(c.X, c.Y, c.Z)
}

// ToCoord3D converts a Vector to a model3d coordinate.
func ToCoord3D(v Vector) model3d.Coord3D {
	return model3d.XYZ(v.X, v.Y, v.Z)
}

// FromModelTriangle converts one mesh triangle.
func FromModelTriangle(env *Env, t *model3d.Triangle, eps float64) (*Triangle, error) {
	return NewTriangle(env, FromCoord3D(t[0]), FromCoord3D(t[1]), FromCoord3D(t[2]), eps)
}

// ToModelTriangles renders a shape as mesh triangles: a triangle as
// itself, a convex polygon as a fan around its first vertex, and a
// tetrahedron as its outward-wound faces. Points and segments have no
// area and produce nothing.
func ToModelTriangles(s Shape) []*model3d.Triangle {
	switch v := s.(type) {
	case nil, *Point, *LineSegment:
		return nil
	case *Triangle:
		verts := v.Vertices()
		return []*model3d.Triangle{
			{ToCoord3D(verts[0]), ToCoord3D(verts[1]), ToCoord3D(verts[2])},
		}
	case *ConvexArea:
		verts := v.Vertices()
		res := make([]*model3d.Triangle, 0, len(verts)-2)
		for i := 1; i < len(verts)-1; i++ {
			res = append(res, &model3d.Triangle{
				ToCoord3D(verts[0]), ToCoord3D(verts[i]), ToCoord3D(verts[i+1]),
			})
		}
		return res
	case *Tetrahedron:
		var res []*model3d.Triangle
		for _, f := range v.Faces() {
			res = append(res, ToModelTriangles(f)...)
		}
		return res
	default:
		panic(fmt.Sprintf("cannot render %T as mesh triangles", s))
	}
}

// MeshShapes converts every triangle of a mesh into a shape, skipping
// triangles that are degenerate under eps.
func MeshShapes(env *Env, mesh *model3d.Mesh, eps float64) []*Triangle {
	var res []*Triangle
	mesh.Iterate(func(t *model3d.Triangle) {
		if s, err := FromModelTriangle(env, t, eps); err == nil {
			res = append(res, s)
		}
	})
	return res
}

// ShapeMesh assembles the renderable shapes into one mesh.
func ShapeMesh(shapes ...Shape) *model3d.Mesh {
	mesh := model3d.NewMesh()
	for _, s := range shapes {
		for _, t := range ToModelTriangles(s) {
			mesh.Add(t)
		}
	}
	return mesh
}

// LoadSTLShapes reads an STL file into triangle shapes, skipping
// triangles that are degenerate under eps.
func LoadSTLShapes(env *Env, path string, eps float64) ([]*Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load stl shapes")
	}
	defer f.Close()
	tris, err := model3d.ReadSTL(f)
	if err != nil {
		return nil, errors.Wrap(err, "load stl shapes")
	}
	var res []*Triangle
	for _, t := range tris {
		if s, err := FromModelTriangle(env, t, eps); err == nil {
			res = append(res, s)
		}
	}
	return res, nil
}
