package util

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTFCollider merges the triangles of every mesh in a .gltf/.glb file into
// one collider. Node transforms are ignored, the geometry is taken in mesh
// space and placed by transform.
func LoadGLTFCollider(filename string, transform func() mgl64.Mat4) (*MeshCollider, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open gltf %s", filename)
	}
	positions, indices, err := collectTriangles(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "read gltf %s", filename)
	}
	if len(indices) == 0 {
		return nil, errors.Errorf("gltf %s contains no triangles", filename)
	}
	LogIOInfo(fmt.Sprintf("[LoadGLTFCollider] %s: %d vertices, %d triangles", filename, len(positions)/3, len(indices)/3))
	return NewMeshCollider(filename, positions, indices, transform), nil
}

func collectTriangles(doc *gltf.Document) ([]float64, []uint32, error) {
	var positions []float64
	var indices []uint32
	for meshIndex, mesh := range doc.Meshes {
		for primitiveIndex, primitive := range mesh.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				LogSceneWarning(fmt.Sprintf("[LoadGLTFCollider] mesh %d primitive %d is not a triangle list, skipped", meshIndex, primitiveIndex))
				continue
			}
			positionIndex, ok := primitive.Attributes["POSITION"]
			if !ok {
				continue
			}
			var vertBuffer [][3]float32
			vertBuffer, err := modeler.ReadPosition(doc, doc.Accessors[positionIndex], vertBuffer)
			if err != nil {
				return nil, nil, err
			}
			base := uint32(len(positions) / 3)
			for _, v := range vertBuffer {
				positions = append(positions, float64(v[0]), float64(v[1]), float64(v[2]))
			}

			if primitive.Indices == nil {
				for i := uint32(0); i < uint32(len(vertBuffer)); i++ {
					indices = append(indices, base+i)
				}
				continue
			}
			var indicesBuffer []uint32
			indicesBuffer, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], indicesBuffer)
			if err != nil {
				return nil, nil, err
			}
			for _, index := range indicesBuffer {
				indices = append(indices, base+index)
			}
		}
	}
	return positions, indices, nil
}
