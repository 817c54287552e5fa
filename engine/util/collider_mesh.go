package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Collider interface {
	GetName() string
	SetName(name string)
	// IntersectsRay tests the segment start->end and returns the hit nearest to start.
	IntersectsRay(start mgl64.Vec3, end mgl64.Vec3) (bool, mgl64.Vec3)
	GetAABB() AABB
	ToString() string
}

type MeshCollider struct {
	VertexData       []float64 // positions, the first three values of every vertex
	TransformFunc    func() mgl64.Mat4
	name             string
	VertexIndices    []uint32
	VertexFormatSize uint32
}

func NewMeshCollider(name string, positions []float64, indices []uint32, transform func() mgl64.Mat4) *MeshCollider {
	if transform == nil {
		transform = mgl64.Ident4
	}
	return &MeshCollider{
		VertexData:       positions,
		VertexIndices:    indices,
		VertexFormatSize: 3,
		TransformFunc:    transform,
		name:             name,
	}
}

// NewBoxCollider builds the 12 triangles of an axis aligned box around center.
func NewBoxCollider(name string, center, extents mgl64.Vec3) *MeshCollider {
	h := extents.Mul(0.5)
	positions := []float64{
		-h.X(), -h.Y(), -h.Z(), // 0
		h.X(), -h.Y(), -h.Z(), // 1
		h.X(), h.Y(), -h.Z(), // 2
		-h.X(), h.Y(), -h.Z(), // 3
		-h.X(), -h.Y(), h.Z(), // 4
		h.X(), -h.Y(), h.Z(), // 5
		h.X(), h.Y(), h.Z(), // 6
		-h.X(), h.Y(), h.Z(), // 7
	}
	indices := []uint32{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
		3, 2, 6, 3, 6, 7, // top
		0, 4, 5, 0, 5, 1, // bottom
	}
	translation := mgl64.Translate3D(center.X(), center.Y(), center.Z())
	return NewMeshCollider(name, positions, indices, func() mgl64.Mat4 { return translation })
}

// NewQuadCollider builds two triangles spanning the corners a, b, c, d in order.
func NewQuadCollider(name string, a, b, c, d mgl64.Vec3) *MeshCollider {
	positions := []float64{
		a.X(), a.Y(), a.Z(),
		b.X(), b.Y(), b.Z(),
		c.X(), c.Y(), c.Z(),
		d.X(), d.Y(), d.Z(),
	}
	return NewMeshCollider(name, positions, []uint32{0, 1, 2, 0, 2, 3}, nil)
}

func (m *MeshCollider) SetName(name string) {
	m.name = name
}

func (m *MeshCollider) GetName() string {
	return m.name
}

func (m *MeshCollider) stride() uint32 {
	if m.VertexFormatSize == 0 {
		return 3
	}
	return m.VertexFormatSize
}

func (m *MeshCollider) transformVertex(transformMatrix mgl64.Mat4, offset uint32) mgl64.Vec3 {
	return transformMatrix.Mul4x1(mgl64.Vec4{m.VertexData[offset], m.VertexData[offset+1], m.VertexData[offset+2], 1}).Vec3()
}

func (m *MeshCollider) IterateTrianglesTransformed(callback func(triangle [3]mgl64.Vec3)) {
	transformMatrix := m.TransformFunc()
	stride := m.stride()
	if m.VertexIndices != nil {
		for i := 0; i+2 < len(m.VertexIndices); i += 3 {
			a := m.transformVertex(transformMatrix, m.VertexIndices[i]*stride)
			b := m.transformVertex(transformMatrix, m.VertexIndices[i+1]*stride)
			c := m.transformVertex(transformMatrix, m.VertexIndices[i+2]*stride)
			callback([3]mgl64.Vec3{a, b, c})
		}
	} else {
		for i := uint32(0); i+stride*2+2 < uint32(len(m.VertexData)); i += stride * 3 {
			a := m.transformVertex(transformMatrix, i)
			b := m.transformVertex(transformMatrix, i+stride)
			c := m.transformVertex(transformMatrix, i+stride*2)
			callback([3]mgl64.Vec3{a, b, c})
		}
	}
}

func (m *MeshCollider) IntersectsRay(rayStart, rayEnd mgl64.Vec3) (bool, mgl64.Vec3) {
	minDist := math.MaxFloat64
	doesIntersect := false
	nearestIntersection := mgl64.Vec3{0, 0, 0}
	m.IterateTrianglesTransformed(func(triangle [3]mgl64.Vec3) {
		intersection, atPoint := intersectLineSegmentTriangle(rayStart, rayEnd, triangle[0], triangle[1], triangle[2])
		if intersection {
			doesIntersect = true
			dist := atPoint.Sub(rayStart).Len()
			if dist < minDist {
				minDist = dist
				nearestIntersection = atPoint
			}
		}
	})
	return doesIntersect, nearestIntersection
}

func (m *MeshCollider) GetAABB() AABB {
	transformMatrix := m.TransformFunc()
	stride := m.stride()
	points := make([]mgl64.Vec3, 0, uint32(len(m.VertexData))/stride)
	for i := uint32(0); i+2 < uint32(len(m.VertexData)); i += stride {
		points = append(points, m.transformVertex(transformMatrix, i))
	}
	return NewAABBFromPoints(points)
}

func (m *MeshCollider) ToString() string {
	if len(m.VertexData) < 3 {
		return fmt.Sprintf("MeshCollider{Name = %s, empty}", m.name)
	}
	return fmt.Sprintf("MeshCollider{Name = %s, FirstVertex = %v, Transformed = %v}", m.name, m.VertexData[0:3], m.transformVertex(m.TransformFunc(), 0))
}
