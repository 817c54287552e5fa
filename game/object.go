package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/util"
)

// MeshObject is a static obstacle.
type MeshObject struct {
	id       uuid.UUID
	name     string
	collider util.Collider
}

func NewMeshObject(name string, collider util.Collider) *MeshObject {
	return &MeshObject{
		id:       uuid.New(),
		name:     name,
		collider: collider,
	}
}

// NewMeshObjectFromFile loads the triangles of a glTF model placed by transform.
func NewMeshObjectFromFile(name, filename string, transform *util.Transform) (*MeshObject, error) {
	collider, err := util.LoadGLTFCollider(filename, transform.GetTransformMatrix)
	if err != nil {
		return nil, err
	}
	collider.SetName(name)
	return NewMeshObject(name, collider), nil
}

func NewBoxObject(name string, center, extents mgl64.Vec3) *MeshObject {
	return NewMeshObject(name, util.NewBoxCollider(name, center, extents))
}

func (m *MeshObject) ID() uuid.UUID {
	return m.id
}

func (m *MeshObject) GetName() string {
	return m.name
}

func (m *MeshObject) GetCollider() util.Collider {
	return m.collider
}
