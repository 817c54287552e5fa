package game

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/memmaker/landingmarker/engine/voxel"
	"github.com/pkg/errors"
)

// SceneObject is anything a ray can hit besides voxel blocks.
type SceneObject interface {
	ID() uuid.UUID
	GetName() string
	// GetCollider may return nil for objects without geometry.
	GetCollider() util.Collider
}

// Scene combines a voxel map with attachable objects. It is safe for
// concurrent ray casts.
type Scene struct {
	mutex    sync.RWMutex
	voxelMap *voxel.Map
	objects  map[uuid.UUID]SceneObject
}

func NewScene(voxelMap *voxel.Map) *Scene {
	return &Scene{
		voxelMap: voxelMap,
		objects:  make(map[uuid.UUID]SceneObject),
	}
}

func (s *Scene) VoxelMap() *voxel.Map {
	return s.voxelMap
}

// Attach adds object, replacing an object with the same id.
func (s *Scene) Attach(object SceneObject) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.objects[object.ID()] = object
	util.LogSceneDebug(fmt.Sprintf("[Scene] attached %s (%s)", object.GetName(), object.ID()))
}

// Detach reports whether the object was attached.
func (s *Scene) Detach(id uuid.UUID) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	object, ok := s.objects[id]
	if !ok {
		return false
	}
	delete(s.objects, id)
	util.LogSceneDebug(fmt.Sprintf("[Scene] detached %s (%s)", object.GetName(), id))
	return true
}

func (s *Scene) IsAttached(id uuid.UUID) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	_, ok := s.objects[id]
	return ok
}

func (s *Scene) Get(id uuid.UUID) (SceneObject, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	object, ok := s.objects[id]
	return object, ok
}

func (s *Scene) ObjectCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.objects)
}

// CastRay implements ballistics.RayCaster. Solid voxel blocks and the
// colliders of all attached objects not in exclude are tested; the hit
// nearest to origin wins. Voxel hits carry uuid.Nil as object.
func (s *Scene) CastRay(origin, direction mgl64.Vec3, maxDistance float64, exclude ballistics.ExclusionSet) (ballistics.RayHit, error) {
	if !finiteVec(origin) || !finiteVec(direction) || math.IsNaN(maxDistance) {
		return ballistics.RayHit{}, errors.Errorf("invalid ray from %v along %v", origin, direction)
	}
	if maxDistance <= 0 || direction.Len() == 0 {
		return ballistics.RayHit{}, nil
	}
	rayEnd := origin.Add(direction.Mul(maxDistance))

	result := ballistics.RayHit{}
	nearest := math.Inf(1)
	if s.voxelMap != nil {
		voxelHit := s.voxelMap.RayCast(origin, rayEnd)
		if voxelHit.Hit && voxelHit.Distance <= maxDistance {
			nearest = voxelHit.Distance
			result = ballistics.RayHit{Hit: true, Position: voxelHit.CollisionWorldPosition}
		}
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for id, object := range s.objects {
		if exclude.Contains(id) {
			continue
		}
		collider := object.GetCollider()
		if collider == nil {
			continue
		}
		// broad phase
		boxHit, enter := collider.GetAABB().IntersectsSegment(origin, rayEnd)
		if !boxHit || enter*maxDistance > nearest {
			continue
		}
		meshHit, point := collider.IntersectsRay(origin, rayEnd)
		if !meshHit {
			continue
		}
		distance := point.Sub(origin).Len()
		if distance < nearest {
			nearest = distance
			result = ballistics.RayHit{Hit: true, Position: point, Object: id}
		}
	}
	return result, nil
}

func finiteVec(v mgl64.Vec3) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
