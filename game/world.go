package game

import (
	"fmt"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/memmaker/landingmarker/engine/voxel"
	"github.com/pkg/errors"
)

// World is a scene with its actors. Thrower is nil when the description does
// not contain the configured thrower.
type World struct {
	Scene    *Scene
	Registry *Registry
	Thrower  *Actor
}

// DefaultSceneDescription is a 128x32x128 range with a floor, a wall 40 blocks
// ahead of the thrower and one dummy standing in front of the wall.
func DefaultSceneDescription() *voxel.SceneDescription {
	return &voxel.SceneDescription{
		Width:  4,
		Height: 1,
		Depth:  4,
		Floor:  0,
		Boxes: []voxel.BoxDescription{
			{Block: 1, MinX: 44, MinY: 1, MinZ: 104, MaxX: 84, MaxY: 12, MaxZ: 105},
		},
		Actors: []voxel.ActorDescription{
			{Name: "thrower", X: 64.5, Y: 1, Z: 64.5, BodyWidth: DefaultBodyWidth, BodyHeight: DefaultBodyHeight, HeadHeight: DefaultHeadHeight, HeadRadius: DefaultHeadRadius},
			{Name: "dummy", X: 64.5, Y: 1, Z: 96.5, BodyWidth: DefaultBodyWidth, BodyHeight: DefaultBodyHeight, HeadHeight: DefaultHeadHeight, HeadRadius: DefaultHeadRadius},
		},
	}
}

// LoadWorld builds scene and registry from a description. Mesh files are
// resolved relative to assetDir.
func LoadWorld(desc *voxel.SceneDescription, assetDir, throwerName string) (*World, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	scene := NewScene(desc.BuildMap())
	registry := NewRegistry()
	world := &World{Scene: scene, Registry: registry}

	for _, actorDesc := range desc.Actors {
		actor := NewActorWithShape(actorDesc.Name, actorDesc.Position(), actorDesc.BodyWidth, actorDesc.BodyHeight, actorDesc.HeadHeight, actorDesc.HeadRadius)
		registry.Add(actor)
		scene.Attach(actor)
		if actorDesc.Name == throwerName && world.Thrower == nil {
			world.Thrower = actor
		}
	}
	for _, meshDesc := range desc.Meshes {
		filename := meshDesc.File
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(assetDir, filename)
		}
		transform := util.NewTransformFromYaw(meshDesc.Name, meshDesc.Position(), meshDesc.Yaw, meshDesc.Scale)
		object, err := NewMeshObjectFromFile(meshDesc.Name, filename, transform)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %s", meshDesc.Name)
		}
		scene.Attach(object)
	}
	util.LogSceneInfo(fmt.Sprintf("[LoadWorld] %d actors, %d scene objects, thrower %q found: %t", registry.Len(), scene.ObjectCount(), throwerName, world.Thrower != nil))
	return world, nil
}

// LoadWorldFromConfig falls back to DefaultSceneDescription without a file.
func LoadWorldFromConfig(config SceneConfig) (*World, error) {
	if config.File == "" {
		return LoadWorld(DefaultSceneDescription(), ".", config.Thrower)
	}
	desc, err := voxel.LoadSceneDescription(config.File)
	if err != nil {
		return nil, err
	}
	return LoadWorld(desc, filepath.Dir(config.File), config.Thrower)
}

// AimRay starts at the thrower's eyes, or at the origin without a thrower.
func (w *World) AimRay(yawDegrees, pitchDegrees float64) (mgl64.Vec3, mgl64.Vec3) {
	origin := mgl64.Vec3{}
	if w.Thrower != nil {
		origin = w.Thrower.GetEyePosition()
	}
	return origin, ballistics.DirectionFromAngles(yawDegrees, pitchDegrees)
}

// Targets lists every actor except the thrower.
func (w *World) Targets() TargetSource {
	if w.Thrower == nil {
		return w.Registry
	}
	return w.Registry.Except(w.Thrower.ID())
}

// Exclusions lists the objects a throw from the thrower has to ignore.
func (w *World) Exclusions() []uuid.UUID {
	if w.Thrower == nil {
		return nil
	}
	return []uuid.UUID{w.Thrower.ID()}
}
