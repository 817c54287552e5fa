package voxel

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/Tnze/go-mc/nbt"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/pkg/errors"
)

/*
	TAG_Compound("scene", {
	    "width": TAG_Int(), "height": TAG_Int(), "depth": TAG_Int(),  // in chunks
	    "floor": TAG_Int(),                                             // -1 for none
	    "boxes": TAG_List([
	        TAG_Compound({"block": TAG_Byte(), "min_x".."max_z": TAG_Int()})
	    ]),
	    "actors": TAG_List([
	        TAG_Compound({"name": TAG_String(), "x", "y", "z": TAG_Double(),
	                      "body_width", "body_height": TAG_Double(),
	                      "head_height", "head_radius": TAG_Double()})
	    ]),
	    "meshes": TAG_List([
	        TAG_Compound({"name", "file": TAG_String(), "x", "y", "z", "yaw", "scale": TAG_Double()})
	    ])
	})
*/
type SceneDescription struct {
	Width  int32              `nbt:"width"`
	Height int32              `nbt:"height"`
	Depth  int32              `nbt:"depth"`
	Floor  int32              `nbt:"floor"`
	Boxes  []BoxDescription   `nbt:"boxes"`
	Actors []ActorDescription `nbt:"actors"`
	Meshes []MeshDescription  `nbt:"meshes"`
}

type BoxDescription struct {
	Block byte  `nbt:"block"`
	MinX  int32 `nbt:"min_x"`
	MinY  int32 `nbt:"min_y"`
	MinZ  int32 `nbt:"min_z"`
	MaxX  int32 `nbt:"max_x"`
	MaxY  int32 `nbt:"max_y"`
	MaxZ  int32 `nbt:"max_z"`
}

// ActorDescription places an actor standing at X,Y,Z. The head sphere sits
// HeadHeight above the feet.
type ActorDescription struct {
	Name       string  `nbt:"name"`
	X          float64 `nbt:"x"`
	Y          float64 `nbt:"y"`
	Z          float64 `nbt:"z"`
	BodyWidth  float64 `nbt:"body_width"`
	BodyHeight float64 `nbt:"body_height"`
	HeadHeight float64 `nbt:"head_height"`
	HeadRadius float64 `nbt:"head_radius"`
}

func (a ActorDescription) Position() mgl64.Vec3 {
	return mgl64.Vec3{a.X, a.Y, a.Z}
}

// MeshDescription places a glTF model. A Scale of 0 means 1.
type MeshDescription struct {
	Name  string  `nbt:"name"`
	File  string  `nbt:"file"`
	X     float64 `nbt:"x"`
	Y     float64 `nbt:"y"`
	Z     float64 `nbt:"z"`
	Yaw   float64 `nbt:"yaw"`
	Scale float64 `nbt:"scale"`
}

func (m MeshDescription) Position() mgl64.Vec3 {
	return mgl64.Vec3{m.X, m.Y, m.Z}
}

func LoadSceneDescription(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open scene %s", filename)
	}
	defer file.Close()
	desc, err := ReadSceneDescription(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read scene %s", filename)
	}
	util.LogIOInfo(fmt.Sprintf("[LoadSceneDescription] %s: %d boxes, %d actors, %d meshes", filename, len(desc.Boxes), len(desc.Actors), len(desc.Meshes)))
	return desc, nil
}

// ReadSceneDescription decodes a gzip compressed NBT scene.
func ReadSceneDescription(reader io.Reader) (*SceneDescription, error) {
	gzipReader, err := gzip.NewReader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "gzip header")
	}
	defer gzipReader.Close()
	var desc SceneDescription
	if _, err = nbt.NewDecoder(gzipReader).Decode(&desc); err != nil {
		return nil, errors.Wrap(err, "decode nbt")
	}
	if err = desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

func WriteSceneDescription(writer io.Writer, desc *SceneDescription) error {
	gzipWriter := gzip.NewWriter(writer)
	if err := nbt.NewEncoder(gzipWriter).Encode(desc, "scene"); err != nil {
		return errors.Wrap(err, "encode nbt")
	}
	return gzipWriter.Close()
}

func (d *SceneDescription) Validate() error {
	if err := CheckMapSize(d.Width, d.Height, d.Depth); err != nil {
		return errors.Wrap(err, "scene size")
	}
	for i, box := range d.Boxes {
		if box.MinX > box.MaxX || box.MinY > box.MaxY || box.MinZ > box.MaxZ {
			return errors.Errorf("box %d has min above max", i)
		}
	}
	for i, actor := range d.Actors {
		if actor.HeadRadius < 0 || actor.BodyWidth < 0 || actor.BodyHeight < 0 {
			return errors.Errorf("actor %d (%s) has negative dimensions", i, actor.Name)
		}
	}
	for i, mesh := range d.Meshes {
		if mesh.File == "" {
			return errors.Errorf("mesh %d (%s) has no file", i, mesh.Name)
		}
		if mesh.Scale < 0 {
			return errors.Errorf("mesh %d (%s) has negative scale", i, mesh.Name)
		}
	}
	return nil
}

// BuildMap creates the voxel map with the floor and all boxes filled in, in
// order. A box with block 0 carves air, boxes reaching outside the map are
// clipped. The description has to pass Validate.
func (d *SceneDescription) BuildMap() *Map {
	m := NewMap(d.Width, d.Height, d.Depth)
	if d.Floor >= 0 {
		m.SetFloorAtHeight(d.Floor, NewBlock(1))
	}
	for _, box := range d.Boxes {
		m.FillBox(Int3{box.MinX, box.MinY, box.MinZ}, Int3{box.MaxX, box.MaxY, box.MaxZ}, NewBlock(box.Block))
	}
	util.LogVoxelDebug(fmt.Sprintf("[BuildMap] %d boxes, %d chunks allocated", len(d.Boxes), m.ChunkCount()))
	return m
}
