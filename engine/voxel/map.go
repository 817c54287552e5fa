package voxel

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/pkg/errors"
)

// Map is a solid/air voxel grid of width*height*depth chunks. Chunks are
// allocated on first write.
type Map struct {
	chunks []*Chunk
	width  int32
	height int32
	depth  int32
}

// NewMap expects dimensions accepted by CheckMapSize.
func NewMap(width, height, depth int32) *Map {
	return &Map{
		chunks: make([]*Chunk, width*height*depth),
		width:  width,
		height: height,
		depth:  depth,
	}
}

// CheckMapSize reports dimensions NewMap cannot allocate.
func CheckMapSize(width, height, depth int32) error {
	if width <= 0 || height <= 0 || depth <= 0 {
		return errors.Errorf("invalid map dimensions %d %d %d", width, height, depth)
	}
	if int64(width)*int64(height)*int64(depth) > MAX_CHUNK_COUNT {
		return errors.Errorf("map dimensions %d %d %d exceed %d chunks", width, height, depth, MAX_CHUNK_COUNT)
	}
	return nil
}

func NewMapFromFile(filename string) (*Map, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open map %s", filename)
	}
	defer file.Close()
	m := &Map{}
	if err = m.Load(file); err != nil {
		return nil, errors.Wrapf(err, "load map %s", filename)
	}
	return m, nil
}

func (m *Map) SaveToDisk(filename string) error {
	outfile, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create map %s", filename)
	}
	if err = m.Save(outfile); err != nil {
		outfile.Close()
		return errors.Wrapf(err, "save map %s", filename)
	}
	return outfile.Close()
}

// Save writes the gzip compressed map: dimensions as 3 x int32, the chunk count
// as int16, then per chunk its position as 3 x int32 followed by one byte per block.
func (m *Map) Save(writer io.Writer) error {
	gzipWriter := gzip.NewWriter(writer)
	header := []int32{m.width, m.height, m.depth}
	if err := binary.Write(gzipWriter, binary.LittleEndian, header); err != nil {
		return err
	}
	util.LogIOInfo(fmt.Sprintf("[Map] Saving map with dimensions %d %d %d", m.width, m.height, m.depth))

	var allocated []*Chunk
	for _, chunk := range m.chunks {
		if chunk != nil {
			allocated = append(allocated, chunk)
		}
	}
	if int64(len(allocated)) > MAX_CHUNK_COUNT {
		return errors.Errorf("too many chunks: %d", len(allocated))
	}
	chunkCount := int16(len(allocated))
	if err := binary.Write(gzipWriter, binary.LittleEndian, chunkCount); err != nil {
		return err
	}

	ids := make([]byte, CHUNK_SIZE_CUBED)
	for _, chunk := range allocated {
		position := []int32{chunk.chunkPosX, chunk.chunkPosY, chunk.chunkPosZ}
		if err := binary.Write(gzipWriter, binary.LittleEndian, position); err != nil {
			return err
		}
		for i, block := range chunk.data {
			ids[i] = block.ID
		}
		if _, err := gzipWriter.Write(ids); err != nil {
			return err
		}
	}
	util.LogIOInfo(fmt.Sprintf("[Map] Saved %d chunks", chunkCount))
	return gzipWriter.Close()
}

// Load replaces the content of m with a map written by Save.
func (m *Map) Load(reader io.Reader) error {
	gzipReader, err := gzip.NewReader(reader)
	if err != nil {
		return errors.Wrap(err, "gzip header")
	}
	defer gzipReader.Close()

	var header [3]int32
	if err = binary.Read(gzipReader, binary.LittleEndian, &header); err != nil {
		return errors.Wrap(err, "read dimensions")
	}
	width, height, depth := header[0], header[1], header[2]
	if err = CheckMapSize(width, height, depth); err != nil {
		return err
	}

	chunkCount := int16(0)
	if err = binary.Read(gzipReader, binary.LittleEndian, &chunkCount); err != nil {
		return errors.Wrap(err, "read chunk count")
	}
	util.LogIOInfo(fmt.Sprintf("[Map] Loading map with dimensions %d %d %d and %d chunks", width, height, depth, chunkCount))

	loaded := NewMap(width, height, depth)
	ids := make([]byte, CHUNK_SIZE_CUBED)
	for i := int16(0); i < chunkCount; i++ {
		var chunkPos [3]int32
		if err = binary.Read(gzipReader, binary.LittleEndian, &chunkPos); err != nil {
			return errors.Wrapf(err, "read chunk %d position", i)
		}
		if !loaded.chunkInBounds(chunkPos[0], chunkPos[1], chunkPos[2]) {
			return errors.Errorf("chunk %d position %v out of bounds", i, chunkPos)
		}
		if _, err = io.ReadFull(gzipReader, ids); err != nil {
			return errors.Wrapf(err, "read chunk %d blocks", i)
		}
		chunk := NewChunk(chunkPos[0], chunkPos[1], chunkPos[2])
		for j, id := range ids {
			if id == EMPTY {
				continue
			}
			x, y, z := int32(j)%CHUNK_SIZE, (int32(j)/CHUNK_SIZE)%CHUNK_SIZE, int32(j)/CHUNK_SIZE_SQUARED
			chunk.SetLocalBlock(x, y, z, NewBlock(id))
		}
		loaded.SetChunk(chunkPos[0], chunkPos[1], chunkPos[2], chunk)
	}
	*m = *loaded
	return nil
}

func (m *Map) chunkInBounds(x, y, z int32) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height && z >= 0 && z < m.depth
}

func (m *Map) SetChunk(x, y, z int32, c *Chunk) {
	m.chunks[x+y*m.width+z*m.width*m.height] = c
}

func (m *Map) GetChunk(x, y, z int32) *Chunk {
	if !m.chunkInBounds(x, y, z) {
		return nil
	}
	return m.chunks[x+y*m.width+z*m.width*m.height]
}

func (m *Map) GetChunkFromBlock(x, y, z int32) *Chunk {
	if !m.Contains(x, y, z) {
		return nil
	}
	return m.GetChunk(x/CHUNK_SIZE, y/CHUNK_SIZE, z/CHUNK_SIZE)
}

func (m *Map) ChunkCount() int {
	count := 0
	for _, chunk := range m.chunks {
		if chunk != nil {
			count++
		}
	}
	return count
}

// Size returns the map extent in blocks.
func (m *Map) Size() Int3 {
	return Int3{m.width * CHUNK_SIZE, m.height * CHUNK_SIZE, m.depth * CHUNK_SIZE}
}

func (m *Map) Contains(x int32, y int32, z int32) bool {
	return x >= 0 && x < m.width*CHUNK_SIZE && y >= 0 && y < m.height*CHUNK_SIZE && z >= 0 && z < m.depth*CHUNK_SIZE
}

// SetBlock ignores positions outside the map.
func (m *Map) SetBlock(x int32, y int32, z int32, block Block) {
	if !m.Contains(x, y, z) {
		return
	}
	chunkX, chunkY, chunkZ := x/CHUNK_SIZE, y/CHUNK_SIZE, z/CHUNK_SIZE
	chunk := m.GetChunk(chunkX, chunkY, chunkZ)
	if chunk == nil {
		if block.IsAir() {
			return
		}
		chunk = NewChunk(chunkX, chunkY, chunkZ)
		m.SetChunk(chunkX, chunkY, chunkZ, chunk)
	}
	chunk.SetLocalBlock(x%CHUNK_SIZE, y%CHUNK_SIZE, z%CHUNK_SIZE, block)
}

func (m *Map) GetGlobalBlock(x int32, y int32, z int32) Block {
	chunk := m.GetChunkFromBlock(x, y, z)
	if chunk == nil {
		return Block{}
	}
	return chunk.GetLocalBlock(x%CHUNK_SIZE, y%CHUNK_SIZE, z%CHUNK_SIZE)
}

func (m *Map) GetBlockFromPosition(position mgl64.Vec3) Block {
	grid := PositionToGridInt3(position)
	return m.GetGlobalBlock(grid.X, grid.Y, grid.Z)
}

func (m *Map) IsSolidBlockAt(x int32, y int32, z int32) bool {
	return !m.GetGlobalBlock(x, y, z).IsAir()
}

func (m *Map) SetFloorAtHeight(yLevel int32, block Block) {
	size := m.Size()
	m.FillBox(Int3{0, yLevel, 0}, Int3{size.X - 1, yLevel, size.Z - 1}, block)
}

// FillBox sets every block between min and max, both inclusive. The box is
// clipped to the map.
func (m *Map) FillBox(min, max Int3, block Block) {
	size := m.Size()
	min = Int3{clamp(min.X, 0, size.X), clamp(min.Y, 0, size.Y), clamp(min.Z, 0, size.Z)}
	max = Int3{clamp(max.X, -1, size.X-1), clamp(max.Y, -1, size.Y-1), clamp(max.Z, -1, size.Z-1)}
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				m.SetBlock(x, y, z, block)
			}
		}
	}
}

// RayCast finds the first solid block touched by the segment start->end.
// Cells outside the map are transparent.
func (m *Map) RayCast(start, end mgl64.Vec3) util.HitInfo3D {
	return util.DDARaycast(start, end, func(x, y, z int32) bool {
		chunk := m.GetChunkFromBlock(x, y, z)
		if chunk == nil || chunk.IsEmpty() {
			return false
		}
		return !chunk.GetLocalBlock(x%CHUNK_SIZE, y%CHUNK_SIZE, z%CHUNK_SIZE).IsAir()
	})
}

func (m *Map) GetGroundPosition(startBlock Int3) Int3 {
	for y := startBlock.Y; y >= 0; y-- {
		if m.IsSolidBlockAt(startBlock.X, y, startBlock.Z) {
			return Int3{startBlock.X, y + 1, startBlock.Z}
		}
	}
	return Int3{startBlock.X, 0, startBlock.Z}
}

func clamp(value, low, high int32) int32 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
