package voxel

type Chunk struct {
	chunkPosX  int32
	chunkPosY  int32
	chunkPosZ  int32
	data       []Block
	solidCount int32
}

func NewChunk(cX, cY, cZ int32) *Chunk {
	return &Chunk{
		chunkPosX: cX,
		chunkPosY: cY,
		chunkPosZ: cZ,
		data:      make([]Block, CHUNK_SIZE_CUBED),
	}
}

func localIndex(x, y, z int32) int32 {
	return x + y*CHUNK_SIZE + z*CHUNK_SIZE_SQUARED
}

func (c *Chunk) GetLocalBlock(x, y, z int32) Block {
	return c.data[localIndex(x, y, z)]
}

func (c *Chunk) SetLocalBlock(x, y, z int32, block Block) {
	index := localIndex(x, y, z)
	wasAir := c.data[index].IsAir()
	c.data[index] = block
	if wasAir && !block.IsAir() {
		c.solidCount++
	} else if !wasAir && block.IsAir() {
		c.solidCount--
	}
}

func (c *Chunk) IsEmpty() bool {
	return c.solidCount == 0
}

func (c *Chunk) Position() Int3 {
	return Int3{c.chunkPosX, c.chunkPosY, c.chunkPosZ}
}
