package voxel

type Block struct {
	ID byte
}

func NewBlock(id byte) Block {
	return Block{ID: id}
}

func (b Block) IsAir() bool {
	return b.ID == EMPTY
}
