package voxel

const (
	EMPTY              byte  = 0
	CHUNK_SIZE         int32 = 32
	CHUNK_SIZE_SQUARED int32 = CHUNK_SIZE * CHUNK_SIZE
	CHUNK_SIZE_CUBED   int32 = CHUNK_SIZE * CHUNK_SIZE * CHUNK_SIZE

	// MAX_CHUNK_COUNT bounds width*height*depth of a map, 128 MiB of blocks
	// when fully allocated.
	MAX_CHUNK_COUNT int64 = 4096
)
