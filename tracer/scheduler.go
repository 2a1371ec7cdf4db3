package tracer

import "fmt"

// Default block size for the built-in schedulers.
const DefaultBlockSize = 16

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split a frame into disjoint blocks that cover every pixel exactly once.
	// Blocks are returned in scheduling order and their Index fields match
	// their position in the returned slice.
	Schedule(frameW, frameH uint32) []Block

	// Scheduler name.
	String() string
}

// The band scheduler splits the frame into full-width bands of rows.
type bandScheduler struct {
	rows uint32
}

// Create a scheduler that emits full-width bands of up to rows rows.
func BandScheduler(rows uint32) BlockScheduler {
	if rows == 0 {
		rows = DefaultBlockSize
	}
	return &bandScheduler{rows: rows}
}

func (sch *bandScheduler) Schedule(frameW, frameH uint32) []Block {
	if frameW == 0 || frameH == 0 {
		return nil
	}

	blocks := make([]Block, 0, (frameH+sch.rows-1)/sch.rows)
	for y := uint32(0); y < frameH; y += sch.rows {
		blocks = append(blocks, Block{
			Index: uint32(len(blocks)),
			X:     0,
			Y:     y,
			W:     frameW,
			H:     minU32(sch.rows, frameH-y),
		})
	}
	return blocks
}

func (sch *bandScheduler) String() string {
	return fmt.Sprintf("bands(%d)", sch.rows)
}

// The tile scheduler splits the frame into square tiles. Tiles on the right
// and bottom edges are clipped to the frame.
type tileScheduler struct {
	size uint32
}

// Create a scheduler that emits square tiles with the given side.
func TileScheduler(size uint32) BlockScheduler {
	if size == 0 {
		size = DefaultBlockSize
	}
	return &tileScheduler{size: size}
}

func (sch *tileScheduler) Schedule(frameW, frameH uint32) []Block {
	if frameW == 0 || frameH == 0 {
		return nil
	}

	cols := (frameW + sch.size - 1) / sch.size
	rows := (frameH + sch.size - 1) / sch.size
	blocks := make([]Block, 0, cols*rows)
	for y := uint32(0); y < frameH; y += sch.size {
		for x := uint32(0); x < frameW; x += sch.size {
			blocks = append(blocks, Block{
				Index: uint32(len(blocks)),
				X:     x,
				Y:     y,
				W:     minU32(sch.size, frameW-x),
				H:     minU32(sch.size, frameH-y),
			})
		}
	}
	return blocks
}

func (sch *tileScheduler) String() string {
	return fmt.Sprintf("tiles(%d)", sch.size)
}

// Lookup a scheduler by name. Supported names are "bands" and "tiles".
func NewScheduler(name string, blockSize uint32) (BlockScheduler, error) {
	switch name {
	case "", "bands":
		return BandScheduler(blockSize), nil
	case "tiles":
		return TileScheduler(blockSize), nil
	}
	return nil, fmt.Errorf("tracer: unknown block scheduler %q", name)
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
