// Package layout maps elapsed ticks to consumed block indices.
//
// Blocks are partitioned into equal segments in index order. A removal order
// is a bijection from tick index to block index; it is configuration, the
// consumed set is always derived from an elapsed tick count and never stored.
// BlockLayout is immutable after construction and safe for concurrent reads.
package layout

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/blocktimer/core"
)

// RemovalOrder selects which block a tick consumes
type RemovalOrder uint8

const (
	// OrderSegmentReverse consumes segments in ascending order, each from its
	// highest index down to its lowest
	OrderSegmentReverse RemovalOrder = iota

	// OrderAscending consumes tick t as block t
	OrderAscending
)

// String returns the config name of the order
func (o RemovalOrder) String() string {
	switch o {
	case OrderSegmentReverse:
		return "segment-reverse"
	case OrderAscending:
		return "ascending"
	default:
		return "unknown"
	}
}

// ParseRemovalOrder resolves a config name, empty selects the default
func ParseRemovalOrder(name string) (RemovalOrder, error) {
	switch name {
	case "", "segment-reverse":
		return OrderSegmentReverse, nil
	case "ascending":
		return OrderAscending, nil
	default:
		return 0, fmt.Errorf("%w: unknown removal order %q", core.ErrInvalidConfiguration, name)
	}
}

// BlockLayout is the block grid geometry plus its removal order
type BlockLayout struct {
	totalBlocks      int
	segmentCount     int
	blocksPerSegment int
	order            RemovalOrder
}

// New validates the geometry and returns an immutable layout
func New(totalBlocks, segmentCount int, order RemovalOrder) (*BlockLayout, error) {
	if totalBlocks <= 0 {
		return nil, fmt.Errorf("%w: total blocks must be positive, got %d", core.ErrInvalidConfiguration, totalBlocks)
	}
	if segmentCount <= 0 {
		return nil, fmt.Errorf("%w: segment count must be positive, got %d", core.ErrInvalidConfiguration, segmentCount)
	}
	if totalBlocks%segmentCount != 0 {
		return nil, fmt.Errorf("%w: %d blocks do not divide into %d segments", core.ErrInvalidConfiguration, totalBlocks, segmentCount)
	}
	if order != OrderSegmentReverse && order != OrderAscending {
		return nil, fmt.Errorf("%w: unknown removal order %d", core.ErrInvalidConfiguration, order)
	}

	return &BlockLayout{
		totalBlocks:      totalBlocks,
		segmentCount:     segmentCount,
		blocksPerSegment: totalBlocks / segmentCount,
		order:            order,
	}, nil
}

func (l *BlockLayout) TotalBlocks() int      { return l.totalBlocks }
func (l *BlockLayout) SegmentCount() int     { return l.segmentCount }
func (l *BlockLayout) BlocksPerSegment() int { return l.blocksPerSegment }
func (l *BlockLayout) Order() RemovalOrder   { return l.order }

// RemovedAt returns the block index consumed by the given tick index
func (l *BlockLayout) RemovedAt(tick int) (int, error) {
	if tick < 0 || tick >= l.totalBlocks {
		return 0, fmt.Errorf("%w: tick %d outside [0,%d)", core.ErrOutOfRange, tick, l.totalBlocks)
	}
	return l.removedAt(tick), nil
}

// removedAt assumes tick is in range
func (l *BlockLayout) removedAt(tick int) int {
	if l.order == OrderAscending {
		return tick
	}
	group := tick / l.blocksPerSegment
	offset := tick % l.blocksPerSegment
	return (group+1)*l.blocksPerSegment - 1 - offset
}

// clamp bounds elapsed ticks to [0, totalBlocks]
func (l *BlockLayout) clamp(elapsed int) int {
	if elapsed < 0 {
		return 0
	}
	if elapsed > l.totalBlocks {
		return l.totalBlocks
	}
	return elapsed
}

// ConsumedBlockIndices returns the blocks consumed after elapsed ticks, in removal order
// Elapsed is clamped to [0, totalBlocks]; the same input always yields the same slice contents
func (l *BlockLayout) ConsumedBlockIndices(elapsed int) []int {
	elapsed = l.clamp(elapsed)
	consumed := make([]int, elapsed)
	for t := 0; t < elapsed; t++ {
		consumed[t] = l.removedAt(t)
	}
	return consumed
}

// IsConsumed reports whether block has been removed after elapsed ticks
func (l *BlockLayout) IsConsumed(block, elapsed int) bool {
	if block < 0 || block >= l.totalBlocks {
		return false
	}
	return l.tickOf(block) < l.clamp(elapsed)
}

// tickOf inverts the removal order for an in-range block
func (l *BlockLayout) tickOf(block int) int {
	if l.order == OrderAscending {
		return block
	}
	group := block / l.blocksPerSegment
	offset := (group+1)*l.blocksPerSegment - 1 - block
	return group*l.blocksPerSegment + offset
}

// NewlyConsumed returns consumed(cur) \ consumed(prev), sorted ascending
// Empty when cur <= prev
func (l *BlockLayout) NewlyConsumed(prev, cur int) []int {
	prev, cur = l.clamp(prev), l.clamp(cur)
	if cur <= prev {
		return []int{}
	}

	before := make(map[int]struct{}, prev)
	for _, b := range l.ConsumedBlockIndices(prev) {
		before[b] = struct{}{}
	}

	diff := make([]int, 0, cur-prev)
	for _, b := range l.ConsumedBlockIndices(cur) {
		if _, ok := before[b]; !ok {
			diff = append(diff, b)
		}
	}
	sort.Ints(diff)
	return diff
}

// SegmentOfBlock returns the segment a block belongs to, -1 when out of range
func (l *BlockLayout) SegmentOfBlock(block int) int {
	if block < 0 || block >= l.totalBlocks {
		return -1
	}
	return block / l.blocksPerSegment
}

// SegmentRange returns the half-open block range [lo, hi) of a segment
func (l *BlockLayout) SegmentRange(segment int) (lo, hi int, err error) {
	if segment < 0 || segment >= l.segmentCount {
		return 0, 0, fmt.Errorf("%w: segment %d outside [0,%d)", core.ErrOutOfRange, segment, l.segmentCount)
	}
	lo = segment * l.blocksPerSegment
	return lo, lo + l.blocksPerSegment, nil
}
