package game

import "mini-voxel/internal/world"

// updateQueue is the FIFO of chunk positions waiting for a mesh task.
// Positions may repeat.
type updateQueue struct {
	items []world.ChunkCoord
}

func (q *updateQueue) pushBack(pos world.ChunkCoord) {
	q.items = append(q.items, pos)
}

func (q *updateQueue) pushFront(pos world.ChunkCoord) {
	q.items = append(q.items, world.ChunkCoord{})
	copy(q.items[1:], q.items)
	q.items[0] = pos
}

func (q *updateQueue) pop() (world.ChunkCoord, bool) {
	if len(q.items) == 0 {
		return world.ChunkCoord{}, false
	}
	pos := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return pos, true
}

func (q *updateQueue) len() int { return len(q.items) }
