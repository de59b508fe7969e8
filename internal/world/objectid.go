package world

import "sync/atomic"

// InstanceIDGenerator hands out encounter instance IDs.
// IDs start at 0x20000000 and only grow: an ID is never reused within the process,
// even after the encounter is removed.
type InstanceIDGenerator struct {
	next atomic.Uint32
}

// NewInstanceIDGenerator creates a generator starting at the encounter range.
func NewInstanceIDGenerator() *InstanceIDGenerator {
	gen := &InstanceIDGenerator{}
	gen.next.Store(0x20000000)
	return gen
}

// Next returns the next unique instance ID.
// Thread-safe via atomic increment.
func (g *InstanceIDGenerator) Next() uint32 {
	return g.next.Add(1)
}

// Shared by every session's registry so IDs stay unique process-wide.
var globalIDGenerator = NewInstanceIDGenerator()

// IDGenerator returns the process-wide instance ID generator.
func IDGenerator() *InstanceIDGenerator {
	return globalIDGenerator
}
