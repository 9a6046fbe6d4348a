package shaderprog

import (
	"fmt"

	"github.com/gogpu/shaderprog/block"
)

// MaxSamplerCount is the number of global sampler slots available to one
// program. It matches the guaranteed minimum of combined texture/sampler
// units on the backends this library targets.
const MaxSamplerCount = 16

const invalidOffset = 0xff

// SamplerBindingMap assigns each sampler of each sampler interface block a
// global binding slot. Blocks receive contiguous runs of slots in the order
// they are added, so a sampler's global slot is its block's base offset plus
// its offset within the block.
//
// The map is built once by the material system and then borrowed, read-only,
// by every Program compiled from that material.
type SamplerBindingMap struct {
	blockOffsets [BindingPointCount]uint8
	byName       map[string]uint8
	next         uint8
}

// NewSamplerBindingMap creates an empty binding map.
func NewSamplerBindingMap() *SamplerBindingMap {
	m := &SamplerBindingMap{
		byName: make(map[string]uint8),
	}
	for i := range m.blockOffsets {
		m.blockOffsets[i] = invalidOffset
	}
	return m
}

// AddSamplerBlock assigns the block's samplers the next contiguous run of
// global slots and records them under their qualified names
// (blockName_samplerName). A nil block is a no-op. Adding a block at an
// already-assigned binding point, an invalid binding point, or past
// MaxSamplerCount is an error and leaves the map unchanged.
func (m *SamplerBindingMap) AddSamplerBlock(index BindingPoint, sb *block.SamplerInterfaceBlock) error {
	if !index.IsValid() {
		return fmt.Errorf("%w: sampler block index %d", ErrInvalidBinding, index)
	}
	if sb == nil {
		return nil
	}
	if m.blockOffsets[index] != invalidOffset {
		return fmt.Errorf("%w: binding point %s already assigned", ErrInvalidBinding, index)
	}
	n := sb.Size()
	if int(m.next)+n > MaxSamplerCount {
		return fmt.Errorf("%w: %d slots requested, %d free",
			ErrTooManySamplers, n, MaxSamplerCount-int(m.next))
	}
	m.blockOffsets[index] = m.next
	for _, s := range sb.Samplers() {
		m.byName[block.QualifiedName(sb.Name(), s.Name)] = m.next + s.Offset
	}
	m.next += uint8(n)
	return nil
}

// BlockOffset returns the first global slot assigned to the block at the
// given binding point. ok is false if no block was added there.
func (m *SamplerBindingMap) BlockOffset(index BindingPoint) (offset uint8, ok bool) {
	if !index.IsValid() || m.blockOffsets[index] == invalidOffset {
		return 0, false
	}
	return m.blockOffsets[index], true
}

// Binding returns the global slot assigned to a sampler by its qualified
// name (blockName_samplerName). ok is false for unknown names.
func (m *SamplerBindingMap) Binding(qualifiedName string) (slot uint8, ok bool) {
	slot, ok = m.byName[qualifiedName]
	return slot, ok
}

// Count returns the total number of global slots assigned so far.
func (m *SamplerBindingMap) Count() int {
	return int(m.next)
}
