// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package block

import "fmt"

// SamplerType is the texture dimensionality of a sampler.
type SamplerType uint8

const (
	Sampler2D SamplerType = iota
	Sampler2DArray
	Sampler3D
	SamplerCubemap
	SamplerExternal

	samplerTypeCount
)

// String returns the GLSL-style spelling of the sampler type.
func (t SamplerType) String() string {
	names := [samplerTypeCount]string{
		"sampler2D", "sampler2DArray", "sampler3D", "samplerCube", "samplerExternalOES",
	}
	if t >= samplerTypeCount {
		return "invalid"
	}
	return names[t]
}

// SamplerFormat is the component format sampled from a texture.
type SamplerFormat uint8

const (
	SamplerInt SamplerFormat = iota
	SamplerUInt
	SamplerFloat
	SamplerShadow

	samplerFormatCount
)

// String returns a short name for the format.
func (f SamplerFormat) String() string {
	names := [samplerFormatCount]string{"int", "uint", "float", "shadow"}
	if f >= samplerFormatCount {
		return "invalid"
	}
	return names[f]
}

// SamplerInfo describes one sampler of a built sampler block.
type SamplerInfo struct {
	// Name is the sampler name as declared in shader source.
	Name string

	// Offset is the sampler's index within its block. The global binding
	// slot is this offset plus the block's base offset in the program's
	// sampler binding map.
	Offset uint8

	// Type is the texture dimensionality.
	Type SamplerType

	// Format is the sampled component format.
	Format SamplerFormat

	// Precision is the declared precision hint.
	Precision Precision

	// Multisample marks samplers of multisampled textures.
	Multisample bool
}

// SamplerInterfaceBlock is the immutable description of a named group of
// samplers. Programs reference blocks without owning them.
type SamplerInterfaceBlock struct {
	name     string
	samplers []SamplerInfo
	byName   map[string]int
}

// Name returns the block name.
func (b *SamplerInterfaceBlock) Name() string { return b.name }

// Size returns the number of samplers in the block.
func (b *SamplerInterfaceBlock) Size() int { return len(b.samplers) }

// Samplers returns the block's samplers in declaration order.
// The returned slice must not be modified.
func (b *SamplerInterfaceBlock) Samplers() []SamplerInfo { return b.samplers }

// Sampler returns a sampler by name. ok is false for unknown names.
func (b *SamplerInterfaceBlock) Sampler(name string) (s SamplerInfo, ok bool) {
	i, ok := b.byName[name]
	if !ok {
		return SamplerInfo{}, false
	}
	return b.samplers[i], true
}

// QualifiedName returns the name under which a sampler appears in generated
// shader source and in sampler binding maps.
func QualifiedName(blockName, samplerName string) string {
	return blockName + "_" + samplerName
}

// SamplerBlockBuilder constructs a SamplerInterfaceBlock.
type SamplerBlockBuilder struct {
	name     string
	samplers []SamplerInfo
}

// NewSamplerBlock creates a builder for a sampler block with the given name.
func NewSamplerBlock(name string) *SamplerBlockBuilder {
	return &SamplerBlockBuilder{name: name}
}

// Add appends a sampler with default precision, not multisampled.
func (b *SamplerBlockBuilder) Add(name string, typ SamplerType, format SamplerFormat) *SamplerBlockBuilder {
	return b.AddWithAttributes(name, typ, format, PrecisionDefault, false)
}

// AddWithAttributes appends a sampler with explicit precision and
// multisample attributes.
func (b *SamplerBlockBuilder) AddWithAttributes(name string, typ SamplerType, format SamplerFormat, prec Precision, multisample bool) *SamplerBlockBuilder {
	b.samplers = append(b.samplers, SamplerInfo{
		Name:        name,
		Type:        typ,
		Format:      format,
		Precision:   prec,
		Multisample: multisample,
	})
	return b
}

// Build assigns block-local offsets in declaration order and returns the
// immutable block. The builder may be discarded afterwards.
func (b *SamplerBlockBuilder) Build() (*SamplerInterfaceBlock, error) {
	if b.name == "" {
		return nil, fmt.Errorf("%w: sampler block", ErrEmptyName)
	}

	blk := &SamplerInterfaceBlock{
		name:     b.name,
		samplers: make([]SamplerInfo, 0, len(b.samplers)),
		byName:   make(map[string]int, len(b.samplers)),
	}

	for i, s := range b.samplers {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: sampler in block %q", ErrEmptyName, b.name)
		}
		if s.Type >= samplerTypeCount {
			return nil, fmt.Errorf("%w: sampler %q", ErrUnknownType, s.Name)
		}
		if s.Format >= samplerFormatCount {
			return nil, fmt.Errorf("%w: sampler %q format", ErrUnknownType, s.Name)
		}
		if _, dup := blk.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q in block %q", ErrDuplicateField, s.Name, b.name)
		}

		s.Offset = uint8(i)
		blk.byName[s.Name] = len(blk.samplers)
		blk.samplers = append(blk.samplers, s)
	}

	return blk, nil
}
