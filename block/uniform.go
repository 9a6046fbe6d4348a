// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package block

import (
	"errors"
	"fmt"
)

// Package errors for block construction.
var (
	// ErrDuplicateField is returned by Build when two fields share a name.
	ErrDuplicateField = errors.New("block: duplicate field name")

	// ErrUnknownType is returned by Build for an out-of-range field type.
	ErrUnknownType = errors.New("block: unknown field type")

	// ErrEmptyName is returned by Build for a block or field with no name.
	ErrEmptyName = errors.New("block: empty name")

	// ErrInvalidCount is returned by Build for a non-positive array count.
	ErrInvalidCount = errors.New("block: invalid array count")
)

// UniformType is the data type of one uniform block field.
type UniformType uint8

const (
	Bool UniformType = iota
	Bool2
	Bool3
	Bool4
	Float
	Float2
	Float3
	Float4
	Int
	Int2
	Int3
	Int4
	UInt
	UInt2
	UInt3
	UInt4
	Mat3
	Mat4

	uniformTypeCount
)

// Precision is a hint for backends whose shading languages carry precision
// qualifiers (GLSL ES). Backends without the concept ignore it.
type Precision uint8

const (
	PrecisionDefault Precision = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// std140Layout gives the base alignment and size in bytes of each uniform
// type under the std140 rules. Matrices are laid out as arrays of column
// vectors, so a mat3 column has vec3 size with vec4 alignment.
var std140Layout = [uniformTypeCount]struct {
	align uint32
	size  uint32
}{
	Bool:   {4, 4},
	Bool2:  {8, 8},
	Bool3:  {16, 12},
	Bool4:  {16, 16},
	Float:  {4, 4},
	Float2: {8, 8},
	Float3: {16, 12},
	Float4: {16, 16},
	Int:    {4, 4},
	Int2:   {8, 8},
	Int3:   {16, 12},
	Int4:   {16, 16},
	UInt:   {4, 4},
	UInt2:  {8, 8},
	UInt3:  {16, 12},
	UInt4:  {16, 16},
	Mat3:   {16, 48},
	Mat4:   {16, 64},
}

// String returns the GLSL-style spelling of the type.
func (t UniformType) String() string {
	names := [uniformTypeCount]string{
		"bool", "bvec2", "bvec3", "bvec4",
		"float", "vec2", "vec3", "vec4",
		"int", "ivec2", "ivec3", "ivec4",
		"uint", "uvec2", "uvec3", "uvec4",
		"mat3", "mat4",
	}
	if t >= uniformTypeCount {
		return "invalid"
	}
	return names[t]
}

// FieldInfo describes one field of a built uniform block.
type FieldInfo struct {
	// Name is the field name as declared in shader source.
	Name string

	// Offset is the field's byte offset from the start of the block.
	Offset uint32

	// Stride is the byte distance between consecutive array elements.
	// For non-array fields it equals the element size.
	Stride uint32

	// Count is the array element count; 1 for non-array fields.
	Count int

	// Type is the element data type.
	Type UniformType

	// Precision is the declared precision hint.
	Precision Precision
}

// UniformInterfaceBlock is the immutable std140 layout of a named group of
// uniforms. Programs reference blocks without owning them.
type UniformInterfaceBlock struct {
	name   string
	fields []FieldInfo
	byName map[string]int
	size   uint32
}

// Name returns the block name as declared in shader source.
func (b *UniformInterfaceBlock) Name() string { return b.name }

// Size returns the total block size in bytes, padded to a 16-byte multiple.
func (b *UniformInterfaceBlock) Size() uint32 { return b.size }

// Fields returns the block's fields in declaration order.
// The returned slice must not be modified.
func (b *UniformInterfaceBlock) Fields() []FieldInfo { return b.fields }

// Field returns the layout of a field by name. ok is false for unknown names.
func (b *UniformInterfaceBlock) Field(name string) (f FieldInfo, ok bool) {
	i, ok := b.byName[name]
	if !ok {
		return FieldInfo{}, false
	}
	return b.fields[i], true
}

// FieldOffset returns the byte offset of a field by name.
// ok is false for unknown names.
func (b *UniformInterfaceBlock) FieldOffset(name string) (offset uint32, ok bool) {
	f, ok := b.Field(name)
	return f.Offset, ok
}

// UniformBlockBuilder constructs a UniformInterfaceBlock. Add calls record
// fields in declaration order; Build computes the std140 layout.
type UniformBlockBuilder struct {
	name   string
	fields []FieldInfo
}

// NewUniformBlock creates a builder for a uniform block with the given name.
func NewUniformBlock(name string) *UniformBlockBuilder {
	return &UniformBlockBuilder{name: name}
}

// Add appends a field with default precision. count is the array element
// count; use 1 for a non-array field.
func (b *UniformBlockBuilder) Add(name string, count int, typ UniformType) *UniformBlockBuilder {
	return b.AddWithPrecision(name, count, typ, PrecisionDefault)
}

// AddWithPrecision appends a field with an explicit precision hint.
func (b *UniformBlockBuilder) AddWithPrecision(name string, count int, typ UniformType, prec Precision) *UniformBlockBuilder {
	b.fields = append(b.fields, FieldInfo{
		Name:      name,
		Count:     count,
		Type:      typ,
		Precision: prec,
	})
	return b
}

// Build computes the std140 layout and returns the immutable block.
// The builder may be discarded afterwards.
func (b *UniformBlockBuilder) Build() (*UniformInterfaceBlock, error) {
	if b.name == "" {
		return nil, fmt.Errorf("%w: uniform block", ErrEmptyName)
	}

	blk := &UniformInterfaceBlock{
		name:   b.name,
		fields: make([]FieldInfo, 0, len(b.fields)),
		byName: make(map[string]int, len(b.fields)),
	}

	var offset uint32
	for _, f := range b.fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field in block %q", ErrEmptyName, b.name)
		}
		if f.Type >= uniformTypeCount {
			return nil, fmt.Errorf("%w: field %q", ErrUnknownType, f.Name)
		}
		if f.Count <= 0 {
			return nil, fmt.Errorf("%w: field %q count %d", ErrInvalidCount, f.Name, f.Count)
		}
		if _, dup := blk.byName[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q in block %q", ErrDuplicateField, f.Name, b.name)
		}

		layout := std140Layout[f.Type]
		align, stride := layout.align, layout.size
		if f.Count > 1 {
			// std140 rounds array element alignment and stride up to vec4.
			align = alignUp(align, 16)
			stride = alignUp(stride, 16)
		}

		f.Offset = alignUp(offset, align)
		f.Stride = stride
		if f.Count > 1 {
			// An array occupies stride*count bytes; its trailing pad is
			// part of the array, so the next member cannot pack into it.
			offset = f.Offset + stride*uint32(f.Count)
		} else {
			offset = f.Offset + layout.size
		}

		blk.byName[f.Name] = len(blk.fields)
		blk.fields = append(blk.fields, f)
	}

	blk.size = alignUp(offset, 16)
	return blk, nil
}

// alignUp rounds v up to the next multiple of a. a must be a power of two.
func alignUp(v, a uint32) uint32 {
	return (v + a - 1) &^ (a - 1)
}
