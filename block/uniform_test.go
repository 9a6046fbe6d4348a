// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package block

import (
	"errors"
	"testing"
)

func TestUniformBlockStd140Offsets(t *testing.T) {
	// A layout that exercises the tricky std140 cases: a scalar before a
	// vec3 (padded to 16), a vec3 followed by a scalar that fits in its
	// padding, and matrices.
	ub, err := NewUniformBlock("FrameUniforms").
		Add("time", 1, Float).
		Add("lightDir", 1, Float3).
		Add("exposure", 1, Float).
		Add("viewProjection", 1, Mat4).
		Add("normalMatrix", 1, Mat3).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tests := []struct {
		field string
		want  uint32
	}{
		{"time", 0},
		{"lightDir", 16}, // vec3 aligns to 16
		{"exposure", 28}, // packs into the vec3's trailing pad
		{"viewProjection", 32},
		{"normalMatrix", 96},
	}
	for _, tt := range tests {
		offset, ok := ub.FieldOffset(tt.field)
		if !ok {
			t.Errorf("FieldOffset(%q) not found", tt.field)
			continue
		}
		if offset != tt.want {
			t.Errorf("FieldOffset(%q) = %d, want %d", tt.field, offset, tt.want)
		}
	}

	// mat3 ends at 96+48=144, already a 16-byte multiple.
	if ub.Size() != 144 {
		t.Errorf("Size() = %d, want 144", ub.Size())
	}
}

func TestUniformBlockArrayStride(t *testing.T) {
	ub, err := NewUniformBlock("Bones").
		Add("weights", 4, Float). // scalar array: stride rounds up to 16
		Add("tail", 1, Float).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	w, ok := ub.Field("weights")
	if !ok {
		t.Fatal("Field(weights) not found")
	}
	if w.Stride != 16 {
		t.Errorf("array stride = %d, want 16", w.Stride)
	}
	// The array occupies 4*16 bytes including trailing pad, so the next
	// member cannot pack into the last element's padding.
	offset, _ := ub.FieldOffset("tail")
	if offset != 64 {
		t.Errorf("FieldOffset(tail) = %d, want 64", offset)
	}
}

func TestUniformBlockBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder *UniformBlockBuilder
		want    error
	}{
		{
			"empty block name",
			NewUniformBlock("").Add("a", 1, Float),
			ErrEmptyName,
		},
		{
			"empty field name",
			NewUniformBlock("U").Add("", 1, Float),
			ErrEmptyName,
		},
		{
			"duplicate field",
			NewUniformBlock("U").Add("a", 1, Float).Add("a", 1, Float4),
			ErrDuplicateField,
		},
		{
			"unknown type",
			NewUniformBlock("U").Add("a", 1, UniformType(200)),
			ErrUnknownType,
		},
		{
			"zero count",
			NewUniformBlock("U").Add("a", 0, Float),
			ErrInvalidCount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUniformTypeString(t *testing.T) {
	if got := Float3.String(); got != "vec3" {
		t.Errorf("Float3.String() = %q, want %q", got, "vec3")
	}
	if got := Mat4.String(); got != "mat4" {
		t.Errorf("Mat4.String() = %q, want %q", got, "mat4")
	}
	if got := UniformType(200).String(); got != "invalid" {
		t.Errorf("UniformType(200).String() = %q, want %q", got, "invalid")
	}
}
