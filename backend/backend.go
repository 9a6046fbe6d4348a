// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shaderprog"
)

// Common backend errors.
var (
	// ErrCompilerNotAvailable is returned when no requested compiler is registered.
	ErrCompilerNotAvailable = errors.New("backend: compiler not available")

	// ErrNilProgram is returned when Compile is called with a nil descriptor.
	ErrNilProgram = errors.New("backend: nil program")

	// ErrMissingStage is returned when a required shader stage has no bytes.
	// The descriptor itself has no notion of required stages; compilers do.
	ErrMissingStage = errors.New("backend: missing required shader stage")
)

// Compiler turns a finished program descriptor into a compiled program.
//
// Compilers treat the descriptor as read-only. A descriptor carrying an
// assembly error (Program.Err != nil) is rejected without compiling.
type Compiler interface {
	// Name returns the compiler identifier (e.g., "naga").
	Name() string

	// Compile compiles all present shader stages of p.
	Compile(p *shaderprog.Program) (*CompiledProgram, error)

	// Close releases any resources held by the compiler.
	// The compiler should not be used after Close is called.
	Close()
}

// CompiledProgram is the backend-independent result of compiling a program
// descriptor: one SPIR-V module per stage plus the diagnostic metadata
// carried over from the descriptor.
type CompiledProgram struct {
	// Name is the diagnostic material name from the descriptor.
	Name string

	// Variant is the shader permutation key from the descriptor.
	Variant uint8

	// Stages holds the compiled SPIR-V words per stage, indexed by
	// shaderprog.Stage.
	Stages [shaderprog.StageCount][]uint32

	// SamplerCount is the number of populated sampler block slots.
	SamplerCount int

	// TargetFormat is the texture format of the render target this program
	// is expected to draw into. Defaults to RGBA8Unorm; see CompileForSurface.
	TargetFormat gputypes.TextureFormat
}

// String returns a short description for logging.
func (c *CompiledProgram) String() string {
	return fmt.Sprintf("CompiledProgram{name=%q variant=%d format=%v}",
		c.Name, c.Variant, c.TargetFormat)
}

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g., a gogpu.App) implements DeviceHandle and passes it to
// CompileForSurface so compiled programs are stamped with the surface format
// they will render into. DeviceHandle is an alias for
// gpucontext.DeviceProvider, keeping full compatibility with the gpucontext
// ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// CompileForSurface compiles p with c and stamps the result with the
// surface format of the host device. When handle is nil or reports an
// undefined format, the result keeps the RGBA8Unorm default.
func CompileForSurface(c Compiler, handle DeviceHandle, p *shaderprog.Program) (*CompiledProgram, error) {
	compiled, err := c.Compile(p)
	if err != nil {
		return nil, err
	}
	if handle != nil {
		if format := handle.SurfaceFormat(); format != gputypes.TextureFormatUndefined {
			compiled.TargetFormat = format
		}
	}
	return compiled, nil
}

// CheckStages verifies that every required stage of p has bytes set.
// Compilers call this before doing any work so a malformed descriptor fails
// fast with ErrMissingStage instead of a confusing mid-compile error.
func CheckStages(p *shaderprog.Program, required ...shaderprog.Stage) error {
	for _, stage := range required {
		if len(p.Shader(stage)) == 0 {
			return fmt.Errorf("%w: %s (program %q)", ErrMissingStage, stage, p.Name())
		}
	}
	return nil
}
