// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package naga provides a pure-Go shader compiler backend that turns a
// program descriptor's WGSL stage sources into SPIR-V.
//
// Importing the package registers the compiler under backend.CompilerNaga:
//
//	import _ "github.com/gogpu/shaderprog/backend/naga"
package naga

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/backend"
)

func init() {
	backend.Register(backend.CompilerNaga, func() backend.Compiler {
		return New()
	})
}

// Compiler compiles WGSL stage sources to SPIR-V using gogpu/naga.
// Both the vertex and the fragment stage are required.
type Compiler struct {
	opts naga.CompileOptions
}

// New creates a compiler with naga's default options (SPIR-V 1.3, IR
// validation enabled).
func New() *Compiler {
	return NewWithOptions(naga.DefaultOptions())
}

// NewWithOptions creates a compiler with explicit compile options.
func NewWithOptions(opts naga.CompileOptions) *Compiler {
	return &Compiler{opts: opts}
}

// Name returns backend.CompilerNaga.
func (c *Compiler) Name() string { return backend.CompilerNaga }

// Compile compiles every stage of p to SPIR-V. It fails with the
// descriptor's own error if assembly recorded one, and with
// backend.ErrMissingStage if a stage has no source.
func (c *Compiler) Compile(p *shaderprog.Program) (*backend.CompiledProgram, error) {
	if p == nil {
		return nil, backend.ErrNilProgram
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("naga: rejecting malformed descriptor: %w", err)
	}
	if err := backend.CheckStages(p, shaderprog.StageVertex, shaderprog.StageFragment); err != nil {
		return nil, err
	}

	compiled := &backend.CompiledProgram{
		Name:         p.Name(),
		Variant:      p.Variant(),
		TargetFormat: gputypes.TextureFormatRGBA8Unorm,
	}
	for _, sb := range p.SamplerInterfaceBlocks() {
		if sb != nil {
			compiled.SamplerCount++
		}
	}

	logger := shaderprog.Logger()
	for stage := shaderprog.Stage(0); stage < shaderprog.StageCount; stage++ {
		source := p.Shader(stage)
		spirv, err := naga.CompileWithOptions(string(source), c.opts)
		if err != nil {
			return nil, fmt.Errorf("naga: %s stage of %q: %w", stage, p.Name(), err)
		}
		compiled.Stages[stage] = spirvWords(spirv)

		logger.Debug("naga: compiled stage",
			slog.String("program", p.Name()),
			slog.Int("variant", int(p.Variant())),
			slog.String("stage", stage.String()),
			slog.Int("source_bytes", len(source)),
			slog.Int("spirv_words", len(compiled.Stages[stage])))
	}

	return compiled, nil
}

// Close releases compiler resources. The naga compiler holds none.
func (c *Compiler) Close() {}

// ValidateSource parses and validates one stage's WGSL source without
// generating code. It reports the first validation error, if any.
func ValidateSource(source []byte) error {
	ast, err := naga.Parse(string(source))
	if err != nil {
		return fmt.Errorf("naga: parse: %w", err)
	}
	module, err := naga.Lower(ast)
	if err != nil {
		return fmt.Errorf("naga: lower: %w", err)
	}
	errs, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("naga: validate: %w", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("naga: validate: %s", errs[0].Error())
	}
	return nil
}

// spirvWords converts SPIR-V bytes to little-endian 32-bit words, the form
// shader-module APIs consume.
func spirvWords(spirv []byte) []uint32 {
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	return words
}
