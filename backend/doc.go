// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend defines the consumer side of a program descriptor: the
// Compiler interface, the CompiledProgram it produces, and a registry for
// pluggable compiler implementations.
//
// Compilers are registered via Register, typically from init() functions in
// backend packages, and selected via Get or Default:
//
//	import _ "github.com/gogpu/shaderprog/backend/naga" // WGSL compiler
//
//	c := backend.MustDefault()
//	compiled, err := c.Compile(p)
package backend
