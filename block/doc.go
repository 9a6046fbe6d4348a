// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package block describes the shader-visible resource groups a program
// binds: uniform interface blocks and sampler interface blocks.
//
// Blocks are built once by the material system, via the fluent builders
// [NewUniformBlock] and [NewSamplerBlock], and then referenced read-only by
// every shaderprog.Program compiled from that material. A built block is
// immutable.
//
// Uniform block layout follows the std140 rules, which every backend this
// library targets can consume directly.
package block
