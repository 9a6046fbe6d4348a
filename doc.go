// Package shaderprog assembles GPU shader-program compilation requests.
//
// # Overview
//
// shaderprog is the boundary between a high-level material/shader system and
// backend-specific program compilation. A [Program] collects, per shader
// stage, raw WGSL source or precompiled bytecode, references to uniform and
// sampler interface-block layouts (see the block subpackage), a sampler
// binding table, and diagnostic metadata. A backend compiler (see the
// backend subpackage) reads the finished descriptor and produces a compiled
// program.
//
// # Quick Start
//
//	ub, _ := block.NewUniformBlock("FrameUniforms").
//	    Add("viewProjection", 1, block.Mat4).
//	    Build()
//
//	p := shaderprog.NewProgram().
//	    Diagnostics("lit_opaque", 3).
//	    WithVertexShader(vertWGSL).
//	    WithFragmentShader(fragWGSL).
//	    AddUniformBlock(shaderprog.BindingPerView, ub)
//	if err := p.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
//	compiled, err := backend.MustDefault().Compile(p)
//
// # Ownership
//
// A Program is a single-owner value. Interface-block and binding-map
// references are borrowed, never owned: the caller guarantees they outlive
// the Program. Stage buffers are copied in on set, so the descriptor owns
// its (potentially large) shader byte buffers exclusively; use [Program.Move]
// to hand them to a consumer without duplicating them.
//
// # Architecture
//
// The library is organized into:
//   - Root: Program, Stage, BindingPoint, SamplerBindingMap
//   - block: uniform and sampler interface-block layout descriptors
//   - backend: compiler contract, registry, naga (WGSL to SPIR-V) and
//     wgpu (shader-module upload) backends
//   - cache: sharded LRU cache of compiled programs
package shaderprog
