package shaderprog

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/shaderprog/block"
)

// Program is a shader-program compilation request under assembly.
//
// It accumulates per-stage shader source (or precompiled bytecode),
// interface-block references indexed by binding point, a sampler binding
// table, and diagnostic metadata. All setters return the same *Program so
// calls can be chained; call order determines final state (last write wins).
//
// Block and binding-map references are borrowed: the Program reads them but
// never owns them, and the caller must keep them alive for at least as long
// as the Program. Stage buffers, in contrast, are copied in on set and owned
// by the Program.
//
// A Program has exactly one owner at a time and is not safe for concurrent
// mutation. After it is handed to a backend compiler it must be treated as
// read-only.
//
// Example:
//
//	p := shaderprog.NewProgram().
//	    Diagnostics("lit_opaque", variant).
//	    WithVertexShader(vs).
//	    WithFragmentShader(fs).
//	    AddUniformBlock(shaderprog.BindingPerView, frameUniforms).
//	    AddSamplerBlock(shaderprog.BindingPerMaterial, materialSamplers).
//	    WithSamplerBindings(bindings)
//	if err := p.Err(); err != nil {
//	    return err
//	}
type Program struct {
	uniformBlocks   [BindingPointCount]*block.UniformInterfaceBlock
	samplerBlocks   [BindingPointCount]*block.SamplerInterfaceBlock
	samplerBindings *SamplerBindingMap
	shaderSource    [StageCount][]byte
	samplerCount    int
	name            string
	variant         uint8
	err             error
}

// NewProgram creates an empty program descriptor.
func NewProgram() *Program {
	return &Program{}
}

// Diagnostics sets the material name and variant key. Both are metadata for
// logging and debugging only; they do not affect compilation.
func (p *Program) Diagnostics(name string, variant uint8) *Program {
	p.name = name
	p.variant = variant
	return p
}

// SetShader sets the shader buffer for one stage, replacing any prior
// content for that stage. The bytes are copied; the caller may reuse src
// after the call. The format of src (WGSL source, SPIR-V, ...) is opaque to
// the descriptor and interpreted by the backend compiler.
//
// An invalid stage records ErrInvalidStage on the program and leaves all
// buffers unchanged.
func (p *Program) SetShader(stage Stage, src []byte) *Program {
	if !stage.IsValid() {
		p.fail(fmt.Errorf("%w: %d", ErrInvalidStage, stage))
		return p
	}
	buf := p.shaderSource[stage]
	p.shaderSource[stage] = append(buf[:0], src...)
	return p
}

// WithVertexShader sets the vertex stage buffer. See SetShader.
func (p *Program) WithVertexShader(src []byte) *Program {
	return p.SetShader(StageVertex, src)
}

// WithFragmentShader sets the fragment stage buffer. See SetShader.
func (p *Program) WithFragmentShader(src []byte) *Program {
	return p.SetShader(StageFragment, src)
}

// AddUniformBlock stores a borrowed uniform interface-block reference at the
// given binding point, replacing any previous occupant. A nil block is a
// no-op. An out-of-range index records ErrInvalidBinding on the program and
// leaves every slot unchanged.
func (p *Program) AddUniformBlock(index BindingPoint, ib *block.UniformInterfaceBlock) *Program {
	if !index.IsValid() {
		p.fail(fmt.Errorf("%w: uniform block index %d", ErrInvalidBinding, index))
		return p
	}
	if ib == nil {
		return p
	}
	p.uniformBlocks[index] = ib
	return p
}

// AddSamplerBlock stores a borrowed sampler interface-block reference at the
// given binding point. The sampler count is incremented only when the slot
// transitions from empty to occupied; replacing an already-occupied slot is
// allowed and leaves the count unchanged, so HasSamplers never reverts to
// false. A nil block is a no-op. An out-of-range index records
// ErrInvalidBinding on the program and leaves every slot unchanged.
func (p *Program) AddSamplerBlock(index BindingPoint, sb *block.SamplerInterfaceBlock) *Program {
	if !index.IsValid() {
		p.fail(fmt.Errorf("%w: sampler block index %d", ErrInvalidBinding, index))
		return p
	}
	if sb == nil {
		return p
	}
	if p.samplerBlocks[index] == nil {
		p.samplerCount++
	}
	p.samplerBlocks[index] = sb
	return p
}

// WithSamplerBindings stores the borrowed sampler binding map, replacing any
// previous one.
func (p *Program) WithSamplerBindings(m *SamplerBindingMap) *Program {
	p.samplerBindings = m
	return p
}

// ShaderSource returns the per-stage shader buffers, indexed by Stage.
// A stage that was never set has a nil buffer. The returned slices alias the
// program's buffers and must not be modified.
func (p *Program) ShaderSource() [StageCount][]byte {
	return p.shaderSource
}

// Shader returns the buffer for one stage, or nil if the stage was never
// set or is invalid. The returned slice aliases the program's buffer and
// must not be modified.
func (p *Program) Shader(stage Stage) []byte {
	if !stage.IsValid() {
		return nil
	}
	return p.shaderSource[stage]
}

// UniformInterfaceBlocks returns the uniform block references, indexed by
// binding point. Empty slots are nil.
func (p *Program) UniformInterfaceBlocks() [BindingPointCount]*block.UniformInterfaceBlock {
	return p.uniformBlocks
}

// SamplerInterfaceBlocks returns the sampler block references, indexed by
// binding point. Empty slots are nil.
func (p *Program) SamplerInterfaceBlocks() [BindingPointCount]*block.SamplerInterfaceBlock {
	return p.samplerBlocks
}

// SamplerBindings returns the sampler binding map, or nil if none was set.
func (p *Program) SamplerBindings() *SamplerBindingMap {
	return p.samplerBindings
}

// Name returns the diagnostic material name.
func (p *Program) Name() string {
	return p.name
}

// Variant returns the shader permutation key.
func (p *Program) Variant() uint8 {
	return p.variant
}

// HasSamplers reports whether at least one sampler block slot has been
// populated.
func (p *Program) HasSamplers() bool {
	return p.samplerCount > 0
}

// Err returns the first assembly error recorded by a setter, or nil.
// Backends refuse to compile a program whose Err is non-nil, so a misuse
// detected mid-chain cannot slip through to a failed compile downstream.
func (p *Program) Err() error {
	return p.err
}

// Move transfers the program's entire state into a freshly returned
// descriptor and resets the receiver to its default-constructed state:
// empty buffers, all reference slots cleared, zero sampler count, default
// name and variant. Stage buffers change hands without being copied.
//
// Move keeps the one-live-owner discipline explicit when a descriptor is
// handed from the material system to a backend.
func (p *Program) Move() *Program {
	q := &Program{}
	*q, *p = *p, Program{}
	return q
}

// String returns a fixed debug dump of the program's diagnostic state.
// It is intended for logging and is not part of the functional contract.
func (p *Program) String() string {
	return fmt.Sprintf("Program{name=%q variant=%d vertex=%t fragment=%t samplers=%d}",
		p.name, p.variant,
		len(p.shaderSource[StageVertex]) > 0,
		len(p.shaderSource[StageFragment]) > 0,
		p.samplerCount)
}

// fail records the first assembly error and logs it. Later errors are
// dropped so Err always reports the original misuse.
func (p *Program) fail(err error) {
	Logger().Warn("shaderprog: descriptor assembly error",
		slog.String("program", p.name),
		slog.Any("error", err))
	if p.err == nil {
		p.err = err
	}
}
