// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu uploads compiled programs to a gogpu/wgpu HAL device as
// shader modules, ready for pipeline creation.
package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shaderprog"
	"github.com/gogpu/shaderprog/backend"
)

// Package errors for module upload.
var (
	// ErrNilDevice is returned when LoadModules is called without a device.
	ErrNilDevice = errors.New("wgpu: nil device")

	// ErrEmptyStage is returned when a compiled program has no SPIR-V for a
	// required stage.
	ErrEmptyStage = errors.New("wgpu: compiled program has empty stage")
)

// ModuleSet holds one HAL shader module per stage of a compiled program.
// The set owns its modules; call Destroy when pipelines no longer need them.
type ModuleSet struct {
	device  hal.Device
	modules [shaderprog.StageCount]hal.ShaderModule
}

// LoadModules creates a shader module on device for every stage of cp.
// Module labels are "name/stage" so GPU debuggers can attribute them.
// On any failure, modules created so far are destroyed before returning.
func LoadModules(device hal.Device, cp *backend.CompiledProgram) (*ModuleSet, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	set := &ModuleSet{device: device}
	for stage := shaderprog.Stage(0); stage < shaderprog.StageCount; stage++ {
		if len(cp.Stages[stage]) == 0 {
			set.Destroy()
			return nil, fmt.Errorf("%w: %s (program %q)", ErrEmptyStage, stage, cp.Name)
		}

		module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label: fmt.Sprintf("%s/%s", cp.Name, stage),
			Source: hal.ShaderSource{
				SPIRV: cp.Stages[stage],
			},
		})
		if err != nil {
			set.Destroy()
			return nil, fmt.Errorf("wgpu: %s module of %q: %w", stage, cp.Name, err)
		}
		set.modules[stage] = module
	}

	return set, nil
}

// Module returns the shader module for one stage, or nil for an invalid or
// never-loaded stage.
func (s *ModuleSet) Module(stage shaderprog.Stage) hal.ShaderModule {
	if !stage.IsValid() {
		return nil
	}
	return s.modules[stage]
}

// Destroy releases all modules in the set. Safe to call more than once.
func (s *ModuleSet) Destroy() {
	if s.device == nil {
		return
	}
	for i, m := range s.modules {
		if m != nil {
			s.device.DestroyShaderModule(m)
			s.modules[i] = nil
		}
	}
}
