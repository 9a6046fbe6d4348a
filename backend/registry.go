// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"sync"
)

// Registered compiler names.
const (
	// CompilerNaga is the pure-Go WGSL to SPIR-V compiler.
	CompilerNaga = "naga"
)

// CompilerFactory creates a new compiler instance.
type CompilerFactory func() Compiler

// registry holds registered compilers.
var (
	registryMu sync.RWMutex
	compilers  = make(map[string]CompilerFactory)
	// Priority order for compiler selection (first available wins).
	compilerPriority = []string{CompilerNaga}
)

// Register registers a compiler factory with the given name.
// This is typically called from init() functions in backend packages.
// If a compiler with the same name is already registered, it is replaced.
func Register(name string, factory CompilerFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	compilers[name] = factory
}

// Unregister removes a compiler from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(compilers, name)
}

// Available returns a list of registered compiler names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(compilers))
	for name := range compilers {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a compiler with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := compilers[name]
	return ok
}

// Get returns a compiler instance by name.
// Returns nil if the compiler is not registered.
func Get(name string) Compiler {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := compilers[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available compiler based on priority.
// Returns nil if no compilers are registered.
func Default() Compiler {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range compilerPriority {
		if factory, ok := compilers[name]; ok {
			if c := factory(); c != nil {
				return c
			}
		}
	}

	// Fallback: return first available
	for _, factory := range compilers {
		if c := factory(); c != nil {
			return c
		}
	}

	return nil
}

// MustDefault returns the default compiler or panics.
func MustDefault() Compiler {
	c := Default()
	if c == nil {
		panic("backend: no compiler available")
	}
	return c
}
