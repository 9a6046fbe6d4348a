// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"slices"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	defer Unregister("test")

	Register("test", func() Compiler {
		return &fakeCompiler{name: "test"}
	})

	if !IsRegistered("test") {
		t.Error("IsRegistered(test) should be true after Register")
	}
	if !slices.Contains(Available(), "test") {
		t.Errorf("Available() = %v, should contain %q", Available(), "test")
	}

	c := Get("test")
	if c == nil {
		t.Fatal("Get(test) returned nil")
	}
	if c.Name() != "test" {
		t.Errorf("Name() = %q, want %q", c.Name(), "test")
	}
}

func TestGetUnregistered(t *testing.T) {
	if c := Get("does-not-exist"); c != nil {
		t.Errorf("Get of an unregistered name = %v, want nil", c)
	}
	if IsRegistered("does-not-exist") {
		t.Error("IsRegistered of an unregistered name should be false")
	}
}

func TestUnregister(t *testing.T) {
	Register("temp", func() Compiler { return &fakeCompiler{name: "temp"} })
	Unregister("temp")

	if IsRegistered("temp") {
		t.Error("IsRegistered(temp) should be false after Unregister")
	}
}

func TestDefaultPrefersPriorityOrder(t *testing.T) {
	defer Unregister(CompilerNaga)
	defer Unregister("other")

	Register("other", func() Compiler { return &fakeCompiler{name: "other"} })
	Register(CompilerNaga, func() Compiler { return &fakeCompiler{name: CompilerNaga} })

	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	if c.Name() != CompilerNaga {
		t.Errorf("Default().Name() = %q, want %q", c.Name(), CompilerNaga)
	}
}

func TestDefaultFallsBackToAnyRegistered(t *testing.T) {
	defer Unregister("only")

	Register("only", func() Compiler { return &fakeCompiler{name: "only"} })

	c := Default()
	if c == nil {
		t.Fatal("Default() returned nil")
	}
	if c.Name() != "only" {
		t.Errorf("Default().Name() = %q, want %q", c.Name(), "only")
	}
}
