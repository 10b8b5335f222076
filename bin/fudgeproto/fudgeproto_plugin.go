// Copyright (c) 2026 Vrai Stacey
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package main

import (
	"context"
	"fmt"
	"os"

	wasm "github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/vrai/SimpleFudgeProto/encoding/fpschema"
)

const (
	pluginAllocate = "fudgeproto_codegen_allocate"
	pluginGenerate = "fudgeproto_codegen_generate"

	// 1 GiB of 64 KiB pages.
	pluginMemoryLimitPages = 16384
)

// plugin is an instantiated code generation backend.
type plugin struct {
	runtime    wasm.Runtime
	module     api.Module
	allocateFn api.Function
	generateFn api.Function
}

func loadPlugin(ctx context.Context, path string) (*plugin, error) {
	pluginBin, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newPlugin(ctx, pluginBin)
}

func newPlugin(ctx context.Context, pluginBin []byte) (*plugin, error) {
	runtimeConfig := wasm.NewRuntimeConfigInterpreter()
	runtimeConfig = runtimeConfig.WithMemoryLimitPages(pluginMemoryLimitPages)
	runtime := wasm.NewRuntimeWithConfig(ctx, runtimeConfig)

	p, err := instantiatePlugin(ctx, runtime, pluginBin)
	if err != nil {
		runtime.Close(ctx)
		return nil, err
	}
	return p, nil
}

func instantiatePlugin(ctx context.Context, runtime wasm.Runtime, pluginBin []byte) (*plugin, error) {
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		return nil, err
	}
	compiled, err := runtime.CompileModule(ctx, pluginBin)
	if err != nil {
		return nil, fmt.Errorf("Failed to compile codegen plugin: %w", err)
	}
	moduleConfig := wasm.NewModuleConfig().WithStartFunctions("_initialize")
	module, err := runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("Failed to instantiate codegen plugin: %w", err)
	}

	p := &plugin{
		runtime:    runtime,
		module:     module,
		allocateFn: module.ExportedFunction(pluginAllocate),
		generateFn: module.ExportedFunction(pluginGenerate),
	}
	if p.allocateFn == nil {
		return nil, fmt.Errorf("Codegen plugin does not export %s", pluginAllocate)
	}
	if p.generateFn == nil {
		return nil, fmt.Errorf("Codegen plugin does not export %s", pluginGenerate)
	}
	if module.Memory() == nil {
		return nil, fmt.Errorf("Codegen plugin does not export its memory")
	}
	return p, nil
}

func (p *plugin) close(ctx context.Context) {
	p.runtime.Close(ctx)
}

func (p *plugin) alloc(ctx context.Context, size int) (uint32, error) {
	results, err := p.allocateFn.Call(ctx, uint64(size))
	if err != nil {
		return 0, err
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, fmt.Errorf("Codegen plugin failed to allocate %d bytes", size)
	}
	return ptr, nil
}

// generate passes the request to the plugin and decodes its response. The
// plugin stores a pointer to the framed response at a host-allocated
// address.
func (p *plugin) generate(ctx context.Context, request []byte) (*fpschema.CodegenResponse, error) {
	mem := p.module.Memory()

	requestPtr, err := p.alloc(ctx, len(request))
	if err != nil {
		return nil, err
	}
	if !mem.Write(requestPtr, request) {
		return nil, fmt.Errorf("Failed to write codegen request")
	}
	responsePtrPtr, err := p.alloc(ctx, 4)
	if err != nil {
		return nil, err
	}

	results, err := p.generateFn.Call(
		ctx,
		uint64(requestPtr),
		uint64(len(request)),
		uint64(responsePtrPtr),
	)
	if err != nil {
		return nil, err
	}
	rc := uint8(results[0])

	responsePtr, ok := mem.ReadUint32Le(responsePtrPtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message pointer")
	}
	responseLen, ok := mem.ReadUint32Le(responsePtr)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message length")
	}
	responseBuf, ok := mem.Read(responsePtr, 4+responseLen)
	if !ok {
		return nil, fmt.Errorf("Failed to read response message")
	}
	response, err := fpschema.UnmarshalResponse(responseBuf)
	if err != nil {
		return nil, err
	}
	if rc != 0 && response.Error == "" {
		response.Error = fmt.Sprintf("Codegen plugin failed with status %d", rc)
	}
	return response, nil
}
