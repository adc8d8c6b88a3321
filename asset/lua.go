package asset

import (
	"fmt"
	"strings"
	"sync"

	"github.com/glossa-cli/glossa/constant"
	"github.com/glossa-cli/glossa/filesystem"
	"github.com/glossa-cli/glossa/util"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

var bytecodeCache sync.Map

// LuaBuilder builds sequences with a user script defining Sequence(text, mapping).
type LuaBuilder struct {
	name    string
	mapping *Mapping

	mu    sync.Mutex
	state *lua.LState
}

// LoadLuaBuilder executes the script at path and checks that it defines the sequence function.
// mapping may be nil; the script then receives an empty table.
func LoadLuaBuilder(path string, mapping *Mapping) (*LuaBuilder, error) {
	state := lua.NewState()
	libs.Preload(state)

	if err := compileAndLoad(state, path); err != nil {
		state.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}

	name := util.FileStem(path)
	if state.GetGlobal(constant.SequenceFn).Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("function %s is required but not defined in %s", constant.SequenceFn, name)
	}

	return &LuaBuilder{name: name, mapping: mapping, state: state}, nil
}

// compileAndLoad runs the script, reusing compiled bytecode for paths seen before.
func compileAndLoad(L *lua.LState, path string) error {
	if cached, ok := bytecodeCache.Load(path); ok {
		L.Push(L.NewFunctionFromProto(cached.(*lua.FunctionProto)))
		return L.PCall(0, lua.MultRet, nil)
	}

	file, err := filesystem.API().Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, path)
	if err != nil {
		return err
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return err
	}
	bytecodeCache.Store(path, proto)

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}

// Name returns the script name without extension.
func (b *LuaBuilder) Name() string {
	return b.name
}

// Build calls the script's sequence function. Every element of the returned
// array must be a string.
func (b *LuaBuilder) Build(text string) ([]Ref, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	table := b.state.NewTable()
	if b.mapping != nil {
		for k, ref := range b.mapping.Table() {
			table.RawSetString(k, lua.LString(ref))
		}
	}

	err := b.state.CallByParam(lua.P{
		Fn:      b.state.GetGlobal(constant.SequenceFn),
		NRet:    1,
		Protect: true,
	}, lua.LString(strings.TrimSpace(text)), table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.name, err)
	}

	ret := b.state.Get(-1)
	b.state.Pop(1)

	result, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s: %s returned %s, expected table", b.name, constant.SequenceFn, ret.Type())
	}

	refs := make([]Ref, 0, result.Len())
	for i := 1; i <= result.Len(); i++ {
		value, ok := result.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%s: element %d is %s, expected string", b.name, i, result.RawGetInt(i).Type())
		}
		refs = append(refs, Ref(value))
	}
	return refs, nil
}

// Close releases the Lua state.
func (b *LuaBuilder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Close()
}
