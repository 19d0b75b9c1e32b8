package script

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/namespace"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Runtime is a single Lua state shared by every player script.
// Scripts publish their player tables with define(name, table).
type Runtime struct {
	mu     sync.Mutex
	state  *lua.LState
	ns     *namespace.Namespace
	protos sync.Map
	closed bool
}

// NewRuntime creates a Lua state whose define() writes into ns.
func NewRuntime(ns *namespace.Namespace) *Runtime {
	r := &Runtime{
		state: lua.NewState(),
		ns:    ns,
	}

	libs.Preload(r.state)
	r.state.SetGlobal(constant.DefineFn, r.state.NewFunction(r.define))
	return r
}

func (r *Runtime) define(L *lua.LState) int {
	name := L.CheckString(1)
	table := L.CheckTable(2)

	r.ns.Define(name, &Implementation{Name: name, rt: r, table: table})
	log.Component("script").WithField("symbol", name).Debug("symbol defined")
	return 0
}

// Exec runs body under the given chunk name. Compiled prototypes are reused per name.
func (r *Runtime) Exec(name string, body []byte) error {
	proto, err := r.compile(name, body)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.state.Push(r.state.NewFunctionFromProto(proto))
	return r.state.PCall(0, lua.MultRet, nil)
}

func (r *Runtime) compile(name string, body []byte) (*lua.FunctionProto, error) {
	if cached, ok := r.protos.Load(name); ok {
		return cached.(*lua.FunctionProto), nil
	}

	chunk, err := parse.Parse(bytes.NewReader(body), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	r.protos.Store(name, proto)
	return proto, nil
}

// Close releases the Lua state. Later calls are no-ops.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.state.Close()
}

// Implementation is a player table published by a script.
type Implementation struct {
	Name  string
	rt    *Runtime
	table *lua.LTable
}

// Has reports whether the table carries a function under fn.
func (i *Implementation) Has(fn string) bool {
	i.rt.mu.Lock()
	defer i.rt.mu.Unlock()
	return i.table.RawGetString(fn).Type() == lua.LTFunction
}

// Call invokes table:fn(args...) and returns its first result.
func (i *Implementation) Call(fn string, args ...lua.LValue) (lua.LValue, error) {
	i.rt.mu.Lock()
	defer i.rt.mu.Unlock()

	luaFn := i.table.RawGetString(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%s.%s: %w", i.Name, fn, ErrNoFunction)
	}

	L := i.rt.state
	err := L.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, append([]lua.LValue{i.table}, args...)...)
	if err != nil {
		return nil, err
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Field returns a raw field of the table.
func (i *Implementation) Field(name string) lua.LValue {
	i.rt.mu.Lock()
	defer i.rt.mu.Unlock()
	return i.table.RawGetString(name)
}
