// Package script provides an oracle whose transition function is a
// JavaScript function running in Goja, which is a Go implementation
// of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
//
// Writing a throwaway automaton in a few lines of JavaScript is often
// easier than wiring one up in Go or YAML, especially when a
// transition depends on comparing the lookahead against the current
// symbol.
package script

import (
	"context"
	"fmt"

	"github.com/Comcast/litmus/core"

	"github.com/dop251/goja"
)

// Oracle runs a compiled JavaScript transition function.
//
// The source must evaluate to a function
//
//	function (state, first, second, secondValid) { ... }
//
// where state is the queried state id and first/second are integer
// codepoints (first is 0 at the end of the input).  The function
// returns an object with properties "next", "second", "consumed",
// and "enabled"; absent properties default to zero values, except
// that a missing "next" is an error.
//
// The engine issues queries sequentially, and this type counts on
// that: one Goja runtime, no locking.
type Oracle struct {
	roles core.Roles
	vm    *goja.Runtime
	fn    goja.Callable
}

// New compiles src and wraps it as an Oracle with the given roles.
func New(src string, roles core.Roles) (*Oracle, error) {
	vm := goja.New()
	v, err := vm.RunString(src)
	if err != nil {
		return nil, err
	}
	fn, is := goja.AssertFunction(v)
	if !is {
		return nil, fmt.Errorf("script does not evaluate to a function")
	}
	return &Oracle{
		roles: roles,
		vm:    vm,
		fn:    fn,
	}, nil
}

// Automaton pairs the scripted oracle with its roles.
func (o *Oracle) Automaton() *core.Automaton {
	return &core.Automaton{
		Oracle: o,
		Roles:  o.roles,
	}
}

// Query implements core.Oracle by calling the JavaScript function.
func (o *Oracle) Query(ctx context.Context, q core.Query) (core.TransitionResult, error) {
	var zero core.TransitionResult

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	v, err := o.fn(goja.Undefined(),
		o.vm.ToValue(int(q.State)),
		o.vm.ToValue(int(q.First)),
		o.vm.ToValue(int(q.Second)),
		o.vm.ToValue(q.SecondValid))
	if err != nil {
		return zero, err
	}

	if goja.IsUndefined(v) || goja.IsNull(v) {
		return zero, fmt.Errorf("script returned %s", v)
	}
	obj := v.ToObject(o.vm)

	next := obj.Get("next")
	if next == nil || goja.IsUndefined(next) {
		return zero, fmt.Errorf("script answer has no 'next'")
	}

	res := core.TransitionResult{
		Next: core.StateID(next.ToInteger()),
	}
	if x := obj.Get("second"); x != nil && !goja.IsUndefined(x) {
		res.Second = core.StateID(x.ToInteger())
	}
	if x := obj.Get("consumed"); x != nil && !goja.IsUndefined(x) {
		res.Consumed = x.ToBoolean()
	}
	if x := obj.Get("enabled"); x != nil && !goja.IsUndefined(x) {
		res.Enabled = x.ToBoolean()
	}

	return res, nil
}
