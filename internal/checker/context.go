// Package checker implements the inference and checking driver: it walks
// an ast.Program, allocates arena types for every expression, and applies
// the unification rules in internal/types to decide whether the program
// type-checks. Scope, generalization, and exception-effect bookkeeping
// live here; the type representation itself lives in internal/types.
package checker

import (
	"github.com/nocturne-lang/nocturne/internal/types"
)

// Context is the value/type environment threaded through inference. It
// is immutable from a caller's point of view: entering a new scope
// (a lambda body, a block, a match arm) calls Clone and mutates the
// copy, so a parent scope's bindings are never visible to, or
// clobbered by, a child's.
type Context struct {
	Values     map[string]types.Scheme
	Schemes    map[string]types.Scheme
	NonGeneric map[types.Idx]bool
	IsAsync    bool

	// throws accumulates the set of types the innermost enclosing
	// function body may throw. It is shared (not copied) across Clone,
	// since a block or match arm nested inside a function still throws
	// into that same function's effect; EnterFunction allocates a fresh
	// one for a new lambda body.
	throws *throwsAcc
	// returns accumulates every `return expr` value type reached inside
	// the innermost enclosing function body, alongside throws.
	returns *throwsAcc
}

// throwsAcc is the mutable, per-function-scope exception-effect
// accumulator. Recording is associative, commutative, and idempotent:
// throwing the same type twice, or in either order, leaves the same set.
type throwsAcc struct {
	members []types.Idx
}

func (t *throwsAcc) record(a *types.Arena, idx types.Idx) {
	idx = a.Prune(idx)
	key := types.Print(a, idx)
	for _, m := range t.members {
		if types.Print(a, m) == key {
			return
		}
	}
	t.members = append(t.members, idx)
}

// EnterFunction returns a child scope with its own, empty throws
// accumulator: a nested function's thrown types don't leak into the
// enclosing scope unless that nested function is called.
func (c *Context) EnterFunction(isAsync bool) *Context {
	child := c.Clone()
	child.throws = &throwsAcc{}
	child.returns = &throwsAcc{}
	child.IsAsync = isAsync
	return child
}

// RecordThrow adds idx to the current function scope's thrown-type set.
func (c *Context) RecordThrow(a *types.Arena, idx types.Idx) {
	if c.throws == nil {
		c.throws = &throwsAcc{}
	}
	c.throws.record(a, idx)
}

// CollectThrows returns the union of everything recorded via RecordThrow
// in this function scope, or nil if nothing was thrown.
func (c *Context) CollectThrows(a *types.Arena) *types.Idx {
	if c.throws == nil || len(c.throws.members) == 0 {
		return nil
	}
	u := a.NewUnion(c.throws.members...)
	return &u
}

// RecordReturn adds idx to the current function scope's returned-value
// type set (see ast.ReturnStmt).
func (c *Context) RecordReturn(a *types.Arena, idx types.Idx) {
	if c.returns == nil {
		c.returns = &throwsAcc{}
	}
	c.returns.record(a, idx)
}

// CollectReturns returns the union of every `return` value type recorded
// in this function scope, or nil if none were.
func (c *Context) CollectReturns(a *types.Arena) *types.Idx {
	if c.returns == nil || len(c.returns.members) == 0 {
		return nil
	}
	u := a.NewUnion(c.returns.members...)
	return &u
}

// NewContext returns an empty context seeded with no bindings; callers
// typically start from Builtins() instead.
func NewContext() *Context {
	return &Context{
		Values:     map[string]types.Scheme{},
		Schemes:    map[string]types.Scheme{},
		NonGeneric: map[types.Idx]bool{},
	}
}

// Clone returns a scope with its own copies of c's binding maps: further
// inserts into the clone never affect c. Lookups still see every binding
// c had at clone time. The throws and returns accumulators are shared
// with c, not copied.
func (c *Context) Clone() *Context {
	values := make(map[string]types.Scheme, len(c.Values))
	for k, v := range c.Values {
		values[k] = v
	}
	schemes := make(map[string]types.Scheme, len(c.Schemes))
	for k, v := range c.Schemes {
		schemes[k] = v
	}
	nonGeneric := make(map[types.Idx]bool, len(c.NonGeneric))
	for k, v := range c.NonGeneric {
		nonGeneric[k] = v
	}
	return &Context{
		Values: values, Schemes: schemes, NonGeneric: nonGeneric, IsAsync: c.IsAsync,
		throws: c.throws, returns: c.returns,
	}
}

// BindValue installs name -> scheme into the value environment.
func (c *Context) BindValue(name string, scheme types.Scheme) {
	c.Values[name] = scheme
}

// BindMono installs name as a non-generic binding to idx, and marks idx
// (and everything reachable through it at generalization time) as
// non-generic, the same way a lambda parameter must not be generalized
// within its own body.
func (c *Context) BindMono(name string, idx types.Idx) {
	c.Values[name] = types.Mono(idx)
	c.NonGeneric[idx] = true
}

// BindAlias installs a named type alias.
func (c *Context) BindAlias(name string, scheme types.Scheme) {
	c.Schemes[name] = scheme
}

// ResolveAlias implements types.AliasResolver.
func (c *Context) ResolveAlias(name string) (types.Scheme, bool) {
	s, ok := c.Schemes[name]
	return s, ok
}
