package checker

import (
	"fmt"

	"github.com/nocturne-lang/nocturne/internal/types"
)

// IsGeneric reports whether idx (already pruned) is free to be
// generalized in the current scope: it is generic unless it, or
// something it transitively occurs in among c.NonGeneric, has been
// pinned down by an enclosing lambda parameter or let-binding.
func (c *Context) IsGeneric(a *types.Arena, idx types.Idx) bool {
	idx = a.Prune(idx)
	for ng := range c.NonGeneric {
		if occursAmong(a, idx, a.Prune(ng)) {
			return false
		}
	}
	return true
}

func occursAmong(a *types.Arena, v, t types.Idx) bool {
	t = a.Prune(t)
	if t == v {
		return true
	}
	switch k := a.Get(t).Kind.(type) {
	case types.Constructor:
		for _, arg := range k.Args {
			if occursAmong(a, v, arg) {
				return true
			}
		}
	case types.Function:
		for _, p := range k.Params {
			if occursAmong(a, v, p.Type) {
				return true
			}
		}
		return occursAmong(a, v, k.Ret)
	case types.Object:
		for _, e := range k.Elems {
			if p, ok := e.(types.Prop); ok && occursAmong(a, v, p.Type) {
				return true
			}
		}
	}
	return false
}

// Fresh copies idx, duplicating every generic type variable reachable
// from it and sharing every non-generic one. This is what turns a
// polymorphic let-binding's stored type back into a usable, independent
// type at each call site.
func Fresh(a *types.Arena, c *Context, idx types.Idx) types.Idx {
	mapping := map[types.Idx]types.Idx{}
	var walk func(types.Idx) types.Idx
	walk = func(idx types.Idx) types.Idx {
		idx = a.Prune(idx)
		switch k := a.Get(idx).Kind.(type) {
		case types.Variable:
			if !c.IsGeneric(a, idx) {
				return idx
			}
			if fresh, ok := mapping[idx]; ok {
				return fresh
			}
			fresh := a.NewVar()
			mapping[idx] = fresh
			return fresh
		case types.Literal:
			return idx
		case types.Constructor:
			args := make([]types.Idx, len(k.Args))
			for i, arg := range k.Args {
				args[i] = walk(arg)
			}
			return a.Insert(types.Constructor{Name: k.Name, Args: args})
		case types.Function:
			params := make([]types.FuncParam, len(k.Params))
			for i, p := range k.Params {
				params[i] = types.FuncParam{Pattern: p.Pattern, Type: walk(p.Type), Optional: p.Optional}
			}
			var throws *types.Idx
			if k.Throws != nil {
				t := walk(*k.Throws)
				throws = &t
			}
			return a.NewFunc(params, walk(k.Ret), throws, k.IsAsync, k.TypeParams)
		case types.Object:
			elems := make([]types.ObjElem, len(k.Elems))
			for i, e := range k.Elems {
				switch el := e.(type) {
				case types.Prop:
					el.Type = walk(el.Type)
					elems[i] = el
				case types.Method:
					params := make([]types.FuncParam, len(el.Params))
					for j, p := range el.Params {
						params[j] = types.FuncParam{Pattern: p.Pattern, Type: walk(p.Type), Optional: p.Optional}
					}
					el.Params = params
					el.Ret = walk(el.Ret)
					elems[i] = el
				case types.Index:
					el.ValueType = walk(el.ValueType)
					elems[i] = el
				}
			}
			return a.NewObject(elems...)
		case types.Rest:
			return a.NewRest(walk(k.Arg))
		default:
			return idx
		}
	}
	return walk(idx)
}

// InstantiateScheme implements types.AliasResolver: it copies scheme.Body
// with each named type parameter substituted for the matching Idx in
// args (or a fresh variable, for a partially- or un-applied alias).
func (c *Context) InstantiateScheme(a *types.Arena, scheme types.Scheme, args []types.Idx) types.Idx {
	mapping := map[string]types.Idx{}
	for i, tp := range scheme.TypeParams {
		if i < len(args) {
			mapping[tp.Name] = args[i]
		} else if tp.Default != nil {
			mapping[tp.Name] = *tp.Default
		} else {
			mapping[tp.Name] = a.NewVar()
		}
	}
	var walk func(types.Idx) types.Idx
	walk = func(idx types.Idx) types.Idx {
		idx = a.Prune(idx)
		switch k := a.Get(idx).Kind.(type) {
		case types.Constructor:
			if repl, ok := mapping[k.Name]; ok && len(k.Args) == 0 {
				return repl
			}
			args := make([]types.Idx, len(k.Args))
			for i, arg := range k.Args {
				args[i] = walk(arg)
			}
			return a.Insert(types.Constructor{Name: k.Name, Args: args})
		case types.Function:
			params := make([]types.FuncParam, len(k.Params))
			for i, p := range k.Params {
				params[i] = types.FuncParam{Pattern: p.Pattern, Type: walk(p.Type), Optional: p.Optional}
			}
			return a.NewFunc(params, walk(k.Ret), k.Throws, k.IsAsync, k.TypeParams)
		case types.Object:
			elems := make([]types.ObjElem, len(k.Elems))
			for i, e := range k.Elems {
				switch el := e.(type) {
				case types.Prop:
					el.Type = walk(el.Type)
					elems[i] = el
				default:
					elems[i] = e
				}
			}
			return a.NewObject(elems...)
		default:
			return idx
		}
	}
	return walk(scheme.Body)
}

// Generalize produces a Scheme from idx by quantifying over every
// generic type variable reachable from it in the current scope (i.e.
// everything IsGeneric still reports true for). Used when a `let`
// binding's initializer type is recorded for later polymorphic reuse.
func Generalize(a *types.Arena, c *Context, idx types.Idx) types.Scheme {
	seen := map[types.Idx]bool{}
	var names []types.TypeParam
	var walk func(types.Idx)
	walk = func(idx types.Idx) {
		idx = a.Prune(idx)
		if seen[idx] {
			return
		}
		seen[idx] = true
		switch k := a.Get(idx).Kind.(type) {
		case types.Variable:
			if c.IsGeneric(a, idx) {
				names = append(names, types.TypeParam{Name: varName(idx)})
			}
		case types.Constructor:
			for _, arg := range k.Args {
				walk(arg)
			}
		case types.Function:
			for _, p := range k.Params {
				walk(p.Type)
			}
			walk(k.Ret)
		case types.Object:
			for _, e := range k.Elems {
				if p, ok := e.(types.Prop); ok {
					walk(p.Type)
				}
			}
		case types.Rest:
			walk(k.Arg)
		}
	}
	walk(idx)
	return types.Scheme{TypeParams: names, Body: idx}
}

func varName(idx types.Idx) string {
	n := int(idx)
	letter := rune('a' + n%26)
	if cycle := n / 26; cycle > 0 {
		return fmt.Sprintf("%c%d", letter, cycle)
	}
	return string(letter)
}
