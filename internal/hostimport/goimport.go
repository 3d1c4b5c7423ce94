package hostimport

import (
	"fmt"

	gotypes "go/types"

	"golang.org/x/tools/go/packages"

	"github.com/nocturne-lang/nocturne/internal/checker"
	ntypes "github.com/nocturne-lang/nocturne/internal/types"
)

// ImportGoPackage loads dep.Pkg with go/packages, converts every
// declaration named by dep.Bind (or every exported declaration, when
// BindAll is set) into a ntypes.Scheme, and installs each under ctx with
// the name dep resolves it to. When strict is true, a declaration that
// converts to a bare `unknown` (an unnamed interface type such as
// interface{}, or a go/types shape the converter has no case for) is
// rejected instead of silently installed. A named interface type converts
// to an empty object and is not rejected.
func ImportGoPackage(a *ntypes.Arena, ctx *checker.Context, dep Dep, strict bool) error {
	cfg := &packages.Config{Mode: packages.NeedTypes | packages.NeedTypesInfo | packages.NeedName}
	pkgs, err := packages.Load(cfg, dep.Pkg)
	if err != nil {
		return fmt.Errorf("loading Go package %s: %w", dep.Pkg, err)
	}
	if len(pkgs) == 0 || pkgs[0].Types == nil {
		return fmt.Errorf("loading Go package %s: no types information", dep.Pkg)
	}
	if len(pkgs[0].Errors) > 0 {
		return fmt.Errorf("loading Go package %s: %s", dep.Pkg, pkgs[0].Errors[0])
	}
	scope := pkgs[0].Types.Scope()

	conv := &goConverter{a: a}

	if dep.BindAll {
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}
			if err := bindGoObject(conv, ctx, obj, dep.As+capitalize(name), strict); err != nil {
				return err
			}
		}
		return nil
	}

	for _, spec := range dep.Bind {
		switch {
		case spec.Func != "":
			obj := scope.Lookup(spec.Func)
			if obj == nil {
				return fmt.Errorf("%s: no such exported func %s", dep.Pkg, spec.Func)
			}
			if err := bindGoObject(conv, ctx, obj, bindName(spec.As, spec.Func), strict); err != nil {
				return err
			}
		case spec.Type != "":
			obj := scope.Lookup(spec.Type)
			if obj == nil {
				return fmt.Errorf("%s: no such exported type %s", dep.Pkg, spec.Type)
			}
			if err := bindGoObject(conv, ctx, obj, bindName(spec.As, spec.Type), strict); err != nil {
				return err
			}
		case spec.Const != "":
			obj := scope.Lookup(spec.Const)
			if obj == nil {
				return fmt.Errorf("%s: no such exported const %s", dep.Pkg, spec.Const)
			}
			if err := bindGoObject(conv, ctx, obj, bindName(spec.As, spec.Const), strict); err != nil {
				return err
			}
		}
	}
	return nil
}

func bindName(as, fallback string) string {
	if as != "" {
		return as
	}
	return fallback
}

func bindGoObject(conv *goConverter, ctx *checker.Context, obj gotypes.Object, name string, strict bool) error {
	idx := conv.convert(obj.Type())
	if strict {
		if c, ok := conv.a.Get(conv.a.Prune(idx)).Kind.(ntypes.Constructor); ok && c.Name == ntypes.Unknown {
			return fmt.Errorf("%s: %s converts to unknown and strict mode rejects unknown-typed host declarations", obj.Pkg().Path(), name)
		}
	}
	ctx.BindValue(name, ntypes.Mono(idx))
	return nil
}

// goConverter maps go/types.Type values to ntypes.Idx, memoizing named
// types so a recursive struct doesn't recurse forever.
type goConverter struct {
	a     *ntypes.Arena
	named map[string]ntypes.Idx
}

func (c *goConverter) convert(t gotypes.Type) ntypes.Idx {
	if c.named == nil {
		c.named = map[string]ntypes.Idx{}
	}
	switch tt := t.(type) {
	case *gotypes.Basic:
		return c.convertBasic(tt)
	case *gotypes.Pointer:
		return c.convert(tt.Elem())
	case *gotypes.Slice:
		return c.a.NewArray(c.convert(tt.Elem()))
	case *gotypes.Array:
		return c.a.NewArray(c.convert(tt.Elem()))
	case *gotypes.Named:
		key := tt.String()
		if idx, ok := c.named[key]; ok {
			return idx
		}
		placeholder := c.a.NewVar()
		c.named[key] = placeholder
		idx := c.convertNamed(tt)
		c.named[key] = idx
		return idx
	case *gotypes.Struct:
		return c.convertStruct(tt)
	case *gotypes.Signature:
		return c.convertSignature(tt)
	case *gotypes.Interface:
		return c.a.NewPrimitive(ntypes.Unknown)
	case *gotypes.Map:
		return c.a.NewObject(ntypes.Index{KeyType: c.convert(tt.Key()), ValueType: c.convert(tt.Elem())})
	default:
		return c.a.NewPrimitive(ntypes.Unknown)
	}
}

func (c *goConverter) convertBasic(b *gotypes.Basic) ntypes.Idx {
	switch {
	case b.Info()&gotypes.IsBoolean != 0:
		return c.a.NewPrimitive(ntypes.Boolean)
	case b.Info()&gotypes.IsString != 0:
		return c.a.NewPrimitive(ntypes.String)
	case b.Info()&(gotypes.IsInteger|gotypes.IsFloat) != 0:
		return c.a.NewPrimitive(ntypes.Number)
	default:
		return c.a.NewPrimitive(ntypes.Unknown)
	}
}

func (c *goConverter) convertNamed(n *gotypes.Named) ntypes.Idx {
	var elems []ntypes.ObjElem
	if st, ok := n.Underlying().(*gotypes.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if !f.Exported() {
				continue
			}
			elems = append(elems, ntypes.Prop{Name: f.Name(), Type: c.convert(f.Type())})
		}
	}
	for i := 0; i < n.NumMethods(); i++ {
		m := n.Method(i)
		if !m.Exported() {
			continue
		}
		sig := m.Type().(*gotypes.Signature)
		params, ret, _ := c.convertSignatureParts(sig)
		elems = append(elems, ntypes.Method{Name: m.Name(), Params: params, Ret: ret})
	}
	if len(elems) == 0 {
		if basic, ok := n.Underlying().(*gotypes.Basic); ok {
			return c.convertBasic(basic)
		}
	}
	return c.a.NewObject(elems...)
}

func (c *goConverter) convertStruct(st *gotypes.Struct) ntypes.Idx {
	var elems []ntypes.ObjElem
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() {
			continue
		}
		elems = append(elems, ntypes.Prop{Name: f.Name(), Type: c.convert(f.Type())})
	}
	return c.a.NewObject(elems...)
}

// convertSignature converts a Go function type to a Nocturne Function,
// translating a trailing `(T, error)` result pair into a Throws effect
// rather than a second return value, the same mapping the proto importer
// uses for gRPC's `(resp, error)` methods.
func (c *goConverter) convertSignature(sig *gotypes.Signature) ntypes.Idx {
	params, ret, throws := c.convertSignatureParts(sig)
	return c.a.NewFunc(params, ret, throws, false, nil)
}

func (c *goConverter) convertSignatureParts(sig *gotypes.Signature) ([]ntypes.FuncParam, ntypes.Idx, *ntypes.Idx) {
	tuple := sig.Params()
	params := make([]ntypes.FuncParam, 0, tuple.Len())
	for i := 0; i < tuple.Len(); i++ {
		p := tuple.At(i)
		params = append(params, ntypes.FuncParam{Pattern: p.Name(), Type: c.convert(p.Type())})
	}

	results := sig.Results()
	var ret ntypes.Idx = c.a.NewPrimitive(ntypes.Undefined)
	var throws *ntypes.Idx
	n := results.Len()
	if n > 0 {
		last := results.At(n - 1)
		if isErrorType(last.Type()) {
			th := c.a.NewConstructor("GoError")
			throws = &th
			n--
		}
	}
	switch n {
	case 0:
		// leave ret as undefined
	case 1:
		ret = c.convert(results.At(0).Type())
	default:
		elems := make([]ntypes.Idx, n)
		for i := 0; i < n; i++ {
			elems[i] = c.convert(results.At(i).Type())
		}
		ret = c.a.NewTuple(elems...)
	}
	return params, ret, throws
}

func isErrorType(t gotypes.Type) bool {
	named, ok := t.(*gotypes.Named)
	if !ok {
		return false
	}
	return named.Obj() != nil && named.Obj().Name() == "error" && named.Obj().Pkg() == nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
