package checker

import (
	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/types"
)

// ResolveType turns a syntactic TypeExpr into an arena Idx. Named
// references are left as Constructor nodes pointing at the alias name;
// Unify resolves them against Context.Schemes lazily, the same way a
// function signature can mention a type alias declared later in the
// same file.
func (ck *Checker) ResolveType(c *Context, te ast.TypeExpr) types.Idx {
	a := ck.Arena
	switch t := te.(type) {
	case *ast.NameTypeExpr:
		if isPrimitiveName(t.Name) {
			return a.NewPrimitive(t.Name)
		}
		args := make([]types.Idx, len(t.Args))
		for i, arg := range t.Args {
			args[i] = ck.ResolveType(c, arg)
		}
		return a.NewConstructor(t.Name, args...)

	case *ast.LiteralTypeExpr:
		switch t.Kind {
		case ast.LitNumber:
			return a.NewLiteralNumber(t.Text)
		case ast.LitString:
			return a.NewLiteralString(t.Text)
		case ast.LitBoolean:
			return a.NewLiteralBoolean(t.Bool)
		}

	case *ast.RestTypeExpr:
		return a.NewRest(ck.ResolveType(c, t.Inner))

	case *ast.TupleTypeExpr:
		elems := make([]types.Idx, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = ck.ResolveType(c, e)
		}
		return a.NewTuple(elems...)

	case *ast.UnionTypeExpr:
		members := make([]types.Idx, len(t.Members))
		for i, m := range t.Members {
			members[i] = ck.ResolveType(c, m)
		}
		return a.NewUnion(members...)

	case *ast.IntersectionTypeExpr:
		members := make([]types.Idx, len(t.Members))
		for i, m := range t.Members {
			members[i] = ck.ResolveType(c, m)
		}
		return a.NewIntersection(members...)

	case *ast.FuncTypeExpr:
		params := make([]types.FuncParam, len(t.Params))
		for i, p := range t.Params {
			params[i] = types.FuncParam{Type: ck.ResolveType(c, p.Type), Optional: p.Optional}
		}
		var throws *types.Idx
		if t.Throws != nil {
			th := ck.ResolveType(c, t.Throws)
			throws = &th
		}
		return a.NewFunc(params, ck.ResolveType(c, t.Ret), throws, false, resolveTypeParams(ck, c, t.TypeParams))

	case *ast.ObjectTypeExpr:
		elems := make([]types.ObjElem, 0, len(t.Elements))
		for _, el := range t.Elements {
			switch e := el.(type) {
			case ast.PropTypeElem:
				elems = append(elems, types.Prop{Name: e.Name, Type: ck.ResolveType(c, e.Type), Optional: e.Optional, Mutable: e.Mutable})
			case ast.MethodTypeElem:
				params := make([]types.FuncParam, len(e.Params))
				for i, p := range e.Params {
					params[i] = types.FuncParam{Type: ck.ResolveType(c, p.Type), Optional: p.Optional}
				}
				elems = append(elems, types.Method{Name: e.Name, Params: params, Ret: ck.ResolveType(c, e.Ret), TypeParams: resolveTypeParams(ck, c, e.TypeParams)})
			case ast.IndexTypeElem:
				elems = append(elems, types.Index{KeyType: ck.ResolveType(c, e.KeyType), ValueType: ck.ResolveType(c, e.ValueType), Mutable: e.Mutable})
			case ast.MappedTypeElem:
				return ck.resolveMapped(c, e)
			}
		}
		return a.NewObject(elems...)

	case *ast.KeyOfTypeExpr:
		return a.Insert(types.Utility{Op: types.OpKeyOf, Operand: ck.ResolveType(c, t.Operand)})

	case *ast.IndexAccessTypeExpr:
		return a.Insert(types.Utility{
			Op: types.OpIndexAccess, Object: ck.ResolveType(c, t.Object), Index: ck.ResolveType(c, t.Index),
		})

	case *ast.ConditionalTypeExpr:
		return a.Insert(types.Utility{
			Op:          types.OpConditional,
			CheckType:   ck.ResolveType(c, t.Check),
			ExtendsType: ck.ResolveType(c, t.Extends),
			True:        ck.ResolveType(c, t.True),
			False:       ck.ResolveType(c, t.False),
		})

	case *ast.MutableTypeExpr:
		return a.Insert(types.Utility{Op: types.OpMutable, Operand: ck.ResolveType(c, t.Operand)})
	}
	return a.NewVar()
}

func (ck *Checker) resolveMapped(c *Context, e ast.MappedTypeElem) types.Idx {
	a := ck.Arena
	source := ck.ResolveType(c, e.Source)
	value := ck.ResolveType(c, e.Value)
	u := types.Utility{Op: types.OpMapped, TargetName: e.TargetName, Source: source, Value: value}
	if e.Optional != nil {
		u.Optional = types.MappedChange(e.Optional)
	}
	if e.Mutable != nil {
		u.Mutable = types.MappedChange(e.Mutable)
	}
	if e.Check != nil && e.Extends != nil {
		check := ck.ResolveType(c, e.Check)
		extends := ck.ResolveType(c, e.Extends)
		u.Check, u.Extends = &check, &extends
	}
	return a.Insert(u)
}

func resolveTypeParams(ck *Checker, c *Context, tps []ast.TypeParamExpr) []types.TypeParam {
	if len(tps) == 0 {
		return nil
	}
	out := make([]types.TypeParam, len(tps))
	for i, tp := range tps {
		var constraint, def *types.Idx
		if tp.Constraint != nil {
			ct := ck.ResolveType(c, tp.Constraint)
			constraint = &ct
		}
		if tp.Default != nil {
			dt := ck.ResolveType(c, tp.Default)
			def = &dt
		}
		out[i] = types.TypeParam{Name: tp.Name, Constraint: constraint, Default: def}
	}
	return out
}

func isPrimitiveName(name string) bool {
	switch name {
	case types.Number, types.String, types.Boolean, types.Symbol,
		types.Null, types.Undefined, types.Never, types.Unknown:
		return true
	}
	return false
}
