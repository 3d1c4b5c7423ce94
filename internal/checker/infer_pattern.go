package checker

import (
	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/types"
)

// bindPattern unifies scrutinee against the shape p describes and binds
// every name p introduces into ctx as a monomorphic value.
func (ck *Checker) bindPattern(ctx *Context, p ast.Pattern, scrutinee types.Idx) error {
	a := ck.Arena
	switch pat := p.(type) {
	case *ast.IdentPattern:
		ctx.BindMono(pat.Name, scrutinee)
		return nil

	case *ast.WildcardPattern:
		return nil

	case *ast.LiteralPattern:
		var lit types.Idx
		switch pat.Kind {
		case ast.LitNumber:
			lit = a.NewLiteralNumber(pat.Text)
		case ast.LitString:
			lit = a.NewLiteralString(pat.Text)
		case ast.LitBoolean:
			lit = a.NewLiteralBoolean(pat.Bool)
		}
		return types.Unify(a, ctx, lit, scrutinee)

	case *ast.RestPattern:
		if pat.Inner != nil {
			return ck.bindPattern(ctx, pat.Inner, scrutinee)
		}
		return nil

	case *ast.TuplePattern:
		elems := make([]types.Idx, len(pat.Elements))
		for i, el := range pat.Elements {
			if rest, ok := el.(*ast.RestPattern); ok {
				restVar := a.NewVar()
				elems[i] = a.NewRest(restVar)
				if rest.Inner != nil {
					if err := ck.bindPattern(ctx, rest.Inner, a.NewArray(restVar)); err != nil {
						return err
					}
				}
				continue
			}
			elems[i] = a.NewVar()
		}
		tupleT := a.NewTuple(elems...)
		if err := types.Unify(a, ctx, scrutinee, tupleT); err != nil {
			return err
		}
		for i, el := range pat.Elements {
			if _, ok := el.(*ast.RestPattern); ok {
				continue
			}
			if err := ck.bindPattern(ctx, el, elems[i]); err != nil {
				return err
			}
		}
		return nil

	case *ast.ObjectPattern:
		elems := make([]types.ObjElem, len(pat.Props))
		propVars := make([]types.Idx, len(pat.Props))
		for i, prop := range pat.Props {
			v := a.NewVar()
			propVars[i] = v
			elems[i] = types.Prop{Name: prop.Name, Type: v}
		}
		objT := a.NewObject(elems...)
		if err := types.Unify(a, ctx, scrutinee, objT); err != nil {
			return err
		}
		for i, prop := range pat.Props {
			if err := ck.bindPattern(ctx, prop.Pattern, propVars[i]); err != nil {
				return err
			}
		}
		return nil

	case *ast.TypeTestPattern:
		narrowed := ck.ResolveType(ctx, pat.Type)
		ctx.BindMono(pat.Name, narrowed)
		return nil
	}
	return types.NewDiagnostic(types.ErrTypeMismatch, "unsupported pattern")
}

// isCatchAllPattern reports whether p matches any scrutinee value
// unconditionally: a wildcard, or an irrefutable binding that names the
// whole value rather than testing its shape.
func isCatchAllPattern(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.WildcardPattern, *ast.IdentPattern:
		return true
	}
	return false
}

func (ck *Checker) inferMatch(ctx *Context, n *ast.MatchExpr) (types.Idx, error) {
	a := ck.Arena
	scrutinee, err := ck.InferExpr(ctx, n.Scrutinee)
	if err != nil {
		return 0, err
	}

	var results []types.Idx
	for i, arm := range n.Arms {
		if isCatchAllPattern(arm.Pattern) && arm.Guard == nil && i != len(n.Arms)-1 {
			return 0, types.NewDiagnostic(types.ErrUnreachableArm, "catch-all pattern must be the last arm")
		}
		armCtx := ctx.Clone()
		if err := ck.bindPattern(armCtx, arm.Pattern, scrutinee); err != nil {
			return 0, err
		}
		if arm.Guard != nil {
			guardT, err := ck.InferExpr(armCtx, arm.Guard)
			if err != nil {
				return 0, err
			}
			if err := types.Unify(a, armCtx, guardT, a.NewPrimitive(types.Boolean)); err != nil {
				return 0, err
			}
		}
		bodyT, err := ck.InferExpr(armCtx, arm.Body)
		if err != nil {
			return 0, err
		}
		results = append(results, bodyT)
	}
	if len(results) == 0 {
		return 0, types.NewDiagnostic(types.ErrNonExhaustiveMatch, "match has no arms")
	}
	return a.NewUnion(results...), nil
}
