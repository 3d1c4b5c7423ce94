package checker

import (
	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/types"
)

func (ck *Checker) inferCall(ctx *Context, n *ast.CallExpr) (types.Idx, error) {
	a := ck.Arena
	callee, err := ck.InferExpr(ctx, n.Callee)
	if err != nil {
		return 0, err
	}
	args := make([]types.Idx, len(n.Args))
	for i, arg := range n.Args {
		t, err := ck.InferExpr(ctx, arg)
		if err != nil {
			return 0, err
		}
		args[i] = t
	}
	var typeArgs []types.Idx
	for _, ta := range n.TypeArgs {
		typeArgs = append(typeArgs, ck.ResolveType(ctx, ta))
	}

	ret, err := types.UnifyCall(a, ctx, args, typeArgs, callee)
	if err != nil {
		return 0, err
	}

	// If the callee can throw, calling it propagates that effect into
	// the current function scope.
	calleePruned := a.Prune(callee)
	if fn, ok := a.Get(calleePruned).Kind.(types.Function); ok && fn.Throws != nil {
		ctx.RecordThrow(a, *fn.Throws)
	}
	return ret, nil
}

func (ck *Checker) inferLambda(ctx *Context, n *ast.LambdaExpr) (types.Idx, error) {
	a := ck.Arena
	inner := ctx.EnterFunction(n.IsAsync)

	params := make([]types.FuncParam, len(n.Params))
	for i, p := range n.Params {
		var t types.Idx
		if p.Type != nil {
			t = ck.ResolveType(inner, p.Type)
		} else {
			t = a.NewVar()
		}
		if err := ck.bindPattern(inner, p.Pattern, t); err != nil {
			return 0, err
		}
		params[i] = types.FuncParam{Pattern: patternName(p.Pattern), Type: t, Optional: p.Optional}
	}

	bodyT, err := ck.InferExpr(inner, n.Body)
	if err != nil {
		return 0, err
	}

	retT := bodyT
	if returns := inner.CollectReturns(a); returns != nil {
		retT = a.NewUnion(bodyT, *returns)
	}
	if n.IsAsync {
		retT = a.NewPromise(retT)
	}
	if n.ReturnType != nil {
		ann := ck.ResolveType(inner, n.ReturnType)
		if n.IsAsync {
			if ctor, ok := a.Get(a.Prune(ann)).Kind.(types.Constructor); !ok || ctor.Name != types.PromiseName {
				return 0, types.NewDiagnostic(types.ErrUnawaitedPromise,
					"async function must declare a Promise return type, got "+types.Print(a, ann))
			}
		}
		if err := types.Unify(a, inner, retT, ann); err != nil {
			return 0, err
		}
		retT = ann
	}

	var throws *types.Idx
	if n.Throws != nil {
		th := ck.ResolveType(inner, n.Throws)
		if collected := inner.CollectThrows(a); collected != nil {
			if err := types.Unify(a, inner, *collected, th); err != nil {
				return 0, err
			}
		}
		throws = &th
	} else {
		throws = inner.CollectThrows(a)
	}

	return a.NewFunc(params, retT, throws, n.IsAsync, nil), nil
}

func patternName(p ast.Pattern) string {
	if id, ok := p.(*ast.IdentPattern); ok {
		return id.Name
	}
	return ""
}
