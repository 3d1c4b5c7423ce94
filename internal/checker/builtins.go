package checker

import (
	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/types"
)

// Builtins returns a fresh Context seeded with the operator overload sets
// every program can call through BinaryExpr/UnaryExpr, plus the division
// overload that demonstrates throws inference. Host-declaration importers
// (internal/hostimport) install further bindings on top of this base
// before a program's own statements are checked.
func (ck *Checker) Builtins() *Context {
	ctx := NewContext()
	a := ck.Arena

	num := func() types.Idx { return a.NewPrimitive(types.Number) }
	str := func() types.Idx { return a.NewPrimitive(types.String) }
	boolT := func() types.Idx { return a.NewPrimitive(types.Boolean) }

	arith := a.NewFunc([]types.FuncParam{{Type: num()}, {Type: num()}}, num(), nil, false, nil)
	concat := a.NewFunc([]types.FuncParam{{Type: str()}, {Type: str()}}, str(), nil, false, nil)
	ctx.BindValue("+", Generalize(a, ctx, a.NewIntersection(arith, concat)))

	for _, op := range []string{"-", "*"} {
		ctx.BindValue(op, Generalize(a, ctx, a.NewFunc([]types.FuncParam{{Type: num()}, {Type: num()}}, num(), nil, false, nil)))
	}

	divErr := a.NewConstructor("DivideByZeroError")
	ctx.BindAlias("DivideByZeroError", types.Mono(divErr))
	divThrows := divErr
	div := a.NewFunc([]types.FuncParam{{Type: num()}, {Type: num()}}, num(), &divThrows, false, nil)
	ctx.BindValue("/", Generalize(a, ctx, div))

	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		cmp := a.NewFunc([]types.FuncParam{{Type: a.NewPrimitive(types.Unknown)}, {Type: a.NewPrimitive(types.Unknown)}}, boolT(), nil, false, nil)
		ctx.BindValue(op, Generalize(a, ctx, cmp))
	}
	for _, op := range []string{"&&", "||"} {
		logic := a.NewFunc([]types.FuncParam{{Type: boolT()}, {Type: boolT()}}, boolT(), nil, false, nil)
		ctx.BindValue(op, Generalize(a, ctx, logic))
	}

	neg := a.NewFunc([]types.FuncParam{{Type: num()}}, num(), nil, false, nil)
	ctx.BindValue("unary-", Generalize(a, ctx, neg))
	not := a.NewFunc([]types.FuncParam{{Type: boolT()}}, boolT(), nil, false, nil)
	ctx.BindValue("unary!", Generalize(a, ctx, not))

	return ctx
}

func (ck *Checker) inferBinary(ctx *Context, n *ast.BinaryExpr) (types.Idx, error) {
	a := ck.Arena
	lt, err := ck.InferExpr(ctx, n.Left)
	if err != nil {
		return 0, err
	}
	rt, err := ck.InferExpr(ctx, n.Right)
	if err != nil {
		return 0, err
	}
	scheme, ok := ctx.Values[n.Op]
	if !ok {
		return 0, types.NewDiagnostic(types.ErrUnboundValue, "unknown operator "+quote(n.Op))
	}
	opFn := Fresh(a, ctx, instantiateMono(ck, ctx, scheme))
	ret, err := types.UnifyCall(a, ctx, []types.Idx{lt, rt}, nil, opFn)
	if err != nil {
		return 0, err
	}
	if fn, ok := a.Get(a.Prune(opFn)).Kind.(types.Function); ok && fn.Throws != nil {
		ctx.RecordThrow(a, *fn.Throws)
	}
	return ret, nil
}

func (ck *Checker) inferUnary(ctx *Context, n *ast.UnaryExpr) (types.Idx, error) {
	a := ck.Arena
	operandT, err := ck.InferExpr(ctx, n.Operand)
	if err != nil {
		return 0, err
	}
	scheme, ok := ctx.Values["unary"+n.Op]
	if !ok {
		return 0, types.NewDiagnostic(types.ErrUnboundValue, "unknown unary operator "+quote(n.Op))
	}
	opFn := Fresh(a, ctx, instantiateMono(ck, ctx, scheme))
	ret, err := types.UnifyCall(a, ctx, []types.Idx{operandT}, nil, opFn)
	if err != nil {
		return 0, err
	}
	if fn, ok := a.Get(a.Prune(opFn)).Kind.(types.Function); ok && fn.Throws != nil {
		ctx.RecordThrow(a, *fn.Throws)
	}
	return ret, nil
}
