package checker

import (
	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/types"
)

// InferExpr infers the type of e under ctx, returning the arena Idx of
// its type or a *types.Diagnostic describing why it doesn't type-check.
func (ck *Checker) InferExpr(ctx *Context, e ast.Expr) (types.Idx, error) {
	a := ck.Arena
	switch n := e.(type) {
	case *ast.Ident:
		scheme, ok := ctx.Values[n.Name]
		if !ok {
			return 0, types.NewDiagnostic(types.ErrUnboundValue, "unbound value "+quote(n.Name))
		}
		return Fresh(a, ctx, instantiateMono(ck, ctx, scheme)), nil

	case *ast.Literal:
		switch n.Kind {
		case ast.LitNumber:
			return a.NewLiteralNumber(n.Text), nil
		case ast.LitString:
			return a.NewLiteralString(n.Text), nil
		case ast.LitBoolean:
			return a.NewLiteralBoolean(n.Bool), nil
		}

	case *ast.NullLiteral:
		return a.NewPrimitive(types.Null), nil

	case *ast.UndefinedLiteral:
		return a.NewPrimitive(types.Undefined), nil

	case *ast.TupleLiteral:
		elems := make([]types.Idx, len(n.Elements))
		for i, el := range n.Elements {
			t, err := ck.InferExpr(ctx, el)
			if err != nil {
				return 0, err
			}
			elems[i] = t
		}
		return a.NewTuple(elems...), nil

	case *ast.ObjectLiteral:
		elems := make([]types.ObjElem, len(n.Props))
		for i, p := range n.Props {
			t, err := ck.InferExpr(ctx, p.Value)
			if err != nil {
				return 0, err
			}
			elems[i] = types.Prop{Name: p.Name, Type: t}
		}
		return a.NewObject(elems...), nil

	case *ast.MemberExpr:
		obj, err := ck.InferExpr(ctx, n.Object)
		if err != nil {
			return 0, err
		}
		key := a.NewLiteralString(n.Property)
		idx := a.Insert(types.Utility{Op: types.OpIndexAccess, Object: obj, Index: key})
		return types.ExpandUtility(a, ctx, idx)

	case *ast.IndexExpr:
		obj, err := ck.InferExpr(ctx, n.Object)
		if err != nil {
			return 0, err
		}
		index, err := ck.InferExpr(ctx, n.Index)
		if err != nil {
			return 0, err
		}
		idx := a.Insert(types.Utility{Op: types.OpIndexAccess, Object: obj, Index: index})
		return types.ExpandUtility(a, ctx, idx)

	case *ast.CallExpr:
		return ck.inferCall(ctx, n)

	case *ast.LambdaExpr:
		return ck.inferLambda(ctx, n)

	case *ast.IfExpr:
		return ck.inferIf(ctx, n)

	case *ast.MatchExpr:
		return ck.inferMatch(ctx, n)

	case *ast.TryExpr:
		return ck.inferTry(ctx, n)

	case *ast.ThrowExpr:
		t, err := ck.InferExpr(ctx, n.Value)
		if err != nil {
			return 0, err
		}
		ctx.RecordThrow(a, t)
		return a.NewPrimitive(types.Never), nil

	case *ast.AwaitExpr:
		if !ctx.IsAsync {
			return 0, types.NewDiagnostic(types.ErrAwaitOutsideAsync, "await used outside an async function")
		}
		t, err := ck.InferExpr(ctx, n.Value)
		if err != nil {
			return 0, err
		}
		t = a.Prune(t)
		if c, ok := a.Get(t).Kind.(types.Constructor); ok && c.Name == types.PromiseName {
			return c.Args[0], nil
		}
		return t, nil

	case *ast.BinaryExpr:
		return ck.inferBinary(ctx, n)

	case *ast.UnaryExpr:
		return ck.inferUnary(ctx, n)

	case *ast.BlockExpr:
		return ck.inferBlock(ctx, n)
	}
	return 0, types.NewDiagnostic(types.ErrTypeMismatch, "unsupported expression")
}

func instantiateMono(ck *Checker, ctx *Context, scheme types.Scheme) types.Idx {
	if len(scheme.TypeParams) == 0 {
		return scheme.Body
	}
	return ctx.InstantiateScheme(ck.Arena, scheme, nil)
}

func quote(s string) string { return "\"" + s + "\"" }

func (ck *Checker) inferBlock(ctx *Context, n *ast.BlockExpr) (types.Idx, error) {
	a := ck.Arena
	inner := ctx.Clone()
	var last types.Idx = a.NewPrimitive(types.Undefined)
	for _, stmt := range n.Statements {
		switch s := stmt.(type) {
		case *ast.ExprStmt:
			t, err := ck.InferExpr(inner, s.X)
			if err != nil {
				return 0, err
			}
			last = t
		default:
			if err := ck.CheckStmt(inner, stmt); err != nil {
				return 0, err
			}
			last = a.NewPrimitive(types.Undefined)
		}
	}
	return last, nil
}

func (ck *Checker) inferReturn(ctx *Context, s *ast.ReturnStmt) error {
	a := ck.Arena
	var t types.Idx
	if s.Value == nil {
		t = a.NewPrimitive(types.Undefined)
	} else {
		var err error
		t, err = ck.InferExpr(ctx, s.Value)
		if err != nil {
			return err
		}
	}
	ctx.RecordReturn(a, t)
	return nil
}

func (ck *Checker) inferVarDecl(ctx *Context, s *ast.VarDeclStmt) error {
	a := ck.Arena
	name, ok := s.Pattern.(*ast.IdentPattern)
	if !ok {
		return types.NewDiagnostic(types.ErrTypeMismatch, "destructuring declarations are not yet supported at top level")
	}

	if s.Declare {
		if s.Init != nil {
			return types.NewDiagnostic(types.ErrDeclareWithInitializer, "declare binding "+quote(name.Name)+" must not have an initializer")
		}
		if s.Annotation == nil {
			return types.NewDiagnostic(types.ErrDeclareWithoutAnnotation, "declare binding "+quote(name.Name)+" requires a type annotation")
		}
		t := ck.ResolveType(ctx, s.Annotation)
		ctx.BindValue(name.Name, types.Mono(t))
		return nil
	}

	if s.Init == nil {
		return types.NewDiagnostic(types.ErrNonDeclareWithoutInitializer, "binding "+quote(name.Name)+" requires an initializer")
	}

	if s.Recursive {
		placeholder := a.NewVar()
		ctx.BindMono(name.Name, placeholder)
		t, err := ck.InferExpr(ctx, s.Init)
		if err != nil {
			return err
		}
		if err := types.Unify(a, ctx, t, placeholder); err != nil {
			return err
		}
		if s.Annotation != nil {
			ann := ck.ResolveType(ctx, s.Annotation)
			if err := types.Unify(a, ctx, t, ann); err != nil {
				return err
			}
		}
		ctx.BindValue(name.Name, Generalize(a, ctx, t))
		return nil
	}

	t, err := ck.InferExpr(ctx, s.Init)
	if err != nil {
		return err
	}
	if s.Annotation != nil {
		ann := ck.ResolveType(ctx, s.Annotation)
		if err := types.Unify(a, ctx, t, ann); err != nil {
			return err
		}
	}
	ctx.BindValue(name.Name, Generalize(a, ctx, t))
	return nil
}

func (ck *Checker) inferIf(ctx *Context, n *ast.IfExpr) (types.Idx, error) {
	a := ck.Arena
	cond, err := ck.InferExpr(ctx, n.Cond)
	if err != nil {
		return 0, err
	}
	if err := types.Unify(a, ctx, cond, a.NewPrimitive(types.Boolean)); err != nil {
		return 0, err
	}
	thenT, err := ck.InferExpr(ctx, n.Then)
	if err != nil {
		return 0, err
	}
	if n.Else == nil {
		return a.NewPrimitive(types.Undefined), nil
	}
	elseT, err := ck.InferExpr(ctx, n.Else)
	if err != nil {
		return 0, err
	}
	return a.NewUnion(thenT, elseT), nil
}

func (ck *Checker) inferTry(ctx *Context, n *ast.TryExpr) (types.Idx, error) {
	a := ck.Arena
	if ctx.throws == nil {
		ctx.throws = &throwsAcc{}
	}
	before := len(ctx.throws.members)
	tryCtx := ctx.Clone()
	tryT, err := ck.InferExpr(tryCtx, n.Try)
	if err != nil {
		return 0, err
	}
	result := tryT
	if n.Catch != nil {
		var caught *types.Idx
		if thrown := ctx.throws.members[before:]; len(thrown) > 0 {
			u := a.NewUnion(thrown...)
			caught = &u
		}
		catchCtx := ctx.Clone()
		if n.CatchParam != "" {
			paramT := a.NewPrimitive(types.Unknown)
			if caught != nil {
				paramT = *caught
			}
			catchCtx.BindMono(n.CatchParam, paramT)
		}
		// The try block's own effect has been consumed by this catch;
		// further throw/return inference continues against the
		// enclosing function's accumulator only for what's rethrown.
		ctx.throws.members = ctx.throws.members[:before]
		catchT, err := ck.InferExpr(catchCtx, n.Catch)
		if err != nil {
			return 0, err
		}
		result = a.NewUnion(result, catchT)
	}
	if n.Finally != nil {
		if _, err := ck.InferExpr(ctx.Clone(), n.Finally); err != nil {
			return 0, err
		}
	}
	return result, nil
}
