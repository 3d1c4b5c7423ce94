package checker

import (
	"testing"

	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/types"
)

func sp() ast.Span { return ast.Span{} }

// identity is `(x) => x`.
func identityLambda() *ast.LambdaExpr {
	return &ast.LambdaExpr{
		SpanV:  sp(),
		Params: []ast.FuncParamExpr{{Pattern: &ast.IdentPattern{SpanV: sp(), Name: "x"}}},
		Body:   &ast.Ident{SpanV: sp(), Name: "x"},
	}
}

func TestIdentityFunctionGeneralizes(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()

	idT, err := ck.InferExpr(ctx, identityLambda())
	if err != nil {
		t.Fatalf("infer identity failed: %v", err)
	}
	ctx.BindValue("identity", Generalize(ck.Arena, ctx, idT))

	// identity(5) and identity("s") must both succeed without the two
	// call sites unifying with each other.
	call := func(argExpr ast.Expr) (types.Idx, error) {
		return ck.InferExpr(ctx, &ast.CallExpr{
			SpanV:  sp(),
			Callee: &ast.Ident{SpanV: sp(), Name: "identity"},
			Args:   []ast.Expr{argExpr},
		})
	}

	numRes, err := call(&ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "5"})
	if err != nil {
		t.Fatalf("identity(5) failed: %v", err)
	}
	strRes, err := call(&ast.Literal{SpanV: sp(), Kind: ast.LitString, Text: "s"})
	if err != nil {
		t.Fatalf("identity(\"s\") failed: %v", err)
	}

	if got := types.Print(ck.Arena, numRes); got != "5" {
		t.Errorf("identity(5) : %s, want 5", got)
	}
	if got := types.Print(ck.Arena, strRes); got != `"s"` {
		t.Errorf("identity(\"s\") : %s, want \"s\"", got)
	}
}

func TestDivisionInfersThrows(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()

	divExpr := &ast.BinaryExpr{
		SpanV: sp(),
		Op:    "/",
		Left:  &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "10"},
		Right: &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "2"},
	}
	lambda := &ast.LambdaExpr{SpanV: sp(), Body: divExpr}

	fnT, err := ck.InferExpr(ctx, lambda)
	if err != nil {
		t.Fatalf("infer lambda failed: %v", err)
	}
	fn, ok := ck.Arena.Get(ck.Arena.Prune(fnT)).Kind.(types.Function)
	if !ok {
		t.Fatalf("expected a Function type")
	}
	if fn.Throws == nil {
		t.Fatalf("expected the lambda to infer a throws effect from division")
	}
	if got := types.Print(ck.Arena, *fn.Throws); got != "DivideByZeroError" {
		t.Errorf("throws = %s, want DivideByZeroError", got)
	}
}

func TestDeclaredThrowsMustMatchInferredThrows(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()

	divExpr := &ast.BinaryExpr{
		SpanV: sp(),
		Op:    "/",
		Left:  &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "10"},
		Right: &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "2"},
	}

	// fn () throws number { return div(10, 2) } — body actually throws
	// DivideByZeroError, not number, so the declared throws must be rejected.
	mismatch := &ast.LambdaExpr{
		SpanV:  sp(),
		Body:   divExpr,
		Throws: &ast.NameTypeExpr{SpanV: sp(), Name: "number"},
	}
	if _, err := ck.InferExpr(ctx, mismatch); err == nil {
		t.Fatalf("expected a mismatch between declared throws and the body's actual throws")
	}

	// fn () throws DivideByZeroError { return div(10, 2) } — matches.
	match := &ast.LambdaExpr{
		SpanV:  sp(),
		Body:   divExpr,
		Throws: &ast.NameTypeExpr{SpanV: sp(), Name: "DivideByZeroError"},
	}
	if _, err := ck.InferExpr(ctx, match); err != nil {
		t.Fatalf("declared throws matching the body's actual throws should check: %v", err)
	}
}

func TestAsyncReturnAnnotationMustBePromise(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()

	// async fn (): number { return 1 } — an async function always returns
	// a promise, so a bare `number` annotation is an unawaited-promise error.
	bad := &ast.LambdaExpr{
		SpanV:      sp(),
		IsAsync:    true,
		Body:       &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "1"},
		ReturnType: &ast.NameTypeExpr{SpanV: sp(), Name: "number"},
	}
	_, err := ck.InferExpr(ctx, bad)
	if err == nil {
		t.Fatalf("expected an unawaited-promise error for a non-Promise async return annotation")
	}
	diag, ok := err.(*types.Diagnostic)
	if !ok || diag.Kind != types.ErrUnawaitedPromise {
		t.Fatalf("expected ErrUnawaitedPromise, got %v", err)
	}
}

func TestAsyncLambdaWrapsReturnInPromise(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()

	lambda := &ast.LambdaExpr{
		SpanV:   sp(),
		IsAsync: true,
		Body:    &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "1"},
	}
	fnT, err := ck.InferExpr(ctx, lambda)
	if err != nil {
		t.Fatalf("infer async lambda failed: %v", err)
	}
	fn := ck.Arena.Get(ck.Arena.Prune(fnT)).Kind.(types.Function)
	ret := ck.Arena.Get(ck.Arena.Prune(fn.Ret)).Kind.(types.Constructor)
	if ret.Name != types.PromiseName {
		t.Errorf("async lambda return = %s, want Promise<...>", types.Print(ck.Arena, fn.Ret))
	}
}

func TestTupleOutOfBoundsIndex(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()

	tup := &ast.TupleLiteral{SpanV: sp(), Elements: []ast.Expr{
		&ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "1"},
		&ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "2"},
	}}
	idx := &ast.IndexExpr{SpanV: sp(), Object: tup, Index: &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "5"}}

	_, err := ck.InferExpr(ctx, idx)
	if err == nil {
		t.Fatalf("expected an out-of-bounds tuple index error")
	}
	diag, ok := err.(*types.Diagnostic)
	if !ok || diag.Kind != types.ErrTupleIndexOutOfBounds {
		t.Errorf("expected ErrTupleIndexOutOfBounds, got %#v", err)
	}
}

func TestMatchRefinesByTypeTest(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()

	// match (x) { n is number -> n, _ -> 0 }
	scrutinee := &ast.Ident{SpanV: sp(), Name: "x"}
	ctx.BindMono("x", ck.Arena.NewUnion(ck.Arena.NewPrimitive(types.Number), ck.Arena.NewPrimitive(types.String)))

	match := &ast.MatchExpr{
		SpanV:     sp(),
		Scrutinee: scrutinee,
		Arms: []ast.MatchArm{
			{
				Pattern: &ast.TypeTestPattern{SpanV: sp(), Name: "n", Type: &ast.NameTypeExpr{SpanV: sp(), Name: "number"}},
				Body:    &ast.Ident{SpanV: sp(), Name: "n"},
			},
			{
				Pattern: &ast.WildcardPattern{SpanV: sp()},
				Body:    &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "0"},
			},
		},
	}

	resT, err := ck.InferExpr(ctx, match)
	if err != nil {
		t.Fatalf("infer match failed: %v", err)
	}
	got := types.Print(ck.Arena, resT)
	if got != "number | 0" {
		t.Errorf("match result = %s, want %q", got, "number | 0")
	}
}

func TestNonLastWildcardIsUnreachable(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()
	ctx.BindMono("x", ck.Arena.NewPrimitive(types.Number))

	match := &ast.MatchExpr{
		SpanV:     sp(),
		Scrutinee: &ast.Ident{SpanV: sp(), Name: "x"},
		Arms: []ast.MatchArm{
			{Pattern: &ast.WildcardPattern{SpanV: sp()}, Body: &ast.Literal{SpanV: sp(), Kind: ast.LitNumber, Text: "0"}},
			{Pattern: &ast.IdentPattern{SpanV: sp(), Name: "n"}, Body: &ast.Ident{SpanV: sp(), Name: "n"}},
		},
	}

	_, err := ck.InferExpr(ctx, match)
	if err == nil {
		t.Fatalf("expected an unreachable-arm error")
	}
}

func TestNonLastIdentPatternIsUnreachable(t *testing.T) {
	ck := New()
	ctx := ck.Builtins()
	ctx.BindMono("x", ck.Arena.NewPrimitive(types.Number))

	// match (x) { n -> n, m -> m } — the first arm already binds the
	// whole value irrefutably, so the second arm can never run.
	match := &ast.MatchExpr{
		SpanV:     sp(),
		Scrutinee: &ast.Ident{SpanV: sp(), Name: "x"},
		Arms: []ast.MatchArm{
			{Pattern: &ast.IdentPattern{SpanV: sp(), Name: "n"}, Body: &ast.Ident{SpanV: sp(), Name: "n"}},
			{Pattern: &ast.IdentPattern{SpanV: sp(), Name: "m"}, Body: &ast.Ident{SpanV: sp(), Name: "m"}},
		},
	}

	_, err := ck.InferExpr(ctx, match)
	if err == nil {
		t.Fatalf("expected an unreachable-arm error")
	}
}
