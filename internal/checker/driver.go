package checker

import (
	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/types"
)

// Checker drives inference over a parsed program. It owns the single
// Arena every inferred Idx belongs to; a Checker should not be reused
// across unrelated programs.
type Checker struct {
	Arena *types.Arena
}

// New returns a Checker backed by a fresh, empty arena.
func New() *Checker {
	return &Checker{Arena: types.NewArena()}
}

// Result collects every top-level diagnostic produced while checking a
// Program. Inference is fatal per-statement (a single bad statement
// doesn't abort the whole file). A Result holds only the diagnostics;
// the bindings of the statements that succeeded are installed in the
// Context passed to CheckProgram.
type Result struct {
	Diagnostics []*types.Diagnostic
}

func (r *Result) OK() bool { return len(r.Diagnostics) == 0 }

// CheckProgram infers every top-level statement in prog against ctx,
// continuing past a failing statement rather than aborting the whole
// run, matching the driver behavior described for top-level checking.
func (ck *Checker) CheckProgram(ctx *Context, prog *ast.Program) *Result {
	res := &Result{}
	for _, stmt := range prog.Statements {
		if err := ck.CheckStmt(ctx, stmt); err != nil {
			if diag, ok := err.(*types.Diagnostic); ok {
				res.Diagnostics = append(res.Diagnostics, diag)
			} else {
				res.Diagnostics = append(res.Diagnostics, types.NewDiagnostic(types.ErrTypeMismatch, err.Error()))
			}
		}
	}
	return res
}

// CheckStmt infers and installs the bindings produced by a single
// top-level or block-level statement.
func (ck *Checker) CheckStmt(ctx *Context, stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		return ck.inferVarDecl(ctx, s)
	case *ast.TypeAliasStmt:
		return ck.inferTypeAlias(ctx, s)
	case *ast.ReturnStmt:
		return ck.inferReturn(ctx, s)
	case *ast.ExprStmt:
		_, err := ck.InferExpr(ctx, s.X)
		return err
	}
	return nil
}

func (ck *Checker) inferTypeAlias(ctx *Context, s *ast.TypeAliasStmt) error {
	inner := ctx.Clone()
	typeParams := resolveTypeParams(ck, inner, s.TypeParams)
	for _, tp := range typeParams {
		inner.BindAlias(tp.Name, types.Mono(ck.Arena.NewVar()))
	}
	body := ck.ResolveType(inner, s.Body)
	ctx.BindAlias(s.Name, types.Scheme{TypeParams: typeParams, Body: body})
	return nil
}
