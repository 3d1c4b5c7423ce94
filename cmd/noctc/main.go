// Command noctc is a thin demo driver for the inference core: it builds a
// small fixture program, runs it through checker.Checker, and prints
// diagnostics to stderr or, if there are none, the inferred top-level
// types to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/nocturne-lang/nocturne/internal/ast"
	"github.com/nocturne-lang/nocturne/internal/checker"
	"github.com/nocturne-lang/nocturne/internal/config"
	"github.com/nocturne-lang/nocturne/internal/hostimport"
	"github.com/nocturne-lang/nocturne/internal/types"
)

var useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func main() {
	ck := checker.New()
	ctx := ck.Builtins()

	if projectPath, err := config.FindProject("."); err == nil && projectPath != "" {
		project, err := config.LoadProject(projectPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading %s: %s\n", projectPath, err)
			os.Exit(1)
		}
		if err := importDeps(ck, ctx, project); err != nil {
			fmt.Fprintf(os.Stderr, "importing host declarations: %s\n", err)
			os.Exit(1)
		}
	}

	prog := fixtureProgram()
	result := ck.CheckProgram(ctx, prog)

	if !result.OK() {
		for _, d := range result.Diagnostics {
			fmt.Fprintln(os.Stderr, colorize(d.Error(), "31"))
		}
		os.Exit(1)
	}

	for _, name := range fixtureNames() {
		scheme, ok := ctx.Values[name]
		if !ok {
			continue
		}
		fmt.Printf("%s: %s\n", colorize(name, "36"), types.Print(ck.Arena, scheme.Body))
	}
}

// importDeps converts each nocturne.yaml DepRef into a hostimport.Dep and
// installs its bindings into ctx before the program itself is checked.
func importDeps(ck *checker.Checker, ctx *checker.Context, project *config.Project) error {
	for _, ref := range project.Deps {
		dep := hostimport.DepFromRef(ref)
		if dep.IsProto() {
			if err := hostimport.ImportProtoFile(ck.Arena, ctx, dep); err != nil {
				return err
			}
			continue
		}
		if err := hostimport.ImportGoPackage(ck.Arena, ctx, dep, project.Strict); err != nil {
			return err
		}
	}
	return nil
}

// fixtureProgram is `let double = (x) => x * 2`, exercising inference
// through a real builtin operator: `*` pins x to number, so the binding
// is monomorphic, `(x: number) => number`.
func fixtureProgram() *ast.Program {
	lambda := &ast.LambdaExpr{
		Params: []ast.FuncParamExpr{{Pattern: &ast.IdentPattern{Name: "x"}}},
		Body: &ast.BinaryExpr{
			Op:    "*",
			Left:  &ast.Ident{Name: "x"},
			Right: &ast.Literal{Kind: ast.LitNumber, Text: "2"},
		},
	}
	return &ast.Program{
		Statements: []ast.Stmt{
			&ast.VarDeclStmt{Pattern: &ast.IdentPattern{Name: "double"}, Init: lambda},
		},
	}
}

// fixtureNames lists the top-level bindings fixtureProgram declares, in
// source order, so output doesn't depend on map iteration order.
func fixtureNames() []string {
	return []string{"double"}
}

func colorize(s, code string) string {
	if !useColor {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
