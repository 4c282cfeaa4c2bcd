package fixtures

import "github.com/vibefun/vibefun/internal/ast"

// Small, deliberately unexported builders for the surface nodes the
// scenarios need. They exist only to keep each scenario's shape
// readable; they are not a general-purpose AST builder API.

func pos(file string) ast.Pos { return ast.Pos{File: file, Line: 1, Column: 1} }

func id(name string) *ast.Var { return &ast.Var{Name: name} }

func intLit(n int) *ast.Literal     { return &ast.Literal{Kind: ast.IntLit, Value: n} }
func strLit(s string) *ast.Literal  { return &ast.Literal{Kind: ast.StringLit, Value: s} }

func lambda(params []string, body ast.Expr) *ast.Lambda {
	ps := make([]ast.LambdaParam, len(params))
	for i, p := range params {
		ps[i] = ast.LambdaParam{Name: p}
	}
	return &ast.Lambda{Params: ps, Body: body}
}

func call(fn ast.Expr, args ...ast.Expr) *ast.App {
	return &ast.App{Func: fn, Args: args}
}

func let(name string, value ast.Expr, exported bool) *ast.LetDecl {
	return &ast.LetDecl{Pattern: id(name), Value: value, Exported: exported}
}

func variant(ctor string, args ...ast.Expr) *ast.VariantLit {
	return &ast.VariantLit{Constructor: ctor, Args: args}
}

func variantPat(ctor string, args ...ast.Pattern) *ast.VariantPattern {
	return &ast.VariantPattern{Constructor: ctor, Args: args}
}

func arm(pat ast.Pattern, body ast.Expr) ast.MatchArm {
	return ast.MatchArm{Pattern: pat, Body: body}
}

func match(scrutinee ast.Expr, arms ...ast.MatchArm) *ast.Match {
	return &ast.Match{Scrutinee: scrutinee, Arms: arms}
}

func variantCase(name string, fields ...ast.TypeExpr) ast.VariantCase {
	return ast.VariantCase{Name: name, Fields: fields}
}

func variantType(name string, exported bool, typeParams []string, cases ...ast.VariantCase) *ast.TypeDecl {
	return &ast.TypeDecl{
		Name:       name,
		TypeParams: typeParams,
		Kind:       ast.TypeDefVariant,
		Cases:      cases,
		Exported:   exported,
	}
}

func module(path string, imports []*ast.ImportDecl, decls ...ast.Decl) *ast.Module {
	return &ast.Module{Path: path, Imports: imports, Decls: decls, Pos: pos(path)}
}

func importDecl(source string, items ...ast.ImportItem) *ast.ImportDecl {
	return &ast.ImportDecl{Items: items, Source: source}
}
