package desugar

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

func (d *Desugarer) desugarExpr(sc *refScope, e ast.Expr) core.Expr {
	switch ex := e.(type) {
	case *ast.Literal:
		return d.desugarLiteral(ex)

	case *ast.Var:
		kind, _ := sc.lookup(ex.Name)
		return &core.Var{Node: d.node(ex.Pos), Name: ex.Name, Ref: kind}

	case *ast.App:
		return d.desugarApp(sc, ex)

	case *ast.Lambda:
		return d.desugarLambda(sc, ex)

	case *ast.BinaryOp:
		return d.desugarBinaryOp(sc, ex)

	case *ast.UnaryOp:
		return d.desugarUnaryOp(sc, ex)

	case *ast.If:
		return &core.If{
			Node: d.node(ex.Pos),
			Cond: d.desugarExpr(sc, ex.Cond),
			Then: d.desugarExpr(sc, ex.Then),
			Else: d.desugarExpr(sc, ex.Else),
		}

	case *ast.Match:
		return d.desugarMatch(sc, ex)

	case *ast.RecordLit:
		return d.desugarRecordLit(sc, ex)

	case *ast.RecordAccess:
		return &core.RecordAccess{
			Node:   d.node(ex.Pos),
			Record: d.desugarExpr(sc, ex.Record),
			Field:  ex.Field,
		}

	case *ast.RecordUpdate:
		fields := make([]core.RecordField, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = core.RecordField{Name: f.Name, Value: d.desugarExpr(sc, f.Value)}
		}
		return &core.RecordUpdate{Node: d.node(ex.Pos), Base: d.desugarExpr(sc, ex.Base), Fields: fields}

	case *ast.VariantLit:
		args := make([]core.Expr, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = d.desugarExpr(sc, a)
		}
		return &core.VariantLit{Node: d.node(ex.Pos), Constructor: ex.Constructor, Args: args}

	case *ast.Tuple:
		elems := make([]core.Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = d.desugarExpr(sc, el)
		}
		return &core.Tuple{Node: d.node(ex.Pos), Elements: elems}

	case *ast.ListLit:
		elems := make([]core.Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			elems[i] = d.desugarExpr(sc, el)
		}
		var tail core.Expr
		if ex.Tail != nil {
			tail = d.desugarExpr(sc, ex.Tail)
		}
		return &core.List{Node: d.node(ex.Pos), Elements: elems, Tail: tail}

	case *ast.Block:
		return d.desugarBlock(sc, ex)

	case *ast.Compose:
		return d.desugarCompose(sc, ex)

	case *ast.Pipe:
		return &core.App{
			Node: d.node(ex.Pos),
			Func: d.desugarExpr(sc, ex.Func),
			Arg:  d.desugarExpr(sc, ex.Value),
		}

	case *ast.TypeAnnotation:
		// A standalone type annotation carries no Core node of its own;
		// the annotated expression is checked directly and the
		// annotation is consulted by the caller that already expects
		// one (lambda parameters, let bindings), not threaded here.
		return d.desugarExpr(sc, ex.Expr)

	default:
		d.diags.Errorf(diag.InvalidDesugar, e.Position(), "unsupported expression %T", e)
		return &core.Lit{Node: d.node(e.Position()), Kind: core.UnitLit, Value: nil}
	}
}

func (d *Desugarer) desugarLiteral(l *ast.Literal) *core.Lit {
	var kind core.LitKind
	switch l.Kind {
	case ast.IntLit:
		kind = core.IntLit
	case ast.FloatLit:
		kind = core.FloatLit
	case ast.StringLit:
		kind = core.StringLit
	case ast.BoolLit:
		kind = core.BoolLit
	default:
		kind = core.UnitLit
	}
	return &core.Lit{Node: d.node(l.Pos), Kind: kind, Value: l.Value}
}

// desugarApp implements currying of `f(a1, ..., an)` into nested
// single-argument App nodes (§4.2), and also recognizes `ref(e)` as
// the one builtin call this stage must rewrite directly to RefNew:
// the checker has no other way to tell a ref construction apart from
// an ordinary call to a function named "ref", so the rewrite has to
// happen here, syntactically, before any type is known.
func (d *Desugarer) desugarApp(sc *refScope, a *ast.App) core.Expr {
	if v, ok := a.Func.(*ast.Var); ok && v.Name == "ref" && len(a.Args) == 1 {
		if _, bound := sc.lookup("ref"); !bound {
			return &core.RefNew{Node: d.node(a.Pos), Value: d.desugarExpr(sc, a.Args[0])}
		}
	}
	fn := d.desugarExpr(sc, a.Func)
	result := &core.App{Node: d.node(a.Pos), Func: fn, Arg: d.desugarExpr(sc, a.Args[0])}
	for _, arg := range a.Args[1:] {
		result = &core.App{Node: d.node(a.Pos), Func: result, Arg: d.desugarExpr(sc, arg)}
	}
	return result
}

// desugarLambda curries a multi-parameter surface lambda into nested
// single-parameter Core lambdas, innermost body last (§4.2).
func (d *Desugarer) desugarLambda(sc *refScope, l *ast.Lambda) core.Expr {
	bodyScope := sc
	for _, p := range l.Params {
		bodyScope = bodyScope.extend(p.Name, core.RefLocal)
	}
	body := d.desugarExpr(bodyScope, l.Body)
	for i := len(l.Params) - 1; i >= 0; i-- {
		p := l.Params[i]
		body = &core.Lambda{
			Node:  d.node(l.Pos),
			Param: core.Param{Name: p.Name, Annotation: p.Annotation},
			Body:  body,
		}
	}
	return body
}

var binOpKinds = map[string]core.BinOpKind{
	"+":  core.Add,
	"-":  core.Sub,
	"*":  core.Mul,
	"/":  core.IntDivide, // placeholder; specialized by the checker (§4.3's resolveDivide)
	"&":  core.Concat,
	"==": core.Eq,
	"!=": core.NotEq,
	"<":  core.Lt,
	"<=": core.LtEq,
	">":  core.Gt,
	">=": core.GtEq,
	"&&": core.And,
	"||": core.Or,
	":=": core.RefAssign,
}

func (d *Desugarer) desugarBinaryOp(sc *refScope, b *ast.BinaryOp) core.Expr {
	kind, ok := binOpKinds[b.Op]
	if !ok {
		d.diags.Errorf(diag.InvalidDesugar, b.Pos, "unsupported binary operator %q", b.Op)
		kind = core.Add
	}
	return &core.BinOp{
		Node:  d.node(b.Pos),
		Op:    kind,
		Left:  d.desugarExpr(sc, b.Left),
		Right: d.desugarExpr(sc, b.Right),
	}
}

// desugarUnaryOp maps the two surface unary forms this language has:
// `!e` always dereferences a ref cell (§4.2); arithmetic negation is
// the only other unary surface form. Boolean negation is a library
// function (`not`), not an operator, so core.Not is never produced
// here -- only the checker/codegen's own internal uses would need it.
func (d *Desugarer) desugarUnaryOp(sc *refScope, u *ast.UnaryOp) core.Expr {
	var kind core.UnOpKind
	switch u.Op {
	case "-":
		kind = core.Neg
	case "!":
		kind = core.Deref
	default:
		d.diags.Errorf(diag.InvalidDesugar, u.Pos, "unsupported unary operator %q", u.Op)
		kind = core.Neg
	}
	return &core.UnOp{Node: d.node(u.Pos), Op: kind, Operand: d.desugarExpr(sc, u.Operand)}
}

func (d *Desugarer) desugarMatch(sc *refScope, m *ast.Match) core.Expr {
	arms := make([]core.MatchArm, len(m.Arms))
	for i, arm := range m.Arms {
		var nestedGuards []ast.Expr
		pat, armScope := d.desugarPattern(sc, arm.Pattern, &nestedGuards)

		var guard core.Expr
		if arm.Guard != nil {
			guard = d.desugarExpr(armScope, arm.Guard)
		}
		for _, raw := range nestedGuards {
			g := d.desugarExpr(armScope, raw)
			if guard == nil {
				guard = g
				continue
			}
			guard = &core.BinOp{Node: d.node(m.Pos), Op: core.And, Left: guard, Right: g}
		}
		arms[i] = core.MatchArm{Pattern: pat, Guard: guard, Body: d.desugarExpr(armScope, arm.Body)}
	}
	return &core.Match{Node: d.node(m.Pos), Scrutinee: d.desugarExpr(sc, m.Scrutinee), Arms: arms}
}

// desugarRecordLit lowers a record literal, expanding shorthand
// fields (`{ x }` meaning `{ x: x }`) when the surface parser has left
// the value unset (§4.2); a conforming parser may already have
// resolved this itself, in which case Value is already the Var node
// and this is a no-op.
func (d *Desugarer) desugarRecordLit(sc *refScope, r *ast.RecordLit) core.Expr {
	fields := make([]core.RecordField, len(r.Fields))
	for i, f := range r.Fields {
		value := f.Value
		if value == nil {
			value = &ast.Var{Name: f.Name, Pos: f.Pos}
		}
		fields[i] = core.RecordField{Name: f.Name, Value: d.desugarExpr(sc, value)}
	}
	var spread core.Expr
	if r.Spread != nil {
		spread = d.desugarExpr(sc, r.Spread)
	}
	return &core.Record{Node: d.node(r.Pos), Spread: spread, Fields: fields}
}

// desugarBlock lowers `{ decl; ...; e }` to nested lets (§4.2), one
// per leading declaration, with the final expression as the innermost
// body.
func (d *Desugarer) desugarBlock(sc *refScope, b *ast.Block) core.Expr {
	return d.desugarBlockDecls(sc, b.Decls, b.Result, b.Pos)
}

func (d *Desugarer) desugarBlockDecls(sc *refScope, decls []ast.Decl, result ast.Expr, pos ast.Pos) core.Expr {
	if len(decls) == 0 {
		return d.desugarExpr(sc, result)
	}
	head, rest := decls[0], decls[1:]
	switch hd := head.(type) {
	case *ast.LetDecl:
		var guards []ast.Expr
		pat, bodyScope := d.desugarPattern(sc, hd.Pattern, &guards)
		if len(guards) > 0 {
			d.diags.Errorf(diag.InvalidDesugar, hd.Pos, "a let-binding pattern may not use a guard")
		}
		valueScope := sc
		if hd.Recursive {
			valueScope = bodyScope
		}
		value := d.desugarExpr(valueScope, hd.Value)
		body := d.desugarBlockDecls(bodyScope, rest, result, pos)
		return &core.Let{Node: d.node(hd.Pos), Pattern: pat, Value: value, Body: body, Recursive: hd.Recursive}

	case *ast.LetRecGroupDecl:
		groupScope := sc
		for _, b := range hd.Bindings {
			groupScope = groupScope.extend(b.Name, core.RefLocal)
		}
		bindings := make([]core.RecBinding, len(hd.Bindings))
		for i, b := range hd.Bindings {
			bindings[i] = core.RecBinding{Name: b.Name, Value: d.desugarExpr(groupScope, b.Value)}
		}
		body := d.desugarBlockDecls(groupScope, rest, result, pos)
		return &core.LetRecGroup{Node: d.node(hd.Pos), Bindings: bindings, Body: body}

	default:
		d.diags.Errorf(diag.InvalidDesugar, head.Position(), "unsupported declaration %T inside a block", head)
		return d.desugarBlockDecls(sc, rest, result, pos)
	}
}

// desugarCompose lowers `f >> g` and `f << g` to a lambda over a
// fresh variable (§4.2); the gensym is unique within the module so it
// can never capture a name occurring in f or g.
func (d *Desugarer) desugarCompose(sc *refScope, c *ast.Compose) core.Expr {
	name := d.gensym()
	f := d.desugarExpr(sc, c.Left)
	g := d.desugarExpr(sc, c.Right)
	ref := func() core.Expr { return &core.Var{Node: d.node(c.Pos), Name: name, Ref: core.RefLocal} }

	var body core.Expr
	if c.Forward {
		// (x) => g(f(x))
		body = &core.App{Node: d.node(c.Pos), Func: g, Arg: &core.App{Node: d.node(c.Pos), Func: f, Arg: ref()}}
	} else {
		// (x) => f(g(x))
		body = &core.App{Node: d.node(c.Pos), Func: f, Arg: &core.App{Node: d.node(c.Pos), Func: g, Arg: ref()}}
	}
	return &core.Lambda{Node: d.node(c.Pos), Param: core.Param{Name: name}, Body: body}
}
