package types

import (
	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
)

// inferBinOp implements §4.3.6. The desugarer always emits surface
// `/` as core.IntDivide; resolveDivide below is what actually decides
// between Int and Float division once operand types are known, and
// mutates the node in place so a plain ambiguous divide never reaches
// the code generator (see core.BinOp's doc comment).
func (c *Checker) inferBinOp(env *Env, b *core.BinOp) Type {
	left := c.inferExpr(env, b.Left)
	right := c.inferExpr(env, b.Right)

	switch b.Op {
	case core.Add, core.Sub, core.Mul:
		combined := c.unify(b.Pos(), left, right)
		return c.requireNumeric(b.Pos(), combined)

	case core.IntDivide:
		return c.resolveDivide(b, left, right)

	case core.FloatDivide:
		c.unify(b.Left.Pos(), Float, left)
		c.unify(b.Right.Pos(), Float, right)
		return Float

	case core.Concat:
		c.unify(b.Left.Pos(), String, left)
		c.unify(b.Right.Pos(), String, right)
		return String

	case core.Eq, core.NotEq:
		c.unify(b.Pos(), left, right)
		return Bool

	case core.Lt, core.LtEq, core.Gt, core.GtEq:
		combined := c.unify(b.Pos(), left, right)
		c.requireNumeric(b.Pos(), combined)
		return Bool

	case core.And, core.Or:
		c.unify(b.Left.Pos(), Bool, left)
		c.unify(b.Right.Pos(), Bool, right)
		return Bool

	case core.RefAssign:
		elem := c.freshVar()
		c.unify(b.Left.Pos(), &Ref{Elem: elem}, left)
		c.unify(b.Right.Pos(), elem, right)
		return Unit

	default:
		c.diags.Errorf(diag.InvalidDesugar, b.Pos(), "unknown binary operator")
		return c.freshErrorType()
	}
}

// resolveDivide decides Int vs Float division for a surface `/`,
// mutating b.Op once it knows which. If the operands are too
// polymorphic to decide it defaults to Int, the same default the
// desugarer itself used, and lets the surrounding context's own
// unification surface a mismatch if that guess was wrong.
func (c *Checker) resolveDivide(b *core.BinOp, left, right Type) Type {
	if Prune(left) == Float || Prune(right) == Float {
		b.Op = core.FloatDivide
		c.unify(b.Left.Pos(), Float, left)
		c.unify(b.Right.Pos(), Float, right)
		return Float
	}
	c.unify(b.Left.Pos(), Int, left)
	c.unify(b.Right.Pos(), Int, right)
	return Int
}

func (c *Checker) requireNumeric(pos ast.Pos, t Type) Type {
	pruned := Prune(t)
	if v, ok := pruned.(*Var); ok && !v.Bound {
		c.unify(pos, Int, v)
		return Int
	}
	if IsNumeric(pruned) {
		return pruned
	}
	c.diags.Errorf(diag.TypeMismatch, pos, "expected a numeric type, got %s", pruned)
	return c.freshErrorType()
}

func (c *Checker) inferUnOp(env *Env, u *core.UnOp) Type {
	operandType := c.inferExpr(env, u.Operand)
	switch u.Op {
	case core.Neg:
		return c.requireNumeric(u.Pos(), operandType)
	case core.Not:
		c.unify(u.Pos(), Bool, operandType)
		return Bool
	case core.Deref:
		elem := c.freshVar()
		c.unify(u.Pos(), &Ref{Elem: elem}, operandType)
		return Prune(elem)
	default:
		return c.freshErrorType()
	}
}
