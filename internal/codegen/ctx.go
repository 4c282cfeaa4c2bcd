package codegen

import (
	"fmt"

	"github.com/vibefun/vibefun/internal/ast"
	"github.com/vibefun/vibefun/internal/core"
	"github.com/vibefun/vibefun/internal/diag"
	"github.com/vibefun/vibefun/internal/types"
)

// genCtx is the mutable state threaded through every emitter: whether
// the `ref`/`$eq` runtime helpers are needed (§4.6.7), and how an
// External binding's own name resolves at every reference site.
type genCtx struct {
	needRef bool
	needEq  bool

	// externalRef maps an ExternalDecl's vibefun name to the JS
	// expression a reference to it should emit: either the escaped
	// local const name, the bare jsName (when no const was needed), or
	// a dotted namespace access like "Foo.bar".
	externalRef map[string]string
}

func newCtx() *genCtx {
	return &genCtx{externalRef: map[string]string{}}
}

// fail reports a malformed-Core-IR invariant violation. It is never
// called on well-typed input produced by this module's own desugarer
// and checker; it exists so a violation aborts loudly instead of
// emitting silently wrong JS.
func fail(code string, pos ast.Pos, format string, args ...interface{}) {
	panic(&diag.InternalError{Code: code, Message: fmt.Sprintf(format, args...), At: pos})
}

// isPrimitiveForEquality reports whether e's checker-assigned type is
// one of Int/Float/String/Bool/Unit, in which case `==`/`!=` compiles
// to `===`/`!==` directly; anything else (tuple, record, variant, ref,
// or an unresolved type left over from a diagnosed error) goes through
// the `$eq` structural-equality helper (§4.6.4).
func isPrimitiveForEquality(e core.Expr) bool {
	raw := e.Type()
	if raw == nil {
		return false
	}
	t, ok := raw.(types.Type)
	if !ok {
		return false
	}
	_, isConst := types.Prune(t).(*types.Const)
	return isConst
}
