package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vibefun/vibefun/internal/ast"
)

// Diagnostic is a single uniform error/warning/note record. It carries
// everything a renderer needs and nothing about how to render it.
type Diagnostic struct {
	Code       string
	Severity   Severity
	Primary    ast.Pos
	Message    string
	Hint       string
	Secondary  []ast.Pos
	Params     map[string]string // template parameters, kept for machine consumers
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s [%s] %s", d.Severity, d.Primary, d.Code, d.Message)
	if d.Hint != "" {
		fmt.Fprintf(&b, " (hint: %s)", d.Hint)
	}
	return b.String()
}

// IsFatal reports whether this diagnostic blocks JS output (§7: any
// error-severity diagnostic fails the compile).
func (d Diagnostic) IsFatal() bool { return d.Severity == Error }

// Collector accumulates diagnostics in the order they are reported.
// It is append-only and never reordered; stages that need deterministic
// output sort by (Primary, Code) just before handing diagnostics to a
// caller, never in place.
type Collector struct {
	items []Diagnostic
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) { c.items = append(c.items, d) }

// Errorf appends an error-severity diagnostic built from a message
// template and arguments.
func (c *Collector) Errorf(code string, pos ast.Pos, format string, args ...interface{}) {
	c.Add(Diagnostic{Code: code, Severity: Error, Primary: pos, Message: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning-severity diagnostic.
func (c *Collector) Warnf(code string, pos ast.Pos, format string, args ...interface{}) {
	c.Add(Diagnostic{Code: code, Severity: Warning, Primary: pos, Message: fmt.Sprintf(format, args...)})
}

// Items returns the diagnostics collected so far, in report order.
func (c *Collector) Items() []Diagnostic { return c.items }

// HasErrors reports whether any collected diagnostic has error severity.
func (c *Collector) HasErrors() bool {
	for _, d := range c.items {
		if d.IsFatal() {
			return true
		}
	}
	return false
}

// Merge appends another collector's diagnostics onto this one,
// preserving relative order (this collector's items first).
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
}

// SortStable returns a copy of the diagnostics ordered by primary
// location and then by code, for presentation; the Collector's own
// internal order is never mutated so that multiple independent passes
// over the same collector stay reproducible.
func SortStable(items []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Primary, out[j].Primary
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// InternalError represents a violation of an invariant the compiler
// never expects to see in well-typed input (e.g. a Divide node
// reaching the code generator). Unlike a Diagnostic it is not
// recoverable: encountering one aborts the whole compilation.
type InternalError struct {
	Code    string
	Message string
	At      ast.Pos
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error %s at %s: %s", e.Code, e.At, e.Message)
}
