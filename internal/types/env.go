package types

// Env is a persistent, chained variable scope. Extending an Env never
// mutates the parent, so a closure captured before a binding was
// added keeps seeing the environment as it was at capture time.
type Env struct {
	parent *Env
	name   string
	scheme *Scheme
}

// NewEnv returns an empty root environment.
func NewEnv() *Env { return nil }

// Extend returns a new environment with name bound to scheme, shadowing
// any outer binding of the same name.
func (e *Env) Extend(name string, scheme *Scheme) *Env {
	return &Env{parent: e, name: name, scheme: scheme}
}

// Lookup finds the nearest binding for name, searching from the
// innermost scope outward.
func (e *Env) Lookup(name string) (*Scheme, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.scheme, true
		}
	}
	return nil, false
}

// ConstructorInfo describes one case of a nominal variant type: its
// field types (with the type's own parameters left as its canonical
// parameter variables, instantiated fresh on each use) and which type it
// belongs to.
type ConstructorInfo struct {
	Name       string
	TypeName   string
	TypeParams []string
	Fields     []Type
	Index      int // position within the variant's case list, for exhaustiveness
}

// TypeBinding describes a user type declaration as registered with the
// checker: an alias/record (structural, substituted by Underlying) or
// a variant (nominal, with a fixed ordered set of constructors).
type TypeBinding struct {
	Name         string
	Params       []string
	ParamVars    []*Var // canonical variable for each entry of Params, shared across Underlying/Constructors
	IsVariant    bool
	Underlying   Type              // alias / record: the type this name stands for
	Constructors []ConstructorInfo // variant: cases in declaration order
}

// Registry holds the nominal/alias type declarations and constructor
// signatures visible during a single module's type check. It is built
// once per module before inference starts, from the module's own
// TypeDecls plus whatever the resolver says is imported.
type Registry struct {
	types        map[string]*TypeBinding
	constructors map[string]*ConstructorInfo
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		types:        map[string]*TypeBinding{},
		constructors: map[string]*ConstructorInfo{},
	}
}

// DefineAlias registers a structural alias or record type. paramVars
// are the canonical type variables used within underlying wherever a
// declared parameter occurs; instantiation substitutes fresh copies
// of them per use.
func (r *Registry) DefineAlias(name string, params []string, paramVars []*Var, underlying Type) {
	r.types[name] = &TypeBinding{Name: name, Params: params, ParamVars: paramVars, Underlying: underlying}
}

// DefineVariant registers a nominal variant type and all of its
// constructors, keyed globally by constructor name (vibefun
// constructor names are unique across a module's visible scope).
func (r *Registry) DefineVariant(name string, params []string, paramVars []*Var, cases []ConstructorInfo) {
	r.types[name] = &TypeBinding{Name: name, Params: params, ParamVars: paramVars, IsVariant: true, Constructors: cases}
	for i := range cases {
		c := cases[i]
		r.constructors[c.Name] = &c
	}
}

// DefineConstructor registers a single constructor directly, used when
// the resolver has already flattened imported variant cases.
func (r *Registry) DefineConstructor(caseName string, info ConstructorInfo) {
	info.Name = caseName
	r.constructors[caseName] = &info
}

// Lookup returns the binding for a type name.
func (r *Registry) Lookup(name string) (*TypeBinding, bool) {
	b, ok := r.types[name]
	return b, ok
}

// Constructor returns the signature for a variant case name.
func (r *Registry) Constructor(caseName string) (*ConstructorInfo, bool) {
	c, ok := r.constructors[caseName]
	return c, ok
}
