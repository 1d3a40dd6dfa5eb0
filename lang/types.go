// Package lang holds the data model of the preprocessing pipeline: the
// value types that describe a partially or fully parsed translation unit
// (Type, Variable, Function, Class, Enumeration, Namespace, Scope) and the
// stack-of-fragments model the driver mutates while it parses.
//
// The shapes here mirror a Java source model (ClassModel, MethodModel,
// FieldModel) from the teacher's own java/model.go, substituting the
// discriminators and qualifier chains this language's grammar actually
// needs.
package lang

// Access is a class member's access-partition bucket. The wire protocol in
// the evaluator handshake hard-codes these values, so the ordering here is
// load-bearing: PUBLIC=0 PROTECTED=1 PRIVATE=2 UNSPECIFIED=3.
type Access int

const (
	AccessPublic Access = iota
	AccessProtected
	AccessPrivate
	AccessUnspecified
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "unspecified"
	}
}

// AllAccess lists the access buckets in the partition order reflection
// expansion and wire serialization walk them in: public, then protected,
// then private, then unspecified.
var AllAccess = []Access{AccessPublic, AccessProtected, AccessPrivate, AccessUnspecified}

// Qualifier is one link of a Type's right-qualifier chain: a reference,
// rvalue-reference, or a pointer (optionally itself const-qualified).
type Qualifier struct {
	Kind       QualifierKind
	PtrIsConst bool // only meaningful when Kind == QualifierPointer
}

type QualifierKind int

const (
	QualifierRef QualifierKind = iota
	QualifierRvalueRef
	QualifierPointer
)

// TemplateArg is either a nested Type or a raw numeric literal, per
// spec.md's "each argument is itself a Type or a numeric literal".
type TemplateArg struct {
	Type    *Type
	Literal string // non-empty iff Type == nil
}

func (a TemplateArg) String() string {
	if a.Type != nil {
		return a.Type.String()
	}
	return a.Literal
}

// Type is a qualified, possibly templated, possibly pointer/reference
// qualified name, as described in spec.md §3.
type Type struct {
	Name            []string // dotted/scoped path, e.g. ["std", "vector"]
	TemplateArgs    []TemplateArg
	IsConst         bool // left qualifier
	IsConstexpr     bool // left qualifier
	RightQualifiers []Qualifier
}

// ScopedName renders the Type's name path joined with "::".
func (t *Type) ScopedName() string {
	out := ""
	for i, part := range t.Name {
		if i > 0 {
			out += "::"
		}
		out += part
	}
	return out
}

// String renders the type approximately as the input source spelled it.
func (t *Type) String() string {
	out := ""
	if t.IsConstexpr {
		out += "constexpr "
	}
	if t.IsConst {
		out += "const "
	}
	out += t.ScopedName()
	if len(t.TemplateArgs) > 0 {
		out += "<"
		for i, arg := range t.TemplateArgs {
			if i > 0 {
				out += ", "
			}
			out += arg.String()
		}
		out += ">"
	}
	for _, q := range t.RightQualifiers {
		switch q.Kind {
		case QualifierRef:
			out += "&"
		case QualifierRvalueRef:
			out += "&&"
		case QualifierPointer:
			out += "*"
			if q.PtrIsConst {
				out += " const"
			}
		}
	}
	return out
}

// Variable is a (Type, name) pair used for fields, parameters, and locals.
// Name is empty for unnamed parameter declarations.
type Variable struct {
	Type Type
	Name string
}

// FunctionCtorKind discriminates ordinary functions from constructors and
// destructors, which lack a return type and use the class name instead.
type FunctionCtorKind int

const (
	CtorKindNone FunctionCtorKind = iota
	CtorKindCtor
	CtorKindDtor
)

// TemplateParam is a single entry of a template parameter list. Per
// spec.md §9's first Open Question, a trailing default argument or
// variadic pack on a template parameter is rejected rather than parsed
// and discarded (see DESIGN.md).
type TemplateParam struct {
	Name string
}

// Function represents a free function, method, constructor/destructor, or
// operator overload — all four are the one record spec.md §3 specifies,
// discriminated by CtorKind plus the IsOperator/Name fields.
type Function struct {
	TemplateParams []TemplateParam
	IsVirtual      bool
	CtorKind       FunctionCtorKind
	ReturnType     *Type // nil for constructors/destructors
	IsOperator     bool  // Name holds "operator" plus the operator spelling, e.g. "operator==", "operator()"
	Name           string
	Params         []Variable
	IsConst        bool
	RefQualifier   Qualifier // zero value (QualifierRef) is only meaningful if HasRefQualifier
	HasRefQualifier bool
	IsOverride     bool
	Noexcept       string // raw noexcept(...) argument text, empty if absent or bare "noexcept"
	HasNoexcept    bool
	IsConstexpr    bool
	Access         Access
}

// IsMetaFunction reports whether this function matches the meta-function
// signature of spec.md §4.5: constexpr, exactly two meta::type
// parameters, the second const-qualified and otherwise unqualified.
func (f *Function) IsMetaFunction() bool {
	if !f.IsConstexpr || len(f.Params) != 2 {
		return false
	}
	first, second := f.Params[0].Type, f.Params[1].Type
	if first.ScopedName() != "meta::type" || second.ScopedName() != "meta::type" {
		return false
	}
	if len(first.RightQualifiers) != 0 || first.IsConst {
		return false
	}
	if len(second.RightQualifiers) != 0 || !second.IsConst {
		return false
	}
	return true
}

// ClassKind discriminates ordinary classes, structs, and the synthetic
// meta-class fragment pushed while parsing a meta-class instantiation.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindStruct
	ClassKindMetaClass
)

func (k ClassKind) String() string {
	switch k {
	case ClassKindStruct:
		return "STRUCT"
	case ClassKindMetaClass:
		return "META_CLASS"
	default:
		return "CLASS"
	}
}

// BaseClass is one entry of a class's base-class list.
type BaseClass struct {
	Access Access
	Type   Type
}

// Class is the discriminated record for class/struct/meta-class bodies,
// per spec.md §3. Members are partitioned into four buckets by the access
// state active when they were declared.
type Class struct {
	Kind           ClassKind
	Name           string
	TemplateParams []TemplateParam

	CurrentAccess Access // active access state while parsing the body

	Bases []BaseClass

	Methods map[Access][]*Function
	Fields  map[Access][]*Variable

	NestedClasses map[string]*Class
	NestedEnums   map[string]*Enumeration

	// Populated only when Kind == ClassKindMetaClass.
	MetaClassName string
}

// NewClass creates a Class with its member buckets initialized and the
// initial access state per spec.md §4.2: PRIVATE for class, PUBLIC for
// struct (meta-class bodies start PRIVATE, matching "class").
func NewClass(kind ClassKind, name string) *Class {
	initial := AccessPrivate
	if kind == ClassKindStruct {
		initial = AccessPublic
	}
	return &Class{
		Kind:          kind,
		Name:          name,
		CurrentAccess: initial,
		Methods:       make(map[Access][]*Function),
		Fields:        make(map[Access][]*Variable),
		NestedClasses: make(map[string]*Class),
		NestedEnums:   make(map[string]*Enumeration),
	}
}

// AddMethod appends fn to the bucket for the class's current access state.
func (c *Class) AddMethod(fn *Function) {
	fn.Access = c.CurrentAccess
	c.Methods[c.CurrentAccess] = append(c.Methods[c.CurrentAccess], fn)
}

// AddField appends v to the bucket for the class's current access state.
func (c *Class) AddField(v *Variable) {
	c.Fields[c.CurrentAccess] = append(c.Fields[c.CurrentAccess], v)
}

// PublicBases returns base classes declared with public access, in
// declaration order.
func (c *Class) PublicBases() []BaseClass {
	var out []BaseClass
	for _, b := range c.Bases {
		if b.Access == AccessPublic {
			out = append(out, b)
		}
	}
	return out
}

// FieldsInPartitionOrder returns all field buckets concatenated public,
// protected, private — the order spec.md §4.4 specifies for
// data_members/data_member_names/data_member_types.
func (c *Class) FieldsInPartitionOrder() []*Variable {
	var out []*Variable
	for _, a := range []Access{AccessPublic, AccessProtected, AccessPrivate} {
		out = append(out, c.Fields[a]...)
	}
	return out
}

// MethodsInPartitionOrder mirrors FieldsInPartitionOrder for methods,
// including the UNSPECIFIED bucket last (used by the wire protocol's
// "total method count (public + private + protected + unspecified)").
func (c *Class) MethodsInPartitionOrder() []*Function {
	var out []*Function
	for _, a := range AllAccess {
		out = append(out, c.Methods[a]...)
	}
	return out
}

// FieldsAnyOrder mirrors MethodsInPartitionOrder for the wire protocol's
// variable count, which is not specified to follow declaration order.
func (c *Class) FieldsAnyOrder() []*Variable {
	var out []*Variable
	for _, a := range AllAccess {
		out = append(out, c.Fields[a]...)
	}
	return out
}

// EnumKind discriminates a plain `enum` from a scoped `enum class`.
type EnumKind int

const (
	EnumKindPlain EnumKind = iota
	EnumKindScoped
)

// Enumeration is the discriminated record for enum/enum-class bodies.
type Enumeration struct {
	Kind           EnumKind
	Name           string
	UnderlyingType Type
	Enumerators    []string
}

// IsScoped reports whether this is an `enum class`.
func (e *Enumeration) IsScoped() bool {
	return e.Kind == EnumKindScoped
}

// DefaultUnderlyingType is the underlying type an enum gets when no
// `: type` clause is present.
func DefaultUnderlyingType() Type {
	return Type{Name: []string{"int"}}
}

// Namespace holds nested namespaces, classes, enumerations, free
// functions, and variables, keyed by name, per spec.md §3. Functions use
// a slice per name to tolerate overloads, a deliberate widening of the
// spec's "keyed by name" wording recorded as a Decision in DESIGN.md.
type Namespace struct {
	Name       string
	Namespaces map[string]*Namespace
	Classes    map[string]*Class
	Enums      map[string]*Enumeration
	Functions  map[string][]*Function
	Variables  map[string]*Variable
}

// NewNamespace creates an empty namespace with all maps initialized.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:       name,
		Namespaces: make(map[string]*Namespace),
		Classes:    make(map[string]*Class),
		Enums:      make(map[string]*Enumeration),
		Functions:  make(map[string][]*Function),
		Variables:  make(map[string]*Variable),
	}
}

// Scope is an anonymous local block holding locally declared names for
// lookup only, per spec.md §3.
type Scope struct {
	Locals map[string]struct{}
}

// NewScope creates an empty Scope.
func NewScope() *Scope {
	return &Scope{Locals: make(map[string]struct{})}
}

// Declare records name as locally visible in this scope.
func (s *Scope) Declare(name string) {
	if name == "" {
		return
	}
	s.Locals[name] = struct{}{}
}
