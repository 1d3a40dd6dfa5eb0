package lang

// Position is a row/column location in a source buffer, attached to
// builder fragments so driver errors can point at where a construct
// started.
type Position struct {
	Row    int
	Column int
}

// FragmentKind discriminates the tagged variant spec.md §3 calls a "code
// fragment". The first five are long-lived containers; the remaining
// seven are transient builder fragments consumed when their closing
// token is seen.
type FragmentKind int

const (
	FragmentNamespace FragmentKind = iota
	FragmentClass
	FragmentFunction
	FragmentScope
	FragmentEnumeration

	FragmentStatement
	FragmentExpression
	FragmentRoundExpression
	FragmentCurlyExpression
	FragmentVars
	FragmentIfStatement
	FragmentFunctionDeclaration
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentNamespace:
		return "Namespace"
	case FragmentClass:
		return "Class"
	case FragmentFunction:
		return "Function"
	case FragmentScope:
		return "Scope"
	case FragmentEnumeration:
		return "Enumeration"
	case FragmentStatement:
		return "Statement"
	case FragmentExpression:
		return "Expression"
	case FragmentRoundExpression:
		return "RoundExpression"
	case FragmentCurlyExpression:
		return "CurlyExpression"
	case FragmentVars:
		return "Vars"
	case FragmentIfStatement:
		return "IfStatement"
	case FragmentFunctionDeclaration:
		return "FunctionDeclaration"
	default:
		return "Unknown"
	}
}

// IsBuilder reports whether this fragment kind is one of the seven
// transient, multi-token accumulator fragments spec.md §3 calls out
// ("builder fragments").
func (k FragmentKind) IsBuilder() bool {
	return k >= FragmentStatement
}

// IsContainer reports whether this fragment kind is one of the five
// long-lived container fragments the driver's main loop dispatches on.
func (k FragmentKind) IsContainer() bool {
	return !k.IsBuilder()
}

// ExpressionBuilder accumulates the tokens of an in-progress expression.
// IsBegin tracks whether the next argument starts a fresh operand (true)
// or should be read as a trailing postfix/binary continuation (false),
// mirroring the "Expression.is_begin" state spec.md §3 names explicitly.
type ExpressionBuilder struct {
	IsBegin bool
	Text    string
}

// VarsState tracks how far a multi-declarator variable-declaration
// statement has progressed.
type VarsState int

const (
	VarsExpectName VarsState = iota
	VarsExpectInitOrComma
	VarsDone
)

// VarsBuilder accumulates a (possibly multi-declarator) variable
// declaration statement: `type name (= init)? (, name (= init)?)* ;`.
type VarsBuilder struct {
	State      VarsState
	DeclType   Type
	Declarators []Variable
	Text       string
}

// IfState tracks how far an if-expression has progressed.
type IfState int

const (
	IfExpectCondition IfState = iota
	IfExpectBody
	IfExpectElseOrDone
	IfDone
)

// IfStatementBuilder accumulates an `if` (optionally `constexpr`,
// optionally with an init-var) statement, including a trailing `else`.
type IfStatementBuilder struct {
	State       IfState
	HasConstexpr bool
	Text        string
}

// FunctionDeclarationBuilder accumulates a function/operator/
// constructor/destructor signature up to its body or trailing `;`.
type FunctionDeclarationBuilder struct {
	Partial Function
	Text    string
}

// BalancedBuilder is the shared shape of the remaining builder
// fragments (Statement, RoundExpression, CurlyExpression): they accumulate
// raw text until a balanced closer is seen, tracking nested-depth so an
// inner `(...)` or `{...}` doesn't prematurely end the outer one.
type BalancedBuilder struct {
	Depth int
	Text  string
}

// CodeFragment is the tagged-variant value the parser stack holds, per
// spec.md §3. Exactly one of the payload pointers below is non-nil,
// selected by Kind — the idiomatic Go substitute for a sum type, matching
// the discriminator-field style the teacher's own model types use
// (java/model.go's ClassKind/Visibility) rather than an interface-based
// visitor hierarchy.
type CodeFragment struct {
	Kind FragmentKind
	Pos  Position

	Namespace   *Namespace
	Class       *Class
	Function    *Function
	Scope       *Scope
	Enumeration *Enumeration

	Statement           *BalancedBuilder
	Expression          *ExpressionBuilder
	RoundExpression     *BalancedBuilder
	CurlyExpression     *BalancedBuilder
	Vars                *VarsBuilder
	IfStatement         *IfStatementBuilder
	FunctionDeclaration *FunctionDeclarationBuilder
}

// NewNamespaceFragment wraps ns as a Namespace code fragment.
func NewNamespaceFragment(ns *Namespace) CodeFragment {
	return CodeFragment{Kind: FragmentNamespace, Namespace: ns}
}

// NewClassFragment wraps c as a Class code fragment.
func NewClassFragment(c *Class, pos Position) CodeFragment {
	return CodeFragment{Kind: FragmentClass, Class: c, Pos: pos}
}

// NewFunctionFragment wraps fn as a Function code fragment.
func NewFunctionFragment(fn *Function, pos Position) CodeFragment {
	return CodeFragment{Kind: FragmentFunction, Function: fn, Pos: pos}
}

// NewScopeFragment wraps s as a Scope code fragment.
func NewScopeFragment(s *Scope, pos Position) CodeFragment {
	return CodeFragment{Kind: FragmentScope, Scope: s, Pos: pos}
}

// NewEnumerationFragment wraps e as an Enumeration code fragment.
func NewEnumerationFragment(e *Enumeration, pos Position) CodeFragment {
	return CodeFragment{Kind: FragmentEnumeration, Enumeration: e, Pos: pos}
}
