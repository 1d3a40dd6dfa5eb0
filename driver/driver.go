package driver

import (
	"fmt"
	"strings"

	"github.com/dhamidi/zeropp/grammar"
	"github.com/dhamidi/zeropp/lang"
	"github.com/dhamidi/zeropp/source"
	"github.com/sasha-s/go-deadlock"
)

// Driver walks a source.Cursor through the stack of open code-fragment
// scopes spec.md §3/§5 describe, dispatching each step to the built-in
// "std" rules (grammar package) and then to any registered Parser,
// stopping when nothing can consume the next token. As it goes it
// accumulates the target-language text to write out: spec.md §5's
// ordering guarantees require every parsed construct — reflection and
// meta-class spans included — to appear in source order in that output.
//
// The container kinds of lang.CodeFragment (Namespace/Class/Function/
// Scope/Enumeration) are held on Stack exactly as spec.md §3 models
// them. The seven transient "builder" kinds are not separately pushed
// onto Stack token-by-token here; instead each std rule assembles one
// declaration or statement in a single Parse step (using the grammar
// package's whole-construct matchers) before attaching the finished
// value to the enclosing container. See DESIGN.md for why this
// simplification preserves every invariant spec.md actually tests
// (container nesting, access-partition order, the wire protocol,
// meta-function detection) without replaying a full statement AST.
type Driver struct {
	Cursor   *source.Cursor
	Reporter Reporter

	Root        *lang.Namespace
	Includes    *lang.IncludesSet
	MetaClasses *lang.MetaClassRegistry

	Stack []lang.CodeFragment

	// ClassCloseHooks and EnumCloseHooks fire once a class or enum body
	// has been fully parsed (its closing `}` consumed and emitted),
	// letting a registered component like reflectexpand.Expander append
	// generated text (e.g. a reflection specialization) immediately
	// after, per spec.md §5's ordering guarantee.
	ClassCloseHooks []func(*Driver, *lang.Class)
	EnumCloseHooks  []func(*Driver, *lang.Enumeration)

	// FunctionDeclHooks fire once a function/method signature has been
	// attached to its enclosing container, letting a registered
	// component inspect it (e.g. metaclass.Driver checking
	// Function.IsMetaFunction).
	FunctionDeclHooks []func(*Driver, *lang.Function)

	output strings.Builder

	parsers   []Parser
	parserIDs map[int]bool
	mu        deadlock.Mutex
}

// New creates a Driver rooted at an anonymous global namespace.
func New(cursor *source.Cursor, reporter Reporter) *Driver {
	root := lang.NewNamespace("")
	d := &Driver{
		Cursor:      cursor,
		Reporter:    reporter,
		Root:        root,
		Includes:    lang.NewIncludesSet(),
		MetaClasses: lang.NewMetaClassRegistry(),
		parserIDs:   map[int]bool{StdParserID: true},
	}
	d.Stack = []lang.CodeFragment{lang.NewNamespaceFragment(root)}
	return d
}

// Register adds a Parser, asserting its ID is unique among all
// registered parsers, mirroring the original Preprocessor template's
// compile-time uniqueness check — here necessarily a runtime one.
func (d *Driver) Register(p Parser) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.parserIDs[p.ID()] {
		return fmt.Errorf("driver: parser ID %d already registered", p.ID())
	}
	d.parserIDs[p.ID()] = true
	d.parsers = append(d.parsers, p)
	return nil
}

func (d *Driver) top() *lang.CodeFragment {
	if len(d.Stack) == 0 {
		return nil
	}
	return &d.Stack[len(d.Stack)-1]
}

func (d *Driver) push(f lang.CodeFragment) {
	d.Stack = append(d.Stack, f)
}

func (d *Driver) pop() lang.CodeFragment {
	f := d.Stack[len(d.Stack)-1]
	d.Stack = d.Stack[:len(d.Stack)-1]
	return f
}

func (d *Driver) pos() lang.Position {
	return lang.Position{Row: d.Cursor.Line(), Column: d.Cursor.Column()}
}

// Top returns the fragment on top of the stack, for use by registered
// parsers that need to know the enclosing container.
func (d *Driver) Top() *lang.CodeFragment { return d.top() }

// Push opens a new fragment scope, for use by registered parsers (e.g.
// a meta-class instantiation pushing a synthetic Class fragment).
func (d *Driver) Push(f lang.CodeFragment) { d.push(f) }

// Pop closes the innermost fragment scope.
func (d *Driver) Pop() lang.CodeFragment { return d.pop() }

// Pos returns the driver's current cursor position as a lang.Position.
func (d *Driver) Pos() lang.Position { return d.pos() }

// Emit appends text to the accumulated target-language output. Built-in
// rules call it with their own verbatim source span (pass-through);
// registered parsers and close-hooks call it with generated or rewritten
// text, splicing in place exactly where spec.md §5 says it belongs.
func (d *Driver) Emit(text string) { d.output.WriteString(text) }

// Output returns everything emitted so far, in source order.
func (d *Driver) Output() string { return d.output.String() }

// AttachClass attaches c to the namespace or class on top of the stack,
// exactly as the built-in class-header rule does.
func (d *Driver) AttachClass(c *lang.Class) { d.attachClass(c) }

// AttachFunction attaches fn to the namespace or class on top of the
// stack, exactly as the built-in function-signature rule does.
func (d *Driver) AttachFunction(fn *lang.Function) { d.attachFunction(fn) }

// AttachEnum attaches e to the namespace or class on top of the stack,
// exactly as the built-in enum rule does.
func (d *Driver) AttachEnum(e *lang.Enumeration) { d.attachEnum(e) }

// InsideMetaFunction reports whether the nearest enclosing Function
// fragment on the stack is a meta-function, per spec.md §4.5's
// "inside-meta-function mode". Used by stepStd to recognize target
// outputs, and available to registered parsers for the same purpose.
func (d *Driver) InsideMetaFunction() bool {
	for i := len(d.Stack) - 1; i >= 0; i-- {
		if d.Stack[i].Kind == lang.FragmentFunction {
			return d.Stack[i].Function.IsMetaFunction()
		}
	}
	return false
}

func (d *Driver) report(kind ErrorKind, message string) *Error {
	e := &Error{
		Kind:    kind,
		Line:    d.Cursor.Line(),
		Column:  d.Cursor.Column(),
		Context: d.Cursor.ContextWindow(30),
		Message: message,
	}
	if d.Reporter != nil {
		d.Reporter(e)
	}
	return e
}

// ReportHere builds and reports an ErrParser Error at the driver's
// current cursor position, for use by registered Parser implementations
// that need to fail with the same diagnostic shape the built-in rules
// use.
func (d *Driver) ReportHere(message string) error {
	return d.report(ErrParser, message)
}

// Run drives the cursor to completion, returning the first error
// encountered (also delivered through Reporter). Trivia and everything
// the built-in rules or a registered Parser consumes is emitted to
// Output in source order as it is consumed.
func (d *Driver) Run() error {
	for {
		n := grammar.SkipTrivia(d.Cursor.Remaining())
		if n > 0 {
			d.Emit(string(d.Cursor.Remaining()[:n]))
			d.Cursor.Advance(n)
		}
		if d.Cursor.IsFinished() {
			break
		}

		advanced, err := d.stepStd()
		if err != nil {
			return err
		}
		if !advanced {
			for _, p := range d.parsers {
				consumed, emitted, ok, perr := p.Parse(d)
				if perr != nil {
					return perr
				}
				if !ok {
					continue
				}
				if consumed == 0 {
					return d.report(ErrZeroAdvance, "error in one of the parsers")
				}
				d.Cursor.Advance(consumed)
				d.Emit(emitted)
				advanced = true
				break
			}
		}
		if !advanced {
			return d.report(ErrZeroAdvance, "no parser recognizes the next construct")
		}
	}
	if len(d.Stack) != 1 {
		top := d.top()
		return d.report(ErrStructural, fmt.Sprintf("unterminated %s", top.Kind))
	}
	return nil
}

// Preprocess runs every registered Preprocessor over the fully-parsed
// fragment tree, per spec.md §5's second phase.
func (d *Driver) Preprocess() error {
	for _, p := range d.parsers {
		pp, ok := p.(Preprocessor)
		if !ok {
			continue
		}
		for {
			advanced, err := pp.Preprocess(d)
			if err != nil {
				return err
			}
			if !advanced {
				break
			}
		}
		if err := pp.FinishPreprocess(d); err != nil {
			return err
		}
	}
	return nil
}

// stepStd tries the built-in grammar rules: closing braces, #include,
// access-specifier labels inside a class, namespace/class/enum/function
// headers, variable declarations, and statements inside bodies. It
// returns false, nil when none apply, so the driver falls through to
// registered parsers (e.g. the metaclass package's meta-class rule).
// Every branch that matches is responsible for both advancing the
// cursor and emitting the text it consumes, in place.
func (d *Driver) stepStd() (bool, error) {
	b := d.Cursor.Remaining()
	if len(b) == 0 {
		return false, nil
	}

	if b[0] == '}' {
		return d.stepCloseBrace()
	}

	if n, path, ok := grammar.MatchInclude(b); ok {
		d.Cursor.Advance(n)
		d.Emit(string(b[:n]))
		d.Includes.Add(path)
		return true, nil
	}

	if top := d.top(); top.Kind == lang.FragmentClass {
		for _, a := range []lang.Access{lang.AccessPublic, lang.AccessProtected, lang.AccessPrivate} {
			k, has := grammar.MatchKeyword(b, a.String())
			if !has {
				continue
			}
			j := k + grammar.SkipTrivia(b[k:])
			if k2, has := grammar.MatchLiteral(b[j:], ":"); has {
				top.Class.CurrentAccess = a
				d.Cursor.Advance(j + k2)
				d.Emit(string(b[:j+k2]))
				return true, nil
			}
		}
	}

	if ok, err := d.stepNamespaceOpen(b); err != nil || ok {
		return ok, err
	}

	if ok, err := d.stepClassOpen(b); err != nil || ok {
		return ok, err
	}

	if ok, err := d.stepEnumDecl(b); err != nil || ok {
		return ok, err
	}

	if ok, err := d.stepFunctionDecl(b); err != nil || ok {
		return ok, err
	}

	if ok, err := d.stepVariableDecl(b); err != nil || ok {
		return ok, err
	}

	if top := d.top(); top.Kind == lang.FragmentFunction || top.Kind == lang.FragmentScope {
		if d.InsideMetaFunction() {
			if n, rewritten, ok := grammar.MatchTargetOutput(b); ok {
				d.Cursor.Advance(n)
				d.Emit(rewritten)
				return true, nil
			}
		}
		if n, ok := d.stepBodyStatement(b); ok {
			d.Cursor.Advance(n)
			d.Emit(string(b[:n]))
			return true, nil
		}
	}

	return false, nil
}

func (d *Driver) stepCloseBrace() (bool, error) {
	top := d.top()
	switch top.Kind {
	case lang.FragmentNamespace, lang.FragmentClass, lang.FragmentFunction, lang.FragmentScope, lang.FragmentEnumeration:
		if len(d.Stack) == 1 {
			return false, d.report(ErrStructural, "extraneous closing brace")
		}
		d.Cursor.Advance(1)
		popped := d.pop()

		rest := d.Cursor.Remaining()
		end := grammar.SkipTrivia(rest)
		if k, has := grammar.MatchLiteral(rest[end:], ";"); has {
			end += k
		}
		tail := rest[:end]
		d.Cursor.Advance(end)
		d.Emit("}" + string(tail))

		if popped.Kind == lang.FragmentClass {
			for _, hook := range d.ClassCloseHooks {
				hook(d, popped.Class)
			}
		}
		return true, nil
	default:
		return false, d.report(ErrStructural, "`}` does not close any open scope")
	}
}

func (d *Driver) stepNamespaceOpen(b []byte) (bool, error) {
	i := 0
	k, has := grammar.MatchKeyword(b, "namespace")
	if !has {
		return false, nil
	}
	i += k
	ws, has := grammar.SkipMandatoryTrivia(b[i:])
	if !has {
		return false, nil
	}
	i += ws
	k, name, has := grammar.MatchIdentifier(b[i:])
	if !has {
		return false, nil
	}
	i += k
	i += grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[i:], "{"); has {
		i += k
	} else {
		return false, nil
	}

	if d.top().Kind != lang.FragmentNamespace {
		return true, d.report(ErrStructural, fmt.Sprintf("namespace %s can only be nested inside a namespace", name))
	}
	parent := d.top().Namespace
	child, ok := parent.Namespaces[name]
	if !ok {
		child = lang.NewNamespace(name)
		parent.Namespaces[name] = child
	}
	d.push(lang.NewNamespaceFragment(child))
	d.Cursor.Advance(i)
	d.Emit(string(b[:i]))
	return true, nil
}

func (d *Driver) stepClassOpen(b []byte) (bool, error) {
	n, kind, name, templateParams, bases, ok := grammar.MatchClassHeader(b)
	if !ok {
		return false, nil
	}
	i := n
	i += grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[i:], "{"); has {
		i += k
	} else {
		return false, nil
	}

	if top := d.top(); top.Kind != lang.FragmentNamespace && top.Kind != lang.FragmentClass {
		return true, d.report(ErrStructural, fmt.Sprintf("class %s can only be nested inside a namespace or class", name))
	}
	c := lang.NewClass(kind, name)
	c.TemplateParams = templateParams
	c.Bases = bases
	d.attachClass(c)
	d.push(lang.NewClassFragment(c, d.pos()))
	d.Cursor.Advance(i)
	d.Emit(string(b[:i]))
	return true, nil
}

func (d *Driver) stepEnumDecl(b []byte) (bool, error) {
	n, kind, name, underlying, hasUnderlying, ok := grammar.MatchEnumHeader(b)
	if !ok {
		return false, nil
	}
	i := n
	i += grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[i:], "{"); has {
		i += k
	} else {
		return false, nil
	}

	e := &lang.Enumeration{Kind: kind, Name: name}
	if hasUnderlying {
		e.UnderlyingType = underlying
	} else {
		e.UnderlyingType = lang.DefaultUnderlyingType()
	}

	i += grammar.SkipTrivia(b[i:])
	for i < len(b) && b[i] != '}' {
		k, ident, has := grammar.MatchIdentifier(b[i:])
		if !has {
			return true, d.report(ErrParser, "expected enumerator name")
		}
		i += k
		e.Enumerators = append(e.Enumerators, ident)
		i += grammar.SkipTrivia(b[i:])
		if k, has := grammar.MatchLiteral(b[i:], "="); has {
			i += k
			i += grammar.SkipTrivia(b[i:])
			k2, ok := grammar.MatchExpression(b[i:])
			if !ok {
				return true, d.report(ErrParser, "expected enumerator initializer")
			}
			i += k2
			i += grammar.SkipTrivia(b[i:])
		}
		if k, has := grammar.MatchLiteral(b[i:], ","); has {
			i += k
			i += grammar.SkipTrivia(b[i:])
			continue
		}
		break
	}
	if i >= len(b) || b[i] != '}' {
		return true, d.report(ErrStructural, "unterminated enum")
	}
	i++
	i += grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[i:], ";"); has {
		i += k
	}

	d.attachEnum(e)
	d.Cursor.Advance(i)
	d.Emit(string(b[:i]))
	for _, hook := range d.EnumCloseHooks {
		hook(d, e)
	}
	return true, nil
}

func (d *Driver) stepFunctionDecl(b []byte) (bool, error) {
	n, fn, ok := grammar.MatchFunctionSignature(b)
	if !ok {
		return false, nil
	}
	i := n
	top := d.top()
	if top.Kind == lang.FragmentClass {
		fn.Access = top.Class.CurrentAccess
	}
	isMeta := fn.IsMetaFunction()

	j := i + grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[j:], ";"); has {
		i = j + k
		fnPtr := &fn
		d.attachFunction(fnPtr)
		for _, hook := range d.FunctionDeclHooks {
			hook(d, fnPtr)
		}
		d.Cursor.Advance(i)
		d.Emit(string(b[:i]))
		return true, nil
	}
	if k, has := grammar.MatchLiteral(b[j:], "{"); has {
		i = j + k
		fnPtr := &fn
		d.attachFunction(fnPtr)
		for _, hook := range d.FunctionDeclHooks {
			hook(d, fnPtr)
		}
		d.push(lang.NewFunctionFragment(fnPtr, d.pos()))
		d.Cursor.Advance(i)
		text := string(b[:i])
		if isMeta {
			text = stripConstexprKeyword(text)
		}
		d.Emit(text)
		return true, nil
	}
	return false, nil
}

func (d *Driver) stepVariableDecl(b []byte) (bool, error) {
	n, typ, name, ok := grammar.MatchVariableDeclStart(b)
	if !ok {
		return false, nil
	}
	i := n
	var declarators []lang.Variable
	for {
		v := lang.Variable{Type: typ, Name: name}
		declarators = append(declarators, v)
		j := i + grammar.SkipTrivia(b[i:])
		if k, ok := grammar.MatchInitializer(b[j:]); ok {
			j += k
		}
		i = j
		i += grammar.SkipTrivia(b[i:])
		if k, has := grammar.MatchLiteral(b[i:], ","); has {
			i += k
			i += grammar.SkipTrivia(b[i:])
			k2, nm, ok := grammar.MatchDeclaratorName(b[i:])
			if !ok {
				return true, d.report(ErrParser, "expected declarator name")
			}
			i += k2
			name = nm
			continue
		}
		break
	}
	i += grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[i:], ";"); has {
		i += k
	} else {
		// Not a variable declaration (e.g. a meta-class instantiation
		// header such as `interface Shape {`): let registered parsers try.
		return false, nil
	}

	top := d.top()
	for _, v := range declarators {
		vv := v
		switch top.Kind {
		case lang.FragmentClass:
			top.Class.AddField(&vv)
		case lang.FragmentNamespace:
			top.Namespace.Variables[vv.Name] = &vv
		case lang.FragmentFunction, lang.FragmentScope:
			if top.Kind == lang.FragmentScope {
				top.Scope.Declare(vv.Name)
			}
		}
	}
	d.Cursor.Advance(i)
	d.Emit(string(b[:i]))
	return true, nil
}

// stepBodyStatement consumes one statement inside a function/scope body:
// a nested block (fully skipped, since statement-level semantics inside
// bodies are outside SPEC_FULL.md's scope beyond delimiting scopes), or
// a simple statement up to its terminating `;`.
func (d *Driver) stepBodyStatement(b []byte) (int, bool) {
	if len(b) > 0 && b[0] == '{' {
		n, ok := grammar.MatchBalanced(b, '{', '}')
		if ok {
			return n, true
		}
		return 0, false
	}
	n, ok := grammar.MatchStatementText(b)
	return n, ok
}

// stripConstexprKeyword removes a leading "constexpr" keyword (and its
// trailing trivia) from the verbatim text of a meta-function's
// signature, leaving any "virtual" keyword and the rest of the
// signature untouched. spec.md §4.5: "the driver strips the constexpr
// keyword from the written-out copy of the function."
func stripConstexprKeyword(text string) string {
	b := []byte(text)
	i := 0
	var out []byte
	for {
		if k, has := grammar.MatchKeyword(b[i:], "virtual"); has {
			out = append(out, b[i:i+k]...)
			i += k
			t := grammar.SkipTrivia(b[i:])
			out = append(out, b[i:i+t]...)
			i += t
			continue
		}
		if k, has := grammar.MatchKeyword(b[i:], "constexpr"); has {
			i += k
			i += grammar.SkipTrivia(b[i:])
			continue
		}
		break
	}
	out = append(out, b[i:]...)
	return string(out)
}

func (d *Driver) attachClass(c *lang.Class) {
	top := d.top()
	switch top.Kind {
	case lang.FragmentClass:
		top.Class.NestedClasses[c.Name] = c
	default:
		top.Namespace.Classes[c.Name] = c
	}
}

func (d *Driver) attachEnum(e *lang.Enumeration) {
	top := d.top()
	switch top.Kind {
	case lang.FragmentClass:
		top.Class.NestedEnums[e.Name] = e
	default:
		top.Namespace.Enums[e.Name] = e
	}
}

func (d *Driver) attachFunction(fn *lang.Function) {
	top := d.top()
	switch top.Kind {
	case lang.FragmentClass:
		top.Class.AddMethod(fn)
	case lang.FragmentNamespace:
		top.Namespace.Functions[fn.Name] = append(top.Namespace.Functions[fn.Name], fn)
	}
}
