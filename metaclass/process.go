package metaclass

import (
	"fmt"
	"strings"

	zppdriver "github.com/dhamidi/zeropp/driver"
	"github.com/dhamidi/zeropp/grammar"
	"github.com/dhamidi/zeropp/lang"
)

// DriverParserID is this package's compile-time-unique driver.Parser ID.
const DriverParserID = 2

// Expander is the subset of Evaluator's API a metaclass.Driver needs,
// so tests can substitute a fake instead of spawning a real subprocess.
type Expander interface {
	Expand(metaClassName, classSource string) (string, error)
}

// Driver is the driver.Parser that recognizes meta-class instantiations
// (`meta-class-name class-name { ... };`, spec.md §4.5) and meta-function
// declarations, and drives the Expander subprocess to turn the former
// into concrete members spliced into the emitted source.
type Driver struct {
	Expander    Expander
	MetaClasses *lang.MetaClassRegistry
}

// NewDriver creates a metaclass.Driver using expander to talk to the
// evaluator subprocess.
func NewDriver(expander Expander, registry *lang.MetaClassRegistry) *Driver {
	return &Driver{Expander: expander, MetaClasses: registry}
}

func (d *Driver) ID() int { return DriverParserID }

// RecordMetaFunction registers fn's name in the meta-class registry
// when it matches spec.md §4.5's meta-function signature. Register as a
// driver.Driver.FunctionDeclHooks entry.
func (d *Driver) RecordMetaFunction(_ *zppdriver.Driver, fn *lang.Function) {
	if fn.IsMetaFunction() {
		d.MetaClasses.Register(fn.Name)
	}
}

// Parse recognizes a meta-class instantiation header — gated by the
// meta-class name already being in the registry (spec.md §4.5: "if the
// next identifier is in the registry") — calls the evaluator to expand
// the class body, and returns the rendered class declaration as the
// text to splice into the emitted source in place of the instantiation
// (spec.md §4.5's "splice that body into the emitted source in place of
// the meta-class declaration").
func (d *Driver) Parse(drv *zppdriver.Driver) (int, string, bool, error) {
	b := drv.Cursor.Remaining()
	n, templateParams, metaClassName, className, bases, ok := matchMetaClassInstantiationHeader(b)
	if !ok {
		return 0, "", false, nil
	}
	if !d.MetaClasses.Has(metaClassName) {
		return 0, "", false, nil
	}
	i := n
	i += grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[i:], "{"); has {
		i += k
	} else {
		return 0, "", false, nil
	}

	bodyStart := i
	bodyLen, ok := grammar.MatchBalanced(b[bodyStart-1:], '{', '}')
	if !ok {
		return 0, "", true, drv.ReportHere(fmt.Sprintf("%s %s: unterminated body", metaClassName, className))
	}
	body := b[bodyStart : bodyStart-1+bodyLen-1]
	i = bodyStart - 1 + bodyLen

	j := i + grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[j:], ";"); has {
		i = j + k
	}

	c := lang.NewClass(lang.ClassKindMetaClass, className)
	c.MetaClassName = metaClassName
	c.TemplateParams = templateParams
	c.Bases = bases

	var generated string
	if d.Expander != nil {
		var err error
		generated, err = d.Expander.Expand(metaClassName, string(body))
		if err != nil {
			return 0, "", true, drv.ReportHere(fmt.Sprintf("%s %s: %v", metaClassName, className, err))
		}
	} else {
		generated = string(body)
	}
	if err := populateClassBody(c, []byte(generated)); err != nil {
		return 0, "", true, drv.ReportHere(fmt.Sprintf("%s %s: %v", metaClassName, className, err))
	}

	drv.AttachClass(c)
	emitted := renderClassDecl(className, bases, generated)
	return i, emitted, true, nil
}

// renderClassDecl renders a standard class declaration for the expanded
// members of a meta-class instantiation — the output language has no
// meta-classes, so the emitted declaration always uses the ordinary
// `class` keyword (spec.md §6: extensions are "expanded to ordinary
// declarations").
func renderClassDecl(className string, bases []lang.BaseClass, body string) string {
	var out strings.Builder
	out.WriteString("class ")
	out.WriteString(className)
	if len(bases) > 0 {
		out.WriteString(" : ")
		for i, base := range bases {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(base.Access.String())
			out.WriteString(" ")
			out.WriteString(base.Type.String())
		}
	}
	out.WriteString(" {\n")
	out.WriteString(body)
	out.WriteString("\n};")
	return out.String()
}

// populateClassBody parses a flat sequence of member declarations
// (fields and function signatures, with or without bodies) and attaches
// each to c. It deliberately does not handle nested classes/enums or
// access-specifier labels beyond what the evaluator is expected to
// already have normalized into the generated source.
func populateClassBody(c *lang.Class, body []byte) error {
	i := 0
	for {
		i += grammar.SkipTrivia(body[i:])
		if i >= len(body) {
			return nil
		}

		if k, has := grammar.MatchKeyword(body[i:], "public"); has {
			j := i + k
			j += grammar.SkipTrivia(body[j:])
			if k2, has := grammar.MatchLiteral(body[j:], ":"); has {
				c.CurrentAccess = lang.AccessPublic
				i = j + k2
				continue
			}
		}
		if k, has := grammar.MatchKeyword(body[i:], "protected"); has {
			j := i + k
			j += grammar.SkipTrivia(body[j:])
			if k2, has := grammar.MatchLiteral(body[j:], ":"); has {
				c.CurrentAccess = lang.AccessProtected
				i = j + k2
				continue
			}
		}
		if k, has := grammar.MatchKeyword(body[i:], "private"); has {
			j := i + k
			j += grammar.SkipTrivia(body[j:])
			if k2, has := grammar.MatchLiteral(body[j:], ":"); has {
				c.CurrentAccess = lang.AccessPrivate
				i = j + k2
				continue
			}
		}

		if k, fn, ok := grammar.MatchFunctionSignature(body[i:]); ok {
			j := i + k
			j2 := j + grammar.SkipTrivia(body[j:])
			if k2, has := grammar.MatchLiteral(body[j2:], ";"); has {
				fnPtr := fn
				c.AddMethod(&fnPtr)
				i = j2 + k2
				continue
			}
			if k2, has := grammar.MatchBalanced(body[j2:], '{', '}'); has {
				fnPtr := fn
				c.AddMethod(&fnPtr)
				i = j2 + k2
				continue
			}
			return fmt.Errorf("expected `;` or `{...}` after function signature %q", fn.Name)
		}

		k, typ, name, ok := grammar.MatchVariableDeclStart(body[i:])
		if !ok {
			return fmt.Errorf("unrecognized member declaration near %q", string(body[i:min(i+30, len(body))]))
		}
		j := i + k
		v := lang.Variable{Type: typ, Name: name}
		j2 := j + grammar.SkipTrivia(body[j:])
		if k2, ok := grammar.MatchInitializer(body[j2:]); ok {
			j2 += k2
		}
		j2 += grammar.SkipTrivia(body[j2:])
		k2, has := grammar.MatchLiteral(body[j2:], ";")
		if !has {
			return fmt.Errorf("expected `;` after field %q", name)
		}
		c.AddField(&v)
		i = j2 + k2
	}
}
