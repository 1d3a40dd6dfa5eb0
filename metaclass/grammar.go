package metaclass

import (
	"github.com/dhamidi/zeropp/grammar"
	"github.com/dhamidi/zeropp/lang"
)

// matchMetaClassInstantiationHeader matches a meta-class instantiation
// header at namespace scope: an optional template-parameters clause,
// then `meta-class-name class-name (: base-list)?`, up to (but not
// including) the opening `{` (spec.md §4.5, confirmed by
// original_source/examples/meta_classes/src/main.cpp:20-22's
// `interface shape { ... };`). Registry membership of metaClassName is
// not checked here — the caller looks it up, since this function has no
// access to the driver's registry.
func matchMetaClassInstantiationHeader(b []byte) (n int, templateParams []lang.TemplateParam, metaClassName, className string, bases []lang.BaseClass, ok bool) {
	i := 0
	if k, params, has := grammar.MatchTemplateParams(b[i:]); has {
		i += k
		templateParams = params
		i += grammar.SkipTrivia(b[i:])
	}

	k, name, has := grammar.MatchIdentifier(b[i:])
	if !has {
		return 0, nil, "", "", nil, false
	}
	i += k
	metaClassName = name

	ws, has := grammar.SkipMandatoryTrivia(b[i:])
	if !has {
		return 0, nil, "", "", nil, false
	}
	i += ws

	k, name, has = grammar.MatchIdentifier(b[i:])
	if !has {
		return 0, nil, "", "", nil, false
	}
	i += k
	className = name

	save := i
	j := i + grammar.SkipTrivia(b[i:])
	if k, has := grammar.MatchLiteral(b[j:], ":"); has {
		j += k
		j += grammar.SkipTrivia(b[j:])
		for {
			access := lang.AccessPublic
			if k, has := grammar.MatchKeyword(b[j:], "public"); has {
				access = lang.AccessPublic
				j += k
				j += grammar.SkipTrivia(b[j:])
			} else if k, has := grammar.MatchKeyword(b[j:], "protected"); has {
				access = lang.AccessProtected
				j += k
				j += grammar.SkipTrivia(b[j:])
			} else if k, has := grammar.MatchKeyword(b[j:], "private"); has {
				access = lang.AccessPrivate
				j += k
				j += grammar.SkipTrivia(b[j:])
			}
			k, typ, has := grammar.MatchType(b[j:])
			if !has {
				return 0, nil, "", "", nil, false
			}
			j += k
			bases = append(bases, lang.BaseClass{Access: access, Type: typ})
			j += grammar.SkipTrivia(b[j:])
			if k, has := grammar.MatchLiteral(b[j:], ","); has {
				j += k
				j += grammar.SkipTrivia(b[j:])
				continue
			}
			break
		}
		i = j
	} else {
		i = save
	}

	return i, templateParams, metaClassName, className, bases, true
}
