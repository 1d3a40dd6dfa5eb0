package grammar

import "github.com/dhamidi/zeropp/lang"

// MatchType matches spec.md §4.3's type grammar: optional `constexpr`,
// optional `const`, scoped name, optional template argument list, and an
// optional trailing qualifier chain of `&`/`&&` or one-or-more `*` each
// optionally followed by `const`.
func MatchType(b []byte) (n int, typ lang.Type, ok bool) {
	i := 0
	if k, has := MatchKeyword(b[i:], "constexpr"); has {
		typ.IsConstexpr = true
		i += k
		i += SkipTrivia(b[i:])
	}
	if k, has := MatchKeyword(b[i:], "const"); has {
		typ.IsConst = true
		i += k
		i += SkipTrivia(b[i:])
	}

	k, parts, ok := MatchScopedName(b[i:])
	if !ok {
		return 0, lang.Type{}, false
	}
	i += k
	typ.Name = parts

	save := i
	j := i + SkipTrivia(b[i:])
	if k, has := MatchLiteral(b[j:], "<"); has {
		j += k
		args, k2, ok := matchTemplateArgs(b[j:])
		if ok {
			j += k2
			j += SkipTrivia(b[j:])
			if k3, has := MatchLiteral(b[j:], ">"); has {
				j += k3
				typ.TemplateArgs = args
				i = j
			} else {
				i = save
			}
		} else {
			i = save
		}
	}

	// trailing qualifier chain
	for {
		save = i
		j = i + SkipTrivia(b[i:])
		if k, has := MatchLiteral(b[j:], "&&"); has {
			typ.RightQualifiers = append(typ.RightQualifiers, lang.Qualifier{Kind: lang.QualifierRvalueRef})
			i = j + k
			break
		}
		if k, has := MatchLiteral(b[j:], "&"); has {
			typ.RightQualifiers = append(typ.RightQualifiers, lang.Qualifier{Kind: lang.QualifierRef})
			i = j + k
			break
		}
		if k, has := MatchLiteral(b[j:], "*"); has {
			j += k
			q := lang.Qualifier{Kind: lang.QualifierPointer}
			save2 := j
			j2 := j + SkipTrivia(b[j:])
			if k2, has := MatchKeyword(b[j2:], "const"); has {
				q.PtrIsConst = true
				j = j2 + k2
			} else {
				j = save2
			}
			typ.RightQualifiers = append(typ.RightQualifiers, q)
			i = j
			continue
		}
		i = save
		break
	}

	return i, typ, true
}

// matchTemplateArgs matches a comma-separated list of template
// arguments, each either a Type or a numeric literal.
func matchTemplateArgs(b []byte) (args []lang.TemplateArg, n int, ok bool) {
	i := SkipTrivia(b)
	for {
		arg, k, matched := matchTemplateArg(b[i:])
		if !matched {
			return nil, 0, false
		}
		i += k
		args = append(args, arg)
		save := i
		j := i + SkipTrivia(b[i:])
		if k2, has := MatchLiteral(b[j:], ","); has {
			j += k2
			j += SkipTrivia(b[j:])
			i = j
			continue
		}
		i = save
		break
	}
	return args, i, true
}

func matchTemplateArg(b []byte) (lang.TemplateArg, int, bool) {
	if n, typ, ok := MatchType(b); ok {
		t := typ
		return lang.TemplateArg{Type: &t}, n, true
	}
	if n, lit, ok := MatchNumber(b); ok {
		return lang.TemplateArg{Literal: lit}, n, true
	}
	return lang.TemplateArg{}, 0, false
}
