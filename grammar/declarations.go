package grammar

import "github.com/dhamidi/zeropp/lang"

// MatchTemplateParams matches `template < (typename|class) ident (, ...) >`.
func MatchTemplateParams(b []byte) (n int, params []lang.TemplateParam, ok bool) {
	i := 0
	k, has := MatchKeyword(b[i:], "template")
	if !has {
		return 0, nil, false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has = MatchLiteral(b[i:], "<"); !has {
		return 0, nil, false
	}
	i += k
	i += SkipTrivia(b[i:])
	for {
		if k, has = MatchKeyword(b[i:], "typename"); has {
			i += k
		} else if k, has = MatchKeyword(b[i:], "class"); has {
			i += k
		} else {
			return 0, nil, false
		}
		i += SkipTrivia(b[i:])
		k, name, has := MatchIdentifier(b[i:])
		if !has {
			return 0, nil, false
		}
		i += k
		params = append(params, lang.TemplateParam{Name: name})
		i += SkipTrivia(b[i:])
		if k, has = MatchLiteral(b[i:], ","); has {
			i += k
			i += SkipTrivia(b[i:])
			continue
		}
		break
	}
	if k, has = MatchLiteral(b[i:], ">"); !has {
		return 0, nil, false
	}
	i += k
	return i, params, true
}

// MatchClassHeader matches `[template<...>] (class|struct) name [: base-list]`
// up to (but not including) the opening `{`.
func MatchClassHeader(b []byte) (n int, kind lang.ClassKind, name string, templateParams []lang.TemplateParam, bases []lang.BaseClass, ok bool) {
	i := 0
	if k, params, has := MatchTemplateParams(b[i:]); has {
		i += k
		templateParams = params
		i += SkipTrivia(b[i:])
	}
	if k, has := MatchKeyword(b[i:], "class"); has {
		kind = lang.ClassKindClass
		i += k
	} else if k, has := MatchKeyword(b[i:], "struct"); has {
		kind = lang.ClassKindStruct
		i += k
	} else {
		return 0, 0, "", nil, nil, false
	}
	if ws, has := SkipMandatoryTrivia(b[i:]); has {
		i += ws
	} else {
		return 0, 0, "", nil, nil, false
	}
	k, nm, has := MatchIdentifier(b[i:])
	if !has {
		return 0, 0, "", nil, nil, false
	}
	i += k
	name = nm

	save := i
	j := i + SkipTrivia(b[i:])
	if k, has := MatchLiteral(b[j:], ":"); has {
		j += k
		j += SkipTrivia(b[j:])
		for {
			access := lang.AccessPrivate
			if kind == lang.ClassKindStruct {
				access = lang.AccessPublic
			}
			if k, has := MatchKeyword(b[j:], "public"); has {
				access = lang.AccessPublic
				j += k
				j += SkipTrivia(b[j:])
			} else if k, has := MatchKeyword(b[j:], "protected"); has {
				access = lang.AccessProtected
				j += k
				j += SkipTrivia(b[j:])
			} else if k, has := MatchKeyword(b[j:], "private"); has {
				access = lang.AccessPrivate
				j += k
				j += SkipTrivia(b[j:])
			}
			k, typ, has := MatchType(b[j:])
			if !has {
				return 0, 0, "", nil, nil, false
			}
			j += k
			bases = append(bases, lang.BaseClass{Access: access, Type: typ})
			j += SkipTrivia(b[j:])
			if k, has := MatchLiteral(b[j:], ","); has {
				j += k
				j += SkipTrivia(b[j:])
				continue
			}
			break
		}
		i = j
	} else {
		i = save
	}
	return i, kind, name, templateParams, bases, true
}

// MatchEnumHeader matches `enum [class] name [: underlying-type]` up to
// (but not including) the opening `{`.
func MatchEnumHeader(b []byte) (n int, kind lang.EnumKind, name string, underlying lang.Type, hasUnderlying bool, ok bool) {
	i := 0
	k, has := MatchKeyword(b[i:], "enum")
	if !has {
		return 0, 0, "", lang.Type{}, false, false
	}
	i += k
	i += SkipTrivia(b[i:])
	kind = lang.EnumKindPlain
	if k, has := MatchKeyword(b[i:], "class"); has {
		kind = lang.EnumKindScoped
		i += k
		i += SkipTrivia(b[i:])
	} else if k, has := MatchKeyword(b[i:], "struct"); has {
		kind = lang.EnumKindScoped
		i += k
		i += SkipTrivia(b[i:])
	}
	k, nm, has := MatchIdentifier(b[i:])
	if !has {
		return 0, 0, "", lang.Type{}, false, false
	}
	i += k
	name = nm

	save := i
	j := i + SkipTrivia(b[i:])
	if k, has := MatchLiteral(b[j:], ":"); has {
		j += k
		j += SkipTrivia(b[j:])
		k, typ, has := MatchType(b[j:])
		if !has {
			return 0, 0, "", lang.Type{}, false, false
		}
		j += k
		underlying = typ
		hasUnderlying = true
		i = j
	} else {
		i = save
	}
	return i, kind, name, underlying, hasUnderlying, true
}

// MatchVariableDeclStart matches the type and first declarator name that
// open a variable declaration, e.g. `int x` in `int x = 5, y = 6;`. The
// remaining declarators are consumed one at a time by the driver via
// MatchDeclaratorName/MatchInitializer as it walks the declarator list.
func MatchVariableDeclStart(b []byte) (n int, typ lang.Type, name string, ok bool) {
	k, t, has := MatchType(b)
	if !has {
		return 0, lang.Type{}, "", false
	}
	i := k
	ws, has := SkipMandatoryTrivia(b[i:])
	if !has {
		return 0, lang.Type{}, "", false
	}
	i += ws
	k, nm, has := MatchIdentifier(b[i:])
	if !has {
		return 0, lang.Type{}, "", false
	}
	return i + k, t, nm, true
}

// MatchDeclaratorName matches a bare declarator name, used for the
// second and later declarators in a comma-separated declaration.
func MatchDeclaratorName(b []byte) (int, string, bool) {
	return MatchIdentifier(b)
}

// MatchInitializer matches `= expression` and returns the length of the
// whole initializer including the `=`.
func MatchInitializer(b []byte) (int, bool) {
	i := 0
	k, has := MatchLiteral(b[i:], "=")
	if !has {
		return 0, false
	}
	i += k
	i += SkipTrivia(b[i:])
	k, ok := MatchExpression(b[i:])
	if !ok {
		return 0, false
	}
	return i + k, true
}

// MatchForRangeHeader matches `for ( Type name : expression )` up to and
// including the closing `)`.
func MatchForRangeHeader(b []byte) (n int, typ lang.Type, name string, ok bool) {
	i := 0
	k, has := MatchKeyword(b[i:], "for")
	if !has {
		return 0, lang.Type{}, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has = MatchLiteral(b[i:], "("); !has {
		return 0, lang.Type{}, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	k, t, ok := MatchType(b[i:])
	if !ok {
		return 0, lang.Type{}, "", false
	}
	i += k
	ws, has := SkipMandatoryTrivia(b[i:])
	if !has {
		return 0, lang.Type{}, "", false
	}
	i += ws
	k, nm, ok := MatchIdentifier(b[i:])
	if !ok {
		return 0, lang.Type{}, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has = MatchLiteral(b[i:], ":"); !has {
		return 0, lang.Type{}, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	k, ok = MatchExpression(b[i:])
	if !ok {
		return 0, lang.Type{}, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has = MatchLiteral(b[i:], ")"); !has {
		return 0, lang.Type{}, "", false
	}
	i += k
	return i, t, nm, true
}

// MatchForClassicHeader matches `for ( ... ; ... ; ... )` up to and
// including the closing `)`, without interpreting the three clauses.
func MatchForClassicHeader(b []byte) (int, bool) {
	i := 0
	k, has := MatchKeyword(b[i:], "for")
	if !has {
		return 0, false
	}
	i += k
	i += SkipTrivia(b[i:])
	k, ok := MatchBalanced(b[i:], '(', ')')
	if !ok {
		return 0, false
	}
	return i + k, true
}

// MatchIfHeader matches `if [constexpr] (` and returns whether the
// constexpr qualifier was present; it does not consume the condition or
// the closing paren, since the condition may itself declare a variable.
// The driver does not call it; `if` statements inside bodies are consumed
// as opaque statement text.
func MatchIfHeader(b []byte) (n int, hasConstexpr bool, ok bool) {
	i := 0
	k, has := MatchKeyword(b[i:], "if")
	if !has {
		return 0, false, false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has := MatchKeyword(b[i:], "constexpr"); has {
		hasConstexpr = true
		i += k
		i += SkipTrivia(b[i:])
	}
	if k, has := MatchLiteral(b[i:], "("); !has {
		return 0, false, false
	} else {
		i += k
	}
	return i, hasConstexpr, true
}

// MatchFunctionSignature matches a function/method/constructor/
// destructor/operator-overload signature up to (but not including) the
// opening `{` or the terminating `;`.
func MatchFunctionSignature(b []byte) (n int, fn lang.Function, ok bool) {
	i := 0
	if k, params, has := MatchTemplateParams(b[i:]); has {
		fn.TemplateParams = params
		i += k
		i += SkipTrivia(b[i:])
	}
	for {
		if k, has := MatchKeyword(b[i:], "virtual"); has {
			fn.IsVirtual = true
			i += k
			i += SkipTrivia(b[i:])
			continue
		}
		if k, has := MatchKeyword(b[i:], "constexpr"); has {
			fn.IsConstexpr = true
			i += k
			i += SkipTrivia(b[i:])
			continue
		}
		break
	}

	save := i
	if k, name, has := MatchIdentifier(b[i:]); has {
		j := i + k
		j2 := j + SkipTrivia(b[j:])
		if k2, has := MatchLiteral(b[j2:], "("); has {
			_ = k2
			fn.CtorKind = lang.CtorKindCtor
			fn.Name = name
			i = j
			goto params
		}
	}
	i = save
	if k, has := MatchLiteral(b[i:], "~"); has {
		j := i + k
		k2, name, has := MatchIdentifier(b[j:])
		if !has {
			return 0, lang.Function{}, false
		}
		j += k2
		fn.CtorKind = lang.CtorKindDtor
		fn.Name = "~" + name
		i = j
		goto params
	}

	{
		k, retType, ok := MatchType(b[i:])
		if !ok {
			return 0, lang.Function{}, false
		}
		i += k
		fn.ReturnType = &retType
		ws, has := SkipMandatoryTrivia(b[i:])
		if !has {
			return 0, lang.Function{}, false
		}
		i += ws
		if k, has := MatchKeyword(b[i:], "operator"); has {
			fn.IsOperator = true
			i += k
			i += SkipTrivia(b[i:])
			opLen, op, has := MatchOperator(b[i:])
			if !has {
				if k, has := MatchLiteral(b[i:], "()"); has {
					i += k
					fn.Name = "operator()"
				} else if k, has := MatchLiteral(b[i:], "[]"); has {
					i += k
					fn.Name = "operator[]"
				} else {
					return 0, lang.Function{}, false
				}
			} else {
				i += opLen
				fn.Name = "operator" + op
			}
		} else {
			k, name, has := MatchIdentifier(b[i:])
			if !has {
				return 0, lang.Function{}, false
			}
			i += k
			fn.Name = name
		}
	}

params:
	i += SkipTrivia(b[i:])
	k, params, ok := matchParamList(b[i:])
	if !ok {
		return 0, lang.Function{}, false
	}
	i += k
	fn.Params = params

	for {
		save := i
		j := i + SkipTrivia(b[i:])
		if k, has := MatchKeyword(b[j:], "const"); has {
			fn.IsConst = true
			i = j + k
			continue
		}
		if k, has := MatchLiteral(b[j:], "&&"); has {
			fn.RefQualifier = lang.Qualifier{Kind: lang.QualifierRvalueRef}
			fn.HasRefQualifier = true
			i = j + k
			continue
		}
		if k, has := MatchLiteral(b[j:], "&"); has {
			fn.RefQualifier = lang.Qualifier{Kind: lang.QualifierRef}
			fn.HasRefQualifier = true
			i = j + k
			continue
		}
		if k, has := MatchKeyword(b[j:], "noexcept"); has {
			fn.HasNoexcept = true
			j += k
			save2 := j
			j2 := j + SkipTrivia(b[j:])
			if k2, ok := MatchBalanced(b[j2:], '(', ')'); ok {
				fn.Noexcept = string(b[j2 : j2+k2])
				j = j2 + k2
			} else {
				j = save2
			}
			i = j
			continue
		}
		if k, has := MatchKeyword(b[j:], "override"); has {
			fn.IsOverride = true
			i = j + k
			continue
		}
		if k, has := MatchLiteral(b[j:], "="); has {
			j += k
			j += SkipTrivia(b[j:])
			if k2, has := MatchKeyword(b[j:], "default"); has {
				j += k2
				i = j
				continue
			}
			if k2, has := MatchKeyword(b[j:], "delete"); has {
				j += k2
				i = j
				continue
			}
			if k2, has := MatchLiteral(b[j:], "0"); has {
				fn.IsVirtual = true
				j += k2
				i = j
				continue
			}
		}
		i = save
		break
	}

	return i, fn, true
}

func matchParamList(b []byte) (int, []lang.Variable, bool) {
	if len(b) == 0 || b[0] != '(' {
		return 0, nil, false
	}
	i := 1
	i += SkipTrivia(b[i:])
	var params []lang.Variable
	if i < len(b) && b[i] == ')' {
		return i + 1, params, true
	}
	for {
		k, typ, ok := MatchType(b[i:])
		if !ok {
			return 0, nil, false
		}
		i += k
		name := ""
		save := i
		ws := SkipTrivia(b[i:])
		if k, nm, has := MatchIdentifier(b[i+ws:]); has {
			name = nm
			i = i + ws + k
		} else {
			i = save
		}
		params = append(params, lang.Variable{Type: typ, Name: name})
		i += SkipTrivia(b[i:])
		if i < len(b) && b[i] == ',' {
			i++
			i += SkipTrivia(b[i:])
			continue
		}
		break
	}
	if i >= len(b) || b[i] != ')' {
		return 0, nil, false
	}
	return i + 1, params, true
}
