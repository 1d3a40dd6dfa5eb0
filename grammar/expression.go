package grammar

// operatorTokens lists spec.md §4.3's full C-family operator set, plus
// member-access tokens (call `()` and subscript `[]` are not in the
// list), ordered so a longer token is
// always tried before any token that is one of its prefixes (e.g. "<<="
// before "<<" before "<").
var operatorTokens = []string{
	"<<=", ">>=",
	"->*", "&&", "||", "==", "!=", "<=", ">=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"<<", ">>", "++", "--", "->", ".*",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "!", "=", "<", ">", ".",
}

// prefixOperators are the unary prefixes spec.md §4.3 lists for a
// "prefix-operated-variable" argument.
var prefixOperators = []string{"++", "--", "*", "&", "!"}

// MatchOperator matches one token of the operator set described in
// spec.md §4.3.
func MatchOperator(b []byte) (n int, op string, ok bool) {
	for _, tok := range operatorTokens {
		if k, has := MatchLiteral(b, tok); has {
			return k, tok, true
		}
	}
	return 0, "", false
}

// MatchBalanced matches a bracketed span starting with open and ending
// with the matching close, correctly skipping over nested same-pair
// brackets and over string/char literals so a bracket character inside a
// literal does not end the span early. It returns the full span length
// including both delimiters.
func MatchBalanced(b []byte, open, close byte) (int, bool) {
	if len(b) == 0 || b[0] != open {
		return 0, false
	}
	depth := 0
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			if k, ok := matchQuoted(b[i:], '"'); ok {
				i += k
				continue
			}
			return 0, false
		case b[i] == '\'':
			if k, ok := matchQuoted(b[i:], '\''); ok {
				i += k
				continue
			}
			return 0, false
		case b[i] == open:
			depth++
			i++
		case b[i] == close:
			depth--
			i++
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return 0, false
}

// MatchArgument matches one "argument" of spec.md §4.3's expression
// grammar, trying alternatives in the listed order: aggregate
// initialization, function call, prefix-operated variable, number,
// char/string literal, parenthesized expression.
func MatchArgument(b []byte) (int, bool) {
	if n, ok := matchAggregateInit(b); ok {
		return n, true
	}
	if n, ok := matchFunctionCall(b); ok {
		return n, true
	}
	if n, ok := matchPrefixVar(b); ok {
		return n, true
	}
	if n, _, ok := MatchNumber(b); ok {
		return n, true
	}
	if n, ok := MatchCharLiteral(b); ok {
		return n, true
	}
	if n, ok := MatchStringLiteral(b); ok {
		return n, true
	}
	if n, ok := matchParenExpression(b); ok {
		return n, true
	}
	return 0, false
}

func matchAggregateInit(b []byte) (int, bool) {
	n, _, ok := MatchType(b)
	if !ok {
		return 0, false
	}
	i := n + SkipTrivia(b[n:])
	k, ok := MatchBalanced(b[i:], '{', '}')
	if !ok {
		return 0, false
	}
	return i + k, true
}

func matchFunctionCall(b []byte) (int, bool) {
	n, _, ok := MatchScopedName(b)
	if !ok {
		return 0, false
	}
	i := n + SkipTrivia(b[n:])
	if i >= len(b) || b[i] != '(' {
		return 0, false
	}
	k, ok := MatchBalanced(b[i:], '(', ')')
	if !ok {
		return 0, false
	}
	return i + k, true
}

func matchPrefixVar(b []byte) (int, bool) {
	i := 0
	for _, p := range prefixOperators {
		if k, has := MatchLiteral(b, p); has {
			i = k
			break
		}
	}
	n, _, ok := MatchScopedName(b[i:])
	if !ok {
		return 0, false
	}
	i += n
	if k, has := MatchLiteral(b[i:], "++"); has {
		i += k
	} else if k, has := MatchLiteral(b[i:], "--"); has {
		i += k
	}
	return i, true
}

func matchParenExpression(b []byte) (int, bool) {
	return MatchBalanced(b, '(', ')')
}

// MatchExpression matches spec.md §4.3's expression grammar: a sequence
// of `argument` separated by `operator_sep` (optional whitespace, an
// operator, optional whitespace).
func MatchExpression(b []byte) (int, bool) {
	n, ok := MatchArgument(b)
	if !ok {
		return 0, false
	}
	i := n
	for {
		save := i
		j := i + SkipTrivia(b[i:])
		opLen, _, has := MatchOperator(b[j:])
		if !has {
			i = save
			break
		}
		j += opLen
		j += SkipTrivia(b[j:])
		argLen, ok := MatchArgument(b[j:])
		if !ok {
			i = save
			break
		}
		i = j + argLen
	}
	return i, true
}
