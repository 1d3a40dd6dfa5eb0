// Package grammar implements the declarative, combinator-style rules of
// the "std" parser (spec.md §4.3): tokens, types, expressions, and the
// declaration headers the driver needs to delimit declarations and know
// where a scope opens and closes.
//
// Every Match* function takes the unconsumed suffix of the source buffer
// and returns how many bytes it matched; it never mutates shared state,
// so the driver stays in full control of when to actually advance the
// cursor. Alternatives are always tried in the order spec.md §4.3 lists
// them and the first match wins — longest-match backtracking is
// deliberately not implemented, matching the spec's tie-break rule.
package grammar

// SkipTrivia consumes zero or more of: space, tab, newline, `// ...`
// line comments, and `/* ... */` block comments, returning the number of
// bytes consumed. This folds the original grammar's separate `comment`
// alternative into whitespace-skipping (see DESIGN.md).
func SkipTrivia(b []byte) int {
	i := 0
	for i < len(b) {
		switch {
		case b[i] == ' ' || b[i] == '\t' || b[i] == '\r' || b[i] == '\n':
			i++
		case i+1 < len(b) && b[i] == '/' && b[i+1] == '/':
			i += 2
			for i < len(b) && b[i] != '\n' {
				i++
			}
		case i+1 < len(b) && b[i] == '/' && b[i+1] == '*':
			i += 2
			for i+1 < len(b) && !(b[i] == '*' && b[i+1] == '/') {
				i++
			}
			if i+1 < len(b) {
				i += 2
			} else {
				i = len(b)
			}
		default:
			return i
		}
	}
	return i
}

// SkipMandatoryTrivia consumes SkipTrivia's trivia but requires at least
// one byte be consumed, for contexts where two tokens must be separated
// (e.g. `namespace` and its name).
func SkipMandatoryTrivia(b []byte) (int, bool) {
	n := SkipTrivia(b)
	return n, n > 0
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// MatchIdentifier matches `[A-Za-z_][A-Za-z0-9_]*`.
func MatchIdentifier(b []byte) (n int, name string, ok bool) {
	if len(b) == 0 || !isIdentStart(b[0]) {
		return 0, "", false
	}
	i := 1
	for i < len(b) && isIdentCont(b[i]) {
		i++
	}
	return i, string(b[:i]), true
}

// MatchKeyword matches the literal keyword kw only when it is not
// immediately followed by another identifier character (so "classic"
// does not match the keyword "class").
func MatchKeyword(b []byte, kw string) (int, bool) {
	if len(b) < len(kw) || string(b[:len(kw)]) != kw {
		return 0, false
	}
	if len(b) > len(kw) && isIdentCont(b[len(kw)]) {
		return 0, false
	}
	return len(kw), true
}

// MatchLiteral matches the literal byte sequence s verbatim (for
// punctuation/operator tokens, which have no identifier-boundary rule).
func MatchLiteral(b []byte, s string) (int, bool) {
	if len(b) < len(s) || string(b[:len(s)]) != s {
		return 0, false
	}
	return len(s), true
}

// MatchScopedName matches `identifier (:: identifier)*`.
func MatchScopedName(b []byte) (n int, parts []string, ok bool) {
	i, first, ok := MatchIdentifier(b)
	if !ok {
		return 0, nil, false
	}
	parts = []string{first}
	for {
		save := i
		ws := SkipTrivia(b[i:])
		j := i + ws
		if n2, has := MatchLiteral(b[j:], "::"); has {
			j += n2
			j += SkipTrivia(b[j:])
			k, ident, ok := MatchIdentifier(b[j:])
			if !ok {
				i = save
				break
			}
			j += k
			parts = append(parts, ident)
			i = j
			continue
		}
		i = save
		break
	}
	return i, parts, true
}

// MatchInclude matches `# ws include ws (<path> | "path")` and returns
// the unquoted path text.
func MatchInclude(b []byte) (n int, path string, ok bool) {
	i := SkipTrivia(b)
	k, has := MatchLiteral(b[i:], "#")
	if !has {
		return 0, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	k, has = MatchKeyword(b[i:], "include")
	if !has {
		return 0, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	if i >= len(b) {
		return 0, "", false
	}
	var closer byte
	switch b[i] {
	case '<':
		closer = '>'
	case '"':
		closer = '"'
	default:
		return 0, "", false
	}
	start := i + 1
	j := start
	for j < len(b) && b[j] != closer {
		j++
	}
	if j >= len(b) {
		return 0, "", false
	}
	return j + 1, string(b[start:j]), true
}

// MatchNumber matches an integer (optionally signed, with digit-group
// separators and an integer suffix) or a floating literal (mandatory
// dot, optional fraction, optional exponent, optional suffix).
func MatchNumber(b []byte) (n int, literal string, ok bool) {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}
	start := i
	digits := func(j int) int {
		for j < len(b) {
			if isDigit(b[j]) {
				j++
			} else if b[j] == '\'' && j+1 < len(b) && isDigit(b[j+1]) {
				j++
			} else {
				break
			}
		}
		return j
	}
	i = digits(i)
	if i == start {
		return 0, "", false
	}
	isFloat := false
	if i < len(b) && b[i] == '.' {
		isFloat = true
		i++
		i = digits(i)
		if i+1 < len(b) && (b[i] == 'e' || b[i] == 'E') {
			j := i + 1
			if j < len(b) && (b[j] == '+' || b[j] == '-') {
				j++
			}
			j2 := digits(j)
			if j2 > j {
				i = j2
			}
		}
	}
	if isFloat {
		if i < len(b) {
			switch b[i] {
			case 'f', 'F', 'l', 'L':
				i++
			}
		}
		return i, string(b[:i]), true
	}

	// integer suffix: u/l/ll/ull/llu in any case combination
	suffixes := []string{
		"ull", "llu", "Ull", "llU", "uLL", "LLu", "ULL", "LLU",
		"ll", "LL", "Ll", "lL",
		"u", "U", "l", "L",
	}
	for _, s := range suffixes {
		if k, has := MatchLiteral(b[i:], s); has {
			i += k
			break
		}
	}
	return i, string(b[:i]), true
}

// MatchStringLiteral matches a double-quote-delimited string literal.
// Escape handling is not required by spec.md §4.3; a backslash simply
// protects the following byte from ending the literal.
func MatchStringLiteral(b []byte) (int, bool) {
	return matchQuoted(b, '"')
}

// MatchCharLiteral matches a single-quote-delimited char literal.
func MatchCharLiteral(b []byte) (int, bool) {
	return matchQuoted(b, '\'')
}

func matchQuoted(b []byte, quote byte) (int, bool) {
	if len(b) == 0 || b[0] != quote {
		return 0, false
	}
	i := 1
	for i < len(b) && b[i] != quote {
		if b[i] == '\\' && i+1 < len(b) {
			i += 2
			continue
		}
		i++
	}
	if i >= len(b) {
		return 0, false
	}
	return i + 1, true
}
