package grammar

import (
	"bytes"
	"strings"
)

// MatchTargetOutput matches a target output inside a meta-function body:
// `->(target-name) body ;`, where body is either a single identifier or
// a brace-delimited block (spec.md §4.5/§8). On a match it returns the
// number of bytes consumed and the rewritten append-into-target code
// sequence to emit in its place.
func MatchTargetOutput(b []byte) (n int, rewritten string, ok bool) {
	i := 0
	k, has := MatchLiteral(b[i:], "->")
	if !has {
		return 0, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has = MatchLiteral(b[i:], "("); !has {
		return 0, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	k, target, has := MatchIdentifier(b[i:])
	if !has {
		return 0, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has = MatchLiteral(b[i:], ")"); !has {
		return 0, "", false
	}
	i += k
	i += SkipTrivia(b[i:])

	if k, has = MatchLiteral(b[i:], "{"); has {
		blockStart := i
		n, ok := MatchBalanced(b[i:], '{', '}')
		if !ok {
			return 0, "", false
		}
		block := bytes.TrimSpace(b[blockStart+1 : blockStart+n-1])
		i += n
		i += SkipTrivia(b[i:])
		if k, has = MatchLiteral(b[i:], ";"); !has {
			return 0, "", false
		}
		i += k
		return i, rewriteTargetBlock(target, block), true
	}

	k, ident, has := MatchIdentifier(b[i:])
	if !has {
		return 0, "", false
	}
	i += k
	i += SkipTrivia(b[i:])
	if k, has = MatchLiteral(b[i:], ";"); !has {
		return 0, "", false
	}
	i += k
	return i, target + " << " + ident + ";", true
}

// isMetaExprByte reports whether c can be part of a meta-expression
// chain (name(.name)*(())?) or its optional parenthesization.
func isMetaExprByte(c byte) bool {
	return c == '.' || c == '(' || c == ')' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// rewriteTargetBlock splits a target output's body into literal segments
// and embedded meta-expressions (each introduced by a trailing `$`), per
// spec.md §4.5, and rewrites them into an ordered `target << ...`
// sequence.
func rewriteTargetBlock(target string, block []byte) string {
	var parts []string
	literalStart := 0
	i := 0
	for i < len(block) {
		if block[i] != '$' {
			i++
			continue
		}
		// Scan backward from the `$` to find the start of the expression.
		j := i
		for j > literalStart && isMetaExprByte(block[j-1]) {
			j--
		}
		if literal := string(block[literalStart:j]); literal != "" {
			parts = append(parts, quoteLiteral(literal))
		}
		expr := string(block[j:i])
		if strings.HasPrefix(expr, "(") && strings.HasSuffix(expr, ")") {
			expr = expr[1 : len(expr)-1]
		}
		parts = append(parts, expr)
		i++ // skip the `$`
		literalStart = i
	}
	if literal := string(block[literalStart:]); literal != "" {
		parts = append(parts, quoteLiteral(literal))
	}

	var out strings.Builder
	out.WriteString(target)
	for _, p := range parts {
		out.WriteString(" << ")
		out.WriteString(p)
	}
	out.WriteString(";")
	return out.String()
}

func quoteLiteral(s string) string {
	var out strings.Builder
	out.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			out.WriteString(`\"`)
		case '\\':
			out.WriteString(`\\`)
		default:
			out.WriteRune(r)
		}
	}
	out.WriteByte('"')
	return out.String()
}
