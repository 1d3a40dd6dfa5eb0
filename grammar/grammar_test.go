package grammar

import "testing"

func TestMatchTypeTemplateAndQualifiers(t *testing.T) {
	n, typ, ok := MatchType([]byte("const std::vector<int>& rest"))
	if !ok {
		t.Fatal("expected match")
	}
	if got := typ.String(); got != "const std::vector<int>&" {
		t.Fatalf("got %q", got)
	}
	if n != len("const std::vector<int>&") {
		t.Fatalf("consumed %d bytes, want %d", n, len("const std::vector<int>&"))
	}
}

func TestMatchNumberVariants(t *testing.T) {
	cases := []string{"123", "1'000'000", "3.14", "3.14f", "10ull", "10ULL", "-5"}
	for _, c := range cases {
		n, lit, ok := MatchNumber([]byte(c))
		if !ok || n != len(c) || lit != c {
			t.Fatalf("MatchNumber(%q) = %d,%q,%v", c, n, lit, ok)
		}
	}
}

func TestMatchExpressionOperatorChain(t *testing.T) {
	n, ok := MatchExpression([]byte("a + b * c;"))
	if !ok {
		t.Fatal("expected match")
	}
	if string([]byte("a + b * c;")[:n]) != "a + b * c" {
		t.Fatalf("matched %q", string([]byte("a + b * c;")[:n]))
	}
}

func TestMatchClassHeaderWithBases(t *testing.T) {
	n, kind, name, _, bases, ok := MatchClassHeader([]byte("class Widget : public Base, private Other {"))
	if !ok {
		t.Fatal("expected match")
	}
	if kind != 0 {
		t.Fatalf("expected ClassKindClass, got %v", kind)
	}
	if name != "Widget" {
		t.Fatalf("got name %q", name)
	}
	if len(bases) != 2 {
		t.Fatalf("expected 2 bases, got %d", len(bases))
	}
	_ = n
}

func TestMatchEnumHeaderWithUnderlying(t *testing.T) {
	_, kind, name, underlying, hasUnderlying, ok := MatchEnumHeader([]byte("enum class Color : unsigned char {"))
	if !ok {
		t.Fatal("expected match")
	}
	if kind != 1 {
		t.Fatalf("expected EnumKindScoped, got %v", kind)
	}
	if name != "Color" {
		t.Fatalf("got name %q", name)
	}
	if !hasUnderlying || underlying.ScopedName() != "unsigned" {
		t.Fatalf("got underlying %+v", underlying)
	}
}

func TestMatchFunctionSignatureOperatorOverload(t *testing.T) {
	n, fn, ok := MatchFunctionSignature([]byte("bool operator==(const Widget& other) const {"))
	if !ok {
		t.Fatal("expected match")
	}
	if !fn.IsOperator || fn.Name != "operator==" {
		t.Fatalf("got fn %+v", fn)
	}
	if !fn.IsConst {
		t.Fatal("expected const method")
	}
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(fn.Params))
	}
	_ = n
}

func TestMatchVariableDeclStart(t *testing.T) {
	n, typ, name, ok := MatchVariableDeclStart([]byte("int count = 0;"))
	if !ok {
		t.Fatal("expected match")
	}
	if typ.ScopedName() != "int" || name != "count" {
		t.Fatalf("got %+v %q", typ, name)
	}
	_ = n
}

func TestMatchBalancedSkipsStringLiteralBrackets(t *testing.T) {
	n, ok := MatchBalanced([]byte(`("(not a paren)") rest`), '(', ')')
	if !ok {
		t.Fatal("expected match")
	}
	if n != len(`("(not a paren)")`) {
		t.Fatalf("matched %d bytes: %q", n, string([]byte(`("(not a paren)") rest`)[:n]))
	}
}
