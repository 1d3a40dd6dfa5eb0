package grammar

import "testing"

func TestMatchTargetOutputRewritesBlock(t *testing.T) {
	src := `->(target){ virtual ~source.name()$() noexcept {} }; rest`
	n, rewritten, ok := MatchTargetOutput([]byte(src))
	if !ok {
		t.Fatal("expected match")
	}
	want := `target << "virtual ~" << source.name() << "() noexcept {}";`
	if rewritten != want {
		t.Fatalf("got %q, want %q", rewritten, want)
	}
	if src[n:] != " rest" {
		t.Fatalf("consumed %d bytes, left %q", n, src[n:])
	}
}

func TestMatchTargetOutputSimpleIdentifier(t *testing.T) {
	n, rewritten, ok := MatchTargetOutput([]byte(`->(target) greeting; rest`))
	if !ok {
		t.Fatal("expected match")
	}
	if rewritten != "target << greeting;" {
		t.Fatalf("got %q", rewritten)
	}
	_ = n
}

func TestMatchTargetOutputRejectsNonArrow(t *testing.T) {
	_, _, ok := MatchTargetOutput([]byte(`int x;`))
	if ok {
		t.Fatal("expected no match")
	}
}
