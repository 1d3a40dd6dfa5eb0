package lang

import "testing"

func TestTypeString(t *testing.T) {
	typ := Type{
		Name:    []string{"std", "vector"},
		IsConst: true,
		TemplateArgs: []TemplateArg{
			{Type: &Type{Name: []string{"int"}}},
		},
		RightQualifiers: []Qualifier{{Kind: QualifierRef}},
	}
	got := typ.String()
	want := "const std::vector<int>&"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestClassAccessBuckets(t *testing.T) {
	c := NewClass(ClassKindStruct, "Bar")
	if c.CurrentAccess != AccessPublic {
		t.Fatalf("struct should start PUBLIC, got %v", c.CurrentAccess)
	}
	c.AddField(&Variable{Type: Type{Name: []string{"int"}}, Name: "bazz"})
	c.AddField(&Variable{Type: Type{Name: []string{"int"}}, Name: "foo"})
	c.CurrentAccess = AccessPrivate
	c.AddField(&Variable{Type: Type{Name: []string{"std", "string"}}, Name: "s"})

	fields := c.FieldsInPartitionOrder()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	names := []string{fields[0].Name, fields[1].Name, fields[2].Name}
	want := []string{"bazz", "foo", "s"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("field %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestClassDefaultAccessIsPrivate(t *testing.T) {
	c := NewClass(ClassKindClass, "C")
	if c.CurrentAccess != AccessPrivate {
		t.Fatalf("class should start PRIVATE, got %v", c.CurrentAccess)
	}
}

func TestIsMetaFunction(t *testing.T) {
	metaType := func(isConst bool) Type {
		return Type{Name: []string{"meta", "type"}, IsConst: isConst}
	}

	accept := &Function{
		IsConstexpr: true,
		ReturnType:  &Type{Name: []string{"void"}},
		Name:        "interface_",
		Params: []Variable{
			{Type: metaType(false), Name: "target"},
			{Type: metaType(true), Name: "source"},
		},
	}
	if !accept.IsMetaFunction() {
		t.Fatal("expected accept to be recognized as a meta-function")
	}

	notConstexpr := *accept
	notConstexpr.IsConstexpr = false
	if notConstexpr.IsMetaFunction() {
		t.Fatal("missing constexpr must be rejected")
	}

	oneParam := *accept
	oneParam.Params = accept.Params[:1]
	if oneParam.IsMetaFunction() {
		t.Fatal("single parameter must be rejected")
	}

	wrongType := *accept
	wrongType.Params = []Variable{
		{Type: Type{Name: []string{"int"}}, Name: "target"},
		accept.Params[1],
	}
	if wrongType.IsMetaFunction() {
		t.Fatal("wrong parameter type must be rejected")
	}

	secondNotConst := *accept
	secondNotConst.Params = []Variable{accept.Params[0], {Type: metaType(false), Name: "source"}}
	if secondNotConst.IsMetaFunction() {
		t.Fatal("second parameter lacking const must be rejected")
	}

	secondRef := *accept
	refType := metaType(true)
	refType.RightQualifiers = []Qualifier{{Kind: QualifierRef}}
	secondRef.Params = []Variable{accept.Params[0], {Type: refType, Name: "source"}}
	if secondRef.IsMetaFunction() {
		t.Fatal("reference-qualified second parameter must be rejected")
	}
}

func TestIncludesSetDedupAndOrder(t *testing.T) {
	s := NewIncludesSet()
	s.Add("a.h")
	s.Add("b.h")
	s.Add("a.h")
	got := s.Paths()
	want := []string{"a.h", "b.h"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
