package metaclass

import (
	"strings"
	"testing"

	zppdriver "github.com/dhamidi/zeropp/driver"
	"github.com/dhamidi/zeropp/lang"
	"github.com/dhamidi/zeropp/source"
)

type fakeExpander struct {
	generated string
}

func (f *fakeExpander) Expand(metaClassName, classSource string) (string, error) {
	return f.generated, nil
}

func TestDriverExpandsMetaClassInstantiation(t *testing.T) {
	expander := &fakeExpander{generated: `
public:
int value;
void greet() {}
`}
	registry := lang.NewMetaClassRegistry()
	registry.Register("interface")
	mc := NewDriver(expander, registry)

	d := zppdriver.New(source.NewCursor([]byte(`
interface Shape {
  void draw();
};
`)), nil)
	if err := d.Register(mc); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	shape, ok := d.Root.Classes["Shape"]
	if !ok {
		t.Fatal("class Shape not attached")
	}
	if shape.Kind != lang.ClassKindMetaClass || shape.MetaClassName != "interface" {
		t.Fatalf("unexpected class kind/meta name: %v %q", shape.Kind, shape.MetaClassName)
	}
	fields := shape.FieldsInPartitionOrder()
	if len(fields) != 1 || fields[0].Name != "value" {
		t.Fatalf("expected field value, got %v", fields)
	}
	methods := shape.MethodsInPartitionOrder()
	if len(methods) != 1 || methods[0].Name != "greet" {
		t.Fatalf("expected method greet, got %v", methods)
	}

	out := d.Output()
	if !strings.Contains(out, "class Shape {") {
		t.Fatalf("expected spliced class declaration in output, got %q", out)
	}
	if !strings.Contains(out, "int value;") || !strings.Contains(out, "void greet() {}") {
		t.Fatalf("expected generated members spliced into output, got %q", out)
	}
	if strings.Contains(out, "interface Shape {") {
		t.Fatalf("meta-class instantiation header should not survive into output, got %q", out)
	}
}

func TestRecordMetaFunction(t *testing.T) {
	registry := lang.NewMetaClassRegistry()
	mc := NewDriver(nil, registry)

	metaType := lang.Type{Name: []string{"meta", "type"}}
	constMetaType := metaType
	constMetaType.IsConst = true
	fn := &lang.Function{
		IsConstexpr: true,
		Name:        "generate",
		Params: []lang.Variable{
			{Type: metaType, Name: "target"},
			{Type: constMetaType, Name: "source"},
		},
	}
	mc.RecordMetaFunction(nil, fn)
	if !registry.Has("generate") {
		t.Fatal("expected generate to be registered as a meta-function")
	}
}
