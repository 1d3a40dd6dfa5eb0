package driver

import (
	"strings"
	"testing"

	"github.com/dhamidi/zeropp/source"
)

func run(t *testing.T, src string) (*Driver, error) {
	t.Helper()
	d := New(source.NewCursor([]byte(src)), nil)
	err := d.Run()
	return d, err
}

func TestDriverParsesNamespaceAndClass(t *testing.T) {
	d, err := run(t, `
namespace app {
struct Bar {
  public:
  int foo;
  float bazz;
  private:
  int s;
};
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ns, ok := d.Root.Namespaces["app"]
	if !ok {
		t.Fatal("namespace app not found")
	}
	bar, ok := ns.Classes["Bar"]
	if !ok {
		t.Fatal("class Bar not found")
	}
	fields := bar.FieldsInPartitionOrder()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Name != "foo" || fields[1].Name != "bazz" || fields[2].Name != "s" {
		t.Fatalf("unexpected field order: %v %v %v", fields[0].Name, fields[1].Name, fields[2].Name)
	}
}

func TestDriverRejectsExtraneousCloseBrace(t *testing.T) {
	_, err := run(t, `}`)
	if err == nil {
		t.Fatal("expected a structural error")
	}
	de, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *driver.Error, got %T", err)
	}
	if de.Kind != ErrStructural {
		t.Fatalf("expected ErrStructural, got %v", de.Kind)
	}
}

func TestDriverParsesEnum(t *testing.T) {
	d, err := run(t, `
enum class Color : int {
  Red,
  Green,
  Blue,
};
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := d.Root.Enums["Color"]
	if !ok {
		t.Fatal("enum Color not found")
	}
	if !e.IsScoped() {
		t.Fatal("expected scoped enum")
	}
	if len(e.Enumerators) != 3 {
		t.Fatalf("expected 3 enumerators, got %d", len(e.Enumerators))
	}
}

func TestDriverParsesFreeFunctionAndBody(t *testing.T) {
	_, err := run(t, `
int add(int a, int b) {
  int c = a + b;
  return c;
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDriverEmitsPassThroughText(t *testing.T) {
	src := `namespace app {
struct Bar {
  int foo;
};
}
`
	d, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Output() != src {
		t.Fatalf("expected pass-through output to match input verbatim:\ngot:  %q\nwant: %q", d.Output(), src)
	}
}

func TestDriverStripsConstexprAndRewritesTargetOutput(t *testing.T) {
	d, err := run(t, `
constexpr void interface(meta::type target, const meta::type source) {
  ->(target){ virtual ~source.name()$() noexcept {} };
}
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := d.Output()
	if strings.Contains(out, "constexpr void interface") {
		t.Fatalf("expected constexpr to be stripped from the meta-function's written-out copy, got:\n%s", out)
	}
	if !strings.Contains(out, "void interface") {
		t.Fatalf("expected the rest of the meta-function signature to survive, got:\n%s", out)
	}
	if !strings.Contains(out, `target << "virtual ~" << source.name() << "() noexcept {}";`) {
		t.Fatalf("expected the target output to be rewritten into an append sequence, got:\n%s", out)
	}
}

func TestDriverIncludes(t *testing.T) {
	d, err := run(t, `#include <vector>
#include "widget.h"
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paths := d.Includes.Paths()
	if len(paths) != 2 || paths[0] != "vector" || paths[1] != "widget.h" {
		t.Fatalf("unexpected includes: %v", paths)
	}
}
