package reflectexpand

import (
	"strings"
	"testing"

	"github.com/dhamidi/zeropp/driver"
	"github.com/dhamidi/zeropp/source"
)

func TestExpanderReflectsClassAndEnum(t *testing.T) {
	exp := NewExpander(nil)

	d := driver.New(source.NewCursor([]byte(`
struct Bar {
  int foo;
  float bazz;
  private:
  int s;
};
enum class Color { Red, Green, Blue };
`)), nil)
	d.ClassCloseHooks = append(d.ClassCloseHooks, exp.OnClassClose)
	d.EnumCloseHooks = append(d.EnumCloseHooks, exp.OnEnumClose)
	if err := d.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := d.Output()
	if !strings.Contains(got, `"foo"`) || !strings.Contains(got, `"bazz"`) {
		t.Fatalf("expected public data member names in output, got:\n%s", got)
	}
	if !strings.Contains(got, `"s"`) {
		t.Fatalf("expected private field in full data_member_names, got:\n%s", got)
	}
	if !strings.Contains(got, `"Red"`) || !strings.Contains(got, `"Blue"`) {
		t.Fatalf("expected enumerator names in output, got:\n%s", got)
	}
	if !strings.Contains(got, "struct Bar {") {
		t.Fatalf("expected the struct's own verbatim text to still be emitted, got:\n%s", got)
	}
	if !strings.Contains(got, ReflectionPreamble) {
		t.Fatalf("expected the reflection preamble to be written once, got:\n%s", got)
	}
}
