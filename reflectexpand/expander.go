package reflectexpand

import (
	"github.com/dhamidi/zeropp/driver"
	"github.com/dhamidi/zeropp/lang"
	"github.com/dhamidi/zeropp/source"
)

// ReflectionPreamble is the forward declaration of reflect::Reflect,
// written once per Expander ahead of the first reflection output
// (spec.md §4.4), grounded on
// original_source/parsers/static_reflection/static_reflection.h:36's
// `namespace reflect {template <class T> struct Reflect;}`.
const ReflectionPreamble = "namespace reflect { template <class T> struct Reflect; }\n"

// ClassReflection is the tuple spec.md §4.4 computes for a class or
// struct when its body closes.
type ClassReflection struct {
	Name                  string
	PublicDataMemberNames []string
	PublicDataMemberTypes []string
	DataMemberNames       []string
	DataMemberTypes       []string
	DataMemberAccess      []string
	BaseClassNames        []string
}

// EnumReflection is the tuple spec.md §4.4 computes for an enum or enum
// class when its body closes.
type EnumReflection struct {
	Name            string
	IsScoped        bool
	EnumeratorNames []string
	UnderlyingType  string
}

// Expander is the driver's class/enum-close hook target that emits the
// reflection name arrays unconditionally as each class/enum body
// closes (spec.md §4.4, grounded on static_reflection.h:62-82's
// generate_reflection() being called directly from parse_end_of_class,
// with no keyword gating it). It is not itself a driver.Parser: nothing
// in the grammar triggers reflection, so there is nothing to match.
type Expander struct {
	Loader *source.Loader

	wrotePreamble bool
}

// NewExpander creates an Expander holding loader; the Expander itself
// does not read any file through it.
func NewExpander(loader *source.Loader) *Expander {
	return &Expander{Loader: loader}
}

// OnClassClose computes c's ClassReflection and emits it immediately,
// per spec.md §5's ordering guarantee that spliced text follows the
// closing token it replaces. Register with driver.Driver.ClassCloseHooks.
func (e *Expander) OnClassClose(d *driver.Driver, c *lang.Class) {
	r := &ClassReflection{Name: c.Name}
	for _, v := range c.Fields[lang.AccessPublic] {
		r.PublicDataMemberNames = append(r.PublicDataMemberNames, v.Name)
		r.PublicDataMemberTypes = append(r.PublicDataMemberTypes, v.Type.String())
	}
	for _, v := range c.FieldsInPartitionOrder() {
		r.DataMemberNames = append(r.DataMemberNames, v.Name)
		r.DataMemberTypes = append(r.DataMemberTypes, v.Type.String())
	}
	for _, a := range []lang.Access{lang.AccessPublic, lang.AccessProtected, lang.AccessPrivate} {
		for range c.Fields[a] {
			r.DataMemberAccess = append(r.DataMemberAccess, a.String())
		}
	}
	for _, base := range c.PublicBases() {
		r.BaseClassNames = append(r.BaseClassNames, base.Type.ScopedName())
	}
	e.emit(d, e.renderClassReflection(r))
}

// OnEnumClose computes en's EnumReflection and emits it immediately.
// Register with driver.Driver.EnumCloseHooks.
func (e *Expander) OnEnumClose(d *driver.Driver, en *lang.Enumeration) {
	r := &EnumReflection{
		Name:            en.Name,
		IsScoped:        en.IsScoped(),
		EnumeratorNames: append([]string(nil), en.Enumerators...),
		UnderlyingType:  en.UnderlyingType.String(),
	}
	e.emit(d, e.renderEnumReflection(r))
}

func (e *Expander) emit(d *driver.Driver, text string) {
	if !e.wrotePreamble {
		d.Emit(ReflectionPreamble)
		e.wrotePreamble = true
	}
	d.Emit(text)
}

func (e *Expander) renderClassReflection(r *ClassReflection) string {
	w := NewWriter()
	w.Linef("// reflexpr<%s>", r.Name)
	w.Linef("constexpr const char* %s_public_data_member_names[] = {", r.Name)
	for _, n := range r.PublicDataMemberNames {
		w.Linef("  %q,", n)
	}
	w.Linef("};")
	w.Linef("constexpr const char* %s_data_member_names[] = {", r.Name)
	for _, n := range r.DataMemberNames {
		w.Linef("  %q,", n)
	}
	w.Linef("};")
	w.Linef("constexpr const char* %s_base_class_names[] = {", r.Name)
	for _, n := range r.BaseClassNames {
		w.Linef("  %q,", n)
	}
	w.Linef("};")
	return w.String()
}

func (e *Expander) renderEnumReflection(r *EnumReflection) string {
	w := NewWriter()
	w.Linef("// reflexpr<%s>", r.Name)
	w.Linef("constexpr const char* %s_enumerator_names[] = {", r.Name)
	for _, n := range r.EnumeratorNames {
		w.Linef("  %q,", n)
	}
	w.Linef("};")
	return w.String()
}
