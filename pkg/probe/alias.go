package probe

import (
	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/conceptkit/pkg/iterkit"
	"go.llib.dev/conceptkit/pkg/reflectkit"
)

// Associated types are declared with zero argument methods whose result type is the associated type.
// The value category of the probed type has no effect on them.

var ValueType = detect.Op1("alias.value_type", func(T detect.Type) (detect.Type, error) {
	return associated(T, "ValueType")
})

var Reference = detect.Op1("alias.reference", func(T detect.Type) (detect.Type, error) {
	return associated(T, "Reference")
})

var Pointer = detect.Op1("alias.pointer", func(T detect.Type) (detect.Type, error) {
	return associated(T, "Pointer")
})

// IteratorCategory resolves the category tag of T through iterkit.CategoryOf.
var IteratorCategory = detect.Op1("alias.iterator_category", func(T detect.Type) (detect.Type, error) {
	category, ok := iterkit.CategoryOf(T.Reflect())
	if !ok {
		return detect.Type{}, detect.Fail("%s has no iterator category", T)
	}
	return detect.Of(category), nil
})

func associated(T detect.Type, name string) (detect.Type, error) {
	mt, ok := reflectkit.LookupMethod(T.Reflect(), name, false)
	if !ok || mt.NumIn() != 0 || mt.NumOut() != 1 {
		return detect.Type{}, detect.Fail("%s does not declare %s", T.Value(), name)
	}
	return detect.Of(mt.Out(0)), nil
}
