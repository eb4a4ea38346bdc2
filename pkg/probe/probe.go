// Package probe is the catalog of structural probes.
//
// Each probe is a detect.Op describing one Go expression shape.
// Probes are purely syntactic: they tell whether the expression would compile and what type it would have,
// never whether the operation behaves sensibly.
//
// Operators a Go type cannot overload are probed through conventional methods:
//
//	a == b    Equal(U) R, else the built-in comparison
//	a < b     Less(U) R, else the built-in ordering
//	*a        pointer indirection, else Deref() R
//	a->       Arrow() R
//	++a       Inc() R on a variable of the type, or the built-in increment
//	a++       PostInc() R on a variable of the type, or the built-in increment
//	swap(a,b) a registered swap, else Swap(U) R, else `a, b = b, a`
package probe

import (
	"reflect"

	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/conceptkit/pkg/reflectkit"
)

var boolType = detect.TypeOf[bool]()

// EqualTo probes `a == b` for an a of type T and a b of type U.
var EqualTo = detect.Op2("ops.equal_to", func(T, U detect.Type) (detect.Type, error) {
	if r, err := call(T, "Equal", U); err == nil {
		return r, nil
	}
	if !T.Reflect().Comparable() || !U.Reflect().Comparable() || !assignableEitherWay(T, U) {
		return detect.Type{}, detect.Fail("%s is not comparable with %s", T, U)
	}
	return boolType, nil
})

// Less probes `a < b` for an a of type T and a b of type U.
var Less = detect.Op2("ops.less", func(T, U detect.Type) (detect.Type, error) {
	if r, err := call(T, "Less", U); err == nil {
		return r, nil
	}
	if !reflectkit.IsOrdered(T.Reflect()) || !reflectkit.IsOrdered(U.Reflect()) || !assignableEitherWay(T, U) {
		return detect.Type{}, detect.Fail("%s is not ordered with %s", T, U)
	}
	return boolType, nil
})

// Dereference probes `*a`.
// The indirection of a pointer yields an addressable element.
var Dereference = detect.Op1("ops.dereference", func(T detect.Type) (detect.Type, error) {
	if reflectkit.IsPointer(T.Reflect()) {
		return detect.Of(T.Reflect().Elem()).Ref(), nil
	}
	return call(T, "Deref")
})

// Arrow probes the member access operator of T.
// Only the member form counts, pointers have no Arrow method and fail this probe.
var Arrow = detect.Op1("ops.arrow", func(T detect.Type) (detect.Type, error) {
	return call(T, "Arrow")
})

// PrefixIncrement probes `++a`.
// Incrementing needs a variable, so the probe always looks at the addressable form of T.
var PrefixIncrement = detect.Op1("ops.prefix_increment", func(T detect.Type) (detect.Type, error) {
	if incrementable(T) {
		return T.Ref(), nil
	}
	return call(T.Ref(), "Inc")
})

// PostfixIncrement probes `a++`.
var PostfixIncrement = detect.Op1("ops.postfix_increment", func(T detect.Type) (detect.Type, error) {
	if incrementable(T) {
		return T.Value(), nil
	}
	return call(T.Ref(), "PostInc")
})

// incrementable tells whether the built-in increment applies.
// Pointers count as positions that can be advanced.
func incrementable(T detect.Type) bool {
	return reflectkit.IsNumeric(T.Reflect()) || reflectkit.IsPointer(T.Reflect())
}

// call probes the method call `a.name(args...)` and returns its result type.
// An addressable argument may also be passed by its address.
func call(T detect.Type, name string, args ...detect.Type) (detect.Type, error) {
	mt, ok := reflectkit.LookupMethod(T.Reflect(), name, T.Addressable())
	if !ok {
		return detect.Type{}, detect.Fail("%s has no method %s", T, name)
	}
	if mt.IsVariadic() || mt.NumIn() != len(args) {
		return detect.Type{}, detect.Fail("%s.%s does not take %d arguments", T, name, len(args))
	}
	for i, arg := range args {
		if !passable(arg, mt.In(i)) {
			return detect.Type{}, detect.Fail("%s.%s does not accept %s", T, name, arg)
		}
	}
	switch mt.NumOut() {
	case 0:
		return detect.Void, nil
	case 1:
		return detect.Of(mt.Out(0)), nil
	default:
		return detect.Type{}, detect.Fail("%s.%s is a multi-value expression", T, name)
	}
}

func passable(arg detect.Type, param reflect.Type) bool {
	if arg.Reflect().AssignableTo(param) {
		return true
	}
	return arg.Addressable() && reflect.PointerTo(arg.Reflect()).AssignableTo(param)
}

func assignableEitherWay(T, U detect.Type) bool {
	return T.Reflect().AssignableTo(U.Reflect()) || U.Reflect().AssignableTo(T.Reflect())
}
