// Package reflectkit holds the reflection helpers that the type probes build upon.
package reflectkit

import (
	"reflect"
	"sync"
)

// TypeOf returns the reflect.Type of T.
// When a value is given, its dynamic type is returned instead,
// which matters for interface type arguments.
func TypeOf[T any](i ...T) reflect.Type {
	for _, v := range i {
		if t := reflect.TypeOf(v); t != nil {
			return t
		}
	}
	return reflect.TypeOf((*T)(nil)).Elem()
}

// LookupMethod returns the signature of the named method, without its receiver,
// as it is visible on an operand of type typ.
// When the operand is addressable, the method set of *typ is consulted,
// thus pointer receiver methods become visible too.
func LookupMethod(typ reflect.Type, name string, addressable bool) (reflect.Type, bool) {
	if typ == nil {
		return nil, false
	}
	if typ.Kind() == reflect.Interface {
		m, ok := typ.MethodByName(name)
		if !ok {
			return nil, false
		}
		return m.Type, true
	}
	recv := typ
	if addressable && typ.Kind() != reflect.Pointer {
		recv = reflect.PointerTo(typ)
	}
	m, ok := recv.MethodByName(name)
	if !ok {
		return nil, false
	}
	var in, out []reflect.Type
	for i := 1; i < m.Type.NumIn(); i++ {
		in = append(in, m.Type.In(i))
	}
	for i := 0; i < m.Type.NumOut(); i++ {
		out = append(out, m.Type.Out(i))
	}
	return reflect.FuncOf(in, out, m.Type.IsVariadic()), true
}

var lockerType = TypeOf[sync.Locker]()

// IsLock reports whether a value of typ is a lock the way `go vet` copylocks sees it:
// a non-pointer, non-interface type whose pointer has Lock and Unlock methods.
func IsLock(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	return reflect.PointerTo(typ).Implements(lockerType)
}

// ContainsLock reports whether copying a value of typ would copy a lock,
// either the value itself or one held by value in its fields or array elements.
func ContainsLock(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	if IsLock(typ) {
		return true
	}
	switch typ.Kind() {
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if ContainsLock(typ.Field(i).Type) {
				return true
			}
		}
	case reflect.Array:
		return 0 < typ.Len() && ContainsLock(typ.Elem())
	}
	return false
}

func IsNumeric(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// IsOrdered reports whether the < operator is defined for the type's kind.
func IsOrdered(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Complex64, reflect.Complex128:
		return false
	case reflect.String:
		return true
	default:
		return IsNumeric(typ)
	}
}

func IsPointer(typ reflect.Type) bool {
	return typ != nil && typ.Kind() == reflect.Pointer
}
