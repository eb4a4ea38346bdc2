package detect

import (
	"go.llib.dev/conceptkit/pkg/reflectkit"
)

// The functions in this file are the ground truth of the host type system.
// Every other predicate is derived from them and from detections.

func CopyConstructible(t Type) bool {
	return usable(t) && !reflectkit.ContainsLock(t.rtype)
}

func CopyAssignable(t Type) bool {
	return usable(t) && !reflectkit.ContainsLock(t.rtype)
}

func Destructible(t Type) bool {
	return usable(t)
}

// IsPointer reports whether t is a plain pointer value.
// An addressable pointer variable is not a pointer type itself, the same way a reference to a pointer is not.
func IsPointer(t Type) bool {
	return usable(t) && !t.addressable && reflectkit.IsPointer(t.rtype)
}

// IsConvertible reports whether a from value is implicitly convertible to to,
// which in Go is assignability.
// An addressable target only binds to an addressable source.
func IsConvertible(from, to Type) bool {
	if !usable(from) || !usable(to) {
		return false
	}
	if to.addressable && !from.addressable {
		return false
	}
	return from.rtype.AssignableTo(to.rtype)
}

// IsCastable reports whether an explicit conversion from from to to is valid.
func IsCastable(from, to Type) bool {
	if !usable(from) || !usable(to) {
		return false
	}
	if to.addressable && !from.addressable {
		return false
	}
	return from.rtype.ConvertibleTo(to.rtype)
}

// IsSame reports whether the two types are identical, value category included.
func IsSame(a, b Type) bool { return a == b }

func usable(t Type) bool {
	return !t.IsZero() && !t.IsNonesuch()
}

// ExplicitCast is the Go conversion expression To(from).
var ExplicitCast = Op2("explicit_cast", func(from, to Type) (Type, error) {
	if !IsCastable(from, to) {
		return Type{}, Fail("%s is not convertible to %s", from, to)
	}
	return to, nil
})
