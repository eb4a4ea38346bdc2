package detect

import (
	"context"
	"reflect"

	"go.llib.dev/conceptkit/pkg/reflectkit"
	"go.llib.dev/frameless/pkg/logging"
)

// Type is a type argument of a probe: a Go type together with its value category.
// An addressable Type stands for a variable of the type,
// a non-addressable one for a plain value.
type Type struct {
	rtype       reflect.Type
	addressable bool
}

func TypeOf[T any]() Type { return Type{rtype: reflectkit.TypeOf[T]()} }

func Of(rtype reflect.Type) Type { return Type{rtype: rtype} }

// Ref returns the addressable form of the type.
func (t Type) Ref() Type {
	t.addressable = true
	return t
}

// Value returns the non-addressable form of the type.
func (t Type) Value() Type {
	t.addressable = false
	return t
}

func (t Type) Reflect() reflect.Type { return t.rtype }

func (t Type) Addressable() bool { return t.addressable }

// IsZero reports whether the Type holds no Go type at all.
func (t Type) IsZero() bool { return t.rtype == nil }

func (t Type) IsNonesuch() bool { return t.rtype == nonesuchType }

func (t Type) String() string {
	var name string
	switch {
	case t.rtype == nil:
		return "<nil>"
	case t.IsNonesuch():
		name = "nonesuch"
	case t.rtype == voidType:
		name = "void"
	default:
		name = t.rtype.String()
	}
	if t.addressable {
		return "ref(" + name + ")"
	}
	return name
}

// MarshalYAML renders the type the same way String does.
func (t Type) MarshalYAML() (interface{}, error) { return t.String(), nil }

var _ = logging.RegisterType(func(ctx context.Context, t Type) logging.Detail {
	return logging.Fields{
		"name":        t.String(),
		"addressable": t.Addressable(),
	}
})

// nonesuch is the result type of a failed detection.
// It holds a lock by value, thus it is neither copy constructible nor copy assignable,
// and it is excluded from every convertibility, castability and identity check.
type nonesuch struct {
	_ noCopy
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type void struct{}

var (
	nonesuchType = reflectkit.TypeOf[nonesuch]()
	voidType     = reflectkit.TypeOf[void]()
)

var (
	// Nonesuch is the sentinel result type of a failed detection.
	Nonesuch = Type{rtype: nonesuchType}
	// Void is the result type of probes that are statements rather than expressions.
	Void = Type{rtype: voidType}
)
