// Package algorithm holds generic algorithms gated by iterator requirements.
//
// The requirements are stated twice.
// The InputIterator and Variable type constraints reject unsuitable iterator types at compile time,
// and Check evaluates the InputIterator concept at runtime to explain which requirement a type misses.
package algorithm

import (
	"go.llib.dev/conceptkit/pkg/concept"
	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/conceptkit/pkg/iterkit"
	"go.llib.dev/frameless/pkg/errorkit"
)

const ErrConceptUnmet errorkit.Error = "iterator requirements unmet"

// InputIterator is the compile time form of the InputIterator concept
// over the value method set of an iterator type I.
// V is the element type, and C is the iterator category, which has to refine the input category.
type InputIterator[I, V any, C iterkit.InputIteratorTag] interface {
	Deref() V
	Arrow() *V
	Equal(I) bool

	ValueType() V
	Reference() V
	Pointer() *V
	IteratorCategory() C
}

// Incrementable is the part of the InputIterator concept that needs an addressable iterator.
type Incrementable[I any] interface {
	Inc() *I
	PostInc() I
}

// Variable is an addressable iterator variable of type I.
type Variable[I any] interface {
	*I
	Incrementable[I]
}

// Each calls fn with every element in the half-open range [first, last) and returns fn.
// Passing a type that is not an iterator, such as an int, does not compile.
func Each[I InputIterator[I, V, C], V any, C iterkit.InputIteratorTag, P Variable[I], F ~func(V)](first, last I, fn F) F {
	for it := P(&first); !first.Equal(last); it.Inc() {
		fn(first.Deref())
	}
	return fn
}

// Check tells why I cannot be used as an input iterator.
// It returns nil when I satisfies the InputIterator concept.
func Check[I any]() error {
	v, err := concept.InputIterator.Check(detect.TypeOf[I]())
	if err != nil {
		return err
	}
	if v.OK() {
		return nil
	}
	return ErrConceptUnmet.Wrap(v.Err())
}
