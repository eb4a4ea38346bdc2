package concept

import (
	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/conceptkit/pkg/iterkit"
	"go.llib.dev/conceptkit/pkg/probe"
)

var (
	boolType     = detect.TypeOf[bool]()
	inputTagType = detect.TypeOf[iterkit.InputIteratorTag]()
)

// SwappableWith: the values of a T and a U can be exchanged,
// either by a Swap method, a registered swap function or plain assignment.
var SwappableWith = define("SwappableWith", 2, nil, func(c *checker, args []detect.Type) Requirement {
	return c.exists(probe.SwapWith, args[0], args[1])
})

var CopyConstructible = define("CopyConstructible", 1, nil, func(c *checker, args []detect.Type) Requirement {
	return axiom("is_copy_constructible", detect.CopyConstructible(args[0]), args...)
})

var CopyAssignable = define("CopyAssignable", 1, nil, func(c *checker, args []detect.Type) Requirement {
	return axiom("is_copy_assignable", detect.CopyAssignable(args[0]), args...)
})

var Destructible = define("Destructible", 1, nil, func(c *checker, args []detect.Type) Requirement {
	return axiom("is_destructible", detect.Destructible(args[0]), args...)
})

// Swappable: two variables of T can be swapped.
var Swappable = define("Swappable", 1, []*Concept{SwappableWith}, func(c *checker, args []detect.Type) Requirement {
	return c.concept(SwappableWith, args[0].Ref(), args[0].Ref())
})

var Pointer = define("Pointer", 1, nil, func(c *checker, args []detect.Type) Requirement {
	return axiom("is_pointer", detect.IsPointer(args[0]), args...)
})

var EqualityComparable = define("EqualityComparable", 2, nil, func(c *checker, args []detect.Type) Requirement {
	return c.convertsTo(boolType, probe.EqualTo, args[0], args[1])
})

var LessThanComparable = define("LessThanComparable", 2, nil, func(c *checker, args []detect.Type) Requirement {
	return c.convertsTo(boolType, probe.Less, args[0], args[1])
})

// Iterator is purely structural,
// it does not verify that incrementing moves to another position.
var Iterator = define("Iterator", 1,
	[]*Concept{CopyConstructible, CopyAssignable, Destructible, Swappable},
	func(c *checker, args []detect.Type) Requirement {
		T := args[0]
		return all("all",
			c.concept(CopyConstructible, T),
			c.concept(CopyAssignable, T),
			c.concept(Destructible, T),
			c.concept(Swappable, T),
			c.exists(probe.PostfixIncrement, T),
			c.exists(probe.PrefixIncrement, T),
			c.exists(probe.Dereference, T),
		)
	})

// InputIterator is satisfied by every pointer type,
// and by every Iterator that can be compared, declares its associated types consistently,
// and is classified as an input iterator.
var InputIterator = define("InputIterator", 1,
	[]*Concept{Pointer, EqualityComparable, Iterator},
	func(c *checker, args []detect.Type) Requirement {
		T := args[0]
		return either("any",
			c.concept(Pointer, T),
			all("all",
				c.concept(EqualityComparable, T, T),
				c.concept(Iterator, T),
				c.exists(probe.ValueType, T),
				c.exists(probe.Reference, T),
				either("any",
					c.identicalTo(c.detected(probe.Reference, T), probe.Dereference, T),
					c.convertsTo(c.detected(probe.ValueType, T), probe.Dereference, T),
				),
				c.identicalTo(c.detected(probe.Pointer, T), probe.Arrow, T),
				c.convertsTo(c.detected(probe.ValueType, T), probe.Dereference, T.Ref()),
				c.convertsTo(inputTagType, probe.IteratorCategory, T),
			),
		)
	})
