// Package logic is the predicate algebra used to compose type requirements.
//
// Every operand is an already computed boolean constant,
// so the result only depends on the operand values and never on their order.
package logic

// Bool is a boolean constant.
type Bool bool

const (
	True  Bool = true
	False Bool = false
)

// And is true when every operand is true.
// And without operands is true.
func And[B ~bool](bs ...B) B {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

// Or is true when any operand is true.
// Or without operands is false.
func Or[B ~bool](bs ...B) B {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

func Not[B ~bool](b B) B { return !b }

// Require is And, named after its use in requirement lists.
func Require[B ~bool](bs ...B) B { return And(bs...) }

// Either is Or, named after its use in alternative requirement lists.
func Either[B ~bool](bs ...B) B { return Or(bs...) }

// Disallow is true unless every operand is true.
func Disallow[B ~bool](bs ...B) B { return Not(And(bs...)) }
