package detect

import (
	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrSubstitution marks a probed expression as ill-formed for the given type arguments.
	// The engine absorbs it into a failed Result, it never surfaces as an error.
	ErrSubstitution errorkit.Error = "substitution failure"

	ErrArity       errorkit.Error = "arity mismatch"
	ErrOpConflict  errorkit.Error = "operation name conflict"
	ErrInvalidType errorkit.Error = "invalid type argument"
)

// MaxArity is the maximum number of type arguments an Op may take.
const MaxArity = 4

// Op is a parameterized expression shape.
// Apply returns the result type of the expression for the given type arguments,
// or an error wrapping ErrSubstitution when the expression is ill-formed.
// Any other error is a hard error and is propagated by the engine as is.
//
// Op implementations must be stateless: the engine evaluates a given Op for a given argument tuple at most once.
type Op interface {
	Name() string
	Arity() int
	Apply(args ...Type) (Type, error)
}

// Fail reports a substitution failure from an Op.
func Fail(format string, a ...any) error {
	return ErrSubstitution.F(format, a...)
}

// Op1 makes a unary Op from fn.
// The name identifies the Op in the memo, two different Ops must not share it.
func Op1(name string, fn func(T Type) (Type, error)) Op {
	return &opFunc{name: name, arity: 1, fn: func(args []Type) (Type, error) {
		return fn(args[0])
	}}
}

// Op2 makes a binary Op from fn.
func Op2(name string, fn func(T, U Type) (Type, error)) Op {
	return &opFunc{name: name, arity: 2, fn: func(args []Type) (Type, error) {
		return fn(args[0], args[1])
	}}
}

type opFunc struct {
	name  string
	arity int
	fn    func(args []Type) (Type, error)
}

func (op *opFunc) Name() string { return op.name }

func (op *opFunc) Arity() int { return op.arity }

func (op *opFunc) Apply(args ...Type) (Type, error) {
	if len(args) != op.arity {
		return Type{}, ErrArity.F("%s expects %d type arguments, got %d", op.name, op.arity, len(args))
	}
	return op.fn(args)
}
