// Package detect is the detection engine.
//
// Given an Op and concrete type arguments, the engine tells whether the expression the Op describes
// is well-formed for them, and if so, what its result type is.
// An ill-formed expression is a regular outcome, not an error:
// the Op reports it with ErrSubstitution and the engine turns it into a failed Result.
// Every other error an Op returns is a hard error and reaches the caller unchanged.
package detect

import (
	"context"
	"errors"
	"sync"

	"go.llib.dev/frameless/pkg/logging"
)

// Result is the outcome of a detection.
type Result struct {
	// OK tells whether the probed expression is well-formed.
	OK bool
	// Type is the result type of the expression, or Nonesuch when OK is false.
	Type Type
	// Reason is the absorbed substitution failure when OK is false.
	Reason error
}

// Engine evaluates Ops and memoizes their outcome per type argument tuple.
// The zero value is ready to use.
type Engine struct {
	// Logger receives the evaluation log of the engine.
	// When nil, the package default logger is used.
	// A Logger with an unknown level logs on info level.
	Logger *logging.Logger

	cache cache

	opsMutex sync.Mutex
	ops      map[string]Op
}

// NewEngine returns an Engine that logs on the level of cfg.
func NewEngine(cfg Config) *Engine {
	return &Engine{Logger: &logging.Logger{Level: knownLevelOrInfo(cfg.LogLevel)}}
}

// Detect evaluates op for the given type arguments.
// The outcome for a given (op, args) pair is computed once and every later request observes the same Result.
func (e *Engine) Detect(op Op, args ...Type) (Result, error) {
	if err := e.validate(op, args); err != nil {
		e.Logging().Error(context.Background(), "invalid detection request",
			logging.Field("op", opName(op)), logging.ErrField(err))
		return Result{}, err
	}
	return e.cache.GetOrEval(cacheKey(op, args), func() (Result, error) {
		return e.eval(op, args)
	})
}

func (e *Engine) eval(op Op, args []Type) (Result, error) {
	ctx := logging.ContextWith(context.Background(),
		logging.Field("op", op.Name()),
		logging.Field("args", typeNames(args)))

	for _, arg := range args {
		if arg.IsNonesuch() {
			e.Logging().Debug(ctx, "detection failed on sentinel argument")
			return failed(Fail("%s is applied on the result of a failed detection", op.Name())), nil
		}
	}
	typ, err := op.Apply(args...)
	if errors.Is(err, ErrSubstitution) {
		e.Logging().Debug(ctx, "probe evaluated", logging.Field("detected", false), logging.ErrField(err))
		return failed(err), nil
	}
	if err != nil {
		e.Logging().Error(ctx, "probe failed with a hard error", logging.ErrField(err))
		return Result{}, err
	}
	if typ.IsZero() {
		return Result{}, ErrInvalidType.F("%s returned no result type", op.Name())
	}
	e.Logging().Debug(ctx, "probe evaluated", logging.Field("detected", true), logging.Field("type", typ))
	return Result{OK: true, Type: typ}, nil
}

func failed(reason error) Result {
	return Result{OK: false, Type: Nonesuch, Reason: reason}
}

func (e *Engine) validate(op Op, args []Type) error {
	if op == nil {
		return ErrInvalidType.F("nil operation")
	}
	if n := op.Arity(); n != len(args) || MaxArity < n {
		return ErrArity.F("%s expects %d type arguments, got %d", op.Name(), n, len(args))
	}
	for i, arg := range args {
		if arg.IsZero() {
			return ErrInvalidType.F("%s type argument #%d has no type", op.Name(), i)
		}
	}
	return e.register(op)
}

// register ensures that a name always identifies the same operation,
// since cached results are keyed by the operation name.
func (e *Engine) register(op Op) error {
	e.opsMutex.Lock()
	defer e.opsMutex.Unlock()
	if e.ops == nil {
		e.ops = make(map[string]Op)
	}
	known, ok := e.ops[op.Name()]
	if !ok {
		e.ops[op.Name()] = op
		return nil
	}
	if !sameOp(known, op) {
		return ErrOpConflict.F("%q is already used by another operation", op.Name())
	}
	return nil
}

func sameOp(a, b Op) (same bool) {
	defer func() {
		if recover() != nil { // operations with incomparable dynamic types
			same = false
		}
	}()
	return a == b
}

// Stats reports how many detections were evaluated and how many were served from the memo.
func (e *Engine) Stats() Stats { return e.cache.Stats() }

var defaultLogger = &logging.Logger{}

// Logging returns the logger the engine logs with.
func (e *Engine) Logging() *logging.Logger {
	l := e.Logger
	if l == nil {
		return defaultLogger
	}
	if lvl := knownLevelOrInfo(l.Level); lvl != l.Level {
		l = l.Clone()
		l.Level = lvl
	}
	return l
}

func knownLevelOrInfo(lvl logging.Level) logging.Level {
	switch lvl {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError, logging.LevelFatal:
		return lvl
	default:
		return logging.LevelInfo
	}
}

// Exists tells whether op is well-formed for args.
func (e *Engine) Exists(op Op, args ...Type) (bool, error) {
	r, err := e.Detect(op, args...)
	return r.OK, err
}

// DetectedT returns the result type of op, or Nonesuch when it is ill-formed.
func (e *Engine) DetectedT(op Op, args ...Type) (Type, error) {
	return e.DetectedOr(Nonesuch, op, args...)
}

// DetectedOr returns the result type of op, or fallback when it is ill-formed.
func (e *Engine) DetectedOr(fallback Type, op Op, args ...Type) (Type, error) {
	r, err := e.Detect(op, args...)
	if err != nil {
		return Type{}, err
	}
	if !r.OK {
		return fallback, nil
	}
	return r.Type, nil
}

// ConvertsTo tells whether op is well-formed and its result type is implicitly convertible to to.
func (e *Engine) ConvertsTo(to Type, op Op, args ...Type) (bool, error) {
	r, err := e.Detect(op, args...)
	if err != nil || !r.OK {
		return false, err
	}
	return IsConvertible(r.Type, to), nil
}

// CastsTo tells whether op is well-formed and its result type can be explicitly converted to to.
func (e *Engine) CastsTo(to Type, op Op, args ...Type) (bool, error) {
	r, err := e.Detect(op, args...)
	if err != nil || !r.OK {
		return false, err
	}
	return e.Exists(ExplicitCast, r.Type, to)
}

// IdenticalTo tells whether op is well-formed and its result type is exactly exact.
// The sentinel is identical to nothing, so two failed detections never match.
func (e *Engine) IdenticalTo(exact Type, op Op, args ...Type) (bool, error) {
	r, err := e.Detect(op, args...)
	if err != nil || !r.OK {
		return false, err
	}
	return !exact.IsNonesuch() && IsSame(exact, r.Type), nil
}

func opName(op Op) string {
	if op == nil {
		return "<nil>"
	}
	return op.Name()
}

func typeNames(args []Type) []string {
	var names []string
	for _, arg := range args {
		names = append(names, arg.String())
	}
	return names
}
