// Package concept defines named structural requirements on types.
//
// A Concept is composed from probes of the probe package, primitive axioms of the detect package,
// and other concepts, with the and/or combinators of the logic package.
// Evaluating a concept yields a Verdict that keeps every sub-requirement,
// so an unsatisfied concept can always be traced back to the probes that failed.
package concept

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
)

const ErrUnmet errorkit.Error = "concept unmet"

type Concept struct {
	name    string
	arity   int
	refines []*Concept
	body    func(c *checker, args []detect.Type) Requirement
}

func (k *Concept) Name() string { return k.name }

func (k *Concept) Arity() int { return k.arity }

// Refines lists the concepts this concept is built upon.
func (k *Concept) Refines() []*Concept { return append([]*Concept{}, k.refines...) }

// Check evaluates the concept with the default engine.
func (k *Concept) Check(args ...detect.Type) (Verdict, error) {
	return k.CheckWith(detect.Default(), args...)
}

// CheckWith evaluates the concept for the given type arguments.
// An error is returned only for hard errors,
// an unsatisfied concept is reported through the Verdict.
func (k *Concept) CheckWith(engine *detect.Engine, args ...detect.Type) (Verdict, error) {
	if len(args) != k.arity {
		return Verdict{}, detect.ErrArity.F("%s expects %d type arguments, got %d", k.name, k.arity, len(args))
	}
	c := &checker{engine: engine}
	req := c.concept(k, args...)
	if c.err != nil {
		return Verdict{}, c.err
	}
	v := Verdict{Concept: k.name, Args: args, Requirement: req}
	if !v.OK() {
		engine.Logging().Debug(context.Background(), "concept unmet",
			logging.Field("concept", k.name),
			logging.Field("unmet", v.unmetNames()))
	}
	return v, nil
}

// Holds tells whether the concept is satisfied, using the default engine.
func (k *Concept) Holds(args ...detect.Type) (bool, error) {
	v, err := k.Check(args...)
	return v.OK(), err
}

// Satisfies tells whether T satisfies the concept.
// Every type argument of the concept is T.
func Satisfies[T any](k *Concept) (bool, error) {
	args := make([]detect.Type, k.arity)
	for i := range args {
		args[i] = detect.TypeOf[T]()
	}
	return k.Holds(args...)
}

// Verdict is the evaluation of a concept for concrete type arguments.
type Verdict struct {
	Concept     string        `yaml:"concept"`
	Args        []detect.Type `yaml:"args"`
	Requirement `yaml:",inline"`
}

func (v Verdict) OK() bool { return v.Satisfied }

// Err returns an ErrUnmet error that names every unmet requirement, or nil when the concept is satisfied.
func (v Verdict) Err() error {
	if v.OK() {
		return nil
	}
	return ErrUnmet.F("%s: %s", v.Name, strings.Join(v.unmetNames(), "; "))
}

func (v Verdict) unmetNames() []string {
	var names []string
	for _, r := range v.Unmet() {
		names = append(names, r.String())
	}
	return names
}

var registry = struct {
	mutex    sync.RWMutex
	concepts []*Concept
	byName   map[string]*Concept
}{byName: map[string]*Concept{}}

func define(name string, arity int, refines []*Concept, body func(c *checker, args []detect.Type) Requirement) *Concept {
	k := &Concept{name: name, arity: arity, refines: refines, body: body}
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	if _, ok := registry.byName[name]; ok {
		panic(fmt.Sprintf("concept %s is defined twice", name))
	}
	registry.byName[name] = k
	registry.concepts = append(registry.concepts, k)
	return k
}

func Lookup(name string) (*Concept, bool) {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	k, ok := registry.byName[name]
	return k, ok
}

// All returns every defined concept, each after the concepts it refines.
func All() []*Concept {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	return append([]*Concept{}, registry.concepts...)
}
