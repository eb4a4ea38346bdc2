package concept

import (
	"fmt"
	"strings"

	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/conceptkit/pkg/logic"
)

type kind int

const (
	leaf kind = iota
	allOf
	anyOf
)

// Requirement is one node of an evaluated concept.
// Leaves are probes and axioms, inner nodes are compositions and nested concepts.
type Requirement struct {
	Name      string `yaml:"name"`
	Satisfied bool   `yaml:"satisfied"`
	// Detail explains why a leaf requirement is not satisfied.
	Detail string        `yaml:"detail,omitempty"`
	Of     []Requirement `yaml:"of,omitempty"`

	kind kind
}

// Unmet returns the leaf requirements responsible for the requirement not being satisfied.
// For an alternative, every alternative is responsible.
func (r Requirement) Unmet() []Requirement {
	if r.Satisfied {
		return nil
	}
	if r.kind == leaf {
		return []Requirement{r}
	}
	var out []Requirement
	for _, sub := range r.Of {
		out = append(out, sub.Unmet()...)
	}
	return out
}

func (r Requirement) String() string {
	if r.Detail == "" {
		return r.Name
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.Detail)
}

func all(name string, rs ...Requirement) Requirement {
	return Requirement{Name: name, Satisfied: logic.And(satisfied(rs)...), Of: rs, kind: allOf}
}

func either(name string, rs ...Requirement) Requirement {
	return Requirement{Name: name, Satisfied: logic.Or(satisfied(rs)...), Of: rs, kind: anyOf}
}

func satisfied(rs []Requirement) []bool {
	var bs []bool
	for _, r := range rs {
		bs = append(bs, r.Satisfied)
	}
	return bs
}

// checker evaluates requirements against an engine.
// The first hard error stops the evaluation, the requirements built after it carry no meaning.
type checker struct {
	engine *detect.Engine
	err    error
}

func (c *checker) detect(op detect.Op, args ...detect.Type) detect.Result {
	if c.err != nil {
		return detect.Result{Type: detect.Nonesuch}
	}
	r, err := c.engine.Detect(op, args...)
	if err != nil {
		c.err = err
		return detect.Result{Type: detect.Nonesuch}
	}
	return r
}

// detected is the result type of op, or the sentinel.
func (c *checker) detected(op detect.Op, args ...detect.Type) detect.Type {
	return c.detect(op, args...).Type
}

func (c *checker) exists(op detect.Op, args ...detect.Type) Requirement {
	r := c.detect(op, args...)
	return Requirement{Name: call(op.Name(), args), Satisfied: r.OK, Detail: reason(r)}
}

func (c *checker) convertsTo(to detect.Type, op detect.Op, args ...detect.Type) Requirement {
	r := c.detect(op, args...)
	req := Requirement{Name: fmt.Sprintf("%s converts to %s", call(op.Name(), args), to)}
	switch {
	case !r.OK:
		req.Detail = reason(r)
	case !detect.IsConvertible(r.Type, to):
		req.Detail = fmt.Sprintf("%s is not convertible to %s", r.Type, to)
	default:
		req.Satisfied = true
	}
	return req
}

func (c *checker) identicalTo(exact detect.Type, op detect.Op, args ...detect.Type) Requirement {
	r := c.detect(op, args...)
	req := Requirement{Name: fmt.Sprintf("%s is %s", call(op.Name(), args), exact)}
	switch {
	case !r.OK:
		req.Detail = reason(r)
	case exact.IsNonesuch() || !detect.IsSame(exact, r.Type):
		req.Detail = fmt.Sprintf("%s is not %s", r.Type, exact)
	default:
		req.Satisfied = true
	}
	return req
}

func axiom(name string, ok bool, args ...detect.Type) Requirement {
	return Requirement{Name: call(name, args), Satisfied: ok}
}

func (c *checker) concept(k *Concept, args ...detect.Type) Requirement {
	return all(call(k.name, args), k.body(c, args))
}

func reason(r detect.Result) string {
	if r.OK || r.Reason == nil {
		return ""
	}
	return r.Reason.Error()
}

func call(name string, args []detect.Type) string {
	var names []string
	for _, arg := range args {
		names = append(names, arg.String())
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(names, ", "))
}
