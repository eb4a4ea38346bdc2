package concept_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.llib.dev/conceptkit/pkg/concept"
	"go.llib.dev/conceptkit/pkg/detect"
	"go.llib.dev/conceptkit/pkg/iterkit"
	"go.llib.dev/conceptkit/pkg/probe"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"gopkg.in/yaml.v3"
)

type (
	IntIter = iterkit.SliceIterator[int]

	// OnlyEqual can be compared and nothing else.
	OnlyEqual struct{}

	// Counter moves and dereferences, but declares no associated types.
	// The history makes it incomparable.
	Counter struct {
		n       int
		history []int
	}

	// ComparableCounter is a Counter that can also be compared.
	ComparableCounter struct{ Counter }

	// LockedCounter is a Counter that cannot be copied.
	LockedCounter struct {
		mu sync.Mutex
		Counter
	}

	Locked struct{ mu sync.Mutex }

	Ambiguous struct{}
)

func (OnlyEqual) Equal(OnlyEqual) bool { return true }

func (c *Counter) Inc() *Counter { c.n++; return c }

func (c *Counter) PostInc() Counter {
	prev := *c
	c.history = append(c.history, c.n)
	c.n++
	return prev
}

func (c Counter) Deref() int { return c.n }

func (c ComparableCounter) Equal(oth ComparableCounter) bool { return c.n == oth.n }

func (*Ambiguous) Swap(*Ambiguous) {}

func init() {
	if err := probe.RegisterSwap(func(a, b *Ambiguous) {}); err != nil {
		panic(err)
	}
}

func holds(tb testing.TB, engine *detect.Engine, k *concept.Concept, args ...detect.Type) bool {
	tb.Helper()
	v, err := k.CheckWith(engine, args...)
	assert.NoError(tb, err)
	return v.OK()
}

func TestInputIterator(t *testing.T) {
	s := testcase.NewSpec(t)

	engine := testcase.Let(s, func(t *testcase.T) *detect.Engine {
		return &detect.Engine{}
	})

	s.Test("slice iterator is an input iterator", func(t *testcase.T) {
		T := detect.TypeOf[IntIter]()
		t.Must.True(holds(t, engine.Get(t), concept.Iterator, T))
		t.Must.True(holds(t, engine.Get(t), concept.InputIterator, T))
	})

	s.Test("pointers are input iterators", func(t *testcase.T) {
		T := detect.TypeOf[*int]()
		t.Must.True(holds(t, engine.Get(t), concept.Iterator, T))
		t.Must.True(holds(t, engine.Get(t), concept.InputIterator, T))
	})

	s.Test("a comparable type alone is not an iterator", func(t *testcase.T) {
		T := detect.TypeOf[OnlyEqual]()
		t.Must.True(holds(t, engine.Get(t), concept.EqualityComparable, T, T))
		t.Must.False(holds(t, engine.Get(t), concept.Iterator, T))
		t.Must.False(holds(t, engine.Get(t), concept.InputIterator, T))
	})

	s.Test("an iterator without associated types is not an input iterator", func(t *testcase.T) {
		T := detect.TypeOf[Counter]()
		t.Must.True(holds(t, engine.Get(t), concept.Iterator, T))
		t.Must.False(holds(t, engine.Get(t), concept.InputIterator, T))
	})

	s.Test("every pointer passes through the pointer alternative", func(t *testcase.T) {
		for _, T := range []detect.Type{
			detect.TypeOf[*string](),
			detect.TypeOf[*Locked](),
			detect.TypeOf[*OnlyEqual](),
			detect.TypeOf[**int](),
		} {
			t.Must.True(holds(t, engine.Get(t), concept.Pointer, T), assert.Message(T.String()))
			t.Must.True(holds(t, engine.Get(t), concept.InputIterator, T), assert.Message(T.String()))
		}
	})

	s.Test("a pointer variable is not a pointer type", func(t *testcase.T) {
		t.Must.False(holds(t, engine.Get(t), concept.Pointer, detect.TypeOf[*int]().Ref()))
	})

	s.Test("unmet requirements are traced back to the failing probes", func(t *testcase.T) {
		v, err := concept.InputIterator.CheckWith(engine.Get(t), detect.TypeOf[int]())
		t.Must.NoError(err)
		t.Must.False(v.OK())

		var names []string
		for _, r := range v.Unmet() {
			names = append(names, r.Name)
		}
		t.Must.Contain(names, "ops.dereference(int)")
		t.Must.Contain(names, "is_pointer(int)")
		t.Must.Contain(names, "alias.value_type(int)")

		t.Must.ErrorIs(concept.ErrUnmet, v.Err())
		t.Must.True(strings.Contains(v.Err().Error(), "ops.dereference(int)"))
	})

	s.Test("a satisfied verdict has no error and no unmet requirement", func(t *testcase.T) {
		v, err := concept.InputIterator.CheckWith(engine.Get(t), detect.TypeOf[IntIter]())
		t.Must.NoError(err)
		t.Must.NoError(v.Err())
		t.Must.Empty(v.Unmet())
		t.Must.Equal("InputIterator", v.Concept)
		t.Must.Equal("InputIterator(iterkit.SliceIterator[int])", v.Name)
	})

	s.Test("evaluation is deterministic", func(t *testcase.T) {
		T := detect.TypeOf[Counter]()
		v1, err := concept.InputIterator.CheckWith(engine.Get(t), T)
		t.Must.NoError(err)
		v2, err := concept.InputIterator.CheckWith(engine.Get(t), T)
		t.Must.NoError(err)
		t.Must.Equal(v1, v2)

		v3, err := concept.InputIterator.CheckWith(&detect.Engine{}, T)
		t.Must.NoError(err)
		t.Must.Equal(v1.OK(), v3.OK())
		t.Must.Equal(v1.Unmet(), v3.Unmet())
	})
}

func TestConcept_capabilities(t *testing.T) {
	var engine detect.Engine

	verdicts := func(T detect.Type) map[string]bool {
		out := map[string]bool{}
		for _, k := range concept.All() {
			args := make([]detect.Type, k.Arity())
			for i := range args {
				args[i] = T
			}
			out[k.Name()] = holds(t, &engine, k, args...)
		}
		return out
	}

	diff := func(a, b map[string]bool) []string {
		var names []string
		for name, ok := range a {
			if b[name] != ok {
				names = append(names, name)
			}
		}
		return names
	}

	t.Run("adding comparison only changes the comparison concept", func(t *testing.T) {
		before := verdicts(detect.TypeOf[Counter]())
		after := verdicts(detect.TypeOf[ComparableCounter]())
		assert.ContainExactly(t, []string{"EqualityComparable"}, diff(before, after))
	})

	t.Run("holding a lock breaks copying and everything built upon it", func(t *testing.T) {
		before := verdicts(detect.TypeOf[Counter]())
		after := verdicts(detect.TypeOf[LockedCounter]())
		assert.ContainExactly(t, []string{
			"CopyConstructible",
			"CopyAssignable",
			"Swappable",
			"Iterator",
		}, diff(before, after))
	})

	t.Run("a satisfied concept implies every concept it refines, except through alternatives", func(t *testing.T) {
		for _, T := range []detect.Type{
			detect.TypeOf[IntIter](),
			detect.TypeOf[Counter](),
			detect.TypeOf[ComparableCounter](),
		} {
			vs := verdicts(T)
			for _, k := range concept.All() {
				if !vs[k.Name()] || k == concept.InputIterator || k == concept.Swappable {
					continue
				}
				for _, r := range k.Refines() {
					assert.True(t, vs[r.Name()], assert.Message(k.Name()+" without "+r.Name()+" for "+T.String()))
				}
			}
		}
	})
}

func TestComparable(t *testing.T) {
	var engine detect.Engine
	tInt := detect.TypeOf[int]()
	tCounter := detect.TypeOf[Counter]()

	assert.True(t, holds(t, &engine, concept.EqualityComparable, tInt, tInt))
	assert.True(t, holds(t, &engine, concept.LessThanComparable, tInt, tInt))
	assert.False(t, holds(t, &engine, concept.LessThanComparable, tInt, detect.TypeOf[string]()))
	assert.False(t, holds(t, &engine, concept.LessThanComparable, tCounter, tCounter))
	assert.False(t, holds(t, &engine, concept.EqualityComparable, tCounter, tCounter))
	assert.True(t, holds(t, &engine, concept.EqualityComparable, detect.TypeOf[ComparableCounter](), detect.TypeOf[ComparableCounter]()))
	assert.False(t, holds(t, &engine, concept.EqualityComparable, detect.TypeOf[[]int](), detect.TypeOf[[]int]()))
}

func TestConcept_hardErrors(t *testing.T) {
	t.Run("wrong number of type arguments", func(t *testing.T) {
		_, err := concept.SwappableWith.CheckWith(&detect.Engine{}, detect.TypeOf[int]())
		assert.ErrorIs(t, err, detect.ErrArity)
	})

	t.Run("an ambiguous swap is not a failed requirement", func(t *testing.T) {
		_, err := concept.Iterator.CheckWith(&detect.Engine{}, detect.TypeOf[Ambiguous]())
		assert.ErrorIs(t, err, probe.ErrAmbiguous)
		assert.False(t, errors.Is(err, concept.ErrUnmet))
	})
}

func TestConcept_logging(t *testing.T) {
	var unmet []any
	engine := detect.Engine{Logger: &logging.Logger{
		Level: logging.LevelDebug,
		Hijack: func(ctx context.Context, level logging.Level, msg string, fields logging.Fields) {
			if msg == "concept unmet" {
				unmet = append(unmet, fields["concept"])
			}
		},
	}}

	assert.True(t, holds(t, &engine, concept.InputIterator, detect.TypeOf[IntIter]()))
	assert.False(t, holds(t, &engine, concept.Iterator, detect.TypeOf[OnlyEqual]()))
	assert.Equal(t, []any{"Iterator"}, unmet)
}

func TestRegistry(t *testing.T) {
	t.Run("Lookup", func(t *testing.T) {
		k, ok := concept.Lookup("InputIterator")
		assert.True(t, ok)
		assert.True(t, k == concept.InputIterator)

		_, ok = concept.Lookup("RandomAccessIterator")
		assert.False(t, ok)
	})

	t.Run("All lists every concept after its refinements", func(t *testing.T) {
		all := concept.All()
		index := map[*concept.Concept]int{}
		for i, k := range all {
			index[k] = i
		}
		assert.Equal(t, 10, len(all))
		for i, k := range all {
			for _, r := range k.Refines() {
				j, ok := index[r]
				assert.True(t, ok)
				assert.True(t, j < i, assert.Message(r.Name()+" after "+k.Name()))
			}
		}
	})

	t.Run("Refines returns a copy", func(t *testing.T) {
		refines := concept.Iterator.Refines()
		refines[0] = nil
		assert.NotNil(t, concept.Iterator.Refines()[0])
	})
}

func TestSatisfies(t *testing.T) {
	ok, err := concept.Satisfies[IntIter](concept.InputIterator)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = concept.Satisfies[int](concept.InputIterator)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = concept.Satisfies[string](concept.EqualityComparable)
	assert.NoError(t, err)
	assert.True(t, ok)

	holds, err := concept.InputIterator.Holds(detect.TypeOf[*float64]())
	assert.NoError(t, err)
	assert.True(t, holds)
}

func TestVerdict_Report(t *testing.T) {
	v, err := concept.InputIterator.CheckWith(&detect.Engine{}, detect.TypeOf[int]())
	assert.NoError(t, err)

	data, err := v.Report()
	assert.NoError(t, err)

	var report struct {
		Concept   string   `yaml:"concept"`
		Args      []string `yaml:"args"`
		Name      string   `yaml:"name"`
		Satisfied bool     `yaml:"satisfied"`
		Of        []any    `yaml:"of"`
	}
	assert.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, "InputIterator", report.Concept)
	assert.Equal(t, []string{"int"}, report.Args)
	assert.Equal(t, "InputIterator(int)", report.Name)
	assert.False(t, report.Satisfied)
	assert.NotEmpty(t, report.Of)
	assert.Contain(t, string(data), "ops.dereference(int)")
}
