package logic_test

import (
	"testing"

	"go.llib.dev/conceptkit/pkg/logic"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func TestIdentities(t *testing.T) {
	assert.True(t, logic.And[bool]())
	assert.False(t, logic.Or[bool]())
	assert.Equal(t, logic.True, logic.And[logic.Bool]())
	assert.Equal(t, logic.False, logic.Or[logic.Bool]())
	assert.False(t, logic.Not(true))
	assert.True(t, logic.Not(false))
	assert.False(t, logic.Disallow[bool]())
}

func TestAlgebra(t *testing.T) {
	s := testcase.NewSpec(t)

	operands := testcase.Let(s, func(t *testcase.T) []bool {
		vs := make([]bool, t.Random.IntBetween(1, 16))
		for i := range vs {
			vs[i] = t.Random.Bool()
		}
		return vs
	})

	count := func(vs []bool) (n int) {
		for _, v := range vs {
			if v {
				n++
			}
		}
		return n
	}

	s.Test("And is true iff every operand is true", func(t *testcase.T) {
		vs := operands.Get(t)
		t.Must.Equal(count(vs) == len(vs), logic.And(vs...))
		t.Must.Equal(logic.And(vs...), logic.Require(vs...))
	})

	s.Test("Or is true iff any operand is true", func(t *testcase.T) {
		vs := operands.Get(t)
		t.Must.Equal(0 < count(vs), logic.Or(vs...))
		t.Must.Equal(logic.Or(vs...), logic.Either(vs...))
	})

	s.Test("Disallow is the negation of And", func(t *testcase.T) {
		vs := operands.Get(t)
		t.Must.Equal(!logic.And(vs...), logic.Disallow(vs...))
	})

	s.Test("operand order has no observable effect", func(t *testcase.T) {
		vs := operands.Get(t)
		reversed := make([]bool, 0, len(vs))
		for i := len(vs) - 1; 0 <= i; i-- {
			reversed = append(reversed, vs[i])
		}
		t.Must.Equal(logic.And(vs...), logic.And(reversed...))
		t.Must.Equal(logic.Or(vs...), logic.Or(reversed...))
	})

	s.Test("re-evaluation is deterministic", func(t *testcase.T) {
		vs := operands.Get(t)
		t.Must.Equal(logic.And(vs...), logic.And(vs...))
		t.Must.Equal(logic.Or(vs...), logic.Or(vs...))
	})
}
