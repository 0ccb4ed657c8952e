package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Term_Equal_atoms(t *testing.T) {
	testCases := []struct {
		name   string
		a, b   func(in *Interner) Term
		sameIn bool
		expect bool
	}{
		{
			name:   "same atom, same interner",
			a:      func(in *Interner) Term { return NewAtom(in, "robot") },
			b:      func(in *Interner) Term { return NewAtom(in, "robot") },
			sameIn: true,
			expect: true,
		},
		{
			name:   "different atom, same interner",
			a:      func(in *Interner) Term { return NewAtom(in, "robot") },
			b:      func(in *Interner) Term { return NewAtom(in, "random") },
			sameIn: true,
			expect: false,
		},
		{
			name:   "same atom text, different interner (different games)",
			a:      func(in *Interner) Term { return NewAtom(in, "robot") },
			b:      func(in *Interner) Term { return NewAtom(in, "robot") },
			sameIn: false,
			expect: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in1 := NewInterner()
			in2 := in1
			if !tc.sameIn {
				in2 = NewInterner()
			}

			a := tc.a(in1)
			b := tc.b(in2)

			assert.Equal(t, tc.expect, a.Equal(b))
		})
	}
}

func Test_Term_Compound_String(t *testing.T) {
	in := NewInterner()
	tm := NewCompound(in, "mark", NewInteger(1), NewInteger(1))

	assert.Equal(t, "(mark 1 1)", tm.String())
}

func Test_Term_IsGround(t *testing.T) {
	in := NewInterner()

	ground := NewCompound(in, "mark", NewInteger(1), NewInteger(1))
	assert.True(t, ground.IsGround())

	withVar := NewCompound(in, "mark", NewVariable(0, "x"), NewInteger(1))
	assert.False(t, withVar.IsGround())
}

func Test_Term_NewList_roundtrips_as_cons_cells(t *testing.T) {
	in := NewInterner()

	list := NewList(in, NewAtom(in, "a"), NewAtom(in, "b"))

	assert.True(t, list.IsList())
	assert.Equal(t, ListFunctor, list.Functor())
	assert.Equal(t, "a", list.Arg(0).Functor())

	tail := list.Arg(1)
	assert.True(t, tail.IsList())
	assert.Equal(t, "b", tail.Arg(0).Functor())
	assert.Equal(t, ListNilAtom, tail.Arg(1).Functor())
}

func Test_Term_Variable_equality_is_by_id_not_name(t *testing.T) {
	v1 := NewVariable(3, "x")
	v2 := NewVariable(3, "y")
	v3 := NewVariable(4, "x")

	assert.True(t, v1.Equal(v2))
	assert.False(t, v1.Equal(v3))
}
