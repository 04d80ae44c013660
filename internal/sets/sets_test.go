package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := Make[int](10)
	assert.Len(t, s, 0)
	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(5))

	assert.True(t, s.InsertNew(5))
	assert.False(t, s.InsertNew(5))
	assert.Len(t, s, 3)

	s2 := MakeWith("a", "b", "a")
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has("b"))
}

func TestHasDuplicates(t *testing.T) {
	assert.False(t, HasDuplicates[int]())
	assert.False(t, HasDuplicates(2, 0, 1))
	assert.True(t, HasDuplicates(0, 1, 0))
	assert.True(t, HasDuplicates("x", "x"))
}
