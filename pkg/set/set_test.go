package set

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := New[uint32]()
		assert.Equal(t, 0, s.Size())
	})

	t.Run("with items and duplicates", func(t *testing.T) {
		s := New[uint32](1, 2, 2, 3)
		assert.Equal(t, 3, s.Size())
		assert.True(t, s.Contains(2))
	})
}

func TestSet_Insert(t *testing.T) {
	s := New[string]()

	assert.True(t, s.Insert("abcde"))
	assert.False(t, s.Insert("abcde"))
	assert.Equal(t, 1, s.Size())
}

func TestSet_Remove(t *testing.T) {
	s := New("a", "b")
	s.Remove("a")
	s.Remove("missing")

	assert.False(t, s.Contains("a"))
	assert.Equal(t, 1, s.Size())
}

func TestSet_Equal(t *testing.T) {
	tests := []struct {
		name string
		a    Set[int]
		b    Set[int]
		want bool
	}{
		{"both empty", New[int](), New[int](), true},
		{"same items", New(1, 2, 3), New(3, 2, 1), true},
		{"different size", New(1, 2), New(1, 2, 3), false},
		{"same size different items", New(1, 2, 4), New(1, 2, 3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestSet_Difference(t *testing.T) {
	diff := New(1, 2, 3, 4).Difference(New(2, 4, 6))

	got := diff.Slice()
	slices.Sort(got)
	assert.Equal(t, []int{1, 3}, got)
}
