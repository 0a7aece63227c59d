package orderedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/deduction-engine/internal/orderedset"
)

// candidateGroup mirrors the kind of element the solver stores: a group of
// suspects that jointly claim a fixed set of rows or columns.
type candidateGroup struct {
	line int
	size int
}

func cmp(a, b *candidateGroup) int {
	if a.line != b.line {
		if a.line < b.line {
			return -1
		}
		return 1
	}
	if a.size < b.size {
		return -1
	}
	if a.size > b.size {
		return 1
	}
	return 0
}

func TestAdd(t *testing.T) {
	set := orderedset.NewSet(cmp)
	for i := 1; i < 10; i++ {
		set.Add(&candidateGroup{line: i})
	}

	assert.Equal(t, 9, set.Count())
}

func TestIndex(t *testing.T) {
	var (
		empty *candidateGroup
		items []*candidateGroup
		set   = orderedset.NewSet(cmp)
	)
	for i := 1; i < 10; i++ {
		item := &candidateGroup{line: i}
		items = append(items, item)
		set.Add(item)
	}

	for i := range 15 {
		if i < len(items) {
			assert.Equal(t, items[i], set.Index(i))
		} else {
			assert.Equal(t, empty, set.Index(i))
		}
	}
}

func TestAddOutOfOrder(t *testing.T) {
	set := orderedset.NewSet(cmp)
	order := []int{5, 1, 9, 3, 7}
	for _, line := range order {
		set.Add(&candidateGroup{line: line})
	}

	assert.Equal(t, len(order), set.Count())
	prev := set.Index(0)
	for i := 1; i < set.Count(); i++ {
		cur := set.Index(i)
		assert.True(t, cmp(prev, cur) < 0)
		prev = cur
	}
}
