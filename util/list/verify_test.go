package list

import (
	"testing"

	assert "github.com/stretchr/testify/assert"
)

func chain(vals ...int) (*Node[int], []*Node[int]) {
	head := &Node[int]{}
	head.Init()
	nodes := []*Node[int]{}
	for _, v := range vals {
		n := &Node[int]{Val: v}
		InsertBefore(head, n)
		nodes = append(nodes, n)
	}
	return head, nodes
}

func TestVerifyBrokenBackLink(t *testing.T) {
	head, nodes := chain(1, 2, 3)
	assert.NoError(t, Verify(head, 0))
	nodes[1].prev = head
	assert.Error(t, Verify(head, 0))
}

func TestVerifyNilTerminated(t *testing.T) {
	head, nodes := chain(1, 2)
	nodes[1].next = nil
	assert.Error(t, Verify(head, 0))
}

func TestVerifyLimit(t *testing.T) {
	head, nodes := chain(1, 2, 3)
	// a cycle that skips the sentinel
	nodes[2].next = nodes[0]
	nodes[0].prev = nodes[2]
	assert.Error(t, Verify(head, 10))
}

func TestSortRestoresPrevLinks(t *testing.T) {
	head, _ := chain(4, 3, 2, 1)
	Sort(head, func(a, b int) bool { return a < b })
	assert.NoError(t, Verify(head, 0))
	assert.Equal(t, 4, head.prev.Val)
	assert.Equal(t, 3, head.prev.prev.Val)
}
