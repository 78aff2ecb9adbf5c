package list

// Sort orders the list headed by head with a top-down merge sort that works
// on the nodes' next links only. less must be a strict ordering; on a tie the
// node from the right-hand run is taken first.
//
// While sorting, the chain is nil-terminated and prev links are stale. Both
// are restored before Sort returns.
func Sort[V any](head *Node[V], less func(a, b V) bool) {
	if head.Empty() || head.Singular() {
		return
	}
	head.prev.next = nil
	head.next = mergeSort(head.next, less)

	prev := head
	n := head.next
	for ; n.next != nil; n = n.next {
		n.prev = prev
		prev = n
	}
	n.prev = prev
	n.next = head
	head.prev = n
}

func mergeSort[V any](first *Node[V], less func(a, b V) bool) *Node[V] {
	if first == nil || first.next == nil {
		return first
	}
	// slow stops on the last node of the left half
	slow := first
	for fast := first.next; fast != nil && fast.next != nil; fast = fast.next.next {
		slow = slow.next
	}
	right := slow.next
	slow.next = nil

	return merge(mergeSort(first, less), mergeSort(right, less), less)
}

func merge[V any](l1, l2 *Node[V], less func(a, b V) bool) *Node[V] {
	var out Node[V]
	tail := &out
	for l1 != nil && l2 != nil {
		if less(l1.Val, l2.Val) {
			tail.next = l1
			l1 = l1.next
		} else {
			tail.next = l2
			l2 = l2.next
		}
		tail = tail.next
	}
	if l1 != nil {
		tail.next = l1
	} else {
		tail.next = l2
	}
	return out.next
}
