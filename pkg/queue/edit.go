/*
 Copyright (C) 2022-2025, The lqueue Go Library Authors

 This file is part of lqueue: A Go Library for Sentinel-List Queues.

 This library is free software; you can redistribute it and/or
 modify it under the terms of the GNU Lesser General Public
 License as published by the Free Software Foundation; either
 version 2.1 of the License, or any later version.

 This library is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
 See the GNU Lesser General Public License for more details.

 A copy of the GNU Lesser General Public License is provided by this
 library under LICENSE.md. To see more details about the authors and
 contributors, please see AUTHORS.md. If absent, Both of which can be
 found within the GitHub repository:
          https://github.com/justincpresley/lqueue
*/

package queue

import (
	list "github.com/justincpresley/lqueue/util/list"
)

// DeleteMid removes and releases the middle element, the one at index
// (n-1)/2 for a queue of n elements. It reports false if q is absent or empty.
func (q *Queue) DeleteMid() bool {
	if q.absent() || q.head.Empty() {
		return false
	}
	head := &q.head
	slow, fast := head.Next(), head.Next()
	for fast.Next() != head && fast.Next().Next() != head {
		slow = slow.Next()
		fast = fast.Next().Next()
	}
	q.drop(slow)
	return true
}

// DeleteDup removes adjacent equal strings according to the queue's
// DedupPolicy. q must already be sorted; this is not checked. It reports
// false only if q is absent.
func (q *Queue) DeleteDup() bool {
	if q.absent() {
		return false
	}
	head := &q.head
	switch q.dedup {
	case KeepLast:
		list.EachSafe(head, func(n *list.Node[*Element]) bool {
			next := n.Next()
			if next == head {
				return false
			}
			if next.Val.value == n.Val.value {
				q.drop(n)
			}
			return true
		})
	default:
		dup := false
		list.EachSafe(head, func(n *list.Node[*Element]) bool {
			next := n.Next()
			if next != head && next.Val.value == n.Val.value {
				q.drop(n)
				dup = true
			} else if dup {
				// last of a run
				q.drop(n)
				dup = false
			}
			return true
		})
	}
	return true
}

// Swap exchanges every two adjacent elements. With an odd count the last
// element stays in place.
func (q *Queue) Swap() {
	if q.absent() {
		return
	}
	head := &q.head
	for n := head.Next(); n != head && n.Next() != head; n = n.Next() {
		n.Move(n.Next())
	}
}

// Reverse reverses the order of the queue in place.
func (q *Queue) Reverse() {
	if q.absent() || q.head.Empty() {
		return
	}
	head := &q.head
	list.EachSafe(head, func(n *list.Node[*Element]) bool {
		n.Move(head)
		return true
	})
}

// Sort orders the queue ascending by string with a merge sort over the
// existing links. Nothing is allocated.
func (q *Queue) Sort() {
	if q.absent() {
		return
	}
	list.Sort(&q.head, func(a, b *Element) bool {
		return a.value < b.value
	})
}
