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
	"strings"

	log "github.com/apex/log"
	list "github.com/justincpresley/lqueue/util/list"
	errors "github.com/pkg/errors"
	xxhash3 "github.com/zeebo/xxh3"
)

// Queue is a string queue kept on a circular list anchored on a sentinel.
// Every method accepts a nil *Queue and treats it as an absent queue. A
// Queue is not safe for concurrent use.
type Queue struct {
	head   list.Node[*Element]
	alloc  Allocator
	dedup  DedupPolicy
	logger *log.Entry
}

// New returns an empty queue, or nil if the sentinel could not be allocated.
func New(config *Config) *Queue {
	if config == nil {
		config = GetDefaultConfig()
	}
	alloc := config.Allocator
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	logger := log.WithField("module", "queue")
	if !alloc.Allocate(SentinelBlock, sentinelSize) {
		logger.Debug("Unable to allocate a sentinel.")
		return nil
	}
	q := &Queue{
		alloc:  alloc,
		dedup:  config.DedupPolicy,
		logger: logger,
	}
	q.head.Init()
	return q
}

// a freed queue behaves like an absent one
func (q *Queue) absent() bool { return q == nil || q.alloc == nil }

// Free releases every element still linked and then the queue itself.
func (q *Queue) Free() {
	if q.absent() {
		return
	}
	cnt := 0
	list.EachSafe(&q.head, func(n *list.Node[*Element]) bool {
		n.Delete()
		n.Val.Release()
		cnt++
		return true
	})
	q.head.Init()
	q.alloc.Release(SentinelBlock, sentinelSize)
	q.alloc = nil
	q.logger.WithField("released", cnt).Debug("Freed queue.")
}

func (q *Queue) newElement(s string) *Element {
	if !q.alloc.Allocate(ElementBlock, elementSize) {
		q.logger.Debug("Unable to allocate an element.")
		return nil
	}
	if !q.alloc.Allocate(StringBlock, stringSize(s)) {
		q.alloc.Release(ElementBlock, elementSize)
		q.logger.WithField("length", len(s)).Debug("Unable to allocate a string.")
		return nil
	}
	e := &Element{value: strings.Clone(s), alloc: q.alloc}
	e.node.Val = e
	return e
}

// InsertHead copies s into a new element at the front. It reports false,
// leaving the queue untouched, if q is absent or allocation fails.
func (q *Queue) InsertHead(s string) bool {
	if q.absent() {
		return false
	}
	e := q.newElement(s)
	if e == nil {
		return false
	}
	list.InsertAfter(&q.head, &e.node)
	return true
}

// InsertTail is InsertHead for the back of the queue.
func (q *Queue) InsertTail(s string) bool {
	if q.absent() {
		return false
	}
	e := q.newElement(s)
	if e == nil {
		return false
	}
	list.InsertBefore(&q.head, &e.node)
	return true
}

// RemoveHead unlinks the front element and hands it to the caller without
// releasing it. If buf is not empty the string is copied into it, cut to
// len(buf)-1 bytes and followed by a zero byte. It returns nil if q is absent
// or empty.
func (q *Queue) RemoveHead(buf []byte) *Element {
	if q.absent() || q.head.Empty() {
		return nil
	}
	return q.unlink(q.head.Next(), buf)
}

// RemoveTail is RemoveHead for the back of the queue.
func (q *Queue) RemoveTail(buf []byte) *Element {
	if q.absent() || q.head.Empty() {
		return nil
	}
	return q.unlink(q.head.Prev(), buf)
}

func (q *Queue) unlink(n *list.Node[*Element], buf []byte) *Element {
	e := n.Val
	n.Delete()
	if len(buf) > 0 {
		i := copy(buf[:len(buf)-1], e.value)
		buf[i] = 0
	}
	return e
}

// drop unlinks n and releases its element
func (q *Queue) drop(n *list.Node[*Element]) {
	n.Delete()
	n.Val.Release()
}

// Size counts the elements by walking the queue.
func (q *Queue) Size() int {
	if q.absent() {
		return 0
	}
	return list.Len(&q.head)
}

// Front returns the front element without unlinking it.
func (q *Queue) Front() *Element {
	if q.absent() {
		return nil
	}
	if n := list.First(&q.head); n != nil {
		return n.Val
	}
	return nil
}

// Back returns the back element without unlinking it.
func (q *Queue) Back() *Element {
	if q.absent() {
		return nil
	}
	if n := list.Last(&q.head); n != nil {
		return n.Val
	}
	return nil
}

// Each calls fn on every string from front to back until fn returns false.
func (q *Queue) Each(fn func(value string) bool) {
	if q.absent() {
		return
	}
	list.Each(&q.head, func(n *list.Node[*Element]) bool {
		return fn(n.Val.value)
	})
}

func (q *Queue) Strings() []string {
	ret := make([]string, 0)
	q.Each(func(v string) bool {
		ret = append(ret, v)
		return true
	})
	return ret
}

// IsSorted reports whether the strings are in ascending order.
func (q *Queue) IsSorted() bool {
	sorted := true
	prev := ""
	first := true
	q.Each(func(v string) bool {
		if !first && v < prev {
			sorted = false
			return false
		}
		first = false
		prev = v
		return true
	})
	return sorted
}

// Digest is an order sensitive hash of the strings in q. Two queues holding
// the same strings in the same order have the same digest.
func (q *Queue) Digest() uint64 {
	if q.absent() {
		return 0
	}
	h := xxhash3.New()
	sep := []byte{0}
	q.Each(func(v string) bool {
		h.WriteString(v)
		h.Write(sep)
		return true
	})
	return h.Sum64()
}

// Verify checks the list invariants of q.
func (q *Queue) Verify() error {
	if q.absent() {
		return errors.New("queue is absent")
	}
	if err := list.Verify(&q.head, 0); err != nil {
		return errors.Wrap(err, "queue links")
	}
	var err error
	list.Each(&q.head, func(n *list.Node[*Element]) bool {
		if n.Val == nil || &n.Val.node != n {
			err = errors.New("node does not belong to its element")
			return false
		}
		return true
	})
	return err
}
